package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Bidon15/chainconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	testDeployerKey     = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testDeployerAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	testProviderKey     = "infura-project-key"
	testEtherscanKey    = "etherscan-api-key-0001"
)

var secretVars = []string{
	chainconf.EnvDeployerKey,
	chainconf.EnvRPCProviderKey,
	chainconf.EnvEtherscanKey,
	chainconf.EnvBerascanKey,
	chainconf.EnvBeraExplorerKey,
	chainconf.EnvStoryscanKey,
	chainconf.EnvTacSpbExplorerKey,
	"CHAINCONF_REGISTRY",
	"CHAINCONF_LOCAL_CHAIN_ID",
}

// setupEnv clears every secret and applies vals for the duration of the test.
func setupEnv(t *testing.T, vals map[string]string) {
	t.Helper()
	for _, k := range secretVars {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	for k, v := range vals {
		t.Setenv(k, v)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ResetFlags()
	var buf bytes.Buffer
	SetOutput(&buf)
	err := ExecuteWithArgs(args)
	return buf.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantContain []string
	}{
		{
			name:        "basic version",
			args:        []string{"version"},
			wantContain: []string{"chainconf"},
		},
		{
			name:        "verbose version",
			args:        []string{"--verbose", "version"},
			wantContain: []string{"chainconf", "commit:", "built:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t, nil)
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.wantContain {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)

	for _, want := range []string{
		"chainconf",
		"--config",
		"--env-file",
		"--registry",
		"--reveal",
		"--output",
		"DEPLOYER_KEY",
		"INFURA_KEY",
		"ETHERSCAN_KEY",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRootCommand_UnknownOutput(t *testing.T) {
	setupEnv(t, nil)
	_, err := run(t, "networks", "list", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestNetworksList_NoDeployerKey(t *testing.T) {
	setupEnv(t, map[string]string{chainconf.EnvRPCProviderKey: testProviderKey})

	out, err := run(t, "networks", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "hardhat")
	assert.Contains(t, out, "1337")
	assert.NotContains(t, out, "mainnet")
	assert.NotContains(t, out, "sepolia")
}

func TestNetworksList_MissingProviderKey(t *testing.T) {
	setupEnv(t, map[string]string{chainconf.EnvDeployerKey: testDeployerKey})

	out, err := run(t, "networks", "list")
	require.Error(t, err)
	assert.True(t, errors.Is(err, chainconf.ErrMissingCredential))
	assert.Contains(t, err.Error(), "mainnet")
	assert.Contains(t, err.Error(), chainconf.EnvRPCProviderKey)
	assert.NotContains(t, out, "NAME")
}

func TestNetworksList_Table(t *testing.T) {
	setupEnv(t, map[string]string{
		chainconf.EnvDeployerKey:    testDeployerKey,
		chainconf.EnvRPCProviderKey: testProviderKey,
	})

	out, err := run(t, "networks", "list")
	require.NoError(t, err)
	for _, name := range []string{"mainnet", "sepolia", "bera", "bera-bartio", "story", "monad-testnet", "tac-spb", "hardhat"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, testDeployerAddress)
	assert.NotContains(t, out, testDeployerKey)
	assert.NotContains(t, out, testProviderKey)
	assert.Contains(t, out, "https://rpc.berachain.com")
}

func TestNetworksList_JSON(t *testing.T) {
	setupEnv(t, map[string]string{
		chainconf.EnvDeployerKey:    testDeployerKey,
		chainconf.EnvRPCProviderKey: testProviderKey,
	})

	out, err := run(t, "networks", "list", "-o", "json")
	require.NoError(t, err)
	assert.NotContains(t, out, testDeployerKey)
	assert.NotContains(t, out, testProviderKey)

	var decoded map[string]chainconf.NetworkConfig
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded, 8)
	assert.Equal(t, uint64(80094), decoded["bera"].ChainID)
	assert.Equal(t, []string{chainconf.MaskSecret(testDeployerKey)}, decoded["bera"].Accounts)
	assert.Equal(t, chainconf.GasAuto, decoded["hardhat"].Gas)
}

func TestNetworksShow(t *testing.T) {
	setupEnv(t, map[string]string{
		chainconf.EnvDeployerKey:    testDeployerKey,
		chainconf.EnvRPCProviderKey: testProviderKey,
	})

	t.Run("masked", func(t *testing.T) {
		out, err := run(t, "networks", "show", "mainnet")
		require.NoError(t, err)
		assert.Contains(t, out, "Chain ID:")
		assert.Contains(t, out, testDeployerAddress)
		assert.NotContains(t, out, testProviderKey)
	})

	t.Run("revealed", func(t *testing.T) {
		out, err := run(t, "networks", "show", "mainnet", "--reveal")
		require.NoError(t, err)
		assert.Contains(t, out, "https://mainnet.infura.io/v3/"+testProviderKey)
		assert.Contains(t, out, testDeployerKey)
	})

	t.Run("local", func(t *testing.T) {
		out, err := run(t, "networks", "show", "hardhat", "-o", "yaml")
		require.NoError(t, err)
		var n chainconf.NetworkConfig
		require.NoError(t, yaml.Unmarshal([]byte(out), &n))
		assert.Equal(t, uint64(chainconf.DefaultLocalChainID), n.ChainID)
		assert.Equal(t, chainconf.GasAuto, n.GasPrice)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := run(t, "networks", "show", "unknown")
		require.Error(t, err)
		assert.True(t, errors.Is(err, chainconf.ErrChainNotFound))
		assert.Contains(t, err.Error(), `"unknown"`)
	})
}

func TestVerifyList(t *testing.T) {
	setupEnv(t, map[string]string{chainconf.EnvEtherscanKey: testEtherscanKey})

	out, err := run(t, "verify", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "https://api.etherscan.io/api")
	assert.Contains(t, out, chainconf.MaskSecret(testEtherscanKey))
	assert.Contains(t, out, "not set")
	assert.NotContains(t, out, testEtherscanKey)
	assert.NotContains(t, out, "monad-testnet")

	out, err = run(t, "verify", "list", "-o", "json", "--reveal")
	require.NoError(t, err)
	var records []chainconf.VerificationConfig
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 6)
	assert.Equal(t, "mainnet", records[0].Chain)
	assert.Equal(t, testEtherscanKey, records[0].APIKey)
	assert.Equal(t, testEtherscanKey, records[1].APIKey)
	assert.Empty(t, records[2].APIKey)
}

func TestVerifyList_IndependentOfNetworkResolution(t *testing.T) {
	setupEnv(t, map[string]string{
		chainconf.EnvDeployerKey:  testDeployerKey,
		chainconf.EnvEtherscanKey: testEtherscanKey,
	})

	_, err := run(t, "networks", "list")
	require.ErrorIs(t, err, chainconf.ErrMissingCredential)

	out, err := run(t, "verify", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "https://api.etherscan.io/api")
	assert.Contains(t, out, chainconf.MaskSecret(testEtherscanKey))
	assert.NotContains(t, out, testEtherscanKey)

	out, err = run(t, "verify", "list", "-o", "json", "--reveal")
	require.NoError(t, err)
	var records []chainconf.VerificationConfig
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 6)
	assert.Equal(t, testEtherscanKey, records[0].APIKey)
}

func TestNetworksList_LocalChainIDConflict(t *testing.T) {
	setupEnv(t, map[string]string{"CHAINCONF_LOCAL_CHAIN_ID": "1"})

	_, err := run(t, "networks", "list")
	require.ErrorIs(t, err, chainconf.ErrRegistryConflict)
	assert.Contains(t, err.Error(), `"mainnet"`)
}

func TestResolve_Document(t *testing.T) {
	setupEnv(t, map[string]string{
		chainconf.EnvDeployerKey:    testDeployerKey,
		chainconf.EnvRPCProviderKey: testProviderKey,
	})

	out, err := run(t, "resolve", "-o", "json")
	require.NoError(t, err)

	var doc struct {
		Solidity struct {
			Compilers []struct {
				Version string `json:"version"`
			} `json:"compilers"`
		} `json:"solidity"`
		Networks  map[string]json.RawMessage `json:"networks"`
		Etherscan struct {
			APIKey       map[string]string `json:"apiKey"`
			CustomChains []struct {
				Network string `json:"network"`
			} `json:"customChains"`
		} `json:"etherscan"`
		Mocha struct {
			Timeout int64 `json:"timeout"`
		} `json:"mocha"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	require.Len(t, doc.Solidity.Compilers, 1)
	assert.Equal(t, chainconf.DefaultCompilerVersion, doc.Solidity.Compilers[0].Version)
	assert.Len(t, doc.Networks, 8)
	assert.Len(t, doc.Etherscan.APIKey, 6)
	assert.Len(t, doc.Etherscan.CustomChains, 4)
	assert.Equal(t, int64(100000000), doc.Mocha.Timeout)
}

func TestResolve_Table(t *testing.T) {
	setupEnv(t, nil)

	out, err := run(t, "resolve")
	require.NoError(t, err)
	assert.Contains(t, out, "hardhat")
	assert.Contains(t, out, "https://api.etherscan.io/api")
	assert.Contains(t, out, "solc 0.8.20")
}

func TestCompiler_ConfigFile(t *testing.T) {
	setupEnv(t, nil)
	cfg := writeFile(t, "chainconf.yaml", `compiler:
  version: 0.8.24
  optimizer:
    runs: 200
toolchain:
  test_runner:
    timeout: 30000
local_chain_id: 31337
`)

	out, err := run(t, "compiler", "--config", cfg, "-o", "json")
	require.NoError(t, err)

	var v struct {
		Compiler  chainconf.CompilerSettings  `json:"compiler"`
		Toolchain chainconf.ToolchainSettings `json:"toolchain"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "0.8.24", v.Compiler.Version)
	assert.Equal(t, 200, v.Compiler.Optimizer.Runs)
	assert.True(t, v.Compiler.Optimizer.Enabled)
	assert.Equal(t, int64(30000), v.Toolchain.TestRunner.Timeout)

	out, err = run(t, "resolve", "--config", cfg, "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"timeout": 30000`)

	out, err = run(t, "networks", "show", "hardhat", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "31337")

	out, err = run(t, "compiler", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "30000ms")
}

func TestCompiler_InvalidSettings(t *testing.T) {
	setupEnv(t, nil)
	cfg := writeFile(t, "chainconf.yaml", "compiler:\n  version: \"\"\n")

	_, err := run(t, "compiler", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiler settings")
}

func TestConfig_MissingExplicitFile(t *testing.T) {
	setupEnv(t, nil)
	_, err := run(t, "compiler", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestRegistryFlag(t *testing.T) {
	setupEnv(t, map[string]string{chainconf.EnvDeployerKey: testDeployerKey})
	reg := writeFile(t, "chains.yaml", `chains:
  - name: devnet
    chainId: 424242
    endpoint: https://rpc.devnet.example
`)

	out, err := run(t, "networks", "list", "--registry", reg)
	require.NoError(t, err)
	assert.Contains(t, out, "devnet")
	assert.Contains(t, out, "424242")
	assert.NotContains(t, out, "mainnet")

	t.Setenv("CHAINCONF_REGISTRY", reg)
	out, err = run(t, "networks", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "devnet")
}

func TestEnvFile(t *testing.T) {
	setupEnv(t, nil)
	path := writeFile(t, "test.env", "DEPLOYER_KEY="+testDeployerKey+"\nINFURA_KEY="+testProviderKey+"\n")

	out, err := run(t, "networks", "list", "--env-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "mainnet")
	assert.Contains(t, out, testDeployerAddress)

	_, err = run(t, "networks", "list", "--env-file", filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load env file")
}

func TestEnvFile_ProcessEnvWins(t *testing.T) {
	setupEnv(t, map[string]string{chainconf.EnvDeployerKey: "  "})
	path := writeFile(t, "test.env", "DEPLOYER_KEY="+testDeployerKey+"\n")

	// A set but blank variable is kept and counts as absent.
	out, err := run(t, "networks", "list", "--env-file", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "mainnet")
}
