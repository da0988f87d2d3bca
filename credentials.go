package chainconf

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Credentials is the secret bundle resolution runs against. Empty and
// whitespace-only values mean the secret is absent.
type Credentials struct {
	DeployerKey    string
	RPCProviderKey string

	// ExplorerKeys maps chain name to its explorer API key.
	ExplorerKeys map[string]string
}

// HasDeployer reports whether a deployer key is present.
func (c Credentials) HasDeployer() bool {
	return strings.TrimSpace(c.DeployerKey) != ""
}

// HasProviderKey reports whether an RPC-provider key is present.
func (c Credentials) HasProviderKey() bool {
	return strings.TrimSpace(c.RPCProviderKey) != ""
}

// ExplorerKey returns the explorer key for chain, or "" when absent.
func (c Credentials) ExplorerKey(chain string) string {
	return strings.TrimSpace(c.ExplorerKeys[chain])
}

// normalized returns a copy of c with every secret trimmed and blank
// explorer keys dropped.
func (c Credentials) normalized() Credentials {
	out := Credentials{
		DeployerKey:    strings.TrimSpace(c.DeployerKey),
		RPCProviderKey: strings.TrimSpace(c.RPCProviderKey),
		ExplorerKeys:   make(map[string]string, len(c.ExplorerKeys)),
	}
	for chain, key := range c.ExplorerKeys {
		if key = strings.TrimSpace(key); key != "" {
			out.ExplorerKeys[chain] = key
		}
	}
	return out
}

// DeployerAddress derives the EVM address controlled by the deployer key.
// It is used for display; resolution itself never parses the key.
func (c Credentials) DeployerAddress() (common.Address, error) {
	if !c.HasDeployer() {
		return common.Address{}, fmt.Errorf("%s is not set", EnvDeployerKey)
	}
	priv, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(c.DeployerKey), "0x"))
	if err != nil {
		return common.Address{}, fmt.Errorf("parse %s: %w", EnvDeployerKey, err)
	}
	return crypto.PubkeyToAddress(priv.PublicKey), nil
}

// CredentialsFromLookup reads the deployer key, the provider key and every
// explorer key slot named by reg through lookup. Whitespace-only values count
// as absent.
func CredentialsFromLookup(reg *Registry, lookup func(string) (string, bool)) Credentials {
	get := func(name string) string {
		v, ok := lookup(name)
		if !ok {
			return ""
		}
		return strings.TrimSpace(v)
	}

	creds := Credentials{
		DeployerKey:    get(EnvDeployerKey),
		RPCProviderKey: get(EnvRPCProviderKey),
		ExplorerKeys:   make(map[string]string),
	}
	for _, d := range reg.chains {
		if d.Explorer == nil {
			continue
		}
		if v := get(d.Explorer.KeySlot); v != "" {
			creds.ExplorerKeys[d.Name] = v
		}
	}
	return creds
}

// CredentialsFromEnv reads credentials from the process environment.
func CredentialsFromEnv(reg *Registry) Credentials {
	return CredentialsFromLookup(reg, os.LookupEnv)
}
