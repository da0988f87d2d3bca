// Package chainconf resolves per-chain deployment configuration for an EVM
// build/test/deploy toolchain from a static chain registry and a small set of
// environment-supplied secrets.
package chainconf

import (
	"strings"
)

// Credential names
const (
	EnvDeployerKey    = "DEPLOYER_KEY"
	EnvRPCProviderKey = "INFURA_KEY"
)

// Local network constants
const (
	LocalNetworkName    = "hardhat"
	DefaultLocalChainID = 1337
	GasAuto             = "auto"
)

// ProviderKeyPlaceholder marks where the RPC-provider key goes in an
// endpoint template.
const ProviderKeyPlaceholder = "{key}"

// ChainDescriptor is the static metadata for one remote chain.
type ChainDescriptor struct {
	Name     string    `json:"name" yaml:"name" validate:"required"`
	ChainID  uint64    `json:"chainId" yaml:"chainId" validate:"gt=0"`
	Endpoint string    `json:"endpoint" yaml:"endpoint" validate:"required"`
	Explorer *Explorer `json:"explorer,omitempty" yaml:"explorer,omitempty"`
}

// Explorer describes a block-explorer verification service.
type Explorer struct {
	APIURL     string `json:"apiUrl" yaml:"apiUrl" validate:"required,url"`
	BrowserURL string `json:"browserUrl" yaml:"browserUrl" validate:"required,url"`
	KeySlot    string `json:"keySlot" yaml:"keySlot" validate:"required"`

	// Custom is set for explorers the verifier does not know natively; they
	// are listed under customChains in the host document.
	Custom bool `json:"custom,omitempty" yaml:"custom,omitempty"`
}

// NeedsProviderKey reports whether the endpoint is a template that needs the
// RPC-provider key substituted.
func (d ChainDescriptor) NeedsProviderKey() bool {
	return strings.Contains(d.Endpoint, ProviderKeyPlaceholder)
}

// EndpointURL substitutes key verbatim into the endpoint template.
func (d ChainDescriptor) EndpointURL(key string) string {
	return strings.ReplaceAll(d.Endpoint, ProviderKeyPlaceholder, key)
}

// NetworkConfig is the resolved connection record for one network.
type NetworkConfig struct {
	Name     string   `json:"-" yaml:"-"`
	ChainID  uint64   `json:"chainId" yaml:"chainId"`
	URL      string   `json:"url,omitempty" yaml:"url,omitempty"`
	Accounts []string `json:"accounts,omitempty" yaml:"accounts,omitempty"`

	// Local network only
	Local                      bool   `json:"-" yaml:"-"`
	Gas                        string `json:"gas,omitempty" yaml:"gas,omitempty"`
	GasPrice                   string `json:"gasPrice,omitempty" yaml:"gasPrice,omitempty"`
	AllowUnlimitedContractSize bool   `json:"allowUnlimitedContractSize,omitempty" yaml:"allowUnlimitedContractSize,omitempty"`
}

func (n NetworkConfig) clone() NetworkConfig {
	if n.Accounts != nil {
		n.Accounts = append([]string(nil), n.Accounts...)
	}
	return n
}

// VerificationConfig is the contract-verification record for one chain. An
// empty APIKey means the key is omitted from verification requests.
type VerificationConfig struct {
	Chain      string `json:"chain" yaml:"chain"`
	ChainID    uint64 `json:"chainId" yaml:"chainId"`
	APIKey     string `json:"apiKey" yaml:"apiKey"`
	APIURL     string `json:"apiURL" yaml:"apiURL"`
	BrowserURL string `json:"browserURL" yaml:"browserURL"`
	Custom     bool   `json:"custom,omitempty" yaml:"custom,omitempty"`
}
