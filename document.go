package chainconf

// Document is the configuration record handed to the host toolchain. Its
// shape follows the host's configuration file so it can be emitted as JSON
// or YAML and loaded directly.
type Document struct {
	Paths       PathsConfig          `json:"paths" yaml:"paths"`
	Solidity    SolidityDocument     `json:"solidity" yaml:"solidity"`
	Networks    *ResolvedEnvironment `json:"networks" yaml:"networks"`
	Etherscan   EtherscanDocument    `json:"etherscan" yaml:"etherscan"`
	Sourcify    SourcifyConfig       `json:"sourcify" yaml:"sourcify"`
	GasReporter GasReporterConfig    `json:"gasReporter" yaml:"gasReporter"`
	Mocha       MochaDocument        `json:"mocha" yaml:"mocha"`
	Typechain   TypeBindingsConfig   `json:"typechain" yaml:"typechain"`
}

type SolidityDocument struct {
	Compilers []CompilerDocument `json:"compilers" yaml:"compilers"`
}

type CompilerDocument struct {
	Version  string                   `json:"version" yaml:"version"`
	Settings CompilerSettingsDocument `json:"settings" yaml:"settings"`
}

type CompilerSettingsDocument struct {
	Optimizer OptimizerConfig `json:"optimizer" yaml:"optimizer"`
	ViaIR     bool            `json:"viaIR,omitempty" yaml:"viaIR,omitempty"`
}

// EtherscanDocument carries explorer keys by chain name and the explorers
// the verifier does not know natively.
type EtherscanDocument struct {
	APIKey       map[string]string `json:"apiKey" yaml:"apiKey"`
	CustomChains []CustomChain     `json:"customChains" yaml:"customChains"`
}

type CustomChain struct {
	Network string          `json:"network" yaml:"network"`
	ChainID uint64          `json:"chainId" yaml:"chainId"`
	URLs    CustomChainURLs `json:"urls" yaml:"urls"`
}

type CustomChainURLs struct {
	APIURL     string `json:"apiURL" yaml:"apiURL"`
	BrowserURL string `json:"browserURL" yaml:"browserURL"`
}

type MochaDocument struct {
	Parallel bool  `json:"parallel" yaml:"parallel"`
	Timeout  int64 `json:"timeout" yaml:"timeout"` // milliseconds
}

// Document renders e in the host's configuration shape.
func (e *Environment) Document() Document {
	doc := Document{
		Paths: e.Toolchain.Paths,
		Solidity: SolidityDocument{
			Compilers: []CompilerDocument{{
				Version: e.Compiler.Version,
				Settings: CompilerSettingsDocument{
					Optimizer: e.Compiler.Optimizer,
					ViaIR:     e.Compiler.ViaIR,
				},
			}},
		},
		Networks: e.Networks,
		Etherscan: EtherscanDocument{
			APIKey:       make(map[string]string, len(e.Verification)),
			CustomChains: []CustomChain{},
		},
		Sourcify:    e.Toolchain.Sourcify,
		GasReporter: e.Toolchain.GasReporter,
		Mocha: MochaDocument{
			Parallel: e.Toolchain.TestRunner.Parallel,
			Timeout:  e.Toolchain.TestRunner.Timeout,
		},
		Typechain: e.Toolchain.TypeBindings,
	}

	for _, v := range e.Verification {
		doc.Etherscan.APIKey[v.Chain] = v.APIKey
		if !v.Custom {
			continue
		}
		doc.Etherscan.CustomChains = append(doc.Etherscan.CustomChains, CustomChain{
			Network: v.Chain,
			ChainID: v.ChainID,
			URLs: CustomChainURLs{
				APIURL:     v.APIURL,
				BrowserURL: v.BrowserURL,
			},
		})
	}

	return doc
}
