package chainconf

import (
	"fmt"
)

// Compiler defaults
const (
	DefaultCompilerVersion = "0.8.20"
	DefaultOptimizerRuns   = 100
)

// DefaultTestTimeout is the test-runner timeout in milliseconds.
const DefaultTestTimeout = 100000000

// CompilerSettings is handed unchanged to the compilation step.
type CompilerSettings struct {
	Version   string          `json:"version" yaml:"version" mapstructure:"version" validate:"required"`
	Optimizer OptimizerConfig `json:"optimizer" yaml:"optimizer" mapstructure:"optimizer"`
	ViaIR     bool            `json:"viaIR,omitempty" yaml:"viaIR,omitempty" mapstructure:"via_ir"`
}

// OptimizerConfig controls the compiler optimizer.
type OptimizerConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Runs    int  `json:"runs" yaml:"runs" mapstructure:"runs" validate:"gte=0"`
}

// DefaultCompilerSettings returns solc 0.8.20 with the optimizer at 100 runs.
func DefaultCompilerSettings() CompilerSettings {
	return CompilerSettings{
		Version: DefaultCompilerVersion,
		Optimizer: OptimizerConfig{
			Enabled: true,
			Runs:    DefaultOptimizerRuns,
		},
	}
}

// Validate checks that required fields are set and values are valid.
func (c CompilerSettings) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("compiler settings: %w", err)
	}
	return nil
}

// ToolchainSettings covers the remaining static records of the host tool:
// project paths and the settings of the excluded collaborators.
type ToolchainSettings struct {
	Paths        PathsConfig        `json:"paths" yaml:"paths" mapstructure:"paths"`
	GasReporter  GasReporterConfig  `json:"gasReporter" yaml:"gasReporter" mapstructure:"gas_reporter"`
	TestRunner   TestRunnerConfig   `json:"testRunner" yaml:"testRunner" mapstructure:"test_runner"`
	TypeBindings TypeBindingsConfig `json:"typeBindings" yaml:"typeBindings" mapstructure:"type_bindings"`
	Sourcify     SourcifyConfig     `json:"sourcify" yaml:"sourcify" mapstructure:"sourcify"`
}

type PathsConfig struct {
	Artifacts string `json:"artifacts" yaml:"artifacts" mapstructure:"artifacts" validate:"required"`
	Cache     string `json:"cache" yaml:"cache" mapstructure:"cache" validate:"required"`
	Sources   string `json:"sources" yaml:"sources" mapstructure:"sources" validate:"required"`
	Tests     string `json:"tests" yaml:"tests" mapstructure:"tests" validate:"required"`
}

type GasReporterConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
}

type TestRunnerConfig struct {
	Parallel bool  `json:"parallel" yaml:"parallel" mapstructure:"parallel"`
	Timeout  int64 `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"` // milliseconds
}

type TypeBindingsConfig struct {
	OutDir string `json:"outDir" yaml:"outDir" mapstructure:"out_dir" validate:"required"`
	Target string `json:"target" yaml:"target" mapstructure:"target" validate:"required"`
}

// SourcifyConfig enables verification through a sourcify server. The URLs
// are only needed for non-default servers.
type SourcifyConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	APIURL     string `json:"apiUrl,omitempty" yaml:"apiUrl,omitempty" mapstructure:"api_url" validate:"omitempty,url"`
	BrowserURL string `json:"browserUrl,omitempty" yaml:"browserUrl,omitempty" mapstructure:"browser_url" validate:"omitempty,url"`
}

// DefaultToolchainSettings returns the stock project layout with the gas
// reporter and sourcify off and a serial test runner.
func DefaultToolchainSettings() ToolchainSettings {
	return ToolchainSettings{
		Paths: PathsConfig{
			Artifacts: "./artifacts",
			Cache:     "./cache",
			Sources:   "./contracts",
			Tests:     "./test",
		},
		TestRunner: TestRunnerConfig{
			Parallel: false,
			Timeout:  DefaultTestTimeout,
		},
		TypeBindings: TypeBindingsConfig{
			OutDir: "typechain",
			Target: "ethers-v6",
		},
	}
}

// Validate checks that required fields are set and values are valid.
func (t ToolchainSettings) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("toolchain settings: %w", err)
	}
	return nil
}
