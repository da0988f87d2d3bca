package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/Bidon15/chainconf"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set via ldflags during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Global flag variables
var (
	cfgFile      string
	envFile      string
	registryPath string
	reveal       bool
	output       string
	verbose      bool
	logFormat    string
)

// Defaults
const (
	EnvPrefix         = "CHAINCONF"
	DefaultConfigName = "chainconf"
	DefaultEnvFile    = ".env"
)

// Output formats
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

var (
	rootCmd    *cobra.Command
	versionCmd *cobra.Command

	// settings and logger are set up by initConfig for each invocation.
	settings *viper.Viper
	logger   *slog.Logger
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "chainconf",
		Short: "chainconf - per-chain deployment configuration for EVM toolchains",
		Long: `chainconf resolves the network, verification and compiler configuration
an EVM build/test/deploy toolchain runs with.

Remote networks are only emitted when a deployer key is present. Chains whose
RPC endpoint needs a provider key fail resolution when that key is missing.

Secrets are read from the process environment, after loading --env-file:
  DEPLOYER_KEY    Deployer private key; enables the remote networks
  INFURA_KEY      RPC-provider key substituted into templated endpoints
  ETHERSCAN_KEY, BERASCAN_KEY, BERA_EXPLORER_KEY, STORYSCAN_KEY,
  TAC_SPB_EXPLORER_KEY
                  Explorer API keys used for contract verification

Settings (in order of priority):
  1. Command-line flags (--registry)
  2. Environment variables (CHAINCONF_REGISTRY, CHAINCONF_LOCAL_CHAIN_ID)
  3. Config file (./chainconf.yaml or --config)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print the version, commit hash, and build date of chainconf",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "chainconf %s\n", Version)
			if verbose {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  commit:  %s\n", Commit)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  built:   %s\n", BuildDate)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./chainconf.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", DefaultEnvFile, "dotenv file to load secrets from")
	rootCmd.PersistentFlags().StringVar(&registryPath, "registry", "", "chain registry file (or CHAINCONF_REGISTRY env, default is the built-in catalog)")
	rootCmd.PersistentFlags().BoolVar(&reveal, "reveal", false, "print secrets instead of masking them")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", OutputTable, "output format: table, json or yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newNetworksCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newCompilerCmd())
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteWithArgs runs the root command with the provided arguments (for testing)
func ExecuteWithArgs(args []string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// SetOutput sets the output writer for the root command (for testing)
func SetOutput(w io.Writer) {
	rootCmd.SetOut(w)
	rootCmd.SetErr(w)
}

// ResetFlags resets all global flags to their defaults (for testing)
func ResetFlags() {
	cfgFile = ""
	envFile = DefaultEnvFile
	registryPath = ""
	reveal = false
	output = OutputTable
	verbose = false
	logFormat = "text"
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
}

// initConfig sets up logging, loads the env file and reads the settings file.
func initConfig(cmd *cobra.Command) error {
	switch output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unknown output format %q (use table, json or yaml)", output)
	}

	logger = newLogger(cmd.ErrOrStderr())

	if err := loadEnvFile(); err != nil {
		return err
	}

	settings = viper.New()
	if cfgFile != "" {
		settings.SetConfigFile(cfgFile)
	} else {
		settings.AddConfigPath(".")
		settings.SetConfigName(DefaultConfigName)
		settings.SetConfigType("yaml")
	}

	settings.SetEnvPrefix(EnvPrefix)
	settings.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	settings.AutomaticEnv()
	if err := settings.BindPFlag("registry", rootCmd.PersistentFlags().Lookup("registry")); err != nil {
		return err
	}

	// An explicit config file must exist; the default one is optional.
	if err := settings.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	logger.Debug("settings loaded", slog.String("config", settings.ConfigFileUsed()))
	return nil
}

// loadEnvFile loads secrets from envFile without overriding variables that
// are already set. A missing default file is ignored.
func loadEnvFile() error {
	if envFile == "" {
		return nil
	}
	err := godotenv.Load(envFile)
	if err == nil {
		logger.Debug("env file loaded", slog.String("path", envFile))
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && envFile == DefaultEnvFile {
		return nil
	}
	return fmt.Errorf("failed to load env file: %w", err)
}

func newLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if logFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// loadRegistry returns the registry named by the settings, or the built-in
// catalog.
func loadRegistry() (*chainconf.Registry, error) {
	path := settings.GetString("registry")
	if path == "" {
		return chainconf.DefaultRegistry(), nil
	}
	return chainconf.LoadRegistryFile(path)
}

// loadCompilerSettings overlays the compiler section of the settings onto
// the defaults.
func loadCompilerSettings() (chainconf.CompilerSettings, error) {
	c := chainconf.DefaultCompilerSettings()
	if err := settings.UnmarshalKey("compiler", &c); err != nil {
		return c, fmt.Errorf("failed to parse compiler settings: %w", err)
	}
	return c, c.Validate()
}

// loadToolchainSettings overlays the toolchain section of the settings onto
// the defaults.
func loadToolchainSettings() (chainconf.ToolchainSettings, error) {
	t := chainconf.DefaultToolchainSettings()
	if err := settings.UnmarshalKey("toolchain", &t); err != nil {
		return t, fmt.Errorf("failed to parse toolchain settings: %w", err)
	}
	return t, t.Validate()
}

// newResolver creates a resolver from the loaded settings.
func newResolver() (*chainconf.Resolver, error) {
	reg, err := loadRegistry()
	if err != nil {
		return nil, err
	}
	compiler, err := loadCompilerSettings()
	if err != nil {
		return nil, err
	}
	toolchain, err := loadToolchainSettings()
	if err != nil {
		return nil, err
	}

	return chainconf.NewResolver(reg,
		chainconf.WithLogger(logger),
		chainconf.WithCompiler(compiler),
		chainconf.WithToolchain(toolchain),
		chainconf.WithLocalChainID(settings.GetUint64("local_chain_id")),
	), nil
}

// resolveEnvironment reads credentials from the environment and resolves
// them. Secrets are masked unless --reveal is set.
func resolveEnvironment() (*chainconf.Environment, chainconf.Credentials, error) {
	r, err := newResolver()
	if err != nil {
		return nil, chainconf.Credentials{}, err
	}

	creds := chainconf.CredentialsFromEnv(r.Registry())
	env, err := r.Environment(creds)
	if err != nil {
		return nil, creds, err
	}
	if !reveal {
		env = env.Redacted()
	}
	return env, creds, nil
}
