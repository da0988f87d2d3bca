package main

import (
	"fmt"

	"github.com/Bidon15/chainconf"
	"github.com/spf13/cobra"
)

func newCompilerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compiler",
		Short: "Show the compiler and toolchain settings",
		Long: `Show the compiler settings and project layout passed to the host
toolchain. These do not depend on any secret.`,
		Args: cobra.NoArgs,
		RunE: runCompiler,
	}
}

func runCompiler(cmd *cobra.Command, args []string) error {
	compiler, err := loadCompilerSettings()
	if err != nil {
		return err
	}
	toolchain, err := loadToolchainSettings()
	if err != nil {
		return err
	}

	v := struct {
		Compiler  chainconf.CompilerSettings  `json:"compiler" yaml:"compiler"`
		Toolchain chainconf.ToolchainSettings `json:"toolchain" yaml:"toolchain"`
	}{compiler, toolchain}
	if ok, err := printStructured(cmd.OutOrStdout(), v); ok {
		return err
	}
	return printCompilerTable(cmd, compiler, toolchain)
}

func printCompilerTable(cmd *cobra.Command, c chainconf.CompilerSettings, t chainconf.ToolchainSettings) error {
	w := newTable(cmd.OutOrStdout())
	fmt.Fprintf(w, "Compiler:\tsolc %s\n", c.Version)
	fmt.Fprintf(w, "Optimizer:\t%t (runs: %d)\n", c.Optimizer.Enabled, c.Optimizer.Runs)
	fmt.Fprintf(w, "Via IR:\t%t\n", c.ViaIR)
	fmt.Fprintf(w, "Sources:\t%s\n", t.Paths.Sources)
	fmt.Fprintf(w, "Tests:\t%s\n", t.Paths.Tests)
	fmt.Fprintf(w, "Artifacts:\t%s\n", t.Paths.Artifacts)
	fmt.Fprintf(w, "Cache:\t%s\n", t.Paths.Cache)
	fmt.Fprintf(w, "Type Bindings:\t%s (%s)\n", t.TypeBindings.OutDir, t.TypeBindings.Target)
	fmt.Fprintf(w, "Test Timeout:\t%dms\n", t.TestRunner.Timeout)
	fmt.Fprintf(w, "Gas Reporter:\t%t\n", t.GasReporter.Enabled)
	fmt.Fprintf(w, "Sourcify:\t%t\n", t.Sourcify.Enabled)
	return w.Flush()
}
