package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the full configuration for the host toolchain",
		Long: `Resolve networks, verification records and compiler settings in one
pass. With --output json or yaml the result is printed as a document the
host toolchain can load directly.

Resolution fails as a whole when DEPLOYER_KEY is set and a registered chain
needs INFURA_KEY that is not set.`,
		Args: cobra.NoArgs,
		RunE: runResolve,
	}
}

func runResolve(cmd *cobra.Command, args []string) error {
	env, creds, err := resolveEnvironment()
	if err != nil {
		return err
	}

	if ok, err := printStructured(cmd.OutOrStdout(), env.Document()); ok {
		return err
	}

	if err := printNetworksTable(cmd, env.Networks.All(), creds); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())
	if err := printVerificationTable(cmd, env.Verification); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return printCompilerTable(cmd, env.Compiler, env.Toolchain)
}
