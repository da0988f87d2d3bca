package main

import (
	"fmt"

	"github.com/Bidon15/chainconf"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Inspect contract-verification settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the block-explorer verification records",
		Long: `List one verification record per chain that has a block explorer.

A chain whose explorer key is not set is still listed; its key is empty.
Records do not depend on DEPLOYER_KEY or INFURA_KEY.`,
		Args: cobra.NoArgs,
		RunE: runVerifyList,
	})

	return cmd
}

func runVerifyList(cmd *cobra.Command, args []string) error {
	r, err := newResolver()
	if err != nil {
		return err
	}

	records := r.Verification(chainconf.CredentialsFromEnv(r.Registry()))
	if !reveal {
		for i := range records {
			records[i].APIKey = chainconf.MaskSecret(records[i].APIKey)
		}
	}

	if ok, err := printStructured(cmd.OutOrStdout(), records); ok {
		return err
	}
	return printVerificationTable(cmd, records)
}

func printVerificationTable(cmd *cobra.Command, records []chainconf.VerificationConfig) error {
	w := newTable(cmd.OutOrStdout())
	printTableHeader(w, "CHAIN", "CHAIN ID", "API URL", "API KEY", "CUSTOM")
	for _, v := range records {
		key := v.APIKey
		if key == "" {
			key = colorYellow("not set")
		}
		custom := "no"
		if v.Custom {
			custom = "yes"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", v.Chain, v.ChainID, v.APIURL, key, custom)
	}
	return w.Flush()
}
