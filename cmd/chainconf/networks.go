package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Bidon15/chainconf"
	"github.com/spf13/cobra"
)

func newNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "Inspect the resolved networks",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the resolved networks",
		Long: `List every resolved network, remote ones first in registry order,
followed by the local simulated network.

Without DEPLOYER_KEY only the local network is listed.`,
		Args: cobra.NoArgs,
		RunE: runNetworksList,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Show one resolved network",
		Args:  cobra.ExactArgs(1),
		RunE:  runNetworksShow,
	})

	return cmd
}

func runNetworksList(cmd *cobra.Command, args []string) error {
	env, creds, err := resolveEnvironment()
	if err != nil {
		return err
	}

	if ok, err := printStructured(cmd.OutOrStdout(), env.Networks); ok {
		return err
	}
	return printNetworksTable(cmd, env.Networks.All(), creds)
}

func runNetworksShow(cmd *cobra.Command, args []string) error {
	env, creds, err := resolveEnvironment()
	if err != nil {
		return err
	}

	n, err := env.Networks.Get(args[0])
	if err != nil {
		return err
	}

	if ok, err := printStructured(cmd.OutOrStdout(), n); ok {
		return err
	}

	w := newTable(cmd.OutOrStdout())
	fmt.Fprintf(w, "Name:\t%s\n", n.Name)
	fmt.Fprintf(w, "Chain ID:\t%d\n", n.ChainID)
	if n.Local {
		fmt.Fprintf(w, "Type:\tlocal\n")
		fmt.Fprintf(w, "Gas:\t%s\n", n.Gas)
		fmt.Fprintf(w, "Gas Price:\t%s\n", n.GasPrice)
		fmt.Fprintf(w, "Unlimited Contract Size:\t%t\n", n.AllowUnlimitedContractSize)
	} else {
		fmt.Fprintf(w, "Type:\tremote\n")
		fmt.Fprintf(w, "URL:\t%s\n", n.URL)
		fmt.Fprintf(w, "Account:\t%s\n", accountLabel(n, creds))
	}
	return w.Flush()
}

func printNetworksTable(cmd *cobra.Command, networks []chainconf.NetworkConfig, creds chainconf.Credentials) error {
	w := newTable(cmd.OutOrStdout())
	printTableHeader(w, "NAME", "CHAIN ID", "URL", "ACCOUNT")
	for _, n := range networks {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", n.Name, n.ChainID, orDash(n.URL), accountLabel(n, creds))
	}
	return w.Flush()
}

// accountLabel shows the deployer as its address. The key itself is only
// printed with --reveal.
func accountLabel(n chainconf.NetworkConfig, creds chainconf.Credentials) string {
	if len(n.Accounts) == 0 {
		return "-"
	}
	if reveal {
		return strings.Join(n.Accounts, ",")
	}
	addr, err := creds.DeployerAddress()
	if err != nil {
		logger.Debug("deployer address unavailable", slog.String("error", err.Error()))
		return strings.Join(n.Accounts, ",")
	}
	return addr.Hex()
}
