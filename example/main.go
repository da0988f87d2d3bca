package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/Bidon15/chainconf"
)

// Example usage of chainconf as a library:
// - Reading credentials from the environment
// - Resolving networks and verification records
// - Emitting the host configuration document with secrets masked

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	reg := chainconf.DefaultRegistry()
	r := chainconf.NewResolver(reg, chainconf.WithLogger(logger))

	env, err := r.Environment(chainconf.CredentialsFromEnv(reg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("chainconf example")
	fmt.Println("=================")
	fmt.Printf("Networks: %v\n", env.Networks.Names())
	fmt.Println()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env.Redacted().Document()); err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		os.Exit(1)
	}
}
