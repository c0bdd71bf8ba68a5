package main

import (
	"fmt"
	"os"

	"github.com/bc-vibes/bcid/internal/cli"
	pkglog "github.com/bc-vibes/bcid/pkg/log"
)

func main() {
	// Global fallback logger until the command loads its own config.
	pkglog.Init(pkglog.Config{
		Level:       os.Getenv("BCID_LOG_LEVEL"),
		ServiceName: "bcid",
	})

	root := cli.NewRootCommand(cli.Env{Stdout: os.Stdout, Stderr: os.Stderr})
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
