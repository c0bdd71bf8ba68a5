// Package cli implements the bcid command line: generation with -p/-m/-t/-r
// and decoding with -d.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bc-vibes/bcid/internal/config"
	"github.com/bc-vibes/bcid/internal/entropy"
	pkglog "github.com/bc-vibes/bcid/pkg/log"
)

const (
	flagPrefix    = "prefix"
	flagMachineID = "machine-id"
	flagTime      = "time"
	flagRandom    = "random"
	flagDecode    = "decode"
	flagCount     = "count"
	flagConfig    = "config"
)

const examples = `  bcid -p TEST
  bcid -p TEST -m 2 -t '2023-12-25T10:30:00'
  bcid -p TEST -r
  bcid -p TEST -m 2 -r
  bcid -p TEST -n 10
  bcid -d TESTjqEmXg1pkaaccfcakuEOY8bbbbbb`

// Env carries the process streams and optional collaborator overrides.
// Nil collaborators are built from configuration.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer

	Source   entropy.Source
	Clock    entropy.Clock
	Location *time.Location
}

func (e Env) withDefaults() Env {
	if e.Stdout == nil {
		e.Stdout = os.Stdout
	}
	if e.Stderr == nil {
		e.Stderr = os.Stderr
	}
	return e
}

// NewRootCommand constructs the bcid command.
func NewRootCommand(env Env) *cobra.Command {
	env = env.withDefaults()
	r := &runner{env: env}

	root := &cobra.Command{
		Use:   "bcid",
		Short: "Generate and decode 32-character base62 identifiers",
		Long: "bcid produces identifiers made of a 4-character prefix and a 28-character base62 payload.\n" +
			"Chronological identifiers embed a UTC timestamp, machine id and random value;\n" +
			"random identifiers (-r) embed the machine id followed by uniform random data.",
		Example:       examples,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return r.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().NFlag() == 0 {
				return cmd.Help()
			}
			if cmd.Flags().Changed(flagDecode) {
				return r.decode(cmd)
			}
			return r.generate(cmd)
		},
	}
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)

	f := root.Flags()
	f.StringP(flagPrefix, "p", "", "4-character prefix (required for generation)")
	f.IntP(flagMachineID, "m", 1, "16-bit machine identifier (0-65535, default from config)")
	f.StringP(flagTime, "t", "", "ISO 8601 date/time (default: current time, ignored with -r)")
	f.BoolP(flagRandom, "r", false, "generate a fully random (non-chronological) identifier")
	f.StringP(flagDecode, "d", "", "decode an existing identifier")
	f.IntP(flagCount, "n", 1, "number of identifiers to generate (1-1000)")
	root.PersistentFlags().String(flagConfig, "", "config file (default ./config/config.yaml)")

	return root
}

type runner struct {
	env Env
	cfg *config.Config
}

// setup loads configuration and stores a logger in the command context.
func (r *runner) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString(flagConfig)
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	r.cfg = cfg

	logCfg := cfg.Log
	logCfg.Output = r.env.Stderr
	logger := pkglog.New(logCfg)

	cmd.SetContext(pkglog.WithLogger(cmd.Context(), logger))
	return nil
}

func (r *runner) warn(format string, args ...any) {
	fmt.Fprintf(r.env.Stderr, "Warning: "+format+"\n", args...)
}
