package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bc-vibes/bcid/internal/entropy"
	"github.com/bc-vibes/bcid/internal/generator"
	pkglog "github.com/bc-vibes/bcid/pkg/log"
)

var errPrefixRequired = errors.New("prefix is required when generating an identifier")

// ignoredWhenDecoding lists generation flags in the order their warnings print.
var ignoredWhenDecoding = []struct {
	flag, label string
}{
	{flagPrefix, "Prefix"},
	{flagMachineID, "Machine ID"},
	{flagTime, "User time"},
	{flagRandom, "Random flag"},
	{flagCount, "Count"},
}

func (r *runner) generators(cmd *cobra.Command) (map[generator.Kind]generator.Generator, error) {
	logger := pkglog.Ctx(cmd.Context())

	source := r.env.Source
	if source == nil {
		source = entropy.NewDeviceSource(r.cfg.Entropy.Device,
			logger.With().Str(pkglog.FieldComponent, "entropy").Logger())
	}
	location := r.env.Location
	if location == nil {
		loc, err := r.cfg.Location()
		if err != nil {
			return nil, err
		}
		location = loc
	}

	return map[generator.Kind]generator.Generator{
		generator.KindChronological: generator.NewChronologicalGenerator(source, r.env.Clock, location),
		generator.KindRandom:        generator.NewRandomGenerator(source),
	}, nil
}

func (r *runner) generate(cmd *cobra.Command) error {
	f := cmd.Flags()
	prefix, _ := f.GetString(flagPrefix)
	userTime, _ := f.GetString(flagTime)
	random, _ := f.GetBool(flagRandom)
	count, _ := f.GetInt(flagCount)

	if !f.Changed(flagPrefix) {
		_ = cmd.Usage()
		return errPrefixRequired
	}

	machineID := r.cfg.MachineID
	if f.Changed(flagMachineID) {
		machineID, _ = f.GetInt(flagMachineID)
	}

	kind := generator.KindChronological
	if random {
		kind = generator.KindRandom
		if userTime != "" {
			r.warn("Time parameter is ignored when generating random identifiers")
			userTime = ""
		}
	}

	gens, err := r.generators(cmd)
	if err != nil {
		return err
	}
	opts := generator.Options{Tag: prefix, MachineID: machineID, Time: userTime}

	var ids []string
	if count == 1 {
		id, err := gens[kind].Generate(opts)
		if err != nil {
			return err
		}
		ids = []string{id}
	} else {
		ids, err = gens[kind].GenerateBatch(opts, count)
		if err != nil {
			return err
		}
	}

	logger := pkglog.Ctx(cmd.Context())
	logger.Debug().
		Str(pkglog.FieldTag, prefix).
		Str(pkglog.FieldKind, kind.String()).
		Int(pkglog.FieldMachineID, machineID).
		Int(pkglog.FieldCount, len(ids)).
		Msg("identifiers generated")

	out := cmd.OutOrStdout()
	for _, id := range ids {
		fmt.Fprintln(out, id)
	}
	return nil
}

func (r *runner) decode(cmd *cobra.Command) error {
	f := cmd.Flags()
	id, _ := f.GetString(flagDecode)

	r.warnIgnored(f)

	res, err := generator.Decode(id)
	if err != nil {
		return err
	}

	logger := pkglog.Ctx(cmd.Context())
	logger.Debug().
		Str(pkglog.FieldIdentifier, id).
		Str(pkglog.FieldKind, res.Kind.String()).
		Bool(pkglog.FieldAmbiguous, res.Ambiguous).
		Msg("identifier decoded")

	if res.Ambiguous {
		r.warn("identifier fields are implausible; the %s classification may be wrong", res.Kind)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Prefix: %s\n", res.Tag)
	fmt.Fprintf(out, "Type: %s\n", res.Kind)
	fmt.Fprintf(out, "Machine ID: %d\n", res.MachineID)
	if res.Kind == generator.KindChronological {
		fmt.Fprintf(out, "Timestamp: %d\n", res.Timestamp)
		fmt.Fprintf(out, "Random Value: %d\n", res.RandomValue)
	} else {
		fmt.Fprintf(out, "Random Part: %s\n", res.RandomPart)
	}
	return nil
}

func (r *runner) warnIgnored(f *pflag.FlagSet) {
	for _, ig := range ignoredWhenDecoding {
		if f.Changed(ig.flag) {
			r.warn("%s is ignored when decoding", ig.label)
		}
	}
}
