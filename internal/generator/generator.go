package generator

import (
	"fmt"
	"time"
)

const (
	IdentifierLength   = 32
	TagLength          = 4
	PayloadLength      = IdentifierLength - TagLength
	MachineFieldLength = 3

	MaxMachineID = 1<<16 - 1
	MaxBatch     = 1000

	// maxTimestamp is the largest 16-digit decimal, YYYYMMDDHHMMSSmm.
	maxTimestamp = 9_999_999_999_999_999
	minYear      = 1970
	maxYear      = 2100

	paddingBytes = 21
	entropyChars = PayloadLength - MachineFieldLength
)

// Generator defines the interface for BCID generation, validation, and parsing.
type Generator interface {
	Generate(opts Options) (string, error)
	GenerateBatch(opts Options, count int) ([]string, error)
	Validate(id string) (bool, string) // (valid, reason)
	Parse(id string) (*ParseResult, error)
}

// Options are the caller-supplied inputs of a generation.
type Options struct {
	Tag       string
	MachineID int
	// Time is an optional calendar string. Random generation ignores it.
	Time string
}

func (o Options) validate() error {
	if len(o.Tag) != TagLength {
		return fmt.Errorf("%w: got %d", ErrInvalidTagLength, len(o.Tag))
	}
	if o.MachineID < 0 || o.MachineID > MaxMachineID {
		return fmt.Errorf("%w: got %d", ErrInvalidMachineID, o.MachineID)
	}
	return nil
}

// Kind is the classification the decoder assigns to a payload.
type Kind int

const (
	KindChronological Kind = iota + 1
	KindRandom
)

func (k Kind) String() string {
	switch k {
	case KindChronological:
		return "chronological"
	case KindRandom:
		return "random"
	default:
		return "unknown"
	}
}

// ParseResult holds the fields recovered from an identifier.
type ParseResult struct {
	Tag       string
	Kind      Kind
	MachineID uint16

	Timestamp   uint64 // chronological only: YYYYMMDDHHMMSSmm
	RandomValue uint16 // chronological only
	RandomPart  string // random only: the literal 25-character entropy field

	// Ambiguous is set when the classification holds on the wire but the
	// recovered fields are implausible: a chronological timestamp that is not
	// a calendar instant, or a machine field above 65535.
	Ambiguous bool
}

// Time converts the chronological timestamp to a UTC instant. ok is false for
// random identifiers and for timestamps that are not real calendar instants.
func (r *ParseResult) Time() (time.Time, bool) {
	if r.Kind != KindChronological {
		return time.Time{}, false
	}
	return timestampTime(r.Timestamp)
}

func generateBatch(g Generator, opts Options, count int) ([]string, error) {
	if count < 1 || count > MaxBatch {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, count)
	}
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id, err := g.Generate(opts)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
