package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/bc-vibes/bcid/internal/base62"
	"github.com/bc-vibes/bcid/internal/entropy"
)

// ChronologicalGenerator builds identifiers whose payload starts with a
// base62 timestamp, so identifiers of equal tag sort roughly by creation time.
//
// Layout after the tag: timestamp (variable) | machine (3) | random (variable)
// | padding (fills to 28).
type ChronologicalGenerator struct {
	source   entropy.Source
	clock    entropy.Clock
	location *time.Location
}

// NewChronologicalGenerator creates a ChronologicalGenerator. clock defaults to
// the system clock and location, which interprets explicit calendar strings,
// to time.Local.
func NewChronologicalGenerator(source entropy.Source, clock entropy.Clock, location *time.Location) *ChronologicalGenerator {
	if clock == nil {
		clock = entropy.SystemClock{}
	}
	if location == nil {
		location = time.Local
	}
	return &ChronologicalGenerator{
		source:   source,
		clock:    clock,
		location: location,
	}
}

func (g *ChronologicalGenerator) Generate(opts Options) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	var ts uint64
	if opts.Time != "" {
		at, err := ParseCalendar(opts.Time, g.location)
		if err != nil {
			return "", err
		}
		ts = timestampDigits(at, false)
	} else {
		ts = timestampDigits(g.clock.Now(), true)
	}

	random, err := entropy.Uint16(g.source)
	if err != nil {
		return "", fmt.Errorf("failed to draw random value: %w", err)
	}
	padding, err := g.source.Bytes(paddingBytes)
	if err != nil {
		return "", fmt.Errorf("failed to draw padding: %w", err)
	}

	return assembleChronological(opts.Tag, ts, uint16(opts.MachineID), random, padding)
}

func (g *ChronologicalGenerator) GenerateBatch(opts Options, count int) ([]string, error) {
	return generateBatch(g, opts, count)
}

func (g *ChronologicalGenerator) Validate(id string) (bool, string) {
	res, err := Decode(id)
	if err != nil {
		return false, err.Error()
	}
	if res.Kind != KindChronological {
		return false, "payload does not decode as chronological"
	}
	if res.Ambiguous {
		return false, fmt.Sprintf("timestamp %016d is not a calendar instant", res.Timestamp)
	}
	return true, ""
}

func (g *ChronologicalGenerator) Parse(id string) (*ParseResult, error) {
	return Decode(id)
}

func assembleChronological(tag string, ts uint64, machineID, random uint16, padding []byte) (string, error) {
	tsField := base62.Encode(ts)
	machineField := positionalMachineField(machineID)
	randomField := base62.Encode(uint64(random))

	padLen := PayloadLength - len(tsField) - MachineFieldLength - len(randomField)
	if padLen < 0 {
		padLen = 0
	}
	if padLen > len(padding) {
		return "", fmt.Errorf("%w: need %d padding bytes, have %d", ErrMalformedPayload, padLen, len(padding))
	}

	var b strings.Builder
	b.Grow(IdentifierLength)
	b.WriteString(tag)
	b.WriteString(tsField)
	b.WriteString(machineField)
	b.WriteString(randomField)
	for _, r := range padding[:padLen] {
		b.WriteByte(skewedDigit(r))
	}

	id := b.String()
	if len(id) > IdentifierLength {
		id = id[:IdentifierLength]
	}
	if len(id) != IdentifierLength {
		return "", fmt.Errorf("%w: assembled %d characters", ErrMalformedPayload, len(id))
	}
	return id, nil
}

// positionalMachineField writes the machine id as exactly three digits.
func positionalMachineField(m uint16) string {
	const base = base62.Base
	v := uint64(m)
	return string([]byte{
		base62.Alphabet[v/(base*base)],
		base62.Alphabet[(v/base)%base],
		base62.Alphabet[v%base],
	})
}

// skewedDigit keeps only the most significant base62 digit of b. Bytes of 62
// and above collapse onto 'b'..'e', so the padding alphabet is not uniform.
// Existing identifiers were produced this way and it must not change.
func skewedDigit(b byte) byte {
	return base62.Encode(uint64(b))[0]
}
