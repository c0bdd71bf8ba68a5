package generator

import (
	"fmt"
	"strings"

	"github.com/bc-vibes/bcid/internal/base62"
	"github.com/bc-vibes/bcid/internal/entropy"
)

// RandomGenerator builds identifiers with no timestamp: a 3-character machine
// field followed by 25 uniformly drawn base62 characters.
type RandomGenerator struct {
	source entropy.Source
}

// NewRandomGenerator creates a RandomGenerator.
func NewRandomGenerator(source entropy.Source) *RandomGenerator {
	return &RandomGenerator{source: source}
}

// Generate ignores opts.Time.
func (g *RandomGenerator) Generate(opts Options) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	raw, err := g.source.Bytes(entropyChars)
	if err != nil {
		return "", fmt.Errorf("failed to draw entropy: %w", err)
	}

	return assembleRandom(opts.Tag, uint16(opts.MachineID), raw)
}

func (g *RandomGenerator) GenerateBatch(opts Options, count int) ([]string, error) {
	return generateBatch(g, opts, count)
}

func (g *RandomGenerator) Validate(id string) (bool, string) {
	res, err := Decode(id)
	if err != nil {
		return false, err.Error()
	}
	if res.Kind != KindRandom {
		return false, "payload decodes as chronological"
	}
	if res.Ambiguous {
		return false, "machine field exceeds 65535"
	}
	if !base62.Valid(res.RandomPart) {
		return false, "random part contains characters outside the base62 alphabet"
	}
	return true, ""
}

func (g *RandomGenerator) Parse(id string) (*ParseResult, error) {
	return Decode(id)
}

func assembleRandom(tag string, machineID uint16, raw []byte) (string, error) {
	if len(raw) != entropyChars {
		return "", fmt.Errorf("%w: need %d entropy bytes, have %d", ErrMalformedPayload, entropyChars, len(raw))
	}

	var b strings.Builder
	b.Grow(IdentifierLength)
	b.WriteString(tag)
	b.WriteString(paddedMachineField(machineID))
	for _, r := range raw {
		b.WriteByte(base62.Alphabet[uint64(r)%base62.Base])
	}

	id := b.String()
	if len(id) != IdentifierLength {
		return "", fmt.Errorf("%w: assembled %d characters", ErrMalformedPayload, len(id))
	}
	return id, nil
}

// paddedMachineField encodes the machine id and left-pads it with 'a'. For
// ids up to 65535 it yields the same three characters as
// positionalMachineField.
func paddedMachineField(m uint16) string {
	return base62.PadLeft(base62.Encode(uint64(m)), MachineFieldLength)
}
