package generator

import (
	"fmt"

	"github.com/bc-vibes/bcid/internal/base62"
)

// Decode splits id into its fields. The wire format carries no kind marker,
// so the kind is inferred: the longest payload prefix whose value fits in 16
// decimal digits is read as a timestamp, and the identifier is chronological
// when that timestamp's year lies in [1970, 2100].
//
// The inference can be wrong. A few percent of random identifiers decode
// to a plausible year, and chronological identifiers outside the year window
// decode as random. Changing the bounds would reclassify stored identifiers.
func Decode(id string) (*ParseResult, error) {
	if len(id) != IdentifierLength {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidIdentifierLength, len(id))
	}

	payload := id[TagLength:]
	res := &ParseResult{Tag: id[:TagLength]}

	tsField, ts := scanBounded(payload, maxTimestamp)
	if year := timestampYear(ts); year >= minYear && year <= maxYear {
		return decodeChronological(res, payload, tsField, ts)
	}
	return decodeRandom(res, payload)
}

func decodeChronological(res *ParseResult, payload, tsField string, ts uint64) (*ParseResult, error) {
	pos := len(tsField)
	if pos+MachineFieldLength > len(payload) {
		return nil, fmt.Errorf("%w: timestamp field leaves no room for the machine field", ErrMalformedPayload)
	}

	machine, err := decodeMachineField(payload[pos : pos+MachineFieldLength])
	if err != nil {
		return nil, err
	}
	pos += MachineFieldLength

	_, random := scanBounded(payload[pos:], MaxMachineID)

	res.Kind = KindChronological
	res.Timestamp = ts
	res.MachineID = uint16(machine)
	res.RandomValue = uint16(random)
	_, valid := timestampTime(ts)
	res.Ambiguous = !valid || machine > MaxMachineID
	return res, nil
}

func decodeRandom(res *ParseResult, payload string) (*ParseResult, error) {
	machine, err := decodeMachineField(payload[:MachineFieldLength])
	if err != nil {
		return nil, err
	}

	res.Kind = KindRandom
	res.MachineID = uint16(machine)
	res.RandomPart = payload[MachineFieldLength:]
	res.Ambiguous = machine > MaxMachineID
	return res, nil
}

// scanBounded returns the longest prefix of s whose base62 value does not
// exceed bound, along with that value. Scanning also stops at the first byte
// outside the alphabet.
func scanBounded(s string, bound uint64) (string, uint64) {
	var n uint64
	end := 0
	for end < len(s) {
		d, ok := base62.Index(s[end])
		if !ok || n > (bound-uint64(d))/base62.Base {
			break
		}
		n = n*base62.Base + uint64(d)
		end++
	}
	return s[:end], n
}

// decodeMachineField reads the fixed three-digit field. Values above 65535
// cannot come from a generator but are representable; callers flag them.
func decodeMachineField(field string) (uint64, error) {
	n, err := base62.Decode(field)
	if err != nil {
		return 0, fmt.Errorf("%w: machine field %q", ErrInvalidBase62Character, field)
	}
	return n, nil
}
