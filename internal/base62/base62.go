// Package base62 encodes unsigned integers with the lowercase-first
// a-zA-Z0-9 alphabet used by BCID payloads.
package base62

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Alphabet is ordered lowercase first, so 'a' is digit zero.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Base is the radix of the encoding.
const Base = uint64(len(Alphabet))

var (
	ErrInvalidCharacter = errors.New("invalid base62 character")
	ErrOverflow         = errors.New("base62 value overflows uint64")
)

var index = func() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		t[Alphabet[i]] = int8(i)
	}
	return t
}()

// Encode returns the shortest representation of n. Zero encodes to "a".
func Encode(n uint64) string {
	if n == 0 {
		return Alphabet[:1]
	}

	var buf [11]byte // 62^11 > 2^64
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = Alphabet[n%Base]
		n /= Base
	}
	return string(buf[i:])
}

// Decode parses s as a big-endian base62 number. The empty string is zero.
func Decode(s string) (uint64, error) {
	var n uint64
	for i := 0; i < len(s); i++ {
		d, ok := Index(s[i])
		if !ok {
			return 0, fmt.Errorf("%w: %q at offset %d", ErrInvalidCharacter, s[i], i)
		}
		if n > (math.MaxUint64-uint64(d))/Base {
			return 0, fmt.Errorf("%w: %q", ErrOverflow, s)
		}
		n = n*Base + uint64(d)
	}
	return n, nil
}

// DecodeLegacy keeps the historical contract of the command-line tools:
// any invalid character yields 0, indistinguishable from decoding "a".
// Callers that care about the difference should use Decode.
func DecodeLegacy(s string) uint64 {
	n, err := Decode(s)
	if err != nil {
		return 0
	}
	return n
}

// Index returns the digit value of c.
func Index(c byte) (int, bool) {
	d := index[c]
	return int(d), d >= 0
}

// Valid reports whether every byte of s belongs to the alphabet.
func Valid(s string) bool {
	for i := 0; i < len(s); i++ {
		if index[s[i]] < 0 {
			return false
		}
	}
	return true
}

// PadLeft left-pads s with the zero digit up to width characters.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(Alphabet[:1], width-len(s)) + s
}
