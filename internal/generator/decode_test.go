package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLengthBoundaries(t *testing.T) {
	for _, n := range []int{0, 31, 33} {
		_, err := Decode(strings.Repeat("b", n))
		assert.ErrorIs(t, err, ErrInvalidIdentifierLength, "length %d", n)
	}
}

func TestDecodeTagIsNotValidated(t *testing.T) {
	res, err := Decode("#$%&aacMNOPQRSTUVWXYZ0123456789a")
	require.NoError(t, err)
	assert.Equal(t, "#$%&", res.Tag)
	assert.Equal(t, KindRandom, res.Kind)
}

func TestDecodeKnownMisclassification(t *testing.T) {
	// Produced by the random generator with machine id 0, yet the leading
	// digits happen to decode to year 2051.
	res, err := Decode("TESTaaajyN2hwL0fmBQ5kzO3ixM1gvKZ")
	require.NoError(t, err)
	assert.Equal(t, KindChronological, res.Kind)
	assert.Equal(t, uint64(2051844489996785), res.Timestamp)
	assert.Equal(t, uint16(47844), res.MachineID)
	assert.True(t, res.Ambiguous, "month 84 is not a calendar month")
}

func TestDecodeFlagsImplausibleTimestamp(t *testing.T) {
	id, err := assembleChronological("TEST", 2023139910300000, 7, 8000, paddingFixture())
	require.NoError(t, err)

	res, err := Decode(id)
	require.NoError(t, err)
	assert.Equal(t, KindChronological, res.Kind)
	assert.Equal(t, uint16(7), res.MachineID)
	assert.True(t, res.Ambiguous)
	_, ok := res.Time()
	assert.False(t, ok)
}

func TestDecodeInvalidMachineCharacters(t *testing.T) {
	chrono := "TESTjqEmXg1pk-accfcakuEOY8bbbbbb"
	_, err := Decode(chrono)
	assert.ErrorIs(t, err, ErrInvalidBase62Character)

	random := "TESTa-cMNOPQRSTUVWXYZ0123456789a"
	_, err = Decode(random)
	assert.ErrorIs(t, err, ErrInvalidBase62Character)
}

func TestDecodeRandomMachineAboveRange(t *testing.T) {
	// "999" is 238327, beyond 16 bits.
	res, err := Decode("TEST999" + strings.Repeat("a", 25))
	require.NoError(t, err)
	assert.Equal(t, KindRandom, res.Kind)
	assert.True(t, res.Ambiguous)
}

func TestDecodeShortRandomValueAbsorbsPadding(t *testing.T) {
	// A random value of 5 encodes to one digit; the bounded scan keeps going
	// into the padding while the value stays within 16 bits.
	id, err := assembleChronological("TEST", 2023122510300000, 2, 5, paddingFixture())
	require.NoError(t, err)

	res, err := Decode(id)
	require.NoError(t, err)
	assert.Equal(t, uint16(2), res.MachineID)
	assert.Equal(t, uint16(5*62*62+0*62+10), res.RandomValue)
}

func TestScanBounded(t *testing.T) {
	field, n := scanBounded("rdbrdb", MaxMachineID)
	assert.Equal(t, "rdb", field)
	assert.Equal(t, uint64(65535), n)

	field, n = scanBounded("ab!cd", MaxMachineID)
	assert.Equal(t, "ab", field)
	assert.Equal(t, uint64(1), n)

	field, n = scanBounded("", maxTimestamp)
	assert.Empty(t, field)
	assert.Zero(t, n)
}
