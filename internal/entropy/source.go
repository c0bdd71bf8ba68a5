// Package entropy supplies the random bytes and wall-clock readings consumed
// by identifier generation.
package entropy

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	pkglog "github.com/bc-vibes/bcid/pkg/log"
)

// DefaultDevice is read when no other device is configured.
const DefaultDevice = "/dev/urandom"

// Source returns n random bytes per call.
type Source interface {
	Bytes(n int) ([]byte, error)
}

// Uint16 draws two bytes from src as a big-endian value.
func Uint16(src Source) (uint16, error) {
	b, err := src.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// DeviceSource reads from a random device, opening and closing it on every
// draw. When the device cannot be used it degrades to a time-seeded PRNG,
// logging a warning and counting the fallback.
type DeviceSource struct {
	path   string
	logger zerolog.Logger

	fallbacks atomic.Uint64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewDeviceSource creates a DeviceSource for path ("" selects DefaultDevice).
func NewDeviceSource(path string, logger zerolog.Logger) *DeviceSource {
	if path == "" {
		path = DefaultDevice
	}
	return &DeviceSource{
		path:   path,
		logger: logger,
	}
}

func (s *DeviceSource) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("entropy: negative byte count %d", n)
	}
	buf := make([]byte, n)
	if err := s.readDevice(buf); err != nil {
		total := s.fallbacks.Add(1)
		s.logger.Warn().
			Err(err).
			Str(pkglog.FieldDevice, s.path).
			Uint64(pkglog.FieldFallbacks, total).
			Msg("entropy source unavailable, falling back to time-seeded prng")
		s.fillPRNG(buf)
	}
	return buf, nil
}

// Fallbacks reports how many draws were served by the PRNG.
func (s *DeviceSource) Fallbacks() uint64 {
	return s.fallbacks.Load()
}

// Path returns the device path.
func (s *DeviceSource) Path() string {
	return s.path
}

func (s *DeviceSource) readDevice(buf []byte) error {
	f, err := os.Open(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.ReadFull(f, buf); err != nil {
		return fmt.Errorf("read %s: %w", s.path, err)
	}
	return nil
}

func (s *DeviceSource) fillPRNG(buf []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	for i := range buf {
		buf[i] = byte(s.rng.Uint32())
	}
}

// Fixed replays a fixed byte sequence, wrapping around at the end. It exists
// for deterministic tests.
type Fixed struct {
	mu   sync.Mutex
	data []byte
	pos  int
}

// NewFixed creates a Fixed source over data, which must not be empty.
func NewFixed(data ...byte) *Fixed {
	if len(data) == 0 {
		data = []byte{0}
	}
	return &Fixed{data: data}
}

func (f *Fixed) Bytes(n int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]byte, n)
	for i := range out {
		out[i] = f.data[f.pos]
		f.pos = (f.pos + 1) % len(f.data)
	}
	return out, nil
}

// Failing always returns its error; useful to exercise error paths.
type Failing struct {
	Err error
}

func (f Failing) Bytes(int) ([]byte, error) {
	return nil, f.Err
}
