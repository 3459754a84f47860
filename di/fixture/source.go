package fixture

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Source is the per-fixture randomness every generator draws from. One ChaCha8
// stream feeds both numeric draws and UUID bytes, so a seeded fixture is
// reproducible end to end (timestamps excepted, they follow the clock).
type Source struct {
	stream *mrand.ChaCha8
	rng    *mrand.Rand
	now    func() time.Time
}

func newSource(seed uint64, seeded bool, now func() time.Time) *Source {
	var key [32]byte
	if seeded {
		binary.LittleEndian.PutUint64(key[:8], seed)
	} else {
		// crypto/rand.Read never returns an error on supported platforms.
		_, _ = rand.Read(key[:])
	}
	stream := mrand.NewChaCha8(key)
	if now == nil {
		now = time.Now
	}
	return &Source{stream: stream, rng: mrand.New(stream), now: now}
}

// Rand returns the fixture's random generator.
func (s *Source) Rand() *mrand.Rand { return s.rng }

// UUID returns a random (version 4) UUID drawn from the fixture's stream.
func (s *Source) UUID() uuid.UUID {
	u, err := uuid.NewRandomFromReader(s.stream)
	if err != nil {
		return uuid.New()
	}
	return u
}

// Now returns the current time.
func (s *Source) Now() time.Time { return s.now() }

// Between returns a uniform int in [lo, hi].
func (s *Source) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.IntN(hi-lo+1)
}
