package idgen

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/adisonshadow/adb/pkg/meta"
)

// Sequence hands out auto-increment ids
type Sequence struct {
	mu   sync.Mutex
	next int64
	step int64
}

// NewSequence creates a sequence for cfg. Start and increment default to 1.
func NewSequence(cfg meta.AutoIncrementIDConfig) (*Sequence, error) {
	s := &Sequence{next: 1, step: 1}
	if cfg.StartValue != nil {
		if *cfg.StartValue < 1 {
			return nil, fmt.Errorf("%w: start value %d", ErrInvalidConfig, *cfg.StartValue)
		}
		s.next = *cfg.StartValue
	}
	if cfg.Increment != nil {
		if *cfg.Increment < 1 {
			return nil, fmt.Errorf("%w: increment %d", ErrInvalidConfig, *cfg.Increment)
		}
		s.step = *cfg.Increment
	}
	return s, nil
}

// Next returns the current value and advances the sequence
func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.next
	s.next += s.step
	return v
}

// Peek returns the value the next call to Next will return
func (s *Sequence) Peek() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// ShortID returns a 26 character lowercase ULID, handy for descriptor ids
func ShortID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String())
}
