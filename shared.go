package uuidgen

import (
	"sync"
	"time"
)

// SyncTimeGenerator serializes calls to a single TimeGenerator so it can be
// shared between goroutines.
type SyncTimeGenerator struct {
	mu  sync.Mutex
	gen *TimeGenerator
}

// NewSyncTimeGenerator takes ownership of gen. gen must not be used
// directly afterwards.
func NewSyncTimeGenerator(gen *TimeGenerator) *SyncTimeGenerator {
	return &SyncTimeGenerator{gen: gen}
}

// New generates a version 1 UUID for the current time.
func (s *SyncTimeGenerator) New() (UUID, error) {
	return s.NewWithTime(time.Now())
}

// NewWithTime generates a version 1 UUID as if the clock read t.
func (s *SyncTimeGenerator) NewWithTime(t time.Time) (UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen.NewWithTime(t)
}

// State returns a copy of the wrapped generator's state.
func (s *SyncTimeGenerator) State() TimeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen.State()
}

// The process-wide generator behind NewV1. It is created once, either
// injected with SetDefault or built lazily by Default, and lives for the
// rest of the process.
var (
	defaultMu  sync.Mutex
	defaultGen *SyncTimeGenerator
)

// SetDefault installs g as the process-wide generator. It must run before
// the first call to Default or NewV1 and fails with ErrDefaultInitialized
// afterwards.
func SetDefault(g *SyncTimeGenerator) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultGen != nil {
		return ErrDefaultInitialized
	}
	defaultGen = g
	return nil
}

// Default returns the process-wide generator, creating one with a random
// node id on first use.
func Default() (*SyncTimeGenerator, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultGen == nil {
		gen, err := NewTimeGenerator(nil)
		if err != nil {
			return nil, err
		}
		defaultGen = NewSyncTimeGenerator(gen)
	}
	return defaultGen, nil
}

// NewV1 generates a version 1 UUID with the process-wide generator.
func NewV1() (UUID, error) {
	g, err := Default()
	if err != nil {
		return Nil, err
	}
	return g.New()
}
