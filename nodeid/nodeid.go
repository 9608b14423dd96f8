package nodeid

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/Lzww0608/uuidgen"
)

const (
	// MaxSequence is the largest allocation number that maps to a node id.
	MaxSequence = 1<<40 - 1

	multicastBit = 1 << 40
)

var (
	// ErrExhausted indicates the backing counter went past MaxSequence.
	ErrExhausted = errors.New("nodeid: node id space exhausted")

	// ErrClockRollback indicates the wall clock is behind the last time
	// recorded for this instance.
	ErrClockRollback = errors.New("nodeid: clock moved backwards")

	// ErrUnknownTag indicates the allocation table has no row for the tag.
	ErrUnknownTag = errors.New("nodeid: unknown allocation tag")
)

// Allocator leases a node id that no other caller of the same backend
// receives.
type Allocator interface {
	Next(ctx context.Context) (uint64, error)
}

// ToNodeID maps an allocation number to a node id with the multicast bit set.
func ToNodeID(seq uint64) (uint64, error) {
	if seq > MaxSequence {
		return 0, ErrExhausted
	}
	return seq | multicastBit, nil
}

// Provider leases one node id from a and returns it as a fixed provider.
func Provider(ctx context.Context, a Allocator) (uuidgen.StaticNodeIDProvider, error) {
	id, err := a.Next(ctx)
	if err != nil {
		return 0, err
	}
	return uuidgen.StaticNodeIDProvider(id), nil
}

// NewGenerator builds a time-based generator on a freshly leased node id.
func NewGenerator(ctx context.Context, a Allocator) (*uuidgen.TimeGenerator, error) {
	p, err := Provider(ctx, a)
	if err != nil {
		return nil, err
	}
	return uuidgen.NewTimeGenerator(p)
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
