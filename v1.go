package uuidgen

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"time"
)

const (
	// MaxPerMillisecond is the number of time-based UUIDs one generator can
	// issue within a single millisecond: the 100-ns timestamp resolution
	// leaves 10000 distinct values per millisecond.
	MaxPerMillisecond = 10000

	clockSeqMask = 0x3fff
)

// TimeState is the complete state of a time-based generator. Tick derives
// the next state from the previous one, and Octets lays a state out as the
// UUID it stands for.
type TimeState struct {
	NodeID     uint64 // 48 bits
	LastMillis int64  // Unix milliseconds of the last UUID; valid if Started
	Started    bool
	ClockSeq   uint16 // 14 bits
	Generated  int    // UUIDs issued in LastMillis, minus one
}

// Tick advances s for a call at nowMillis on node. It returns the new state,
// or s itself with ErrTooManyGenerated once the millisecond is exhausted.
// The receiver is never modified.
//
// A node change resamples the clock sequence from r. A clock that moved
// backwards bumps the clock sequence so earlier timestamps are not reissued
// with the same sequence.
func (s TimeState) Tick(node uint64, nowMillis int64, r io.Reader) (TimeState, error) {
	next := s
	node &= nodeMask

	if node != s.NodeID {
		seq, err := randomClockSeq(r)
		if err != nil {
			return s, err
		}
		next.ClockSeq = seq
	}

	if s.Started && nowMillis < s.LastMillis {
		next.ClockSeq++
	}
	next.ClockSeq &= clockSeqMask

	if !s.Started || nowMillis != s.LastMillis {
		next.Generated = 0
	} else {
		next.Generated = s.Generated + 1
	}
	if next.Generated >= MaxPerMillisecond {
		return s, ErrTooManyGenerated
	}

	next.NodeID = node
	next.LastMillis = nowMillis
	next.Started = true
	return next, nil
}

// Octets lays the state out in RFC 4122 field order, without version and
// variant. The 60-bit timestamp counts 100-ns intervals since 1582-10-15 and
// uses Generated as the sub-millisecond part.
func (s TimeState) Octets() [16]byte {
	var o [16]byte
	ts := uint64(s.LastMillis+GregorianUnixOffsetMillis)*ticksPerMilli + uint64(s.Generated)

	binary.BigEndian.PutUint32(o[0:4], uint32(ts))           // time_low
	binary.BigEndian.PutUint16(o[4:6], uint16(ts>>32))       // time_mid
	binary.BigEndian.PutUint16(o[6:8], uint16(ts>>48)&0x0fff) // time_hi
	binary.BigEndian.PutUint16(o[8:10], s.ClockSeq&clockSeqMask)
	putNode(o[10:16], s.NodeID)
	return o
}

// UUID returns the version 1 UUID for the state.
func (s TimeState) UUID() UUID {
	return FromOctets(s.Octets(), VersionTimeBased)
}

// TimeGenerator produces version 1 UUIDs.
//
// A TimeGenerator is not safe for concurrent use: give each goroutine its
// own generator (each with its own node id), or share one through a
// SyncTimeGenerator.
type TimeGenerator struct {
	state TimeState
	nodes NodeIDProvider
	rand  io.Reader
}

// NewTimeGenerator creates a generator with crypto/rand as the random source.
// A nil provider gets a RandomNodeIDProvider.
func NewTimeGenerator(nodes NodeIDProvider) (*TimeGenerator, error) {
	return NewTimeGeneratorWithReader(nodes, rand.Reader)
}

// NewTimeGeneratorWithReader creates a generator with a custom random source.
// The node id is read once and the clock sequence is seeded from r.
func NewTimeGeneratorWithReader(nodes NodeIDProvider, r io.Reader) (*TimeGenerator, error) {
	if nodes == nil {
		p, err := NewRandomNodeIDProviderFromReader(r)
		if err != nil {
			return nil, err
		}
		nodes = p
	}
	seq, err := randomClockSeq(r)
	if err != nil {
		return nil, err
	}
	return &TimeGenerator{
		state: TimeState{NodeID: nodes.NodeID() & nodeMask, ClockSeq: seq},
		nodes: nodes,
		rand:  r,
	}, nil
}

// RestoreTimeGenerator creates a generator that continues from state.
func RestoreTimeGenerator(state TimeState, nodes NodeIDProvider, r io.Reader) *TimeGenerator {
	if nodes == nil {
		nodes = StaticNodeIDProvider(state.NodeID)
	}
	if r == nil {
		r = rand.Reader
	}
	return &TimeGenerator{state: state, nodes: nodes, rand: r}
}

// New generates a version 1 UUID for the current wall-clock time.
func (g *TimeGenerator) New() (UUID, error) {
	return g.NewWithTime(time.Now())
}

// NewWithTime generates a version 1 UUID as if the clock read t. On error
// the generator state is left as it was.
func (g *TimeGenerator) NewWithTime(t time.Time) (UUID, error) {
	next, err := g.state.Tick(g.nodes.NodeID(), t.UnixMilli(), g.rand)
	if err != nil {
		return Nil, err
	}
	g.state = next
	return next.UUID(), nil
}

// State returns a copy of the current generator state.
func (g *TimeGenerator) State() TimeState {
	return g.state
}

func randomClockSeq(r io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]) & clockSeqMask, nil
}
