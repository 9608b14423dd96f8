package nodeid

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Segment represents a range of allocation numbers leased by this process.
// Base: Start of the range (exclusive).
// Max: End of the range (inclusive).
// Cursor: The last number handed out, accessed atomically.
type Segment struct {
	Base   int64
	Max    int64
	Step   int
	Cursor int64
}

// Remaining returns how many numbers are left in the segment.
func (s *Segment) Remaining() int64 {
	return s.Max - atomic.LoadInt64(&s.Cursor)
}

// SegmentAllocator leases node ids from the node_alloc table. Each database
// round trip reserves step ids for one tag, so concurrent processes sharing
// the table never receive the same id.
type SegmentAllocator struct {
	db  *sql.DB
	tag string
	log *slog.Logger

	mu      sync.Mutex // serializes refills
	current atomic.Pointer[Segment]
}

// NewSegmentAllocator creates an allocator for tag. The tag row must exist,
// see RegisterTag.
func NewSegmentAllocator(db *sql.DB, tag string, logger *slog.Logger) *SegmentAllocator {
	return &SegmentAllocator{
		db:  db,
		tag: tag,
		log: orDiscard(logger).With("component", "nodeid.segment", "tag", tag),
	}
}

// Next returns the next node id, fetching a new segment when the current
// one is used up.
func (a *SegmentAllocator) Next(ctx context.Context) (uint64, error) {
	// Fast path: take a number from the current segment
	if id, ok := a.take(); ok {
		return ToNodeID(uint64(id))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Another goroutine may have refilled while we waited for the lock
	if id, ok := a.take(); ok {
		return ToNodeID(uint64(id))
	}

	seg, err := a.fetchSegment(ctx)
	if err != nil {
		return 0, err
	}
	a.log.Info("leased node id segment", "base", seg.Base, "max", seg.Max)

	id := atomic.AddInt64(&seg.Cursor, 1)
	a.current.Store(seg)
	return ToNodeID(uint64(id))
}

func (a *SegmentAllocator) take() (int64, bool) {
	seg := a.current.Load()
	if seg == nil {
		return 0, false
	}
	id := atomic.AddInt64(&seg.Cursor, 1)
	return id, id <= seg.Max
}

// fetchSegment reserves the next step numbers for the tag in one transaction.
func (a *SegmentAllocator) fetchSegment(ctx context.Context) (*Segment, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin segment tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE node_alloc SET max_id = max_id + step WHERE tag = ?", a.tag)
	if err != nil {
		return nil, fmt.Errorf("reserve segment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, a.tag)
	}

	var maxID int64
	var step int
	err = tx.QueryRowContext(ctx,
		"SELECT max_id, step FROM node_alloc WHERE tag = ?", a.tag).Scan(&maxID, &step)
	if err != nil {
		return nil, fmt.Errorf("read segment: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit segment: %w", err)
	}

	if maxID > MaxSequence {
		return nil, ErrExhausted
	}
	return &Segment{
		Base:   maxID - int64(step),
		Max:    maxID,
		Step:   step,
		Cursor: maxID - int64(step),
	}, nil
}

// EnsureSchema creates the node_alloc table if it does not exist. The DDL is
// valid for both MySQL and SQLite.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS node_alloc (
		tag VARCHAR(128) NOT NULL PRIMARY KEY,
		max_id BIGINT NOT NULL,
		step INT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create node_alloc: %w", err)
	}
	return nil
}

// RegisterTag inserts the allocation row for tag with the given step size.
// An existing row is left untouched.
func RegisterTag(ctx context.Context, db *sql.DB, tag string, step int) error {
	if step <= 0 {
		return fmt.Errorf("nodeid: step must be positive, got %d", step)
	}
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM node_alloc WHERE tag = ?", tag).Scan(&n); err != nil {
		return fmt.Errorf("lookup tag: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO node_alloc (tag, max_id, step) VALUES (?, 0, ?)", tag, step); err != nil {
		// Lost a race with another process registering the same tag
		if db.QueryRowContext(ctx, "SELECT COUNT(*) FROM node_alloc WHERE tag = ?", tag).Scan(&n) == nil && n > 0 {
			return nil
		}
		return fmt.Errorf("register tag: %w", err)
	}
	return nil
}

// OpenMySQL opens a connection pool for the allocation table.
func OpenMySQL(dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql connector: %w", err)
	}
	db := sql.OpenDB(connector)

	// DB performance and safety tuning
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db, nil
}
