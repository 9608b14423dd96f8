// Package nodeid hands out distinct 48-bit node ids for time-based UUID
// generators.
//
// A TimeGenerator must not be shared without a lock, so the cheap way to
// scale v1 generation is one generator per goroutine or per process. Each of
// those generators needs its own node id, otherwise two of them can issue the
// same timestamp and clock sequence. The allocators in this package lease ids
// from shared infrastructure:
//
//   - SegmentAllocator leases ranges of ids from a SQL table (MySQL in
//     production, any database/sql driver in tests).
//   - RedisAllocator increments a Redis counter.
//   - ZKRegistry allocates ids from a sequential ZooKeeper znode and keeps a
//     stable id per service instance across restarts.
//
// Leased ids are mapped into node id space with the multicast bit set
// (RFC 4122 §4.5) so they never collide with a real IEEE 802 address.
//
// Usage
//
//	alloc := nodeid.NewRedisAllocator(client, "uuidgen:node", logger)
//	gen, err := nodeid.NewGenerator(ctx, alloc)
//	id, err := gen.New()
package nodeid
