package uuidgen

import (
	"encoding/binary"
	"time"
)

const (
	// GregorianUnixOffsetMillis is the number of milliseconds between the
	// UUID epoch (1582-10-15T00:00:00Z) and the Unix epoch.
	GregorianUnixOffsetMillis = 12219292800000

	// ticksPerMilli is the number of 100-ns intervals in a millisecond.
	ticksPerMilli = 10000

	// gregorianUnixOffsetTicks is GregorianUnixOffsetMillis in 100-ns units.
	gregorianUnixOffsetTicks = GregorianUnixOffsetMillis * ticksPerMilli
)

// FromOctets stamps version v and the RFC 4122 variant onto a 16-octet
// staging buffer and returns the result as a UUID. The low nibble of octet 6
// and the low six bits of octet 8 are kept.
func FromOctets(o [16]byte, v Version) UUID {
	o[6] = (o[6] & 0x0f) | byte(v)<<4
	o[8] = (o[8] & 0x3f) | 0x80
	return UUID(o)
}

// Fields holds the raw fields of a UUID as laid out in RFC 4122 §4.1.2.
type Fields struct {
	TimeLow               uint32
	TimeMid               uint16
	TimeHiAndVersion      uint16
	ClockSeqHiAndReserved byte
	ClockSeqLow           byte
	Node                  uint64 // 48 bits
}

// Fields splits u into its RFC 4122 fields.
func (u UUID) Fields() Fields {
	return Fields{
		TimeLow:               binary.BigEndian.Uint32(u[0:4]),
		TimeMid:               binary.BigEndian.Uint16(u[4:6]),
		TimeHiAndVersion:      binary.BigEndian.Uint16(u[6:8]),
		ClockSeqHiAndReserved: u[8],
		ClockSeqLow:           u[9],
		Node:                  nodeFromOctets(u[10:16]),
	}
}

// Inspection is the decoded content of a UUID.
type Inspection struct {
	// Time is the 60-bit count of 100-ns intervals since 1582-10-15.
	// It is only meaningful for time-based UUIDs.
	Time     uint64
	Version  Version
	Variant  Variant
	ClockSeq uint16
	Node     uint64
}

// Inspect decodes the timestamp, version, variant, clock sequence and node
// of u. The variant may be any of the four defined by RFC 4122, so UUIDs
// produced by foreign systems decode as well.
func (u UUID) Inspect() Inspection {
	f := u.Fields()
	variant, seqHi := splitVariant(f.ClockSeqHiAndReserved)

	return Inspection{
		Time:     uint64(f.TimeHiAndVersion&0x0fff)<<48 | uint64(f.TimeMid)<<32 | uint64(f.TimeLow),
		Version:  Version(f.TimeHiAndVersion >> 12),
		Variant:  variant,
		ClockSeq: uint16(seqHi)<<8 | uint16(f.ClockSeqLow),
		Node:     f.Node,
	}
}

// splitVariant separates clk_seq_hi_res into the variant and the high bits
// of the clock sequence. The variant field is 1, 2 or 3 bits wide:
//
//	0xxxxxxx  NCS backward compatibility
//	10xxxxxx  RFC 4122
//	110xxxxx  Microsoft backward compatibility
//	111xxxxx  reserved for future definition
func splitVariant(b byte) (Variant, byte) {
	switch {
	case b < 0x80:
		return VariantNCS, b & 0x7f
	case b < 0xc0:
		return VariantRFC4122, b & 0x3f
	case b < 0xe0:
		return VariantMicrosoft, b & 0x1f
	default:
		return VariantFuture, b & 0x1f
	}
}

// TimeSpec is a UUID timestamp relative to the Unix epoch, split so that
// the full 100-ns resolution survives.
type TimeSpec struct {
	Seconds    int64
	Micros     int64 // [0, 1e6)
	Hectonanos int64 // [0, 10), remainder in 100-ns units
}

// UnixTime converts the 60-bit UUID timestamp to a TimeSpec. Timestamps
// before the Unix epoch saturate to zero.
func (in Inspection) UnixTime() TimeSpec {
	var rem uint64
	if in.Time > gregorianUnixOffsetTicks {
		rem = in.Time - gregorianUnixOffsetTicks
	}
	micros := rem / 10
	return TimeSpec{
		Seconds:    int64(micros / 1000000),
		Micros:     int64(micros % 1000000),
		Hectonanos: int64(rem % 10),
	}
}

// Time returns ts as a time.Time in UTC.
func (ts TimeSpec) Time() time.Time {
	return time.Unix(ts.Seconds, ts.Micros*1000+ts.Hectonanos*100).UTC()
}

// Timestamp returns the Unix time in milliseconds embedded in a time-based
// UUID, or 0 for any other version.
func (u UUID) Timestamp() int64 {
	if u.Version() != VersionTimeBased {
		return 0
	}
	ts := u.Inspect().UnixTime()
	return ts.Seconds*1000 + ts.Micros/1000
}

// Time returns the creation time of a time-based UUID, or the zero time
// for any other version.
func (u UUID) Time() time.Time {
	if u.Version() != VersionTimeBased {
		return time.Time{}
	}
	return u.Inspect().UnixTime().Time()
}

func nodeFromOctets(b []byte) uint64 {
	_ = b[5]
	return uint64(b[0])<<40 | uint64(b[1])<<32 | uint64(b[2])<<24 |
		uint64(b[3])<<16 | uint64(b[4])<<8 | uint64(b[5])
}

func putNode(b []byte, node uint64) {
	_ = b[5]
	b[0] = byte(node >> 40)
	b[1] = byte(node >> 32)
	b[2] = byte(node >> 24)
	b[3] = byte(node >> 16)
	b[4] = byte(node >> 8)
	b[5] = byte(node)
}
