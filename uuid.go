package uuidgen

import (
	"bytes"
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// UUID represents a Universally Unique Identifier as defined by RFC 4122.
// The UUID is a 128-bit (16 byte) big-endian value.
type UUID [16]byte

// Version represents the UUID version
type Version byte

const (
	_ Version = iota
	VersionTimeBased
	VersionDCESecurity
	VersionNameBasedMD5
	VersionRandom
	VersionNameBasedSHA1
)

// Variant represents the UUID variant
type Variant byte

const (
	VariantNCS Variant = iota
	VariantRFC4122
	VariantMicrosoft
	VariantFuture
)

func (v Variant) String() string {
	switch v {
	case VariantNCS:
		return "NCS"
	case VariantRFC4122:
		return "RFC4122"
	case VariantMicrosoft:
		return "Microsoft"
	default:
		return "Future"
	}
}

// Nil is the nil UUID (all zeros)
var Nil UUID

// Well-known namespaces from RFC 4122 Appendix C.
var (
	NamespaceDNS  = UUID{0x6b, 0xa7, 0xb8, 0x10, 0x9d, 0xad, 0x11, 0xd1, 0x80, 0xb4, 0x00, 0xc0, 0x4f, 0xd4, 0x30, 0xc8}
	NamespaceURL  = UUID{0x6b, 0xa7, 0xb8, 0x11, 0x9d, 0xad, 0x11, 0xd1, 0x80, 0xb4, 0x00, 0xc0, 0x4f, 0xd4, 0x30, 0xc8}
	NamespaceOID  = UUID{0x6b, 0xa7, 0xb8, 0x12, 0x9d, 0xad, 0x11, 0xd1, 0x80, 0xb4, 0x00, 0xc0, 0x4f, 0xd4, 0x30, 0xc8}
	NamespaceX500 = UUID{0x6b, 0xa7, 0xb8, 0x14, 0x9d, 0xad, 0x11, 0xd1, 0x80, 0xb4, 0x00, 0xc0, 0x4f, 0xd4, 0x30, 0xc8}
)

// Version returns the version of the UUID
func (u UUID) Version() Version {
	return Version(u[6] >> 4)
}

// Variant returns the variant of the UUID
func (u UUID) Variant() Variant {
	v, _ := splitVariant(u[8])
	return v
}

// String returns the canonical string representation of the UUID
// in the format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func (u UUID) String() string {
	var buf [36]byte
	encodeHex(buf[:], u)
	return string(buf[:])
}

// encodeHex encodes UUID to its canonical hex representation
func encodeHex(dst []byte, u UUID) {
	hex.Encode(dst[0:8], u[0:4])
	dst[8] = '-'
	hex.Encode(dst[9:13], u[4:6])
	dst[13] = '-'
	hex.Encode(dst[14:18], u[6:8])
	dst[18] = '-'
	hex.Encode(dst[19:23], u[8:10])
	dst[23] = '-'
	hex.Encode(dst[24:36], u[10:16])
}

// Parse parses a UUID from its string representation.
// It accepts the following formats, with hex digits in either case:
//   - xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx (canonical)
//   - xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx (without hyphens)
//   - either of the above prefixed with 0x or 0X
//
// A hyphen is only accepted after the 8th, 12th, 16th or 20th hex digit.
func Parse(s string) (UUID, error) {
	var uuid UUID

	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}

	consumed := 0
	lastDash := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '-' {
			if !dashAllowed(consumed) || lastDash == consumed {
				return Nil, ErrInvalidFormat
			}
			lastDash = consumed
			continue
		}
		if consumed == 32 {
			return Nil, ErrInvalidFormat
		}
		v, ok := fromHexChar(c)
		if !ok {
			return Nil, ErrInvalidFormat
		}
		if consumed%2 == 0 {
			uuid[consumed/2] = v << 4
		} else {
			uuid[consumed/2] |= v
		}
		consumed++
	}

	if consumed != 32 {
		return Nil, ErrInvalidFormat
	}
	return uuid, nil
}

func dashAllowed(consumed int) bool {
	switch consumed {
	case 8, 12, 16, 20:
		return true
	}
	return false
}

func fromHexChar(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// MustParse is like Parse but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables.
func MustParse(s string) UUID {
	uuid, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("uuidgen: Parse(%q): %v", s, err))
	}
	return uuid
}

// FromUint64s builds a UUID from its high and low 64-bit halves.
func FromUint64s(hi, lo uint64) UUID {
	var uuid UUID
	binary.BigEndian.PutUint64(uuid[0:8], hi)
	binary.BigEndian.PutUint64(uuid[8:16], lo)
	return uuid
}

// Uint64s returns the UUID as its high and low 64-bit halves.
func (u UUID) Uint64s() (hi, lo uint64) {
	return binary.BigEndian.Uint64(u[0:8]), binary.BigEndian.Uint64(u[8:16])
}

// Bytes returns the UUID as a byte slice
func (u UUID) Bytes() []byte {
	return u[:]
}

// IsNil returns true if the UUID is the nil UUID (all zeros)
func (u UUID) IsNil() bool {
	return u == Nil
}

// MarshalText implements the encoding.TextMarshaler interface
func (u UUID) MarshalText() ([]byte, error) {
	var buf [36]byte
	encodeHex(buf[:], u)
	return buf[:], nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface
func (u *UUID) UnmarshalText(data []byte) error {
	id, err := Parse(string(data))
	if err != nil {
		return err
	}
	*u = id
	return nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface
func (u UUID) MarshalBinary() ([]byte, error) {
	return u[:], nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface
func (u *UUID) UnmarshalBinary(data []byte) error {
	if len(data) != 16 {
		return ErrInvalidLength
	}
	copy(u[:], data)
	return nil
}

// Scan implements the sql.Scanner interface. Strings are parsed, 16-byte
// slices are taken as raw bytes and NULL leaves the UUID untouched.
func (u *UUID) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		return nil
	case string:
		return u.UnmarshalText([]byte(src))
	case []byte:
		switch len(src) {
		case 0:
			return nil
		case 16:
			copy(u[:], src)
			return nil
		}
		return u.UnmarshalText(src)
	default:
		return fmt.Errorf("uuidgen: cannot scan type %T into UUID", src)
	}
}

// Value implements the driver.Valuer interface for database compatibility
func (u UUID) Value() (driver.Value, error) {
	return u.String(), nil
}

// Compare returns an integer comparing two UUIDs lexicographically.
// The result will be 0 if u==other, -1 if u < other, and +1 if u > other.
func (u UUID) Compare(other UUID) int {
	return bytes.Compare(u[:], other[:])
}

// Equal returns true if u and other represent the same UUID
func (u UUID) Equal(other UUID) bool {
	return u == other
}
