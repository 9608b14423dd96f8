package uuidgen

import (
	"encoding/base64"
	"encoding/hex"
)

// EncodeToHex encodes the UUID as 32 lowercase hex digits without hyphens.
// Parse accepts the result.
func (u UUID) EncodeToHex() string {
	var buf [32]byte
	hex.Encode(buf[:], u[:])
	return string(buf[:])
}

// EncodeToBase64 encodes the UUID to a base64 string (URL-safe, no padding)
func (u UUID) EncodeToBase64() string {
	return base64.RawURLEncoding.EncodeToString(u[:])
}

// DecodeFromBase64 decodes a URL-safe, unpadded base64 string to UUID
func DecodeFromBase64(s string) (UUID, error) {
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Nil, ErrInvalidFormat
	}
	return FromBytes(data)
}

// FromBytes creates a UUID from a 16-byte slice
func FromBytes(b []byte) (UUID, error) {
	var uuid UUID
	if len(b) != 16 {
		return uuid, ErrInvalidLength
	}
	copy(uuid[:], b)
	return uuid, nil
}

// MustFromBytes is like FromBytes but panics on error
func MustFromBytes(b []byte) UUID {
	uuid, err := FromBytes(b)
	if err != nil {
		panic(err)
	}
	return uuid
}
