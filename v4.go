package uuidgen

import (
	"crypto/rand"
	"io"
)

// NewRandom returns a random (version 4) UUID read from crypto/rand.
func NewRandom() (UUID, error) {
	return NewRandomFromReader(rand.Reader)
}

// NewRandomFromReader returns a version 4 UUID whose random bits are read
// from r. This is primarily useful for testing with deterministic sources.
func NewRandomFromReader(r io.Reader) (UUID, error) {
	var octets [16]byte
	if _, err := io.ReadFull(r, octets[:]); err != nil {
		return Nil, err
	}
	return FromOctets(octets, VersionRandom), nil
}

// Must is a helper that wraps a call to a function returning (UUID, error)
// and panics if the error is non-nil. It is intended for use in variable
// initializations such as:
//
//	var id = uuidgen.Must(uuidgen.NewRandom())
func Must(uuid UUID, err error) UUID {
	if err != nil {
		panic(err)
	}
	return uuid
}
