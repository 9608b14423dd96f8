package uuidgen

import (
	"crypto/md5"
	"crypto/sha1"
	"hash"
)

// NewHash returns a name-based UUID of version v: the first 16 bytes of
// h(space || name) with version and variant stamped in. h is reset first.
// The same space, name and hash always produce the same UUID.
func NewHash(h hash.Hash, space UUID, name []byte, v Version) UUID {
	h.Reset()
	h.Write(space[:])
	h.Write(name)

	var octets [16]byte
	copy(octets[:], h.Sum(nil))
	return FromOctets(octets, v)
}

// NewV3 returns a version 3 (MD5) UUID for name within space.
func NewV3(space UUID, name []byte) UUID {
	return NewHash(md5.New(), space, name, VersionNameBasedMD5)
}

// NewV5 returns a version 5 (SHA-1) UUID for name within space.
func NewV5(space UUID, name []byte) UUID {
	return NewHash(sha1.New(), space, name, VersionNameBasedSHA1)
}

// NewHashRandomNamespace is like NewHash but uses a freshly generated random
// UUID as the namespace, which is returned alongside the result. This is not
// part of RFC 4122: two calls with the same name give different UUIDs, and
// the result can only be reproduced by passing the returned space to NewHash.
func NewHashRandomNamespace(h hash.Hash, name []byte, v Version) (id, space UUID, err error) {
	space, err = NewRandom()
	if err != nil {
		return Nil, Nil, err
	}
	return NewHash(h, space, name, v), space, nil
}
