package uuidgen

import "errors"

var (
	// ErrInvalidFormat indicates that the text is not a valid UUID
	ErrInvalidFormat = errors.New("uuidgen: invalid UUID format")

	// ErrInvalidLength indicates that the UUID byte slice has incorrect length
	ErrInvalidLength = errors.New("uuidgen: invalid UUID length (expected 16 bytes)")

	// ErrTooManyGenerated is returned by the time-based generator when the
	// per-millisecond budget is spent. It is transient: retry once the clock
	// has moved on to the next millisecond.
	ErrTooManyGenerated = errors.New("uuidgen: too many UUIDs generated in the current millisecond")
)

var (
	// ErrInvalidNodeID indicates that a node id string is not 6 octets
	ErrInvalidNodeID = errors.New("uuidgen: invalid node id (expected 48-bit MAC-style value)")

	// ErrDefaultInitialized is returned by SetDefault once the process-wide
	// generator has been created or installed.
	ErrDefaultInitialized = errors.New("uuidgen: default generator already initialized")
)
