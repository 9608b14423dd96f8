package uuidgen

import (
	"bytes"
	"testing"
)

func TestNewRandom(t *testing.T) {
	seen := make(map[UUID]bool)
	for i := 0; i < 1000; i++ {
		uuid, err := NewRandom()
		if err != nil {
			t.Fatalf("NewRandom() error = %v", err)
		}
		if uuid.Version() != VersionRandom {
			t.Fatalf("NewRandom() version = %v, want %v", uuid.Version(), VersionRandom)
		}
		if uuid[8]&0xc0 != 0x80 {
			t.Fatalf("NewRandom() variant bits = %08b, want 10xxxxxx", uuid[8])
		}
		if seen[uuid] {
			t.Fatalf("NewRandom() returned duplicate %v", uuid)
		}
		seen[uuid] = true
	}
}

func TestNewRandomFromReader(t *testing.T) {
	src := bytes.Repeat([]byte{0xff}, 16)
	uuid, err := NewRandomFromReader(bytes.NewReader(src))
	if err != nil {
		t.Fatalf("NewRandomFromReader() error = %v", err)
	}
	if want := "ffffffff-ffff-4fff-bfff-ffffffffffff"; uuid.String() != want {
		t.Errorf("NewRandomFromReader() = %v, want %v", uuid, want)
	}

	uuid, err = NewRandomFromReader(bytes.NewReader(make([]byte, 16)))
	if err != nil {
		t.Fatalf("NewRandomFromReader() error = %v", err)
	}
	if want := "00000000-0000-4000-8000-000000000000"; uuid.String() != want {
		t.Errorf("NewRandomFromReader() = %v, want %v", uuid, want)
	}
}

func TestNewRandomFromReader_ShortRead(t *testing.T) {
	if _, err := NewRandomFromReader(bytes.NewReader(make([]byte, 8))); err == nil {
		t.Error("NewRandomFromReader() should fail on a short read")
	}
}

func TestMust(t *testing.T) {
	if uuid := Must(NewRandom()); uuid.IsNil() {
		t.Error("Must() returned nil UUID")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Must() did not panic on error")
		}
	}()
	Must(NewRandomFromReader(&brokenReader{}))
}

// brokenReader is a reader that always returns an error
type brokenReader struct{}

func (br *brokenReader) Read(p []byte) (n int, err error) {
	return 0, bytes.ErrTooLarge
}
