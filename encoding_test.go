package uuidgen

import (
	"testing"
)

func TestUUID_EncodeToHex(t *testing.T) {
	expected := "ae968d8aadf011eeba05325096b39f47"
	if got := sample.EncodeToHex(); got != expected {
		t.Errorf("EncodeToHex() = %v, want %v", got, expected)
	}
}

func TestDecodeFromBase64(t *testing.T) {
	b64 := sample.EncodeToBase64()
	if len(b64) != 22 {
		t.Errorf("EncodeToBase64() length = %d, want 22", len(b64))
	}

	decoded, err := DecodeFromBase64(b64)
	if err != nil {
		t.Fatalf("DecodeFromBase64() error = %v", err)
	}
	if decoded != sample {
		t.Errorf("DecodeFromBase64() = %v, want %v", decoded, sample)
	}
}

func TestDecodeFromBase64_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"invalid base64", "!!!invalid!!!", ErrInvalidFormat},
		{"wrong length", "YWJj", ErrInvalidLength}, // "abc", only 3 bytes
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFromBase64(tt.input)
			if err != tt.want {
				t.Errorf("DecodeFromBase64(%q) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestFromBytes(t *testing.T) {
	got, err := FromBytes(sample.Bytes())
	if err != nil {
		t.Fatalf("FromBytes() error = %v", err)
	}
	if got != sample {
		t.Errorf("FromBytes() = %v, want %v", got, sample)
	}
}

func TestFromBytes_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"too short", []byte{0x01, 0x02, 0x03}},
		{"too long", make([]byte, 20)},
		{"empty", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromBytes(tt.input)
			if err != ErrInvalidLength {
				t.Errorf("FromBytes() error = %v, want %v", err, ErrInvalidLength)
			}
		})
	}
}

func TestMustFromBytes(t *testing.T) {
	if uuid := MustFromBytes(sample[:]); uuid != sample {
		t.Errorf("MustFromBytes() = %v, want %v", uuid, sample)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustFromBytes() did not panic on invalid input")
		}
	}()
	MustFromBytes([]byte{0x01})
}

func TestEncodingRoundTrips(t *testing.T) {
	gen, err := NewTimeGenerator(StaticNodeIDProvider(0x325096b39f47))
	if err != nil {
		t.Fatalf("NewTimeGenerator() error = %v", err)
	}

	for i := 0; i < 10; i++ {
		uuid, err := gen.New()
		if err != nil {
			t.Fatalf("Failed to generate UUID: %v", err)
		}

		fromHex, err := Parse(uuid.EncodeToHex())
		if err != nil || fromHex != uuid {
			t.Errorf("Hex round-trip failed: got %v, %v; want %v", fromHex, err, uuid)
		}

		fromB64, err := DecodeFromBase64(uuid.EncodeToBase64())
		if err != nil || fromB64 != uuid {
			t.Errorf("Base64 round-trip failed: got %v, %v; want %v", fromB64, err, uuid)
		}

		fromBytes, err := FromBytes(uuid.Bytes())
		if err != nil || fromBytes != uuid {
			t.Errorf("Bytes round-trip failed: got %v, %v; want %v", fromBytes, err, uuid)
		}
	}
}
