package uuidgen

import (
	"crypto/md5"
	"crypto/sha1"
	"fmt"
	"testing"

	guuid "github.com/google/uuid"
)

func TestNewHash_KnownVectors(t *testing.T) {
	tests := []struct {
		name string
		got  UUID
		want string
	}{
		{"v5 dns foobar", NewV5(NamespaceDNS, []byte("foobar")), "a050b517-6677-5119-9a77-2d26bbf30507"},
		{"v3 x500 barfoo", NewV3(NamespaceX500, []byte("barfoo")), "838ae739-5539-3a99-a67b-8e291e001842"},
		{"v3 url", NewV3(NamespaceURL, []byte("https://example.com")), "68794df6-5e20-385f-ab08-bb73f8a433cb"},
		{"v5 oid", NewV5(NamespaceOID, []byte("1.3.6.1")), "1447fa61-5277-5fef-a9b3-fbc6e44f4af3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got.String(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewHash_Deterministic(t *testing.T) {
	for i := 0; i < 20; i++ {
		name := []byte(fmt.Sprintf("name-%d", i))
		for _, ns := range []UUID{NamespaceDNS, NamespaceURL, NamespaceOID, NamespaceX500, Nil} {
			if a, b := NewV3(ns, name), NewV3(ns, name); a != b {
				t.Errorf("NewV3(%v, %q) not deterministic: %v != %v", ns, name, a, b)
			}
			if a, b := NewV5(ns, name), NewV5(ns, name); a != b {
				t.Errorf("NewV5(%v, %q) not deterministic: %v != %v", ns, name, a, b)
			}
		}
	}
}

func TestNewHash_MatchesReference(t *testing.T) {
	names := []string{"", "a", "example.com", "https://example.com/path?q=1", "日本語"}
	spaces := []UUID{NamespaceDNS, NamespaceURL, NamespaceOID, NamespaceX500}

	for _, ns := range spaces {
		ref := guuid.UUID(ns)
		for _, name := range names {
			if got, want := NewV3(ns, []byte(name)).String(), guuid.NewMD5(ref, []byte(name)).String(); got != want {
				t.Errorf("NewV3(%v, %q) = %v, want %v", ns, name, got, want)
			}
			if got, want := NewV5(ns, []byte(name)).String(), guuid.NewSHA1(ref, []byte(name)).String(); got != want {
				t.Errorf("NewV5(%v, %q) = %v, want %v", ns, name, got, want)
			}
		}
	}
}

func TestNewHash_VersionAndVariant(t *testing.T) {
	if v := NewV3(NamespaceURL, []byte("some_random_name")).Version(); v != VersionNameBasedMD5 {
		t.Errorf("NewV3() version = %v", v)
	}
	if v := NewV5(NamespaceOID, []byte("yet_another_random_name")).Version(); v != VersionNameBasedSHA1 {
		t.Errorf("NewV5() version = %v", v)
	}
	if v := NewV5(NamespaceOID, nil).Variant(); v != VariantRFC4122 {
		t.Errorf("NewV5() variant = %v", v)
	}
}

func TestNewHash_ReusesHasher(t *testing.T) {
	h := sha1.New()
	h.Write([]byte("left over state"))
	a := NewHash(h, NamespaceDNS, []byte("foobar"), VersionNameBasedSHA1)
	b := NewHash(h, NamespaceDNS, []byte("foobar"), VersionNameBasedSHA1)
	if a != b || a.String() != "a050b517-6677-5119-9a77-2d26bbf30507" {
		t.Errorf("NewHash() with reused hasher = %v, %v", a, b)
	}
}

func TestNewHashRandomNamespace(t *testing.T) {
	id1, ns1, err := NewHashRandomNamespace(md5.New(), []byte("barfoo"), VersionNameBasedMD5)
	if err != nil {
		t.Fatalf("NewHashRandomNamespace() error = %v", err)
	}
	id2, ns2, err := NewHashRandomNamespace(md5.New(), []byte("barfoo"), VersionNameBasedMD5)
	if err != nil {
		t.Fatalf("NewHashRandomNamespace() error = %v", err)
	}

	if ns1 == ns2 || id1 == id2 {
		t.Error("NewHashRandomNamespace() should not be deterministic")
	}
	if ns1.Version() != VersionRandom {
		t.Errorf("namespace version = %v, want %v", ns1.Version(), VersionRandom)
	}
	if id1.Version() != VersionNameBasedMD5 {
		t.Errorf("version = %v, want %v", id1.Version(), VersionNameBasedMD5)
	}
	if got := NewV3(ns1, []byte("barfoo")); got != id1 {
		t.Errorf("NewV3(returned namespace) = %v, want %v", got, id1)
	}
}
