package uuidgen

import (
	"crypto/sha1"
	"testing"
	"time"
)

func BenchmarkNewRandom(b *testing.B) {
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := NewRandom(); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkNewV5(b *testing.B) {
	name := []byte("www.example.com")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = NewV5(NamespaceDNS, name)
	}
}

func BenchmarkNewHash_ReusedHasher(b *testing.B) {
	h := sha1.New()
	name := []byte("www.example.com")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = NewHash(h, NamespaceDNS, name, VersionNameBasedSHA1)
	}
}

func BenchmarkTimeGenerator_New(b *testing.B) {
	gen, err := NewTimeGenerator(StaticNodeIDProvider(testNode))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := gen.New(); err != nil && err != ErrTooManyGenerated {
			b.Fatal(err)
		}
	}
}

func BenchmarkTimeState_Tick(b *testing.B) {
	state := TimeState{NodeID: testNode, ClockSeq: 11338}
	ms := time.Now().UnixMilli()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		next, err := state.Tick(testNode, ms+int64(i/MaxPerMillisecond), nil)
		if err != nil {
			b.Fatal(err)
		}
		state = next
	}
}

// Benchmark concurrent generation through the mutex wrapper
func BenchmarkSyncTimeGenerator_NewConcurrent(b *testing.B) {
	gen, err := NewTimeGenerator(StaticNodeIDProvider(testNode))
	if err != nil {
		b.Fatal(err)
	}
	shared := NewSyncTimeGenerator(gen)
	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := shared.New(); err != nil && err != ErrTooManyGenerated {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkUUID_String(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = sample.String()
	}
}

func BenchmarkParse(b *testing.B) {
	s := "ae968d8a-adf0-11ee-ba05-325096b39f47"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(s); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse_NoHyphens(b *testing.B) {
	s := "0xae968d8aadf011eeba05325096b39f47"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(s); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUUID_Inspect(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = sample.Inspect().UnixTime()
	}
}

func BenchmarkUUID_EncodeToHex(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = sample.EncodeToHex()
	}
}

func BenchmarkUUID_Compare(b *testing.B) {
	other := NamespaceDNS
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = sample.Compare(other)
	}
}
