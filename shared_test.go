package uuidgen

import (
	"errors"
	"sync"
	"testing"
)

func TestSyncTimeGenerator_ConcurrentSafety(t *testing.T) {
	gen, err := NewTimeGenerator(StaticNodeIDProvider(testNode))
	if err != nil {
		t.Fatalf("NewTimeGenerator() error = %v", err)
	}
	shared := NewSyncTimeGenerator(gen)

	const goroutines = 10
	const uuidsPerGoroutine = 100

	results := make(chan UUID, goroutines*uuidsPerGoroutine)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < uuidsPerGoroutine; j++ {
				uuid, err := shared.New()
				if errors.Is(err, ErrTooManyGenerated) {
					j--
					continue
				}
				if err != nil {
					t.Errorf("Concurrent generation error: %v", err)
					return
				}
				results <- uuid
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[UUID]bool)
	for uuid := range results {
		if seen[uuid] {
			t.Errorf("Duplicate UUID generated in concurrent test: %v", uuid)
		}
		seen[uuid] = true
	}
	if len(seen) != goroutines*uuidsPerGoroutine {
		t.Errorf("Expected %d unique UUIDs, got %d", goroutines*uuidsPerGoroutine, len(seen))
	}
	if st := shared.State(); !st.Started || st.NodeID != testNode {
		t.Errorf("State() = %+v", st)
	}
}

func resetDefault() {
	defaultMu.Lock()
	defaultGen = nil
	defaultMu.Unlock()
}

func TestDefault(t *testing.T) {
	resetDefault()
	t.Cleanup(resetDefault)

	uuid, err := NewV1()
	if err != nil {
		t.Fatalf("NewV1() error = %v", err)
	}
	if uuid.Version() != VersionTimeBased {
		t.Errorf("NewV1() version = %v", uuid.Version())
	}

	g1, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	g2, _ := Default()
	if g1 != g2 {
		t.Error("Default() should return the same generator")
	}
	if err := SetDefault(g1); !errors.Is(err, ErrDefaultInitialized) {
		t.Errorf("SetDefault() after first use error = %v, want %v", err, ErrDefaultInitialized)
	}
}

func TestSetDefault(t *testing.T) {
	resetDefault()
	t.Cleanup(resetDefault)

	gen, err := NewTimeGenerator(StaticNodeIDProvider(testNode))
	if err != nil {
		t.Fatalf("NewTimeGenerator() error = %v", err)
	}
	if err := SetDefault(NewSyncTimeGenerator(gen)); err != nil {
		t.Fatalf("SetDefault() error = %v", err)
	}

	uuid, err := NewV1()
	if err != nil {
		t.Fatalf("NewV1() error = %v", err)
	}
	if node := uuid.Inspect().Node; node != testNode {
		t.Errorf("NewV1() node = %#x, want injected %#x", node, testNode)
	}
}
