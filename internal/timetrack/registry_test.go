package timetrack

import (
	"sync"
	"testing"
	"time"
)

var testBase = time.Date(2024, 8, 21, 9, 0, 0, 0, time.UTC)

func TestRegistryBeginDoesNotOverwrite(t *testing.T) {
	r := NewRegistry()

	if !r.Begin("1", testBase) {
		t.Fatal("first Begin should report true")
	}
	if r.Begin("1", testBase.Add(time.Minute)) {
		t.Error("second Begin should report false")
	}

	start, ok := r.End("1")
	if !ok {
		t.Fatal("End should find the session")
	}
	if !start.Equal(testBase) {
		t.Errorf("start = %v, want original %v", start, testBase)
	}
}

func TestRegistryEndMissing(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.End("absent"); ok {
		t.Error("End on unknown user should report false")
	}
}

func TestRegistryEndRemoves(t *testing.T) {
	r := NewRegistry()
	r.Begin("1", testBase)

	if _, ok := r.End("1"); !ok {
		t.Fatal("first End should succeed")
	}
	if _, ok := r.End("1"); ok {
		t.Error("second End should report false")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestRegistryPeekAndReset(t *testing.T) {
	r := NewRegistry()
	r.Begin("1", testBase)

	later := testBase.Add(15 * time.Minute)
	start, ok := r.PeekAndReset("1", later)
	if !ok {
		t.Fatal("PeekAndReset should find the session")
	}
	if !start.Equal(testBase) {
		t.Errorf("start = %v, want %v", start, testBase)
	}

	// Session stays active with the restarted clock.
	start, ok = r.End("1")
	if !ok {
		t.Fatal("session should still be active after PeekAndReset")
	}
	if !start.Equal(later) {
		t.Errorf("start after reset = %v, want %v", start, later)
	}
}

func TestRegistryPeekAndResetMissing(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.PeekAndReset("absent", testBase); ok {
		t.Error("PeekAndReset on unknown user should report false")
	}
	if r.Len() != 0 {
		t.Error("PeekAndReset must not insert an entry")
	}
}

func TestRegistrySnapshotIsCopy(t *testing.T) {
	r := NewRegistry()
	r.Begin("1", testBase)
	r.Begin("2", testBase.Add(time.Second))

	snap := r.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("snapshot size = %d, want 2", len(snap))
	}
	delete(snap, "1")
	if r.Len() != 2 {
		t.Error("mutating the snapshot must not affect the registry")
	}
}

func TestRegistryConcurrentBegin(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	wins := make(chan time.Time, 64)
	for i := 0; i < 64; i++ {
		start := testBase.Add(time.Duration(i) * time.Second)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.Begin("1", start) {
				wins <- start
			}
		}()
	}
	wg.Wait()
	close(wins)

	var winners []time.Time
	for w := range wins {
		winners = append(winners, w)
	}
	if len(winners) != 1 {
		t.Fatalf("Begin succeeded %d times, want exactly 1", len(winners))
	}

	stored, ok := r.End("1")
	if !ok || !stored.Equal(winners[0]) {
		t.Errorf("stored start %v does not match winning Begin %v", stored, winners[0])
	}
}

func TestRegistryContains(t *testing.T) {
	r := NewRegistry()
	if r.Contains("1") {
		t.Fatal("empty registry contains user 1")
	}

	r.Begin("1", testBase)
	if !r.Contains("1") {
		t.Error("registry lost session for user 1")
	}
	if r.Contains("2") {
		t.Error("registry reports session for untracked user 2")
	}

	r.End("1")
	if r.Contains("1") {
		t.Error("registry still contains user 1 after End")
	}
}
