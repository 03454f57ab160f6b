package registry

import (
	"sync"
	"testing"

	"github.com/rumendamyanov/simchess/game"
)

func TestCreateAssignsUniqueIDs(t *testing.T) {
	r := New()

	a := r.Create()
	b := r.Create()

	if a.ID() == "" || b.ID() == "" {
		t.Fatal("expected non-empty game ids")
	}
	if a.ID() == b.ID() {
		t.Fatal("expected distinct ids across Create calls")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestGetReturnsStoredGame(t *testing.T) {
	r := New()
	g := r.Create()

	got, err := r.Get(g.ID())
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != g {
		t.Error("Get returned a different *game.Game than Create produced")
	}
}

func TestGetUnknownIDReturnsErrNotFound(t *testing.T) {
	r := New()
	if _, err := r.Get("does-not-exist"); err != ErrNotFound {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
}

func TestRemoveDeletesGame(t *testing.T) {
	r := New()
	g := r.Create()

	r.Remove(g.ID())
	if _, err := r.Get(g.ID()); err != ErrNotFound {
		t.Errorf("Get after Remove error = %v, want ErrNotFound", err)
	}
	if r.Len() != 0 {
		t.Errorf("Len() after Remove = %d, want 0", r.Len())
	}
}

func TestRemoveUnknownIDIsNoOp(t *testing.T) {
	r := New()
	r.Create()
	r.Remove("does-not-exist")
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after removing an unknown id", r.Len())
	}
}

func TestNewWithRulesAppliesToCreatedGames(t *testing.T) {
	rules := game.Rules{InitialClockSeconds: 60, OneSidedThreshold: 1, OneSidedPenaltySeconds: 5}
	r := NewWithRules(rules)

	g := r.Create()
	snap := g.State()
	if snap.ClockSeconds[game.White] != 60 || snap.ClockSeconds[game.Black] != 60 {
		t.Errorf("ClockSeconds = %+v, want 60/60 from the configured rules", snap.ClockSeconds)
	}
	if snap.OneSidedThreshold != 1 || snap.PenaltySeconds != 5 {
		t.Errorf("OneSidedThreshold/PenaltySeconds = %d/%d, want 1/5", snap.OneSidedThreshold, snap.PenaltySeconds)
	}
}

func TestConcurrentCreateIsRace(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	ids := make(chan string, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- r.Create().ID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %q created concurrently", id)
		}
		seen[id] = true
	}
	if r.Len() != 50 {
		t.Errorf("Len() = %d, want 50", r.Len())
	}
}
