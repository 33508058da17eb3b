package streak

import (
	"context"
	"testing"
	"time"

	"github.com/narlock/alder/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestAdvanceSameDayIsNoOp(t *testing.T) {
	rec := model.Streak{UserID: "1", CurrentStreak: 4, HighestStreak: 7, LastActive: "2024-08-21"}

	got := Advance(rec, date(2024, 8, 21))
	if got != rec {
		t.Errorf("same-day Advance changed the record: %+v", got)
	}

	// A second application the same day is also a no-op.
	if again := Advance(got, date(2024, 8, 21)); again != got {
		t.Errorf("repeated Advance changed the record: %+v", again)
	}
}

func TestAdvanceConsecutiveDayIncrements(t *testing.T) {
	rec := model.Streak{UserID: "1", CurrentStreak: 4, HighestStreak: 7, LastActive: "2024-08-20"}

	got := Advance(rec, date(2024, 8, 21))
	if got.CurrentStreak != 5 {
		t.Errorf("CurrentStreak = %d, want 5", got.CurrentStreak)
	}
	if got.HighestStreak != 7 {
		t.Errorf("HighestStreak = %d, want 7 (unchanged)", got.HighestStreak)
	}
	if got.LastActive != "2024-08-21" {
		t.Errorf("LastActive = %q, want 2024-08-21", got.LastActive)
	}
}

func TestAdvanceHighWaterMark(t *testing.T) {
	rec := model.Streak{UserID: "1", CurrentStreak: 5, HighestStreak: 5, LastActive: "2024-08-20"}

	got := Advance(rec, date(2024, 8, 21))
	if got.CurrentStreak != 6 || got.HighestStreak != 6 {
		t.Errorf("streak = %d/%d, want 6/6", got.CurrentStreak, got.HighestStreak)
	}
}

func TestAdvanceGapResets(t *testing.T) {
	rec := model.Streak{UserID: "1", CurrentStreak: 9, HighestStreak: 12, LastActive: "2024-08-19"}

	got := Advance(rec, date(2024, 8, 21))
	if got.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0 after a gap", got.CurrentStreak)
	}
	if got.HighestStreak != 12 {
		t.Errorf("HighestStreak = %d, want 12 (never lowered)", got.HighestStreak)
	}
	if got.LastActive != "2024-08-21" {
		t.Errorf("LastActive = %q, want 2024-08-21", got.LastActive)
	}
}

func TestAdvanceFutureDateResets(t *testing.T) {
	rec := model.Streak{UserID: "1", CurrentStreak: 3, HighestStreak: 3, LastActive: "2024-08-25"}

	got := Advance(rec, date(2024, 8, 21))
	if got.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0 for a future last-active day", got.CurrentStreak)
	}
	if got.LastActive != "2024-08-21" {
		t.Errorf("LastActive = %q, want 2024-08-21", got.LastActive)
	}
}

func TestAdvanceUnparsableDateResets(t *testing.T) {
	rec := model.Streak{UserID: "1", CurrentStreak: 3, HighestStreak: 3, LastActive: "not-a-date"}

	got := Advance(rec, date(2024, 8, 21))
	if got.CurrentStreak != 0 || got.LastActive != "2024-08-21" {
		t.Errorf("got %+v, want reset record dated today", got)
	}
}

func TestNewRecord(t *testing.T) {
	rec := NewRecord("7", date(2024, 8, 21))
	if rec.CurrentStreak != 0 || rec.HighestStreak != 0 {
		t.Errorf("new record has non-zero streaks: %+v", rec)
	}
	if rec.LastActive != "2024-08-21" {
		t.Errorf("LastActive = %q, want 2024-08-21", rec.LastActive)
	}
}

// fakeStore backs the Service tests.
type fakeStore struct {
	rec   model.Streak
	saves int
}

func (f *fakeStore) GetOrCreate(ctx context.Context, userID string, today time.Time) (model.Streak, error) {
	if f.rec.UserID == "" {
		f.rec = NewRecord(userID, today)
	}
	return f.rec, nil
}

func (f *fakeStore) Save(ctx context.Context, rec model.Streak) error {
	f.rec = rec
	f.saves++
	return nil
}

func TestServiceTouchOncePerDay(t *testing.T) {
	store := &fakeStore{rec: model.Streak{UserID: "1", CurrentStreak: 2, HighestStreak: 2, LastActive: "2024-08-20"}}
	svc := NewService(store, nil)
	ctx := context.Background()

	if err := svc.Touch(ctx, "1", date(2024, 8, 21)); err != nil {
		t.Fatalf("Touch() error: %v", err)
	}
	if store.rec.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", store.rec.CurrentStreak)
	}
	if store.saves != 1 {
		t.Fatalf("saves = %d, want 1", store.saves)
	}

	// Same day again: no save issued.
	if err := svc.Touch(ctx, "1", date(2024, 8, 21)); err != nil {
		t.Fatalf("second Touch() error: %v", err)
	}
	if store.saves != 1 {
		t.Errorf("saves after repeat = %d, want 1", store.saves)
	}
}
