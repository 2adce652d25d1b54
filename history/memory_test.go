package history

import (
	"context"
	"testing"
	"time"
)

func TestRecentOrderedByDateDescending(t *testing.T) {
	store := NewMemory()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	ctx := context.Background()
	for i := 0; i < 15; i++ {
		if err := store.Append(ctx, 1, KindFreeQuestion, "q", "a"); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := store.Recent(ctx, 1, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	for i := 1; i < len(got); i++ {
		if !got[i-1].Date.After(got[i].Date) {
			t.Fatalf("records not strictly descending at %d: %v <= %v", i, got[i-1].Date, got[i].Date)
		}
	}
	if got[0].ID != 15 {
		t.Fatalf("newest record id = %d, want 15", got[0].ID)
	}
}

func TestRecentIsolatedPerUser(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if err := store.Append(ctx, 1, KindShortText, "in", "out"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(ctx, 2, KindShortText, "other", "out"); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := store.Recent(ctx, 1, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 || got[0].UserID != 1 || got[0].Input != "in" {
		t.Fatalf("unexpected records: %+v", got)
	}
}

func TestPurgeThenRecentEmpty(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.Append(ctx, 7, KindResumeImprovement, "resume", "better"); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := store.Purge(ctx, 7); err != nil {
		t.Fatalf("purge: %v", err)
	}
	for _, limit := range []int{1, 10, 100} {
		got, err := store.Recent(ctx, 7, limit)
		if err != nil {
			t.Fatalf("recent(%d): %v", limit, err)
		}
		if len(got) != 0 {
			t.Fatalf("recent(%d) returned %d records after purge", limit, len(got))
		}
	}
}

func TestPurgeWithoutRecordsIsIdempotent(t *testing.T) {
	store := NewMemory()
	if err := store.Purge(context.Background(), 404); err != nil {
		t.Fatalf("purge of unknown user: %v", err)
	}
}

func TestKindValid(t *testing.T) {
	for _, k := range []Kind{KindVacancyResponse, KindShortText, KindResumeImprovement, KindFreeQuestion} {
		if !k.Valid() {
			t.Fatalf("%s should be valid", k)
		}
	}
	if Kind("unknown").Valid() {
		t.Fatal("unknown kind should be invalid")
	}
}
