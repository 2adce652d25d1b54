package session

import (
	"testing"

	"freelancebot/history"
)

func TestGetReturnsIdleSessionForUnknownUser(t *testing.T) {
	store := NewMemoryStore()
	sess := store.Get(1)
	if sess.State != StateIdle {
		t.Fatalf("state = %s, want idle", sess.State)
	}
	if len(sess.Context) != 0 {
		t.Fatalf("context not empty: %v", sess.Context)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	store.UpdateContext(1, ContextVacancy, "Go developer")

	sess := store.Get(1)
	sess.Context[ContextVacancy] = "mutated"

	if got := store.Get(1).Context[ContextVacancy]; got != "Go developer" {
		t.Fatalf("stored context mutated through copy: %q", got)
	}
}

func TestClearResetsStateAndContextOnly(t *testing.T) {
	store := NewMemoryStore()
	store.SetState(1, StateAwaitingSkills)
	store.UpdateContext(1, ContextVacancy, "Backend role")
	store.SetLast(1, "prompt", "response", history.KindVacancyResponse)

	store.Clear(1)

	sess := store.Get(1)
	if sess.State != StateIdle {
		t.Fatalf("state = %s, want idle", sess.State)
	}
	if len(sess.Context) != 0 {
		t.Fatalf("context not cleared: %v", sess.Context)
	}
	if sess.LastPrompt != "prompt" || sess.LastResponse != "response" || sess.LastKind != history.KindVacancyResponse {
		t.Fatalf("last generation not preserved: %+v", sess)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	store.Clear(5)
	store.Clear(5)
	if got := store.Get(5).State; got != StateIdle {
		t.Fatalf("state = %s, want idle", got)
	}
}

func TestSetLastOverwrites(t *testing.T) {
	store := NewMemoryStore()
	store.SetLast(1, "p1", "r1", history.KindShortText)
	store.SetLast(1, "p2", "r2", history.KindFreeQuestion)

	sess := store.Get(1)
	if sess.LastPrompt != "p2" || sess.LastResponse != "r2" || sess.LastKind != history.KindFreeQuestion {
		t.Fatalf("unexpected last generation: %+v", sess)
	}
}
