package flow

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestSerializerOrdersPerUser(t *testing.T) {
	var mu sync.Mutex
	seen := map[int64][]string{}

	s := NewSerializer(func(_ context.Context, ev Event) error {
		mu.Lock()
		seen[ev.UserID] = append(seen[ev.UserID], ev.Payload)
		mu.Unlock()
		return nil
	})

	payloads := []string{"a", "b", "c", "d", "e"}
	for _, p := range payloads {
		for user := int64(1); user <= 3; user++ {
			if err := s.Enqueue(context.Background(), Event{UserID: user, Kind: EventText, Payload: p}); err != nil {
				t.Fatal(err)
			}
		}
	}
	s.Close()

	for user := int64(1); user <= 3; user++ {
		got := seen[user]
		if len(got) != len(payloads) {
			t.Fatalf("user %d handled %d events", user, len(got))
		}
		for i, p := range payloads {
			if got[i] != p {
				t.Fatalf("user %d order = %v", user, got)
			}
		}
	}
}

func TestSerializerUsersRunConcurrently(t *testing.T) {
	entered := make(chan int64, 2)
	release := make(chan struct{})

	s := NewSerializer(func(_ context.Context, ev Event) error {
		entered <- ev.UserID
		<-release
		return nil
	})

	s.Enqueue(context.Background(), Event{UserID: 1, Kind: EventText, Payload: "x"})
	s.Enqueue(context.Background(), Event{UserID: 2, Kind: EventText, Payload: "y"})

	for i := 0; i < 2; i++ {
		select {
		case <-entered:
		case <-time.After(2 * time.Second):
			t.Fatal("handlers did not run in parallel")
		}
	}
	close(release)
	s.Close()
}

func TestSerializerClosedHandlesInline(t *testing.T) {
	var handled int
	s := NewSerializer(func(context.Context, Event) error {
		handled++
		return nil
	})
	s.Close()

	if err := s.Enqueue(context.Background(), Event{UserID: 1, Kind: EventText, Payload: "late"}); err != nil {
		t.Fatal(err)
	}
	if handled != 1 {
		t.Fatalf("handled = %d", handled)
	}
}
