package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
)

func TestCreateBotMatch(t *testing.T) {
	sm := NewSessionManager()

	t.Run("human first", func(t *testing.T) {
		m, err := sm.CreateBotMatch(context.Background(), "Ann", bot.DifficultyEasy, true)
		if err != nil {
			t.Fatalf("CreateBotMatch: %v", err)
		}
		if m.State().MoveCount() != 0 || IsBot(m.Current()) || m.Current().Name() != "Ann" {
			t.Fatal("human should be to move on an empty board")
		}
		if p := m.Players(); p[1].Name() != bot.DifficultyEasy.BotName() {
			t.Fatalf("unexpected bot name %q", p[1].Name())
		}
	})

	t.Run("bot first", func(t *testing.T) {
		m, err := sm.CreateBotMatch(context.Background(), "Ben", bot.DifficultyMedium, false)
		if err != nil {
			t.Fatalf("CreateBotMatch: %v", err)
		}
		if m.State().MoveCount() != 1 || m.State().CurrentPlayer() != domain.Player2 {
			t.Fatal("bot should have played the opening move")
		}
		if h := m.History(); len(h) != 1 || h[0].Player != domain.Player1 {
			t.Fatalf("unexpected history: %+v", h)
		}
	})

	if sm.Count() != 2 {
		t.Fatalf("Count = %d, want 2", sm.Count())
	}
}

func TestCreateBotMatchCancelled(t *testing.T) {
	sm := NewSessionManager()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sm.CreateBotMatch(ctx, "Ann", bot.DifficultyEasy, false); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if sm.Count() != 0 {
		t.Fatal("a failed match must not be registered")
	}
}

func TestGetAndRemove(t *testing.T) {
	sm := NewSessionManager()
	m, err := sm.CreateBotMatch(context.Background(), "", bot.DifficultyEasy, true)
	if err != nil {
		t.Fatal(err)
	}

	got, err := sm.Get(m.ID)
	if err != nil || got != m {
		t.Fatalf("Get: %v", err)
	}
	if err := sm.Remove(m.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := sm.Get(m.ID); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
	if err := sm.Remove(m.ID); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound on second remove, got %v", err)
	}
}

func TestCleanupIdle(t *testing.T) {
	sm := NewSessionManager()
	active, err := sm.CreateBotMatch(context.Background(), "", bot.DifficultyEasy, true)
	if err != nil {
		t.Fatal(err)
	}

	finished, err := NewMatch(NewHumanPlayer(domain.Player1, ""), NewHumanPlayer(domain.Player2, ""))
	if err != nil {
		t.Fatal(err)
	}
	for _, col := range []int{1, 2, 1, 2, 1, 2, 1} {
		if _, err := finished.Play(col); err != nil {
			t.Fatal(err)
		}
	}
	sm.mu.Lock()
	sm.matches[finished.ID] = finished
	sm.mu.Unlock()

	maxIdle := time.Hour
	if n := sm.CleanupIdle(time.Now(), maxIdle); n != 0 {
		t.Fatalf("nothing is stale yet, removed %d", n)
	}

	// past the finished limit but inside the active one
	if n := sm.CleanupIdle(time.Now().Add(30*time.Minute), maxIdle); n != 1 {
		t.Fatalf("expected the finished match to go, removed %d", n)
	}
	if _, err := sm.Get(active.ID); err != nil {
		t.Fatal("active match should survive")
	}

	if n := sm.CleanupIdle(time.Now().Add(2*time.Hour), maxIdle); n != 1 {
		t.Fatalf("expected the active match to go, removed %d", n)
	}
	if sm.Count() != 0 {
		t.Fatalf("Count = %d, want 0", sm.Count())
	}
}

func TestActiveSkipsFinishedMatches(t *testing.T) {
	sm := NewSessionManager()
	first, err := sm.CreateBotMatch(context.Background(), "", bot.DifficultyEasy, true)
	if err != nil {
		t.Fatal(err)
	}
	second, err := sm.CreateBotMatch(context.Background(), "", bot.DifficultyEasy, true)
	if err != nil {
		t.Fatal(err)
	}

	finished, err := NewMatch(NewHumanPlayer(domain.Player1, ""), NewHumanPlayer(domain.Player2, ""))
	if err != nil {
		t.Fatal(err)
	}
	for _, col := range []int{1, 2, 1, 2, 1, 2, 1} {
		if _, err := finished.Play(col); err != nil {
			t.Fatal(err)
		}
	}
	sm.mu.Lock()
	sm.matches[finished.ID] = finished
	sm.mu.Unlock()

	active := sm.Active()
	if len(active) != 2 {
		t.Fatalf("got %d active matches, want 2", len(active))
	}
	for _, m := range active {
		if m != first && m != second {
			t.Fatalf("unexpected match %s in the active list", m.ID)
		}
	}
}

func TestRegistryNotBlockedByBusyMatch(t *testing.T) {
	sm := NewSessionManager()
	busy, err := sm.CreateBotMatch(context.Background(), "", bot.DifficultyEasy, true)
	if err != nil {
		t.Fatal(err)
	}
	other, err := sm.CreateBotMatch(context.Background(), "", bot.DifficultyEasy, true)
	if err != nil {
		t.Fatal(err)
	}

	// a bot search holds the match lock for its whole duration
	busy.mu.Lock()

	sweeps := make(chan int, 2)
	go func() { sweeps <- sm.CleanupIdle(time.Now(), time.Hour) }()
	go func() { sweeps <- len(sm.Active()) }()

	done := make(chan error, 1)
	go func() {
		if _, err := sm.Get(other.ID); err != nil {
			done <- err
			return
		}
		if _, err := sm.CreateBotMatch(context.Background(), "", bot.DifficultyEasy, true); err != nil {
			done <- err
			return
		}
		done <- sm.Remove(other.ID)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("registry call failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		busy.mu.Unlock()
		t.Fatal("registry calls blocked behind a busy match")
	}

	busy.mu.Unlock()
	for i := 0; i < 2; i++ {
		select {
		case <-sweeps:
		case <-time.After(2 * time.Second):
			t.Fatal("sweep did not finish once the match was released")
		}
	}
}
