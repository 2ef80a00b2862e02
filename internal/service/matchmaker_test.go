package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbeisheim/chessgame/internal/chess"
	"github.com/rs/zerolog"
)

func TestMatchmakerPairsInOrder(t *testing.T) {
	_, gs, _ := newServices(t)
	m := NewMatchmaker(gs, time.Hour, zerolog.Nop())

	for _, name := range []string{"ann", "bob", "cat"} {
		if err := m.Join(name); err != nil {
			t.Fatalf("Join(%q): %v", name, err)
		}
	}
	if err := m.Join("ann"); !errors.Is(err, ErrAlreadyTaken) {
		t.Errorf("duplicate Join error = %v; want ErrAlreadyTaken", err)
	}

	m.matchPending()

	ann := m.Status("ann")
	bob := m.Status("bob")
	if ann.State != MatchMatched || ann.Color != chess.White {
		t.Errorf("Status(ann) = %+v; want matched as WHITE", ann)
	}
	if bob.State != MatchMatched || bob.Color != chess.Black || bob.GameID != ann.GameID {
		t.Errorf("Status(bob) = %+v; want matched as BLACK in game %d", bob, ann.GameID)
	}
	if got := m.Status("cat").State; got != MatchQueued {
		t.Errorf("Status(cat) = %v; want QUEUED", got)
	}
	if got := m.Status("ann").State; got != MatchIdle {
		t.Errorf("Status(ann) after collecting = %v; want IDLE", got)
	}

	game, err := gs.Connect("ann", ann.GameID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if game.WhiteUsername != "ann" || game.BlackUsername != "bob" {
		t.Errorf("seats = %q/%q; want ann/bob", game.WhiteUsername, game.BlackUsername)
	}
}

func TestMatchmakerCancel(t *testing.T) {
	_, gs, _ := newServices(t)
	m := NewMatchmaker(gs, time.Hour, zerolog.Nop())
	_ = m.Join("ann")

	if !m.Cancel("ann") {
		t.Error("Cancel(ann) = false")
	}
	if got := m.Status("ann").State; got != MatchIdle {
		t.Errorf("Status after Cancel = %v; want IDLE", got)
	}
}

func TestMatchmakerRun(t *testing.T) {
	_, gs, _ := newServices(t)
	m := NewMatchmaker(gs, 5*time.Millisecond, zerolog.Nop())
	_ = m.Join("ann")
	_ = m.Join("bob")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for m.queue.Size() > 0 {
		select {
		case <-deadline:
			t.Fatal("matchmaker never paired the queue")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done

	if got := m.Status("bob").State; got != MatchMatched {
		t.Errorf("Status(bob) = %v; want MATCHED", got)
	}
}

func TestMatchmakerClear(t *testing.T) {
	_, gs, _ := newServices(t)
	m := NewMatchmaker(gs, time.Hour, zerolog.Nop())
	for _, name := range []string{"ann", "bob", "cat"} {
		_ = m.Join(name)
	}
	m.matchPending()

	m.Clear()
	for _, name := range []string{"ann", "bob", "cat"} {
		if got := m.Status(name).State; got != MatchIdle {
			t.Errorf("Status(%s) after Clear = %v; want IDLE", name, got)
		}
	}
	if err := m.Join("cat"); err != nil {
		t.Errorf("Join after Clear: %v", err)
	}
}
