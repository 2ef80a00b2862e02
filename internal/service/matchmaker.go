package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chessgame/internal/chess"
	"github.com/benbeisheim/chessgame/internal/model"
	"github.com/rs/zerolog"
)

type MatchState string

const (
	MatchIdle    MatchState = "IDLE"
	MatchQueued  MatchState = "QUEUED"
	MatchMatched MatchState = "MATCHED"
)

type MatchStatus struct {
	State  MatchState  `json:"state"`
	GameID int         `json:"gameID,omitempty"`
	Color  chess.Color `json:"color,omitempty"`
}

// Matchmaker pairs queued players into fresh games on a fixed interval.
type Matchmaker struct {
	games    *GameService
	queue    *model.Queue
	interval time.Duration
	matches  map[string]model.MatchFoundEvent
	mu       sync.Mutex
	log      zerolog.Logger
}

func NewMatchmaker(games *GameService, interval time.Duration, log zerolog.Logger) *Matchmaker {
	return &Matchmaker{
		games:    games,
		queue:    model.NewQueue(),
		interval: interval,
		matches:  make(map[string]model.MatchFoundEvent),
		log:      log.With().Str("component", "matchmaker").Logger(),
	}
}

// Join queues username, dropping any match they have not collected yet.
func (m *Matchmaker) Join(username string) error {
	m.mu.Lock()
	delete(m.matches, username)
	m.mu.Unlock()

	if err := m.queue.AddPlayer(username); err != nil {
		if errors.Is(err, model.ErrAlreadyQueued) {
			return fmt.Errorf("%s: %w", username, ErrAlreadyTaken)
		}
		return err
	}
	m.log.Debug().Str("username", username).Int("queued", m.queue.Size()).Msg("joined queue")
	return nil
}

func (m *Matchmaker) Cancel(username string) bool {
	return m.queue.RemovePlayer(username)
}

// Status reports where username stands. A found match is handed out once.
func (m *Matchmaker) Status(username string) MatchStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	if event, ok := m.matches[username]; ok {
		delete(m.matches, username)
		return MatchStatus{State: MatchMatched, GameID: event.GameID, Color: event.Color}
	}
	if m.queue.Contains(username) {
		return MatchStatus{State: MatchQueued}
	}
	return MatchStatus{State: MatchIdle}
}

// Clear forgets every queued player and uncollected match.
func (m *Matchmaker) Clear() {
	m.mu.Lock()
	m.matches = make(map[string]model.MatchFoundEvent)
	m.mu.Unlock()
	m.queue.Clear()
	m.log.Debug().Msg("matchmaker cleared")
}

// Run pairs players until ctx is cancelled.
func (m *Matchmaker) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Debug().Msg("matchmaker stopped")
			return
		case <-ticker.C:
			m.matchPending()
		}
	}
}

func (m *Matchmaker) matchPending() {
	for {
		first, second, ok := m.queue.NextPair()
		if !ok {
			return
		}
		if err := m.match(first.Username, second.Username); err != nil {
			m.log.Error().Err(err).Str("white", first.Username).Str("black", second.Username).Msg("could not start match")
		}
	}
}

// match seats the longer-waiting player as White.
func (m *Matchmaker) match(white, black string) error {
	gameID, err := m.games.CreateGame("")
	if err != nil {
		return err
	}
	if err := m.games.JoinGame(white, gameID, chess.White); err != nil {
		return err
	}
	if err := m.games.JoinGame(black, gameID, chess.Black); err != nil {
		return err
	}

	m.mu.Lock()
	m.matches[white] = model.MatchFoundEvent{GameID: gameID, Color: chess.White}
	m.matches[black] = model.MatchFoundEvent{GameID: gameID, Color: chess.Black}
	m.mu.Unlock()

	m.log.Info().Int("gameID", gameID).Str("white", white).Str("black", black).Msg("match found")
	return nil
}
