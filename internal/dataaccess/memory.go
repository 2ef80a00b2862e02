package dataaccess

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/benbeisheim/chessgame/internal/chess"
	"github.com/benbeisheim/chessgame/internal/model"
	"github.com/google/uuid"
)

// MemoryDataAccess keeps everything in process. Games are held as their
// encoded JSON so no caller ever shares a live *chess.Game with the store.
type MemoryDataAccess struct {
	users  map[string]model.UserData
	auths  map[string]model.AuthData
	games  map[int][]byte
	names  map[string]int
	nextID int
	mu     sync.RWMutex
}

var _ DataAccess = (*MemoryDataAccess)(nil)

func NewMemoryDataAccess() *MemoryDataAccess {
	m := &MemoryDataAccess{}
	m.reset()
	return m
}

func (m *MemoryDataAccess) reset() {
	m.users = make(map[string]model.UserData)
	m.auths = make(map[string]model.AuthData)
	m.games = make(map[int][]byte)
	m.names = make(map[string]int)
	m.nextID = 1
}

func (m *MemoryDataAccess) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
	return nil
}

func (m *MemoryDataAccess) CreateUser(user model.UserData) error {
	if user.Username == "" {
		return fmt.Errorf("create user: empty username: %w", ErrBadRequest)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[user.Username]; exists {
		return fmt.Errorf("create user %q: %w", user.Username, ErrAlreadyTaken)
	}
	m.users[user.Username] = user
	return nil
}

func (m *MemoryDataAccess) GetUser(username string) (model.UserData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.users[username]
	if !exists {
		return model.UserData{}, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	return user, nil
}

func (m *MemoryDataAccess) CreateAuth(username string) (model.AuthData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[username]; !exists {
		return model.AuthData{}, fmt.Errorf("create auth for %q: %w", username, ErrNotFound)
	}
	auth := model.AuthData{
		AuthToken: uuid.New().String(),
		Username:  username,
	}
	m.auths[auth.AuthToken] = auth
	return auth, nil
}

func (m *MemoryDataAccess) GetAuth(token string) (model.AuthData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	auth, exists := m.auths[token]
	if !exists {
		return model.AuthData{}, fmt.Errorf("auth token: %w", ErrNotFound)
	}
	return auth, nil
}

func (m *MemoryDataAccess) DeleteAuth(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.auths[token]; !exists {
		return fmt.Errorf("auth token: %w", ErrNotFound)
	}
	delete(m.auths, token)
	return nil
}

func (m *MemoryDataAccess) ListGames() ([]model.GameData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	games := make([]model.GameData, 0, len(m.games))
	for _, raw := range m.games {
		game, err := decodeGame(raw)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].GameID < games[j].GameID })
	return games, nil
}

func (m *MemoryDataAccess) CreateGame(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("create game: empty name: %w", ErrBadRequest)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.names[name]; exists {
		return 0, fmt.Errorf("create game %q: %w", name, ErrAlreadyTaken)
	}

	game := model.GameData{
		GameID:   m.nextID,
		GameName: name,
		Game:     chess.NewGame(),
	}
	raw, err := json.Marshal(game)
	if err != nil {
		return 0, fmt.Errorf("encode game: %w", err)
	}
	m.games[game.GameID] = raw
	m.names[name] = game.GameID
	m.nextID++
	return game.GameID, nil
}

func (m *MemoryDataAccess) GetGame(gameID int) (model.GameData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	raw, exists := m.games[gameID]
	if !exists {
		return model.GameData{}, fmt.Errorf("game %d: %w", gameID, ErrNotFound)
	}
	return decodeGame(raw)
}

// UpdateGame replaces the stored game with the same id. The name is fixed at
// creation.
func (m *MemoryDataAccess) UpdateGame(game model.GameData) error {
	if game.Game == nil {
		return fmt.Errorf("update game %d: missing board: %w", game.GameID, ErrBadRequest)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	raw, exists := m.games[game.GameID]
	if !exists {
		return fmt.Errorf("game %d: %w", game.GameID, ErrNotFound)
	}
	stored, err := decodeGame(raw)
	if err != nil {
		return err
	}
	game.GameName = stored.GameName

	updated, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("encode game: %w", err)
	}
	m.games[game.GameID] = updated
	return nil
}

func decodeGame(raw []byte) (model.GameData, error) {
	var game model.GameData
	if err := json.Unmarshal(raw, &game); err != nil {
		return model.GameData{}, fmt.Errorf("decode stored game: %w", err)
	}
	return game, nil
}
