package service

import (
	"testing"

	"github.com/benbeisheim/chessgame/internal/chess"
	"github.com/benbeisheim/chessgame/internal/dataaccess"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func newServices(t *testing.T) (*UserService, *GameService, *dataaccess.MemoryDataAccess) {
	t.Helper()
	store := dataaccess.NewMemoryDataAccess()
	log := zerolog.Nop()
	return NewUserService(store, log).WithHashCost(bcrypt.MinCost), NewGameService(store, log), store
}

func move(t *testing.T, from, to string) chess.Move {
	t.Helper()
	start, err := chess.ParsePosition(from)
	if err != nil {
		t.Fatal(err)
	}
	end, err := chess.ParsePosition(to)
	if err != nil {
		t.Fatal(err)
	}
	return chess.NewMove(start, end, 0)
}

// seatedGame creates a game with ann as White and bob as Black.
func seatedGame(t *testing.T, gs *GameService) int {
	t.Helper()
	id, err := gs.CreateGame("match")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if err := gs.JoinGame("ann", id, chess.White); err != nil {
		t.Fatalf("JoinGame(ann): %v", err)
	}
	if err := gs.JoinGame("bob", id, chess.Black); err != nil {
		t.Fatalf("JoinGame(bob): %v", err)
	}
	return id
}
