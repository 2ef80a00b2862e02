package service

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/chessgame/internal/chess"
	"github.com/benbeisheim/chessgame/internal/dataaccess"
	"github.com/benbeisheim/chessgame/internal/model"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/rs/zerolog"
)

// nameAttempts bounds how often CreateGame rerolls a generated name that
// collides with an existing game.
const nameAttempts = 5

type GameService struct {
	store dataaccess.DataAccess
	locks *gameLocks
	log   zerolog.Logger
}

func NewGameService(store dataaccess.DataAccess, log zerolog.Logger) *GameService {
	return &GameService{
		store: store,
		locks: newGameLocks(),
		log:   log.With().Str("component", "games").Logger(),
	}
}

func (gs *GameService) ListGames() ([]model.GameData, error) {
	return gs.store.ListGames()
}

// CreateGame stores a new game. An empty name is replaced by a generated one.
func (gs *GameService) CreateGame(name string) (int, error) {
	if name != "" {
		return gs.store.CreateGame(name)
	}

	var err error
	for i := 0; i < nameAttempts; i++ {
		var id int
		id, err = gs.store.CreateGame(petname.Generate(2, "-"))
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, dataaccess.ErrAlreadyTaken) {
			return 0, err
		}
	}
	return 0, fmt.Errorf("generate game name: %w", err)
}

// load fetches a game, reporting unknown ids as bad requests.
func (gs *GameService) load(gameID int) (model.GameData, error) {
	game, err := gs.store.GetGame(gameID)
	if errors.Is(err, dataaccess.ErrNotFound) {
		return model.GameData{}, fmt.Errorf("game %d does not exist: %w", gameID, ErrBadRequest)
	}
	return game, err
}

func (gs *GameService) JoinGame(username string, gameID int, color chess.Color) error {
	if color != chess.White && color != chess.Black {
		return fmt.Errorf("join game %d: bad color: %w", gameID, ErrBadRequest)
	}

	unlock := gs.locks.lock(gameID)
	defer unlock()

	game, err := gs.load(gameID)
	if err != nil {
		return err
	}
	switch seated := game.Seat(color); seated {
	case username:
		return nil
	case "":
	default:
		return fmt.Errorf("%s seat in game %d: %w", color, gameID, ErrAlreadyTaken)
	}

	game.SetSeat(color, username)
	if err := gs.store.UpdateGame(game); err != nil {
		return err
	}
	gs.log.Info().Int("gameID", gameID).Str("username", username).Stringer("color", color).Msg("joined game")
	return nil
}

// Connect returns the game a websocket client is attaching to.
func (gs *GameService) Connect(username string, gameID int, publish Publisher) (*model.GameData, error) {
	unlock := gs.locks.lock(gameID)
	defer unlock()

	game, err := gs.load(gameID)
	if err != nil {
		return nil, err
	}
	gs.log.Debug().Int("gameID", gameID).Str("username", username).Msg("connected")
	publish.publish(&game)
	return &game, nil
}

// LegalMoves lists the moves of the piece on pos. ok is false when the
// square is empty.
func (gs *GameService) LegalMoves(gameID int, pos chess.Position) (moves []chess.Move, ok bool, err error) {
	if !pos.Valid() {
		return nil, false, fmt.Errorf("square %s: %w", pos, ErrBadRequest)
	}
	game, err := gs.load(gameID)
	if err != nil {
		return nil, false, err
	}
	moves, ok = game.Game.ValidMoves(pos)
	return moves, ok, nil
}

// Publisher receives a game right after a change is stored, while the
// game's lock is still held. A nil Publisher is skipped.
type Publisher func(game *model.GameData)

func (p Publisher) publish(game *model.GameData) {
	if p != nil {
		p(game)
	}
}

// MakeMove applies move for username and ends the game when the side to
// move is mated or stalemated.
func (gs *GameService) MakeMove(username string, gameID int, move chess.Move, publish Publisher) (*model.GameData, error) {
	unlock := gs.locks.lock(gameID)
	defer unlock()

	game, err := gs.load(gameID)
	if err != nil {
		return nil, err
	}
	if game.Over {
		return nil, fmt.Errorf("move in game %d: %w", gameID, ErrGameOver)
	}
	color, seated := game.ColorOf(username)
	if !seated {
		return nil, fmt.Errorf("observers cannot move: %w", ErrForbidden)
	}
	if piece, ok := game.Game.Piece(move.Start); ok && piece.Color != color {
		return nil, fmt.Errorf("%s does not belong to %s: %w", piece, username, ErrForbidden)
	}

	if err := game.Game.MakeMove(move); err != nil {
		return nil, err
	}
	next := game.Game.Turn()
	if game.Game.IsInCheckmate(next) || game.Game.IsInStalemate(next) {
		game.Over = true
	}

	if err := gs.store.UpdateGame(game); err != nil {
		return nil, err
	}
	gs.log.Info().Int("gameID", gameID).Str("username", username).Stringer("move", move).Bool("over", game.Over).Msg("move made")
	publish.publish(&game)
	return &game, nil
}

// Resign ends the game on behalf of a seated player.
func (gs *GameService) Resign(username string, gameID int, publish Publisher) (*model.GameData, error) {
	unlock := gs.locks.lock(gameID)
	defer unlock()

	game, err := gs.load(gameID)
	if err != nil {
		return nil, err
	}
	if _, seated := game.ColorOf(username); !seated {
		return nil, fmt.Errorf("observers cannot resign: %w", ErrForbidden)
	}
	if game.Over {
		return nil, fmt.Errorf("resign game %d: %w", gameID, ErrGameOver)
	}

	game.Over = true
	if err := gs.store.UpdateGame(game); err != nil {
		return nil, err
	}
	gs.log.Info().Int("gameID", gameID).Str("username", username).Msg("resigned")
	publish.publish(&game)
	return &game, nil
}

// Leave frees username's seat, if any. Observers leave without a change.
func (gs *GameService) Leave(username string, gameID int, publish Publisher) (*model.GameData, error) {
	unlock := gs.locks.lock(gameID)
	defer unlock()

	game, err := gs.load(gameID)
	if err != nil {
		return nil, err
	}
	if color, seated := game.ColorOf(username); seated {
		game.SetSeat(color, "")
		if err := gs.store.UpdateGame(game); err != nil {
			return nil, err
		}
		gs.log.Info().Int("gameID", gameID).Str("username", username).Msg("left game")
	}
	publish.publish(&game)
	return &game, nil
}
