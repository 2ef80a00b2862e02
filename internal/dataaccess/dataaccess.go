// Package dataaccess stores users, auth tokens and games.
package dataaccess

import (
	"errors"

	"github.com/benbeisheim/chessgame/internal/model"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadyTaken = errors.New("already taken")
	ErrBadRequest   = errors.New("bad request")
)

type DataAccess interface {
	Clear() error

	CreateUser(user model.UserData) error
	GetUser(username string) (model.UserData, error)

	CreateAuth(username string) (model.AuthData, error)
	GetAuth(token string) (model.AuthData, error)
	DeleteAuth(token string) error

	ListGames() ([]model.GameData, error)
	// CreateGame stores a fresh game under name and returns its id.
	CreateGame(name string) (int, error)
	GetGame(gameID int) (model.GameData, error)
	UpdateGame(game model.GameData) error
}
