package service

import (
	"errors"

	"github.com/benbeisheim/chessgame/internal/dataaccess"
)

var (
	ErrBadRequest   = dataaccess.ErrBadRequest
	ErrAlreadyTaken = dataaccess.ErrAlreadyTaken
	ErrNotFound     = dataaccess.ErrNotFound
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrGameOver     = errors.New("game is over")
)
