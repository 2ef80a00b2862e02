package service

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/chessgame/internal/dataaccess"
	"github.com/benbeisheim/chessgame/internal/model"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	store dataaccess.DataAccess
	cost  int
	log   zerolog.Logger
}

func NewUserService(store dataaccess.DataAccess, log zerolog.Logger) *UserService {
	return &UserService{
		store: store,
		cost:  bcrypt.DefaultCost,
		log:   log.With().Str("component", "users").Logger(),
	}
}

// WithHashCost overrides the bcrypt cost, mostly so tests stay fast.
func (us *UserService) WithHashCost(cost int) *UserService {
	us.cost = cost
	return us
}

// Register creates the account and logs it in.
func (us *UserService) Register(user model.UserData) (model.AuthData, error) {
	if user.Username == "" || user.Password == "" || user.Email == "" {
		return model.AuthData{}, fmt.Errorf("register: username, password and email are required: %w", ErrBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), us.cost)
	if err != nil {
		return model.AuthData{}, fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hash)

	if err := us.store.CreateUser(user); err != nil {
		return model.AuthData{}, err
	}
	us.log.Info().Str("username", user.Username).Msg("registered")
	return us.store.CreateAuth(user.Username)
}

func (us *UserService) Login(username, password string) (model.AuthData, error) {
	if username == "" || password == "" {
		return model.AuthData{}, fmt.Errorf("login: username and password are required: %w", ErrBadRequest)
	}

	user, err := us.store.GetUser(username)
	if errors.Is(err, dataaccess.ErrNotFound) {
		return model.AuthData{}, fmt.Errorf("login %q: %w", username, ErrUnauthorized)
	}
	if err != nil {
		return model.AuthData{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return model.AuthData{}, fmt.Errorf("login %q: %w", username, ErrUnauthorized)
	}
	return us.store.CreateAuth(username)
}

func (us *UserService) Logout(token string) error {
	if err := us.store.DeleteAuth(token); err != nil {
		if errors.Is(err, dataaccess.ErrNotFound) {
			return fmt.Errorf("logout: %w", ErrUnauthorized)
		}
		return err
	}
	return nil
}

// Authenticate resolves a session token to its username.
func (us *UserService) Authenticate(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("missing auth token: %w", ErrUnauthorized)
	}
	auth, err := us.store.GetAuth(token)
	if errors.Is(err, dataaccess.ErrNotFound) {
		return "", fmt.Errorf("unknown auth token: %w", ErrUnauthorized)
	}
	if err != nil {
		return "", err
	}
	return auth.Username, nil
}

// Clear wipes every user, session and game.
func (us *UserService) Clear() error {
	us.log.Warn().Msg("clearing database")
	return us.store.Clear()
}
