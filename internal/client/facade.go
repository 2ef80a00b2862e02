// Package client talks to the chess server over HTTP and websockets and
// drives the terminal REPL.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/benbeisheim/chessgame/internal/chess"
	"github.com/benbeisheim/chessgame/internal/model"
	"github.com/gofiber/fiber/v2"
)

const requestTimeout = 10 * time.Second

// ResponseError is a non-200 answer from the server.
type ResponseError struct {
	Status  int
	Message string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return e.Message
}

// ServerFacade wraps every HTTP endpoint of the server.
type ServerFacade struct {
	baseURL string
	client  *fiber.Client
}

func NewServerFacade(baseURL string) *ServerFacade {
	return &ServerFacade{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &fiber.Client{},
	}
}

func (f *ServerFacade) URL() string { return f.baseURL }

func (f *ServerFacade) do(agent *fiber.Agent, token string, body, out interface{}) error {
	if token != "" {
		agent.Set("authorization", token)
	}
	if body != nil {
		agent.JSON(body)
	}
	agent.Timeout(requestTimeout)

	status, data, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("request failed: %w", errors.Join(errs...))
	}
	if status != fiber.StatusOK {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(data, &msg)
		return &ResponseError{Status: status, Message: msg.Message}
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (f *ServerFacade) Register(username, password, email string) (model.AuthData, error) {
	var auth model.AuthData
	body := fiber.Map{"username": username, "password": password, "email": email}
	err := f.do(f.client.Post(f.baseURL+"/user"), "", body, &auth)
	return auth, err
}

func (f *ServerFacade) Login(username, password string) (model.AuthData, error) {
	var auth model.AuthData
	body := fiber.Map{"username": username, "password": password}
	err := f.do(f.client.Post(f.baseURL+"/session"), "", body, &auth)
	return auth, err
}

func (f *ServerFacade) Logout(token string) error {
	return f.do(f.client.Delete(f.baseURL+"/session"), token, nil, nil)
}

// Clear wipes the server's database.
func (f *ServerFacade) Clear() error {
	return f.do(f.client.Delete(f.baseURL+"/db"), "", nil, nil)
}

func (f *ServerFacade) ListGames(token string) ([]model.GameData, error) {
	var resp struct {
		Games []model.GameData `json:"games"`
	}
	err := f.do(f.client.Get(f.baseURL+"/game"), token, nil, &resp)
	return resp.Games, err
}

func (f *ServerFacade) CreateGame(token, name string) (int, error) {
	var resp struct {
		GameID int `json:"gameID"`
	}
	err := f.do(f.client.Post(f.baseURL+"/game"), token, fiber.Map{"gameName": name}, &resp)
	return resp.GameID, err
}

func (f *ServerFacade) JoinGame(token string, gameID int, color chess.Color) error {
	body := fiber.Map{"playerColor": color.String(), "gameID": gameID}
	return f.do(f.client.Put(f.baseURL+"/game"), token, body, nil)
}

// LegalMoves reports the moves of the piece on pos; ok is false for an
// empty square.
func (f *ServerFacade) LegalMoves(token string, gameID int, pos chess.Position) (moves []chess.Move, ok bool, err error) {
	var resp struct {
		Moves *[]chess.Move `json:"moves"`
	}
	u := fmt.Sprintf("%s/game/%d/moves?pos=%s", f.baseURL, gameID, url.QueryEscape(pos.String()))
	if err := f.do(f.client.Get(u), token, nil, &resp); err != nil {
		return nil, false, err
	}
	if resp.Moves == nil {
		return nil, false, nil
	}
	return *resp.Moves, true, nil
}

// MatchStatus mirrors the server's matchmaking state.
type MatchStatus struct {
	State  string      `json:"state"`
	GameID int         `json:"gameID"`
	Color  chess.Color `json:"color"`
}

func (s MatchStatus) Matched() bool { return s.State == "MATCHED" }

func (f *ServerFacade) JoinMatchmaking(token string) (MatchStatus, error) {
	var status MatchStatus
	err := f.do(f.client.Post(f.baseURL+"/game/matchmaking"), token, nil, &status)
	return status, err
}

func (f *ServerFacade) MatchmakingStatus(token string) (MatchStatus, error) {
	var status MatchStatus
	err := f.do(f.client.Get(f.baseURL+"/game/matchmaking"), token, nil, &status)
	return status, err
}

func (f *ServerFacade) LeaveMatchmaking(token string) error {
	return f.do(f.client.Delete(f.baseURL+"/game/matchmaking"), token, nil, nil)
}
