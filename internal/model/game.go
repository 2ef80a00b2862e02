package model

import (
	"github.com/benbeisheim/chessgame/internal/chess"
)

// GameData is a stored game: its seats, display name and engine state.
type GameData struct {
	GameID        int         `json:"gameID"`
	WhiteUsername string      `json:"whiteUsername,omitempty"`
	BlackUsername string      `json:"blackUsername,omitempty"`
	GameName      string      `json:"gameName"`
	Game          *chess.Game `json:"game"`
	Over          bool        `json:"over"`
}

// Seat returns the username seated at color, or "" when the seat is open.
func (g *GameData) Seat(color chess.Color) string {
	switch color {
	case chess.White:
		return g.WhiteUsername
	case chess.Black:
		return g.BlackUsername
	}
	return ""
}

// SetSeat seats username at color. An empty username frees the seat.
func (g *GameData) SetSeat(color chess.Color, username string) {
	switch color {
	case chess.White:
		g.WhiteUsername = username
	case chess.Black:
		g.BlackUsername = username
	}
}

// ColorOf reports which side username plays. Observers get false.
func (g *GameData) ColorOf(username string) (chess.Color, bool) {
	switch username {
	case "":
		return 0, false
	case g.WhiteUsername:
		return chess.White, true
	case g.BlackUsername:
		return chess.Black, true
	}
	return 0, false
}

// MatchFoundEvent tells a queued player which game they were paired into.
type MatchFoundEvent struct {
	GameID int         `json:"gameID"`
	Color  chess.Color `json:"color"`
}
