package ws

import (
	"github.com/benbeisheim/chessgame/internal/chess"
	"github.com/benbeisheim/chessgame/internal/model"
)

// CommandType is what a client asks the server to do over the socket.
type CommandType string

const (
	CommandConnect  CommandType = "CONNECT"
	CommandMakeMove CommandType = "MAKE_MOVE"
	CommandLeave    CommandType = "LEAVE"
	CommandResign   CommandType = "RESIGN"
)

type UserGameCommand struct {
	CommandType CommandType `json:"commandType"`
	AuthToken   string      `json:"authToken"`
	GameID      int         `json:"gameID"`
	Move        *chess.Move `json:"move,omitempty"`
}

// MessageType tags what the server pushes to clients.
type MessageType string

const (
	MessageLoadGame     MessageType = "LOAD_GAME"
	MessageError        MessageType = "ERROR"
	MessageNotification MessageType = "NOTIFICATION"
)

type ServerMessage struct {
	ServerMessageType MessageType     `json:"serverMessageType"`
	Game              *model.GameData `json:"game,omitempty"`
	ErrorMessage      string          `json:"errorMessage,omitempty"`
	Message           string          `json:"message,omitempty"`
}

func LoadGame(game *model.GameData) ServerMessage {
	return ServerMessage{ServerMessageType: MessageLoadGame, Game: game}
}

func Error(msg string) ServerMessage {
	return ServerMessage{ServerMessageType: MessageError, ErrorMessage: "Error: " + msg}
}

func Notification(msg string) ServerMessage {
	return ServerMessage{ServerMessageType: MessageNotification, Message: msg}
}
