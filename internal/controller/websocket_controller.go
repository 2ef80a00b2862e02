package controller

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessgame/internal/model"
	"github.com/benbeisheim/chessgame/internal/service"
	"github.com/benbeisheim/chessgame/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
)

type WebSocketController struct {
	userService *service.UserService
	gameService *service.GameService
	hub         *ws.Hub
	log         zerolog.Logger
}

func NewWebSocketController(userService *service.UserService, gameService *service.GameService, hub *ws.Hub, log zerolog.Logger) *WebSocketController {
	return &WebSocketController{
		userService: userService,
		gameService: gameService,
		hub:         hub,
		log:         log.With().Str("component", "websocket").Logger(),
	}
}

// lockedConn serializes writes; the hub and the read loop both write.
type lockedConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (lc *lockedConn) WriteJSON(v interface{}) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.WriteJSON(v)
}

func (lc *lockedConn) Close() error {
	return lc.conn.Close()
}

// HandleConnection reads commands until the client goes away.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	conn := &lockedConn{conn: c}
	users := make(map[string]struct{})
	defer wsc.disconnect(conn, users)

	for {
		messageType, data, err := c.ReadMessage()
		if err != nil {
			wsc.log.Debug().Err(err).Msg("connection closed")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var cmd ws.UserGameCommand
		if err := json.Unmarshal(data, &cmd); err != nil {
			wsc.reply(conn, ws.Error("malformed command: "+err.Error()))
			continue
		}
		if username := wsc.HandleCommand(conn, cmd); username != "" {
			users[username] = struct{}{}
		}
	}
}

// HandleCommand runs one command from conn and returns the authenticated
// username, or "" when authentication failed.
func (wsc *WebSocketController) HandleCommand(conn ws.Conn, cmd ws.UserGameCommand) string {
	username, err := wsc.userService.Authenticate(cmd.AuthToken)
	if err != nil {
		wsc.reply(conn, ws.Error(err.Error()))
		return ""
	}

	switch cmd.CommandType {
	case ws.CommandConnect:
		err = wsc.connect(conn, username, cmd.GameID)
	case ws.CommandMakeMove:
		err = wsc.makeMove(username, cmd)
	case ws.CommandLeave:
		err = wsc.leave(conn, username, cmd.GameID)
	case ws.CommandResign:
		err = wsc.resign(username, cmd.GameID)
	default:
		err = fmt.Errorf("unknown command %q: %w", cmd.CommandType, service.ErrBadRequest)
	}

	if err != nil {
		wsc.log.Debug().Err(err).Str("username", username).Str("command", string(cmd.CommandType)).Msg("command failed")
		wsc.reply(conn, ws.Error(err.Error()))
	}
	return username
}

func (wsc *WebSocketController) reply(conn ws.Conn, msg ws.ServerMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		wsc.log.Warn().Err(err).Msg("write failed")
	}
}

func (wsc *WebSocketController) connect(conn ws.Conn, username string, gameID int) error {
	_, err := wsc.gameService.Connect(username, gameID, func(game *model.GameData) {
		wsc.hub.Register(username, gameID, conn)
		if err := wsc.hub.Send(username, ws.LoadGame(game)); err != nil {
			return
		}

		role := "an observer"
		if color, seated := game.ColorOf(username); seated {
			role = color.String()
		}
		wsc.hub.Broadcast(gameID, username, ws.Notification(fmt.Sprintf("%s joined the game as %s", username, role)))
	})
	if err != nil {
		return err
	}
	wsc.log.Debug().Str("username", username).Int("gameID", gameID).Int("connections", wsc.hub.Size()).Msg("connected")
	return nil
}

func (wsc *WebSocketController) makeMove(username string, cmd ws.UserGameCommand) error {
	if cmd.Move == nil {
		return fmt.Errorf("missing move: %w", service.ErrBadRequest)
	}
	_, err := wsc.gameService.MakeMove(username, cmd.GameID, *cmd.Move, func(game *model.GameData) {
		wsc.hub.Broadcast(cmd.GameID, "", ws.LoadGame(game))
		wsc.hub.Broadcast(cmd.GameID, username, ws.Notification(fmt.Sprintf("%s moved %s", username, cmd.Move)))
		if status := gameStatus(game); status != "" {
			wsc.hub.Broadcast(cmd.GameID, "", ws.Notification(status))
		}
	})
	return err
}

// gameStatus describes check, checkmate or stalemate of the side to move.
func gameStatus(game *model.GameData) string {
	turn := game.Game.Turn()
	who := game.Seat(turn)
	if who == "" {
		who = turn.String()
	}
	switch {
	case game.Game.IsInCheckmate(turn):
		return fmt.Sprintf("%s is in checkmate", who)
	case game.Game.IsInStalemate(turn):
		return fmt.Sprintf("%s is in stalemate", who)
	case game.Game.IsInCheck(turn):
		return fmt.Sprintf("%s is in check", who)
	}
	return ""
}

func (wsc *WebSocketController) leave(conn ws.Conn, username string, gameID int) error {
	_, err := wsc.gameService.Leave(username, gameID, func(*model.GameData) {
		wsc.hub.Unregister(username, conn)
		wsc.hub.Broadcast(gameID, username, ws.Notification(fmt.Sprintf("%s left the game", username)))
	})
	return err
}

func (wsc *WebSocketController) resign(username string, gameID int) error {
	_, err := wsc.gameService.Resign(username, gameID, func(*model.GameData) {
		wsc.hub.Broadcast(gameID, "", ws.Notification(fmt.Sprintf("%s resigned", username)))
	})
	return err
}

// disconnect forgets the users conn was serving and tells their games.
func (wsc *WebSocketController) disconnect(conn ws.Conn, users map[string]struct{}) {
	for username := range users {
		gameID, ok := wsc.hub.GameOf(username)
		if wsc.hub.Unregister(username, conn) && ok {
			wsc.hub.Broadcast(gameID, username, ws.Notification(fmt.Sprintf("%s disconnected", username)))
		}
	}
}

var _ ws.Conn = (*lockedConn)(nil)
