package client

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/benbeisheim/chessgame/internal/chess"
	"github.com/benbeisheim/chessgame/internal/ws"
	"github.com/fasthttp/websocket"
)

// MessageHandler receives every message the server pushes.
type MessageHandler func(ws.ServerMessage)

type WSClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
	done chan struct{}
}

// wsURL turns http://host:port into ws://host:port/ws.
func wsURL(serverURL string) string {
	switch {
	case strings.HasPrefix(serverURL, "https://"):
		serverURL = "wss://" + strings.TrimPrefix(serverURL, "https://")
	case strings.HasPrefix(serverURL, "http://"):
		serverURL = "ws://" + strings.TrimPrefix(serverURL, "http://")
	}
	return strings.TrimRight(serverURL, "/") + "/ws"
}

// DialWS opens the socket and starts delivering messages to handler.
func DialWS(ctx context.Context, serverURL string, handler MessageHandler) (*WSClient, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL(serverURL), nil)
	if err != nil {
		return nil, fmt.Errorf("dial websocket: %w", err)
	}

	c := &WSClient{conn: conn, done: make(chan struct{})}
	go c.readLoop(handler)
	return c, nil
}

func (c *WSClient) readLoop(handler MessageHandler) {
	defer close(c.done)
	for {
		var msg ws.ServerMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		handler(msg)
	}
}

func (c *WSClient) send(cmd ws.UserGameCommand) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(cmd)
}

func (c *WSClient) Connect(token string, gameID int) error {
	return c.send(ws.UserGameCommand{CommandType: ws.CommandConnect, AuthToken: token, GameID: gameID})
}

func (c *WSClient) MakeMove(token string, gameID int, move chess.Move) error {
	return c.send(ws.UserGameCommand{CommandType: ws.CommandMakeMove, AuthToken: token, GameID: gameID, Move: &move})
}

func (c *WSClient) Leave(token string, gameID int) error {
	return c.send(ws.UserGameCommand{CommandType: ws.CommandLeave, AuthToken: token, GameID: gameID})
}

func (c *WSClient) Resign(token string, gameID int) error {
	return c.send(ws.UserGameCommand{CommandType: ws.CommandResign, AuthToken: token, GameID: gameID})
}

// Done is closed once the server side goes away.
func (c *WSClient) Done() <-chan struct{} { return c.done }

func (c *WSClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}
