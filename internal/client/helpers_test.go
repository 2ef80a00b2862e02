package client

import (
	"net"
	"testing"
	"time"

	"github.com/benbeisheim/chessgame/internal/controller"
	"github.com/benbeisheim/chessgame/internal/dataaccess"
	"github.com/benbeisheim/chessgame/internal/service"
	"github.com/benbeisheim/chessgame/internal/ws"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// startServer runs the real server on a loopback port and returns its URL.
func startServer(t *testing.T) string {
	t.Helper()
	store := dataaccess.NewMemoryDataAccess()
	log := zerolog.Nop()
	games := service.NewGameService(store, log)
	app := controller.NewApp(controller.Deps{
		Users:        service.NewUserService(store, log).WithHashCost(bcrypt.MinCost),
		Games:        games,
		Matchmaker:   service.NewMatchmaker(games, time.Hour, log),
		Hub:          ws.NewHub(log),
		Log:          log,
		AllowOrigins: "*",
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.ShutdownWithTimeout(time.Second) })
	return "http://" + ln.Addr().String()
}

// waitFor returns the first message on ch matching want, failing after a
// second.
func waitFor(t *testing.T, ch <-chan ws.ServerMessage, want ws.MessageType) ws.ServerMessage {
	t.Helper()
	timeout := time.After(time.Second)
	for {
		select {
		case msg := <-ch:
			if msg.ServerMessageType == want {
				return msg
			}
		case <-timeout:
			t.Fatalf("no %s message within a second", want)
		}
	}
}
