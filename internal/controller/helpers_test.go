package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/benbeisheim/chessgame/internal/dataaccess"
	"github.com/benbeisheim/chessgame/internal/service"
	"github.com/benbeisheim/chessgame/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	app  *fiber.App
	deps Deps
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := dataaccess.NewMemoryDataAccess()
	log := zerolog.Nop()
	games := service.NewGameService(store, log)
	deps := Deps{
		Users:        service.NewUserService(store, log).WithHashCost(bcrypt.MinCost),
		Games:        games,
		Matchmaker:   service.NewMatchmaker(games, time.Hour, log),
		Hub:          ws.NewHub(log),
		Log:          log,
		AllowOrigins: "*",
	}
	return &testServer{app: NewApp(deps), deps: deps}
}

// do sends a JSON request and decodes the JSON response into out when non-nil.
func (s *testServer) do(t *testing.T, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("authorization", token)
	}

	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func (s *testServer) register(t *testing.T, username string) string {
	t.Helper()
	var auth struct {
		AuthToken string `json:"authToken"`
	}
	body := fiber.Map{"username": username, "password": "pw", "email": username + "@example.com"}
	if status := s.do(t, fiber.MethodPost, "/user", "", body, &auth); status != fiber.StatusOK {
		t.Fatalf("register %s: status %d", username, status)
	}
	return auth.AuthToken
}

type fakeConn struct {
	mu   sync.Mutex
	sent []ws.ServerMessage
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg, ok := v.(ws.ServerMessage)
	if !ok {
		return errors.New("unexpected payload")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeConn) Close() error { return nil }

// take returns and clears what the connection has received.
func (f *fakeConn) take() []ws.ServerMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	sent := f.sent
	f.sent = nil
	return sent
}
