package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/benbeisheim/chessgame/internal/chess"
	"github.com/benbeisheim/chessgame/internal/model"
	"github.com/benbeisheim/chessgame/internal/render"
	"github.com/benbeisheim/chessgame/internal/ws"
	"github.com/fatih/color"
)

type state int

const (
	stateLoggedOut state = iota
	stateLoggedIn
	statePlaying
)

func (s state) String() string {
	switch s {
	case stateLoggedIn:
		return "LOGGED_IN"
	case statePlaying:
		return "PLAYING"
	}
	return "LOGGED_OUT"
}

var (
	errQuit      = errors.New("quit")
	errorText    = color.New(color.FgRed).SprintFunc()
	noticeText   = color.New(color.FgCyan).SprintFunc()
	matchPoll    = 500 * time.Millisecond
	matchTimeout = 2 * time.Minute
)

// Repl is the line-oriented terminal client.
type Repl struct {
	facade   *ServerFacade
	in       *bufio.Reader
	out      io.Writer
	password PasswordReader

	state    state
	token    string
	username string
	listed   []model.GameData

	ws       *WSClient
	gameID   int
	observer bool
	color    chess.Color
	game     *model.GameData

	mu sync.Mutex // guards out, color and game; the socket goroutine reads them
}

func NewRepl(facade *ServerFacade, in *bufio.Reader, out io.Writer, password PasswordReader) *Repl {
	return &Repl{
		facade:   facade,
		in:       in,
		out:      out,
		password: password,
	}
}

func (r *Repl) printf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format, args...)
}

// Run reads commands until quit, EOF or ctx is done.
func (r *Repl) Run(ctx context.Context) error {
	r.printf("Welcome to chess. Type help to get started.\n")
	defer r.closeSocket()

	for {
		r.printf("[%s] >>> ", r.state)
		line, err := r.in.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		out, err := r.Eval(ctx, line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			r.printf("%s\n", errorText(err.Error()))
			continue
		}
		if out != "" {
			r.printf("%s\n", out)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Eval runs one command line in the current state.
func (r *Repl) Eval(ctx context.Context, line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	if r.state == statePlaying && r.socketLost() {
		r.closeSocket()
		r.state = stateLoggedIn
		return "", errors.New("lost the connection to the game; back in the lobby")
	}

	switch r.state {
	case stateLoggedIn:
		return r.evalLoggedIn(ctx, cmd, args)
	case statePlaying:
		return r.evalPlaying(cmd, args)
	}
	return r.evalLoggedOut(cmd, args)
}

func (r *Repl) evalLoggedOut(cmd string, args []string) (string, error) {
	switch cmd {
	case "register":
		return r.register(args)
	case "login":
		return r.login(args)
	case "quit", "exit":
		return "", errQuit
	}
	return `  register <USERNAME> <EMAIL> [PASSWORD] - create an account
  login <USERNAME> [PASSWORD] - sign in
  quit - exit
  help - show this message`, nil
}

func (r *Repl) evalLoggedIn(ctx context.Context, cmd string, args []string) (string, error) {
	switch cmd {
	case "create":
		return r.create(args)
	case "list":
		return r.list()
	case "join":
		return r.join(ctx, args)
	case "observe":
		return r.observe(ctx, args)
	case "match":
		return r.match(ctx)
	case "logout":
		return r.logout()
	case "quit", "exit":
		return "", errQuit
	}
	return `  create [NAME] - start a new game
  list - show games
  join <NUMBER> <WHITE|BLACK> - take a seat
  observe <NUMBER> - watch a game
  match - wait for an opponent
  logout - sign out
  quit - exit
  help - show this message`, nil
}

func (r *Repl) evalPlaying(cmd string, args []string) (string, error) {
	switch cmd {
	case "redraw":
		return r.redraw(nil), nil
	case "highlight":
		return r.highlight(args)
	case "move":
		return r.move(args)
	case "leave":
		return r.leave()
	case "resign":
		return r.resign()
	}
	return `  redraw - draw the board again
  highlight <SQUARE> - show legal moves of a piece
  move <FROM> <TO> [PROMOTION] - e.g. move e2 e4, move b7 b8 queen
  leave - leave the game
  resign - forfeit the game
  help - show this message`, nil
}

func (r *Repl) register(args []string) (string, error) {
	if len(args) < 2 {
		return "", errors.New("usage: register <USERNAME> <EMAIL> [PASSWORD]")
	}
	password, err := r.passwordArg(args, 2)
	if err != nil {
		return "", err
	}
	auth, err := r.facade.Register(args[0], password, args[1])
	if err != nil {
		return "", err
	}
	r.loggedIn(auth)
	return fmt.Sprintf("Registered and logged in as %s.", auth.Username), nil
}

func (r *Repl) login(args []string) (string, error) {
	if len(args) < 1 {
		return "", errors.New("usage: login <USERNAME> [PASSWORD]")
	}
	password, err := r.passwordArg(args, 1)
	if err != nil {
		return "", err
	}
	auth, err := r.facade.Login(args[0], password)
	if err != nil {
		return "", err
	}
	r.loggedIn(auth)
	return fmt.Sprintf("Logged in as %s.", auth.Username), nil
}

// passwordArg takes args[i] or prompts for it.
func (r *Repl) passwordArg(args []string, i int) (string, error) {
	if len(args) > i {
		return args[i], nil
	}
	if r.password == nil {
		return "", errors.New("password required")
	}
	return r.password("Password: ")
}

func (r *Repl) loggedIn(auth model.AuthData) {
	r.token = auth.AuthToken
	r.username = auth.Username
	r.state = stateLoggedIn
}

func (r *Repl) logout() (string, error) {
	if err := r.facade.Logout(r.token); err != nil {
		return "", err
	}
	r.token, r.username, r.listed = "", "", nil
	r.state = stateLoggedOut
	return "Logged out.", nil
}

func (r *Repl) create(args []string) (string, error) {
	id, err := r.facade.CreateGame(r.token, strings.Join(args, " "))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Created game %d. Use list to see it.", id), nil
}

func (r *Repl) list() (string, error) {
	games, err := r.facade.ListGames(r.token)
	if err != nil {
		return "", err
	}
	sort.Slice(games, func(i, j int) bool { return games[i].GameID < games[j].GameID })
	r.listed = games
	if len(games) == 0 {
		return "No games yet. Use create to start one.", nil
	}

	var sb strings.Builder
	seat := func(name string) string {
		if name == "" {
			return "(open)"
		}
		return name
	}
	for i, g := range games {
		status := ""
		if g.Over {
			status = " [over]"
		}
		fmt.Fprintf(&sb, "  %d. %s  white: %s  black: %s%s\n", i+1, g.GameName, seat(g.WhiteUsername), seat(g.BlackUsername), status)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// pick resolves a number from the last listing to a game id.
func (r *Repl) pick(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(r.listed) {
		return 0, fmt.Errorf("no game %q; run list first", arg)
	}
	return r.listed[n-1].GameID, nil
}

func (r *Repl) join(ctx context.Context, args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.New("usage: join <NUMBER> <WHITE|BLACK>")
	}
	id, err := r.pick(args[0])
	if err != nil {
		return "", err
	}
	c, err := chess.ParseColor(strings.ToUpper(args[1]))
	if err != nil {
		return "", err
	}
	if err := r.facade.JoinGame(r.token, id, c); err != nil {
		return "", err
	}
	return r.enterGame(ctx, id, c, false)
}

func (r *Repl) observe(ctx context.Context, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("usage: observe <NUMBER>")
	}
	id, err := r.pick(args[0])
	if err != nil {
		return "", err
	}
	return r.enterGame(ctx, id, chess.White, true)
}

func (r *Repl) match(ctx context.Context) (string, error) {
	status, err := r.facade.JoinMatchmaking(r.token)
	if err != nil {
		return "", err
	}
	r.printf("Waiting for an opponent...\n")

	ctx, cancel := context.WithTimeout(ctx, matchTimeout)
	defer cancel()
	ticker := time.NewTicker(matchPoll)
	defer ticker.Stop()
	for !status.Matched() {
		select {
		case <-ctx.Done():
			_ = r.facade.LeaveMatchmaking(r.token)
			return "", errors.New("no opponent found")
		case <-ticker.C:
		}
		if status, err = r.facade.MatchmakingStatus(r.token); err != nil {
			return "", err
		}
	}
	return r.enterGame(ctx, status.GameID, status.Color, false)
}

func (r *Repl) enterGame(ctx context.Context, gameID int, c chess.Color, observer bool) (string, error) {
	r.mu.Lock()
	r.color = c
	r.mu.Unlock()
	r.observer = observer

	conn, err := DialWS(ctx, r.facade.URL(), r.handleMessage)
	if err != nil {
		return "", err
	}
	if err := conn.Connect(r.token, gameID); err != nil {
		_ = conn.Close()
		return "", err
	}

	r.ws = conn
	r.gameID = gameID
	r.state = statePlaying
	if observer {
		return fmt.Sprintf("Observing game %d.", gameID), nil
	}
	return fmt.Sprintf("Joined game %d as %s.", gameID, c), nil
}

func (r *Repl) handleMessage(msg ws.ServerMessage) {
	switch msg.ServerMessageType {
	case ws.MessageLoadGame:
		r.mu.Lock()
		r.game = msg.Game
		r.mu.Unlock()
		r.printf("\n%s", r.redraw(nil))
	case ws.MessageNotification:
		r.printf("\n%s\n", noticeText(msg.Message))
	case ws.MessageError:
		r.printf("\n%s\n", errorText(msg.ErrorMessage))
	}
}

func (r *Repl) redraw(highlights []chess.Position) string {
	r.mu.Lock()
	game, perspective := r.game, r.color
	r.mu.Unlock()
	if game == nil || game.Game == nil {
		return "Waiting for the board..."
	}
	board := game.Game.Board()
	return render.Board(&board, perspective, highlights) + statusLine(game)
}

func statusLine(game *model.GameData) string {
	if game.Over {
		return "Game over.\n"
	}
	turn := game.Game.Turn()
	return fmt.Sprintf("%s to move, %d legal moves.\n", turn, len(game.Game.LegalMoves(turn)))
}

func (r *Repl) highlight(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("usage: highlight <SQUARE>")
	}
	pos, err := chess.ParsePosition(args[0])
	if err != nil {
		return "", err
	}
	moves, ok, err := r.facade.LegalMoves(r.token, r.gameID, pos)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("no piece on %s", pos)
	}

	squares := []chess.Position{pos}
	for _, m := range moves {
		squares = append(squares, m.End)
	}
	return r.redraw(squares), nil
}

// parseMove reads "e2 e4" or "b7 b8 queen".
func parseMove(args []string) (chess.Move, error) {
	if len(args) < 2 || len(args) > 3 {
		return chess.Move{}, errors.New("usage: move <FROM> <TO> [PROMOTION]")
	}
	start, err := chess.ParsePosition(args[0])
	if err != nil {
		return chess.Move{}, err
	}
	end, err := chess.ParsePosition(args[1])
	if err != nil {
		return chess.Move{}, err
	}
	var promotion chess.PieceType
	if len(args) == 3 {
		if promotion, err = chess.ParsePieceType(strings.ToLower(args[2])); err != nil {
			return chess.Move{}, err
		}
	}
	return chess.NewMove(start, end, promotion), nil
}

func (r *Repl) move(args []string) (string, error) {
	if r.observer {
		return "", errors.New("observers cannot move")
	}
	m, err := parseMove(args)
	if err != nil {
		return "", err
	}
	return "", r.ws.MakeMove(r.token, r.gameID, m)
}

func (r *Repl) leave() (string, error) {
	if err := r.ws.Leave(r.token, r.gameID); err != nil {
		return "", err
	}
	r.closeSocket()
	r.state = stateLoggedIn
	return "Left the game.", nil
}

func (r *Repl) resign() (string, error) {
	if r.observer {
		return "", errors.New("observers cannot resign")
	}
	return "", r.ws.Resign(r.token, r.gameID)
}

// socketLost reports whether the server side of the game socket went away.
func (r *Repl) socketLost() bool {
	if r.ws == nil {
		return false
	}
	select {
	case <-r.ws.Done():
		return true
	default:
		return false
	}
}

func (r *Repl) closeSocket() {
	if r.ws == nil {
		return
	}
	_ = r.ws.Close()
	r.ws = nil
	r.mu.Lock()
	r.game = nil
	r.mu.Unlock()
}
