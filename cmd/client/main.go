package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbeisheim/chessgame/internal/client"
	"github.com/rs/zerolog"
)

func main() {
	serverURL := flag.String("server", envOr("CHESS_SERVER_URL", "http://localhost:8080"), "chess server base URL")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in := bufio.NewReader(os.Stdin)
	repl := client.NewRepl(
		client.NewServerFacade(*serverURL),
		in,
		os.Stdout,
		client.TerminalPassword(int(os.Stdin.Fd()), in, os.Stdout),
	)
	if err := repl.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("client stopped")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
