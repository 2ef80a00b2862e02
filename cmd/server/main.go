package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbeisheim/chessgame/internal/config"
	"github.com/benbeisheim/chessgame/internal/controller"
	"github.com/benbeisheim/chessgame/internal/dataaccess"
	"github.com/benbeisheim/chessgame/internal/logger"
	"github.com/benbeisheim/chessgame/internal/service"
	"github.com/benbeisheim/chessgame/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.FromOS()
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Addr).Msg("listen")
	}
	if err := run(ctx, cfg, log, ln); err != nil {
		log.Error().Err(err).Msg("server stopped")
		stop()
		os.Exit(1)
	}
}

// newApp wires the store, services and routes.
func newApp(cfg config.Config, log zerolog.Logger) (*fiber.App, *service.Matchmaker) {
	store := dataaccess.NewMemoryDataAccess()
	userService := service.NewUserService(store, log)
	gameService := service.NewGameService(store, log)
	matchmaker := service.NewMatchmaker(gameService, cfg.MatchInterval, log)

	app := controller.NewApp(controller.Deps{
		Users:        userService,
		Games:        gameService,
		Matchmaker:   matchmaker,
		Hub:          ws.NewHub(log),
		Log:          log,
		AllowOrigins: cfg.AllowOrigins,
	})
	return app, matchmaker
}

// run serves on ln until ctx is done, then shuts down within
// cfg.ShutdownTimeout.
func run(ctx context.Context, cfg config.Config, log zerolog.Logger, ln net.Listener) error {
	app, matchmaker := newApp(cfg, log)
	go matchmaker.Run(ctx)

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("listening")
		errc <- app.Listener(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
