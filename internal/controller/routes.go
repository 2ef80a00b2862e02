package controller

import (
	"github.com/benbeisheim/chessgame/internal/middleware"
	"github.com/benbeisheim/chessgame/internal/service"
	"github.com/benbeisheim/chessgame/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Deps struct {
	Users        *service.UserService
	Games        *service.GameService
	Matchmaker   *service.Matchmaker
	Hub          *ws.Hub
	Log          zerolog.Logger
	AllowOrigins string
}

// NewApp builds the HTTP and websocket server.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "chessgame",
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.New().String() },
	}))
	app.Use(middleware.RequestLogger(d.Log.With().Str("component", "http").Logger()))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	userController := NewUserController(d.Users, d.Matchmaker)
	gameController := NewGameController(d.Games, d.Matchmaker)
	wsController := NewWebSocketController(d.Users, d.Games, d.Hub, d.Log)
	auth := middleware.RequireAuth(d.Users)

	app.Post("/user", userController.Register)
	app.Post("/session", userController.Login)
	app.Delete("/session", auth, userController.Logout)
	app.Delete("/db", userController.Clear)

	app.Get("/game", auth, gameController.ListGames)
	app.Post("/game", auth, gameController.CreateGame)
	app.Put("/game", auth, gameController.JoinGame)
	app.Post("/game/matchmaking", auth, gameController.JoinMatchmaking)
	app.Get("/game/matchmaking", auth, gameController.MatchmakingStatus)
	app.Delete("/game/matchmaking", auth, gameController.LeaveMatchmaking)
	app.Get("/game/:gameID/moves", auth, gameController.LegalMoves)

	app.Get("/ws", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))

	return app
}
