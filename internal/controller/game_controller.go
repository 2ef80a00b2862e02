package controller

import (
	"fmt"

	"github.com/benbeisheim/chessgame/internal/chess"
	"github.com/benbeisheim/chessgame/internal/middleware"
	"github.com/benbeisheim/chessgame/internal/model"
	"github.com/benbeisheim/chessgame/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
	matchmaker  *service.Matchmaker
}

func NewGameController(gameService *service.GameService, matchmaker *service.Matchmaker) *GameController {
	return &GameController{gameService: gameService, matchmaker: matchmaker}
}

type createGameRequest struct {
	GameName string `json:"gameName"`
}

type joinGameRequest struct {
	PlayerColor string `json:"playerColor"`
	GameID      int    `json:"gameID"`
}

func (gc *GameController) ListGames(c *fiber.Ctx) error {
	games, err := gc.gameService.ListGames()
	if err != nil {
		return err
	}
	if games == nil {
		games = []model.GameData{}
	}
	return c.JSON(fiber.Map{"games": games})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badBody(err)
		}
	}

	gameID, err := gc.gameService.CreateGame(req.GameName)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"gameID": gameID})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	var req joinGameRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}
	color, err := chess.ParseColor(req.PlayerColor)
	if err != nil {
		return fmt.Errorf("player color %q: %w", req.PlayerColor, service.ErrBadRequest)
	}

	if err := gc.gameService.JoinGame(middleware.Username(c), req.GameID, color); err != nil {
		return err
	}
	return c.JSON(fiber.Map{})
}

// LegalMoves answers GET /game/:gameID/moves?pos=e2. An empty square
// yields {"moves": null}; a piece with nowhere to go yields [].
func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	gameID, err := c.ParamsInt("gameID")
	if err != nil {
		return fmt.Errorf("game id: %w", service.ErrBadRequest)
	}
	pos, err := chess.ParsePosition(c.Query("pos"))
	if err != nil {
		return fmt.Errorf("%v: %w", err, service.ErrBadRequest)
	}

	moves, ok, err := gc.gameService.LegalMoves(gameID, pos)
	if err != nil {
		return err
	}
	if !ok {
		return c.JSON(fiber.Map{"moves": nil})
	}
	return c.JSON(fiber.Map{"moves": moves})
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	username := middleware.Username(c)
	if err := gc.matchmaker.Join(username); err != nil {
		return err
	}
	return c.JSON(gc.matchmaker.Status(username))
}

func (gc *GameController) MatchmakingStatus(c *fiber.Ctx) error {
	return c.JSON(gc.matchmaker.Status(middleware.Username(c)))
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	gc.matchmaker.Cancel(middleware.Username(c))
	return c.JSON(fiber.Map{})
}
