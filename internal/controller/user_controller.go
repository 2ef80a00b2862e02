package controller

import (
	"github.com/benbeisheim/chessgame/internal/middleware"
	"github.com/benbeisheim/chessgame/internal/model"
	"github.com/benbeisheim/chessgame/internal/service"
	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	userService *service.UserService
	matchmaker  *service.Matchmaker
}

func NewUserController(userService *service.UserService, matchmaker *service.Matchmaker) *UserController {
	return &UserController{userService: userService, matchmaker: matchmaker}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func badBody(err error) error {
	return fiber.NewError(fiber.StatusBadRequest, "bad request: "+err.Error())
}

func (uc *UserController) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	auth, err := uc.userService.Register(model.UserData{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(auth)
}

func (uc *UserController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	auth, err := uc.userService.Login(req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(auth)
}

func (uc *UserController) Logout(c *fiber.Ctx) error {
	if err := uc.userService.Logout(middleware.Token(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{})
}

func (uc *UserController) Clear(c *fiber.Ctx) error {
	if err := uc.userService.Clear(); err != nil {
		return err
	}
	uc.matchmaker.Clear()
	return c.JSON(fiber.Map{})
}
