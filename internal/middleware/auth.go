package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const (
	// LocalUsername is where RequireAuth stores the authenticated user.
	LocalUsername = "username"
	LocalToken    = "authToken"
	HeaderAuth    = "authorization"
)

type Authenticator interface {
	Authenticate(token string) (string, error)
}

// RequireAuth resolves the authorization header to a username and rejects
// the request when the token is unknown.
func RequireAuth(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(HeaderAuth)
		username, err := auth.Authenticate(token)
		if err != nil {
			return err
		}

		c.Locals(LocalUsername, username)
		c.Locals(LocalToken, token)
		return c.Next()
	}
}

// Username returns the user stored by RequireAuth.
func Username(c *fiber.Ctx) string {
	username, _ := c.Locals(LocalUsername).(string)
	return username
}

func Token(c *fiber.Ctx) string {
	token, _ := c.Locals(LocalToken).(string)
	return token
}
