package handler

import (
	"time"

	"employee-directory/internal/domain"
	"employee-directory/internal/logging"
	"employee-directory/internal/middleware"
	"employee-directory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SignupInput struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type AuthHandler struct {
	auth         *service.AuthService
	secureCookie bool
	log          logging.Logger
}

func NewAuthHandler(auth *service.AuthService, secureCookie bool, log logging.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookie: secureCookie, log: log}
}

func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	input := new(SignupInput)
	if err := c.BodyParser(input); err != nil {
		return respondError(c, h.log, authErrorKey, domain.NewValidationError("Invalid request body"))
	}

	token, err := h.auth.Register(c.UserContext(), input.Username, input.Email, input.Password)
	if err != nil {
		return respondError(c, h.log, authErrorKey, err)
	}

	h.setTokenCookie(c, token)
	return c.JSON(fiber.Map{
		"msg":   "Registration successful",
		"token": token,
	})
}

func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return respondError(c, h.log, authErrorKey, domain.NewValidationError("Invalid request body"))
	}

	token, err := h.auth.Login(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return respondError(c, h.log, authErrorKey, err)
	}

	h.setTokenCookie(c, token)
	return c.JSON(fiber.Map{
		"msg":   "Login successful",
		"token": token,
	})
}

// HandleMe returns the profile of the token's owner.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	user, err := h.auth.Me(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, h.log, authErrorKey, err)
	}
	return c.JSON(user.Profile())
}

func (h *AuthHandler) setTokenCookie(c *fiber.Ctx, token string) {
	ttl := h.auth.TTL()
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		MaxAge:   int(ttl / time.Second),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
