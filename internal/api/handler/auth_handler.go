package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/allegro-music/allegro/internal/core/domain"
	"github.com/allegro-music/allegro/internal/core/ports"
)

const userAddedMessage = "User successfully added"

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// AddUser creates a user. The first user ever created needs no token and
// becomes an admin; afterwards an admin token is required.
//
// @Summary      Add a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      addUserRequest  true  "New user and the caller's token"
// @Success      201   {object}  response[string]
// @Failure      500
// @Router       /auth/adduser [post]
func (h *AuthHandler) AddUser(c echo.Context) error {
	var req addUserRequest
	invalid, err := bindAndValidate(c, &req)
	if err != nil {
		return err
	}
	if invalid != "" {
		return c.JSON(http.StatusCreated, failure(invalid))
	}

	_, err = h.authService.AddUser(c.Request().Context(), ports.AddUserInput{
		Username: req.Username,
		Password: req.Password,
		Token:    requestToken(c, req.Token),
	})
	if err != nil {
		if msg, ok := failureMessage(err); ok {
			return c.JSON(http.StatusCreated, failure(msg))
		}
		return err
	}

	return c.JSON(http.StatusCreated, success(userAddedMessage))
}

// Login checks the credentials and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authRequest  true  "Credentials"
// @Success      201   {object}  authResponse
// @Failure      500
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req authRequest
	invalid, err := bindAndValidate(c, &req)
	if err != nil {
		return err
	}
	if invalid != "" {
		return c.JSON(http.StatusCreated, authResponse{Access: false})
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrTooManyAttempts) {
			return c.JSON(http.StatusCreated, authResponse{Access: false})
		}
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{Access: true, Token: &token})
}

// CountUsers reports how many users exist. Clients use it to decide whether
// to show the first-user setup.
//
// @Summary      Count users
// @Tags         auth
// @Produce      json
// @Success      201  {object}  response[int64]
// @Failure      500
// @Router       /auth/countuser [get]
func (h *AuthHandler) CountUsers(c echo.Context) error {
	n, err := h.authService.CountUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, success(n))
}
