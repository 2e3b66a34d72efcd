package adminapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/shopcore/internal/auth"
)

type registerPayload struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

type loginPayload struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (h *Handler) register(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse registration", nil)
	}

	_, err := h.app.AuthService().Register(c.Request().Context(), payload.Username, payload.Password, payload.Role)
	switch {
	case errors.Is(err, auth.ErrDuplicateUsername):
		return fail(c, http.StatusBadRequest, "DUPLICATE_USERNAME", "Username already exists", nil)
	case errors.Is(err, auth.ErrInvalidUser):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Username and password are required", nil)
	case err != nil:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to register", err.Error())
	}

	return created(c, map[string]interface{}{"message": "registration successful"})
}

func (h *Handler) login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login", nil)
	}

	token, user, err := h.app.AuthService().Authenticate(c.Request().Context(), payload.Username, payload.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	case err != nil:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to login", err.Error())
	}

	return ok(c, map[string]interface{}{
		"token":    token,
		"level":    user.Level,
		"username": user.Username,
	})
}
