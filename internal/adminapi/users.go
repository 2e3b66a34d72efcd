package adminapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/shopcore/internal/auth"
)

type userPayload struct {
	Username *string `json:"username" form:"username"`
	Password *string `json:"password" form:"password"`
	Role     *string `json:"role" form:"role"`
	Status   *string `json:"status" form:"status"`
}

func (h *Handler) listUsers(c echo.Context) error {
	users, err := h.app.AuthService().ListUsers(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query users", err.Error())
	}
	// password hashes are excluded by the json:"-" tag
	return ok(c, users)
}

func (h *Handler) updateUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}

	var payload userPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse user", nil)
	}

	user, err := h.app.AuthService().UpdateUser(c.Request().Context(), id, auth.UserUpdate{
		Username: payload.Username,
		Password: payload.Password,
		Level:    payload.Role,
		Status:   payload.Status,
	})
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	case errors.Is(err, auth.ErrDuplicateUsername):
		return fail(c, http.StatusBadRequest, "DUPLICATE_USERNAME", "Username already exists", nil)
	case errors.Is(err, auth.ErrInvalidUser):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Supplied fields failed validation", nil)
	case err != nil:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update user", err.Error())
	}

	return ok(c, user)
}

func (h *Handler) deleteUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	if err := h.app.AuthService().DeleteUser(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete user", err.Error())
	}
	return ok(c, map[string]interface{}{"message": "user deleted"})
}
