package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/blogware/auth-service/internal/auth"
	"github.com/blogware/auth-service/internal/session"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func JSON(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, Response{Data: data, Message: message})
}

func JSONError(c *gin.Context, status int, format string, args ...any) {
	c.JSON(status, ErrorResponse{Error: fmt.Sprintf(format, args...)})
}

// HandleServiceError maps a classified service failure onto a status
// code. Unclassified errors are store failures and surface as 500
// without detail.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidInput):
		JSONError(c, http.StatusBadRequest, "invalid input")
	case errors.Is(err, auth.ErrInvalidCredentials):
		JSONError(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, auth.ErrUserNotFound):
		JSONError(c, http.StatusNotFound, "user not found")
	case errors.Is(err, auth.ErrEmailTaken):
		JSONError(c, http.StatusConflict, "user already exists")
	case errors.Is(err, auth.ErrExpiredToken):
		JSONError(c, http.StatusGone, "reset token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		JSONError(c, http.StatusBadRequest, "invalid reset token")
	case errors.Is(err, session.ErrInvalidSession), errors.Is(err, session.ErrExpiredSession):
		JSONError(c, http.StatusUnauthorized, "invalid session")
	default:
		JSONError(c, http.StatusInternalServerError, "internal server error")
	}
}
