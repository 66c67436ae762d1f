package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Service) Me(c *gin.Context) {
	ctx := c.Request.Context()

	claims := getClaims(c)
	if claims == nil {
		JSONError(c, http.StatusUnauthorized, "missing claims")
		return
	}

	user, err := s.Db.FindUserByID(ctx, claims.UserID)
	if err != nil {
		s.Logger.Error("failed to get user", zap.Error(err))
		JSONError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		JSONError(c, http.StatusNotFound, "user not found")
		return
	}

	JSON(c, user.Profile(), "Success")
}
