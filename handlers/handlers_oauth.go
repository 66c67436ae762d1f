package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const oauthStateCookie = "oauth_state"

func (s *Service) GitHubLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, s.GitHub.AuthURL(state))
}

func (s *Service) GitHubCallback(c *gin.Context) {
	ctx := c.Request.Context()

	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		JSONError(c, http.StatusBadRequest, "oauth state mismatch")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	user, err := s.GitHub.HandleCallback(ctx, c.Query("code"))
	if err != nil {
		s.Logger.Error("failed to complete github sign-in", zap.Error(err))
		HandleServiceError(c, err)
		return
	}

	token, err := s.startSession(c, user)
	if err != nil {
		return
	}

	JSON(c, &LoginResponse{Token: token, User: user}, "Success")
}
