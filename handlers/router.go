package handlers

import (
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	cors "github.com/itsjamie/gin-cors"
)

func SetupRouter(svr *Service) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	router.Use(requestid.New())
	router.Use(cors.Middleware(cors.Config{
		Origins:         "*", // TODO
		Methods:         "GET, PUT, POST, DELETE, HEAD, PATCH",
		RequestHeaders:  "Origin, Authorization, Content-Type, Content-Length",
		ExposedHeaders:  "Correlation-Id",
		MaxAge:          12 * time.Hour,
		Credentials:     false,
		ValidateHeaders: false,
	}))

	v1 := router.Group("/service/api/auth/v1")

	v1.GET("/health", svr.Health)
	v1.POST("/signup", svr.SignUp)
	v1.POST("/login", svr.Login)
	v1.POST("/reset-password", svr.ResetPassword)
	v1.POST("/reset-password-confirm", svr.ResetPasswordConfirm)
	v1.GET("/oauth/github/login", svr.GitHubLogin)
	v1.GET("/oauth/github/callback", svr.GitHubCallback)

	protected := v1.Group("", svr.RequireAuth())
	protected.POST("/logout", svr.Logout)
	protected.GET("/me", svr.Me)

	return router, nil
}
