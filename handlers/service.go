package handlers

import (
	"github.com/blogware/auth-service/config"
	"github.com/blogware/auth-service/internal/auth"
	"github.com/blogware/auth-service/internal/email"
	"github.com/blogware/auth-service/internal/session"
	"github.com/blogware/auth-service/internal/store"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

// Service struct holds all variables common to all handlers.
// That is why members have to be safe for concurrent use and do not cause race conditions!
type Service struct {
	ServiceName    string
	Config         *config.Config
	AuthService    *auth.AuthClient
	GitHub         *auth.GitHubClient
	Sessions       *session.Service
	JWT            *session.JWTManager
	EmailSender    email.Sender
	Logger         *zap.Logger
	Db             *store.PostgresStore
	TracerProvider *trace.TracerProvider
}
