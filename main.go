package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/kelseyhightower/envconfig"

	"github.com/blogware/auth-service/config"
	"github.com/blogware/auth-service/handlers"
	"github.com/blogware/auth-service/internal/auth"
	"github.com/blogware/auth-service/internal/email"
	"github.com/blogware/auth-service/internal/session"
	"github.com/blogware/auth-service/internal/store"

	"go.uber.org/zap"
)

const serviceName = "auth-service"

func main() {
	// Default environment variable ENV has to be set via Makefile with values: dev, stg, prod.
	environ := os.Getenv("ENV")
	if environ == "" {
		panic("Failed to get environment variable ENV. Make sure it is set.")
	}

	var conf config.Config
	if err := envconfig.Process("", &conf); err != nil {
		panic("Failed to load environment variables:" + err.Error())
	}
	conf.DatabaseURI = strings.Trim(conf.DatabaseURI, "'")
	if !strings.HasPrefix(conf.ServerPort, ":") {
		conf.ServerPort = ":" + conf.ServerPort
	}

	logger, err := newLogger(environ)
	if err != nil {
		panic("Failed to build logger:" + err.Error())
	}
	defer logger.Sync()

	if conf.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         conf.SentryDSN,
			Environment: environ,
			ServerName:  serviceName,
		})
		if err != nil {
			logger.Fatal("Failed to initialize sentry", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	startService(&conf, environ, logger)
}

func newLogger(environ string) (*zap.Logger, error) {
	if environ == "prod" {
		return zap.NewProduction(zap.Fields(zap.String("service", serviceName)))
	}
	return zap.NewDevelopment(zap.Fields(zap.String("service", serviceName)))
}

func startService(conf *config.Config, environ string, logger *zap.Logger) {
	logger.Info("Starting", zap.String("service", serviceName), zap.String("env", environ))

	psqlConn, err := connectPostgres(conf.DatabaseURI, environ != "prod")
	if err != nil {
		logger.Fatal("Failed to connect to postgres", zap.Error(err))
	}
	postgresStore := store.NewPostgresStore(psqlConn)

	tp, shutdown := newTracerProvider(serviceName, logger)
	defer shutdown()

	hasher := auth.NewBcryptHasher()
	authService := auth.NewAuthService(postgresStore, logger, hasher, conf.WebAppURL)
	githubClient := auth.NewGitHubClient(postgresStore, logger, auth.GitHubConfig{
		ClientID:     conf.GitHub.ClientID,
		ClientSecret: conf.GitHub.ClientSecret,
		RedirectURL:  conf.GitHub.RedirectURL,
	})
	sessions := session.NewService(postgresStore, logger, conf.SessionTTL)
	jwtManager := session.NewJWTManager(conf.AuthSecret, conf.JWTTTL)

	var sender email.Sender
	if environ == "prod" {
		sender = email.NewMailgunSender(conf.Mailgun.Domain, conf.Mailgun.APIKey, logger)
	} else {
		sender = email.NewSMTPSender(conf.SMTP.Host, conf.SMTP.Port, conf.SMTP.User, conf.SMTP.Pass, logger)
	}

	srv := &handlers.Service{
		ServiceName:    serviceName,
		Config:         conf,
		Logger:         logger,
		TracerProvider: tp,
		Db:             postgresStore,
		AuthService:    authService,
		GitHub:         githubClient,
		Sessions:       sessions,
		JWT:            jwtManager,
		EmailSender:    sender,
	}

	router, err := handlers.SetupRouter(srv)
	if err != nil {
		logger.Panic("Failed to setup router", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)

	go func() {
		errCh <- listenAndServe(ctx, router, conf.ServerPort, logger)
	}()

	err = <-errCh
	if err != nil {
		logger.Error("Server exited with error", zap.Error(err))
	} else {
		logger.Info("Server exited gracefully")
	}
}

func listenAndServe(ctx context.Context, router *gin.Engine, serverPort string, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:    serverPort,
		Handler: router,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		logger.Info("Listening on address", zap.String("port", serverPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down gracefully")

		ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutDown); err != nil {
			return err
		}

		return nil
	case err := <-serverErrCh:
		return err
	}
}
