package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/blogware/auth-service/config"
	"github.com/blogware/auth-service/internal/auth"
	"github.com/blogware/auth-service/internal/model"
	"github.com/blogware/auth-service/internal/session"
	"github.com/blogware/auth-service/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// --- Mock Email Sender ---
type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

type fixture struct {
	router *gin.Engine
	svc    *Service
	sender *MockSender
	db     *gorm.DB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))
	postgresStore := store.NewPostgresStore(db)

	logger := zap.NewNop()
	sender := new(MockSender)

	svc := &Service{
		ServiceName: "auth-service",
		Config:      &config.Config{WebAppURL: "http://localhost:9001"},
		Logger:      logger,
		Db:          postgresStore,
		AuthService: auth.NewAuthService(postgresStore, logger, auth.NewBcryptHasher(), "http://localhost:9001"),
		Sessions:    session.NewService(postgresStore, logger, 30*24*time.Hour),
		JWT:         session.NewJWTManager("test-secret", 15*time.Minute),
		EmailSender: sender,
	}

	router, err := SetupRouter(svc)
	require.NoError(t, err)

	return &fixture{router: router, svc: svc, sender: sender, db: db}
}

func (f *fixture) postJSON(t *testing.T, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) signUp(t *testing.T, email, password string) {
	t.Helper()

	w := f.postJSON(t, "/service/api/auth/v1/signup", SignUpRequest{
		Email:    email,
		Password: password,
		Name:     "Jane",
		LastName: "Doe",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/service/api/auth/v1/health", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignUp(t *testing.T) {
	f := newFixture(t)

	w := f.postJSON(t, "/service/api/auth/v1/signup", SignUpRequest{
		Email:    "user@example.com",
		Password: "OldPass123",
		Name:     "Jane",
		LastName: "Doe",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "OldPass123")
	assert.NotContains(t, strings.ToLower(w.Body.String()), "password")
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.signUp(t, "user@example.com", "OldPass123")

	w := f.postJSON(t, "/service/api/auth/v1/signup", SignUpRequest{
		Email:    "user@example.com",
		Password: "OtherPass123",
	}, nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignUp_ShortPassword(t *testing.T) {
	f := newFixture(t)

	w := f.postJSON(t, "/service/api/auth/v1/signup", SignUpRequest{
		Email:    "user@example.com",
		Password: "short",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	f.signUp(t, "user@example.com", "OldPass123")

	w := f.postJSON(t, "/service/api/auth/v1/login", LoginRequest{
		Email:    "user@example.com",
		Password: "OldPass123",
	}, map[string]string{"User-Agent": "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/117.0"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)
	require.NotNil(t, resp.Data.User)
	assert.Equal(t, "user@example.com", resp.Data.User.Email)
	assert.NotContains(t, w.Body.String(), "OldPass123")

	// The bearer token works against a protected route.
	req := httptest.NewRequest(http.MethodGet, "/service/api/auth/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Data.Token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// The attempt is audited. Location may be empty here since the test
	// client IP resolves to nothing; the lookup degrades without
	// affecting the login.
	var logs []model.LoginLog
	require.NoError(t, f.db.Where("email = ?", "user@example.com").Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "success", logs[0].Status)
	assert.Equal(t, "Firefox, Ubuntu", logs[0].Device)
	require.NotNil(t, logs[0].UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture(t)
	f.signUp(t, "user@example.com", "OldPass123")

	w := f.postJSON(t, "/service/api/auth/v1/login", LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-pass",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var logs []model.LoginLog
	require.NoError(t, f.db.Where("email = ?", "user@example.com").Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "failure", logs[0].Status)
	assert.Nil(t, logs[0].UserID)
}

func TestLogin_UnknownUserMatchesWrongPassword(t *testing.T) {
	f := newFixture(t)
	f.signUp(t, "user@example.com", "OldPass123")

	unknown := f.postJSON(t, "/service/api/auth/v1/login", LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	}, nil)
	wrong := f.postJSON(t, "/service/api/auth/v1/login", LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-pass",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
}

func TestResetPassword_UnknownEmail(t *testing.T) {
	f := newFixture(t)

	w := f.postJSON(t, "/service/api/auth/v1/reset-password", ResetPasswordRequest{
		Email: "nobody@example.com",
	}, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResetPassword_SendsEmailWithLink(t *testing.T) {
	f := newFixture(t)
	f.signUp(t, "user@example.com", "OldPass123")

	f.sender.On("SendEmail", mock.Anything, "user@example.com", "Password Reset", mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "http://localhost:9001/reset-password/")
	})).Return(nil)

	w := f.postJSON(t, "/service/api/auth/v1/reset-password", ResetPasswordRequest{
		Email: "user@example.com",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	f.sender.AssertExpectations(t)
}

func TestResetPasswordConfirm_EndToEnd(t *testing.T) {
	f := newFixture(t)
	f.signUp(t, "user@example.com", "OldPass123")

	var captured string
	f.sender.On("SendEmail", mock.Anything, "user@example.com", "Password Reset", mock.Anything).
		Run(func(args mock.Arguments) {
			body := args.String(3)
			start := strings.Index(body, "/reset-password/") + len("/reset-password/")
			captured = body[start:strings.Index(body[start:], `"`)+start]
		}).Return(nil)

	w := f.postJSON(t, "/service/api/auth/v1/reset-password", ResetPasswordRequest{Email: "user@example.com"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotEmpty(t, captured)

	w = f.postJSON(t, "/service/api/auth/v1/reset-password-confirm", ResetPasswordConfirmRequest{
		EncodedToken: captured,
		Password:     "NewPass123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The credential actually changed.
	_, err := f.svc.AuthService.Authenticate(context.Background(), "user@example.com", "NewPass123")
	assert.NoError(t, err)
	_, err = f.svc.AuthService.Authenticate(context.Background(), "user@example.com", "OldPass123")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// The token is spent.
	w = f.postJSON(t, "/service/api/auth/v1/reset-password-confirm", ResetPasswordConfirmRequest{
		EncodedToken: captured,
		Password:     "AnotherPass1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetPasswordConfirm_GarbagePayload(t *testing.T) {
	f := newFixture(t)

	w := f.postJSON(t, "/service/api/auth/v1/reset-password-confirm", ResetPasswordConfirmRequest{
		EncodedToken: "%%%not-base64%%%",
		Password:     "NewPass123",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func (f *fixture) issueToken(t *testing.T, profile *model.Profile) string {
	t.Helper()

	sess, err := f.svc.Sessions.Create(context.Background(), profile.ID)
	require.NoError(t, err)
	token, err := f.svc.JWT.Issue(profile, sess.Token)
	require.NoError(t, err)
	return token
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	f.signUp(t, "user@example.com", "OldPass123")

	user, err := f.svc.Db.FindUserByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)
	token := f.issueToken(t, user.Profile())

	req := httptest.NewRequest(http.MethodGet, "/service/api/auth/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "user@example.com")
}

func TestMe_MissingToken(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/service/api/auth/v1/me", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_RevokesSessions(t *testing.T) {
	f := newFixture(t)
	f.signUp(t, "user@example.com", "OldPass123")

	user, err := f.svc.Db.FindUserByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)
	token := f.issueToken(t, user.Profile())

	w := f.postJSON(t, "/service/api/auth/v1/logout", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The token's session is gone, so the same bearer token stops working.
	req := httptest.NewRequest(http.MethodGet, "/service/api/auth/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
