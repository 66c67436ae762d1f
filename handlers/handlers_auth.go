package handlers

import (
	"fmt"
	"net/http"

	"github.com/blogware/auth-service/internal/auth"
	"github.com/blogware/auth-service/internal/model"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"go.uber.org/zap"
)

func (s *Service) Health(c *gin.Context) {
	JSON(c, nil, "Success")
}

func (s *Service) SignUp(c *gin.Context) {
	ctx := c.Request.Context()

	var req SignUpRequest
	err := c.BindJSON(&req)
	if err != nil {
		errMsg := "failed to decode sign-up request"
		s.Logger.Error(errMsg, zap.Error(err))
		JSONError(c, http.StatusBadRequest, errMsg+": %v", err)
		return
	}

	err = validateSignUp(&req)
	if err != nil {
		JSONError(c, http.StatusBadRequest, "%v", err.Error())
		return
	}

	user, err := s.AuthService.Register(ctx, model.RegisterArgs{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		LastName: req.LastName,
	})
	if err != nil {
		s.Logger.Error("failed to do sign-up", zap.String("email", req.Email), zap.Error(err))
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Data: user, Message: "User created successfully."})
}

func validateSignUp(req *SignUpRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("valid email is required")),
		validation.Field(&req.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 100).Error("password must be 8 to 100 characters")),
		validation.Field(&req.Name, validation.Length(2, 100)),
		validation.Field(&req.LastName, validation.Length(2, 100)),
	)
}

func validateEmail(email string) error {
	return validation.Validate(
		email,
		validation.Required.Error("email is required"),
		is.Email.Error("valid email is required"))
}

func (s *Service) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req LoginRequest
	err := c.BindJSON(&req)
	if err != nil {
		errMsg := "failed to decode login request"
		s.Logger.Error(errMsg, zap.Error(err))
		JSONError(c, http.StatusBadRequest, errMsg+": %v", err)
		return
	}

	user, authErr := s.AuthService.Authenticate(ctx, req.Email, req.Password)

	logArgs := &model.LoginLogArgs{
		Email:     req.Email,
		Succeeded: authErr == nil,
		IpAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if user != nil {
		logArgs.UserID = &user.ID
	}
	if err := s.AuthService.LogLogin(ctx, logArgs); err != nil {
		s.Logger.Warn("failed to record login attempt", zap.Error(err))
	}

	if authErr != nil {
		s.Logger.Info("login rejected", zap.String("email", req.Email))
		HandleServiceError(c, authErr)
		return
	}

	token, err := s.startSession(c, user)
	if err != nil {
		return
	}

	JSON(c, &LoginResponse{Token: token, User: user}, "Success")
}

func (s *Service) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	claims := getClaims(c)
	if claims == nil {
		JSONError(c, http.StatusUnauthorized, "missing claims")
		return
	}

	if err := s.Sessions.RevokeAll(ctx, claims.UserID); err != nil {
		s.Logger.Error("failed to revoke sessions", zap.Error(err))
		JSONError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	JSON(c, nil, "Signed out.")
}

func (s *Service) ResetPassword(c *gin.Context) {
	ctx := c.Request.Context()

	var req ResetPasswordRequest
	err := c.BindJSON(&req)
	if err != nil {
		errMsg := "failed to decode reset-password request"
		s.Logger.Error(errMsg, zap.Error(err))
		JSONError(c, http.StatusBadRequest, errMsg+": %v", err)
		return
	}

	err = validateEmail(req.Email)
	if err != nil {
		JSONError(c, http.StatusBadRequest, "%v", err.Error())
		return
	}

	reset, err := s.AuthService.RequestReset(ctx, req.Email)
	if err != nil {
		s.Logger.Error("failed to request password reset", zap.String("email", req.Email), zap.Error(err))
		HandleServiceError(c, err)
		return
	}

	body := fmt.Sprintf(
		`Hello, please click the link below to reset your password. <a href="%s">Reset Password</a>`,
		reset.Link,
	)
	if err := s.EmailSender.SendEmail(ctx, reset.Email, "Password Reset", body); err != nil {
		s.Logger.Error("failed to send reset email", zap.String("email", req.Email), zap.Error(err))
		JSONError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	JSON(c, nil, "Password reset email sent")
}

func (s *Service) ResetPasswordConfirm(c *gin.Context) {
	ctx := c.Request.Context()

	var req ResetPasswordConfirmRequest
	err := c.BindJSON(&req)
	if err != nil {
		errMsg := "failed to decode reset-password-confirm request"
		s.Logger.Error(errMsg, zap.Error(err))
		JSONError(c, http.StatusBadRequest, errMsg+": %v", err)
		return
	}

	if req.EncodedToken == "" || req.Password == "" {
		JSONError(c, http.StatusBadRequest, "missing required fields")
		return
	}

	payload, err := auth.DecodePayload(req.EncodedToken)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	err = s.AuthService.ConfirmReset(ctx, payload.Email, payload.Token, req.Password)
	if err != nil {
		s.Logger.Error("failed to confirm password reset", zap.String("email", payload.Email), zap.Error(err))
		HandleServiceError(c, err)
		return
	}

	JSON(c, nil, "Password reset successful")
}

// startSession creates a database session for the user and mints the
// bearer JWT bound to it. On failure it writes the error response
// itself and returns a sentinel error to the calling handler.
func (s *Service) startSession(c *gin.Context, user *model.Profile) (string, error) {
	sess, err := s.Sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		s.Logger.Error("failed to create session", zap.Error(err))
		JSONError(c, http.StatusInternalServerError, "internal server error")
		return "", err
	}

	token, err := s.JWT.Issue(user, sess.Token)
	if err != nil {
		s.Logger.Error("failed to issue token", zap.Error(err))
		JSONError(c, http.StatusInternalServerError, "internal server error")
		return "", err
	}

	return token, nil
}
