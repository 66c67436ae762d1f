package handlers

import "github.com/blogware/auth-service/internal/model"

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResetPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordConfirmRequest struct {
	EncodedToken string `json:"encodedToken"`
	Password     string `json:"password"`
}

type LoginResponse struct {
	Token string         `json:"token"`
	User  *model.Profile `json:"user"`
}
