package handler

import "github.com/sifrex/auth-api/internal/core/domain"

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type oauthRequest struct {
	ProviderAccountID string `json:"provider_account_id" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	Name              string `json:"name" validate:"max=100"`
}

type authResponse struct {
	AccessToken  string       `json:"access_token,omitempty"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	ExpiresIn    int64        `json:"expires_in,omitempty"`
	User         *domain.User `json:"user,omitempty"`
}

func newAuthResponse(pair *domain.TokenPair, user *domain.User) authResponse {
	resp := authResponse{User: user}
	if pair != nil {
		resp.AccessToken = pair.AccessToken
		resp.RefreshToken = pair.RefreshToken
		resp.ExpiresIn = pair.ExpiresIn
	}
	return resp
}
