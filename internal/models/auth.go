package models

import (
	"context"
	"net/http"
)

// TokenStatus is the account service's verdict on an access token.
type TokenStatus int

const (
	TokenInvalid TokenStatus = iota
	TokenValid
	// The token was issued but the account's email is not verified yet.
	TokenUnverified
)

func (s TokenStatus) String() string {
	switch s {
	case TokenValid:
		return "valid"
	case TokenUnverified:
		return "unverified"
	default:
		return "invalid"
	}
}

type LoginResult struct {
	Token      string
	Message    string
	StatusCode int
}

func (r LoginResult) Succeeded() bool {
	return r.StatusCode == http.StatusOK && len(r.Token) > 0
}

// EmailUnverified reports a 403 from the login endpoint. It takes precedence
// over every other classification of the response.
func (r LoginResult) EmailUnverified() bool {
	return r.StatusCode == http.StatusForbidden
}

// ErrorResponse is the error body returned by the account service.
type ErrorResponse struct {
	Detail  string `json:"detail"`
	Message string `json:"message,omitempty"`
}

func (e ErrorResponse) String() string {
	if len(e.Detail) > 0 {
		return e.Detail
	}
	return e.Message
}

// AccountServiceImpl is the remote account service the CLI authenticates
// against. All calls are single-shot; transport failures are returned as
// errors, server rejections as (false, message).
type AccountServiceImpl interface {
	Authorize(token string)
	ResetAuthorization()
	AccessToken() string

	ValidateConnection(ctx context.Context) bool
	ValidateToken(ctx context.Context, token string) (TokenStatus, error)
	GetPasswordPolicy(ctx context.Context) ([]string, error)
	ValidateEmail(ctx context.Context, email string) (bool, string, error)
	Register(ctx context.Context, registration Registration) (RegisterResult, error)
	Login(ctx context.Context, email string, password string) (LoginResult, error)
	SendVerificationEmail(ctx context.Context, token string) (bool, string, error)
	VerifyEmail(ctx context.Context, code string, token string) (bool, string, error)
	SendPasswordReset(ctx context.Context, email string) (bool, string, error)
	GetGreetingMessages(ctx context.Context) ([]string, error)
}
