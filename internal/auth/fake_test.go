package auth

import (
	"context"

	"github.com/priorlabs/tabpfn-cli/internal/models"
)

// fakeService is an in-memory account service.
type fakeService struct {
	token string

	tokenStatus   map[string]models.TokenStatus
	validateErr   error
	validateCalls int

	loginResult models.LoginResult
	loginErr    error

	registerResult models.RegisterResult
	registerCalls  int
}

func (f *fakeService) Authorize(token string)                      { f.token = token }
func (f *fakeService) ResetAuthorization()                         { f.token = "" }
func (f *fakeService) AccessToken() string                         { return f.token }
func (f *fakeService) ValidateConnection(ctx context.Context) bool { return true }

func (f *fakeService) ValidateToken(ctx context.Context, token string) (models.TokenStatus, error) {
	f.validateCalls++
	if f.validateErr != nil {
		return models.TokenInvalid, f.validateErr
	}
	return f.tokenStatus[token], nil
}

func (f *fakeService) GetPasswordPolicy(ctx context.Context) ([]string, error) {
	return []string{"Length(8)"}, nil
}

func (f *fakeService) ValidateEmail(ctx context.Context, email string) (bool, string, error) {
	return true, "", nil
}

func (f *fakeService) Register(ctx context.Context, registration models.Registration) (models.RegisterResult, error) {
	f.registerCalls++
	return f.registerResult, nil
}

func (f *fakeService) Login(ctx context.Context, email string, password string) (models.LoginResult, error) {
	return f.loginResult, f.loginErr
}

func (f *fakeService) SendVerificationEmail(ctx context.Context, token string) (bool, string, error) {
	return true, "", nil
}

func (f *fakeService) VerifyEmail(ctx context.Context, code string, token string) (bool, string, error) {
	return code == "123456", "", nil
}

func (f *fakeService) SendPasswordReset(ctx context.Context, email string) (bool, string, error) {
	return true, "", nil
}

func (f *fakeService) GetGreetingMessages(ctx context.Context) ([]string, error) {
	return []string{"hello"}, nil
}
