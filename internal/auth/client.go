package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/priorlabs/tabpfn-cli/internal/store"
	"github.com/sirupsen/logrus"
)

var ErrPasswordMismatch = errors.New("password and password confirmation must be the same")

// UserAuthenticationClient owns the access token: it keeps the service
// client authorised and mirrors the token into the on-disk cache.
type UserAuthenticationClient struct {
	service models.AccountServiceImpl
	cache   *store.TokenCache
}

func NewUserAuthenticationClient(service models.AccountServiceImpl, cache *store.TokenCache) *UserAuthenticationClient {
	return &UserAuthenticationClient{
		service: service,
		cache:   cache,
	}
}

func (a *UserAuthenticationClient) Service() models.AccountServiceImpl {
	return a.service
}

func (a *UserAuthenticationClient) IsAccessibleConnection(ctx context.Context) bool {
	return a.service.ValidateConnection(ctx)
}

func (a *UserAuthenticationClient) AccessToken() string {
	return a.service.AccessToken()
}

// SetToken authorises the service client and caches the token. A failed
// cache write does not undo the in-memory authorisation.
func (a *UserAuthenticationClient) SetToken(token string) {
	a.service.Authorize(token)

	if outcome := a.cache.Store(token); outcome.Degraded() {
		logrus.WithError(outcome.Err).Debugln("Access token was not cached")
	}
}

// TryReuseExistingToken looks for a token in memory, then on disk, and asks
// the service whether it is still good. An invalid token is forgotten
// everywhere. An unverified token is returned with valid=false so the
// caller can finish email verification with it.
func (a *UserAuthenticationClient) TryReuseExistingToken(ctx context.Context) (bool, string, error) {

	token := a.service.AccessToken()
	if len(token) == 0 {
		cached, found := a.cache.Read()
		if !found {
			return false, "", nil
		}
		token = cached
	}

	status, err := a.service.ValidateToken(ctx, token)
	if err != nil {
		return false, "", fmt.Errorf("failed to validate access token: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"status": status,
	}).Debugln("Reusing existing access token?")

	switch status {
	case models.TokenValid:
		a.SetToken(token)
		return true, token, nil
	case models.TokenUnverified:
		return false, token, nil
	default:
		a.Reset()
		return false, "", nil
	}
}

// SetTokenByLogin forwards the credentials and, on success, adopts the
// returned token.
func (a *UserAuthenticationClient) SetTokenByLogin(ctx context.Context, email string, password string) (models.LoginResult, error) {

	result, err := a.service.Login(ctx, email, password)
	if err != nil {
		return result, err
	}

	if result.Succeeded() {
		a.SetToken(result.Token)
	}

	return result, nil
}

// SetTokenByRegistration creates the account. The token it returns is not
// adopted until the email address has been verified.
func (a *UserAuthenticationClient) SetTokenByRegistration(ctx context.Context, registration models.Registration) (models.RegisterResult, error) {

	if registration.Password != registration.PasswordConfirm {
		return models.RegisterResult{}, ErrPasswordMismatch
	}

	return a.service.Register(ctx, registration)
}

// Reset forgets the token in memory and on disk.
func (a *UserAuthenticationClient) Reset() {
	a.service.ResetAuthorization()

	if outcome := a.cache.Clear(); outcome.Degraded() {
		logrus.WithError(outcome.Err).Debugln("Cached access token was not removed")
	}
}

func (a *UserAuthenticationClient) ValidateEmail(ctx context.Context, email string) (bool, string, error) {
	return a.service.ValidateEmail(ctx, email)
}

func (a *UserAuthenticationClient) GetPasswordPolicy(ctx context.Context) ([]string, error) {
	return a.service.GetPasswordPolicy(ctx)
}

func (a *UserAuthenticationClient) SendVerificationEmail(ctx context.Context, token string) (bool, string, error) {
	return a.service.SendVerificationEmail(ctx, token)
}

func (a *UserAuthenticationClient) VerifyEmail(ctx context.Context, code string, token string) (bool, string, error) {
	return a.service.VerifyEmail(ctx, code, token)
}

func (a *UserAuthenticationClient) SendResetPasswordEmail(ctx context.Context, email string) (bool, string, error) {
	return a.service.SendPasswordReset(ctx, email)
}

func (a *UserAuthenticationClient) RetrieveGreetingMessages(ctx context.Context) ([]string, error) {
	return a.service.GetGreetingMessages(ctx)
}
