package sessions

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/priorlabs/tabpfn-cli/internal/client"
	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	ErrLocalInferenceUnsupported = errors.New("local inference is not supported yet")
	ErrServiceUnreachable        = errors.New("TabPFN is inaccessible at the moment, please try again later")
)

// Authenticator is the token side of the bootstrap.
type Authenticator interface {
	IsAccessibleConnection(ctx context.Context) bool
	TryReuseExistingToken(ctx context.Context) (bool, string, error)
	RetrieveGreetingMessages(ctx context.Context) ([]string, error)
	SetToken(token string)
	AccessToken() string
	Reset()
}

// Onboarding runs the interactive login and registration flow.
type Onboarding interface {
	Run(ctx context.Context) (models.WizardOutcome, error)
	Reverify(ctx context.Context, token string) (models.WizardOutcome, error)
}

// Printer shows the messages the bootstrap itself is responsible for.
type Printer interface {
	Welcome()
	Print(message string)
	Success(message string)
	Warn(message string)
	Info(message string)
}

// Bootstrap takes a session from nothing to an authorised, server-backed
// session, running the wizard only when no usable token exists.
type Bootstrap struct {
	auth     Authenticator
	wizard   Onboarding
	printer  Printer
	cacheDir string
}

func NewBootstrap(auth Authenticator, wizard Onboarding, printer Printer, cacheDir string) *Bootstrap {
	return &Bootstrap{
		auth:     auth,
		wizard:   wizard,
		printer:  printer,
		cacheDir: cacheDir,
	}
}

// Init returns the session unchanged and uninitialised when the user quits,
// and an error only when the service cannot be reached or registration
// went wrong.
func (b *Bootstrap) Init(ctx context.Context, s models.Session, useServer bool) (models.Session, error) {

	if !useServer {
		return s, ErrLocalInferenceUnsupported
	}

	s.UseServer = true

	if s.Initialized {
		return s, nil
	}

	valid, token, err := b.auth.TryReuseExistingToken(ctx)
	if ctx.Err() != nil {
		// Interrupted while checking the cached token
		return s, nil
	}
	if err != nil {
		if errors.Is(err, client.ErrConnectivity) {
			return s, fmt.Errorf("%w: %w", ErrServiceUnreachable, err)
		}
		return s, err
	}

	if !b.auth.IsAccessibleConnection(ctx) {
		return s, ErrServiceUnreachable
	}

	var outcome models.WizardOutcome

	switch {
	case valid:
		b.printer.Success("Found existing access token, reusing it for authentication.")
		outcome = models.OutcomeSuccess

	case len(token) > 0:
		// Issued but the email was never verified
		b.printer.Warn("Email not verified")
		b.printer.Info("You need to verify your email before continuing.")

		outcome, err = b.wizard.Reverify(ctx, token)
		if err != nil {
			return s, err
		}

		if outcome == models.OutcomeRestart {
			outcome, err = b.onboard(ctx)
			if err != nil {
				return s, err
			}
		}

	default:
		outcome, err = b.onboard(ctx)
		if err != nil {
			return s, err
		}
	}

	if outcome != models.OutcomeSuccess {
		logrus.WithFields(logrus.Fields{
			"outcome": outcome,
		}).Debugln("Session not initialized")
		return s, nil
	}

	b.greet(ctx)

	s.Initialized = true

	return s, nil
}

func (b *Bootstrap) onboard(ctx context.Context) (models.WizardOutcome, error) {
	b.printer.Welcome()
	return b.wizard.Run(ctx)
}

// greet prints whatever the service wants to tell a freshly logged in user.
func (b *Bootstrap) greet(ctx context.Context) {
	messages, err := b.auth.RetrieveGreetingMessages(ctx)
	if err != nil {
		logrus.WithError(err).Debugln("Failed to retrieve greeting messages")
		return
	}
	for _, message := range messages {
		b.printer.Print(message)
	}
}

// Reset logs out and removes the whole cache directory.
func (b *Bootstrap) Reset(s models.Session) models.Session {

	b.auth.Reset()

	if len(b.cacheDir) > 0 {
		if err := os.RemoveAll(b.cacheDir); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"path": b.cacheDir,
			}).Debugln("Failed to remove cache directory")
		}
	}

	return models.Session{}
}

// SetAccessToken adopts a token without any prompting, for CI and scripts.
func (b *Bootstrap) SetAccessToken(s models.Session, token string) models.Session {

	b.auth.SetToken(token)

	s.Initialized = true
	s.UseServer = true

	return s
}

// GetAccessToken makes sure the session is initialised and returns the token
// it is using.
func (b *Bootstrap) GetAccessToken(ctx context.Context, s models.Session) (string, models.Session, error) {

	s, err := b.Init(ctx, s, true)
	if err != nil {
		return "", s, err
	}

	return b.auth.AccessToken(), s, nil
}
