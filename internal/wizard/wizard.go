// Package wizard drives the interactive registration and login flow as a
// finite-state machine. Every step is a method returning the next state;
// the transition table in states.go is the single source of which hops are
// legal.
package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/priorlabs/tabpfn-cli/internal/store"
	"github.com/priorlabs/tabpfn-cli/internal/ui"
	"github.com/sirupsen/logrus"
)

var (
	ErrRegistrationAbandoned = errors.New("registration abandoned")
	ErrRegistrationFailed    = errors.New("user registration failed")
	ErrIllegalTransition     = errors.New("illegal wizard transition")
)

// DefaultValidationLink is sent with every registration request.
const DefaultValidationLink = "tabpfn-2023"

const (
	termsURL      = "https://www.priorlabs.ai/terms"
	useCaseSample = "Predicting customer churn in a SaaS application"

	registrationSteps = 6
)

// Authenticator is the part of the authentication client the wizard drives.
type Authenticator interface {
	IsAccessibleConnection(ctx context.Context) bool
	SetToken(token string)
	SetTokenByLogin(ctx context.Context, email string, password string) (models.LoginResult, error)
	SetTokenByRegistration(ctx context.Context, registration models.Registration) (models.RegisterResult, error)
	ValidateEmail(ctx context.Context, email string) (bool, string, error)
	GetPasswordPolicy(ctx context.Context) ([]string, error)
	SendVerificationEmail(ctx context.Context, token string) (bool, string, error)
	VerifyEmail(ctx context.Context, code string, token string) (bool, string, error)
	SendResetPasswordEmail(ctx context.Context, email string) (bool, string, error)
}

type step func(ctx context.Context) (State, error)

// afterVerify decides what a successful email verification leads to.
type afterVerify int

const (
	// adoptToken caches the token that was verified and finishes.
	adoptToken afterVerify = iota
	// retryLogin logs in again with the credentials just entered.
	retryLogin
)

type Wizard struct {
	auth           Authenticator
	registrations  *store.RegistrationStore
	ui             UI
	validationLink string

	steps map[State]step

	// Flow data, reset on every run
	registration  models.Registration
	loginEmail    string
	loginPassword string
	loginMessage  string
	pendingToken  string
	afterVerify   afterVerify
}

func New(auth Authenticator, registrations *store.RegistrationStore, prompter UI, validationLink string) *Wizard {

	if len(validationLink) == 0 {
		validationLink = DefaultValidationLink
	}

	w := &Wizard{
		auth:           auth,
		registrations:  registrations,
		ui:             prompter,
		validationLink: validationLink,
	}

	w.steps = map[State]step{
		StateResumeCheck:      w.resumeCheck,
		StateMainMenu:         w.mainMenu,
		StateRegisterTerms:    w.registerTerms,
		StateRegisterEmail:    w.registerEmail,
		StateRegisterPassword: w.registerPassword,
		StateRegisterPrivacy:  w.registerPrivacy,
		StateRegisterProfile:  w.registerProfile,
		StateRegisterConsent:  w.registerConsent,
		StateRegisterSubmit:   w.registerSubmit,
		StateLoginEmail:       w.loginEmailStep,
		StateLoginPassword:    w.loginPasswordStep,
		StateLoginFailed:      w.loginFailed,
		StatePasswordReset:    w.passwordReset,
		StateVerifyEmail:      w.verifyEmail,
		StateLoginAfterVerify: w.loginAfterVerify,
	}

	return w
}

func (w *Wizard) reset() {
	w.registration = models.Registration{}
	w.loginEmail = ""
	w.loginPassword = ""
	w.loginMessage = ""
	w.pendingToken = ""
	w.afterVerify = adoptToken
}

// Run walks the user through login or registration until a token is
// cached, the user quits, or a registration is given up.
func (w *Wizard) Run(ctx context.Context) (models.WizardOutcome, error) {

	w.reset()

	if !w.auth.IsAccessibleConnection(ctx) {
		if ctx.Err() != nil {
			return models.OutcomeQuit, nil
		}
		w.ui.Warn("No internet connection detected. TabPFN client requires Internet access.")
		w.ui.Info("Please check your connection and try again.")
		return models.OutcomeQuit, nil
	}

	return w.run(ctx, StateResumeCheck)
}

// Reverify handles a cached token whose email was never verified: verify
// now, start over with the full wizard, or quit.
func (w *Wizard) Reverify(ctx context.Context, token string) (models.WizardOutcome, error) {

	w.reset()

	w.ui.Heading("Email Verification Required")
	w.ui.Print("Your account exists but email is not verified.")

	options := []ui.Option{
		ui.NewOption("Verify email now", "1"),
		ui.NewOption("Start over (login/register)", "2"),
		ui.NewOption("Quit", "q"),
	}

	for {
		choice, err := w.ui.Select(ctx, "Choose an option", options, "1")
		if err != nil {
			return w.stop(StateVerifyEmail, err)
		}

		switch choice {
		case "1":
			w.pendingToken = token
			w.afterVerify = adoptToken
			return w.run(ctx, StateVerifyEmail)
		case "2":
			w.ui.Info("Returning to main menu...")
			return models.OutcomeRestart, nil
		case "q":
			w.ui.Print("Goodbye!")
			return models.OutcomeQuit, nil
		default:
			w.ui.Warn("Please enter 1, 2, or q.")
		}
	}
}

func (w *Wizard) run(ctx context.Context, start State) (models.WizardOutcome, error) {

	current := start

	for {
		switch current {
		case StateSuccess:
			return models.OutcomeSuccess, nil
		case StateQuit:
			return models.OutcomeQuit, nil
		}

		run, found := w.steps[current]
		if !found {
			return models.OutcomeQuit, fmt.Errorf("%w: no step for state %s", ErrIllegalTransition, current)
		}

		next, err := run(ctx)
		if err != nil {
			return w.stop(current, err)
		}

		if !canTransition(current, next) {
			return models.OutcomeQuit, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current, next)
		}

		logrus.WithFields(logrus.Fields{
			"from": current,
			"to":   next,
		}).Debugln("Wizard transition")

		current = next
	}
}

// stop turns an interruption into a quiet quit and passes everything else
// up to the caller.
func (w *Wizard) stop(state State, err error) (models.WizardOutcome, error) {

	if ui.IsInterrupted(err) || errors.Is(err, context.Canceled) {
		logrus.WithFields(logrus.Fields{
			"state": state,
		}).Debugln("Wizard interrupted")
		w.ui.Warn("Interrupted. Goodbye!")
		return models.OutcomeQuit, nil
	}

	logrus.WithError(err).WithFields(logrus.Fields{
		"state": state,
	}).Debugln("Wizard stopped")

	return models.OutcomeQuit, err
}

// clearRegistration drops the saved checkpoint. Failures are only logged.
func (w *Wizard) clearRegistration() {
	if outcome := w.registrations.Clear(); outcome.Degraded() {
		logrus.WithError(outcome.Err).Debugln("Registration state not cleared")
	}
}
