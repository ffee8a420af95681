package wizard

import (
	"context"
	"fmt"

	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/priorlabs/tabpfn-cli/internal/ui"
)

func (w *Wizard) loginEmailStep(ctx context.Context) (State, error) {

	previous := w.loginEmail

	title := "Email"
	if len(previous) > 0 {
		title = "New email"
	} else {
		w.ui.Heading("Login")
	}

	email, err := w.requiredInput(ctx, title, "", "Email is required.")
	if err != nil {
		return "", err
	}

	w.loginEmail = email
	if len(previous) > 0 {
		w.ui.Info(fmt.Sprintf("Switched to: %s", email))
	}

	return StateLoginPassword, nil
}

func (w *Wizard) loginPasswordStep(ctx context.Context) (State, error) {

	var secret string
	for {
		var err error
		secret, err = w.ui.Password(ctx, "Password")
		if err != nil {
			return "", err
		}
		if len(secret) > 0 {
			break
		}
		w.ui.Warn("Password is required.")
	}

	w.loginPassword = secret

	result, err := w.login(ctx)
	if err != nil {
		return "", err
	}

	// An unverified email wins over every other reading of the response
	if result.EmailUnverified() {
		w.ui.Warn("Email not verified.")
		w.pendingToken = result.Token
		w.afterVerify = retryLogin
		return StateVerifyEmail, nil
	}

	if result.Succeeded() {
		w.ui.Success("Login successful!")
		return StateSuccess, nil
	}

	w.loginMessage = result.Message
	return StateLoginFailed, nil
}

// loginAfterVerify is the single automatic retry once the email is verified.
func (w *Wizard) loginAfterVerify(ctx context.Context) (State, error) {

	result, err := w.login(ctx)
	if err != nil {
		return "", err
	}

	if result.Succeeded() {
		w.ui.Success("Login successful!")
		return StateSuccess, nil
	}

	w.loginMessage = result.Message
	return StateLoginFailed, nil
}

func (w *Wizard) login(ctx context.Context) (models.LoginResult, error) {
	var result models.LoginResult
	err := w.ui.Status(ctx, "Authenticating", func(ctx context.Context) error {
		var err error
		result, err = w.auth.SetTokenByLogin(ctx, w.loginEmail, w.loginPassword)
		return err
	})
	return result, err
}

func (w *Wizard) loginFailed(ctx context.Context) (State, error) {

	w.ui.Fail(fmt.Sprintf("Login failed: %s", w.loginMessage))

	options := []ui.Option{
		ui.NewOption("Try password again", "1"),
		ui.NewOption("Reset password", "2"),
		ui.NewOption("Change email", "3"),
		ui.NewOption("Quit", "q"),
	}

	choice, err := w.ui.Select(ctx, "What would you like to do?", options, "1")
	if err != nil {
		return "", err
	}

	switch choice {
	case "2":
		return StatePasswordReset, nil
	case "3":
		return StateLoginEmail, nil
	case "q":
		w.ui.Print("Goodbye!")
		return StateQuit, nil
	default:
		// Anything unrecognised retries, same as the default
		w.ui.Info(fmt.Sprintf("Logging in as: %s", w.loginEmail))
		return StateLoginPassword, nil
	}
}

// passwordReset always ends the wizard; the user comes back after following
// the link in the email.
func (w *Wizard) passwordReset(ctx context.Context) (State, error) {

	w.ui.Heading("Password Reset")
	w.ui.Print("We'll send a reset link to your email.")

	var sent bool
	var message string
	err := w.ui.Status(ctx, "Sending password reset email", func(ctx context.Context) error {
		var err error
		sent, message, err = w.auth.SendResetPasswordEmail(ctx, w.loginEmail)
		return err
	})
	if err != nil {
		return "", err
	}

	if sent {
		w.ui.Success(fmt.Sprintf("Password reset email sent to %s", w.loginEmail))
		w.ui.Info("Please check your email and return here after resetting.")
	} else {
		w.ui.Fail(fmt.Sprintf("Failed to send reset email: %s", message))
	}

	return StateQuit, nil
}
