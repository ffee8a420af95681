package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/priorlabs/tabpfn-cli/internal/common"
)

const (
	commandResend = "resend"
	commandQuit   = "quit"
)

func (w *Wizard) verifyEmail(ctx context.Context) (State, error) {

	w.ui.Heading("Email Verification")
	w.ui.Print("Enter the verification code sent to your email.")
	w.ui.Info("Type 'resend' to get a new code, or 'quit' to exit.")

	for {
		code, err := w.ui.Input(ctx, "Verification code", "")
		if err != nil {
			return "", err
		}

		code = strings.TrimSpace(code)

		switch {
		case len(code) == 0:
			w.ui.Warn("Please enter a verification code.")
			continue

		case common.IsCommand(code, commandResend):
			if err := w.resendVerification(ctx); err != nil {
				return "", err
			}
			continue

		case common.IsCommand(code, commandQuit):
			w.ui.Warn("Verification cancelled.")
			w.ui.Info("You can verify your email later by logging in again.")
			return StateQuit, nil
		}

		var verified bool
		var message string
		err = w.ui.Status(ctx, "Verifying", func(ctx context.Context) error {
			var err error
			verified, message, err = w.auth.VerifyEmail(ctx, code, w.pendingToken)
			return err
		})
		if err != nil {
			return "", err
		}

		if !verified {
			w.ui.Warn(message)
			w.ui.Info("Try again, type 'resend' for a new code, or 'quit' to exit.")
			continue
		}

		w.ui.Success("Email verified successfully!")

		if w.afterVerify == retryLogin {
			return StateLoginAfterVerify, nil
		}

		w.auth.SetToken(w.pendingToken)
		return StateSuccess, nil
	}
}

func (w *Wizard) resendVerification(ctx context.Context) error {

	var sent bool
	var message string
	err := w.ui.Status(ctx, "Sending new verification code", func(ctx context.Context) error {
		var err error
		sent, message, err = w.auth.SendVerificationEmail(ctx, w.pendingToken)
		return err
	})
	if err != nil {
		return err
	}

	if sent {
		w.ui.Success("New verification code sent!")
		w.ui.Info("Check your email for the new code.")
	} else {
		w.ui.Fail(fmt.Sprintf("Failed to resend: %s", message))
	}

	return nil
}
