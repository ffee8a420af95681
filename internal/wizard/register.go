package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/priorlabs/tabpfn-cli/internal/common"
	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/priorlabs/tabpfn-cli/internal/password"
	"github.com/priorlabs/tabpfn-cli/internal/ui"
	"github.com/sirupsen/logrus"
)

const roleOther = "Other"

var roles = []string{"Field practitioner", "Researcher", "Student", roleOther}

func (w *Wizard) resumeCheck(ctx context.Context) (State, error) {

	record, found := w.registrations.Load()
	if !found || !record.IsResumable() {
		return StateMainMenu, nil
	}

	w.ui.Warn(fmt.Sprintf("Found interrupted registration for: %s", record.Email))

	resume, err := w.ui.Confirm(ctx, "Resume?", "Continue the registration where you left off", true)
	if err != nil {
		return "", err
	}

	if !resume {
		w.clearRegistration()
		return StateMainMenu, nil
	}

	w.ui.Info("Resuming registration...")
	w.ui.Heading("Resuming Registration")
	w.ui.Print(fmt.Sprintf("Email: %s", record.Email))

	// Terms were accepted before the email step was ever reached
	w.registration.Email = record.Email
	w.registration.Profile.AgreedTermsAndConditions = true

	return StateRegisterPassword, nil
}

func (w *Wizard) mainMenu(ctx context.Context) (State, error) {

	options := []ui.Option{
		ui.NewOption("Create a TabPFN account", "1"),
		ui.NewOption("Login to your TabPFN account", "2"),
		ui.NewOption("Quit", "q"),
	}

	w.ui.Info("Press Ctrl+C anytime to exit")

	for {
		choice, err := w.ui.Select(ctx, "Account access", options, "")
		if err != nil {
			return "", err
		}

		switch choice {
		case "1":
			w.ui.Info(fmt.Sprintf("Registration: %d steps (about 2 minutes)", registrationSteps))
			return StateRegisterTerms, nil
		case "2":
			return StateLoginEmail, nil
		case "q":
			w.ui.Print("Goodbye!")
			return StateQuit, nil
		default:
			w.ui.Warn("Invalid choice. Please enter 1, 2, or q.")
		}
	}
}

func (w *Wizard) registerTerms(ctx context.Context) (State, error) {

	w.ui.Step(1, registrationSteps, "Terms & Conditions")
	w.ui.Print(fmt.Sprintf("By using TabPFN, you agree to the terms and conditions at %s", termsURL))

	agreed, err := w.ui.Confirm(ctx, "Agree to terms?", "", false)
	if err != nil {
		return "", err
	}

	if !agreed {
		w.clearRegistration()
		return "", fmt.Errorf("%w: you must agree to the terms and conditions to use TabPFN", ErrRegistrationAbandoned)
	}

	w.registration.Profile.AgreedTermsAndConditions = true

	return StateRegisterEmail, nil
}

func (w *Wizard) registerEmail(ctx context.Context) (State, error) {

	w.ui.Step(2, registrationSteps, "Account Details")

	for {
		email, err := w.requiredInput(ctx, "Email", "", "Email is required.")
		if err != nil {
			return "", err
		}

		// Checkpoint before talking to the server so an interrupt can resume here
		if outcome := w.registrations.Save(models.RegistrationRecord{
			Email: email,
			Step:  models.StepEmailValidation,
		}); outcome.Degraded() {
			logrus.WithError(outcome.Err).Debugln("Registration state not saved")
		}

		var valid bool
		var message string
		err = w.ui.Status(ctx, "Validating email", func(ctx context.Context) error {
			var err error
			valid, message, err = w.auth.ValidateEmail(ctx, email)
			return err
		})
		if err != nil {
			return "", err
		}

		if valid {
			w.registration.Email = email
			return StateRegisterPassword, nil
		}

		w.ui.Warn(message)
		w.ui.Info("Please try a different email or contact support if this seems incorrect.")
	}
}

func (w *Wizard) registerPassword(ctx context.Context) (State, error) {

	w.ui.Step(3, registrationSteps, "Create Password")

	var descriptors []string
	err := w.ui.Status(ctx, "Retrieving password policy", func(ctx context.Context) error {
		var err error
		descriptors, err = w.auth.GetPasswordPolicy(ctx)
		return err
	})
	if err != nil {
		return "", err
	}

	policy, err := password.ParsePolicy(descriptors)
	if err != nil {
		return "", fmt.Errorf("failed to read password policy: %w", err)
	}

	w.ui.Requirements(policy.Requirements())

	for {
		candidate, err := w.ui.Password(ctx, "Password")
		if err != nil {
			return "", err
		}

		if len(candidate) == 0 {
			w.ui.Warn("Password is required.")
			continue
		}

		if !policy.Satisfied(candidate) {
			w.ui.RequirementStatus(policy.Check(candidate))
			w.ui.Info("Enter a password that meets all requirements.")
			continue
		}

		confirmation, err := w.ui.Password(ctx, "Confirm password")
		if err != nil {
			return "", err
		}

		if candidate == confirmation {
			w.registration.Password = candidate
			w.registration.PasswordConfirm = confirmation
			return StateRegisterPrivacy, nil
		}

		w.ui.Warn("Passwords do not match.")
		w.ui.Info("Please re-enter your password.")
	}
}

func (w *Wizard) registerPrivacy(ctx context.Context) (State, error) {

	w.ui.Step(4, registrationSteps, "Data Privacy")
	w.ui.Print("Do not upload personal/sensitive data.")

	agreed, err := w.ui.Confirm(ctx, "I understand", "", false)
	if err != nil {
		return "", err
	}

	if !agreed {
		w.clearRegistration()
		return "", fmt.Errorf("%w: you must agree to not upload personal data", ErrRegistrationAbandoned)
	}

	w.registration.Profile.AgreedPersonallyIdentifiableInformation = true

	return StateRegisterProfile, nil
}

func (w *Wizard) registerProfile(ctx context.Context) (State, error) {

	w.ui.Step(5, registrationSteps, "Your Information")
	w.ui.Info("This helps us personalize your experience")

	name, err := w.requiredInput(ctx, "Your name", "", "We'd love to know what to call you!")
	if err != nil {
		return "", err
	}

	profile := &w.registration.Profile
	profile.FirstName, profile.LastName = common.SplitName(name)

	w.ui.Step(6, registrationSteps, "Help Us Serve You Better")
	w.ui.Info("Just a few quick questions to get you started")

	if profile.Company, err = w.minLengthInput(ctx, "Where do you work?", "", 2); err != nil {
		return "", err
	}

	if profile.Role, err = w.selectRole(ctx); err != nil {
		return "", err
	}

	if profile.UseCase, err = w.minLengthInput(ctx, "What do you want to use TabPFN for?", "Example: "+useCaseSample, 10); err != nil {
		return "", err
	}

	return StateRegisterConsent, nil
}

func (w *Wizard) selectRole(ctx context.Context) (string, error) {

	options := make([]ui.Option, 0, len(roles))
	for _, role := range roles {
		options = append(options, ui.NewOption(role, role))
	}

	for {
		role, err := w.ui.Select(ctx, "What is your current role?", options, "")
		if err != nil {
			return "", err
		}

		if role == roleOther {
			return w.minLengthInput(ctx, "Please specify your role", "", 2)
		}

		for _, known := range roles {
			if role == known {
				return role, nil
			}
		}

		w.ui.Info("Please choose one of the options above")
	}
}

func (w *Wizard) registerConsent(ctx context.Context) (State, error) {

	contact, err := w.ui.Confirm(ctx, "Can we contact you via email for support?", "", true)
	if err != nil {
		return "", err
	}

	w.registration.Profile.ContactViaEmail = contact

	return StateRegisterSubmit, nil
}

func (w *Wizard) registerSubmit(ctx context.Context) (State, error) {

	w.registration.ValidationLink = w.validationLink

	var result models.RegisterResult
	err := w.ui.Status(ctx, "Creating account", func(ctx context.Context) error {
		var err error
		result, err = w.auth.SetTokenByRegistration(ctx, w.registration)
		return err
	})
	if err != nil {
		return "", err
	}

	if !result.Created {
		w.clearRegistration()
		return "", fmt.Errorf("%w: %s", ErrRegistrationFailed, result.Message)
	}

	w.ui.Success("Account created successfully!")
	w.ui.Info("Almost done! Check your email for a verification code.")

	w.clearRegistration()

	w.pendingToken = result.Token
	w.afterVerify = adoptToken

	return StateVerifyEmail, nil
}

// requiredInput re-prompts until the trimmed answer is non-empty.
func (w *Wizard) requiredInput(ctx context.Context, title string, description string, missing string) (string, error) {
	for {
		value, err := w.ui.Input(ctx, title, description)
		if err != nil {
			return "", err
		}

		value = strings.TrimSpace(value)
		if len(value) > 0 {
			return value, nil
		}

		w.ui.Warn(missing)
	}
}

// minLengthInput re-prompts until the trimmed answer has at least min runes.
func (w *Wizard) minLengthInput(ctx context.Context, title string, description string, min int) (string, error) {
	for {
		value, err := w.ui.Input(ctx, title, description)
		if err != nil {
			return "", err
		}

		value = strings.TrimSpace(value)
		if common.HasMinLength(value, min) {
			return value, nil
		}

		w.ui.Info(fmt.Sprintf("Could you add a bit more? We need at least %d characters.", min))
	}
}
