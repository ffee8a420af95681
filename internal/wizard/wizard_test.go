package wizard

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/priorlabs/tabpfn-cli/internal/auth"
	"github.com/priorlabs/tabpfn-cli/internal/client"
	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/priorlabs/tabpfn-cli/internal/store"
	"github.com/priorlabs/tabpfn-cli/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	wizard        *Wizard
	ui            *scriptedUI
	accounts      *fakeAccounts
	cache         *store.TokenCache
	registrations *store.RegistrationStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	accounts := newFakeAccounts()
	cache := store.NewTokenCache(t.TempDir())
	registrations := store.NewRegistrationStore(t.TempDir())
	prompter := newScriptedUI(t)

	return &harness{
		wizard:        New(auth.NewUserAuthenticationClient(accounts, cache), registrations, prompter, ""),
		ui:            prompter,
		accounts:      accounts,
		cache:         cache,
		registrations: registrations,
	}
}

func (h *harness) script(answers ...answer) {
	h.ui.answers = append(h.ui.answers, answers...)
}

func (h *harness) cachedToken() string {
	token, _ := h.cache.Read()
	return token
}

func (h *harness) saveRecord(t *testing.T, email string) {
	t.Helper()
	require.True(t, h.registrations.Save(models.RegistrationRecord{
		Email: email,
		Step:  models.StepEmailValidation,
	}).OK())
}

// registration answers from the password step to the verification code.
func afterPassword(code string) []answer {
	return []answer{
		yes(),                            // privacy
		say("Ada Lovelace"),              // name
		say("Analytical Engines"),        // company
		say("Researcher"),                // role
		say("Predicting customer churn"), // use case
		enter(),                          // contact consent, default yes
		say(code),                        // verification code
	}
}

func TestWizard_TransitionTableIsComplete(t *testing.T) {
	h := newHarness(t)

	for from, targets := range transitions {
		_, found := h.wizard.steps[from]
		assert.True(t, found, "state %s has transitions but no step", from)

		for _, to := range targets {
			if to.IsTerminal() {
				continue
			}
			_, found := h.wizard.steps[to]
			assert.True(t, found, "transition %s -> %s targets a state without a step", from, to)
		}
	}

	for state := range h.wizard.steps {
		_, found := transitions[state]
		assert.True(t, found, "step %s has no transitions", state)
	}
}

func TestWizard_IllegalTransition(t *testing.T) {
	h := newHarness(t)
	h.wizard.steps[StateMainMenu] = func(ctx context.Context) (State, error) {
		return StateSuccess, nil
	}

	outcome, err := h.wizard.Run(context.Background())
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, models.OutcomeQuit, outcome)
}

func TestWizard_UnreachableServiceQuits(t *testing.T) {
	h := newHarness(t)
	h.accounts.unreachable = true

	outcome, err := h.wizard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeQuit, outcome)
	assert.Empty(t, h.ui.prompts)
	assert.True(t, h.ui.printed("No internet connection detected"))
}

func TestWizard_MainMenuRepromptsOnInvalidChoice(t *testing.T) {
	h := newHarness(t)
	h.script(say("x"), say("7"), say("q"))

	outcome, err := h.wizard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeQuit, outcome)
	assert.Len(t, h.ui.prompts, 3)
	assert.True(t, h.ui.printed("Invalid choice"))
}

func TestWizard_ResumeStartsAtPassword(t *testing.T) {
	h := newHarness(t)
	h.accounts.registerResult = models.RegisterResult{Created: true, Message: "ok", Token: "T"}
	h.saveRecord(t, "a@b.com")

	h.script(enter(), say("Abcdefgh"), say("Abcdefgh"))
	h.script(afterPassword("123456")...)

	outcome, err := h.wizard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, outcome)

	require.GreaterOrEqual(t, len(h.ui.prompts), 2)
	assert.Equal(t, "Resume?", h.ui.prompts[0])
	assert.Equal(t, "Password", h.ui.prompts[1])
	assert.NotContains(t, h.ui.prompts, "Agree to terms?")
	assert.NotContains(t, h.ui.prompts, "Email")

	require.Len(t, h.accounts.registered, 1)
	registered := h.accounts.registered[0]
	assert.Equal(t, "a@b.com", registered.Email)
	assert.True(t, registered.Profile.AgreedTermsAndConditions)
	assert.True(t, registered.Profile.AgreedPersonallyIdentifiableInformation)

	_, found := h.registrations.Load()
	assert.False(t, found, "registration state is cleared after submission")
	assert.Equal(t, "T", h.cachedToken())
}

func TestWizard_DiscardResume(t *testing.T) {
	h := newHarness(t)
	h.saveRecord(t, "a@b.com")

	h.script(no(), say("q"))

	outcome, err := h.wizard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeQuit, outcome)
	assert.Equal(t, []string{"Resume?", "Account access"}, h.ui.prompts)

	_, found := h.registrations.Load()
	assert.False(t, found)
}

func TestWizard_FullRegistration(t *testing.T) {
	h := newHarness(t)
	h.accounts.registerResult = models.RegisterResult{Created: true, Message: "ok", Token: "T"}

	h.script(say("1"), yes(), say("a@b.com"), say("Abcdefgh"), say("Abcdefgh"))
	h.script(afterPassword("123456")...)

	outcome, err := h.wizard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, outcome)
	assert.Zero(t, h.ui.remaining())

	require.Len(t, h.accounts.registered, 1)
	registered := h.accounts.registered[0]
	assert.Equal(t, models.Registration{
		Email:           "a@b.com",
		Password:        "Abcdefgh",
		PasswordConfirm: "Abcdefgh",
		ValidationLink:  DefaultValidationLink,
		Profile: models.Profile{
			FirstName:                               "Ada",
			LastName:                                "Lovelace",
			Company:                                 "Analytical Engines",
			Role:                                    "Researcher",
			UseCase:                                 "Predicting customer churn",
			ContactViaEmail:                         true,
			AgreedTermsAndConditions:                true,
			AgreedPersonallyIdentifiableInformation: true,
		},
	}, registered)

	assert.Equal(t, "T", h.cachedToken(), "verified registration token is cached")
	assert.Equal(t, 1, h.accounts.verifyCalls)

	_, found := h.registrations.Load()
	assert.False(t, found)
}

func TestWizard_PasswordFailingPolicyNeverReachesConfirmation(t *testing.T) {
	h := newHarness(t)
	h.accounts.registerResult = models.RegisterResult{Created: true, Token: "T"}

	h.script(say("1"), yes(), say("a@b.com"), say("abc"), say("Abcdefgh"), say("Abcdefgh"))
	h.script(afterPassword("123456")...)

	outcome, err := h.wizard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, outcome)

	// Prompts: menu, terms, email, password(abc), password(Abcdefgh), confirm
	require.GreaterOrEqual(t, len(h.ui.prompts), 6)
	assert.Equal(t, []string{"Password", "Password", "Confirm password"}, h.ui.prompts[3:6])

	require.Len(t, h.ui.failed, 1, "only the failing attempt shows requirement status")
	unmet := 0
	for _, res := range h.ui.failed[0] {
		if !res.Met {
			unmet++
		}
	}
	assert.Equal(t, 2, unmet)
}

func TestWizard_PasswordMismatchReprompts(t *testing.T) {
	h := newHarness(t)
	h.accounts.registerResult = models.RegisterResult{Created: true, Token: "T"}

	h.script(say("1"), yes(), say("a@b.com"),
		say("Abcdefgh"), say("Abcdefgx"),
		say("Abcdefgh"), say("Abcdefgh"))
	h.script(afterPassword("123456")...)

	outcome, err := h.wizard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, outcome)
	assert.True(t, h.ui.printed("Passwords do not match."))
}

func TestWizard_EmailStepRepromptsAndCheckpoints(t *testing.T) {
	h := newHarness(t)
	h.accounts.invalidEmails["taken@b.com"] = "User already exists"

	h.script(say("1"), yes(), say("  "), say("taken@b.com"), say("a@b.com"), interrupt())

	outcome, err := h.wizard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeQuit, outcome)

	assert.True(t, h.ui.printed("Email is required."))
	assert.True(t, h.ui.printed("User already exists"))

	record, found := h.registrations.Load()
	require.True(t, found, "an interrupted registration stays resumable")
	assert.Equal(t, "a@b.com", record.Email)
	assert.Equal(t, models.StepEmailValidation, record.Step)
}

func TestWizard_EmailValidationConnectivityError(t *testing.T) {
	h := newHarness(t)
	h.accounts.emailErr = fmt.Errorf("%w: dial tcp", client.ErrConnectivity)

	h.script(say("1"), yes(), say("a@b.com"))

	outcome, err := h.wizard.Run(context.Background())
	assert.ErrorIs(t, err, client.ErrConnectivity)
	assert.Equal(t, models.OutcomeQuit, outcome)
}

func TestWizard_TermsDeclined(t *testing.T) {
	h := newHarness(t)
	h.saveRecord(t, "old@b.com")

	h.script(no(), say("1"), no())

	_, err := h.wizard.Run(context.Background())
	assert.ErrorIs(t, err, ErrRegistrationAbandoned)

	_, found := h.registrations.Load()
	assert.False(t, found)
}

func TestWizard_PrivacyDeclinedClearsState(t *testing.T) {
	h := newHarness(t)

	h.script(say("1"), yes(), say("a@b.com"), say("Abcdefgh"), say("Abcdefgh"), no())

	_, err := h.wizard.Run(context.Background())
	assert.ErrorIs(t, err, ErrRegistrationAbandoned)

	_, found := h.registrations.Load()
	assert.False(t, found)
	assert.Empty(t, h.accounts.registered)
}

func TestWizard_RegistrationRejected(t *testing.T) {
	h := newHarness(t)
	h.accounts.registerResult = models.RegisterResult{Created: false, Message: "Email already registered"}

	h.script(say("1"), yes(), say("a@b.com"), say("Abcdefgh"), say("Abcdefgh"))
	h.script(afterPassword("unused")[:6]...)

	outcome, err := h.wizard.Run(context.Background())
	assert.ErrorIs(t, err, ErrRegistrationFailed)
	assert.Contains(t, err.Error(), "Email already registered")
	assert.Equal(t, models.OutcomeQuit, outcome)

	_, found := h.registrations.Load()
	assert.False(t, found)
	assert.Empty(t, h.cachedToken())
}

func TestWizard_ProfileValidation(t *testing.T) {
	h := newHarness(t)
	h.accounts.registerResult = models.RegisterResult{Created: true, Token: "T"}

	h.script(say("1"), yes(), say("a@b.com"), say("Abcdefgh"), say("Abcdefgh"), yes(),
		say(""), say("Ada"),                                        // name required
		say("A"), say("Acme"),                                      // company min 2
		say("Pilot"), say("Other"), say("X"), say("Data engineer"), // role
		say("churn"), say("Forecasting store demand"),              // use case min 10
		no(),
		say("123456"),
	)

	outcome, err := h.wizard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, outcome)

	require.Len(t, h.accounts.registered, 1)
	profile := h.accounts.registered[0].Profile
	assert.Equal(t, "Ada", profile.FirstName)
	assert.Empty(t, profile.LastName)
	assert.Equal(t, "Acme", profile.Company)
	assert.Equal(t, "Data engineer", profile.Role)
	assert.Equal(t, "Forecasting store demand", profile.UseCase)
	assert.False(t, profile.ContactViaEmail)
}

func TestWizard_LoginSuccess(t *testing.T) {
	h := newHarness(t)
	h.accounts.logins = []models.LoginResult{{Token: "T", StatusCode: http.StatusOK}}

	h.script(say("2"), say("a@b.com"), say("secret"))

	outcome, err := h.wizard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, outcome)
	assert.Equal(t, "T", h.cachedToken())
	assert.Equal(t, []string{"a@b.com:secret"}, h.accounts.loginCalls)
}

func TestWizard_LoginUnverifiedVerifiesThenRetriesOnce(t *testing.T) {
	h := newHarness(t)
	h.accounts.logins = []models.LoginResult{
		// Message text does not matter, 403 always means unverified
		{Token: "P", StatusCode: http.StatusForbidden, Message: "Incorrect email or password"},
		{Token: "T", StatusCode: http.StatusOK},
	}

	h.script(say("2"), say("a@b.com"), say("secret"), say("123456"))

	outcome, err := h.wizard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, outcome)

	assert.Equal(t, []string{"a@b.com:secret", "a@b.com:secret"}, h.accounts.loginCalls)
	assert.NotContains(t, h.ui.prompts, "What would you like to do?")
	assert.Equal(t, "T", h.cachedToken())
}

func TestWizard_LoginRetryAfterVerifyFailsShowsMenu(t *testing.T) {
	h := newHarness(t)
	h.accounts.logins = []models.LoginResult{
		{Token: "P", StatusCode: http.StatusForbidden},
		{StatusCode: http.StatusUnauthorized, Message: "Incorrect email or password"},
	}

	h.script(say("2"), say("a@b.com"), say("secret"), say("123456"), say("q"))

	outcome, err := h.wizard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeQuit, outcome)
	assert.Len(t, h.accounts.loginCalls, 2)
	assert.True(t, h.ui.printed("Login failed: Incorrect email or password"))
}

func TestWizard_VerificationCommands(t *testing.T) {
	h := newHarness(t)
	h.accounts.logins = []models.LoginResult{{Token: "P", StatusCode: http.StatusForbidden}}

	h.script(say("2"), say("a@b.com"), say("secret"),
		say(""), say("RESEND"), say("000000"), say(" Quit "))

	outcome, err := h.wizard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeQuit, outcome)

	assert.Equal(t, 1, h.accounts.resendCalls)
	assert.Equal(t, 1, h.accounts.verifyCalls)
	assert.True(t, h.ui.printed("Invalid verification code"))
	assert.True(t, h.ui.printed("Verification cancelled."))
	assert.Empty(t, h.cachedToken())
}

func TestWizard_LoginFailedRetryByDefault(t *testing.T) {
	h := newHarness(t)
	h.accounts.logins = []models.LoginResult{
		{StatusCode: http.StatusUnauthorized, Message: "Incorrect email or password"},
		{Token: "T", StatusCode: http.StatusOK},
	}

	h.script(say("2"), say("a@b.com"), say("wrong"), enter(), say("right"))

	outcome, err := h.wizard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, outcome)
	assert.Equal(t, []string{"a@b.com:wrong", "a@b.com:right"}, h.accounts.loginCalls)
	assert.True(t, h.ui.printed("Logging in as: a@b.com"))
}

func TestWizard_LoginFailedChangeEmail(t *testing.T) {
	h := newHarness(t)
	h.accounts.logins = []models.LoginResult{
		{StatusCode: http.StatusUnauthorized, Message: "Incorrect email or password"},
		{Token: "T", StatusCode: http.StatusOK},
	}

	h.script(say("2"), say("a@b.com"), say("secret"), say("3"), say("c@d.com"), say("secret"))

	outcome, err := h.wizard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, outcome)
	assert.Equal(t, []string{"a@b.com:secret", "c@d.com:secret"}, h.accounts.loginCalls)
	assert.Contains(t, h.ui.prompts, "New email")
}

func TestWizard_LoginFailedPasswordResetQuits(t *testing.T) {
	h := newHarness(t)
	h.accounts.logins = []models.LoginResult{
		{StatusCode: http.StatusUnauthorized, Message: "Incorrect email or password"},
	}

	h.script(say("2"), say("a@b.com"), say("secret"), say("2"))

	outcome, err := h.wizard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeQuit, outcome)
	assert.Equal(t, []string{"a@b.com"}, h.accounts.resetCalls)
	assert.True(t, h.ui.printed("Password reset email sent to a@b.com"))
}

func TestWizard_InterruptAtAnyPromptQuits(t *testing.T) {
	tests := []struct {
		name    string
		answers []answer
	}{
		{"main menu", []answer{interrupt()}},
		{"terms", []answer{say("1"), interrupt()}},
		{"email", []answer{say("1"), yes(), interrupt()}},
		{"login email", []answer{say("2"), interrupt()}},
		{"login password", []answer{say("2"), say("a@b.com"), interrupt()}},
		{"context cancelled", []answer{say("2"), {err: context.Canceled}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.script(tt.answers...)

			outcome, err := h.wizard.Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, models.OutcomeQuit, outcome)
			assert.Empty(t, h.cachedToken())
		})
	}
}

func TestWizard_InterruptDuringVerification(t *testing.T) {
	h := newHarness(t)
	h.accounts.logins = []models.LoginResult{{Token: "P", StatusCode: http.StatusForbidden}}

	h.script(say("2"), say("a@b.com"), say("secret"), interrupt())

	outcome, err := h.wizard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeQuit, outcome)
}

func TestWizard_Reverify(t *testing.T) {
	t.Run("verify now", func(t *testing.T) {
		h := newHarness(t)
		h.script(enter(), say("123456"))

		outcome, err := h.wizard.Reverify(context.Background(), "P")
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeSuccess, outcome)
		assert.Equal(t, "P", h.cachedToken())
	})

	t.Run("start over", func(t *testing.T) {
		h := newHarness(t)
		h.script(say("2"))

		outcome, err := h.wizard.Reverify(context.Background(), "P")
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeRestart, outcome)
	})

	t.Run("quit", func(t *testing.T) {
		h := newHarness(t)
		h.script(say("x"), say("q"))

		outcome, err := h.wizard.Reverify(context.Background(), "P")
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeQuit, outcome)
		assert.True(t, h.ui.printed("Please enter 1, 2, or q."))
	})

	t.Run("interrupted", func(t *testing.T) {
		h := newHarness(t)
		h.script(interrupt())

		outcome, err := h.wizard.Reverify(context.Background(), "P")
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeQuit, outcome)
	})

	t.Run("quit during verification", func(t *testing.T) {
		h := newHarness(t)
		h.script(enter(), say("quit"))

		outcome, err := h.wizard.Reverify(context.Background(), "P")
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeQuit, outcome)
		assert.Empty(t, h.cachedToken())
	})
}

func TestWizard_RunResetsFlowData(t *testing.T) {
	h := newHarness(t)
	h.accounts.logins = []models.LoginResult{{Token: "T", StatusCode: http.StatusOK}}

	h.script(say("2"), say("a@b.com"), say("secret"))
	_, err := h.wizard.Run(context.Background())
	require.NoError(t, err)

	h.script(say("2"), say("c@d.com"), say("secret"))
	_, err = h.wizard.Run(context.Background())
	require.NoError(t, err)

	// A fresh run asks for "Email", not "New email"
	assert.NotContains(t, h.ui.prompts, "New email")
}

func newPipedWizard(t *testing.T, accounts *fakeAccounts, input string) (*Wizard, *bytes.Buffer, *store.TokenCache) {
	t.Helper()

	var out bytes.Buffer
	cache := store.NewTokenCache(t.TempDir())
	term := ui.NewAccessibleTerminal(strings.NewReader(input), &out)

	return New(auth.NewUserAuthenticationClient(accounts, cache), store.NewRegistrationStore(t.TempDir()), term, ""), &out, cache
}

func TestWizard_PipedInputEndingEarlyQuits(t *testing.T) {
	accounts := newFakeAccounts()
	w, out, _ := newPipedWizard(t, accounts, "2\nada@example.com\n")

	done := make(chan struct{})
	var outcome models.WizardOutcome
	var err error
	go func() {
		defer close(done)
		outcome, err = w.Run(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("wizard did not stop at the end of input")
	}

	require.NoError(t, err)
	assert.Equal(t, models.OutcomeQuit, outcome)
	assert.Contains(t, out.String(), "Password")
	assert.NotContains(t, out.String(), "Email is required.")
	assert.Empty(t, accounts.loginCalls)
}

func TestWizard_PipedLogin(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.logins = []models.LoginResult{{Token: "T", StatusCode: http.StatusOK}}
	w, _, cache := newPipedWizard(t, accounts, "2\nada@example.com\nsecret\n")

	outcome, err := w.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, outcome)
	assert.Equal(t, []string{"ada@example.com:secret"}, accounts.loginCalls)

	token, _ := cache.Read()
	assert.Equal(t, "T", token)
}
