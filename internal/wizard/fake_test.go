package wizard

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/priorlabs/tabpfn-cli/internal/password"
	"github.com/priorlabs/tabpfn-cli/internal/ui"
)

// answer is one scripted reply. An empty text picks the prompt's default.
type answer struct {
	text string
	err  error
}

func say(text string) answer { return answer{text: text} }
func yes() answer            { return answer{text: "y"} }
func no() answer             { return answer{text: "n"} }
func enter() answer          { return answer{} }
func interrupt() answer      { return answer{err: ui.ErrInterrupted} }

// scriptedUI replays answers in order and records everything shown.
type scriptedUI struct {
	t        *testing.T
	answers  []answer
	prompts  []string
	output   []string
	statuses []string
	failed   [][]password.Result
}

func newScriptedUI(t *testing.T, answers ...answer) *scriptedUI {
	return &scriptedUI{t: t, answers: answers}
}

func (s *scriptedUI) next(prompt string) answer {
	s.t.Helper()
	s.prompts = append(s.prompts, prompt)
	if len(s.answers) == 0 {
		s.t.Fatalf("unexpected prompt %q, script exhausted (prompts so far: %v)", prompt, s.prompts)
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a
}

func (s *scriptedUI) Input(ctx context.Context, title string, description string) (string, error) {
	a := s.next(title)
	return a.text, a.err
}

func (s *scriptedUI) Password(ctx context.Context, title string) (string, error) {
	a := s.next(title)
	return a.text, a.err
}

func (s *scriptedUI) Confirm(ctx context.Context, title string, description string, affirmative bool) (bool, error) {
	a := s.next(title)
	if a.err != nil {
		return false, a.err
	}
	if len(a.text) == 0 {
		return affirmative, nil
	}
	return a.text == "y", nil
}

func (s *scriptedUI) Select(ctx context.Context, title string, options []ui.Option, selected string) (string, error) {
	a := s.next(title)
	if a.err != nil {
		return "", a.err
	}
	if len(a.text) == 0 {
		return selected, nil
	}
	return a.text, nil
}

func (s *scriptedUI) Status(ctx context.Context, title string, action func(ctx context.Context) error) error {
	s.statuses = append(s.statuses, title)
	return action(ctx)
}

func (s *scriptedUI) Heading(title string)                             { s.output = append(s.output, title) }
func (s *scriptedUI) Step(number int, total int, title string)         { s.output = append(s.output, fmt.Sprintf("Step %d/%d - %s", number, total, title)) }
func (s *scriptedUI) Print(message string)                             { s.output = append(s.output, message) }
func (s *scriptedUI) Info(message string)                              { s.output = append(s.output, message) }
func (s *scriptedUI) Success(message string)                           { s.output = append(s.output, message) }
func (s *scriptedUI) Warn(message string)                              { s.output = append(s.output, message) }
func (s *scriptedUI) Fail(message string)                              { s.output = append(s.output, message) }
func (s *scriptedUI) Requirements(requirements []password.Requirement) { s.output = append(s.output, "Requirements:") }

func (s *scriptedUI) RequirementStatus(results []password.Result) {
	s.failed = append(s.failed, results)
}

func (s *scriptedUI) printed(fragment string) bool {
	for _, line := range s.output {
		if strings.Contains(line, fragment) {
			return true
		}
	}
	return false
}

func (s *scriptedUI) remaining() int {
	return len(s.answers)
}

// fakeAccounts is a scripted account service.
type fakeAccounts struct {
	token       string
	unreachable bool

	policy        []string
	invalidEmails map[string]string
	emailErr      error

	registerResult models.RegisterResult
	registered     []models.Registration

	// logins are returned in order; the last one repeats
	logins     []models.LoginResult
	loginCalls []string

	verifyCode  string
	verifyCalls int
	resendCalls int
	resetCalls  []string
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		policy:        []string{"Length(8)", "Uppercase(1)"},
		invalidEmails: map[string]string{},
		verifyCode:    "123456",
	}
}

func (f *fakeAccounts) Authorize(token string) { f.token = token }
func (f *fakeAccounts) ResetAuthorization()    { f.token = "" }
func (f *fakeAccounts) AccessToken() string    { return f.token }

func (f *fakeAccounts) ValidateConnection(ctx context.Context) bool {
	return !f.unreachable
}

func (f *fakeAccounts) ValidateToken(ctx context.Context, token string) (models.TokenStatus, error) {
	return models.TokenValid, nil
}

func (f *fakeAccounts) GetPasswordPolicy(ctx context.Context) ([]string, error) {
	return f.policy, nil
}

func (f *fakeAccounts) ValidateEmail(ctx context.Context, email string) (bool, string, error) {
	if f.emailErr != nil {
		return false, "", f.emailErr
	}
	if msg, invalid := f.invalidEmails[email]; invalid {
		return false, msg, nil
	}
	return true, "", nil
}

func (f *fakeAccounts) Register(ctx context.Context, registration models.Registration) (models.RegisterResult, error) {
	f.registered = append(f.registered, registration)
	return f.registerResult, nil
}

func (f *fakeAccounts) Login(ctx context.Context, email string, password string) (models.LoginResult, error) {
	f.loginCalls = append(f.loginCalls, email+":"+password)
	if len(f.logins) == 0 {
		return models.LoginResult{StatusCode: http.StatusUnauthorized, Message: "Incorrect email or password"}, nil
	}
	result := f.logins[0]
	if len(f.logins) > 1 {
		f.logins = f.logins[1:]
	}
	return result, nil
}

func (f *fakeAccounts) SendVerificationEmail(ctx context.Context, token string) (bool, string, error) {
	f.resendCalls++
	return true, "", nil
}

func (f *fakeAccounts) VerifyEmail(ctx context.Context, code string, token string) (bool, string, error) {
	f.verifyCalls++
	if code == f.verifyCode {
		return true, "", nil
	}
	return false, "Invalid verification code", nil
}

func (f *fakeAccounts) SendPasswordReset(ctx context.Context, email string) (bool, string, error) {
	f.resetCalls = append(f.resetCalls, email)
	return true, "", nil
}

func (f *fakeAccounts) GetGreetingMessages(ctx context.Context) ([]string, error) {
	return nil, nil
}
