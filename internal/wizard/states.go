package wizard

// State names a step of the onboarding flow.
type State string

const (
	StateResumeCheck      State = "resume_check"
	StateMainMenu         State = "main_menu"
	StateRegisterTerms    State = "register_terms"
	StateRegisterEmail    State = "register_email"
	StateRegisterPassword State = "register_password"
	StateRegisterPrivacy  State = "register_privacy"
	StateRegisterProfile  State = "register_profile"
	StateRegisterConsent  State = "register_consent"
	StateRegisterSubmit   State = "register_submit"
	StateLoginEmail       State = "login_email"
	StateLoginPassword    State = "login_password"
	StateLoginFailed      State = "login_failed"
	StatePasswordReset    State = "password_reset"
	StateVerifyEmail      State = "verify_email"
	StateLoginAfterVerify State = "login_after_verify"
	StateSuccess          State = "success"
	StateQuit             State = "quit"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsTerminal() bool {
	return s == StateSuccess || s == StateQuit
}

// transitions lists every state a step may hand over to. Anything else is a
// programming error and stops the wizard.
var transitions = map[State][]State{
	StateResumeCheck:      {StateMainMenu, StateRegisterPassword, StateQuit},
	StateMainMenu:         {StateRegisterTerms, StateLoginEmail, StateQuit},
	StateRegisterTerms:    {StateRegisterEmail, StateQuit},
	StateRegisterEmail:    {StateRegisterPassword, StateQuit},
	StateRegisterPassword: {StateRegisterPrivacy, StateQuit},
	StateRegisterPrivacy:  {StateRegisterProfile, StateQuit},
	StateRegisterProfile:  {StateRegisterConsent, StateQuit},
	StateRegisterConsent:  {StateRegisterSubmit, StateQuit},
	StateRegisterSubmit:   {StateVerifyEmail, StateQuit},
	StateLoginEmail:       {StateLoginPassword, StateQuit},
	StateLoginPassword:    {StateSuccess, StateVerifyEmail, StateLoginFailed, StateQuit},
	StateLoginFailed:      {StateLoginPassword, StatePasswordReset, StateLoginEmail, StateQuit},
	StatePasswordReset:    {StateQuit},
	StateVerifyEmail:      {StateSuccess, StateLoginAfterVerify, StateQuit},
	StateLoginAfterVerify: {StateSuccess, StateLoginFailed, StateQuit},
}

func canTransition(from State, to State) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
