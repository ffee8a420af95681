package models

// Session is the process-wide client state. It is produced by the session
// bootstrap and handed back to callers; nothing persists it.
type Session struct {
	Initialized bool `json:"initialized" yaml:"initialized"`
	UseServer   bool `json:"use_server" yaml:"use_server"`
}

func (s Session) IsReady() bool {
	return s.Initialized && s.UseServer
}

// WizardOutcome is the result of a single run of the login/registration wizard.
type WizardOutcome string

const (
	OutcomeSuccess WizardOutcome = "success"
	OutcomeQuit    WizardOutcome = "quit"
	OutcomeRestart WizardOutcome = "restart"
)

func (o WizardOutcome) String() string {
	return string(o)
}
