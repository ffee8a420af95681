package models

// RegistrationStep marks how far an interrupted registration got.
type RegistrationStep string

const (
	StepEmailValidation RegistrationStep = "email_validation"
)

// RegistrationRecord is the on-disk checkpoint of an in-flight registration.
type RegistrationRecord struct {
	Email string           `json:"email"`
	Step  RegistrationStep `json:"step"`
}

func (r RegistrationRecord) IsResumable() bool {
	return len(r.Email) > 0
}

// Profile is sent along with the registration request as additional_info.
type Profile struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Company         string `json:"company"`
	Role            string `json:"role"`
	UseCase         string `json:"use_case"`
	ContactViaEmail bool   `json:"contact_via_email"`

	AgreedTermsAndConditions                bool `json:"agreed_terms_and_cond"`
	AgreedPersonallyIdentifiableInformation bool `json:"agreed_personally_identifiable_information"`
}

// Registration is everything the account service needs to create a user.
type Registration struct {
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	PasswordConfirm string  `json:"password_confirm"`
	ValidationLink  string  `json:"validation_link"`
	Profile         Profile `json:"additional_info"`
}

type RegisterResult struct {
	Created bool
	Message string
	Token   string
}
