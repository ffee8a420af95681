package models

// Endpoints holds the request paths of the account and inference service,
// relative to the server base URL.
type Endpoints struct {
	Root                     string `json:"root" yaml:"root" mapstructure:"root"`
	ProtectedRoot            string `json:"protected_root" yaml:"protected_root" mapstructure:"protected_root"`
	PasswordPolicy           string `json:"password_policy" yaml:"password_policy" mapstructure:"password_policy"`
	ValidateEmail            string `json:"validate_email" yaml:"validate_email" mapstructure:"validate_email"`
	Register                 string `json:"register" yaml:"register" mapstructure:"register"`
	Login                    string `json:"login" yaml:"login" mapstructure:"login"`
	SendVerificationEmail    string `json:"send_verification_email" yaml:"send_verification_email" mapstructure:"send_verification_email"`
	VerifyEmail              string `json:"verify_email" yaml:"verify_email" mapstructure:"verify_email"`
	SendResetPasswordEmail   string `json:"send_reset_password_email" yaml:"send_reset_password_email" mapstructure:"send_reset_password_email"`
	RetrieveGreetingMessages string `json:"retrieve_greeting_messages" yaml:"retrieve_greeting_messages" mapstructure:"retrieve_greeting_messages"`
	GetAPIUsage              string `json:"get_api_usage" yaml:"get_api_usage" mapstructure:"get_api_usage"`
	GetDataSummary           string `json:"get_data_summary" yaml:"get_data_summary" mapstructure:"get_data_summary"`
	DownloadAllData          string `json:"download_all_data" yaml:"download_all_data" mapstructure:"download_all_data"`
	DeleteDataset            string `json:"delete_dataset" yaml:"delete_dataset" mapstructure:"delete_dataset"`
	DeleteAllDatasets        string `json:"delete_all_datasets" yaml:"delete_all_datasets" mapstructure:"delete_all_datasets"`
	DeleteUserAccount        string `json:"delete_user_account" yaml:"delete_user_account" mapstructure:"delete_user_account"`
	UploadTrainSet           string `json:"upload_train_set" yaml:"upload_train_set" mapstructure:"upload_train_set"`
	Predict                  string `json:"predict" yaml:"predict" mapstructure:"predict"`
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		Root:                     "/",
		ProtectedRoot:            "/protected/",
		PasswordPolicy:           "/auth/password_policy/",
		ValidateEmail:            "/auth/validate_email/",
		Register:                 "/auth/register/",
		Login:                    "/auth/login/",
		SendVerificationEmail:    "/auth/send_verification_email/",
		VerifyEmail:              "/auth/verify_email/",
		SendResetPasswordEmail:   "/auth/send_reset_password_email/",
		RetrieveGreetingMessages: "/retrieve_greeting_messages/",
		GetAPIUsage:              "/get_api_usage/",
		GetDataSummary:           "/get_data_summary/",
		DownloadAllData:          "/download_all_data/",
		DeleteDataset:            "/delete_dataset/",
		DeleteAllDatasets:        "/delete_all_datasets/",
		DeleteUserAccount:        "/delete_user_account/",
		UploadTrainSet:           "/fit/",
		Predict:                  "/predict/",
	}
}

// WithDefaults fills every empty path from DefaultEndpoints.
func (e Endpoints) WithDefaults() Endpoints {
	d := DefaultEndpoints()
	fill := func(v *string, def string) {
		if len(*v) == 0 {
			*v = def
		}
	}
	fill(&e.Root, d.Root)
	fill(&e.ProtectedRoot, d.ProtectedRoot)
	fill(&e.PasswordPolicy, d.PasswordPolicy)
	fill(&e.ValidateEmail, d.ValidateEmail)
	fill(&e.Register, d.Register)
	fill(&e.Login, d.Login)
	fill(&e.SendVerificationEmail, d.SendVerificationEmail)
	fill(&e.VerifyEmail, d.VerifyEmail)
	fill(&e.SendResetPasswordEmail, d.SendResetPasswordEmail)
	fill(&e.RetrieveGreetingMessages, d.RetrieveGreetingMessages)
	fill(&e.GetAPIUsage, d.GetAPIUsage)
	fill(&e.GetDataSummary, d.GetDataSummary)
	fill(&e.DownloadAllData, d.DownloadAllData)
	fill(&e.DeleteDataset, d.DeleteDataset)
	fill(&e.DeleteAllDatasets, d.DeleteAllDatasets)
	fill(&e.DeleteUserAccount, d.DeleteUserAccount)
	fill(&e.UploadTrainSet, d.UploadTrainSet)
	fill(&e.Predict, d.Predict)
	return e
}
