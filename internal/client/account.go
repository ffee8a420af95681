package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/sirupsen/logrus"
)

func (c *ServiceClient) ValidateConnection(ctx context.Context) bool {

	resp, err := c.client.R().
		SetContext(ctx).
		Get(c.endpoints.Root)

	if err != nil {
		logrus.WithError(err).Debugln("Service is not reachable")
		return false
	}

	return resp.StatusCode() == http.StatusOK
}

func (c *ServiceClient) ValidateToken(ctx context.Context, token string) (models.TokenStatus, error) {

	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get(c.endpoints.ProtectedRoot)

	if err != nil {
		return models.TokenInvalid, connectivityError(err)
	}

	var status models.TokenStatus
	switch resp.StatusCode() {
	case http.StatusOK:
		status = models.TokenValid
	case http.StatusForbidden:
		status = models.TokenUnverified
	default:
		status = models.TokenInvalid
	}

	logrus.WithFields(logrus.Fields{
		"status": status,
	}).Debugln("Validated access token")

	return status, nil
}

func (c *ServiceClient) GetPasswordPolicy(ctx context.Context) ([]string, error) {

	resp, err := c.client.R().
		SetContext(ctx).
		Get(c.endpoints.PasswordPolicy)

	if err != nil {
		return nil, connectivityError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, responseError("get password policy", resp)
	}

	var policy struct {
		Requirements []string `json:"requirements"`
	}
	if err := json.Unmarshal(resp.Body(), &policy); err != nil {
		return nil, err
	}

	return policy.Requirements, nil
}

func (c *ServiceClient) ValidateEmail(ctx context.Context, email string) (bool, string, error) {

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email}).
		Post(c.endpoints.ValidateEmail)

	if err != nil {
		return false, "", connectivityError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return false, errorDetail(resp), nil
	}

	return true, "", nil
}

func (c *ServiceClient) Register(ctx context.Context, registration models.Registration) (models.RegisterResult, error) {

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(registration).
		Post(c.endpoints.Register)

	if err != nil {
		return models.RegisterResult{}, connectivityError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return models.RegisterResult{
			Created: false,
			Message: errorDetail(resp),
		}, nil
	}

	var created struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	if err := json.Unmarshal(resp.Body(), &created); err != nil {
		return models.RegisterResult{}, err
	}

	return models.RegisterResult{
		Created: true,
		Message: created.Message,
		Token:   created.Token,
	}, nil
}

// Login posts an OAuth2 password form. Rejections are reported through the
// result's status code rather than as an error.
func (c *ServiceClient) Login(ctx context.Context, email string, password string) (models.LoginResult, error) {

	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": email,
			"password": password,
		}).
		Post(c.endpoints.Login)

	if err != nil {
		return models.LoginResult{}, connectivityError(err)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		Detail      string `json:"detail"`
	}
	// Error bodies are not always JSON
	_ = json.Unmarshal(resp.Body(), &body)

	result := models.LoginResult{
		StatusCode: resp.StatusCode(),
		Message:    body.Detail,
	}

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusForbidden:
		// A 403 still carries the token needed to resend the verification email
		result.Token = body.AccessToken
	}

	if !result.Succeeded() && len(result.Message) == 0 {
		result.Message = resp.Status()
	}

	logrus.WithFields(logrus.Fields{
		"status": result.StatusCode,
	}).Debugln("Login request completed")

	return result, nil
}

func (c *ServiceClient) SendVerificationEmail(ctx context.Context, token string) (bool, string, error) {

	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		Post(c.endpoints.SendVerificationEmail)

	if err != nil {
		return false, "", connectivityError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return false, errorDetail(resp), nil
	}

	return true, "", nil
}

func (c *ServiceClient) VerifyEmail(ctx context.Context, code string, token string) (bool, string, error) {

	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(map[string]string{"token": code}).
		Post(c.endpoints.VerifyEmail)

	if err != nil {
		return false, "", connectivityError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return false, errorDetail(resp), nil
	}

	return true, "", nil
}

func (c *ServiceClient) SendPasswordReset(ctx context.Context, email string) (bool, string, error) {

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email}).
		Post(c.endpoints.SendResetPasswordEmail)

	if err != nil {
		return false, "", connectivityError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return false, errorDetail(resp), nil
	}

	return true, "", nil
}

// GetGreetingMessages returns an empty list whenever the service has nothing
// to say or refuses to say it.
func (c *ServiceClient) GetGreetingMessages(ctx context.Context) ([]string, error) {

	req, err := c.authorized()
	if err != nil {
		return nil, err
	}

	resp, err := req.
		SetContext(ctx).
		Get(c.endpoints.RetrieveGreetingMessages)

	if err != nil {
		return nil, connectivityError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode(),
		}).Debugln("No greeting messages available")
		return []string{}, nil
	}

	var greeting struct {
		Messages []string `json:"messages"`
	}
	if err := json.Unmarshal(resp.Body(), &greeting); err != nil {
		return []string{}, nil
	}

	return greeting.Messages, nil
}
