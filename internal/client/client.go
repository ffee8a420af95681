package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/priorlabs/tabpfn-cli/internal/common"
	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrConnectivity wraps every failure to reach the service at all.
	ErrConnectivity = errors.New("TabPFN is inaccessible at the moment, please try again later")
	// ErrNotAuthorized is returned by calls that need an access token when
	// none has been set.
	ErrNotAuthorized = errors.New("service client is not initialized")
)

const (
	HeaderClient        = "X-Client"
	HeaderClientVersion = "X-Client-Version"
	HeaderRequestID     = "X-Request-ID"
)

const defaultTimeout = 30 * time.Second

type Options struct {
	// BaseURL is <protocol>://<host>:<port>.
	BaseURL   string
	Timeout   time.Duration
	Endpoints models.Endpoints
}

// ServiceClient talks to the TabPFN account, data and inference endpoints.
// It holds at most one access token, set with Authorize.
type ServiceClient struct {
	client    *resty.Client
	endpoints models.Endpoints
	token     string
}

var (
	_ models.AccountServiceImpl   = (*ServiceClient)(nil)
	_ models.DataServiceImpl      = (*ServiceClient)(nil)
	_ models.InferenceServiceImpl = (*ServiceClient)(nil)
)

func NewServiceClient(opts Options) *ServiceClient {

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logrus.WithFields(logrus.Fields{
		"url":     opts.BaseURL,
		"timeout": timeout,
	}).Debugln("Creating service client")

	client := resty.New().
		SetBaseURL(strings.TrimSuffix(opts.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("User-Agent", common.GetUserAgent()).
		SetHeader(HeaderClient, common.GetClientIdentifier().String()).
		SetHeader(HeaderClientVersion, common.GetVersion())

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader(HeaderRequestID, uuid.NewString())
		return nil
	})

	return &ServiceClient{
		client:    client,
		endpoints: opts.Endpoints.WithDefaults(),
	}
}

func (c *ServiceClient) Authorize(token string) {
	c.token = token
}

func (c *ServiceClient) ResetAuthorization() {
	c.token = ""
}

func (c *ServiceClient) AccessToken() string {
	return c.token
}

func (c *ServiceClient) IsAuthorized() bool {
	return len(c.token) > 0
}

// authorized returns a request carrying the current token, or
// ErrNotAuthorized.
func (c *ServiceClient) authorized() (*resty.Request, error) {
	if !c.IsAuthorized() {
		return nil, ErrNotAuthorized
	}
	return c.client.R().SetAuthToken(c.token), nil
}

func connectivityError(err error) error {
	return fmt.Errorf("%w: %w", ErrConnectivity, err)
}

// errorDetail extracts the service's error message from a response body,
// falling back to the HTTP status.
func errorDetail(resp *resty.Response) string {
	var errorResponse models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &errorResponse); err == nil {
		if msg := errorResponse.String(); len(msg) > 0 {
			return msg
		}
	}
	return resp.Status()
}

func responseError(operation string, resp *resty.Response) error {

	detail := errorDetail(resp)

	logrus.WithFields(logrus.Fields{
		"operation": operation,
		"status":    resp.StatusCode(),
		"detail":    detail,
	}).Errorln("Request failed")

	return fmt.Errorf("failed to %s: %s", operation, detail)
}
