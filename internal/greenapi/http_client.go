package greenapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oggyb/greenapi-notifier/internal/domain/device"
)

const (
	methodGetContacts   = "getContacts"
	methodSendMessage   = "sendMessage"
	methodSendFileByURL = "sendFileByUrl"
)

var _ Client = (*HTTPClient)(nil)

// HTTPClient talks to the Green API over HTTPS.
type HTTPClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewHTTPClient creates a client for the given API host. A zero timeout
// falls back to 10 seconds.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// withTimeout wraps the context with a timeout if it doesn't already have one.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

func (c *HTTPClient) endpoint(creds device.Credentials, method string) string {
	return fmt.Sprintf("%s/waInstance%s/%s/%s",
		c.baseURL, url.PathEscape(creds.InstanceID), method, url.PathEscape(creds.APIToken))
}

// GetContacts implements Client.GetContacts.
func (c *HTTPClient) GetContacts(ctx context.Context, creds device.Credentials) ([]Contact, error) {
	raw, err := c.do(ctx, creds, http.MethodGet, methodGetContacts, nil)
	if err != nil {
		return nil, err
	}

	var contacts []Contact
	if err := json.Unmarshal(raw, &contacts); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s response: %w", ErrRequest, methodGetContacts, err)
	}
	return contacts, nil
}

// SendMessage implements Client.SendMessage.
func (c *HTTPClient) SendMessage(ctx context.Context, creds device.Credentials, req SendMessageRequest) (*SendResponse, error) {
	return c.send(ctx, creds, methodSendMessage, req)
}

// SendFileByURL implements Client.SendFileByURL.
func (c *HTTPClient) SendFileByURL(ctx context.Context, creds device.Credentials, req SendFileByURLRequest) (*SendResponse, error) {
	return c.send(ctx, creds, methodSendFileByURL, req)
}

func (c *HTTPClient) send(ctx context.Context, creds device.Credentials, method string, payload any) (*SendResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("greenapi: failed to marshal %s payload: %w", method, err)
	}

	raw, err := c.do(ctx, creds, http.MethodPost, method, body)
	if err != nil {
		return nil, err
	}

	resp := &SendResponse{Raw: string(raw)}
	if err := json.Unmarshal(raw, resp); err != nil {
		return resp, fmt.Errorf("%w: failed to parse %s response: %w", ErrRequest, method, err)
	}
	return resp, nil
}

// do performs one request and returns the body of a 2xx response.
func (c *HTTPClient) do(ctx context.Context, creds device.Credentials, httpMethod, method string, body []byte) ([]byte, error) {
	if creds.InstanceID == "" || creds.APIToken == "" {
		return nil, ErrMissingCredentials
	}

	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, httpMethod, c.endpoint(creds, method), reader)
	if err != nil {
		return nil, fmt.Errorf("greenapi: failed to create %s request: %w", method, withoutURL(err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = withoutURL(err)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: %s timeout or canceled: %w", ErrRequest, method, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrRequest, method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s response: %w", ErrRequest, method, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Method: method, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	return raw, nil
}

// withoutURL drops the request URL from transport errors. The URL ends with
// the API token.
func withoutURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
