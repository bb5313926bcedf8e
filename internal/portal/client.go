package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/mitchellh/mapstructure"

	"studentportal/internal/models"
)

// Client talks to the portal API. The session credential lives in the
// cookie jar; the client itself holds no session state.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an API client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
	}, nil
}

// APIError is the failure half of a request result: the raw HTTP status and
// the server-supplied message, when one could be extracted from the body.
type APIError struct {
	StatusCode int
	StatusText string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d %s", e.StatusCode, e.StatusText)
}

// Signup creates an account.
func (c *Client) Signup(ctx context.Context, name, email, password string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/signup",
		&models.SignupRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return "", err
	}
	return extractMessage(body), nil
}

// Login establishes a session; the cookie jar keeps the credential.
func (c *Client) Login(ctx context.Context, email, password string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/login",
		&models.LoginRequest{Email: email, Password: password})
	return err
}

// Logout destroys the session. Best-effort.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/api/logout", nil)
	return err
}

// Dashboard fetches the student and the three course buckets.
func (c *Client) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/dashboard", nil)
	if err != nil {
		return nil, err
	}

	var dashboard models.Dashboard
	if err := json.Unmarshal(body, &dashboard); err != nil {
		return nil, fmt.Errorf("malformed dashboard response: %w", err)
	}
	return &dashboard, nil
}

// Enroll enrolls the student in the course and returns the server message.
func (c *Client) Enroll(ctx context.Context, courseID int) (string, error) {
	return c.courseAction(ctx, "/api/enroll", courseID)
}

// Disenroll removes the student's enrollment and returns the server message.
func (c *Client) Disenroll(ctx context.Context, courseID int) (string, error) {
	return c.courseAction(ctx, "/api/disenroll", courseID)
}

// MarkFinished marks the course finished and returns the server message.
func (c *Client) MarkFinished(ctx context.Context, courseID int) (string, error) {
	return c.courseAction(ctx, "/api/course/finish", courseID)
}

func (c *Client) courseAction(ctx context.Context, path string, courseID int) (string, error) {
	body, err := c.do(ctx, http.MethodPost, path, &models.CourseActionRequest{CourseID: courseID})
	if err != nil {
		return "", err
	}
	return extractMessage(body), nil
}

// do performs one request. A transport failure surfaces as a plain error;
// a non-2xx response surfaces as *APIError.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Message:    extractMessage(data),
		}
	}
	return data, nil
}

// extractMessage tolerantly pulls the "message" field out of a response
// body. Non-JSON bodies and bodies without a message yield an empty string.
func extractMessage(body []byte) string {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return ""
	}

	var out struct {
		Message string `mapstructure:"message"`
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return ""
	}
	if err := decoder.Decode(raw); err != nil {
		return ""
	}
	return out.Message
}
