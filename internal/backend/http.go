package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"counseling/internal/apperr"
	"counseling/internal/role"
)

// HTTPClient calls a remote data service that speaks the same JSON shapes as Mock.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewHTTPClient creates a client with the given request timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) FetchDashboard(ctx context.Context, r *role.Role) (Dashboard, error) {
	path := "/dashboard"
	if r != nil {
		path += "?role=" + r.String()
	}
	var out Dashboard
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *HTTPClient) FetchTeacherDashboard(ctx context.Context) (TeacherDashboard, error) {
	var out TeacherDashboard
	err := c.do(ctx, http.MethodGet, "/dashboard/teacher", nil, &out)
	return out, err
}

func (c *HTTPClient) BookAppointment(ctx context.Context, req BookingRequest) (BookingResult, error) {
	var out BookingResult
	if err := c.do(ctx, http.MethodPost, "/appointments", req, &out); err != nil {
		return BookingResult{}, err
	}
	if !out.Success {
		return out, &apperr.ConflictError{Message: out.Message}
	}
	return out, nil
}

// Health checks if the data service is available.
func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &apperr.NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return statusError(method+" "+path, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &apperr.NetworkError{Op: method + " " + path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func statusError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(raw))
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		if payload.Message != "" {
			msg = payload.Message
		} else if payload.Error != "" {
			msg = payload.Error
		}
	}

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperr.Invalid("Invalid request", msg)
	case http.StatusConflict:
		return &apperr.ConflictError{Message: msg}
	}
	return &apperr.NetworkError{Op: op, Err: errors.New("unexpected status " + resp.Status + ": " + msg)}
}
