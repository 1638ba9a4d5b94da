// Package client is a typed Go client for the AppointHub REST API,
// mirroring the contract the SPA consumes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"appointhub-api/internal/model"
)

// Config configures the API client.
type Config struct {
	BaseURL string // e.g. "http://localhost:8080"
	Timeout time.Duration
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
	}
}

// SetToken installs a session token obtained out of band. Login sets it
// automatically.
func (c *Client) SetToken(tok string) { c.token = tok }

// APIError is a non-2xx response decoded from the {"error": ...} body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	var out struct {
		User *model.User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/register",
		map[string]string{"name": name, "email": email, "password": password}, &out)
	return out.User, err
}

// Login authenticates and remembers the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	var out struct {
		Token string      `json:"token"`
		User  *model.User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.Token
	return out.User, nil
}

func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var out struct {
		User *model.User `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out)
	return out.User, err
}

func (c *Client) Appointments(ctx context.Context) ([]model.Appointment, error) {
	var out struct {
		Appointments []model.Appointment `json:"appointments"`
	}
	err := c.do(ctx, http.MethodGet, "/api/appointments", nil, &out)
	return out.Appointments, err
}

func (c *Client) Appointment(ctx context.Context, id string) (*model.Appointment, error) {
	var out struct {
		Appointment *model.Appointment `json:"appointment"`
	}
	err := c.do(ctx, http.MethodGet, "/api/appointments/"+id, nil, &out)
	return out.Appointment, err
}

type CreateAppointment struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
}

func (c *Client) CreateAppointment(ctx context.Context, in CreateAppointment) (*model.Appointment, error) {
	var out struct {
		Appointment *model.Appointment `json:"appointment"`
	}
	err := c.do(ctx, http.MethodPost, "/api/appointments", in, &out)
	return out.Appointment, err
}

// UpdateAppointment carries a partial patch; nil fields are left alone.
type UpdateAppointment struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Date        *time.Time    `json:"date,omitempty"`
	Status      *model.Status `json:"status,omitempty"`
}

func (c *Client) UpdateAppointment(ctx context.Context, id string, patch UpdateAppointment) (*model.Appointment, error) {
	var out struct {
		Appointment *model.Appointment `json:"appointment"`
	}
	err := c.do(ctx, http.MethodPut, "/api/appointments/"+id, patch, &out)
	return out.Appointment, err
}

func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/appointments/"+id, nil, nil)
}

func (c *Client) Stats(ctx context.Context) (*model.Stats, error) {
	var out struct {
		Stats *model.Stats `json:"stats"`
	}
	err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, &out)
	return out.Stats, err
}

// AuditLogs fetches up to 100 recent entries; filter "" or "all" means no
// action filter.
func (c *Client) AuditLogs(ctx context.Context, action string) ([]model.AuditLog, error) {
	path := "/api/admin/audit"
	if action != "" && action != "all" {
		path += "?action=" + url.QueryEscape(action)
	}
	var out struct {
		Logs []model.AuditLog `json:"logs"`
	}
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out.Logs, err
}
