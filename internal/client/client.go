// Package client is the typed HTTP client of the portfolio API, together
// with the presentation-side fallbacks used when a call fails.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/pngalemo/portfolio/internal/models"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	// Message is the server's "message" field, if the body carried one.
	Message string
	// Detail is the server's "error" field, if any.
	Detail string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return fmt.Sprintf("server error %d: %s", e.StatusCode, msg)
}

// Client calls the API rooted at BaseURL, e.g. "http://localhost:5001/api".
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client with its own http.Client bounded by timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient creates a Client over hc.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// do sends in (if non-nil) as JSON and decodes a 2xx body into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if addr := forwardedFor(ctx); addr != "" {
		req.Header.Set("X-Forwarded-For", addr)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	se := &StatusError{StatusCode: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		se.Message, se.Detail = payload.Message, payload.Error
	} else {
		se.Message = strings.TrimSpace(string(raw))
	}
	return se
}

// About fetches the profile.
func (c *Client) About(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodGet, "/about", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateAbout upserts the supplied profile fields.
func (c *Client) UpdateAbout(ctx context.Context, patch models.ProfilePatch) (*models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodPut, "/about", patch, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Projects lists the projects.
func (c *Client) Projects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Project fetches one project.
func (c *Client) Project(ctx context.Context, id string) (*models.Project, error) {
	var p models.Project
	if err := c.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, p models.Project) (*models.Project, error) {
	var created models.Project
	if err := c.do(ctx, http.MethodPost, "/projects", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProject merges fields over the stored project. fields is any value
// that encodes to a JSON object, so partial updates are possible.
func (c *Client) UpdateProject(ctx context.Context, id string, fields any) (*models.Project, error) {
	var p models.Project
	if err := c.do(ctx, http.MethodPut, "/projects/"+url.PathEscape(id), fields, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), nil, nil)
}

// Resume lists resume items, optionally restricted to category.
func (c *Client) Resume(ctx context.Context, category models.Category) ([]models.ResumeItem, error) {
	path := "/resume"
	if category != "" {
		path += "?" + url.Values{"category": {string(category)}}.Encode()
	}
	var items []models.ResumeItem
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ResumeItem fetches one resume item.
func (c *Client) ResumeItem(ctx context.Context, id string) (*models.ResumeItem, error) {
	var item models.ResumeItem
	if err := c.do(ctx, http.MethodGet, "/resume/"+url.PathEscape(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateResumeItem creates a resume item.
func (c *Client) CreateResumeItem(ctx context.Context, item models.ResumeItem) (*models.ResumeItem, error) {
	var created models.ResumeItem
	if err := c.do(ctx, http.MethodPost, "/resume", item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateResumeItem merges fields over the stored item.
func (c *Client) UpdateResumeItem(ctx context.Context, id string, fields any) (*models.ResumeItem, error) {
	var item models.ResumeItem
	if err := c.do(ctx, http.MethodPut, "/resume/"+url.PathEscape(id), fields, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteResumeItem deletes a resume item.
func (c *Client) DeleteResumeItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/resume/"+url.PathEscape(id), nil, nil)
}

// Contact submits the contact form. A rejected submission is returned as a
// *StatusError whose Message is the server's explanation.
func (c *Client) Contact(ctx context.Context, sub models.ContactSubmission) (*models.ContactResult, error) {
	var res models.ContactResult
	if err := c.do(ctx, http.MethodPost, "/contact", sub, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
