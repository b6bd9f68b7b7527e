// Package client talks to the devport API on behalf of one logged-in
// identity. It implements the inquirysync store ports so that the sync
// engine can run in any Go client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/devport/portfolio/internal/core/domain"
	"github.com/devport/portfolio/internal/inquirysync"
)

const defaultTimeout = 10 * time.Second

// Client is an HTTP store bound to one identity's bearer token.
type Client struct {
	base  string
	token string
	role  domain.Role
	http  *http.Client
}

var (
	_ inquirysync.Store      = (*Client)(nil)
	_ inquirysync.InboxStore = (*Client)(nil)
)

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for the API at baseURL. role selects the admin or the
// client-scoped endpoints.
func New(baseURL, token string, role domain.Role, opts ...Option) *Client {
	c := &Client{
		base:  strings.TrimRight(baseURL, "/"),
		token: token,
		role:  role,
		http:  &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) admin() bool { return c.role == domain.RoleAdmin }

func (c *Client) inquiriesPath() string {
	if c.admin() {
		return "/api/admin/inquiries"
	}
	return "/api/dashboard/orders"
}

// ListInquiries lists inquiries. Clients always get their own; for admins a
// non-empty clientID filters the list.
func (c *Client) ListInquiries(ctx context.Context, clientID string) ([]domain.ServiceInquiry, error) {
	path := c.inquiriesPath()
	if c.admin() && clientID != "" {
		path += "?client_id=" + url.QueryEscape(clientID)
	}
	var out []domain.ServiceInquiry
	if err := c.do(ctx, http.MethodGet, path, nil, &out, domain.ErrInquiryNotFound); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListMessages(ctx context.Context, inquiryID string) ([]domain.InquiryMessage, error) {
	var out []domain.InquiryMessage
	path := c.inquiriesPath() + "/" + url.PathEscape(inquiryID) + "/messages"
	if err := c.do(ctx, http.MethodGet, path, nil, &out, domain.ErrInquiryNotFound); err != nil {
		return nil, err
	}
	return out, nil
}

// AppendMessage posts msg.Text; the server stamps sender, id and time.
func (c *Client) AppendMessage(ctx context.Context, msg domain.InquiryMessage) error {
	path := c.inquiriesPath() + "/" + url.PathEscape(msg.InquiryID) + "/messages"
	return c.do(ctx, http.MethodPost, path, map[string]string{"text": msg.Text}, nil, domain.ErrInquiryNotFound)
}

func (c *Client) UpdateStatus(ctx context.Context, inquiryID string, status domain.InquiryStatus) error {
	if !c.admin() {
		return domain.ErrForbidden
	}
	path := "/api/admin/inquiries/" + url.PathEscape(inquiryID) + "/status"
	return c.do(ctx, http.MethodPatch, path, map[string]string{"status": string(status)}, nil, domain.ErrInquiryNotFound)
}

func (c *Client) DeleteInquiry(ctx context.Context, inquiryID string) error {
	if !c.admin() {
		return domain.ErrForbidden
	}
	return c.do(ctx, http.MethodDelete, "/api/admin/inquiries/"+url.PathEscape(inquiryID), nil, nil, domain.ErrInquiryNotFound)
}

func (c *Client) ListContactMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	if !c.admin() {
		return nil, domain.ErrForbidden
	}
	var out []domain.ContactMessage
	if err := c.do(ctx, http.MethodGet, "/api/admin/messages", nil, &out, domain.ErrMessageNotFound); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteContactMessage(ctx context.Context, id string) error {
	if !c.admin() {
		return domain.ErrForbidden
	}
	return c.do(ctx, http.MethodDelete, "/api/admin/messages/"+url.PathEscape(id), nil, nil, domain.ErrMessageNotFound)
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, notFound error) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return statusError(resp, notFound)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// statusError maps an API error response back onto the domain errors.
func statusError(resp *http.Response, notFound error) error {
	var eb errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&eb)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return notFound
	}
	if eb.Error == "" {
		eb.Error = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("api status %d: %s", resp.StatusCode, eb.Error)
}
