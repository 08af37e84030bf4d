// Package client is a typed HTTP client for the board API.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"issueboard/internal/api"
	"issueboard/internal/apierror"

	"github.com/goccy/go-json"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/register", req, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// Login exchanges credentials for a token and keeps it.
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/login", req, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// Me returns the account the current token belongs to.
func (c *Client) Me(ctx context.Context) (*api.User, error) {
	var user api.User
	if err := c.do(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchBoard returns the caller's whole board.
func (c *Client) FetchBoard(ctx context.Context) (api.BoardSnapshot, error) {
	var snapshot api.BoardSnapshot
	err := c.do(ctx, http.MethodGet, "/board", nil, &snapshot)
	return snapshot, err
}

func (c *Client) CreateColumn(ctx context.Context, name string) (*api.Column, error) {
	var column api.Column
	if err := c.do(ctx, http.MethodPost, "/columns", api.CreateColumnRequest{Name: name}, &column); err != nil {
		return nil, err
	}
	return &column, nil
}

func (c *Client) RenameColumn(ctx context.Context, id int64, name string) (*api.Column, error) {
	var column api.Column
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/columns/%d", id), api.RenameColumnRequest{Name: name}, &column); err != nil {
		return nil, err
	}
	return &column, nil
}

func (c *Client) DeleteColumn(ctx context.Context, id int64) (*api.DeleteColumnResponse, error) {
	var resp api.DeleteColumnResponse
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/columns/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateIssue(ctx context.Context, req api.CreateIssueRequest) (*api.Issue, error) {
	var issue api.Issue
	if err := c.do(ctx, http.MethodPost, "/issues", req, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (c *Client) UpdateIssue(ctx context.Context, id int64, req api.UpdateIssueRequest) (*api.Issue, error) {
	var issue api.Issue
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/issues/%d", id), req, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (c *Client) DeleteIssue(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/issues/%d", id), nil, nil)
}

// MoveIssue asks the server to reassign an issue to targetColumnID.
func (c *Client) MoveIssue(ctx context.Context, issueID, targetColumnID, sourceColumnID int64) error {
	req := api.MoveIssueRequest{TargetColumnID: targetColumnID, SourceColumnID: sourceColumnID}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/issues/%d/move", issueID), req, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return apierror.Wrap(apierror.Internal, "encode request", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return apierror.Wrap(apierror.Internal, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apierror.Wrap(apierror.Internal, fmt.Sprintf("%s %s", method, path), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierror.Wrap(apierror.Internal, "read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr api.ErrorResponse
		_ = json.Unmarshal(data, &apiErr)
		return apierror.FromStatus(resp.StatusCode, apiErr.Error)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apierror.Wrap(apierror.Internal, "decode response", err)
	}
	return nil
}
