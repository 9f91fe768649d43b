// Package apiclient talks to the external portfolio REST backend.
//
// One Client is built at startup from the configured base URL and shared by
// every request. Reads are plain GETs that unwrap the backend's envelope
// ({"data": ...}, {"techs": [...]} and so on); writes send a multipart
// Payload. A non-2xx answer becomes an *apperror.AppError of kind
// ErrUpstream carrying the backend's "message" field, so screens can show it
// verbatim.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sakif/portfolio-site/internal/apperror"
	"github.com/sakif/portfolio-site/internal/model"
)

// maxErrorBody caps how much of a failed response is read looking for a message.
const maxErrorBody = 64 << 10

// Config configures a Client.
type Config struct {
	BaseURL   string            // e.g. "http://localhost:3000/api", no trailing slash
	LoginPath string            // path of the authentication endpoint, e.g. "/auth/login"
	Timeout   time.Duration     // zero means no client-side timeout
	Headers   map[string]string // extra headers sent on every request
}

// Client is the configured HTTP client for the portfolio backend.
// It is safe for concurrent use.
type Client struct {
	baseURL   string
	loginPath string
	http      *http.Client
	headers   http.Header
	logger    *slog.Logger
}

// New builds a Client. Accept: application/json is always sent.
func New(cfg Config, logger *slog.Logger) *Client {
	headers := make(http.Header)
	headers.Set("Accept", "application/json")
	for k, v := range cfg.Headers {
		headers.Set(k, v)
	}

	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = "/auth/login"
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		loginPath: loginPath,
		http:      &http.Client{Timeout: cfg.Timeout},
		headers:   headers,
		logger:    logger,
	}
}

// request describes one call to the backend.
type request struct {
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
}

// do sends req and decodes a successful JSON response into out (when out is
// non-nil). Failures are wrapped with the method and path.
func (c *Client) do(ctx context.Context, req request, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, req.body)
	if err != nil {
		return fmt.Errorf("apiclient: building %s %s: %w", req.method, req.path, err)
	}

	for k, vs := range c.headers {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("apiclient: %s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("backend call",
		slog.String("method", req.method),
		slog.String("path", req.path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("apiclient: %s %s: %w", req.method, req.path, upstreamError(resp))
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("apiclient: decoding %s %s: %w", req.method, req.path, err)
	}
	return nil
}

// upstreamError reads the backend's {"message": "..."} body if there is one.
func upstreamError(resp *http.Response) *apperror.AppError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Message string `json:"message"`
	}
	if len(bytes.TrimSpace(body)) > 0 {
		_ = json.Unmarshal(body, &payload)
	}
	return apperror.Upstream(resp.StatusCode, payload.Message)
}

// send issues a multipart write.
func (c *Client) send(ctx context.Context, method, path, token string, p *Payload) error {
	if p == nil {
		p = NewPayload()
	}
	body, contentType, err := p.Encode()
	if err != nil {
		return err
	}
	c.logger.Debug("sending form",
		slog.String("method", method),
		slog.String("path", path),
		slog.Any("fields", p.Keys()),
	)
	return c.do(ctx, request{
		method:      method,
		path:        path,
		token:       token,
		body:        body,
		contentType: contentType,
	}, nil)
}

func itemPath(collection string, id int64) string {
	return "/" + collection + "/" + strconv.FormatInt(id, 10)
}

// Profile

// GetProfile fetches the singleton profile.
func (c *Client) GetProfile(ctx context.Context) (*model.Profile, error) {
	var env struct {
		Data model.Profile `json:"data"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/profile"}, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// UpdateProfile replaces the profile with the multipart payload p.
func (c *Client) UpdateProfile(ctx context.Context, token string, p *Payload) error {
	return c.send(ctx, http.MethodPut, "/profile", token, p)
}

// Techs

func (c *Client) ListTechs(ctx context.Context) ([]model.Tech, error) {
	var env struct {
		Techs []model.Tech `json:"techs"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/techs"}, &env); err != nil {
		return nil, err
	}
	return env.Techs, nil
}

func (c *Client) CreateTech(ctx context.Context, token string, p *Payload) error {
	return c.send(ctx, http.MethodPost, "/techs", token, p)
}

func (c *Client) UpdateTech(ctx context.Context, token string, id int64, p *Payload) error {
	return c.send(ctx, http.MethodPut, itemPath("techs", id), token, p)
}

func (c *Client) DeleteTech(ctx context.Context, token string, id int64) error {
	return c.do(ctx, request{method: http.MethodDelete, path: itemPath("techs", id), token: token}, nil)
}

// Experiences

func (c *Client) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	var env struct {
		Experiences []model.Experience `json:"experiences"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/experiences"}, &env); err != nil {
		return nil, err
	}
	return env.Experiences, nil
}

func (c *Client) CreateExperience(ctx context.Context, token string, p *Payload) error {
	return c.send(ctx, http.MethodPost, "/experiences", token, p)
}

func (c *Client) UpdateExperience(ctx context.Context, token string, id int64, p *Payload) error {
	return c.send(ctx, http.MethodPut, itemPath("experiences", id), token, p)
}

func (c *Client) DeleteExperience(ctx context.Context, token string, id int64) error {
	return c.do(ctx, request{method: http.MethodDelete, path: itemPath("experiences", id), token: token}, nil)
}

// Projects

func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var env struct {
		Projects []model.Project `json:"projects"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/projects"}, &env); err != nil {
		return nil, err
	}
	return env.Projects, nil
}

func (c *Client) CreateProject(ctx context.Context, token string, p *Payload) error {
	return c.send(ctx, http.MethodPost, "/projects", token, p)
}

func (c *Client) UpdateProject(ctx context.Context, token string, id int64, p *Payload) error {
	return c.send(ctx, http.MethodPut, itemPath("projects", id), token, p)
}

func (c *Client) DeleteProject(ctx context.Context, token string, id int64) error {
	return c.do(ctx, request{method: http.MethodDelete, path: itemPath("projects", id), token: token}, nil)
}

// Authentication

// Login exchanges credentials for an admin session. The backend may answer
// with the session object itself or wrap it in "data".
func (c *Client) Login(ctx context.Context, username, password string) (*model.AdminSession, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("apiclient: encoding login body: %w", err)
	}

	var resp struct {
		model.AdminSession
		Data *model.AdminSession `json:"data"`
	}
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        c.loginPath,
		body:        bytes.NewReader(body),
		contentType: "application/json",
	}, &resp)
	if err != nil {
		return nil, err
	}

	admin := resp.AdminSession
	if resp.Data != nil {
		admin = *resp.Data
	}
	if admin.Token == "" {
		return nil, apperror.Unauthorized("login response carried no token")
	}
	if admin.Username == "" {
		admin.Username = username
	}
	return &admin, nil
}

// IsUpstream reports whether err came back from the backend as a non-2xx answer.
func IsUpstream(err error) bool {
	return errors.Is(err, apperror.ErrUpstream)
}
