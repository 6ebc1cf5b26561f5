// Package client talks to the /cafes endpoint over HTTP.
package client

import (
	"bytes"
	"cafein/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const DefaultEndpoint = "http://localhost:3001/cafes"

type Options struct {
	Endpoint string
	// Token is sent as a Bearer token. With Login and Password set it is
	// replaced by logging in whenever the endpoint answers 401.
	Token    string
	Login    string
	Password string
	// LoginURL defaults to the endpoint's sibling /owners/login when the
	// endpoint ends in /cafes.
	LoginURL   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	endpoint   string
	loginURL   string
	login      string
	password   string
	timeout    time.Duration
	httpClient *http.Client

	mu    sync.Mutex
	token string
}

// StatusError is returned when the endpoint answers with status >= 400.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cafes endpoint returned status=%d body=%s", e.Code, e.Body)
}

func New(opts Options) *Client {
	c := &Client{
		endpoint:   strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/"),
		token:      strings.TrimSpace(opts.Token),
		loginURL:   strings.TrimSpace(opts.LoginURL),
		login:      strings.TrimSpace(opts.Login),
		password:   opts.Password,
		timeout:    opts.Timeout,
		httpClient: opts.HTTPClient,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.loginURL == "" && strings.HasSuffix(c.endpoint, "/cafes") {
		c.loginURL = strings.TrimSuffix(c.endpoint, "/cafes") + "/owners/login"
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.timeout <= 0 {
		c.timeout = c.httpClient.Timeout
	}
	if c.timeout <= 0 {
		c.timeout = 5 * time.Second
	}
	return c
}

func (c *Client) Endpoint() string { return c.endpoint }

// Submit posts the whole record to the endpoint and returns the raw
// response body.
func (c *Client) Submit(ctx context.Context, record model.CafeRecord) (json.RawMessage, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode cafe: %w", err)
	}
	raw, err := c.authorized(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(raw), nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (c *Client) List(ctx context.Context) ([]model.CafeRecord, error) {
	var cafes []model.CafeRecord
	if err := c.getData(ctx, c.endpoint, &cafes); err != nil {
		return nil, err
	}
	if cafes == nil {
		cafes = []model.CafeRecord{}
	}
	return cafes, nil
}

func (c *Client) Get(ctx context.Context, id string) (model.CafeRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.CafeRecord{}, errors.New("cafe id is required")
	}
	var cafe model.CafeRecord
	if err := c.getData(ctx, c.endpoint+"/"+url.PathEscape(id), &cafe); err != nil {
		return model.CafeRecord{}, err
	}
	return cafe, nil
}

func (c *Client) getData(ctx context.Context, endpoint string, out any) error {
	raw, err := c.authorized(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return fmt.Errorf("cafes endpoint reported failure: %s", env.Error)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode cafe data: %w", err)
	}
	return nil
}

func (c *Client) canLogin() bool {
	return c.login != "" && c.password != "" && c.loginURL != ""
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// authorized sends the request with the current token, logging in first
// when there is none and once more after a 401.
func (c *Client) authorized(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	if c.currentToken() == "" && c.canLogin() {
		if err := c.Authenticate(ctx); err != nil {
			return nil, err
		}
	}
	raw, err := c.do(ctx, method, endpoint, body, c.currentToken())
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusUnauthorized || !c.canLogin() {
		return raw, err
	}
	if err := c.Authenticate(ctx); err != nil {
		return nil, err
	}
	return c.do(ctx, method, endpoint, body, c.currentToken())
}

// Authenticate logs in at the login URL and keeps the issued access token.
func (c *Client) Authenticate(ctx context.Context) error {
	if !c.canLogin() {
		return errors.New("no owner credentials configured")
	}
	body, err := json.Marshal(map[string]string{"login": c.login, "password": c.password})
	if err != nil {
		return fmt.Errorf("encode login: %w", err)
	}
	raw, err := c.do(ctx, http.MethodPost, c.loginURL, body, "")
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(raw, &tokens); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}
	if tokens.AccessToken == "" {
		return errors.New("login response carried no access token")
	}
	c.mu.Lock()
	c.token = tokens.AccessToken
	c.mu.Unlock()
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, token string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if res.StatusCode >= 400 {
		return nil, &StatusError{Code: res.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	return raw, nil
}
