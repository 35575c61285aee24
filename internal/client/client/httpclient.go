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

	"github.com/dmitrijs2005/healthnav/internal/client/alerts"
	"github.com/dmitrijs2005/healthnav/internal/client/config"
	"github.com/dmitrijs2005/healthnav/internal/client/models"
	"github.com/dmitrijs2005/healthnav/internal/logging"
	"github.com/dmitrijs2005/healthnav/internal/netx"
)

const maxResponseBytes = 4 << 20

// HTTPClient implements Client over the backend's HTTP API.
type HTTPClient struct {
	baseURL *url.URL
	headers map[string]string
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for the given API bundle.
func NewHTTPClient(cfg config.APIConfig, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host required", cfg.BaseURL)
	}

	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	return &HTTPClient{
		baseURL: u,
		headers: headers,
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     log,
	}, nil
}

type request struct {
	method      string
	path        []string
	query       url.Values
	token       string
	body        io.Reader
	contentType string
}

func formBody(fields []models.FormField) (io.Reader, string, error) {
	nf := make([]netx.Field, len(fields))
	for i, f := range fields {
		nf[i] = netx.Field{Name: f.Name, Value: f.Value}
	}
	return netx.Multipart(nf)
}

func jsonBody(v any) (io.Reader, string, error) {
	b, err := netx.JSON(v)
	if err != nil {
		return nil, "", err
	}
	return b, "application/json", nil
}

func (c *HTTPClient) do(ctx context.Context, r request) ([]byte, error) {
	u := c.baseURL.JoinPath(r.path...)
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), r.body)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	} else if r.body == nil {
		req.Header.Del("Content-Type")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := netx.ReadLimited(resp.Body, maxResponseBytes)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: serverMessage(body)}
	}
	return body, nil
}

// serverMessage extracts the human-readable error the backend put in the
// response body, if any.
func serverMessage(body []byte) string {
	var m struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(body, &m); err != nil {
		return ""
	}
	switch {
	case m.Message != "":
		return m.Message
	case m.Error != "":
		return m.Error
	default:
		return m.Msg
	}
}

func decode[T any](body []byte, what string) (*T, error) {
	var out T
	if len(bytes.TrimSpace(body)) == 0 {
		return &out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", what, err)
	}
	return &out, nil
}

// decodeUser accepts both {"user": {...}} and a bare user object.
func decodeUser(body []byte) (*models.UserPatch, error) {
	var env struct {
		User *models.UserPatch `json:"user"`
	}
	if err := json.Unmarshal(body, &env); err == nil && env.User != nil {
		return env.User, nil
	}
	return decode[models.UserPatch](body, "user")
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, request{method: http.MethodGet, path: []string{"health"}})
	return err
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	body, ct, err := formBody([]models.FormField{
		{Name: "email", Value: creds.Email},
		{Name: "password", Value: creds.Password},
	})
	if err != nil {
		return nil, err
	}
	b, err := c.do(ctx, request{method: http.MethodPost, path: []string{"users", "auth", "login"}, body: body, contentType: ct})
	if err != nil {
		return nil, err
	}
	return decode[models.AuthResponse](b, "login response")
}

func (c *HTTPClient) Register(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error) {
	body, ct, err := formBody(data.FormFields())
	if err != nil {
		return nil, err
	}
	b, err := c.do(ctx, request{method: http.MethodPost, path: []string{"users", "auth", "register"}, body: body, contentType: ct})
	if err != nil {
		return nil, err
	}
	return decode[models.AuthResponse](b, "register response")
}

func (c *HTTPClient) GetProfile(ctx context.Context, token string, id models.FlexID) (*models.UserPatch, error) {
	b, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   []string{"users", "crud"},
		query:  url.Values{"id": {id.String()}},
		token:  token,
	})
	if err != nil {
		return nil, err
	}
	return decodeUser(b)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, id models.FlexID, patch models.UserPatch) (*models.UserPatch, error) {
	fields := append([]models.FormField{{Name: "id", Value: id.String()}}, patch.ProfileFields()...)
	body, ct, err := formBody(fields)
	if err != nil {
		return nil, err
	}
	b, err := c.do(ctx, request{method: http.MethodPut, path: []string{"users", "crud"}, token: token, body: body, contentType: ct})
	if err != nil {
		return nil, err
	}
	return decodeUser(b)
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	body, ct, err := jsonBody(struct{}{})
	if err != nil {
		return err
	}
	_, err = c.do(ctx, request{method: http.MethodPost, path: []string{"auth", "logout"}, token: token, body: body, contentType: ct})
	return err
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	body, ct, err := jsonBody(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return nil, err
	}
	b, err := c.do(ctx, request{method: http.MethodPost, path: []string{"auth", "refresh"}, body: body, contentType: ct})
	if err != nil {
		return nil, err
	}
	return decode[models.TokenPair](b, "refresh response")
}

func (c *HTTPClient) ListAlerts(ctx context.Context, token string) ([]alerts.RawAlert, error) {
	b, err := c.do(ctx, request{method: http.MethodGet, path: []string{"alerts"}, token: token})
	if err != nil {
		return nil, err
	}
	return alerts.DecodeList(b, func(i int, err error) {
		c.log.Warn(ctx, "skipping undecodable alert", "index", i, "error", err)
	})
}

func alertPath(id string) []string {
	return []string{"alerts", url.PathEscape(strings.TrimSpace(id))}
}

func (c *HTTPClient) GetAlert(ctx context.Context, token, id string) (alerts.RawAlert, error) {
	b, err := c.do(ctx, request{method: http.MethodGet, path: alertPath(id), token: token})
	if err != nil {
		return alerts.RawAlert{}, err
	}
	return alerts.DecodeOne(b)
}

func (c *HTTPClient) CreateAlert(ctx context.Context, token string, in models.CardInput) (alerts.RawAlert, error) {
	body, ct, err := jsonBody(in)
	if err != nil {
		return alerts.RawAlert{}, err
	}
	b, err := c.do(ctx, request{method: http.MethodPost, path: []string{"alerts"}, token: token, body: body, contentType: ct})
	if err != nil {
		return alerts.RawAlert{}, err
	}
	return alerts.DecodeOne(b)
}

func (c *HTTPClient) UpdateAlert(ctx context.Context, token, id string, in models.CardInput) (alerts.RawAlert, error) {
	body, ct, err := jsonBody(in)
	if err != nil {
		return alerts.RawAlert{}, err
	}
	b, err := c.do(ctx, request{method: http.MethodPut, path: alertPath(id), token: token, body: body, contentType: ct})
	if err != nil {
		return alerts.RawAlert{}, err
	}
	return alerts.DecodeOne(b)
}

func (c *HTTPClient) DeleteAlert(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: alertPath(id), token: token})
	return err
}

func (c *HTTPClient) SendChatMessage(ctx context.Context, token, threadID, message string) (*models.ChatReply, error) {
	r := request{method: http.MethodPost, path: []string{"chat", "send_message"}, token: token}
	if threadID != "" {
		body, ct, err := formBody([]models.FormField{
			{Name: "thread_id", Value: threadID},
			{Name: "message", Value: message},
		})
		if err != nil {
			return nil, err
		}
		r.body, r.contentType = body, ct
	}
	b, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	return decode[models.ChatReply](b, "chat reply")
}

var _ Client = (*HTTPClient)(nil)
