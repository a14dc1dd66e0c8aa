package grafana

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/interfaces"
	"github.com/secmon-lab/grafana-inviter/pkg/domain/model"
)

const (
	invitesEndpoint = "/api/org/invites"

	// DefaultTimeout bounds every request unless overridden with WithTimeout
	DefaultTimeout = 30 * time.Second

	maxMessageBodySize = 1 << 20
)

// Client wraps the Grafana organization invite HTTP API
type Client struct {
	baseURL    string
	token      string
	timeout    time.Duration
	httpClient *http.Client
}

var _ interfaces.GrafanaClient = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The given client is
// copied, so the timeout option never changes it.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.timeout = d
	}
}

// New creates a Grafana client authenticating with a bearer token
func New(baseURL, token string, opts ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
	for _, opt := range opts {
		opt(client)
	}

	httpClient := http.Client{Timeout: DefaultTimeout}
	if client.httpClient != nil {
		httpClient = *client.httpClient
	}
	if client.timeout > 0 {
		httpClient.Timeout = client.timeout
	}
	client.httpClient = &httpClient

	return client
}

// ListInvites returns all pending invitations of the organization
func (c *Client) ListInvites(ctx context.Context) ([]*model.Invitation, error) {
	resp, err := c.do(ctx, http.MethodGet, invitesEndpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxMessageBodySize))
		return nil, goerr.Wrap(model.ErrUnexpectedStatus, "failed to list invites",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)))
	}

	// The list grows with pending invitations, so it is decoded unbounded
	var invites []*model.Invitation
	if err := json.NewDecoder(resp.Body).Decode(&invites); err != nil {
		return nil, goerr.Wrap(err, "failed to decode invites", goerr.V("endpoint", invitesEndpoint))
	}

	return invites, nil
}

// CreateInvite sends POST /api/org/invites. The status and the message from
// Grafana are returned for any HTTP status; only transport failures are errors.
func (c *Client) CreateInvite(ctx context.Context, req *model.InviteRequest) (*model.InviteResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode invite request")
	}

	resp, err := c.do(ctx, http.MethodPost, invitesEndpoint, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMessageBodySize))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read Grafana response", goerr.V("endpoint", invitesEndpoint))
	}

	return &model.InviteResponse{
		StatusCode: resp.StatusCode,
		Message:    responseMessage(resp.StatusCode, body),
	}, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request",
			goerr.V("method", method),
			goerr.V("endpoint", endpoint))
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send request to Grafana",
			goerr.V("method", method),
			goerr.V("endpoint", endpoint))
	}
	return resp, nil
}

// responseMessage extracts the "message" field Grafana puts in both success
// and error bodies, falling back to the raw body or the status text
func responseMessage(status int, body []byte) string {
	var msg struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &msg); err == nil && msg.Message != "" {
		return msg.Message
	}

	if raw := strings.TrimSpace(string(body)); raw != "" && !json.Valid(body) {
		return raw
	}
	return http.StatusText(status)
}
