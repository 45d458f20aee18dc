package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/trackflix/trackflix/internal/schema"
	"github.com/trackflix/trackflix/internal/shared"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://localhost:4000"

// Client talks to the Trackflix REST backend. All entity traffic from the
// store layer funnels through it; failures are always a [*TransportError].
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// ClientOpts contains optional settings for creating a Client.
type ClientOpts struct {
	HTTPClient  *http.Client
	Logger      *log.Logger
	RateLimit   float64                   // requests per second, 0 = unlimited
	Credentials *shared.CredentialsConfig // OAuth2 client credentials, nil or empty = anonymous
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, opts ClientOpts) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	httpClient := opts.HTTPClient
	if c := opts.Credentials; c != nil && c.ClientID != "" && c.TokenURL != "" {
		conf := &clientcredentials.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			TokenURL:     c.TokenURL,
		}
		httpClient = conf.Client(context.Background())
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    limiter,
		logger:     opts.Logger,
	}
}

// BaseURL returns the backend base URL the client was created with.
func (c *Client) BaseURL() string { return c.baseURL }

// List fetches the full collection for a resource.
func (c *Client) List(ctx context.Context, resource string) ([]schema.Entity, error) {
	var items []schema.Entity
	if err := c.do(ctx, http.MethodGet, "/"+resource, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Create posts a new entity and returns the server's copy, which may carry
// normalized fields.
func (c *Client) Create(ctx context.Context, resource string, entity schema.Entity) (schema.Entity, error) {
	var created schema.Entity
	if err := c.do(ctx, http.MethodPost, "/"+resource, entity, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update replaces the entity with the given id and returns the server's copy.
func (c *Client) Update(ctx context.Context, resource string, id int64, entity schema.Entity) (schema.Entity, error) {
	var updated schema.Entity
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/%s/%d", resource, id), entity, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the entity with the given id.
func (c *Client) Delete(ctx context.Context, resource string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/%s/%d", resource, id), nil, nil)
}

// do performs one backend request, mapping every failure mode into a
// [*TransportError]. A nil result skips body decoding.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &TransportError{Kind: NoResponse, Message: err.Error()}
		}
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Kind: Malformed, Message: fmt.Sprintf("failed to encode request: %v", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &TransportError{Kind: NoResponse, Message: err.Error()}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "err", err)
		return &TransportError{Kind: NoResponse, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{
			Kind:    HTTPStatus,
			Status:  resp.StatusCode,
			Message: serverMessage(resp.Body),
		}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return &TransportError{Kind: Malformed, Message: err.Error()}
		}
	}

	return nil
}

// serverMessage extracts a human-readable detail from an error response
// body, trying the common JSON shapes before falling back to raw text.
func serverMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var shaped struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(data, &shaped); err == nil {
		for _, msg := range []string{shaped.Error, shaped.Message, shaped.Detail} {
			if msg != "" {
				return msg
			}
		}
	}

	return string(bytes.TrimSpace(data))
}
