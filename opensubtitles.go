// Package opensubtitles is a client for the OpenSubtitles REST API.
//
// Every method funnels through a single request executor (internal/httpclient),
// which attaches the Api-Key header, serializes JSON bodies and turns the
// response into a result. Methods here only pick the endpoint, the headers
// and the shape to decode into.
package opensubtitles

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/angelospk/opensubtitles-go/internal/constants"
	"github.com/angelospk/opensubtitles-go/internal/httpclient"
	"github.com/angelospk/opensubtitles-go/pkg/core/credentials"
)

// Config holds the configuration for the OpenSubtitles client.
type Config struct {
	ApiKey    string
	UserAgent string
	Server    constants.Server // Optional: defaults to constants.Primary
	BaseURL   string           // Optional: overrides Server

	HTTPClient *http.Client  // Optional: custom transport
	Timeout    time.Duration // Optional: per-request timeout
	Logger     *logrus.Entry // Optional: defaults to the standard logrus logger
}

// Client is the main OpenSubtitles API client.
type Client struct {
	config      Config
	credentials *credentials.Manager
	log         *logrus.Entry

	mu             sync.RWMutex // Protects executor and currentBaseUrl
	executor       *httpclient.Executor
	currentBaseUrl string
}

// NewClient creates a new OpenSubtitles API client.
func NewClient(config Config) (*Client, error) {
	if config.ApiKey == "" {
		return nil, errors.New("API key is required")
	}
	if config.UserAgent == "" {
		return nil, errors.New("User-Agent is required")
	}

	baseUrl := constants.DefaultBaseURL
	if config.Server != "" {
		baseUrl = config.Server.String()
	}
	if config.BaseURL != "" {
		if _, err := url.ParseRequestURI(config.BaseURL); err != nil {
			return nil, fmt.Errorf("invalid BaseURL provided: %w", err)
		}
		baseUrl = config.BaseURL
	}

	logger := config.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	c := &Client{
		config:      config,
		credentials: credentials.NewManager(config.ApiKey),
		log:         logger.WithField("component", "opensubtitles"),
	}
	c.useBaseURL(baseUrl)
	return c, nil
}

// useBaseURL swaps in an executor bound to baseUrl. Callers hold c.mu or are constructing c.
func (c *Client) useBaseURL(baseUrl string) {
	opts := []httpclient.Option{
		httpclient.WithBaseURL(baseUrl),
		httpclient.WithLogger(c.log),
	}
	if c.config.HTTPClient != nil {
		opts = append(opts, httpclient.WithHTTPClient(c.config.HTTPClient))
	}
	if c.config.Timeout > 0 {
		opts = append(opts, httpclient.WithTimeout(c.config.Timeout))
	}
	c.executor = httpclient.New(c.credentials, opts...)
	c.currentBaseUrl = baseUrl
}

// Credentials exposes the provider the client reads its API key and token from.
func (c *Client) Credentials() *credentials.Manager {
	return c.credentials
}

// SetAuthToken allows manually setting the auth token (e.g., loading from storage).
// An empty token logs the client out locally. A non-empty baseUrl (as returned
// by /login, possibly a bare host) becomes the address for later requests.
func (c *Client) SetAuthToken(token string, baseUrl string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token == "" {
		c.credentials.ClearToken()
		return nil
	}

	if baseUrl != "" {
		normalized, err := normalizeBaseURL(baseUrl)
		if err != nil {
			return err
		}
		if normalized != c.currentBaseUrl {
			c.useBaseURL(normalized)
		}
	}

	c.credentials.SetToken(token)
	return nil
}

// normalizeBaseURL turns "vip-api.opensubtitles.com" into "https://vip-api.opensubtitles.com/api/v1".
func normalizeBaseURL(baseUrl string) (string, error) {
	parsedUrl, err := url.Parse(baseUrl)
	if err != nil || parsedUrl.Scheme == "" || parsedUrl.Host == "" {
		baseUrl = "https://" + baseUrl
		parsedUrl, err = url.ParseRequestURI(baseUrl)
		if err != nil {
			return "", fmt.Errorf("invalid base URL provided: %w", err)
		}
	}
	if parsedUrl.Host == "" {
		return "", fmt.Errorf("invalid base URL provided: %q has no host", baseUrl)
	}
	if parsedUrl.Path == "" || parsedUrl.Path == "/" {
		return parsedUrl.Scheme + "://" + parsedUrl.Host + constants.ApiPath, nil
	}
	return baseUrl, nil
}

// GetCurrentToken returns the currently stored auth token, or nil.
func (c *Client) GetCurrentToken() *string {
	token := c.credentials.UserCredentials().Token
	if token == "" {
		return nil
	}
	return &token
}

// GetCurrentBaseURL returns the base URL currently used by the client.
func (c *Client) GetCurrentBaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentBaseUrl
}

// Executor returns the request executor currently in use, for raw calls.
func (c *Client) Executor() *httpclient.Executor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.executor
}

func (c *Client) isAuthenticated() bool {
	return c.GetCurrentToken() != nil
}

// headers are sent with every API call. The Api-Key is added by the executor.
func (c *Client) headers() map[string]string {
	h := map[string]string{
		"User-Agent": c.config.UserAgent,
		"Accept":     "application/json",
	}
	if token := c.credentials.UserCredentials().Token; token != "" {
		h["Authorization"] = "Bearer " + token
	}
	return h
}

// call runs one keyed request and decodes the success payload into T.
func call[T any](ctx context.Context, c *Client, method, endpoint string, body any) (*T, error) {
	res := httpclient.Into[T](c.Executor().ExecuteRaw(ctx, method, endpoint, true, c.headers(), body))
	v, err := res.Unwrap()
	if err != nil {
		c.log.WithError(err).WithField("endpoint", endpoint).Debug("API call failed")
		return nil, err
	}
	return &v, nil
}

// get encodes params into the query string of path and performs a GET.
func get[T any](ctx context.Context, c *Client, path string, params any) (*T, error) {
	endpoint, err := httpclient.WithQuery(path, params)
	if err != nil {
		return nil, err
	}
	return call[T](ctx, c, http.MethodGet, endpoint, nil)
}
