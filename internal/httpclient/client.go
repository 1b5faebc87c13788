package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/angelospk/opensubtitles-go/internal/constants"
	"github.com/angelospk/opensubtitles-go/pkg/core/credentials"
	coreErrors "github.com/angelospk/opensubtitles-go/pkg/core/errors"
	"github.com/angelospk/opensubtitles-go/pkg/core/result"
)

// Executor performs single calls against the API and folds every outcome into a Result.
// It holds no mutable state, so one Executor may serve any number of goroutines.
type Executor struct {
	credentials credentials.Provider
	baseURL     string
	rc          *resty.Client
	log         *logrus.Entry
}

// Option configures an Executor.
type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *logrus.Entry
}

// WithServer selects one of the well-known API servers.
func WithServer(s constants.Server) Option {
	return func(o *options) { o.baseURL = s.String() }
}

// WithBaseURL points the executor at an arbitrary base address (e.g. a test server).
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithHTTPClient swaps the underlying *http.Client, mostly to inject a transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithTimeout bounds each call. Zero means no client-side timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *logrus.Entry) Option {
	return func(o *options) { o.logger = l }
}

// New creates an Executor reading keys from provider. Without WithServer or
// WithBaseURL it talks to constants.Primary.
func New(provider credentials.Provider, opts ...Option) *Executor {
	o := options{baseURL: constants.DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if provider == nil {
		provider = credentials.Static{}
	}

	var rc *resty.Client
	if o.httpClient != nil {
		rc = resty.NewWithClient(o.httpClient)
	} else {
		rc = resty.New()
	}
	if o.timeout > 0 {
		rc.SetTimeout(o.timeout)
	}
	rc.SetLogger(o.logger)
	// Only caller headers go out: drop resty's default User-Agent when none was given.
	rc.SetPreRequestHook(func(_ *resty.Client, r *http.Request) error {
		if strings.HasPrefix(r.Header.Get("User-Agent"), "go-resty/") {
			r.Header.Set("User-Agent", "")
		}
		return nil
	})

	return &Executor{
		credentials: provider,
		baseURL:     o.baseURL,
		rc:          rc,
		log:         o.logger,
	}
}

// BaseURL returns the address every endpoint is appended to.
func (e *Executor) BaseURL() string {
	return e.baseURL
}

// Execute performs one request and returns the decoded JSON payload on success.
// It never panics and never reports failure other than through the Result.
func (e *Executor) Execute(ctx context.Context, method, endpoint string, includeKey bool, headers map[string]string, body any) result.Result[any] {
	return result.Map(e.ExecuteRaw(ctx, method, endpoint, includeKey, headers, body), func(raw json.RawMessage) (any, error) {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	})
}

// ExecuteRaw is Execute without the final decode: the success value is the
// response body, already checked to be valid JSON.
func (e *Executor) ExecuteRaw(ctx context.Context, method, endpoint string, includeKey bool, headers map[string]string, body any) (res result.Result[json.RawMessage]) {
	defer func() {
		if r := recover(); r != nil {
			res = result.Fail[json.RawMessage](fmt.Errorf("%v", r))
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	fullURL := e.baseURL + endpoint // Caller owns slashes on both sides

	req := e.rc.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}

	if includeKey {
		if apiKey := e.credentials.UserCredentials().APIKey; apiKey != "" {
			req.Header.Add(constants.HeaderAPIKey, apiKey)
		}
	}

	// GET, HEAD and OPTIONS never carry a body, whatever the caller passed.
	var payload []byte
	if carriesBody(method) && !isNil(body) {
		b, err := json.Marshal(body)
		if err != nil {
			return result.Fail[json.RawMessage](err)
		}
		payload = b
	}
	if payload != nil {
		if req.Header.Get("Content-Type") == "" {
			req.SetHeader("Content-Type", "application/json")
		}
		req.SetBody(payload)
	}

	log := e.log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"method":     method,
		"url":        fullURL,
	})
	log.Debug("Sending request")

	start := time.Now()
	resp, err := req.Execute(method, fullURL)
	if err != nil {
		log.WithError(err).Debug("Request failed")
		return result.Fail[json.RawMessage](err)
	}

	log = log.WithFields(logrus.Fields{
		"status":   resp.StatusCode(),
		"duration": time.Since(start),
	})

	if !resp.IsSuccess() {
		log.Debug("Request returned non-success status")
		return result.Fail[json.RawMessage](coreErrors.NewHTTPError(resp.StatusCode(), resp.Body()))
	}

	var raw json.RawMessage
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		log.WithError(err).Debug("Response body is not valid JSON")
		return result.Fail[json.RawMessage](err)
	}
	log.Debug("Request succeeded")
	return result.Ok(raw)
}

// carriesBody reports whether resty sends a payload for method.
func carriesBody(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// isNil treats typed nil pointers, maps, slices and interfaces as no body at all.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Into decodes a raw success payload into T. Failures pass through unchanged.
func Into[T any](r result.Result[json.RawMessage]) result.Result[T] {
	return result.Map(r, func(raw json.RawMessage) (T, error) {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return v, fmt.Errorf("failed to unmarshal response body: %w", err)
		}
		return v, nil
	})
}

// Get makes a keyed GET request, encoding params (a struct with `url` tags) as the query string.
func (e *Executor) Get(ctx context.Context, path string, params any, headers map[string]string) result.Result[json.RawMessage] {
	endpoint, err := WithQuery(path, params)
	if err != nil {
		return result.Fail[json.RawMessage](err)
	}
	return e.ExecuteRaw(ctx, http.MethodGet, endpoint, true, headers, nil)
}

// Post makes a keyed POST request with a JSON body.
func (e *Executor) Post(ctx context.Context, path string, body any, headers map[string]string) result.Result[json.RawMessage] {
	return e.ExecuteRaw(ctx, http.MethodPost, path, true, headers, body)
}

// Put makes a keyed PUT request with a JSON body.
func (e *Executor) Put(ctx context.Context, path string, body any, headers map[string]string) result.Result[json.RawMessage] {
	return e.ExecuteRaw(ctx, http.MethodPut, path, true, headers, body)
}

// Delete makes a keyed DELETE request.
func (e *Executor) Delete(ctx context.Context, path string, headers map[string]string) result.Result[json.RawMessage] {
	return e.ExecuteRaw(ctx, http.MethodDelete, path, true, headers, nil)
}

// WithQuery appends params to path as a query string. Keys are lowercased and
// sorted, which is the form the API serves without redirecting.
func WithQuery(path string, params any) (string, error) {
	if params == nil {
		return path, nil
	}
	v, err := query.Values(params)
	if err != nil {
		return "", fmt.Errorf("failed to encode query parameters: %w", err)
	}
	lowered := make(url.Values, len(v))
	for key, vals := range v {
		k := strings.ToLower(key)
		lowered[k] = append(lowered[k], vals...)
	}
	encoded := lowered.Encode() // Encode sorts by key
	if encoded == "" {
		return path, nil
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + encoded, nil
}

// Fetch downloads an absolute link (such as a subtitle file link) to dest and
// returns the number of bytes written. No API key is sent: links point at the CDN.
func (e *Executor) Fetch(ctx context.Context, link, dest string) (int64, error) {
	resp, err := e.rc.R().SetContext(ctx).Get(link)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch %s: %w", link, err)
	}
	if !resp.IsSuccess() {
		return 0, coreErrors.NewHTTPError(resp.StatusCode(), resp.Body())
	}

	if dir := filepath.Dir(dest); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create directory for %s: %w", dest, err)
		}
	}
	body := resp.Body()
	if err := os.WriteFile(dest, body, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return int64(len(body)), nil
}
