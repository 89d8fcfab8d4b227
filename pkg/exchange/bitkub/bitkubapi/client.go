package bitkubapi

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/c9s/requestgen"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultHTTPTimeout = time.Second * 15
const RestBaseURL = "https://api.bitkub.com/api"

const (
	HeaderAPIKey    = "X-BTK-APIKEY"
	HeaderSignature = "X-BTK-SIGN"
	HeaderTimestamp = "X-BTK-TIMESTAMP"
)

var log = logrus.WithField("exchange", "bitkub")

var _ requestgen.AuthenticatedAPIClient = &RestClient{}

type stateContextKey struct{}

// RestClient is safe for concurrent use. Every call works against the
// configuration snapshot that was current when the call started.
type RestClient struct {
	state atomic.Pointer[state]
}

// NewClient creates a client against the production base URL. The environment
// defaults to the sandbox so that orders are not executed until the caller
// explicitly switches to EnvironmentProduction.
func NewClient() *RestClient {
	u, err := url.Parse(RestBaseURL)
	if err != nil {
		panic(err)
	}

	return NewClientWithConfig(Config{
		Environment: EnvironmentSandbox,
		BaseURL:     u,
		Timeout:     defaultHTTPTimeout,
	})
}

func NewClientWithConfig(config Config) *RestClient {
	if config.Environment == "" {
		config.Environment = EnvironmentSandbox
	}

	if config.Timeout == 0 {
		config.Timeout = defaultHTTPTimeout
	}

	if config.BaseURL == nil {
		u, err := url.Parse(RestBaseURL)
		if err != nil {
			panic(err)
		}
		config.BaseURL = u
	}

	client := &RestClient{}
	client.state.Store(newState(config.clone()))
	return client
}

// Config returns a copy of the current configuration.
func (c *RestClient) Config() Config {
	return c.state.Load().config.clone()
}

// HttpClient returns the http client built from the current configuration.
func (c *RestClient) HttpClient() *http.Client {
	return c.state.Load().httpClient
}

func (c *RestClient) update(apply func(config *Config)) {
	for {
		old := c.state.Load()
		config := old.config.clone()
		apply(&config)
		if c.state.CompareAndSwap(old, newState(config)) {
			return
		}
	}
}

func (c *RestClient) Auth(key, secret string) {
	c.update(func(config *Config) {
		config.Key = key
		// pragma: allowlist nextline secret
		config.Secret = secret
	})
}

func (c *RestClient) SetEnvironment(env Environment) {
	c.update(func(config *Config) {
		config.Environment = env
	})
}

func (c *RestClient) SetBaseURL(baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return errors.Wrapf(err, "invalid base url %q", baseURL)
	}

	if u.Scheme == "" || u.Host == "" {
		return errors.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}

	c.update(func(config *Config) {
		config.BaseURL = u
	})
	return nil
}

func (c *RestClient) SetTimeout(timeout time.Duration) {
	c.update(func(config *Config) {
		config.Timeout = timeout
	})
}

func (c *RestClient) SetTransport(transport http.RoundTripper) {
	c.update(func(config *Config) {
		config.Transport = transport
	})
}

// snapshot returns the state pinned in ctx, or the current one.
func (c *RestClient) snapshot(ctx context.Context) *state {
	if ctx != nil {
		if s, ok := ctx.Value(stateContextKey{}).(*state); ok {
			return s
		}
	}
	return c.state.Load()
}

// pin binds the current configuration snapshot to ctx so that every request
// issued under ctx (server time + signed call) uses the same key, secret and
// transport.
func (c *RestClient) pin(ctx context.Context) context.Context {
	if _, ok := ctx.Value(stateContextKey{}).(*state); ok {
		return ctx
	}
	return context.WithValue(ctx, stateContextKey{}, c.state.Load())
}

func (c *RestClient) endpoint(ctx context.Context, op Operation) (string, error) {
	return EndpointPath(op, c.snapshot(ctx).config.Environment)
}

// NewRequest create new API request. Relative url can be provided in refURL.
func (c *RestClient) NewRequest(
	ctx context.Context, method, refURL string, params url.Values, payload interface{},
) (*http.Request, error) {
	ctx = c.pin(ctx)
	s := c.snapshot(ctx)

	pathURL, err := resolveURL(s.config.BaseURL, refURL, params)
	if err != nil {
		return nil, err
	}

	body, err := castPayload(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, pathURL.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Add("Accept", "application/json")
	req.Header.Add("Content-Type", "application/json")
	if len(s.config.Key) > 0 {
		req.Header.Add(HeaderAPIKey, s.config.Key)
	}

	return req, nil
}

// NewAuthenticatedRequest creates new http request for authenticated routes.
// The signing timestamp is fetched from the server, not taken from the local clock.
func (c *RestClient) NewAuthenticatedRequest(
	ctx context.Context, method, refURL string, params url.Values, payload interface{},
) (*http.Request, error) {
	ctx = c.pin(ctx)
	s := c.snapshot(ctx)

	if len(s.config.Key) == 0 {
		return nil, errors.New("empty api key")
	}

	if len(s.config.Secret) == 0 {
		return nil, errors.New("empty api secret")
	}

	pathURL, err := resolveURL(s.config.BaseURL, refURL, params)
	if err != nil {
		return nil, err
	}

	// path here is used for the signature
	path := pathURL.Path
	if pathURL.RawQuery != "" {
		path += "?" + pathURL.RawQuery
	}

	// body is serialized once, the same bytes are signed and sent
	body, err := castPayload(payload)
	if err != nil {
		return nil, err
	}

	timestamp, err := c.ServerTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to query server time for signing")
	}

	req, err := http.NewRequestWithContext(ctx, method, pathURL.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	for k, values := range s.authHeaders(timestamp, method, path, body) {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	return req, nil
}

// SendRequest sends the request to the API server and handle the response
func (c *RestClient) SendRequest(req *http.Request) (*requestgen.Response, error) {
	s := c.snapshot(req.Context())

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		recordLatencyMetrics(req, 0, time.Since(start))
		return nil, err
	}

	// newResponse reads the response body and return a new Response object
	response, err := requestgen.NewResponse(resp)
	recordLatencyMetrics(req, resp.StatusCode, time.Since(start))
	if err != nil {
		return response, err
	}

	debugf("%s %s -> %d (%s)", req.Method, req.URL.Path, response.StatusCode, time.Since(start))

	// Check error, if there is an error, return the ErrorResponse struct type
	if response.IsError() {
		return response, toErrorResponse(req, response)
	}

	return response, nil
}

// Sign computes the hex encoded HMAC-SHA256 of the canonical string
// "{timestamp}{METHOD}{path}{body}" with the current api secret.
func (c *RestClient) Sign(timestamp int64, method, path string, body []byte) string {
	return c.state.Load().sign(timestamp, method, path, body)
}

// BuildAuthHeaders fetches the server time and returns the headers required
// by a signed call to path with the given body.
func (c *RestClient) BuildAuthHeaders(ctx context.Context, method, path string, body []byte) (http.Header, error) {
	ctx = c.pin(ctx)
	s := c.snapshot(ctx)

	timestamp, err := c.ServerTime(ctx)
	if err != nil {
		return nil, err
	}

	return s.authHeaders(timestamp, method, path, body), nil
}

func (s *state) sign(timestamp int64, method, path string, body []byte) string {
	payload := strconv.FormatInt(timestamp, 10) + strings.ToUpper(method) + path + string(body)
	return sign(s.config.Secret, payload)
}

func (s *state) authHeaders(timestamp int64, method, path string, body []byte) http.Header {
	header := http.Header{}
	header.Set("Accept", "application/json")
	header.Set("Content-Type", "application/json")
	header.Set(HeaderAPIKey, s.config.Key)
	header.Set(HeaderSignature, s.sign(timestamp, method, path, body))
	header.Set(HeaderTimestamp, strconv.FormatInt(timestamp, 10))
	return header
}

// sign uses sha256 to sign the payload with the given secret
func sign(secret, payload string) string {
	var sig = hmac.New(sha256.New, []byte(secret))
	_, err := sig.Write([]byte(payload))
	if err != nil {
		return ""
	}

	return hex.EncodeToString(sig.Sum(nil))
}

func resolveURL(base *url.URL, refURL string, params url.Values) (*url.URL, error) {
	rel, err := url.Parse(refURL)
	if err != nil {
		return nil, err
	}

	if params != nil {
		rel.RawQuery = params.Encode()
	}

	// JoinPath keeps the path prefix of the base url, e.g. "/api"
	pathURL := base.JoinPath(rel.Path)
	pathURL.RawQuery = rel.RawQuery
	return pathURL, nil
}

func castPayload(payload interface{}) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}

	switch v := payload.(type) {
	case string:
		return []byte(v), nil

	case []byte:
		return v, nil

	}
	return json.Marshal(payload)
}

// sendPublic sends an unsigned request and decodes the result field into result.
func (c *RestClient) sendPublic(
	ctx context.Context, method string, op Operation, params url.Values, result interface{},
) error {
	ctx = c.pin(ctx)

	refURL, err := c.endpoint(ctx, op)
	if err != nil {
		return err
	}

	req, err := c.NewRequest(ctx, method, refURL, params, nil)
	if err != nil {
		return err
	}

	return c.sendAndDecode(req, result)
}

// sendSigned sends a signed request and decodes the result field into result.
func (c *RestClient) sendSigned(
	ctx context.Context, method string, op Operation, payload interface{}, result interface{},
) error {
	ctx = c.pin(ctx)

	refURL, err := c.endpoint(ctx, op)
	if err != nil {
		return err
	}

	req, err := c.NewAuthenticatedRequest(ctx, method, refURL, nil, payload)
	if err != nil {
		return err
	}

	return c.sendAndDecode(req, result)
}

func (c *RestClient) sendAndDecode(req *http.Request, result interface{}) error {
	response, err := c.SendRequest(req)
	if err != nil {
		recordErrorCodeMetrics(req, err)
		return err
	}

	var apiResponse APIResponse
	if err := response.DecodeJSON(&apiResponse); err != nil {
		return errors.Wrapf(err, "failed to decode json for response: %d %s", response.StatusCode, string(response.Body))
	}

	if err := apiResponse.Validate(); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			apiErr.StatusCode = response.StatusCode
			apiErr.Method = req.Method
			apiErr.Path = req.URL.Path
		}

		recordErrorCodeMetrics(req, err)
		return err
	}

	if result == nil || len(apiResponse.Result) == 0 {
		return nil
	}

	if err := json.Unmarshal(apiResponse.Result, result); err != nil {
		return errors.Wrapf(err, "failed to decode result of %s %s", req.Method, req.URL.Path)
	}

	return nil
}
