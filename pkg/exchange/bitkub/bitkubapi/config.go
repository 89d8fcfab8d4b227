package bitkubapi

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Environment string

const (
	// EnvironmentSandbox routes order placement to the non-executing "/test" endpoints.
	EnvironmentSandbox    Environment = "test"
	EnvironmentProduction Environment = "production"
)

func (e Environment) String() string {
	return string(e)
}

func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "test", "sandbox", "":
		return EnvironmentSandbox, nil
	case "production", "prod":
		return EnvironmentProduction, nil
	}

	return "", errors.Errorf("unknown bitkub environment: %q", s)
}

// Config is the immutable configuration snapshot a RestClient works with.
// The setters of RestClient never modify a Config in place, they build a
// new one and swap it in.
type Config struct {
	Key    string
	Secret string

	Environment Environment

	BaseURL *url.URL

	Timeout time.Duration

	// Transport overrides http.DefaultTransport when not nil.
	Transport http.RoundTripper
}

func (c Config) clone() Config {
	if c.BaseURL != nil {
		u := *c.BaseURL
		c.BaseURL = &u
	}
	return c
}

// state pairs a configuration snapshot with the http client built from it.
type state struct {
	config     Config
	httpClient *http.Client
}

func newState(config Config) *state {
	return &state{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: config.Transport,
		},
	}
}
