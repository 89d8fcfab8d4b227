package cmdutil

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/c9s/bitkub/pkg/exchange/bitkub/bitkubapi"
)

const (
	FlagAPIKey    = "bitkub-api-key"
	FlagAPISecret = "bitkub-api-secret"
	FlagEnv       = "bitkub-env"
	FlagBaseURL   = "bitkub-base-url"
	FlagTimeout   = "bitkub-timeout"
)

// PersistentFlags defines the flags for the bitkub client. Every flag can
// also be given as an env var, e.g. --bitkub-api-key as BITKUB_API_KEY.
func PersistentFlags(flags *pflag.FlagSet) {
	flags.String(FlagAPIKey, "", "bitkub api key")
	flags.String(FlagAPISecret, "", "bitkub api secret")
	flags.String(FlagEnv, bitkubapi.EnvironmentSandbox.String(), "bitkub environment, test or production")
	flags.String(FlagBaseURL, bitkubapi.RestBaseURL, "bitkub api base url")
	flags.Duration(FlagTimeout, 15*time.Second, "http request timeout")
}
