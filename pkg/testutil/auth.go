package testutil

import (
	"regexp"
	"testing"

	"github.com/c9s/bitkub/pkg/envvar"
)

var secretPattern = regexp.MustCompile(`\b(\w{4})\w+\b`)

func maskSecret(s string) string {
	return secretPattern.ReplaceAllString(s, "$1******")
}

// Credentials are read from {PREFIX}_API_KEY, {PREFIX}_API_SECRET and the
// optional {PREFIX}_ENV.
type Credentials struct {
	Key         string
	Secret      string
	Environment string
}

// IntegrationTestConfigured reports whether the live api tests of the given
// prefix should run. TEST_{PREFIX}=1 must be set along with both credentials.
func IntegrationTestConfigured(t *testing.T, prefix string) (Credentials, bool) {
	var creds Credentials
	var hasKey, hasSecret bool

	creds.Key, hasKey = envvar.String(prefix + "_API_KEY")
	creds.Secret, hasSecret = envvar.String(prefix + "_API_SECRET")
	creds.Environment, _ = envvar.String(prefix + "_ENV")
	enabled, _ := envvar.Bool("TEST_" + prefix)

	ok := hasKey && hasSecret && enabled
	if ok {
		t.Logf("%s api integration test enabled, key = %s, secret = %s, env = %q",
			prefix, maskSecret(creds.Key), maskSecret(creds.Secret), creds.Environment)
	}

	return creds, ok
}
