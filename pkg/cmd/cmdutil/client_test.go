package cmdutil

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/bitkub/pkg/exchange/bitkub/bitkubapi"
)

func newTestViper(t *testing.T, args ...string) *viper.Viper {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	PersistentFlags(flags)
	require.NoError(t, flags.Parse(args))

	v := viper.New()
	require.NoError(t, v.BindPFlags(flags))
	return v
}

func TestNewClientFromViper(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		client, err := NewClientFromViper(newTestViper(t))
		require.NoError(t, err)

		config := client.Config()
		assert.Equal(t, bitkubapi.EnvironmentSandbox, config.Environment)
		assert.Equal(t, bitkubapi.RestBaseURL, config.BaseURL.String())
		assert.Equal(t, 15*time.Second, config.Timeout)
		assert.Empty(t, config.Key)
	})

	t.Run("flags", func(t *testing.T) {
		client, err := NewClientFromViper(newTestViper(t,
			"--bitkub-api-key=key",
			"--bitkub-api-secret=secret",
			"--bitkub-env=production",
			"--bitkub-base-url=http://127.0.0.1:8080/api",
			"--bitkub-timeout=3s",
		))
		require.NoError(t, err)

		config := client.Config()
		assert.Equal(t, bitkubapi.EnvironmentProduction, config.Environment)
		assert.Equal(t, "http://127.0.0.1:8080/api", config.BaseURL.String())
		assert.Equal(t, 3*time.Second, config.Timeout)
		assert.Equal(t, "key", config.Key)
		assert.Equal(t, "secret", config.Secret)
	})

	t.Run("half configured credentials", func(t *testing.T) {
		_, err := NewClientFromViper(newTestViper(t, "--bitkub-api-key=key"))
		assert.Error(t, err)
	})

	t.Run("invalid env", func(t *testing.T) {
		_, err := NewClientFromViper(newTestViper(t, "--bitkub-env=staging"))
		assert.Error(t, err)
	})
}
