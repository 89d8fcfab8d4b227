package cmdutil

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/c9s/bitkub/pkg/exchange/bitkub/bitkubapi"
)

// NewClientFromViper builds a bitkub client from the flag and env values held by v.
func NewClientFromViper(v *viper.Viper) (*bitkubapi.RestClient, error) {
	env, err := bitkubapi.ParseEnvironment(v.GetString(FlagEnv))
	if err != nil {
		return nil, err
	}

	client := bitkubapi.NewClient()
	client.SetEnvironment(env)

	if baseURL := v.GetString(FlagBaseURL); baseURL != "" {
		if err := client.SetBaseURL(baseURL); err != nil {
			return nil, err
		}
	}

	if timeout := v.GetDuration(FlagTimeout); timeout > 0 {
		client.SetTimeout(timeout)
	}

	key, secret := v.GetString(FlagAPIKey), v.GetString(FlagAPISecret)
	if (key == "") != (secret == "") {
		return nil, errors.Errorf("both %s and %s are required", FlagAPIKey, FlagAPISecret)
	}

	client.Auth(key, secret)
	return client, nil
}
