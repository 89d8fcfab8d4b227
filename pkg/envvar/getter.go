package envvar

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// lookup returns the parsed value of the env var n. A malformed value is
// logged and reported as unset.
func lookup[T any](n, kind string, parse func(string) (T, error), defaultValue T) (T, bool) {
	str, ok := os.LookupEnv(n)
	if !ok {
		return defaultValue, false
	}

	v, err := parse(str)
	if err != nil {
		logrus.WithError(err).Errorf("can not parse env var %s=%q as %s, incorrect format", n, str, kind)
		return defaultValue, false
	}

	return v, true
}

func String(n string, args ...string) (string, bool) {
	defaultValue := ""
	if len(args) > 0 {
		defaultValue = args[0]
	}

	return lookup(n, "string", func(s string) (string, error) { return s, nil }, defaultValue)
}

func Bool(n string, args ...bool) (bool, bool) {
	defaultValue := false
	if len(args) > 0 {
		defaultValue = args[0]
	}

	return lookup(n, "bool", strconv.ParseBool, defaultValue)
}
