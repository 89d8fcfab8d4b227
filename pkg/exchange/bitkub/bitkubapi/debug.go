package bitkubapi

import (
	"github.com/c9s/bitkub/pkg/envvar"
)

type LogFunction func(msg string, args ...interface{})

// debugf logs the request round trips at info level when DEBUG_BITKUB is
// enabled, at debug level otherwise.
var debugf LogFunction

func getDebugFunction() LogFunction {
	if v, ok := envvar.Bool("DEBUG_BITKUB"); ok && v {
		return log.Infof
	}

	return log.Debugf
}

func init() {
	debugf = getDebugFunction()
}
