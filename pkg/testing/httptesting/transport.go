package httptesting

import (
	"net/http"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

type RoundTripFunc func(req *http.Request) (*http.Response, error)

// MockTransport routes each request to the handler registered for its method
// and path, and counts the requests it has seen.
type MockTransport struct {
	mu       sync.Mutex
	handlers map[string]RoundTripFunc
	calls    map[string]int
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

func (transport *MockTransport) handle(method, path string, f RoundTripFunc) {
	transport.mu.Lock()
	defer transport.mu.Unlock()

	if transport.handlers == nil {
		transport.handlers = make(map[string]RoundTripFunc)
	}

	transport.handlers[routeKey(method, path)] = f
}

func (transport *MockTransport) GET(path string, f RoundTripFunc) {
	transport.handle(http.MethodGet, path, f)
}

func (transport *MockTransport) POST(path string, f RoundTripFunc) {
	transport.handle(http.MethodPost, path, f)
}

func (transport *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	key := routeKey(req.Method, req.URL.Path)

	transport.mu.Lock()
	if transport.calls == nil {
		transport.calls = make(map[string]int)
	}
	transport.calls[key]++
	f, ok := transport.handlers[key]
	transport.mu.Unlock()

	if !ok {
		return nil, errors.Errorf("roundtrip mock to %s is not defined", key)
	}

	return f(req)
}

// Calls returns how many requests were sent to the method and path.
func (transport *MockTransport) Calls(method, path string) int {
	transport.mu.Lock()
	defer transport.mu.Unlock()
	return transport.calls[routeKey(method, path)]
}
