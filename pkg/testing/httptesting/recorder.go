package httptesting

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// credentialHeaders are dropped before an exchange is written to disk.
var credentialHeaders = []string{
	"Authorization",
	"Cookie",
	"X-BTK-APIKEY",
	"X-BTK-SIGN",
}

// RecorderEntry is one recorded request and response pair.
type RecorderEntry struct {
	Timestamp time.Time       `json:"timestamp"`
	Request   *RequestRecord  `json:"request"`
	Response  *ResponseRecord `json:"response"`
	Error     string          `json:"error,omitempty"`
}

type RequestRecord struct {
	Method string      `json:"method"`
	URL    string      `json:"url"`
	Header http.Header `json:"header"`
	Body   string      `json:"body,omitempty"`
}

type ResponseRecord struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Header     http.Header `json:"header"`
	Body       string      `json:"body,omitempty"`
}

func (r *ResponseRecord) build() *http.Response {
	return &http.Response{
		Status:        r.Status,
		StatusCode:    r.StatusCode,
		Header:        r.Header.Clone(),
		Body:          io.NopCloser(bytes.NewReader([]byte(r.Body))),
		ContentLength: int64(len(r.Body)),
	}
}

// Recorder is a transport that saves every exchange it forwards. The order
// book command sends both sides concurrently, so entries are guarded.
type Recorder struct {
	transport http.RoundTripper

	mu      sync.Mutex
	entries []RecorderEntry
}

func NewRecorder(transport http.RoundTripper) *Recorder {
	return &Recorder{transport: transport}
}

func (r *Recorder) RoundTrip(req *http.Request) (*http.Response, error) {
	var reqBody []byte
	if req.Body != nil {
		var err error
		if reqBody, err = io.ReadAll(req.Body); err != nil {
			return nil, err
		}
		req.Body = io.NopCloser(bytes.NewReader(reqBody))
	}

	resp, err := r.transport.RoundTrip(req)

	entry := RecorderEntry{
		Timestamp: time.Now(),
		Request: &RequestRecord{
			Method: req.Method,
			URL:    req.URL.String(),
			Header: req.Header.Clone(),
			Body:   string(reqBody),
		},
	}

	for _, h := range credentialHeaders {
		entry.Request.Header.Del(h)
	}

	if err != nil {
		entry.Error = err.Error()
	} else if resp != nil {
		respBody, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, readErr
		}

		resp.Body = io.NopCloser(bytes.NewReader(respBody))
		entry.Response = &ResponseRecord{
			Status:     resp.Status,
			StatusCode: resp.StatusCode,
			Header:     resp.Header.Clone(),
			Body:       string(respBody),
		}
	}

	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
	return resp, err
}

func (r *Recorder) Entries() []RecorderEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecorderEntry(nil), r.entries...)
}

// Save writes the recorded entries to filename as indented json.
func (r *Recorder) Save(filename string) error {
	data, err := json.MarshalIndent(r.Entries(), "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, append(data, '\n'), 0644)
}

// Load replaces the entries with the ones stored in filename.
func (r *Recorder) Load(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	var entries []RecorderEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return errors.Wrapf(err, "invalid recording %s", filename)
	}

	r.mu.Lock()
	r.entries = entries
	r.mu.Unlock()
	return nil
}

// Replay registers the recorded responses on transport. The last recorded
// response of a method and path wins. Failed exchanges are skipped.
func (r *Recorder) Replay(transport *MockTransport) error {
	for _, entry := range r.Entries() {
		if entry.Request == nil || entry.Response == nil {
			continue
		}

		req, err := http.NewRequest(entry.Request.Method, entry.Request.URL, nil)
		if err != nil {
			return errors.Wrapf(err, "invalid recorded request %s %s", entry.Request.Method, entry.Request.URL)
		}

		record := entry.Response
		transport.handle(req.Method, req.URL.Path, func(_ *http.Request) (*http.Response, error) {
			return record.build(), nil
		})
	}

	return nil
}
