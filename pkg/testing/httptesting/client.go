package httptesting

import (
	"net/http"
	"os"
)

// EchoSave replies every request with the same content.
type EchoSave struct {
	// saveTo provides a way for tests to verify http.Request fields.

	// A transport has only one method, so there's no way to return variables
	// while adhering to its interface. Callers pass in the address of a local
	// variable instead, and the latest http.Request is stored there.
	saveTo  **http.Request
	content string
	err     error
}

func (st *EchoSave) RoundTrip(req *http.Request) (*http.Response, error) {
	if st.saveTo != nil {
		*st.saveTo = req
	}

	if st.err != nil {
		return nil, st.err
	}

	resp := BuildResponseString(http.StatusOK, st.content)
	SetHeader(resp, "Content-Type", "application/json")
	return resp, nil
}

func TransportFromFile(filename string) http.RoundTripper {
	rawBytes, err := os.ReadFile(filename)
	return &EchoSave{err: err, content: string(rawBytes)}
}

func TransportWithError(err error) http.RoundTripper {
	return &EchoSave{err: err}
}

// "Saver" refers to saving the *http.Request in a local variable provided by the caller.
func TransportSaver(saved **http.Request, content string) http.RoundTripper {
	return &EchoSave{saveTo: saved, content: content}
}
