package httptesting

import (
	"net/http"
	"os"
	"testing"
)

// RunHttpTestWithRecorder returns the transport a test should run its client on.
// With TEST_HTTP_RECORD=1 the real network is used and the exchanges are saved
// to recordFile by the returned finalizer; otherwise recordFile is played back.
func RunHttpTestWithRecorder(t *testing.T, recordFile string) (http.RoundTripper, bool, func()) {
	recorder := NewRecorder(http.DefaultTransport)

	if os.Getenv("TEST_HTTP_RECORD") == "1" {
		return recorder, true, func() {
			if err := recorder.Save(recordFile); err != nil {
				t.Errorf("failed to save recorded requests: %v", err)
			}
		}
	}

	if err := recorder.Load(recordFile); err != nil {
		t.Fatalf("failed to load recorded requests: %v", err)
	}

	mockTransport := &MockTransport{}
	if err := recorder.Replay(mockTransport); err != nil {
		t.Fatalf("failed to replay recordings: %v", err)
	}

	return mockTransport, false, func() {}
}
