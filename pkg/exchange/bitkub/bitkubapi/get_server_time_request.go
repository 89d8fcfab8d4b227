package bitkubapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// GetServerTimeRequest queries the server clock. The body is a bare integer
// of milliseconds, e.g. 1699376552354, not an envelope.
type GetServerTimeRequest struct {
	client *RestClient
}

func (c *RestClient) NewGetServerTimeRequest() *GetServerTimeRequest {
	return &GetServerTimeRequest{client: c}
}

func (r *GetServerTimeRequest) Do(ctx context.Context) (int64, error) {
	ctx = r.client.pin(ctx)

	refURL, err := r.client.endpoint(ctx, OperationServerTime)
	if err != nil {
		return 0, err
	}

	req, err := r.client.NewRequest(ctx, http.MethodGet, refURL, nil, nil)
	if err != nil {
		return 0, err
	}

	response, err := r.client.SendRequest(req)
	if err != nil {
		return 0, err
	}

	return parseServerTime(response.Body)
}

// ServerTime returns the server time in milliseconds.
func (c *RestClient) ServerTime(ctx context.Context) (int64, error) {
	return c.NewGetServerTimeRequest().Do(ctx)
}

func parseServerTime(body []byte) (int64, error) {
	s := strings.Trim(strings.TrimSpace(string(body)), `"`)
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "unexpected server time response: %q", string(body))
	}
	return ts, nil
}
