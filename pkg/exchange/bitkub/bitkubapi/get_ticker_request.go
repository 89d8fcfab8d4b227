package bitkubapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

type GetTickerRequest struct {
	client *RestClient

	symbol *string
}

func (c *RestClient) NewGetTickerRequest() *GetTickerRequest {
	return &GetTickerRequest{client: c}
}

// Symbol narrows the result to one symbol, all symbols are returned when unset.
func (r *GetTickerRequest) Symbol(symbol string) *GetTickerRequest {
	r.symbol = &symbol
	return r
}

func (r *GetTickerRequest) GetQueryParameters() url.Values {
	params := url.Values{}
	if r.symbol != nil && *r.symbol != "" {
		params.Set("sym", *r.symbol)
	}
	return params
}

// Do decodes the ticker map, this endpoint responds without the error/result envelope.
func (r *GetTickerRequest) Do(ctx context.Context) (TickerMap, error) {
	ctx = r.client.pin(ctx)

	refURL, err := r.client.endpoint(ctx, OperationTicker)
	if err != nil {
		return nil, err
	}

	req, err := r.client.NewRequest(ctx, http.MethodGet, refURL, r.GetQueryParameters(), nil)
	if err != nil {
		return nil, err
	}

	response, err := r.client.SendRequest(req)
	if err != nil {
		return nil, err
	}

	tickers := TickerMap{}
	if err := response.DecodeJSON(&tickers); err != nil {
		return nil, errors.Wrapf(err, "failed to decode ticker response: %s", string(response.Body))
	}

	return tickers, nil
}
