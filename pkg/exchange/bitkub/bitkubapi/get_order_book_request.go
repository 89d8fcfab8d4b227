package bitkubapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

const defaultOrderBookLimit = 1

// orderBookRows decodes the heterogeneous [orderId, timestamp, volume, rate, amount] rows
type orderBookRows []OrderBookEntry

func (rows *orderBookRows) UnmarshalJSON(data []byte) error {
	entries, err := parseOrderBookEntries(data)
	if err != nil {
		return err
	}

	*rows = entries
	return nil
}

// GetOrderBookRequest lists the open bids or asks of a symbol.
type GetOrderBookRequest struct {
	client *RestClient

	operation Operation

	symbol string
	limit  int
}

func (c *RestClient) NewGetBidsRequest() *GetOrderBookRequest {
	return &GetOrderBookRequest{client: c, operation: OperationBids, limit: defaultOrderBookLimit}
}

func (c *RestClient) NewGetAsksRequest() *GetOrderBookRequest {
	return &GetOrderBookRequest{client: c, operation: OperationAsks, limit: defaultOrderBookLimit}
}

func (r *GetOrderBookRequest) Symbol(symbol string) *GetOrderBookRequest {
	r.symbol = symbol
	return r
}

func (r *GetOrderBookRequest) Limit(limit int) *GetOrderBookRequest {
	r.limit = limit
	return r
}

func (r *GetOrderBookRequest) GetQueryParameters() (url.Values, error) {
	if len(r.symbol) == 0 {
		return nil, errors.New("symbol is required")
	}

	if r.limit <= 0 {
		return nil, errors.Errorf("limit must be positive, got %d", r.limit)
	}

	params := url.Values{}
	params.Set("sym", r.symbol)
	params.Set("lmt", strconv.Itoa(r.limit))
	return params, nil
}

func (r *GetOrderBookRequest) Do(ctx context.Context) ([]OrderBookEntry, error) {
	params, err := r.GetQueryParameters()
	if err != nil {
		return nil, err
	}

	var rows orderBookRows
	if err := r.client.sendPublic(ctx, http.MethodGet, r.operation, params, &rows); err != nil {
		return nil, err
	}

	return rows, nil
}

func (c *RestClient) GetBids(ctx context.Context, symbol string, limit int) ([]OrderBookEntry, error) {
	return c.NewGetBidsRequest().Symbol(symbol).Limit(limit).Do(ctx)
}

func (c *RestClient) GetAsks(ctx context.Context, symbol string, limit int) ([]OrderBookEntry, error) {
	return c.NewGetAsksRequest().Symbol(symbol).Limit(limit).Do(ctx)
}
