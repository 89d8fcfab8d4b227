package bitkubapi

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

type myOpenOrdersPayload struct {
	Symbol string `json:"sym"`
}

type GetMyOpenOrdersRequest struct {
	client *RestClient

	symbol string
}

func (c *RestClient) NewGetMyOpenOrdersRequest() *GetMyOpenOrdersRequest {
	return &GetMyOpenOrdersRequest{client: c}
}

func (r *GetMyOpenOrdersRequest) Symbol(symbol string) *GetMyOpenOrdersRequest {
	r.symbol = symbol
	return r
}

func (r *GetMyOpenOrdersRequest) Do(ctx context.Context) ([]OpenOrder, error) {
	if len(r.symbol) == 0 {
		return nil, errors.New("symbol is required")
	}

	var orders []OpenOrder
	payload := myOpenOrdersPayload{Symbol: r.symbol}
	if err := r.client.sendSigned(ctx, http.MethodPost, OperationMyOpenOrders, payload, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}
