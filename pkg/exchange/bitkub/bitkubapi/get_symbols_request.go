package bitkubapi

import (
	"context"
	"net/http"
)

type GetSymbolsRequest struct {
	client *RestClient
}

func (c *RestClient) NewGetSymbolsRequest() *GetSymbolsRequest {
	return &GetSymbolsRequest{client: c}
}

func (r *GetSymbolsRequest) Do(ctx context.Context) ([]Symbol, error) {
	var symbols []Symbol
	if err := r.client.sendPublic(ctx, http.MethodGet, OperationSymbols, nil, &symbols); err != nil {
		return nil, err
	}

	return symbols, nil
}

func (c *RestClient) GetSymbols(ctx context.Context) ([]Symbol, error) {
	return c.NewGetSymbolsRequest().Do(ctx)
}
