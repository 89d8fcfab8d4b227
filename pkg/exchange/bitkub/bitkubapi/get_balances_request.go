package bitkubapi

import (
	"context"
	"net/http"
)

// GetBalancesRequest is a signed call with an empty body.
type GetBalancesRequest struct {
	client *RestClient
}

func (c *RestClient) NewGetBalancesRequest() *GetBalancesRequest {
	return &GetBalancesRequest{client: c}
}

func (r *GetBalancesRequest) Do(ctx context.Context) (BalanceMap, error) {
	balances := BalanceMap{}
	if err := r.client.sendSigned(ctx, http.MethodPost, OperationBalances, nil, &balances); err != nil {
		return nil, err
	}

	return balances, nil
}

func (c *RestClient) GetBalances(ctx context.Context) (BalanceMap, error) {
	return c.NewGetBalancesRequest().Do(ctx)
}
