package bitkubapi

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// CancelTarget addresses the order to cancel. It can only be built with
// CancelByHash or CancelByOrderID, so exactly one addressing mode is used.
type CancelTarget interface {
	cancelPayload() (interface{}, error)
}

type cancelByHash struct {
	Hash string `json:"hash"`
}

func (t cancelByHash) cancelPayload() (interface{}, error) {
	if len(t.Hash) == 0 {
		return nil, errors.New("order hash is required")
	}
	return t, nil
}

type cancelByOrderID struct {
	Symbol  string   `json:"sym"`
	OrderID string   `json:"id"`
	Side    SideType `json:"sd"`
}

func (t cancelByOrderID) cancelPayload() (interface{}, error) {
	if len(t.Symbol) == 0 {
		return nil, errors.New("symbol is required")
	}

	if len(t.OrderID) == 0 {
		return nil, errors.New("order id is required")
	}

	if t.Side != SideTypeBuy && t.Side != SideTypeSell {
		return nil, errors.Errorf("invalid side: %q", t.Side)
	}

	return t, nil
}

// CancelByHash addresses an order by the hash returned at placement.
func CancelByHash(hash string) CancelTarget {
	return cancelByHash{Hash: hash}
}

// CancelByOrderID addresses an order by its symbol, id and side.
func CancelByOrderID(symbol, orderID string, side SideType) CancelTarget {
	return cancelByOrderID{Symbol: symbol, OrderID: orderID, Side: side}
}

type CancelOrderRequest struct {
	client *RestClient

	target CancelTarget
}

func (c *RestClient) NewCancelOrderRequest(target CancelTarget) *CancelOrderRequest {
	return &CancelOrderRequest{client: c, target: target}
}

func (r *CancelOrderRequest) GetParameters() (interface{}, error) {
	if r.target == nil {
		return nil, errors.New("cancel target is required")
	}
	return r.target.cancelPayload()
}

// Do returns nil when the exchange acknowledges the cancellation with error code 0.
func (r *CancelOrderRequest) Do(ctx context.Context) error {
	payload, err := r.GetParameters()
	if err != nil {
		return err
	}

	return r.client.sendSigned(ctx, http.MethodPost, OperationCancelOrder, payload, nil)
}

func (c *RestClient) CancelOrder(ctx context.Context, target CancelTarget) error {
	return c.NewCancelOrderRequest(target).Do(ctx)
}
