package bitkubapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// the field order is the serialization order, which is also the signed order
type placeOrderPayload struct {
	Symbol   string      `json:"sym"`
	Amount   json.Number `json:"amt"`
	Rate     json.Number `json:"rat"`
	Type     OrderType   `json:"typ"`
	ClientID string      `json:"client_id,omitempty"`
}

// PlaceOrderRequest places a bid (buy) or an ask (sell). The endpoint is
// resolved from the client environment when the request is sent.
type PlaceOrderRequest struct {
	client *RestClient

	side SideType

	symbol    string
	amount    decimal.Decimal
	rate      decimal.Decimal
	orderType OrderType
	clientID  *string
}

func (c *RestClient) NewPlaceBidRequest() *PlaceOrderRequest {
	return &PlaceOrderRequest{client: c, side: SideTypeBuy, orderType: OrderTypeMarket}
}

func (c *RestClient) NewPlaceAskRequest() *PlaceOrderRequest {
	return &PlaceOrderRequest{client: c, side: SideTypeSell, orderType: OrderTypeMarket}
}

func (r *PlaceOrderRequest) Symbol(symbol string) *PlaceOrderRequest {
	r.symbol = symbol
	return r
}

// Amount is the quote amount (THB) for a bid and the base amount for an ask.
func (r *PlaceOrderRequest) Amount(amount decimal.Decimal) *PlaceOrderRequest {
	r.amount = amount
	return r
}

func (r *PlaceOrderRequest) Rate(rate decimal.Decimal) *PlaceOrderRequest {
	r.rate = rate
	return r
}

func (r *PlaceOrderRequest) OrderType(orderType OrderType) *PlaceOrderRequest {
	r.orderType = orderType
	return r
}

func (r *PlaceOrderRequest) ClientID(clientID string) *PlaceOrderRequest {
	r.clientID = &clientID
	return r
}

func (r *PlaceOrderRequest) operation() Operation {
	if r.side == SideTypeSell {
		return OperationPlaceAsk
	}
	return OperationPlaceBid
}

func (r *PlaceOrderRequest) GetParameters() (*placeOrderPayload, error) {
	if len(r.symbol) == 0 {
		return nil, errors.New("symbol is required")
	}

	if !r.amount.IsPositive() {
		return nil, errors.Errorf("amount must be positive, got %s", r.amount)
	}

	rate := r.rate
	switch r.orderType {
	case OrderTypeLimit:
		if !rate.IsPositive() {
			return nil, errors.Errorf("limit order requires a positive rate, got %s", rate)
		}

	case OrderTypeMarket:
		rate = decimal.Zero

	default:
		return nil, errors.Errorf("invalid order type: %q", r.orderType)
	}

	payload := &placeOrderPayload{
		Symbol: r.symbol,
		Amount: json.Number(r.amount.String()),
		Rate:   json.Number(rate.String()),
		Type:   r.orderType,
	}

	if r.clientID != nil {
		payload.ClientID = *r.clientID
	}

	return payload, nil
}

func (r *PlaceOrderRequest) Do(ctx context.Context) (*OrderReceipt, error) {
	payload, err := r.GetParameters()
	if err != nil {
		return nil, err
	}

	var receipt OrderReceipt
	if err := r.client.sendSigned(ctx, http.MethodPost, r.operation(), payload, &receipt); err != nil {
		return nil, err
	}

	return &receipt, nil
}

func (c *RestClient) PlaceBid(
	ctx context.Context, symbol string, amount, rate decimal.Decimal, orderType OrderType, clientID string,
) (*OrderReceipt, error) {
	req := c.NewPlaceBidRequest().Symbol(symbol).Amount(amount).Rate(rate).OrderType(orderType)
	if clientID != "" {
		req.ClientID(clientID)
	}
	return req.Do(ctx)
}

func (c *RestClient) PlaceAsk(
	ctx context.Context, symbol string, amount, rate decimal.Decimal, orderType OrderType, clientID string,
) (*OrderReceipt, error) {
	req := c.NewPlaceAskRequest().Symbol(symbol).Amount(amount).Rate(rate).OrderType(orderType)
	if clientID != "" {
		req.ClientID(clientID)
	}
	return req.Do(ctx)
}
