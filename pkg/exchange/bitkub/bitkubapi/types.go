package bitkubapi

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/valyala/fastjson"

	"github.com/c9s/bitkub/pkg/types"
)

type OrderType string

const (
	OrderTypeLimit  OrderType = "limit"
	OrderTypeMarket OrderType = "market"
)

func ParseOrderType(s string) (OrderType, error) {
	switch OrderType(strings.ToLower(s)) {
	case OrderTypeLimit:
		return OrderTypeLimit, nil
	case OrderTypeMarket:
		return OrderTypeMarket, nil
	}
	return "", errors.Errorf("invalid order type: %q", s)
}

type SideType string

const (
	SideTypeBuy  SideType = "buy"
	SideTypeSell SideType = "sell"
)

func ParseSideType(s string) (SideType, error) {
	switch SideType(strings.ToLower(s)) {
	case SideTypeBuy, "bid":
		return SideTypeBuy, nil
	case SideTypeSell, "ask":
		return SideTypeSell, nil
	}
	return "", errors.Errorf("invalid side: %q", s)
}

// OrderID is an order identifier that is sent as either a JSON number or a string.
type OrderID string

func (id *OrderID) UnmarshalJSON(data []byte) error {
	// numbers are kept as their literal digits, float64 would round ids above 2^53
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var v interface{}
	if err := decoder.Decode(&v); err != nil {
		return err
	}

	switch vt := v.(type) {
	case nil:
		*id = ""
	case string:
		*id = OrderID(vt)
	case json.Number:
		*id = OrderID(vt.String())
	default:
		return errors.Errorf("unsupported order id type %T", v)
	}
	return nil
}

func (id OrderID) String() string {
	return string(id)
}

/*
	{
	  "id": 1,
	  "info": "Thai Baht to Bitcoin",
	  "symbol": "THB_BTC"
	}
*/
type Symbol struct {
	ID     types.StrInt64 `json:"id"`
	Info   string         `json:"info"`
	Symbol string         `json:"symbol"`
}

type Balance struct {
	Available decimal.Decimal `json:"available"`
	Reserved  decimal.Decimal `json:"reserved"`
}

func (b Balance) Total() decimal.Decimal {
	return b.Available.Add(b.Reserved)
}

// BalanceMap maps a currency code (THB, BTC, ...) to its balance.
type BalanceMap map[string]Balance

// OrderBookEntry is one row of the bids/asks result:
// [orderId, timestamp, volume, rate, amount]
type OrderBookEntry struct {
	OrderID   OrderID
	Timestamp types.MillisecondTimestamp
	Volume    decimal.Decimal
	Rate      decimal.Decimal
	Amount    decimal.Decimal
}

func (e OrderBookEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{
		e.OrderID,
		e.Timestamp,
		json.Number(e.Volume.String()),
		json.Number(e.Rate.String()),
		json.Number(e.Amount.String()),
	})
}

func parseOrderBookEntries(data []byte) ([]OrderBookEntry, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, err
	}

	rows, err := v.Array()
	if err != nil {
		return nil, errors.Wrap(err, "order book result is not an array")
	}

	entries := make([]OrderBookEntry, 0, len(rows))
	for i, row := range rows {
		entry, err := parseOrderBookEntry(row)
		if err != nil {
			return nil, errors.Wrapf(err, "order book row #%d", i)
		}

		entries = append(entries, *entry)
	}

	return entries, nil
}

func parseOrderBookEntry(v *fastjson.Value) (*OrderBookEntry, error) {
	cols, err := v.Array()
	if err != nil {
		return nil, err
	}

	if len(cols) < 5 {
		return nil, errors.Errorf("expected 5 columns, got %d", len(cols))
	}

	var entry OrderBookEntry

	orderID, err := stringValue(cols[0])
	if err != nil {
		return nil, errors.Wrap(err, "order id")
	}
	entry.OrderID = OrderID(orderID)

	if err := entry.Timestamp.UnmarshalJSON([]byte(cols[1].String())); err != nil {
		return nil, errors.Wrap(err, "timestamp")
	}

	if entry.Volume, err = decimalValue(cols[2]); err != nil {
		return nil, errors.Wrap(err, "volume")
	}

	if entry.Rate, err = decimalValue(cols[3]); err != nil {
		return nil, errors.Wrap(err, "rate")
	}

	if entry.Amount, err = decimalValue(cols[4]); err != nil {
		return nil, errors.Wrap(err, "amount")
	}

	return &entry, nil
}

func stringValue(v *fastjson.Value) (string, error) {
	switch v.Type() {
	case fastjson.TypeString:
		return string(v.GetStringBytes()), nil
	case fastjson.TypeNumber:
		return v.String(), nil
	}
	return "", errors.Errorf("unexpected value type %s", v.Type())
}

func decimalValue(v *fastjson.Value) (decimal.Decimal, error) {
	s, err := stringValue(v)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(s)
}

/*
	{
	  "id": "1",
	  "hash": "fwQ6dnQWQPs4cbatF5Am2xCDP1J",
	  "typ": "limit",
	  "amt": 1000,
	  "rat": 15000,
	  "fee": 2.5,
	  "cre": 2.5,
	  "rec": 0.06666666,
	  "ts": 1533834547,
	  "ci": "input_client_id"
	}
*/
type OrderReceipt struct {
	ID        OrderID                    `json:"id"`
	Hash      string                     `json:"hash"`
	Type      OrderType                  `json:"typ"`
	Amount    decimal.Decimal            `json:"amt"`
	Rate      decimal.Decimal            `json:"rat"`
	Fee       decimal.Decimal            `json:"fee"`
	Credit    decimal.Decimal            `json:"cre"`
	Receive   decimal.Decimal            `json:"rec"`
	Timestamp types.MillisecondTimestamp `json:"ts"`
	ClientID  string                     `json:"ci,omitempty"`
}

type Ticker struct {
	ID            types.StrInt64  `json:"id"`
	Last          decimal.Decimal `json:"last"`
	LowestAsk     decimal.Decimal `json:"lowestAsk"`
	HighestBid    decimal.Decimal `json:"highestBid"`
	PercentChange decimal.Decimal `json:"percentChange"`
	BaseVolume    decimal.Decimal `json:"baseVolume"`
	QuoteVolume   decimal.Decimal `json:"quoteVolume"`
	IsFrozen      int             `json:"isFrozen"`
	High24hr      decimal.Decimal `json:"high24hr"`
	Low24hr       decimal.Decimal `json:"low24hr"`
	Change        decimal.Decimal `json:"change"`
	PrevClose     decimal.Decimal `json:"prevClose"`
	PrevOpen      decimal.Decimal `json:"prevOpen"`
}

// TickerMap maps a symbol (THB_BTC, ...) to its ticker.
type TickerMap map[string]Ticker

type OpenOrder struct {
	ID        OrderID                    `json:"id"`
	Hash      string                     `json:"hash"`
	Side      SideType                   `json:"side"`
	Type      OrderType                  `json:"type"`
	Rate      decimal.Decimal            `json:"rate"`
	Fee       decimal.Decimal            `json:"fee"`
	Credit    decimal.Decimal            `json:"credit"`
	Amount    decimal.Decimal            `json:"amount"`
	Receive   decimal.Decimal            `json:"receive"`
	ParentID  OrderID                    `json:"parent_id"`
	SuperID   OrderID                    `json:"super_id"`
	ClientID  string                     `json:"client_id"`
	Timestamp types.MillisecondTimestamp `json:"ts"`
}
