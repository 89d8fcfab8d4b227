package bitkubapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/bitkub/pkg/testing/httptesting"
	"github.com/c9s/bitkub/pkg/types"
)

func captureBody(body *string, reply httptesting.RoundTripFunc) httptesting.RoundTripFunc {
	return func(req *http.Request) (*http.Response, error) {
		data, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		*body = string(data)
		return reply(req)
	}
}

func replyJson(payload interface{}) httptesting.RoundTripFunc {
	return func(req *http.Request) (*http.Response, error) {
		return httptesting.BuildResponseJson(http.StatusOK, payload), nil
	}
}

func TestGetSymbols(t *testing.T) {
	client, _ := newTestClient(t, EnvironmentSandbox)
	client.SetTransport(httptesting.TransportFromFile("testdata/get_symbols.json"))

	symbols, err := client.GetSymbols(context.Background())
	require.NoError(t, err)
	require.Len(t, symbols, 2)
	assert.Equal(t, Symbol{ID: 1, Info: "Thai Baht to Bitcoin", Symbol: "THB_BTC"}, symbols[0])
	assert.Equal(t, "THB_ETH", symbols[1].Symbol)
}

func TestGetBids(t *testing.T) {
	var saved *http.Request

	client := NewClient()
	client.SetTransport(httptesting.TransportSaver(&saved, mustReadFile(t, "testdata/get_bids.json")))

	bids, err := client.GetBids(context.Background(), "THB_BTC", 2)
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, "/api/market/bids", saved.URL.Path)
	assert.Equal(t, "THB_BTC", saved.URL.Query().Get("sym"))
	assert.Equal(t, "2", saved.URL.Query().Get("lmt"))
	assert.Empty(t, saved.Header.Get(HeaderSignature))

	require.Len(t, bids, 2)
	assert.Equal(t, OrderID("1"), bids[0].OrderID)
	assert.Equal(t, int64(1529453033000), bids[0].Timestamp.UnixMilli())
	assert.True(t, decimal.RequireFromString("997.5").Equal(bids[0].Volume))
	assert.True(t, decimal.RequireFromString("10000").Equal(bids[0].Rate))
	assert.True(t, decimal.RequireFromString("0.09975").Equal(bids[0].Amount))

	assert.Equal(t, OrderID("2"), bids[1].OrderID)
	assert.Equal(t, int64(1529453033000), bids[1].Timestamp.UnixMilli())
	assert.Equal(t, "9950.5", bids[1].Rate.String())
}

func TestGetOrderBookRequest_Parameters(t *testing.T) {
	client := NewClient()

	t.Run("default limit", func(t *testing.T) {
		params, err := client.NewGetAsksRequest().Symbol("THB_ETH").GetQueryParameters()
		require.NoError(t, err)
		assert.Equal(t, "1", params.Get("lmt"))
		assert.Equal(t, "THB_ETH", params.Get("sym"))
	})

	t.Run("symbol is required", func(t *testing.T) {
		_, err := client.NewGetBidsRequest().GetQueryParameters()
		assert.Error(t, err)
	})

	t.Run("limit must be positive", func(t *testing.T) {
		_, err := client.NewGetBidsRequest().Symbol("THB_BTC").Limit(0).GetQueryParameters()
		assert.Error(t, err)
	})

	t.Run("asks path", func(t *testing.T) {
		transport := &httptesting.MockTransport{}
		transport.GET("/api/market/asks", replyJson(map[string]interface{}{"error": 0, "result": []interface{}{}}))
		client.SetTransport(transport)

		asks, err := client.GetAsks(context.Background(), "THB_BTC", 5)
		require.NoError(t, err)
		assert.Empty(t, asks)
		assert.Equal(t, 1, transport.Calls("GET", "/api/market/asks"))
	})
}

func TestGetBalances(t *testing.T) {
	client, transport := newTestClient(t, EnvironmentSandbox)

	var body string
	transport.POST("/api/market/balances", captureBody(&body, replyFile(t, "testdata/get_balances.json")))

	balances, err := client.GetBalances(context.Background())
	require.NoError(t, err)

	assert.Empty(t, body)
	require.Len(t, balances, 1)
	thb, ok := balances["THB"]
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(100).Equal(thb.Available))
	assert.True(t, thb.Reserved.IsZero())
	assert.True(t, decimal.NewFromInt(100).Equal(thb.Total()))
}

func TestGetBalances_APIError(t *testing.T) {
	client, transport := newTestClient(t, EnvironmentSandbox)
	transport.POST("/api/market/balances", replyJson(map[string]interface{}{"error": 6}))

	balances, err := client.GetBalances(context.Background())
	assert.Nil(t, balances)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorCodeInvalidSignature, apiErr.Code)
	assert.Equal(t, http.StatusOK, apiErr.StatusCode)
	assert.Equal(t, "POST", apiErr.Method)
	assert.Equal(t, "/api/market/balances", apiErr.Path)
	assert.True(t, IsErrorCode(err, ErrorCodeInvalidSignature))
}

func TestPlaceBid_Environment(t *testing.T) {
	testcases := []struct {
		env  Environment
		path string
	}{
		{EnvironmentSandbox, "/api/market/place-bid/test"},
		{EnvironmentProduction, "/api/market/place-bid"},
	}

	for _, tc := range testcases {
		t.Run(tc.env.String(), func(t *testing.T) {
			client, transport := newTestClient(t, tc.env)
			transport.POST(tc.path, replyFile(t, "testdata/place_bid.json"))

			receipt, err := client.PlaceBid(context.Background(), "THB_BTC", decimal.NewFromInt(100), decimal.Zero, OrderTypeMarket, "my-order-1")
			require.NoError(t, err)

			assert.Equal(t, 1, transport.Calls("POST", tc.path))
			assert.Equal(t, OrderID("1"), receipt.ID)
			assert.Equal(t, "fwQ6dnQWQPs4cbatF5Am2xCDP1J", receipt.Hash)
			assert.Equal(t, OrderTypeMarket, receipt.Type)
			assert.Equal(t, "my-order-1", receipt.ClientID)
			assert.Equal(t, "0.00009975", receipt.Receive.String())
			assert.Equal(t, int64(1533834547000), receipt.Timestamp.UnixMilli())
		})
	}
}

func TestPlaceAsk_Environment(t *testing.T) {
	client, transport := newTestClient(t, EnvironmentProduction)

	var body string
	transport.POST("/api/market/place-ask", captureBody(&body, replyFile(t, "testdata/place_bid.json")))

	_, err := client.PlaceAsk(context.Background(), "THB_BTC", decimal.RequireFromString("0.001"), decimal.NewFromInt(1500000), OrderTypeLimit, "")
	require.NoError(t, err)

	assert.Equal(t, `{"sym":"THB_BTC","amt":0.001,"rat":1500000,"typ":"limit"}`, body)
	assert.Equal(t, 0, transport.Calls("POST", "/api/market/place-ask/test"))
}

func TestPlaceOrderRequest_Parameters(t *testing.T) {
	client := NewClient()

	t.Run("market order forces a zero rate", func(t *testing.T) {
		payload, err := client.NewPlaceBidRequest().
			Symbol("THB_BTC").
			Amount(decimal.NewFromInt(100)).
			Rate(decimal.NewFromInt(999)).
			GetParameters()
		require.NoError(t, err)

		data, err := json.Marshal(payload)
		require.NoError(t, err)
		assert.Equal(t, `{"sym":"THB_BTC","amt":100,"rat":0,"typ":"market"}`, string(data))
	})

	t.Run("client id is the last field", func(t *testing.T) {
		payload, err := client.NewPlaceBidRequest().
			Symbol("THB_BTC").
			Amount(decimal.NewFromInt(100)).
			Rate(decimal.NewFromInt(1000)).
			OrderType(OrderTypeLimit).
			ClientID("abc").
			GetParameters()
		require.NoError(t, err)

		data, err := json.Marshal(payload)
		require.NoError(t, err)
		assert.Equal(t, `{"sym":"THB_BTC","amt":100,"rat":1000,"typ":"limit","client_id":"abc"}`, string(data))
	})

	t.Run("invalid parameters", func(t *testing.T) {
		_, err := client.NewPlaceBidRequest().Amount(decimal.NewFromInt(1)).GetParameters()
		assert.Error(t, err, "symbol")

		_, err = client.NewPlaceBidRequest().Symbol("THB_BTC").GetParameters()
		assert.Error(t, err, "amount")

		_, err = client.NewPlaceBidRequest().Symbol("THB_BTC").Amount(decimal.NewFromInt(1)).OrderType("stop").GetParameters()
		assert.Error(t, err, "order type")
	})
}

func TestPlaceBid_LimitWithoutRate(t *testing.T) {
	client, transport := newTestClient(t, EnvironmentSandbox)
	transport.POST("/api/market/place-bid/test", replyFile(t, "testdata/place_bid.json"))

	receipt, err := client.PlaceBid(context.Background(), "THB_BTC", decimal.NewFromInt(100), decimal.Zero, OrderTypeLimit, "")
	assert.Error(t, err)
	assert.Nil(t, receipt)

	assert.Equal(t, 0, transport.Calls("GET", "/api/servertime"))
	assert.Equal(t, 0, transport.Calls("POST", "/api/market/place-bid/test"))
}

func TestPlaceBid_InsufficientBalance(t *testing.T) {
	client, transport := newTestClient(t, EnvironmentSandbox)
	transport.POST("/api/market/place-bid/test", func(req *http.Request) (*http.Response, error) {
		return httptesting.BuildResponseJson(http.StatusBadRequest, map[string]interface{}{"error": 18}), nil
	})

	_, err := client.PlaceBid(context.Background(), "THB_BTC", decimal.NewFromInt(100), decimal.Zero, OrderTypeMarket, "")
	require.Error(t, err)

	code, ok := ErrorCodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrorCodeInsufficientBalance, code)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestCancelOrder(t *testing.T) {
	testcases := []struct {
		name   string
		target CancelTarget
		body   string
	}{
		{
			name:   "by hash",
			target: CancelByHash("fwQ6dnQWQPs4cbatF5Am2xCDP1J"),
			body:   `{"hash":"fwQ6dnQWQPs4cbatF5Am2xCDP1J"}`,
		},
		{
			name:   "by order id",
			target: CancelByOrderID("THB_BTC", "1", SideTypeSell),
			body:   `{"sym":"THB_BTC","id":"1","sd":"sell"}`,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			client, transport := newTestClient(t, EnvironmentProduction)

			var body string
			transport.POST("/api/market/cancel-order", captureBody(&body, replyJson(map[string]interface{}{"error": 0})))

			err := client.CancelOrder(context.Background(), tc.target)
			require.NoError(t, err)
			assert.Equal(t, tc.body, body)
		})
	}
}

func TestCancelOrder_InvalidTarget(t *testing.T) {
	client, transport := newTestClient(t, EnvironmentProduction)

	assert.Error(t, client.CancelOrder(context.Background(), CancelByHash("")))
	assert.Error(t, client.CancelOrder(context.Background(), CancelByOrderID("", "1", SideTypeBuy)))
	assert.Error(t, client.CancelOrder(context.Background(), CancelByOrderID("THB_BTC", "", SideTypeBuy)))
	assert.Error(t, client.CancelOrder(context.Background(), CancelByOrderID("THB_BTC", "1", "bid")))
	assert.Error(t, client.CancelOrder(context.Background(), nil))

	assert.Equal(t, 0, transport.Calls("GET", "/api/servertime"))
}

func TestCancelOrder_Rejected(t *testing.T) {
	client, transport := newTestClient(t, EnvironmentProduction)
	transport.POST("/api/market/cancel-order", replyJson(map[string]interface{}{"error": 21}))

	err := client.CancelOrder(context.Background(), CancelByHash("unknown"))
	assert.True(t, IsErrorCode(err, ErrorCodeInvalidOrderForCancellation))
}

func TestGetTicker(t *testing.T) {
	var saved *http.Request

	client := NewClient()
	client.SetTransport(httptesting.TransportSaver(&saved, mustReadFile(t, "testdata/get_ticker.json")))

	tickers, err := client.NewGetTickerRequest().Symbol("THB_BTC").Do(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/api/market/ticker", saved.URL.Path)
	assert.Equal(t, "THB_BTC", saved.URL.Query().Get("sym"))

	ticker, ok := tickers["THB_BTC"]
	require.True(t, ok)
	assert.Equal(t, types.StrInt64(1), ticker.ID)
	assert.Equal(t, "216415", ticker.Last.String())
	assert.Equal(t, "71.02603946", ticker.BaseVolume.String())
}

func TestGetMyOpenOrders(t *testing.T) {
	client, transport := newTestClient(t, EnvironmentSandbox)

	var body string
	transport.POST("/api/market/my-open-orders", captureBody(&body, replyFile(t, "testdata/get_my_open_orders.json")))

	orders, err := client.NewGetMyOpenOrdersRequest().Symbol("THB_BTC").Do(context.Background())
	require.NoError(t, err)

	assert.Equal(t, `{"sym":"THB_BTC"}`, body)
	require.Len(t, orders, 1)
	assert.Equal(t, OrderID("2"), orders[0].ID)
	assert.Equal(t, SideTypeSell, orders[0].Side)
	assert.Equal(t, OrderTypeLimit, orders[0].Type)
	assert.Equal(t, "0.9999", orders[0].Amount.String())
	assert.Equal(t, int64(1702543272000), orders[0].Timestamp.UnixMilli())

	_, err = client.NewGetMyOpenOrdersRequest().Do(context.Background())
	assert.Error(t, err)
}

func TestSendRequest_HTTPError(t *testing.T) {
	transport := &httptesting.MockTransport{}
	transport.GET("/api/market/symbols", func(req *http.Request) (*http.Response, error) {
		return httptesting.BuildResponseString(http.StatusBadGateway, "<html>bad gateway</html>"), nil
	})

	client := NewClient()
	client.SetTransport(transport)

	_, err := client.GetSymbols(context.Background())
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Equal(t, "GET", httpErr.Method)
	assert.Contains(t, string(httpErr.Body), "bad gateway")

	_, isAPIError := ErrorCodeOf(err)
	assert.False(t, isAPIError)
}
