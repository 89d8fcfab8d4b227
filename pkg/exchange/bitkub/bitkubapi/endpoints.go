package bitkubapi

import (
	"github.com/pkg/errors"
)

type Operation string

const (
	OperationServerTime   Operation = "servertime"
	OperationSymbols      Operation = "symbols"
	OperationTicker       Operation = "ticker"
	OperationBids         Operation = "bids"
	OperationAsks         Operation = "asks"
	OperationBalances     Operation = "balances"
	OperationPlaceBid     Operation = "place-bid"
	OperationPlaceAsk     Operation = "place-ask"
	OperationCancelOrder  Operation = "cancel-order"
	OperationMyOpenOrders Operation = "my-open-orders"
)

var productionEndpoints = map[Operation]string{
	OperationServerTime:   "/servertime",
	OperationSymbols:      "/market/symbols",
	OperationTicker:       "/market/ticker",
	OperationBids:         "/market/bids",
	OperationAsks:         "/market/asks",
	OperationBalances:     "/market/balances",
	OperationPlaceBid:     "/market/place-bid",
	OperationPlaceAsk:     "/market/place-ask",
	OperationCancelOrder:  "/market/cancel-order",
	OperationMyOpenOrders: "/market/my-open-orders",
}

// the sandbox only differs on order placement, the orders are validated but never matched.
var sandboxOverrides = map[Operation]string{
	OperationPlaceBid: "/market/place-bid/test",
	OperationPlaceAsk: "/market/place-ask/test",
}

var endpointTable = map[Environment]map[Operation]string{
	EnvironmentProduction: productionEndpoints,
	EnvironmentSandbox:    mergeEndpoints(productionEndpoints, sandboxOverrides),
}

func mergeEndpoints(base, overrides map[Operation]string) map[Operation]string {
	merged := make(map[Operation]string, len(base))
	for op, p := range base {
		merged[op] = p
	}

	for op, p := range overrides {
		merged[op] = p
	}

	return merged
}

// EndpointPath returns the path of the given operation relative to the base URL.
func EndpointPath(op Operation, env Environment) (string, error) {
	endpoints, ok := endpointTable[env]
	if !ok {
		return "", errors.Errorf("unknown environment %q", env)
	}

	p, ok := endpoints[op]
	if !ok {
		return "", errors.Errorf("operation %q is not defined for environment %q", op, env)
	}

	return p, nil
}
