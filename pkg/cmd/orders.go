package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/c9s/bitkub/pkg/exchange/bitkub/bitkubapi"
	"github.com/c9s/bitkub/pkg/style"
)

func newClientID() string {
	return uuid.New().String()
}

// go run ./cmd/bitkub open-orders --symbol THB_BTC
var openOrdersCmd = &cobra.Command{
	Use:   "open-orders --symbol SYMBOL",
	Short: "List my open orders of a symbol",
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol, err := cmd.Flags().GetString("symbol")
		if err != nil {
			return fmt.Errorf("can't get the symbol from flags: %w", err)
		}

		if symbol == "" {
			return fmt.Errorf("--symbol option is required")
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		orders, err := client.NewGetMyOpenOrdersRequest().Symbol(symbol).Do(cmd.Context())
		if err != nil {
			return err
		}

		return printResult(cmd.OutOrStdout(), orders, func(out io.Writer) {
			t := style.NewTableWriter(out, symbol+" OPEN ORDERS",
				table.Row{"ID", "HASH", "SIDE", "TYPE", "RATE", "AMOUNT", "FEE", "CLIENT ID", "TIME"},
				5, 6, 7)
			for _, o := range orders {
				t.AppendRow(table.Row{
					o.ID,
					o.Hash,
					style.SideString(o.Side),
					o.Type,
					o.Rate.String(),
					o.Amount.String(),
					o.Fee.String(),
					o.ClientID,
					o.Timestamp.Time().UTC().Format("2006-01-02 15:04:05"),
				})
			}
			t.Render()
		})
	},
}

func newPlaceOrderCmd(use string, side bitkubapi.SideType) *cobra.Command {
	c := &cobra.Command{
		Use:   use + " --symbol SYMBOL --amount AMOUNT [--type limit --rate RATE]",
		Short: fmt.Sprintf("Place a %s order, the sandbox environment only validates it", side),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := newPlaceOrderRequestFromFlags(cmd, side)
			if err != nil {
				return err
			}

			receipt, err := req.Do(cmd.Context())
			if err != nil {
				return err
			}

			log.Infof("%s order placed: id=%s hash=%s", side, receipt.ID, receipt.Hash)

			return printResult(cmd.OutOrStdout(), receipt, func(out io.Writer) {
				t := style.NewTableWriter(out, "ORDER",
					table.Row{"ID", "HASH", "SIDE", "TYPE", "AMOUNT", "RATE", "FEE", "RECEIVE", "CLIENT ID"},
					5, 6, 7, 8)
				t.AppendRow(table.Row{
					receipt.ID,
					receipt.Hash,
					style.SideString(side),
					receipt.Type,
					receipt.Amount.String(),
					receipt.Rate.String(),
					receipt.Fee.String(),
					receipt.Receive.String(),
					receipt.ClientID,
				})
				t.Render()
			})
		},
	}

	c.Flags().String("symbol", "", "the symbol, like THB_BTC")
	c.Flags().String("amount", "", "THB to spend for a bid, the base currency to sell for an ask")
	c.Flags().String("rate", "0", "the limit price, ignored by market orders")
	c.Flags().String("type", string(bitkubapi.OrderTypeMarket), "order type, limit or market")
	c.Flags().String("client-id", "", "the client order id")
	c.Flags().Bool("auto-client-id", false, "generate a client order id when --client-id is not given")
	return c
}

func newPlaceOrderRequestFromFlags(cmd *cobra.Command, side bitkubapi.SideType) (*bitkubapi.PlaceOrderRequest, error) {
	flags := cmd.Flags()

	symbol, err := flags.GetString("symbol")
	if err != nil {
		return nil, err
	}

	amountStr, err := flags.GetString("amount")
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}

	rateStr, err := flags.GetString("rate")
	if err != nil {
		return nil, err
	}

	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", rateStr, err)
	}

	typeStr, err := flags.GetString("type")
	if err != nil {
		return nil, err
	}

	orderType, err := bitkubapi.ParseOrderType(typeStr)
	if err != nil {
		return nil, err
	}

	clientID, err := flags.GetString("client-id")
	if err != nil {
		return nil, err
	}

	autoClientID, err := flags.GetBool("auto-client-id")
	if err != nil {
		return nil, err
	}

	if clientID == "" && autoClientID {
		clientID = newClientID()
	}

	client, err := newClient()
	if err != nil {
		return nil, err
	}

	req := client.NewPlaceBidRequest()
	if side == bitkubapi.SideTypeSell {
		req = client.NewPlaceAskRequest()
	}

	req.Symbol(symbol).Amount(amount).Rate(rate).OrderType(orderType)
	if clientID != "" {
		req.ClientID(clientID)
	}

	return req, nil
}

// cancelTargetsFromFlags returns one target per --hash, or the single target
// addressed by --symbol, --order-id and --side.
func cancelTargetsFromFlags(cmd *cobra.Command) ([]bitkubapi.CancelTarget, error) {
	flags := cmd.Flags()

	hashes, err := flags.GetStringSlice("hash")
	if err != nil {
		return nil, err
	}

	symbol, _ := flags.GetString("symbol")
	orderID, _ := flags.GetString("order-id")
	sideStr, _ := flags.GetString("side")

	if len(hashes) > 0 {
		if symbol != "" || orderID != "" || sideStr != "" {
			return nil, fmt.Errorf("--hash can not be combined with --symbol, --order-id or --side")
		}

		var targets []bitkubapi.CancelTarget
		for _, hash := range hashes {
			targets = append(targets, bitkubapi.CancelByHash(hash))
		}
		return targets, nil
	}

	if symbol == "" || orderID == "" || sideStr == "" {
		return nil, fmt.Errorf("either --hash or all of --symbol, --order-id and --side are required")
	}

	side, err := bitkubapi.ParseSideType(sideStr)
	if err != nil {
		return nil, err
	}

	return []bitkubapi.CancelTarget{bitkubapi.CancelByOrderID(symbol, orderID, side)}, nil
}

// cancelOrders cancels every target and collects the failures.
func cancelOrders(ctx context.Context, client *bitkubapi.RestClient, targets []bitkubapi.CancelTarget) (canceled int, err error) {
	for _, target := range targets {
		if cancelErr := client.CancelOrder(ctx, target); cancelErr != nil {
			if code, ok := bitkubapi.ErrorCodeOf(cancelErr); ok {
				log.WithError(cancelErr).Warnf("cancel rejected with code %d", int(code))
			}

			err = multierr.Append(err, cancelErr)
			continue
		}

		canceled++
	}

	return canceled, err
}

// go run ./cmd/bitkub cancel-order --hash fwQ6dnQWQPs4cbatF5Am2xCDP1J
// go run ./cmd/bitkub cancel-order --symbol THB_BTC --order-id 1 --side buy
var cancelOrderCmd = &cobra.Command{
	Use:   "cancel-order (--hash HASH ... | --symbol SYMBOL --order-id ID --side buy|sell)",
	Short: "Cancel orders by hash, or one order by its symbol, id and side",
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, err := cancelTargetsFromFlags(cmd)
		if err != nil {
			return err
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		canceled, err := cancelOrders(cmd.Context(), client, targets)
		fmt.Fprintf(cmd.OutOrStdout(), "%d/%d orders canceled\n", canceled, len(targets))
		return err
	},
}

func init() {
	openOrdersCmd.Flags().String("symbol", "", "the symbol, like THB_BTC")

	cancelOrderCmd.Flags().StringSlice("hash", nil, "the order hash, can be repeated")
	cancelOrderCmd.Flags().String("symbol", "", "the symbol of the order")
	cancelOrderCmd.Flags().String("order-id", "", "the order id")
	cancelOrderCmd.Flags().String("side", "", "the order side, buy or sell")

	RootCmd.AddCommand(openOrdersCmd)
	// go run ./cmd/bitkub place-bid --symbol THB_BTC --amount 100
	RootCmd.AddCommand(newPlaceOrderCmd("place-bid", bitkubapi.SideTypeBuy))
	// go run ./cmd/bitkub place-ask --symbol THB_BTC --amount 0.001 --type limit --rate 1500000
	RootCmd.AddCommand(newPlaceOrderCmd("place-ask", bitkubapi.SideTypeSell))
	RootCmd.AddCommand(cancelOrderCmd)
}
