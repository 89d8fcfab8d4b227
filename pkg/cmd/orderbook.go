package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/c9s/bitkub/pkg/exchange/bitkub/bitkubapi"
	"github.com/c9s/bitkub/pkg/style"
)

type orderBookFlags struct {
	symbol string
	limit  int
}

func getOrderBookFlags(cmd *cobra.Command) (*orderBookFlags, error) {
	symbol, err := cmd.Flags().GetString("symbol")
	if err != nil {
		return nil, fmt.Errorf("can't get the symbol from flags: %w", err)
	}

	if symbol == "" {
		return nil, fmt.Errorf("--symbol option is required")
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return nil, fmt.Errorf("can't get the limit from flags: %w", err)
	}

	return &orderBookFlags{symbol: symbol, limit: limit}, nil
}

func renderOrderBookEntries(out io.Writer, title, side string, entries []bitkubapi.OrderBookEntry) {
	t := style.NewTableWriter(out, title,
		table.Row{"SIDE", "ORDER ID", "TIME", "RATE", "VOLUME", "AMOUNT"},
		4, 5, 6)
	for _, e := range entries {
		t.AppendRow(table.Row{
			style.SideString(side),
			e.OrderID,
			e.Timestamp.Time().UTC().Format("2006-01-02 15:04:05"),
			e.Rate.String(),
			e.Volume.String(),
			e.Amount.String(),
		})
	}
	t.Render()
}

func newOrderBookSideCmd(use, side string, request func(c *bitkubapi.RestClient) *bitkubapi.GetOrderBookRequest) *cobra.Command {
	c := &cobra.Command{
		Use:   use + " --symbol SYMBOL [--limit N]",
		Short: fmt.Sprintf("List the open %s orders of a symbol", side),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := getOrderBookFlags(cmd)
			if err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			entries, err := request(client).Symbol(flags.symbol).Limit(flags.limit).Do(cmd.Context())
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), entries, func(out io.Writer) {
				renderOrderBookEntries(out, flags.symbol+" "+use, side, entries)
			})
		},
	}
	c.Flags().String("symbol", "", "the symbol, like THB_BTC")
	c.Flags().Int("limit", 10, "the number of orders")
	return c
}

type orderBookResult struct {
	Symbol string                     `json:"symbol" yaml:"symbol"`
	Bids   []bitkubapi.OrderBookEntry `json:"bids" yaml:"bids"`
	Asks   []bitkubapi.OrderBookEntry `json:"asks" yaml:"asks"`
}

// go run ./cmd/bitkub orderbook --symbol THB_BTC --limit 5
var orderbookCmd = &cobra.Command{
	Use:   "orderbook --symbol SYMBOL [--limit N]",
	Short: "Show both sides of the order book of a symbol",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags, err := getOrderBookFlags(cmd)
		if err != nil {
			return err
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		result := orderBookResult{Symbol: flags.symbol}

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			bids, err := client.GetBids(ctx, flags.symbol, flags.limit)
			result.Bids = bids
			return err
		})
		g.Go(func() error {
			asks, err := client.GetAsks(ctx, flags.symbol, flags.limit)
			result.Asks = asks
			return err
		})

		if err := g.Wait(); err != nil {
			return err
		}

		return printResult(cmd.OutOrStdout(), result, func(out io.Writer) {
			renderOrderBookEntries(out, flags.symbol+" asks", "ask", result.Asks)
			renderOrderBookEntries(out, flags.symbol+" bids", "bid", result.Bids)
		})
	},
}

func init() {
	orderbookCmd.Flags().String("symbol", "", "the symbol, like THB_BTC")
	orderbookCmd.Flags().Int("limit", 10, "the number of orders on each side")

	// go run ./cmd/bitkub bids --symbol THB_BTC
	RootCmd.AddCommand(newOrderBookSideCmd("bids", "bid", (*bitkubapi.RestClient).NewGetBidsRequest))
	// go run ./cmd/bitkub asks --symbol THB_BTC
	RootCmd.AddCommand(newOrderBookSideCmd("asks", "ask", (*bitkubapi.RestClient).NewGetAsksRequest))
	RootCmd.AddCommand(orderbookCmd)
}
