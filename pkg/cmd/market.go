package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/c9s/bitkub/pkg/cmd/cmdutil"
	"github.com/c9s/bitkub/pkg/exchange/bitkub/bitkubapi"
	"github.com/c9s/bitkub/pkg/style"
	"github.com/c9s/bitkub/pkg/types"
)

func newClient() (*bitkubapi.RestClient, error) {
	return cmdutil.NewClientFromViper(viper.GetViper())
}

type serverTimeResult struct {
	ServerTime int64                      `json:"serverTime" yaml:"serverTime"`
	Time       types.MillisecondTimestamp `json:"time" yaml:"time"`
}

// go run ./cmd/bitkub servertime
var serverTimeCmd = &cobra.Command{
	Use:   "servertime",
	Short: "Show the server time, the timestamp source of the signed requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		ts, err := client.ServerTime(cmd.Context())
		if err != nil {
			return err
		}

		result := serverTimeResult{ServerTime: ts, Time: types.NewMillisecondTimestampFromInt(ts)}
		return printResult(cmd.OutOrStdout(), result, func(out io.Writer) {
			fmt.Fprintf(out, "%d (%s)\n", result.ServerTime, result.Time.Time().UTC())
		})
	},
}

// go run ./cmd/bitkub symbols
var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "List the tradable symbols",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		symbols, err := client.GetSymbols(cmd.Context())
		if err != nil {
			return err
		}

		return printResult(cmd.OutOrStdout(), symbols, func(out io.Writer) {
			t := style.NewTableWriter(out, "SYMBOLS", table.Row{"ID", "SYMBOL", "INFO"}, 1)
			for _, s := range symbols {
				t.AppendRow(table.Row{s.ID, s.Symbol, s.Info})
			}
			t.Render()
		})
	},
}

// go run ./cmd/bitkub ticker --symbol THB_BTC
var tickerCmd = &cobra.Command{
	Use:   "ticker [--symbol SYMBOL]",
	Short: "Show the ticker of one or all symbols",
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol, err := cmd.Flags().GetString("symbol")
		if err != nil {
			return fmt.Errorf("can't get the symbol from flags: %w", err)
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		req := client.NewGetTickerRequest()
		if symbol != "" {
			req.Symbol(symbol)
		}

		tickers, err := req.Do(cmd.Context())
		if err != nil {
			return err
		}

		return printResult(cmd.OutOrStdout(), tickers, func(out io.Writer) {
			names := make([]string, 0, len(tickers))
			for name := range tickers {
				names = append(names, name)
			}
			sort.Strings(names)

			t := style.NewTableWriter(out, "TICKERS",
				table.Row{"SYMBOL", "LAST", "HIGHEST BID", "LOWEST ASK", "CHANGE %", "BASE VOLUME"},
				2, 3, 4, 5, 6)
			for _, name := range names {
				ticker := tickers[name]
				t.AppendRow(table.Row{
					name,
					ticker.Last.String(),
					ticker.HighestBid.String(),
					ticker.LowestAsk.String(),
					ticker.PercentChange.String(),
					ticker.BaseVolume.String(),
				})
			}
			t.Render()
		})
	},
}

func init() {
	tickerCmd.Flags().String("symbol", "", "the symbol, like THB_BTC, all symbols when empty")

	RootCmd.AddCommand(serverTimeCmd)
	RootCmd.AddCommand(symbolsCmd)
	RootCmd.AddCommand(tickerCmd)
}
