package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/c9s/bitkub/pkg/exchange/bitkub/bitkubapi"
	"github.com/c9s/bitkub/pkg/style"
)

func init() {
	balancesCmd.Flags().Bool("all", false, "also list the currencies with zero balance")
	RootCmd.AddCommand(balancesCmd)
}

// go run ./cmd/bitkub balances
var balancesCmd = &cobra.Command{
	Use:   "balances [--all]",
	Short: "Show user account balances",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := cmd.Flags().GetBool("all")
		if err != nil {
			return err
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		balances, err := client.GetBalances(cmd.Context())
		if err != nil {
			return err
		}

		if !all {
			balances = nonZeroBalances(balances)
		}

		return printResult(cmd.OutOrStdout(), balances, func(out io.Writer) {
			currencies := make([]string, 0, len(balances))
			for currency := range balances {
				currencies = append(currencies, currency)
			}
			sort.Strings(currencies)

			t := style.NewTableWriter(out, "BALANCES", table.Row{"CURRENCY", "AVAILABLE", "RESERVED", "TOTAL"}, 2, 3, 4)
			for _, currency := range currencies {
				b := balances[currency]
				t.AppendRow(table.Row{currency, b.Available.String(), b.Reserved.String(), b.Total().String()})
			}
			t.Render()

			if len(currencies) == 0 {
				fmt.Fprintln(out, style.Warn("no balance"))
			}
		})
	},
}

func nonZeroBalances(balances bitkubapi.BalanceMap) bitkubapi.BalanceMap {
	filtered := bitkubapi.BalanceMap{}
	for currency, b := range balances {
		if !b.Total().IsZero() {
			filtered[currency] = b
		}
	}
	return filtered
}
