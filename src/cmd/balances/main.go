package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jastley/tradier-autotrader/src/models"
	"github.com/jastley/tradier-autotrader/src/services"
	"github.com/jastley/tradier-autotrader/src/utils"
)

type AccountBalances struct {
	Account  models.TradierAccountDTO
	Balances *models.TradierBalancesDTO
}

type RunResult struct {
	Accounts []AccountBalances
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/balances/main.go",
	Short: "Print balances for every account",
	Run: func(cmd *cobra.Command, args []string) {
		result, err := Run()
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		fmt.Println(render(result))
	},
}

func Run() (RunResult, error) {
	if err := utils.InitEnvironmentVariables(); err != nil {
		return RunResult{}, fmt.Errorf("error loading environment variables: %w", err)
	}

	token := os.Getenv("TRADIER_ACCESS_TOKEN")
	if token == "" {
		log.Fatalf("missing TRADIER_ACCESS_TOKEN environment variable")
	}

	ctx := context.Background()
	client := services.NewTradierClient(os.Getenv("TRADIER_HOST"), token)

	accounts, err := client.FetchAccounts(ctx)
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to discover accounts: %w", err)
	}

	result := RunResult{}
	for _, account := range accounts {
		balances, err := client.FetchBalances(ctx, account.AccountNumber)
		if err != nil {
			return RunResult{}, fmt.Errorf("failed to fetch balances for account %s: %w", account.AccountNumber, err)
		}

		result.Accounts = append(result.Accounts, AccountBalances{Account: account, Balances: balances})
	}

	return result, nil
}

func render(result RunResult) string {
	display := &strings.Builder{}
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Account", "Type", "Total Equity", "Open P&L", "Close P&L"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetColumnSeparator("")

	for _, entry := range result.Accounts {
		table.Append([]string{
			entry.Account.AccountNumber,
			entry.Balances.AccountType,
			p.Sprintf("$%.2f", entry.Balances.TotalEquity),
			p.Sprintf("$%.2f", entry.Balances.OpenPL),
			p.Sprintf("$%.2f", entry.Balances.ClosePL),
		})
	}

	table.Render()

	return display.String()
}

func main() {
	runCmd.Execute()
}
