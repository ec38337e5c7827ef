package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jastley/tradier-autotrader/src/models"
	"github.com/jastley/tradier-autotrader/src/services"
	"github.com/jastley/tradier-autotrader/src/utils"
)

type RunArgs struct {
	Symbol string
}

type RunResult struct {
	Positions models.PositionSet
	Accounts  []models.TradierAccountDTO
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/holdings/main.go PIXY",
	Short: "Report which accounts hold a symbol",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		symbol := strings.ToUpper(args[0])

		result, err := Run(RunArgs{Symbol: symbol})
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		for _, account := range result.Accounts {
			if result.Positions.Holds(account.AccountNumber, symbol) {
				fmt.Printf("%s has %s\n", account.AccountNumber, symbol)
			} else {
				fmt.Printf("%s does not have %s\n", account.AccountNumber, symbol)
			}

			if held := result.Positions.Symbols(account.AccountNumber); len(held) > 0 {
				fmt.Printf("  holdings: %s\n", strings.Join(held, ", "))
			}
		}
	},
}

func Run(args RunArgs) (RunResult, error) {
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

	positions, err := services.NewPositionTracker(client).Build(ctx, accounts)
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to build positions: %w", err)
	}

	return RunResult{Positions: positions, Accounts: accounts}, nil
}

func main() {
	runCmd.Execute()
}
