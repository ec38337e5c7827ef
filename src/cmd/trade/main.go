package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jastley/tradier-autotrader/src/models"
	"github.com/jastley/tradier-autotrader/src/services"
	"github.com/jastley/tradier-autotrader/src/utils"
)

type RunArgs struct {
	Symbol     string
	Side       models.TradierOrderSide
	Quantity   int
	DryRun     bool
	ConfigPath string
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/trade/main.go --buy PIXY",
	Short: "Submit a protective-limit equity order across every account",
	Long:  "For each account owned by the authenticated user, decides whether the requested buy or sell is eligible (buy only what the account does not hold, sell only what it does), prices the order within 10% of the live quote, and submits it. The run stops at the first failed submission.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if os.Getenv("GO_ENV") == "production" {
			fmt.Printf("Are you sure you want to run in production mode? (yes/no): ")
			var response string
			fmt.Scanln(&response)
			if response != "yes" {
				log.Fatalf("exiting")
			}
		}

		buy, err := cmd.Flags().GetBool("buy")
		if err != nil {
			log.Fatalf("error getting buy: %v", err)
		}

		sell, err := cmd.Flags().GetBool("sell")
		if err != nil {
			log.Fatalf("error getting sell: %v", err)
		}

		quantity, err := cmd.Flags().GetInt("quantity")
		if err != nil {
			log.Fatalf("error getting quantity: %v", err)
		}

		dryRun, err := cmd.Flags().GetBool("dry-run")
		if err != nil {
			log.Fatalf("error getting dry-run: %v", err)
		}

		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		var side models.TradierOrderSide
		switch {
		case buy:
			side = models.TradierOrderSideBuy
		case sell:
			side = models.TradierOrderSideSell
		}

		result, err := Run(RunArgs{
			Symbol:     args[0],
			Side:       side,
			Quantity:   quantity,
			DryRun:     dryRun,
			ConfigPath: configPath,
		})
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		log.Infof("Success: %s", result.Summary())
	},
}

func Run(args RunArgs) (*models.RunResult, error) {
	if err := utils.InitEnvironmentVariables(); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	token := os.Getenv("TRADIER_ACCESS_TOKEN")
	if token == "" {
		log.Fatalf("missing TRADIER_ACCESS_TOKEN environment variable")
	}

	config, err := models.LoadTradeConfig(args.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("error loading trade config: %w", err)
	}

	client := services.NewTradierClient(os.Getenv("TRADIER_HOST"), token)
	coordinator := services.NewRunCoordinator(client, config)

	return coordinator.Run(context.Background(), args.Symbol, args.Side, args.Quantity, args.DryRun)
}

func main() {
	runCmd.PersistentFlags().Bool("buy", false, "Buy one share in every account that does not hold the symbol.")
	runCmd.PersistentFlags().Bool("sell", false, "Sell one share in every account that holds the symbol.")
	runCmd.PersistentFlags().Int("quantity", 1, "The number of shares per order.")
	runCmd.PersistentFlags().Bool("dry-run", false, "Preview the orders without actually placing them.")
	runCmd.PersistentFlags().String("config", "", "Path to an optional yaml trade config.")

	runCmd.MarkFlagsMutuallyExclusive("buy", "sell")
	runCmd.MarkFlagsOneRequired("buy", "sell")

	runCmd.Execute()
}
