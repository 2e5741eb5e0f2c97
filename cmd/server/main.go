package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rl1809/fitgear/internal/config"
	"github.com/rl1809/fitgear/pkg/logger"
)

var (
	configPath string

	cfg config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fitgear",
	Short: "FitGear storefront server",
	Long: `Serves the FitGear sporting-goods storefront: catalog pages, a
per-shopper cart over HTTP and gRPC, and checkout.

Run without a subcommand to start the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		log, err = logger.New(logger.Options{
			Service: cfg.ServiceName,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC servers with the order workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var (
	seedStock int

	restockProduct int
	restockStock   int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create tables and load the built-in catalog into MySQL",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context(), seedStock)
	},
}

var restockCmd = &cobra.Command{
	Use:   "restock",
	Short: "Set a product's stock level",
	Example: `  fitgear restock --product 3 --stock 40`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRestock(cmd.Context(), restockProduct, restockStock)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/default.yaml", "path to the YAML config file")

	seedCmd.Flags().IntVar(&seedStock, "stock", 100, "initial stock per product")

	restockCmd.Flags().IntVar(&restockProduct, "product", 0, "product id")
	restockCmd.Flags().IntVar(&restockStock, "stock", 0, "new stock level")
	_ = restockCmd.MarkFlagRequired("product")
	_ = restockCmd.MarkFlagRequired("stock")

	rootCmd.AddCommand(serveCmd, seedCmd, restockCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
