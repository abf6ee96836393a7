package main

import (
	"context"
	"errors"
	"fmt"
	"maroon_shop/api"
	"maroon_shop/client"
	"maroon_shop/config"
	"maroon_shop/database"
	"maroon_shop/rabbitmq"
	"maroon_shop/services"
	"maroon_shop/structs"
	"maroon_shop/web"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var logger *gecho.Logger
var cfg *structs.Config

// bootstrap loads the environment, the logger and the database for every command.
func bootstrap(cmd *cobra.Command, args []string) error {
	envErr := godotenv.Load()

	cfg = config.GetConfig()
	logger = config.InitializeLogger()

	if envErr != nil {
		logger.Warn("No .env file found or error loading .env file, proceeding with system environment variables")
	}

	if err := database.Initialize(); err != nil {
		return err
	}
	return database.CreateSchema(cmd.Context(), database.GetInstance())
}

// newServices wires the services. When a broker is configured placed orders are
// also published to it. The returned func closes the cache and broker connections.
func newServices() (*services.ServiceManager, func()) {
	var notifiers []services.OrderNotifier
	closeBroker := func() {}

	if cfg.Broker.URL != "" {
		pool, err := rabbitmq.NewChannelPool(cfg.Broker.URL, cfg.Broker.Queue, cfg.Broker.PoolSize, logger)
		if err != nil {
			logger.Warn("Broker unavailable, placed orders will not be published", gecho.Field("error", err))
		} else {
			notifiers = append(notifiers, rabbitmq.NewPublisher(pool, logger))
			closeBroker = pool.Close
		}
	}

	sm := services.NewServiceManager(logger, cfg, database.GetInstance(), notifiers...)
	return sm, func() {
		closeBroker()
		if err := sm.CacheService.Close(); err != nil {
			logger.Warn("Failed to close cache", gecho.Field("error", err))
		}
	}
}

func main() {
	root := &cobra.Command{
		Use:               "maroon_shop",
		Short:             "Maroon Shop storefront and API",
		SilenceUsage:      true,
		PersistentPreRunE: bootstrap,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if err := database.CloseInstance(); err != nil {
				logger.Warn("Failed to close database", gecho.Field("error", err))
			}
		},
	}

	root.AddCommand(serveCommand(), webCommand(), sandboxCommand())

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, closeServices := newServices()
			defer closeServices()

			return listen("API", cfg.Server.Port, api.App(cfg, sm))
		},
	}
}

func webCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "web",
		Short: "Run the storefront against the API at WEB_API_BASE_URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, closeServices := newServices()
			defer closeServices()

			apiClient := client.New(cfg.Web.APIBaseURL, client.WithTimeout(cfg.Web.ClientTimeout))
			return listen("storefront", cfg.Web.Port, web.NewServer(cfg, logger, apiClient, sm).Router())
		},
	}
}

// listen serves h until SIGINT or SIGTERM, then drains in-flight requests.
func listen(name, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:           addr,
		Handler:        h,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Starting %s (%s) on %s", name, cfg.Server.AppName, addr))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to start server", gecho.Field("error", err))
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", gecho.Field("error", err))
		return err
	}
	logger.Info("Server stopped")
	return nil
}

func sandboxCommand() *cobra.Command {
	sandbox := &cobra.Command{
		Use:   "sandbox",
		Short: "Development helpers that work on the configured database",
	}

	var cataloguePath string
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Drop and recreate the schema, then load the sample catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			if cataloguePath != "" {
				var err error
				if data, err = os.ReadFile(cataloguePath); err != nil {
					return fmt.Errorf("failed to read catalogue: %w", err)
				}
			}
			catalogue, err := services.ParseCatalogue(data)
			if err != nil {
				return err
			}

			sm, closeServices := newServices()
			defer closeServices()

			result, err := sm.SeedService.Seed(cmd.Context(), catalogue)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products, %d customers; open baskets %v; orders %v\n",
				result.Products, result.Customers, result.Baskets, result.Orders)
			return nil
		},
	}
	seed.Flags().StringVar(&cataloguePath, "catalogue", "", "YAML catalogue to load instead of the built-in one")

	var basketID int64
	checkout := &cobra.Command{
		Use:   "checkout",
		Short: "Convert a basket into an order",
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, closeServices := newServices()
			defer closeServices()

			order, err := sm.CheckoutService.ConvertToOrder(cmd.Context(), basketID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "basket %d is now order %d, total %s\n", basketID, order.OrderID, order.TotalPrice.StringFixed(2))
			return nil
		},
	}
	checkout.Flags().Int64Var(&basketID, "basket-id", 0, "basket to convert")
	_ = checkout.MarkFlagRequired("basket-id")

	sandbox.AddCommand(seed, checkout)
	return sandbox
}
