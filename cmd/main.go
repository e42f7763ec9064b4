package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arzan03/ElectricTools/internal/cache"
	"github.com/arzan03/ElectricTools/internal/config"
	"github.com/arzan03/ElectricTools/internal/db"
	"github.com/arzan03/ElectricTools/internal/gateway"
	"github.com/arzan03/ElectricTools/internal/logger"
	"github.com/arzan03/ElectricTools/internal/server"
	"github.com/arzan03/ElectricTools/internal/services"
	"github.com/arzan03/ElectricTools/internal/storage"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	root := &cobra.Command{
		Use:           "electrictools",
		Short:         "Electric tools marketplace API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API server",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "promote <email>",
			Short: "Grant the admin role to an existing user",
			Args:  cobra.ExactArgs(1),
			RunE:  runPromote,
		},
	)

	if err := root.ExecuteContext(context.Background()); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func bootstrap(ctx context.Context) (*config.Config, *mongo.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger.Init(cfg.Production())

	client, err := db.ConnectMongoDB(ctx, cfg.Mongo.URI)
	if err != nil {
		return nil, nil, err
	}
	return cfg, client, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, client, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	database := client.Database(cfg.Mongo.Database)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		return err
	}

	var toolCache cache.Cache = cache.Nop{}
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			logger.Warn("redis unavailable, tool cache disabled", "error", err)
		} else {
			defer rdb.Close()
			toolCache = rdb
		}
	}

	var images services.ImageUploader
	if cfg.Minio.Endpoint != "" {
		store, err := storage.NewImageStore(ctx, storage.MinioConfig{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			UseSSL:    cfg.Minio.UseSSL,
			Bucket:    cfg.Minio.Bucket,
		})
		if err != nil {
			logger.Warn("minio unavailable, image upload disabled", "error", err)
		} else {
			images = store
		}
	}

	if cfg.Stripe.SecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY not set, payment intents will fail")
	}
	stripe := gateway.NewStripe(gateway.StripeConfig{
		SecretKey: cfg.Stripe.SecretKey,
		BaseURL:   cfg.Stripe.BaseURL,
	})

	userStore := db.NewUserStore(database)
	toolStore := db.NewToolStore(database)
	orderStore := db.NewOrderStore(database)
	paymentStore := db.NewPaymentStore(database)
	reviewStore := db.NewReviewStore(database)

	tokens := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	app := server.New(server.Deps{
		Tokens:                tokens,
		Users:                 services.NewUserService(userStore, tokens),
		Tools:                 services.NewToolService(toolStore, toolCache, images),
		Orders:                services.NewOrderService(orderStore, paymentStore, db.NewTransactor(client, cfg.Mongo.Transactions)),
		Payments:              services.NewPaymentService(stripe, paymentStore, cfg.Stripe.Currency),
		Reviews:               services.NewReviewService(reviewStore),
		Stats:                 services.NewStatsService(userStore, toolStore, orderStore, paymentStore),
		ReviewAnonymousCreate: cfg.ReviewAnonymousCreate,
		RequestTimeout:        cfg.Mongo.Timeout,
		AccessLog:             true,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("electric tools app listening", "port", cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

func runPromote(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, client, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	users := services.NewUserService(db.NewUserStore(client.Database(cfg.Mongo.Database)), nil)
	user, err := users.PromoteByEmail(ctx, args[0])
	if err != nil {
		return fmt.Errorf("promote %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", user.Email, user.Role)
	return nil
}
