package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loadboard/cmd"
	httpin "loadboard/internal/adapters/in/http"
	"loadboard/internal/adapters/out/kafka"
	"loadboard/internal/adapters/out/postgres/bidrepo"
	"loadboard/internal/adapters/out/postgres/orderrepo"
	"loadboard/internal/jobs"
	"loadboard/internal/notifications"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultStaleOrderTTL = 24 * time.Hour

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs(logger)

	gormDB, err := openDatabase(configs)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &bidrepo.BidDTO{}); err != nil {
		logger.Error("Failed to migrate database schema", "error", err)
		os.Exit(1)
	}

	hub := notifications.NewHub(logger)

	kafkaPublisher, err := kafka.NewPublisher(
		[]string{configs.KafkaHost}, configs.KafkaOrderEventsTopic, logger)
	if err != nil {
		logger.Error("Failed to connect to kafka", "error", err)
		os.Exit(1)
	}
	defer kafkaPublisher.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, hub, kafkaPublisher)

	jobManager := jobs.NewJobManager(
		app.CreateCancelStaleOrdersCommandHandler(),
		staleOrderTTL(configs, logger),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("Failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	runWebServer(&app, configs, logger)
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Warn("No .env file found, relying on process environment")
	}

	return cmd.Config{
		HTTPPort:              os.Getenv("HTTP_PORT"),
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                os.Getenv("DB_PORT"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSslMode:             os.Getenv("DB_SSLMODE"),
		KafkaHost:             os.Getenv("KAFKA_HOST"),
		KafkaOrderEventsTopic: os.Getenv("KAFKA_ORDER_EVENTS_TOPIC"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		StaleOrderTTL:         os.Getenv("STALE_ORDER_TTL"),
	}
}

// openDatabase connects through the lib/pq driver so constraint violations
// surface as *pq.Error values the repositories can inspect.
func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	return gorm.Open(gormpostgres.New(gormpostgres.Config{
		DriverName: "postgres",
		DSN:        dsn,
	}), &gorm.Config{})
}

func staleOrderTTL(configs cmd.Config, logger *slog.Logger) time.Duration {
	if configs.StaleOrderTTL == "" {
		return defaultStaleOrderTTL
	}

	ttl, err := time.ParseDuration(configs.StaleOrderTTL)
	if err != nil || ttl <= 0 {
		logger.Warn("Invalid STALE_ORDER_TTL, using default",
			"value", configs.StaleOrderTTL, "default", defaultStaleOrderTTL)
		return defaultStaleOrderTTL
	}

	return ttl
}

func runWebServer(app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	secret := []byte(configs.JWTSecret)

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreatePlaceBidCommandHandler(),
		app.CreateWithdrawBidCommandHandler(),
		app.CreateAcceptBidCommandHandler(),
		app.CreateCompleteOrderCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateGetOpenOrdersQueryHandler(),
		app.CreateGetOrderBidsQueryHandler(),
	)
	server.RegisterRoutes(e, secret)

	httpin.NewEventStream(app.Hub()).RegisterRoutes(e, secret)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return e.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("Web server stopped", "error", err)
		os.Exit(1)
	}
}
