package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"

	"orders/cmd"
	httpadapter "orders/internal/adapters/in/http"
	"orders/internal/adapters/out/kafka"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := newLogger(configs)

	gormDB := mustConnectDB(configs)
	publisher := mustCreatePublisher(configs, logger)

	root := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)
	startWebServer(&root, configs)
}

func getConfigs() cmd.Config {
	// A .env file is a local convenience; in deployed environments the
	// variables come from the process environment.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:               envOrDefault("HTTP_PORT", "8080"),
		Environment:            envOrDefault("ENVIRONMENT", commands.DevEnvironment),
		LogLevel:               envOrDefault("LOG_LEVEL", "info"),
		DBHost:                 envOrDefault("DB_HOST", "localhost"),
		DBPort:                 envOrDefault("DB_PORT", "5432"),
		DBUser:                 envOrDefault("DB_USER", "postgres"),
		DBPassword:             envOrDefault("DB_PASSWORD", "postgres"),
		DBName:                 envOrDefault("DB_NAME", "orders"),
		DBSslMode:              envOrDefault("DB_SSLMODE", "disable"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderCreatedTopic: envOrDefault("KAFKA_ORDER_CREATED_TOPIC", "orders"),
		BasicAuthUser:          envOrDefault("BASIC_AUTH_USER", "admin"),
		BasicAuthPassword:      envOrDefault("BASIC_AUTH_PASSWORD", "admin"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func newLogger(configs cmd.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(configs.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	// Text locally, JSON everywhere else.
	var handler slog.Handler
	if configs.Environment == commands.DevEnvironment {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("cannot connect to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		log.Fatalf("cannot migrate database schema: %v", err)
	}

	return gormDB
}

func mustCreatePublisher(configs cmd.Config, logger *slog.Logger) ports.NotificationPublisher {
	publisher, err := kafka.NewPublisher(configs.KafkaHost)
	if err != nil {
		if errors.Is(err, kafka.ErrDisabled) && configs.Environment == commands.DevEnvironment {
			// Notifications are skipped in dev anyway; a nil-broker publisher
			// never receives a Publish call.
			logger.Warn("KAFKA_HOST is not set, notifications disabled")
			return noopPublisher{}
		}
		log.Fatalf("cannot create kafka publisher: %v", err)
	}
	return publisher
}

type noopPublisher struct{}

func (noopPublisher) Publish(_ context.Context, _ string, _ *order.Order) error {
	return nil
}

func startWebServer(root *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateUpdateOrderCommandHandler(),
		root.CreateSearchOrdersQueryHandler(),
		configs.BasicAuthUser,
		configs.BasicAuthPassword,
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
