package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/openlumen/walletd/internal/config"
	"github.com/openlumen/walletd/internal/infra/database"
	"github.com/openlumen/walletd/internal/infra/gateway"
	"github.com/openlumen/walletd/internal/infra/ledger"
	"github.com/openlumen/walletd/internal/infra/ratelimit"
	"github.com/openlumen/walletd/internal/infra/repository"
	"github.com/openlumen/walletd/internal/present/rest"
	"github.com/openlumen/walletd/internal/present/rest/middleware"
	"github.com/openlumen/walletd/internal/service"
	"github.com/openlumen/walletd/internal/usecase"
)

func main() {
	configPath := flag.String("c", "config.yaml", "path to the configuration file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		slog.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := database.MigratePostgres(db); err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb := database.NewRedis(conf.Server.RedisAddr, "", conf.Server.RedisDB)

	if conf.Server.EnableTrace {
		shutdown, err := setupTraceProvider(conf.Server.TraceEndpoint)
		if err != nil {
			slog.Error("failed to setup trace provider", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer shutdown()
	}

	ledgerClient := ledger.New(conf.Ledger.HorizonURL, conf.Ledger.FriendbotURL)
	horizon := gateway.NewHorizonGateway(ledgerClient, conf.Ledger)

	userRepo := repository.NewUserRepository(db)
	contactRepo := repository.NewContactRepository(db)

	tokens := service.NewTokenService(conf.JWT)
	hasher := service.NewBcryptHasher()
	faucet := ratelimit.NewRedisFaucetLimiter(rdb)

	authUsecase := usecase.NewAuthUsecase(userRepo, tokens, hasher)
	userUsecase := usecase.NewUserUsecase(userRepo, authUsecase, tokens, hasher, horizon)
	contactUsecase := usecase.NewContactUsecase(contactRepo, userRepo, authUsecase, tokens)
	transactionUsecase := usecase.NewTransactionUsecase(userRepo, tokens, authUsecase, horizon, faucet)

	e := echo.New()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("walletd"))
	}

	handler := rest.NewHandler(authUsecase, userUsecase, contactUsecase, transactionUsecase)
	handler.RegisterRoutes(e, middleware.NewAuthMiddleware(tokens))

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}

func setupTraceProvider(endpoint string) (func(), error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(
		ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName("walletd"),
		),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			slog.Error("failed to shutdown trace provider", slog.String("error", err.Error()))
		}
	}, nil
}
