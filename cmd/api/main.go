package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/joao-fontenele/foodcourt/internal/cart"
	"github.com/joao-fontenele/foodcourt/internal/catalog"
	"github.com/joao-fontenele/foodcourt/internal/checkout"
	"github.com/joao-fontenele/foodcourt/internal/messaging"
	"github.com/joao-fontenele/foodcourt/internal/orders"
	"github.com/joao-fontenele/foodcourt/internal/promo"
	"github.com/joao-fontenele/foodcourt/internal/telemetry"
)

const serviceVersion = "0.1.0"

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	postgresURL := os.Getenv("POSTGRES_URL")
	if postgresURL == "" {
		logger.Error("POSTGRES_URL environment variable is required")
		os.Exit(1)
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		logger.Error("REDIS_ADDR environment variable is required")
		os.Exit(1)
	}

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "foodcourt-api", serviceVersion)
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider("foodcourt-api", serviceVersion)
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	if err := runtime.Start(); err != nil {
		logger.Error("failed to start runtime instrumentation", "error", err)
		os.Exit(1)
	}

	db, err := telemetry.OpenDB("postgres", postgresURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer func() { _ = redisClient.Close() }()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	cartStore := cart.NewStore(redisClient)
	menuRepo := catalog.NewMenuRepository(db)
	orderRepo := orders.NewOrderRepository(db)
	promoRepo := promo.NewPromoRepository(db)

	checkoutOpts := []checkout.Option{}
	if v := os.Getenv("MINIMUM_ORDER"); v != "" {
		minimum, err := strconv.ParseInt(v, 10, 64)
		if err != nil || minimum < 0 {
			logger.Error("MINIMUM_ORDER must be a non-negative integer", "value", v)
			os.Exit(1)
		}
		checkoutOpts = append(checkoutOpts, checkout.WithMinimumOrder(minimum))
	}

	if kafkaBrokers := os.Getenv("KAFKA_BROKERS"); kafkaBrokers != "" {
		publisher := messaging.NewPublisher(strings.Split(kafkaBrokers, ","), "order.placed")
		defer func() { _ = publisher.Close() }()
		checkoutOpts = append(checkoutOpts, checkout.WithPublisher(publisher))
	}

	checkoutService := checkout.NewService(db, cartStore, logger, checkoutOpts...)

	menuHandler := catalog.NewHandler(menuRepo, logger)
	cartHandler := cart.NewHandler(cartStore, menuRepo, logger)
	checkoutHandler := checkout.NewHandler(checkoutService, logger)
	orderHandler := orders.NewHandler(orderRepo, logger)
	promoHandler := promo.NewHandler(promoRepo, logger)

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metricsHandler)

	mux.HandleFunc("GET /menus", telemetry.WithHTTPRoute(menuHandler.HandleList))
	mux.HandleFunc("POST /menus", telemetry.WithHTTPRoute(menuHandler.HandleCreate))
	mux.HandleFunc("GET /menus/{id}", telemetry.WithHTTPRoute(menuHandler.HandleGet))
	mux.HandleFunc("PUT /menus/{id}", telemetry.WithHTTPRoute(menuHandler.HandleUpdate))
	mux.HandleFunc("PATCH /menus/{id}/availability", telemetry.WithHTTPRoute(menuHandler.HandleSetAvailability))

	mux.HandleFunc("GET /cart", telemetry.WithHTTPRoute(cartHandler.HandleGet))
	mux.HandleFunc("POST /cart/items", telemetry.WithHTTPRoute(cartHandler.HandleAddItem))
	mux.HandleFunc("DELETE /cart/items/{itemId}", telemetry.WithHTTPRoute(cartHandler.HandleRemoveItem))

	mux.HandleFunc("POST /orders", telemetry.WithHTTPRoute(checkoutHandler.HandlePlaceOrder))
	mux.HandleFunc("GET /orders", telemetry.WithHTTPRoute(orderHandler.HandleList))
	mux.HandleFunc("GET /orders/{id}", telemetry.WithHTTPRoute(orderHandler.HandleGet))
	mux.HandleFunc("PATCH /orders/{id}/status", telemetry.WithHTTPRoute(orderHandler.HandleUpdateStatus))
	mux.HandleFunc("GET /dashboard", telemetry.WithHTTPRoute(orderHandler.HandleDashboard))

	mux.HandleFunc("POST /promos/validate", telemetry.WithHTTPRoute(promoHandler.HandleValidate))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr: ":" + port,
		Handler: otelhttp.NewHandler(mux, "foodcourt-api",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting foodcourt api", "port", port, "minimum_order", checkoutService.MinimumOrder())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
