package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rent-hub/config"
	"rent-hub/internal/adapter/gateway"
	"rent-hub/internal/adapter/handler"
	"rent-hub/internal/authstate"
	"rent-hub/internal/infrastructure/cache"
	"rent-hub/internal/infrastructure/postgres"
	"rent-hub/internal/infrastructure/token"
	"rent-hub/internal/usecase"
	"rent-hub/middleware"
	"rent-hub/utils/logger"
	"rent-hub/utils/otel"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"golang.org/x/time/rate"
)

const vehicleCacheSize = 256

func main() {
	// Handle healthcheck subcommand (for Docker healthcheck in distroless image)
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := runHealthcheck(); err != nil {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx := context.Background()

	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Could not load .env file", "error", err)
	}

	// Initialize OpenTelemetry
	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		fmt.Printf("Failed to initialize OpenTelemetry: %v\n", err)
		otelCfg.Enabled = false
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if otelShutdown != nil {
			if err := otelShutdown(shutdownCtx); err != nil {
				fmt.Printf("Failed to shutdown OpenTelemetry: %v\n", err)
			}
		}
	}()

	// Initialize structured logger with OTel support
	appLogger := logger.Init(otelCfg.Enabled)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "configuration loaded",
		"kratos_url", cfg.KratosURL,
		"port", cfg.Port,
		"cache_ttl", cfg.CacheTTL,
		"store_idle_ttl", cfg.StoreIdleTTL)

	// Database
	db, err := postgres.NewConnection(cfg, appLogger)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Gateways
	kratos := gateway.NewKratosGateway(cfg.KratosURL, 5*time.Second, cfg.RevalidateInterval, appLogger)
	profiles := gateway.NewProfileGateway(db.Pool(), appLogger)
	vehicles := gateway.NewVehicleGateway(db.Pool(), appLogger)
	content := gateway.NewContentGateway(db.Pool(), appLogger)

	// Infrastructure
	contentCache := cache.NewContentCache(vehicleCacheSize, cfg.CacheTTL)
	issuer, err := token.NewJWTIssuer(token.JWTConfig{
		Secret:   cfg.TokenSecret,
		Issuer:   cfg.TokenIssuer,
		Audience: cfg.TokenAudience,
		TTL:      cfg.TokenTTL,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize token issuer", "error", err)
		os.Exit(1)
	}

	registry := authstate.NewRegistry(kratos, profiles, cfg.StoreIdleTTL, appLogger)
	defer registry.Close()

	// Usecases
	resolveSession := usecase.NewResolveSession(registry, issuer, cfg.SessionWait, appLogger)
	listVehicles := usecase.NewListVehicles(vehicles, appLogger)
	availableFilters := usecase.NewGetAvailableFilters(vehicles, appLogger)
	getVehicle := usecase.NewGetVehicle(vehicles, contentCache, appLogger)
	compareVehicles := usecase.NewCompareVehicles(getVehicle, appLogger)
	simulateRental := usecase.NewSimulateRental(vehicles, appLogger)
	getHome := usecase.NewGetHomeContent(content, contentCache, appLogger)
	updateHome := usecase.NewUpdateHomeContent(content, contentCache, appLogger)
	listTexts := usecase.NewListSiteTexts(content, appLogger)
	updateText := usecase.NewUpdateSiteText(content, appLogger)

	// Handlers
	sessionHandler := handler.NewSessionHandler(resolveSession)
	streamHandler := handler.NewStreamHandler(registry, checkOrigin(cfg.AllowedOrigin), appLogger)
	vehicleHandler := handler.NewVehicleHandler(listVehicles, availableFilters, getVehicle, compareVehicles, simulateRental)
	contentHandler := handler.NewContentHandler(getHome, listTexts)
	adminHandler := handler.NewAdminHandler(updateHome, updateText)
	healthHandler := handler.NewHealthHandler()

	// Setup Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Add OpenTelemetry tracing middleware
	if otelCfg.Enabled {
		e.Use(otelecho.Middleware(otelCfg.ServiceName))
	}

	// Middleware
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ctx := c.Request().Context()
			if v.Error == nil {
				slog.InfoContext(ctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				slog.ErrorContext(ctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))

	e.Use(echomiddleware.Recover())
	e.Use(middleware.SecurityHeaders())

	readLimiter := middleware.NewRateLimiter(rate.Limit(cfg.ReadRate), cfg.ReadBurst)
	simulateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.SimulateRate), cfg.SimulateBurst)
	e.Use(readLimiter.Middleware())

	// Register routes
	e.GET("/health", healthHandler.Handle)

	v1 := e.Group("/v1")
	v1.GET("/session", sessionHandler.Handle, middleware.NoStore())
	v1.GET("/session/stream", streamHandler.Handle)

	v1.GET("/vehicles", vehicleHandler.HandleList)
	v1.GET("/vehicles/filters", vehicleHandler.HandleFilters)
	v1.GET("/vehicles/compare", vehicleHandler.HandleCompare)
	v1.GET("/vehicles/:id", vehicleHandler.HandleGet)
	v1.POST("/vehicles/:id/simulate", vehicleHandler.HandleSimulate, simulateLimiter.Middleware())

	v1.GET("/home", contentHandler.HandleHome)
	v1.GET("/site-texts", contentHandler.HandleSiteTexts)

	admin := v1.Group("/admin", middleware.RequireRole(registry, middleware.GuardConfig{
		Role: "admin",
		Wait: cfg.SessionWait,
	}), middleware.NoStore())
	admin.PUT("/home", adminHandler.HandleUpdateHome)
	admin.PUT("/site-texts/:key", adminHandler.HandleUpdateSiteText)

	// Start server
	address := fmt.Sprintf(":%s", cfg.Port)

	go func() {
		slog.InfoContext(ctx, "starting rent-hub server", "address", address)
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	slog.InfoContext(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(ctx, "server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "server exited properly")
}

// checkOrigin builds the websocket origin check. An empty allowed origin
// restricts upgrades to same-origin requests.
func checkOrigin(allowed string) func(*http.Request) bool {
	if allowed == "" {
		return nil
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || origin == allowed
	}
}

// runHealthcheck performs a health check against the local server
func runHealthcheck() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	client := &http.Client{
		Timeout: 2 * time.Second,
	}

	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%s/health", port))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}

	return nil
}
