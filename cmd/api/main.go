package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/Jeong-wonho/heremap-start/internal/adapters/boundary"
	"github.com/Jeong-wonho/heremap-start/internal/adapters/clustering"
	"github.com/Jeong-wonho/heremap-start/internal/adapters/here"
	"github.com/Jeong-wonho/heremap-start/internal/adapters/http"
	natsadapter "github.com/Jeong-wonho/heremap-start/internal/adapters/nats"
	"github.com/Jeong-wonho/heremap-start/internal/adapters/postgres"
	"github.com/Jeong-wonho/heremap-start/internal/adapters/valkey"
	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/core/ports"
	"github.com/Jeong-wonho/heremap-start/internal/core/usecases"
	"github.com/Jeong-wonho/heremap-start/internal/pkg/config"
	"github.com/Jeong-wonho/heremap-start/internal/pkg/logging"
	"github.com/Jeong-wonho/heremap-start/internal/pkg/telemetry"
)

func main() {
	// Local development keeps HEREMAP_HERE_API_KEY in .env
	_ = godotenv.Load(".env")

	cfg, err := config.Load("heremap-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	if cfg.HERE.APIKey == "" {
		slog.Warn("here.api_key is empty; routing and geocoding will fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN(), postgres.PoolOptions{MaxConns: cfg.Database.MaxConns})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Cache
	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
		cacheSvc = cache
	}

	// NATS panel feed
	var feed ports.PanelFeed
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable, panel feed disabled", "error", err)
	} else {
		defer pub.Close()
		feed = pub
	}

	// Raw NATS connection for readiness checks
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats health conn unavailable", "error", err)
	} else {
		defer natsConn.Close()
	}

	// External capabilities
	hereClient := here.New(here.Config{
		APIKey:        cfg.HERE.APIKey,
		RoutingURL:    cfg.HERE.RoutingURL,
		GeocodeURL:    cfg.HERE.GeocodeURL,
		TransportMode: cfg.HERE.TransportMode,
		RoutingMode:   cfg.HERE.RoutingMode,
		Timeout:       cfg.HERE.Timeout(),
	}, nil)
	regions := boundary.NewFileLoader(cfg.Regions.Dir, cfg.Regions.Files)
	gateway := usecases.NewServiceGateway(hereClient, hereClient, regions, cacheSvc)

	// Use cases
	locationSvc := usecases.NewLocationService(postgres.NewLocationRepo(db), cacheSvc)

	deps := &http.Dependencies{
		Locations: locationSvc,
		Gateway:   gateway,
		Clusterer: clustering.New(),
		Regions:   regions,
		Feed:      feed,
		Session: http.SessionConfig{
			Controller: usecases.ControllerConfig{
				ProbeRadiusMeters: cfg.MapView.ProbeRadiusMeters,
				ClusterEps:        cfg.MapView.ClusterEps,
				ClusterMinWeight:  cfg.MapView.ClusterMinWeight,
				CountryFilter:     cfg.HERE.CountryFilter,
				TravelMode:        domain.TravelMode(cfg.HERE.TransportMode),
				ServiceTimeout:    cfg.HERE.Timeout(),
			},
			Viewport: domain.Viewport{
				Center: domain.GeoPoint{Lat: cfg.MapView.DefaultLat, Lon: cfg.MapView.DefaultLon},
				Zoom:   cfg.MapView.DefaultZoom,
			},
		},
		NATS:  natsConn,
		DB:    db,
		Cache: cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "HERE Map Controller",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "regions", len(regions.Keys()))
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Open map sessions end when their sockets close.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
