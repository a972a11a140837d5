// Command paneltail follows the panel and notification streams of every map
// session and logs them, one line per message.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	natsadapter "github.com/Jeong-wonho/heremap-start/internal/adapters/nats"
	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
	"github.com/Jeong-wonho/heremap-start/internal/pkg/config"
	"github.com/Jeong-wonho/heremap-start/internal/pkg/logging"
)

func main() {
	durable := flag.String("durable", "paneltail", "JetStream durable consumer name")
	format := flag.String("format", "text", "log format: text or json")
	flag.Parse()

	_ = godotenv.Load(".env")

	cfg, err := config.Load("heremap-paneltail")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.Setup(os.Getenv("LOG_LEVEL"), *format)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer sub.Close()

	err = sub.SubscribePanels(ctx, *durable, func(ctx context.Context, sessionID string, vm domain.PanelViewModel) error {
		attrs := []any{
			"session", sessionID,
			"mode", vm.Mode.String(),
		}
		if vm.DistanceMeters > 0 {
			attrs = append(attrs,
				"distance_m", vm.DistanceMeters,
				"duration", vm.DurationFormatted,
				"maneuvers", len(vm.Maneuvers),
				"via", strings.Join(vm.WaypointLabels, " > "),
			)
		}
		if vm.Clicked != nil {
			attrs = append(attrs, "clicked", vm.Clicked.Label)
		}
		logger.Info("panel", attrs...)
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe panels: %v", err)
	}

	err = sub.SubscribeNotifications(ctx, *durable, func(ctx context.Context, sessionID string, n domain.Notification) error {
		level := slog.LevelInfo
		if n.Level == domain.NotifyError {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, n.Message, "session", sessionID)
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe notifications: %v", err)
	}

	slog.Info("paneltail started", "nats", cfg.NATS.URL, "durable", *durable)
	<-ctx.Done()
	slog.Info("paneltail stopped")
}
