// Command counter is the client half of the ScorpiUI counter example. It
// connects to a running ScorpiUI server, watches the counter component's
// state, and clicks the increment button once a second.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/scorpiui/scorpiui-go/internal/config"
	"github.com/scorpiui/scorpiui-go/pkg/client"
	"github.com/scorpiui/scorpiui-go/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Environment: cfg.AppEnv,
		LogLevel:    cfg.LogLevel,
		AppName:     cfg.AppName,
	})
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New(client.Config{
		URL:              cfg.ServerURL,
		TitleSeparator:   cfg.TitleSeparator,
		HandshakeTimeout: cfg.HandshakeTimeout,
		Registerer:       prometheus.DefaultRegisterer,
	}, log, client.TitleSinkFunc(func(title string) {
		log.Info("document title", zap.String("title", title))
	}))

	if err := c.Connect(ctx); err != nil {
		log.Fatal("failed to connect", zap.Error(err))
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Warn("close failed", zap.Error(err))
		}
	}()

	c.Title().Init("ScorpiUI Counter Example")

	c.OnStateChange("counter", func(state json.RawMessage) {
		log.Info("counter state", zap.ByteString("state", state))
	})

	if cfg.MetricsPort != "" {
		go serveMetrics(cfg.MetricsPort, log)
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return
		case <-ticker.C:
			reply, err := c.EmitWithResponse(ctx, "increment-btn", nil)
			if err != nil {
				log.Warn("increment failed", zap.Error(err))
				continue
			}
			log.Info("increment response", zap.ByteString("response", reply))
		}
	}
}

func serveMetrics(port string, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Error("metrics server failed", zap.Error(err))
	}
}
