package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	pb "github.com/crossplatform/resourcesvc/api/crossplatform/v1"
	"github.com/crossplatform/resourcesvc/server/internal/api"
	"github.com/crossplatform/resourcesvc/server/internal/auth"
	"github.com/crossplatform/resourcesvc/server/internal/config"
	"github.com/crossplatform/resourcesvc/server/internal/logging"
	"github.com/crossplatform/resourcesvc/server/internal/metrics"
	"github.com/crossplatform/resourcesvc/server/internal/notify"
	"github.com/crossplatform/resourcesvc/server/internal/receiver"
	"github.com/crossplatform/resourcesvc/server/internal/service"
	"github.com/crossplatform/resourcesvc/server/internal/store"
	"github.com/crossplatform/resourcesvc/server/internal/validate"
	"github.com/crossplatform/resourcesvc/server/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "config", *configPath, "err", err)
		os.Exit(1)
	}

	logger, err := logging.New(os.Stdout, cfg.Server.Log.Format, cfg.Server.Log.Level)
	if err != nil {
		slog.Error("failed to build logger", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.Logger)

	slog.Info("resourcesvc-server starting",
		"config", *configPath,
		"grpc_port", cfg.Server.GRPCPort,
		"http_port", cfg.Server.HTTPPort,
		"auth_mode", cfg.Server.Auth.Mode,
		"log_level", cfg.Server.Log.Level,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st := store.New()
	svc := service.New(st, validate.Validator{MaxPayloadBytes: cfg.Server.Limits.MaxPayloadBytes})
	notifier := notify.New(cfg.Server.Notify)
	svc.Observe(notifier)
	if n := len(cfg.Server.Notify.Webhooks); n > 0 {
		slog.Info("webhook notifications enabled", "targets", n)
	}
	m := metrics.New(st)
	authn := auth.New(authSettings(cfg))

	// Watch config file for hot-reload of log level and auth settings.
	go func() {
		current := cfg
		if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
			if err := logger.SetLevel(updated.Server.Log.Level); err != nil {
				slog.Error("config: log level not applied", "err", err)
			}
			authn.Update(authSettings(updated))
			if config.RestartRequired(current, updated) {
				slog.Warn("config: some changes take effect only after restart")
			}
			current = updated
			slog.Info("config hot-reloaded",
				"log_level", updated.Server.Log.Level,
				"auth_mode", updated.Server.Auth.Mode,
			)
		}); err != nil {
			slog.Error("config watcher stopped", "err", err)
		}
	}()

	// Interceptor order: metrics see every call, auth rejections included.
	grpcSrv := grpc.NewServer(
		grpc.MaxRecvMsgSize(cfg.Server.Limits.MaxRecvMsgBytes),
		grpc.ChainUnaryInterceptor(
			logging.UnaryServerInterceptor(logger.Logger),
			m.UnaryServerInterceptor(),
			logging.RecoveryInterceptor(logger.Logger),
			authn.UnaryInterceptor(),
		),
	)
	pb.RegisterCrossPlatformServiceServer(grpcSrv, receiver.New(svc))

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		slog.Error("failed to listen on gRPC port",
			"port", cfg.Server.GRPCPort, "err", err)
		os.Exit(1)
	}

	go func() {
		slog.Info("gRPC service listening", "port", cfg.Server.GRPCPort)
		if err := grpcSrv.Serve(lis); err != nil {
			slog.Error("gRPC server stopped", "err", err)
		}
	}()

	hub := ws.New(st, cfg.Server.Stream.Interval)
	go hub.Run(ctx)

	// Combined HTTP server: REST API + WebSocket stream + metrics on HTTPPort.
	httpMux := http.NewServeMux()
	httpMux.Handle("/api/", api.New(svc,
		api.MaxBodyBytes(cfg.Server.Limits.MaxPayloadBytes, cfg.Server.Limits.MaxRecvMsgBytes)))
	httpMux.Handle("/ws/stream", hub)
	httpMux.Handle("/metrics", m.Handler())

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           authn.Middleware(httpMux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("resourcesvc-server shutting down")
	grpcSrv.GracefulStop()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	httpSrv.Shutdown(shutdownCtx) //nolint:errcheck
	notifier.Wait()
}

func authSettings(cfg *config.Config) auth.Settings {
	return auth.Settings{
		Mode:   cfg.Server.Auth.Mode,
		Header: cfg.Server.Auth.EffectiveHeader(),
		Key:    cfg.Server.Auth.Key(),
	}
}
