package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	api "agrorent-backend/internal/api/grpc"
	"agrorent-backend/internal/api/grpc/interceptor"
	httpapi "agrorent-backend/internal/api/http"
	"agrorent-backend/internal/app"
	"agrorent-backend/internal/config"
	"agrorent-backend/internal/logger"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting AgroRent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "http_address", cfg.GetHTTPAddress(), "store", cfg.Store.Type)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize store, lock and services
	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize application", "error", err)
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	// Initialize gRPC handlers
	authHandler := api.NewAuthHandler(application.Auth, application.Users)
	equipmentHandler := api.NewEquipmentHandler(application.Equipment)
	bookingHandler := api.NewBookingHandler(application.Bookings)

	// Set up gRPC server
	lis, err := net.Listen("tcp", cfg.GetServerAddress())
	if err != nil {
		logger.Error("Failed to listen", "error", err, "address", cfg.GetServerAddress())
		log.Fatalf("Failed to listen: %v", err)
	}

	authInterceptor := interceptor.NewAuthInterceptor(application.Tokens)
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(interceptor.Errors(), authInterceptor.Unary()),
	)

	// Register services
	api.Register(s, authHandler, equipmentHandler, bookingHandler)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(s, healthServer)

	// Register reflection service for grpcurl
	reflection.Register(s)

	// Public HTTP read API
	var httpServer *http.Server
	if addr := cfg.GetHTTPAddress(); addr != "" {
		httpServer = &http.Server{
			Addr:              addr,
			Handler:           httpapi.NewRouter(application.Equipment),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("HTTP server listening", "address", addr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("HTTP server error", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down...")
		healthServer.Shutdown()
		if httpServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Warn("HTTP shutdown failed", "error", err)
			}
		}
		s.GracefulStop()
	}()

	logger.Info("gRPC server listening", "address", cfg.GetServerAddress())
	if err := s.Serve(lis); err != nil {
		logger.Error("Failed to serve gRPC", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
	logger.Info("Server stopped")
}
