package main

import (
	"context"
	"log"
	"net"
	"syscall"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"

	"github.com/Leganyst/service-provider-api/internal/config"
	"github.com/Leganyst/service-provider-api/internal/db"
	httpapi "github.com/Leganyst/service-provider-api/internal/http"
	httpH "github.com/Leganyst/service-provider-api/internal/http/handlers"
	"github.com/Leganyst/service-provider-api/internal/logging"
	"github.com/Leganyst/service-provider-api/internal/model"
	"github.com/Leganyst/service-provider-api/internal/repository"
	"github.com/Leganyst/service-provider-api/internal/service"
	"github.com/Leganyst/service-provider-api/internal/shutdown"
)

func main() {
	// 1. Конфиг: .env, CONFIG_FILE, переменные окружения.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New(cfg.App.LogLevel)
	defer func() { _ = logger.Sync() }()

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(&cfg.DB, logger)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("sql DB: %v", err)
	}

	// 4. Репозитории и сервис.
	providerRepo := repository.NewGormProviderRepository(gormDB)
	reviewRepo := repository.NewGormReviewRepository(gormDB)
	providerSvc := service.NewProviderService(providerRepo, reviewRepo, logger)

	// 5. HTTP API.
	gin.SetMode(cfg.App.GinMode)
	httpServer := httpapi.NewServer(cfg.App.HTTPAddr, httpapi.RouterConfig{
		ProviderHandler: httpH.NewProviderHandler(providerSvc),
		HealthHandler:   httpH.NewHealthHandler(),
		Logger:          logger.With("component", "http"),
		CORSOrigins:     cfg.App.CORSAllowedOrigins,
	})

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.App.HTTPAddr)
		if err := httpServer.Run(); err != nil {
			log.Fatalf("http serve: %v", err)
		}
	}()

	// 6. gRPC API.
	grpcServer := grpc.NewServer()
	health := service.RegisterDirectoryService(grpcServer, service.NewDirectoryService(providerSvc))

	lis, err := net.Listen("tcp", cfg.App.GRPCAddr)
	if err != nil {
		log.Fatalf("listen %s: %v", cfg.App.GRPCAddr, err)
	}

	go func() {
		logger.Info("gRPC server listening", "addr", cfg.App.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("grpc serve: %v", err)
		}
	}()

	// 7. Грейсфул-шатдаун по сигналу.
	shutdown.Wait(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	logger.Info("shutdown signal received")

	shutdown.Graceful(cfg.App.ShutdownTimeout(), logger,
		shutdown.StopFunc(func(ctx context.Context) error {
			health.Shutdown()
			return httpServer.Shutdown(ctx)
		}),
		shutdown.StopFunc(func(ctx context.Context) error {
			stopped := make(chan struct{})
			go func() {
				grpcServer.GracefulStop()
				close(stopped)
			}()
			select {
			case <-stopped:
				return nil
			case <-ctx.Done():
				grpcServer.Stop()
				return ctx.Err()
			}
		}),
		shutdown.StopFunc(func(context.Context) error {
			return sqlDB.Close()
		}),
	)
}
