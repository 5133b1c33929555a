package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"filehub/internal/auth"
	"filehub/internal/config"
	"filehub/internal/file"
	"filehub/internal/logger"
	"filehub/internal/metrics"
	"filehub/internal/server"
	"filehub/internal/storage"
	"filehub/internal/userinfo"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logg, err := logger.Init()
	if err != nil {
		panic("init logger: " + err.Error())
	}
	defer logg.Sync()

	cfg, err := config.Load()
	if err != nil {
		logg.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := storage.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logg.Fatal("connect postgres", zap.Error(err))
	}
	defer dbPool.Close()

	if err := storage.Migrate(ctx, dbPool); err != nil {
		logg.Fatal("migrate schema", zap.Error(err))
	}

	var (
		blobs       file.BlobStore
		minioClient *minio.Client
	)
	switch cfg.Storage.Backend {
	case config.StorageBackendMinIO:
		minioClient, err = storage.NewMinIOClient(cfg.MinIO)
		if err != nil {
			logg.Fatal("connect minio", zap.Error(err))
		}
		if err := storage.EnsureBucket(ctx, minioClient, cfg.MinIO.Bucket, cfg.MinIO.Region); err != nil {
			logg.Fatal("ensure bucket", zap.Error(err))
		}
		blobs = file.NewMinIOStore(minioClient, cfg.MinIO.Bucket)
	default:
		blobs, err = file.NewDiskStore(cfg.Storage.UploadDir)
		if err != nil {
			logg.Fatal("init upload dir", zap.Error(err))
		}
	}

	metrics.InitMetrics()

	authRepo := auth.NewRepository(dbPool)
	authService := auth.NewService(authRepo, cfg.Auth)

	infoRepo := userinfo.NewRepository(dbPool)
	infoService := userinfo.NewService(infoRepo)

	fileRepo := file.NewRepository(dbPool)
	fileService := file.NewService(fileRepo, blobs)
	fileService.SetLimits(cfg.Storage.MaxFileSize, cfg.Storage.MaxBatchFiles)

	router := server.NewRouter(server.Dependencies{
		Config:          cfg,
		Logger:          logg,
		DB:              dbPool,
		ObjectStore:     minioClient,
		AuthService:     authService,
		UserInfoService: infoService,
		FileService:     fileService,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logg.Info("FileHub API listening", zap.String("address", cfg.Server.Address()))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logg.Info("shutting down gracefully")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logg.Error("shutdown error", zap.Error(err))
	}
}
