package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"courierdesk/cmd"
	httpadapter "courierdesk/internal/adapters/in/http"
	"courierdesk/internal/adapters/out/postgres"
	"courierdesk/internal/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(config.LogLevel)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	gormDB, err := openDatabase(config)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	zapLogger.Info("database connected")

	if err = postgres.Migrate(gormDB); err != nil {
		zapLogger.Fatal("migrating database", zap.Error(err))
	}

	app := cmd.NewCompositionRoot(config, gormDB, zapLogger)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), config.RequestTimeout)
	err = app.SeedCompanySettings(seedCtx)
	cancelSeed()
	if err != nil {
		zapLogger.Fatal("seeding company settings", zap.Error(err))
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		zapLogger.Fatal("starting jobs", zap.Error(err))
	}

	router := httpadapter.NewRouter(app.CreateServer(), config.RequestTimeout, zapLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		zapLogger.Info("http server started", zap.String("port", config.HTTPPort))
		if startErr := router.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); startErr != nil &&
			!errors.Is(startErr, http.ErrServerClosed) {
			zapLogger.Error("http server error", zap.Error(startErr))
			stop()
		}
	}()

	<-ctx.Done()
	zapLogger.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = router.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("http server shutdown failed", zap.Error(err))
	}
	jobManager.StopAll()

	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}

	zapLogger.Info("server stopped gracefully")
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(config.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(config.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.DBConnMaxLifetime)

	return gormDB, nil
}
