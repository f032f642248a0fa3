package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/poofware/property-records-service/internal/app"
	"github.com/poofware/property-records-service/internal/config"
	"github.com/poofware/property-records-service/internal/utils"
)

func main() {
	appName := config.AppName
	if appName == "" {
		appName = config.DefaultAppName
	}
	utils.InitLogger(appName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1) Config
	cfg := config.LoadConfig()
	defer cfg.Close()

	// 2) Core application (storage, services)
	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize app: ", err)
	}
	defer application.Close()

	if cfg.LDFlag_SeedDbWithTestData {
		if err := app.SeedAllTestData(ctx, application.RecordService); err != nil {
			utils.Logger.Fatal("Failed to seed test data: ", err)
		}
	}

	// 3) Background stats job
	if err := application.StartScheduler(); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule record stats job")
	}

	// 4) Router + server
	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           app.NewRouter(application),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			utils.Logger.WithError(err).Error("Error during server shutdown")
		}
	}()

	utils.Logger.Infof("Starting %s on :%s", cfg.AppName, cfg.AppPort)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		utils.Logger.Fatal("Server error: ", err)
	}
}
