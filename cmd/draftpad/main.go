package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/draftpad/internal/backup"
	"github.com/xxxsen/draftpad/internal/config"
	"github.com/xxxsen/draftpad/internal/handler"
	"github.com/xxxsen/draftpad/internal/job"
	"github.com/xxxsen/draftpad/internal/middleware"
	"github.com/xxxsen/draftpad/internal/schedule"
	"github.com/xxxsen/draftpad/internal/service"
	"github.com/xxxsen/draftpad/internal/store"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "draftpad",
		Short: "draftpad backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run draftpad server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
			return runServer(cfg)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("store", cfg.Store.Type),
	)

	st, err := store.New(cfg.Store)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer func() { _ = st.Close() }()

	drafts := service.NewDraftService(st, nil, nil, cfg.Cache.Size, time.Duration(cfg.Cache.TTLSeconds)*time.Second)

	deps := handler.RouterDeps{
		Drafts:    handler.NewDraftHandler(drafts),
		Revisions: handler.NewRevisionHandler(drafts),
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if cfg.Backup.Enable {
		target, err := backup.New(cfg.Backup.Target)
		if err != nil {
			return fmt.Errorf("init backup target: %w", err)
		}
		if err := scheduler.AddJob(job.NewBackupJob(st, target), cfg.Backup.Cron); err != nil {
			return fmt.Errorf("schedule backup: %w", err)
		}
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
