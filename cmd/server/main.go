package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sevlyar/go-daemon"
	"github.com/spf13/cobra"

	"facebook-data-reader/internal/cache"
	"facebook-data-reader/internal/core/patterns"
	"facebook-data-reader/internal/core/reader"
	applog "facebook-data-reader/internal/log"
	"facebook-data-reader/internal/pkg/config"
	"facebook-data-reader/internal/server"
	"facebook-data-reader/internal/server/usecase"
)

func main() {
	var (
		configPath string
		background bool
	)

	cmd := &cobra.Command{
		Use:           "server",
		Short:         "HTTP-сервер асинхронной загрузки экспортов Facebook",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, background)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFile, "путь к файлу конфигурации")
	cmd.Flags().BoolVar(&background, "daemon", false, "запустить в фоновом режиме")

	if err := cmd.Execute(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}

// run инкапсулирует всю логику инициализации и запуска приложения.
func run(configPath string, background bool) error {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Фоновый режим: родительский процесс завершается после запуска потомка
	if background {
		dctx := &daemon.Context{
			PidFileName: cfg.Server.PidFile,
			PidFilePerm: 0o644,
			LogFileName: cfg.Server.LogFile,
			LogFilePerm: 0o640,
			Umask:       0o027,
		}
		child, err := dctx.Reborn()
		if err != nil {
			return fmt.Errorf("failed to daemonize: %w", err)
		}
		if child != nil {
			fmt.Printf("Сервер запущен в фоне, pid %d\n", child.Pid)
			return nil
		}
		defer dctx.Release()
	}

	// 3. Инициализация логгера
	logger, err := applog.NewLogger(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	// 4. Валидация конфигурации (после инициализации логгера)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// 5. Инициализация зависимостей
	opts := []reader.Option{reader.WithLayout(reader.Layout(cfg.Layout))}
	if cfg.Export.PatternsFile != "" {
		table, err := patterns.LoadFile(cfg.Export.PatternsFile)
		if err != nil {
			return err
		}
		opts = append(opts, reader.WithPatterns(table))
	}

	taskStore := server.NewTaskStore()
	cacheStore := cache.NewCacheStore()
	loader := usecase.NewLoadExportUseCase(cfg, reader.New(opts...), cacheStore)

	// 6. Создание HTTP-сервера
	srv, err := server.New(cfg, loader, taskStore, cacheStore)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// 7. Запуск сервера и graceful shutdown
	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		slog.Info("Starting server", "addr", cfg.Address())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		slog.Info("Signal received, shutting down...")
	case <-serverDone:
		return fmt.Errorf("server stopped unexpectedly")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	<-serverDone
	slog.Info("Application exited gracefully")
	return nil
}
