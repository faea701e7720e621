// cmd/atm/main.go

// 提款機程式進入點。
// 依 ATM_MODE 執行一次 console 互動（預設），或啟動 HTTP 伺服器。
// 此檔案負責初始化各模組（config, logging, storage, journal, atm）並組裝。

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"atm/internal/atm"
	"atm/internal/config"
	"atm/internal/console"
	"atm/internal/journal"
	"atm/internal/logging"
	"atm/internal/server"
	"atm/internal/storage"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, _, err := logging.New(cfg.Logging())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// seed 由外部提供；未設定檔案時使用出廠預設
	seed, err := storage.LoadOrInit(cfg.SeedFile)
	if err != nil {
		logger.Fatal("load seed", zap.String("path", cfg.SeedFile), zap.Error(err))
	}

	m, err := atm.NewMachine(seed,
		atm.WithAuditSink(journal.NewFile(cfg.JournalFile)),
		atm.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal("init machine", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cfg.Mode {
	case config.ModeHTTP:
		runHTTP(ctx, cfg, m, logger)
	default:
		// 輸入串流錯誤已由 console 輸出訊息
		_ = console.New(m, os.Stdin, os.Stdout, logger).Run(ctx)
	}
}

func runHTTP(ctx context.Context, cfg config.Config, m *atm.Machine, logger *zap.Logger) {
	app := server.NewServer(m, logger).Router()

	// 收到 SIGINT/SIGTERM 後優雅關閉
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Warn("http shutdown", zap.Error(err))
		}
	}()

	logger.Info("ATM server running", zap.String("addr", cfg.HTTPAddr))
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		logger.Fatal("http listen", zap.Error(err))
	}
}
