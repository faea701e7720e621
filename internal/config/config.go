// Package config 從環境變數讀取執行設定。
package config

import (
	"fmt"
	"os"
	"strings"

	"atm/internal/journal"
	"atm/internal/logging"
)

// Mode 決定程式對外的介面。
type Mode string

const (
	// ModeConsole 執行一次「授權 + 提款」的互動流程後結束。
	ModeConsole Mode = "console"
	// ModeHTTP 啟動 HTTP 伺服器。
	ModeHTTP Mode = "http"
)

// Config 為完整執行設定。
type Config struct {
	Environment logging.Environment
	LogLevel    string
	Mode        Mode
	HTTPAddr    string
	SeedFile    string // 空字串代表使用出廠預設
	JournalFile string
}

// Load 讀取以下環境變數：
//
//	ATM_ENV           production | staging | development | local（預設 production）
//	ATM_LOG_LEVEL     debug | info | warn | error（預設依環境）
//	ATM_MODE          console | http（預設 console）
//	ATM_HTTP_ADDR     預設 :8080
//	ATM_SEED_FILE     seed JSON 路徑，未設定則使用預設 seed
//	ATM_JOURNAL_FILE  稽核檔路徑，預設 atm_log.txt
func Load() (Config, error) {
	cfg := Config{
		Environment: logging.Environment(getenvOrDefault("ATM_ENV", string(logging.EnvironmentProduction))),
		LogLevel:    getenvOrDefault("ATM_LOG_LEVEL", ""),
		Mode:        Mode(strings.ToLower(getenvOrDefault("ATM_MODE", string(ModeConsole)))),
		HTTPAddr:    getenvOrDefault("ATM_HTTP_ADDR", ":8080"),
		SeedFile:    getenvOrDefault("ATM_SEED_FILE", ""),
		JournalFile: getenvOrDefault("ATM_JOURNAL_FILE", journal.DefaultPath),
	}

	switch cfg.Mode {
	case ModeConsole, ModeHTTP:
	default:
		return cfg, fmt.Errorf("invalid ATM_MODE %q", cfg.Mode)
	}
	return cfg, nil
}

// Logging 回傳對應的 logging.Config。
func (c Config) Logging() logging.Config {
	return logging.Config{Environment: c.Environment, Level: c.LogLevel}
}

func getenvOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
