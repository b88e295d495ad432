package bootstrap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/EcoHunt_Go/internal/config"
	"github.com/osse101/EcoHunt_Go/internal/logger"
)

// SetupLogger installs the default logger writing to stdout and a fresh
// session file under cfg.LogDir. Older session files beyond the retention
// count are removed. The caller must close the returned file.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateLogsDir, err)
	}

	cleanupLogs(cfg.LogDir, LogFileRetentionCount)

	name := fmt.Sprintf(LogFileNamePattern, time.Now().Format(LogFileTimestampFormat))
	logFile, err := os.OpenFile(filepath.Join(cfg.LogDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenLogFile, err)
	}

	logger.InitLoggerWithWriter(LoggerConfig(cfg), io.MultiWriter(os.Stdout, logFile))

	logger.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "format", cfg.LogFormat)
	logger.Info(LogMsgStartingEngine,
		"environment", cfg.Environment,
		"version", cfg.Version)
	logger.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_name", cfg.DBName,
		"port", cfg.Port,
		"photo_store", cfg.PhotoStore,
		"issuer", cfg.Issuer,
		"workers", cfg.WorkerCount)

	return logFile, nil
}

// LoggerConfig derives the logger settings from the app configuration.
// Source locations are only logged in development.
func LoggerConfig(cfg *config.Config) logger.Config {
	return logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		cfg.IsDevelopment(),
	)
}

// cleanupLogs keeps the keep newest session logs in logDir. Session names
// embed a sortable timestamp so lexical order is age order.
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			names = append(names, entry.Name())
		}
	}
	if len(names) <= keep {
		return
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(logDir, name)); err != nil {
			logger.Warn(LogMsgFailedDeleteOldLog, "file", name, "error", err)
		}
	}
}
