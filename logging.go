package main

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	persistentLogFile *os.File
	loggingMu         sync.Mutex
)

func defaultPersistentLogPath() string {
	return os.Getenv("SYSAGENT_LOG_FILE")
}

// setupLogger initializes the structured logger. When SYSAGENT_LOG_FILE
// is set, log lines go to stdout and the file.
func setupLogger() {
	loggingMu.Lock()
	defer loggingMu.Unlock()

	if persistentLogFile != nil {
		_ = persistentLogFile.Sync()
		_ = persistentLogFile.Close()
		persistentLogFile = nil
	}

	var out io.Writer = os.Stdout
	if logPath := defaultPersistentLogPath(); logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			persistentLogFile = logFile
			out = io.MultiWriter(os.Stdout, logFile)
		}
	}

	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	handler := slog.NewTextHandler(out, opts)
	logger := slog.New(handler).With("app", "sysagent")
	slog.SetDefault(logger)

	if persistentLogFile != nil {
		slog.Info("Persistent logging enabled", "file", defaultPersistentLogPath())
	}
}

func closeLogger() {
	loggingMu.Lock()
	defer loggingMu.Unlock()

	if persistentLogFile == nil {
		return
	}
	_ = persistentLogFile.Sync()
	_ = persistentLogFile.Close()
	persistentLogFile = nil
}
