package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nathoo/meganjourney/config"
	"github.com/nathoo/meganjourney/logger"
)

// initLogger installs the default logger. Logs go to the configured file,
// else to stderr for the plain CLI. The full-screen UI owns the terminal,
// so without a log file it logs nothing. The returned func closes the file.
func initLogger(cfg *config.Config, interactive bool) (*slog.Logger, func(), error) {
	// Source locations only help while developing.
	addSource := cfg.Environment == logger.EnvironmentDev && cfg.LogLevel == logger.LogLevelDebug

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		version,
		cfg.Environment,
		addSource,
	)

	var w io.Writer
	closeFn := func() {}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	case interactive:
		l := logger.Discard()
		slog.SetDefault(l)
		return l, closeFn, nil
	default:
		w = os.Stderr
	}

	return logger.InitLogger(loggerConfig, w), closeFn, nil
}
