package config

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/disease-predictor/internal/domain"
)

// NewLogger builds a logrus logger from the logging configuration. Output
// goes to stderr by default since stdout carries the MCP stdio stream.
func NewLogger(cfg domain.LoggingConfig, out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	if out == nil {
		out = os.Stderr
	}
	logger.SetOutput(out)

	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)

	return logger, nil
}
