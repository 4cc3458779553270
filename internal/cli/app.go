package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/disease-predictor/internal/config"
	"github.com/disease-predictor/internal/model"
)

// app holds what every model-backed command needs
type app struct {
	config   *config.Manager
	logger   *logrus.Logger
	registry *model.Registry
}

// bootstrap loads configuration and every model. Any model load failure is
// returned before a command does work.
func bootstrap(ctx context.Context, configFile string, logOut io.Writer) (*app, error) {
	manager, err := config.NewManager(configFile)
	if err != nil {
		return nil, err
	}
	if err := manager.Validate(); err != nil {
		return nil, err
	}

	logger, err := config.NewLogger(manager.GetConfig().Logging, logOut)
	if err != nil {
		return nil, err
	}
	if used := manager.ConfigFileUsed(); used != "" {
		logger.WithField("config_file", used).Debug("Loaded configuration")
	}

	registry, err := model.LoadAll(ctx, manager.ModelLocations(),
		model.WithBaseDir(manager.ModelsDir()),
		model.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("startup aborted: %w", err)
	}

	return &app{config: manager, logger: logger, registry: registry}, nil
}
