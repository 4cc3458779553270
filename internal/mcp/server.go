// Package mcp exposes the prediction core as MCP tools over stdio.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/disease-predictor/internal/domain"
	"github.com/disease-predictor/internal/model"
)

// Predictor runs one prediction
type Predictor interface {
	Predict(ctx context.Context, d domain.Domain, raw map[string]interface{}) (*domain.PredictionResult, error)
}

// ModelCatalog describes the loaded classifiers
type ModelCatalog interface {
	Info(d domain.Domain) (model.Info, bool)
}

// Server is the MCP front end of the predictor
type Server struct {
	mcpServer *mcp.Server
	predictor Predictor
	models    ModelCatalog
	limiter   *rate.Limiter
	logger    *logrus.Logger
}

// NewServer creates the MCP server and registers its tools. models may be
// nil, in which case list_domains omits model metadata.
func NewServer(cfg *domain.Config, predictor Predictor, models ModelCatalog, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}

	s := &Server{
		predictor: predictor,
		models:    models,
		logger:    logger,
	}
	if cfg.RateLimit.Enabled {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.PerSecond), cfg.RateLimit.Burst)
	}

	serverInfo := &mcp.Implementation{
		Name:    cfg.Server.Name,
		Version: cfg.Server.Version,
	}
	s.mcpServer = mcp.NewServer(serverInfo, nil)
	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "predict",
		Description: "Validate clinical parameters for a disease domain and return the classifier's diagnosis",
	}, s.handlePredict)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_domains",
		Description: "List the supported disease domains with their input dimension and loaded model",
	}, s.handleListDomains)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_schema",
		Description: "Return the ordered input fields of a disease domain with their bounds",
	}, s.handleGetSchema)

	s.logger.WithField("tool_count", 3).Debug("Registered MCP tools")
}

// Start serves MCP over stdio until ctx is cancelled or the client disconnects
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting disease predictor MCP server on stdio")

	if err := s.mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
