package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/disease-predictor/internal/domain"
	"github.com/disease-predictor/internal/schema"
)

// PredictParams defines parameters for the predict tool
type PredictParams struct {
	Domain string                 `json:"domain" jsonschema:"disease domain, e.g. diabetes or heart_disease"`
	Values map[string]interface{} `json:"values" jsonschema:"field name to numeric value"`
}

// ListDomainsParams defines parameters for the list_domains tool
type ListDomainsParams struct{}

// GetSchemaParams defines parameters for the get_schema tool
type GetSchemaParams struct {
	Domain string `json:"domain" jsonschema:"disease domain"`
}

// DomainSummary is one entry of the list_domains result
type DomainSummary struct {
	Domain    domain.Domain `json:"domain"`
	Title     string        `json:"title"`
	Disease   string        `json:"disease"`
	Dimension int           `json:"dimension"`
	Family    string        `json:"model_family,omitempty"`
	Version   string        `json:"model_version,omitempty"`
}

// SchemaResult is the get_schema result
type SchemaResult struct {
	Domain domain.Domain      `json:"domain"`
	Title  string             `json:"title"`
	Fields []domain.FieldSpec `json:"fields"`
}

// ToolError is the payload of an error tool result
type ToolError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// handlePredict handles the predict tool invocation
func (s *Server) handlePredict(ctx context.Context, req *mcp.CallToolRequest, params PredictParams) (*mcp.CallToolResult, any, error) {
	log := s.logger.WithFields(logrus.Fields{"tool": "predict", "domain": params.Domain})
	log.Debug("Tool invoked")

	if err := s.allow(ctx); err != nil {
		return s.createErrorResult(err), nil, nil
	}

	d, err := schema.ParseDomain(params.Domain)
	if err != nil {
		return s.createErrorResult(err), nil, nil
	}

	result, err := s.predictor.Predict(ctx, d, params.Values)
	if err != nil {
		return s.createErrorResult(err), nil, nil
	}

	return s.createJSONResult(result), nil, nil
}

// handleListDomains handles the list_domains tool invocation
func (s *Server) handleListDomains(ctx context.Context, req *mcp.CallToolRequest, params ListDomainsParams) (*mcp.CallToolResult, any, error) {
	s.logger.WithField("tool", "list_domains").Debug("Tool invoked")

	if err := s.allow(ctx); err != nil {
		return s.createErrorResult(err), nil, nil
	}

	var summaries []DomainSummary
	for _, d := range schema.Domains() {
		sc, err := schema.GetSchema(d)
		if err != nil {
			return s.createErrorResult(err), nil, nil
		}
		summary := DomainSummary{
			Domain:    d,
			Title:     sc.Title(),
			Disease:   sc.Disease(),
			Dimension: sc.Dimension(),
		}
		if s.models != nil {
			if info, ok := s.models.Info(d); ok {
				summary.Family = string(info.Family)
				summary.Version = info.Version
			}
		}
		summaries = append(summaries, summary)
	}

	return s.createJSONResult(summaries), nil, nil
}

// handleGetSchema handles the get_schema tool invocation
func (s *Server) handleGetSchema(ctx context.Context, req *mcp.CallToolRequest, params GetSchemaParams) (*mcp.CallToolResult, any, error) {
	s.logger.WithFields(logrus.Fields{"tool": "get_schema", "domain": params.Domain}).Debug("Tool invoked")

	if err := s.allow(ctx); err != nil {
		return s.createErrorResult(err), nil, nil
	}

	d, err := schema.ParseDomain(params.Domain)
	if err != nil {
		return s.createErrorResult(err), nil, nil
	}
	sc, err := schema.GetSchema(d)
	if err != nil {
		return s.createErrorResult(err), nil, nil
	}

	return s.createJSONResult(SchemaResult{
		Domain: d,
		Title:  sc.Title(),
		Fields: sc.Fields(),
	}), nil, nil
}

// errRateLimited is returned when the tool-call budget is exhausted
var errRateLimited = errors.New("rate limit exceeded, retry later")

func (s *Server) allow(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.limiter != nil && !s.limiter.Allow() {
		return errRateLimited
	}
	return nil
}

// createJSONResult renders v as the text content of a tool result
func (s *Server) createJSONResult(v interface{}) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return s.createErrorResult(fmt.Errorf("failed to encode result: %w", err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}
}

// createErrorResult creates a standardized error result for tool calls
func (s *Server) createErrorResult(err error) *mcp.CallToolResult {
	toolErr := ToolError{
		Code:    domain.ErrorCode(err),
		Message: err.Error(),
	}
	switch {
	case errors.Is(err, errRateLimited):
		toolErr.Code = domain.ErrRateLimit
	case toolErr.Code != domain.ErrInternal:
		// typed errors carry their fields as JSON
		toolErr.Details = err
	}

	data, marshalErr := json.Marshal(toolErr)
	if marshalErr != nil {
		toolErr.Details = nil
		data, _ = json.Marshal(toolErr)
	}

	if toolErr.Code == domain.ErrInternal {
		s.logger.WithError(err).Error("Tool call failed")
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
		IsError: true,
	}
}
