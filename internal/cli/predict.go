package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/disease-predictor/internal/artifact"
	"github.com/disease-predictor/internal/schema"
	"github.com/disease-predictor/internal/service"
)

func predictCmd(configFile *string) *cobra.Command {
	var domainName string
	var sets []string
	var inputFile string
	var requestID string

	c := &cobra.Command{
		Use:   "predict",
		Short: "Run one prediction from --set pairs or an input file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := schema.ParseDomain(domainName)
			if err != nil {
				return err
			}

			values, err := readValues(inputFile, sets)
			if err != nil {
				return err
			}
			if len(values) == 0 {
				s, err := schema.GetSchema(d)
				if err != nil {
					return err
				}
				return fmt.Errorf("no values given; %s expects %s", d, strings.Join(s.Names(), ", "))
			}

			a, err := bootstrap(cmd.Context(), *configFile, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if requestID != "" {
				ctx = service.ContextWithRequestID(ctx, requestID)
			}

			dispatcher := service.NewDispatcher(a.registry, a.logger)
			result, err := dispatcher.Predict(ctx, d, values)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	c.Flags().StringVarP(&domainName, "domain", "d", "", "disease domain (required)")
	c.Flags().StringArrayVar(&sets, "set", nil, "field value as name=value, repeatable")
	c.Flags().StringVarP(&inputFile, "input", "i", "", "JSON or YAML file with field values")
	c.Flags().StringVar(&requestID, "request-id", "", "id to correlate log lines (default: random uuid)")

	_ = c.MarkFlagRequired("domain")
	c.MarkFlagsMutuallyExclusive("set", "input")
	return c
}

// readValues builds the raw value map from an input file or name=value pairs.
// Values stay uninterpreted; the validation engine decides what is numeric.
func readValues(inputFile string, sets []string) (map[string]interface{}, error) {
	values := make(map[string]interface{})

	if inputFile != "" {
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		format, err := artifact.FormatFromPath(inputFile)
		if err != nil {
			return nil, err
		}
		if format == artifact.FormatYAML {
			err = yaml.Unmarshal(data, &values)
		} else {
			dec := json.NewDecoder(bytes.NewReader(data))
			dec.UseNumber()
			err = dec.Decode(&values)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse input %s: %w", inputFile, err)
		}
		return values, nil
	}

	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q, want name=value", s)
		}
		values[name] = value
	}
	return values, nil
}
