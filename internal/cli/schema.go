package cli

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/disease-predictor/internal/domain"
	"github.com/disease-predictor/internal/schema"
)

func domainsCmd() *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "domains",
		Short: "List supported disease domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			type row struct {
				Domain    domain.Domain `json:"domain"`
				Title     string        `json:"title"`
				Disease   string        `json:"disease"`
				Dimension int           `json:"dimension"`
			}

			var rows []row
			for _, d := range schema.Domains() {
				s, err := schema.GetSchema(d)
				if err != nil {
					return err
				}
				rows = append(rows, row{Domain: d, Title: s.Title(), Disease: s.Disease(), Dimension: s.Dimension()})
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rows)
			}

			data := pterm.TableData{{"DOMAIN", "FIELDS", "TITLE"}}
			for _, r := range rows {
				data = append(data, []string{string(r.Domain), strconv.Itoa(r.Dimension), r.Title})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(cmd.OutOrStdout()).Render()
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return c
}

func schemaCmd() *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "schema <domain>",
		Short: "Show the ordered input fields of a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := schema.ParseDomain(args[0])
			if err != nil {
				return err
			}
			s, err := schema.GetSchema(d)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), s.Fields())
			}

			data := pterm.TableData{{"POS", "NAME", "MIN", "MAX", "LABEL"}}
			for _, f := range s.Fields() {
				data = append(data, []string{strconv.Itoa(f.Position), f.Name,
					domain.FormatNumber(f.Min), domain.FormatNumber(f.Max), f.DisplayLabel})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(cmd.OutOrStdout()).Render()
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return c
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
