package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/disease-predictor/internal/artifact"
	"github.com/disease-predictor/internal/domain"
	"github.com/disease-predictor/internal/model"
	"github.com/disease-predictor/internal/schema"
)

func artifactsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "artifacts",
		Short: "Manage model artifacts stored in a database",
	}
	c.AddCommand(artifactsImportCmd())
	c.AddCommand(artifactsListCmd())
	c.AddCommand(artifactsExportCmd())
	return c
}

func artifactsImportCmd() *cobra.Command {
	var db string
	var domainName string

	c := &cobra.Command{
		Use:   "import <file>",
		Short: "Check an artifact file and store it for a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := schema.ParseDomain(domainName)
			if err != nil {
				return err
			}

			source, err := artifact.NewFileSource(args[0], "")
			if err != nil {
				return err
			}
			a, err := source.Fetch(cmd.Context(), d)
			if err != nil {
				return err
			}

			info, err := checkArtifact(d, a)
			if err != nil {
				return err
			}

			store, err := artifact.CreateSQLStore(cmd.Context(), db, "")
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Put(cmd.Context(), a); err != nil {
				return err
			}

			pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("imported %s model from %s (%s %s, sha256 %s)", d, source.Path(), info.Family, info.Version, a.Checksum)
			return nil
		},
	}

	c.Flags().StringVar(&db, "db", "", "sqlite:// or postgres:// location (required)")
	c.Flags().StringVarP(&domainName, "domain", "d", "", "disease domain (required)")
	_ = c.MarkFlagRequired("db")
	_ = c.MarkFlagRequired("domain")
	return c
}

// checkArtifact applies the startup checks so a bad artifact is refused at
// import time.
func checkArtifact(d domain.Domain, a *artifact.Artifact) (model.Info, error) {
	_, info, err := model.Prepare(d, a)
	if err != nil {
		return model.Info{}, &domain.ModelLoadError{Domain: d, Location: a.Location, Cause: err}
	}
	return info, nil
}

func artifactsListCmd() *cobra.Command {
	var db string

	c := &cobra.Command{
		Use:   "list",
		Short: "List domains with a stored artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := artifact.OpenSQLStore(cmd.Context(), db, "")
			if err != nil {
				return err
			}
			defer store.Close()

			domains, err := store.Domains(cmd.Context())
			if err != nil {
				return err
			}
			if len(domains) == 0 {
				pterm.Warning.WithWriter(cmd.ErrOrStderr()).Println("no artifacts stored")
				return nil
			}
			for _, d := range domains {
				pterm.Fprintln(cmd.OutOrStdout(), d)
			}
			return nil
		},
	}

	c.Flags().StringVar(&db, "db", "", "sqlite:// or postgres:// location (required)")
	_ = c.MarkFlagRequired("db")
	return c
}

func artifactsExportCmd() *cobra.Command {
	var db string
	var domainName string
	var formatName string

	c := &cobra.Command{
		Use:   "export",
		Short: "Print the stored artifact of a domain as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := schema.ParseDomain(domainName)
			if err != nil {
				return err
			}
			format, err := artifact.ParseFormat(formatName)
			if err != nil {
				return err
			}

			store, err := artifact.OpenSQLStore(cmd.Context(), db, "")
			if err != nil {
				return err
			}
			defer store.Close()

			a, err := store.Fetch(cmd.Context(), d)
			if err != nil {
				return err
			}
			_, doc, err := model.Decode(a)
			if err != nil {
				return &domain.ModelLoadError{Domain: d, Location: a.Location, Cause: err}
			}

			payload, err := doc.Marshal(format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(payload)
			return err
		},
	}

	c.Flags().StringVar(&db, "db", "", "sqlite:// or postgres:// location (required)")
	c.Flags().StringVarP(&domainName, "domain", "d", "", "disease domain (required)")
	c.Flags().StringVarP(&formatName, "format", "f", "yaml", "output format: json or yaml")
	_ = c.MarkFlagRequired("db")
	_ = c.MarkFlagRequired("domain")
	return c
}
