package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/tdd/internal/application/dto"
	"github.com/YoshitsuguKoike/tdd/internal/validator/common"
	schemavalidator "github.com/YoshitsuguKoike/tdd/internal/validator/schema"
)

func newSchemaCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage artifact schemas",
		Long: `Schemas define the artifacts a change produces and their dependencies.
Project schemas live in tdd/schemas/<name>/schema.yaml and shadow built-in ones.`,
	}
	cmd.AddCommand(newSchemaListCmd(rt))
	cmd.AddCommand(newSchemaInitCmd(rt))
	cmd.AddCommand(newSchemaForkCmd(rt))
	cmd.AddCommand(newSchemaValidateCmd(rt))
	return cmd
}

func newSchemaListCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and project schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := rt.container
			entries, err := c.GetSchemaStore().List()
			if err != nil {
				return rt.fail(err)
			}

			resp := &dto.SchemaListResponse{Schemas: make([]dto.SchemaSummary, 0, len(entries))}
			for _, e := range entries {
				summary := dto.SchemaSummary{Name: e.Name, Source: string(e.Source), Artifacts: []string{}}
				switch {
				case e.Err != nil:
					summary.Error = e.Err.Error()
				case e.Definition != nil:
					summary.Description = e.Definition.Description
					summary.Artifacts = e.Definition.ArtifactIDs()
				}
				resp.Schemas = append(resp.Schemas, summary)
			}
			return c.GetPresenter().PresentSuccess("", resp)
		},
	}
}

func newSchemaInitCmd(rt *runtime) *cobra.Command {
	var (
		description string
		artifacts   string
	)

	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Create a project schema with a linear artifact chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := rt.container
			var ids []string
			if artifacts != "" {
				ids = strings.Split(artifacts, ",")
			}

			dir, err := c.GetSchemaStore().Init(args[0], description, ids)
			if err != nil {
				return rt.fail(err)
			}
			return c.GetPresenter().PresentSuccess(fmt.Sprintf("Created schema %s", args[0]), &dto.SchemaCreatedResponse{
				Name: args[0],
				Path: rt.rel(dir),
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "schema description")
	cmd.Flags().StringVar(&artifacts, "artifacts", "", "comma-separated artifact ids, each requiring the previous one")
	return cmd
}

func newSchemaForkCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "fork <source> <name>",
		Short: "Copy an existing schema into the project under a new name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := rt.container
			source, name := args[0], args[1]

			from, err := c.GetSchemaStore().Resolve(source)
			if err != nil {
				return rt.fail(err)
			}
			dir, err := c.GetSchemaStore().Fork(source, name)
			if err != nil {
				return rt.fail(err)
			}
			return c.GetPresenter().PresentSuccess(fmt.Sprintf("Forked schema %s to %s", source, name), &dto.SchemaCreatedResponse{
				Name:   name,
				Path:   rt.rel(dir),
				Source: string(from),
			})
		},
	}
}

func newSchemaValidateCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <name>",
		Short: "Check a schema for unknown, duplicate and circular dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := rt.container
			name := args[0]

			def, _, err := c.GetSchemaStore().Load(name)
			if err != nil {
				return rt.fail(err)
			}
			result := common.NewValidationResult(schemavalidator.Validate(*def))
			if err := c.GetPresenter().PresentSuccess("", &dto.SchemaValidationResponse{
				Name:      name,
				Artifacts: def.ArtifactIDs(),
				Result:    result,
			}); err != nil {
				return err
			}
			if !result.Valid {
				return fmt.Errorf("schema %q has %d error(s)", name, result.Summary.Error)
			}
			return nil
		},
	}
}
