package cli

import (
	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/tdd/internal/application/dto"
)

func newInitCmd(rt *runtime) *cobra.Command {
	var schemaName string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the tdd/ directory in the current project",
		Long: `Create tdd/, tdd/changes and tdd/coverage and write tdd/config.yaml.
Existing files are never overwritten, so running init again only fills in
what is missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := rt.container
			if schemaName == "" {
				schemaName = c.Settings().Schema()
			}
			if _, err := c.GetSchemaStore().Resolve(schemaName); err != nil {
				return rt.fail(err)
			}

			res, err := c.GetProjectService().Init(cmd.Context(), schemaName)
			if err != nil {
				return rt.fail(err)
			}

			message := "Initialized tdd project"
			if res.AlreadyExists {
				message = "tdd project already initialized"
			}
			return c.GetPresenter().PresentSuccess(message, &dto.InitResponse{
				Created:       rt.relAll(res.Created),
				AlreadyExists: res.AlreadyExists,
			})
		},
	}

	cmd.Flags().StringVar(&schemaName, "schema", "", "default schema recorded in config.yaml")
	return cmd
}
