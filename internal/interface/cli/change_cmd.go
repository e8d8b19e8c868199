package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/tdd/internal/application/dto"
)

func newChangeCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "change",
		Short: "Manage changes",
	}
	cmd.AddCommand(newChangeNewCmd(rt))
	return cmd
}

func newChangeNewCmd(rt *runtime) *cobra.Command {
	var schemaName string

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new change",
		Long: `Create tdd/changes/<name> with its .tdd.yaml metadata.
The name is normalised into a lowercase kebab-case slug.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := rt.container
			if err := rt.requireProject(); err != nil {
				return rt.fail(err)
			}
			if schemaName == "" {
				schemaName = c.Settings().Schema()
			}

			res, err := c.GetChangeService().Create(cmd.Context(), args[0], schemaName)
			if err != nil {
				return rt.fail(err)
			}
			states, err := c.GetArtifactStatusService().States(cmd.Context(), res.Meta.Name, *res.Definition)
			if err != nil {
				return rt.fail(err)
			}

			return c.GetPresenter().PresentSuccess(fmt.Sprintf("Created change %s", res.Meta.Name), &dto.CreateChangeResponse{
				Name:   res.Meta.Name,
				Schema: res.Meta.Schema,
				Path:   rt.rel(res.Path),
				States: states,
			})
		},
	}

	cmd.Flags().StringVar(&schemaName, "schema", "", "schema to use (defaults to config.yaml)")
	return cmd
}
