package cli

import (
	"github.com/spf13/cobra"
)

func newViewCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show a dashboard of active and archived changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := rt.container
			if err := rt.requireProject(); err != nil {
				return rt.fail(err)
			}
			resp, err := c.GetDashboardService().Build(cmd.Context(), c.Settings())
			if err != nil {
				return rt.fail(err)
			}
			return c.GetPresenter().PresentSuccess("", resp)
		},
	}
}
