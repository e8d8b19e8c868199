package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/tdd/internal/application/dto"
)

func newValidateCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <name>",
		Short: "Check a change's artifacts for structural problems",
		Long: `Check .tdd.yaml, intent.md, test-plan.md and tasks.md of a change.
Exits non-zero when any error-level issue is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := rt.container
			name := args[0]

			result, err := c.GetChangeValidator().Validate(c.Paths().Change(name), name)
			if err != nil {
				return rt.fail(err)
			}
			for i := range result.Issues {
				if result.Issues[i].File != "" {
					result.Issues[i].File = rt.rel(result.Issues[i].File)
				}
			}
			if err := c.GetPresenter().PresentSuccess("", &dto.ValidationResponse{Name: name, Result: result}); err != nil {
				return err
			}
			if !result.Valid {
				return fmt.Errorf("change %q has %d error(s)", name, result.Summary.Error)
			}
			return nil
		},
	}
}
