package cli

import (
	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/tdd/internal/application/dto"
	"github.com/YoshitsuguKoike/tdd/internal/domain/change"
	"github.com/YoshitsuguKoike/tdd/internal/domain/schema"
)

func newListCmd(rt *runtime) *cobra.Command {
	var archived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List changes in creation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := rt.container
			changes := c.GetChangeService()

			var (
				infos []change.Info
				err   error
			)
			if archived {
				infos, err = changes.ListArchived(cmd.Context())
			} else {
				infos, err = changes.List(cmd.Context())
			}
			if err != nil {
				return rt.fail(err)
			}
			return c.GetPresenter().PresentSuccess("", &dto.ChangeListResponse{Changes: rt.relInfos(infos)})
		},
	}

	cmd.Flags().BoolVar(&archived, "archived", false, "list archived changes instead")
	return cmd
}

func newShowCmd(rt *runtime) *cobra.Command {
	var withTemplate bool
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a change and the state of its artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := rt.container

			info, err := c.GetChangeService().Get(cmd.Context(), args[0])
			if err != nil {
				return rt.fail(err)
			}
			def, _, err := c.GetSchemaStore().Load(info.Schema)
			if err != nil {
				return rt.fail(err)
			}
			states, err := c.GetArtifactStatusService().States(cmd.Context(), info.Name, *def)
			if err != nil {
				return rt.fail(err)
			}

			resp := &dto.ChangeDetailResponse{Change: *info, States: states}
			resp.Change.Path = rt.rel(info.Path)
			if next, ok := schema.FirstReady(states); ok {
				resp.Next = &next
				if withTemplate && next.Template != "" {
					body, found, err := c.GetSchemaStore().Template(info.Schema, next.Template)
					if err != nil {
						return rt.fail(err)
					}
					if found {
						resp.NextTemplate = body
					}
				}
			}
			return c.GetPresenter().PresentSuccess("", resp)
		},
	}
	cmd.Flags().BoolVar(&withTemplate, "template", false, "Print the template of the next ready artifact")
	return cmd
}

func newStatusCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show active and archived change counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := rt.container
			changes := c.GetChangeService()

			active, err := changes.List(cmd.Context())
			if err != nil {
				return rt.fail(err)
			}
			archived, err := changes.ListArchived(cmd.Context())
			if err != nil {
				return rt.fail(err)
			}
			return c.GetPresenter().PresentSuccess("", &dto.StatusResponse{
				Changes:  rt.relInfos(active),
				Archived: len(archived),
			})
		},
	}
}

func (rt *runtime) relInfos(infos []change.Info) []change.Info {
	out := make([]change.Info, len(infos))
	for i, info := range infos {
		info.Path = rt.rel(info.Path)
		out[i] = info
	}
	return out
}
