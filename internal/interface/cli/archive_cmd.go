package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/tdd/internal/application/dto"
	"github.com/YoshitsuguKoike/tdd/internal/infra/diff"
)

func newArchiveCmd(rt *runtime) *cobra.Command {
	var (
		noSync bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "archive <name>",
		Short: "Merge a change's coverage deltas and move it to the archive",
		Long: `Merge tdd/changes/<name>/coverage into tdd/coverage, then move the change
to tdd/changes/archive/<YYYY-MM-DD>-<name>. Incomplete tasks only warn.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := rt.container
			name := args[0]

			if dryRun {
				resp, archivePath, err := rt.preview(cmd.Context(), name, !noSync)
				if err != nil {
					return rt.fail(err)
				}
				if err := c.GetPresenter().PresentWarnings(resp.Warnings); err != nil {
					return err
				}
				return c.GetPresenter().PresentSuccess("Dry run: would archive to "+archivePath, resp)
			}

			res, err := c.GetArchiveService().Archive(cmd.Context(), name, !noSync)
			if err != nil {
				return rt.fail(err)
			}
			if err := c.GetPresenter().PresentWarnings(res.Warnings); err != nil {
				return err
			}
			return c.GetPresenter().PresentSuccess("", &dto.ArchiveResponse{
				ArchivePath:    rt.rel(res.ArchivePath),
				SyncedCoverage: rt.relAll(res.SyncedCoverage),
				Warnings:       res.Warnings,
			})
		},
	}

	cmd.Flags().BoolVar(&noSync, "no-sync", false, "skip merging coverage deltas")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the coverage diffs without writing anything")
	return cmd
}

func newCoverageCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Inspect coverage documents",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "preview <name>",
		Short: "Show the coverage diffs archiving a change would apply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := rt.container
			resp, _, err := rt.preview(cmd.Context(), args[0], true)
			if err != nil {
				return rt.fail(err)
			}
			if err := c.GetPresenter().PresentWarnings(resp.Warnings); err != nil {
				return err
			}
			changed := 0
			for _, f := range resp.Files {
				if f.Diff != "" {
					changed++
				}
			}
			return c.GetPresenter().PresentSuccess(fmt.Sprintf("%d coverage file(s) would change", changed), resp)
		},
	})
	return cmd
}

// preview renders the planned coverage writes of name as unified diffs
func (rt *runtime) preview(ctx context.Context, name string, syncCoverage bool) (*dto.CoveragePreviewResponse, string, error) {
	p, err := rt.container.GetArchiveService().Preview(ctx, name, syncCoverage)
	if err != nil {
		return nil, "", err
	}

	resp := &dto.CoveragePreviewResponse{
		Name:     name,
		Warnings: p.Warnings,
		Files:    make([]dto.CoverageFileDiff, 0, len(p.Plan)),
	}
	for _, w := range p.Plan {
		d, err := diff.Unified(w.RelPath, w.Existing, w.Merged, diff.DefaultContext)
		if err != nil {
			return nil, "", fmt.Errorf("failed to diff %s: %w", w.Destination, err)
		}
		resp.Files = append(resp.Files, dto.CoverageFileDiff{
			Destination: rt.rel(w.Destination),
			Created:     w.Created(),
			Diff:        d,
		})
	}
	return resp, rt.rel(p.ArchivePath), nil
}
