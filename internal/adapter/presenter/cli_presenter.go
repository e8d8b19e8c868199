package presenter

import (
	"fmt"
	"io"
	"strings"

	"github.com/YoshitsuguKoike/tdd/internal/application/dto"
	"github.com/YoshitsuguKoike/tdd/internal/application/port/output"
	"github.com/YoshitsuguKoike/tdd/internal/domain/change"
	"github.com/YoshitsuguKoike/tdd/internal/domain/schema"
	"github.com/YoshitsuguKoike/tdd/internal/validator/common"
)

// CLIPresenter implements output.Presenter for terminal output
type CLIPresenter struct {
	output io.Writer
	st     styles
}

// NewCLIPresenter creates a new CLI presenter
func NewCLIPresenter(output io.Writer) output.Presenter {
	return &CLIPresenter{output: output, st: newStyles(output)}
}

// PresentSuccess presents a successful result
func (p *CLIPresenter) PresentSuccess(message string, data interface{}) error {
	if message != "" {
		p.println(p.st.success.Render("✓ " + message))
	}

	switch v := data.(type) {
	case nil:
	case *dto.InitResponse:
		p.presentInit(v)
	case *dto.CreateChangeResponse:
		p.presentCreated(v)
	case *dto.ChangeListResponse:
		p.println(p.st.heading.Render("Active changes:"))
		p.println(p.changeList(v.Changes))
	case *dto.ChangeDetailResponse:
		p.presentDetail(v)
	case *dto.StatusResponse:
		p.presentStatus(v)
	case *dto.ValidationResponse:
		p.presentValidation(v)
	case *dto.ArchiveResponse:
		p.presentArchive(v)
	case *dto.CoveragePreviewResponse:
		p.presentPreview(v)
	case *dto.SchemaListResponse:
		p.presentSchemas(v)
	case *dto.SchemaCreatedResponse:
		p.println("  Path: " + v.Path)
	case *dto.SchemaValidationResponse:
		p.presentSchemaValidation(v)
	case *dto.DashboardResponse:
		p.presentDashboard(v)
	default:
		fmt.Fprintf(p.output, "%+v\n", data)
	}
	return nil
}

// PresentWarnings presents non-fatal findings
func (p *CLIPresenter) PresentWarnings(warnings []string) error {
	for _, w := range warnings {
		p.println(p.st.warning.Render("⚠ " + w))
	}
	if len(warnings) > 0 {
		p.println("")
	}
	return nil
}

// PresentError presents an error
func (p *CLIPresenter) PresentError(err error) error {
	p.println(p.st.err.Render("✗ Error: " + err.Error()))
	return err
}

// PresentProgress presents progress information
func (p *CLIPresenter) PresentProgress(message string, progress int, total int) error {
	bar := newBar()
	fmt.Fprintf(p.output, "%s %s %d/%d\n", message, bar.ViewAs(ratio(progress, total)), progress, total)
	return nil
}

func (p *CLIPresenter) println(s string) {
	fmt.Fprintln(p.output, s)
}

func (p *CLIPresenter) presentInit(v *dto.InitResponse) {
	if v.AlreadyExists {
		p.println(p.st.info.Render("ℹ tdd/ already exists, only missing paths were added"))
	}
	for _, c := range v.Created {
		p.println("  " + p.st.dim.Render("created ") + c)
	}
}

func (p *CLIPresenter) presentCreated(v *dto.CreateChangeResponse) {
	p.println("  Schema: " + v.Schema)
	p.println("  Path:   " + v.Path)
	p.println("")
	p.println(p.st.heading.Render("Artifact status:"))
	p.println(p.artifactStates(v.States))
}

func (p *CLIPresenter) presentDetail(v *dto.ChangeDetailResponse) {
	p.println(p.st.heading.Render("Change: " + v.Change.Name))
	p.println("  Schema: " + v.Change.Schema)
	p.println("  Created: " + v.Change.Created)
	if tp := v.Change.TaskProgress; tp != nil {
		p.println(fmt.Sprintf("  Tasks: %d/%d", tp.Completed, tp.Total))
	}
	p.println("")
	p.println(p.st.heading.Render("Artifacts:"))
	p.println(p.artifactStates(v.States))
	if v.Next != nil {
		p.println("")
		p.println(p.st.info.Render("ℹ Next: " + v.Next.ID + " (" + v.Next.Generates + ")"))
	}
	if v.NextTemplate != "" {
		p.println("")
		p.println(p.st.heading.Render("Template:"))
		p.println(strings.TrimRight(v.NextTemplate, "\n"))
	}
}

func (p *CLIPresenter) presentStatus(v *dto.StatusResponse) {
	p.println(p.st.heading.Render("TDD Status"))
	p.println("")
	p.println(fmt.Sprintf("Active changes: %d", len(v.Changes)))
	p.println(fmt.Sprintf("Archived changes: %d", v.Archived))
	p.println("")
	if len(v.Changes) == 0 {
		p.println(p.st.info.Render(`ℹ No active changes. Run "tdd change new <name>" to start one.`))
		return
	}
	p.println(p.changeList(v.Changes))
}

func (p *CLIPresenter) presentValidation(v *dto.ValidationResponse) {
	p.println(p.st.heading.Render("Validation: " + v.Name))
	p.println("")
	p.println(p.issues(v.Result.Issues))
	p.println("")
	if v.Result.Valid {
		p.println(p.st.success.Render("✓ Change is valid."))
	} else {
		p.println(p.st.err.Render("✗ Change has errors."))
	}
}

func (p *CLIPresenter) presentArchive(v *dto.ArchiveResponse) {
	if len(v.SyncedCoverage) > 0 {
		p.println(p.st.success.Render("✓ Synced coverage:"))
		for _, s := range v.SyncedCoverage {
			p.println("  " + p.st.info.Render("ℹ "+s))
		}
		p.println("")
	}
	p.println(p.st.success.Render("✓ Archived to " + v.ArchivePath))
}

func (p *CLIPresenter) presentPreview(v *dto.CoveragePreviewResponse) {
	if len(v.Files) == 0 {
		p.println(p.st.dim.Render("  No coverage changes."))
		return
	}
	for _, f := range v.Files {
		label := "update"
		if f.Created {
			label = "create"
		}
		p.println(p.st.bold.Render(label + " " + f.Destination))
		if f.Diff == "" {
			p.println(p.st.dim.Render("  (unchanged)"))
			continue
		}
		for _, line := range strings.SplitAfter(strings.TrimRight(f.Diff, "\n"), "\n") {
			line = strings.TrimRight(line, "\n")
			switch {
			case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
				p.println(p.st.bold.Render(line))
			case strings.HasPrefix(line, "+"):
				p.println(p.st.green.Render(line))
			case strings.HasPrefix(line, "-"):
				p.println(p.st.red.Render(line))
			case strings.HasPrefix(line, "@@"):
				p.println(p.st.info.Render(line))
			default:
				p.println(line)
			}
		}
		p.println("")
	}
}

func (p *CLIPresenter) presentSchemas(v *dto.SchemaListResponse) {
	p.println(p.st.heading.Render("Available schemas:"))
	p.println("")
	for _, s := range v.Schemas {
		p.println(fmt.Sprintf("  %s (%s)", p.st.bold.Render(s.Name), s.Source))
		if s.Error != "" {
			p.println("    " + p.st.err.Render("✗ "+s.Error))
			p.println("")
			continue
		}
		if s.Description != "" {
			p.println("    " + s.Description)
		}
		p.println("    Artifacts: " + strings.Join(s.Artifacts, " → "))
		p.println("")
	}
}

func (p *CLIPresenter) presentSchemaValidation(v *dto.SchemaValidationResponse) {
	if !v.Result.Valid {
		p.println(p.issues(v.Result.Issues))
		return
	}
	p.println(p.st.success.Render(fmt.Sprintf("✓ Schema %q is valid.", v.Name)))
	p.println("  Artifacts: " + strings.Join(v.Artifacts, " → "))
}

func (p *CLIPresenter) presentDashboard(v *dto.DashboardResponse) {
	p.println("")
	p.println(p.st.banner.Render("TDD Project Dashboard"))
	p.println("")

	p.println(p.st.heading.Render("Configuration"))
	p.println("  Schema: " + v.Schema)
	if v.Context != "" {
		first := strings.SplitN(v.Context, "\n", 2)[0]
		p.println("  Context: " + p.st.dim.Render(first+"..."))
	}
	p.println("")

	p.println(p.st.heading.Render(fmt.Sprintf("Active Changes (%d)", len(v.Changes))))
	p.println("")
	if len(v.Changes) == 0 {
		p.println(p.st.info.Render(`  ℹ No active changes. Run "tdd change new <name>" to start one.`))
	}
	bar := newBar()
	for _, c := range v.Changes {
		p.println("  " + p.st.bold.Render(c.Name))
		p.println(fmt.Sprintf("    Artifacts: %s %d/%d", bar.ViewAs(ratio(c.ArtifactsDone, c.ArtifactsTotal)), c.ArtifactsDone, c.ArtifactsTotal))
		if c.HasTasks {
			p.println(fmt.Sprintf("    Tasks:     %s %d/%d", bar.ViewAs(ratio(c.TasksDone, c.TasksTotal)), c.TasksDone, c.TasksTotal))
			p.println("    Phase:     " + p.phase(c.Phase))
		}
		p.println("")
	}

	if v.ArchivedTotal > 0 {
		p.println(p.st.heading.Render(fmt.Sprintf("Archived (%d)", v.ArchivedTotal)))
		for _, a := range v.Archived {
			p.println("  " + p.st.dim.Render(a.Name+" ("+a.Created+")"))
		}
		if more := v.ArchivedTotal - len(v.Archived); more > 0 {
			p.println(p.st.dim.Render(fmt.Sprintf("  ... and %d more", more)))
		}
		p.println("")
	}
}

func (p *CLIPresenter) phase(phase string) string {
	switch {
	case strings.HasPrefix(phase, "RED"):
		return p.st.red.Render(phase)
	case strings.HasPrefix(phase, "GREEN"), phase == "Complete":
		return p.st.green.Render(phase)
	case strings.HasPrefix(phase, "REFACTOR"):
		return p.st.blue.Render(phase)
	default:
		return p.st.dim.Render(phase)
	}
}

func (p *CLIPresenter) changeList(changes []change.Info) string {
	if len(changes) == 0 {
		return p.st.dim.Render("  No active changes.")
	}
	lines := make([]string, 0, len(changes))
	for _, c := range changes {
		line := "  " + p.st.bold.Render(c.Name)
		if c.TaskProgress != nil {
			line += p.st.dim.Render(fmt.Sprintf(" (%d/%d tasks)", c.TaskProgress.Completed, c.TaskProgress.Total))
		}
		if len(c.Artifacts) > 0 {
			line += p.st.dim.Render(" [" + strings.Join(c.Artifacts, ", ") + "]")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (p *CLIPresenter) artifactStates(states []schema.ArtifactState) string {
	lines := make([]string, 0, len(states))
	for _, s := range states {
		switch s.Status {
		case schema.StatusDone:
			lines = append(lines, "  "+p.st.success.Render("✓")+" "+s.Artifact.ID)
		case schema.StatusReady:
			lines = append(lines, "  "+p.st.warning.Render("◆")+" "+s.Artifact.ID+p.st.warning.Render(" (ready)"))
		default:
			lines = append(lines, "  "+p.st.dim.Render("○")+" "+s.Artifact.ID+p.st.dim.Render(" (needs: "+strings.Join(s.BlockedBy, ", ")+")"))
		}
	}
	return strings.Join(lines, "\n")
}

func (p *CLIPresenter) issues(issues []common.ValidationIssue) string {
	if len(issues) == 0 {
		return p.st.success.Render("  No issues found.")
	}
	lines := make([]string, 0, len(issues))
	for _, i := range issues {
		var icon string
		switch i.Severity {
		case common.SeverityError:
			icon = p.st.err.Render("✗")
		case common.SeverityWarning:
			icon = p.st.warning.Render("⚠")
		default:
			icon = p.st.info.Render("ℹ")
		}
		line := "  " + icon + " " + i.Message
		if i.Field != "" {
			line += p.st.dim.Render(" [" + i.Field + "]")
		}
		if i.File != "" {
			line += p.st.dim.Render(" (" + i.File + ")")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
