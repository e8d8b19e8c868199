package presenter

import (
	"io"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

var (
	successColor = lipgloss.Color("#10B981")
	warningColor = lipgloss.Color("#F59E0B")
	errorColor   = lipgloss.Color("#EF4444")
	infoColor    = lipgloss.Color("#3B82F6")
	mutedColor   = lipgloss.Color("#6B7280")
	refactorBlue = lipgloss.Color("#6366F1")
)

// barWidth is the cell count of dashboard progress bars
const barWidth = 20

// styles are bound to one renderer so colour support follows the writer
type styles struct {
	heading lipgloss.Style
	bold    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	info    lipgloss.Style
	dim     lipgloss.Style
	banner  lipgloss.Style
	red     lipgloss.Style
	green   lipgloss.Style
	blue    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		heading: r.NewStyle().Bold(true).Underline(true),
		bold:    r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(successColor),
		warning: r.NewStyle().Foreground(warningColor),
		err:     r.NewStyle().Foreground(errorColor),
		info:    r.NewStyle().Foreground(infoColor),
		dim:     r.NewStyle().Foreground(mutedColor),
		banner:  r.NewStyle().Bold(true).Border(lipgloss.DoubleBorder()).Padding(0, 7),
		red:     r.NewStyle().Foreground(errorColor),
		green:   r.NewStyle().Foreground(successColor),
		blue:    r.NewStyle().Foreground(refactorBlue),
	}
}

// newBar builds a fixed-width bar without the percentage label
func newBar() progress.Model {
	bar := progress.New(
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
		progress.WithSolidFill(string(successColor)),
	)
	bar.Full = '█'
	bar.Empty = '░'
	bar.EmptyColor = string(mutedColor)
	return bar
}

// ratio guards against empty totals
func ratio(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(done) / float64(total)
}
