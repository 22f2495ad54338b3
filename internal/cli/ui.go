package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/frame/pkg/pipeline"
)

// Command results go to stdout through the helpers below; diagnostics go
// through the logger on stderr.

// Palette (ANSI 256).
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorFail   = lipgloss.Color("167")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
	colorText   = lipgloss.Color("255")
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleAccent = lipgloss.NewStyle().Foreground(colorAccent)
	styleOK     = lipgloss.NewStyle().Foreground(colorOK)
	styleFail   = lipgloss.NewStyle().Foreground(colorFail)
	styleLabel  = lipgloss.NewStyle().Foreground(colorLabel)
	styleMuted  = lipgloss.NewStyle().Foreground(colorMuted)
	styleText   = lipgloss.NewStyle().Foreground(colorText)
)

const (
	markOK    = "✓"
	markFail  = "✗"
	markInfo  = "›"
	markArrow = "→"
	sep       = " · "
)

func status(mark string, style lipgloss.Style, format string, args ...any) {
	fmt.Println(style.Render(mark) + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { status(markOK, styleOK, format, args...) }
func printError(format string, args ...any)   { status(markFail, styleFail, format, args...) }
func printInfo(format string, args ...any)    { status(markInfo, styleLabel, format, args...) }

// printDetail prints an indented, muted line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + styleMuted.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Println("  " + styleMuted.Render(markArrow) + " " + styleText.Render(path))
}

// printStats prints the size of a netlist and its graph on one line, ending
// with whether the exports came from the cache.
func printStats(s pipeline.Stats, cached bool) {
	fmt.Println("  " + statsLine(s, cached))
}

func statsLine(s pipeline.Stats, cached bool) string {
	parts := []string{
		fmt.Sprintf("%d modules", s.Modules),
		fmt.Sprintf("%d nets", s.Nets),
		fmt.Sprintf("%d nodes", s.Nodes),
	}
	if s.Hypernodes > 0 {
		parts = append(parts, fmt.Sprintf("%d hypernodes", s.Hypernodes))
	}
	parts = append(parts, fmt.Sprintf("%d edges", s.Edges))
	if s.Components > 1 {
		parts = append(parts, fmt.Sprintf("%d components", s.Components))
	}

	origin := styleLabel.Render("fresh")
	if cached {
		origin = styleOK.Render("cached")
	}
	return styleMuted.Render(strings.Join(parts, sep)+sep) + origin
}
