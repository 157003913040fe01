package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mindgeo/pkg/pipeline"
)

// uiOut receives status output. Commands that print results to stdout
// point it at stderr.
var uiOut io.Writer = os.Stdout

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle renders view headings in the root picker.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	// StyleHighlight renders node ids and suggested commands.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	// StyleLink renders the server address.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	// StyleDim renders detail lines.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(10)
)

func printStatus(icon string, style lipgloss.Style, msg string) {
	fmt.Fprintln(uiOut, style.Render(icon)+" "+msg)
}

func printSuccess(format string, args ...any) {
	printStatus("✓", styleIconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printStatus("✗", styleIconError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printStatus("!", styleIconWarning, styleIconWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printStatus("›", styleIconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile names the snapshot a command wrote.
func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render("→")+" "+path)
}

// printKeyValue prints one labeled field of a position readout.
func printKeyValue(key, value string) {
	fmt.Fprintln(uiOut, styleKey.Render(key)+" "+value)
}

// printStats summarizes a pipeline run: graph size and whether the
// result came from the cache.
func printStats(st pipeline.Stats) {
	source := styleIconInfo.Render("fresh")
	if st.CacheHit {
		source = styleIconSuccess.Render("cached")
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d nodes", st.NodeCount)),
		StyleDim.Render(fmt.Sprintf("%d edges", st.EdgeCount)),
		source,
	}
	fmt.Fprintln(uiOut, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(uiOut, StyleDim.Render(description+":")+" "+StyleHighlight.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(uiOut)
}
