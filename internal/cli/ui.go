package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/hotnet/pkg/analysis"
	"github.com/matzehuels/hotnet/pkg/observer"
)

// stdout receives all human-readable output.
var stdout io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(14)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, "  "+styleKey.Render(key)+" "+StyleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}

// =============================================================================
// Run Output
// =============================================================================

// printStats prints network statistics on a single line.
func printStats(nodeCount, edgeCount int, cached bool) {
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d nodes", nodeCount)),
		StyleDim.Render(fmt.Sprintf("%d edges", edgeCount)),
	}
	if cached {
		parts = append(parts, styleCached.Render(iconCached))
	} else {
		parts = append(parts, styleComputed.Render(iconFresh))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printReports renders every report; skipped observers become warnings.
func printReports(reports []observer.Report) {
	for _, rep := range reports {
		if rep.Skipped {
			printWarning("%s skipped: %s", rep.Name, rep.Reason)
			continue
		}
		printReport(rep)
		printNewline()
	}
}

// printReport renders one observer report.
func printReport(rep observer.Report) {
	fmt.Fprintln(stdout, StyleTitle.Render(rep.Name)+" "+StyleDim.Render("("+rep.Type+")"))
	switch {
	case rep.Ball != nil:
		printBall(rep.Ball)
	case rep.Graph != nil:
		printKeyValue("source", fmt.Sprint(rep.Graph.Paths.Source))
		printKeyValue("reached", fmt.Sprint(rep.Graph.Paths.Reached))
		printKeyValue("avg path", formatFloat(rep.Graph.Paths.Average))
		printKeyValue("max path", fmt.Sprint(rep.Graph.Paths.Max))
		printKeyValue("clustering", formatFloats(rep.Graph.Clustering))
	case rep.Degree != nil:
		printSummary("in-degree", rep.Degree.InDegree)
		printSummary("hop", rep.Degree.Hop)
		printKeyValue("hop hist", fmt.Sprint(rep.Degree.HopHist))
	}
}

func printBall(b *observer.BallReport) {
	mode := "directed"
	if b.Undirected {
		mode = "undirected"
	}
	printKeyValue("sources", fmt.Sprintf("%d (%s)", b.Sources, mode))
	if b.Paths == nil {
		for i, h := range b.Histograms {
			printKeyValue(fmt.Sprintf("source %d", i), fmt.Sprint(h))
		}
		return
	}
	printSummary("path length", *b.Paths)
	for _, l := range b.Levels {
		if l.Level == 0 {
			continue
		}
		printDetail("level %-3d mean %-10s var %-10s max %d",
			l.Level, formatFloat(l.Mean), formatFloat(l.Variance), l.Max)
	}
}

func printSummary(key string, s analysis.Summary) {
	printKeyValue(key, fmt.Sprintf("mean %s  var %s  min %s  max %s",
		StyleNumber.Render(formatFloat(s.Mean)), formatFloat(s.Variance),
		formatFloat(s.Min), formatFloat(s.Max)))
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.4g", f)
}

func formatFloats(fs []float64) string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = formatFloat(f)
	}
	return "[" + strings.Join(out, " ") + "]"
}
