package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/drainplan/pkg/layout"
)

// Status output goes to stdout, the spinner to stderr. Tests swap both out.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var (
	colorAccent   = lipgloss.Color("36")
	colorOK       = lipgloss.Color("35")
	colorWarn     = lipgloss.Color("220")
	colorFail     = lipgloss.Color("167")
	colorMullion  = lipgloss.Color("75")
	colorDrainage = lipgloss.Color("167")
	colorValue    = lipgloss.Color("255")
	colorMuted    = lipgloss.Color("245")
	colorDim      = lipgloss.Color("240")
)

var (
	styleDim      = lipgloss.NewStyle().Foreground(colorDim)
	styleValue    = lipgloss.NewStyle().Foreground(colorValue)
	styleWarn     = lipgloss.NewStyle().Foreground(colorWarn)
	styleOK       = lipgloss.NewStyle().Foreground(colorOK)
	styleFail     = lipgloss.NewStyle().Foreground(colorFail)
	styleMuted    = lipgloss.NewStyle().Foreground(colorMuted)
	styleAccent   = lipgloss.NewStyle().Foreground(colorAccent)
	styleMullion  = lipgloss.NewStyle().Foreground(colorMullion)
	styleDrainage = lipgloss.NewStyle().Foreground(colorDrainage)
	styleKey      = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleCommand  = lipgloss.NewStyle().Foreground(colorMullion)
)

const (
	iconOK    = "✓"
	iconFail  = "✗"
	iconWarn  = "!"
	iconInfo  = "›"
	iconArrow = "→"
	separator = " · "
)

func writeLine(s string) { fmt.Fprintln(stdout, s) }

func printSuccess(format string, args ...any) {
	writeLine(styleOK.Render(iconOK) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	writeLine(styleFail.Render(iconFail) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	writeLine(styleWarn.Render(iconWarn) + " " + styleWarn.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	writeLine(styleMuted.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	writeLine("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	writeLine("  " + styleDim.Render(iconArrow) + " " + styleValue.Render(path))
}

func printKeyValue(key, value string) {
	writeLine(styleKey.Render(key) + " " + styleValue.Render(value))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	writeLine(styleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }

// summaryLine renders the one-line layout summary, e.g.
// "4 mullions · 6 drainage · 1 violations · cached".
func summaryLine(l layout.Layout, cached bool) string {
	parts := []string{
		styleMullion.Render(fmt.Sprintf("%d mullions", len(l.Mullions))),
		styleDrainage.Render(fmt.Sprintf("%d drainage", len(l.Drainage))),
	}
	if !l.Converged {
		parts = append(parts, styleWarn.Render(fmt.Sprintf("not converged after %d iterations", l.Iterations)))
	}
	if n := len(l.Violations); n > 0 {
		parts = append(parts, styleWarn.Render(fmt.Sprintf("%d violations", n)))
	}
	if cached {
		parts = append(parts, styleOK.Render("cached"))
	} else {
		parts = append(parts, styleMuted.Render("fresh"))
	}
	return "  " + strings.Join(parts, styleDim.Render(separator))
}

// printSummary prints the summary line of l.
func printSummary(l layout.Layout, cached bool) {
	writeLine(summaryLine(l, cached))
}

// printViolations prints one warning per unmet constraint of l.
func printViolations(l layout.Layout) {
	for _, v := range l.Violations {
		printWarning("%s", v)
	}
}
