package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/emblem/internal/template"
)

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	posStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func printError(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errStyle.Render("error:"), msg)
}

// lineCol converts a byte offset into 1-based line and column numbers.
func lineCol(source string, offset int) (line, col int) {
	if offset > len(source) {
		offset = len(source)
	}
	line = 1 + strings.Count(source[:offset], "\n")
	lastNL := strings.LastIndex(source[:offset], "\n")
	col = offset - lastNL // lastNL is -1 on the first line
	return line, col
}

// printDiagnostics writes every diagnostic for a document to stderr, one per
// line, prefixed with its severity and source position.
func printDiagnostics(name, source string, diags []template.Diagnostic) {
	for _, d := range diags {
		line, col := lineCol(source, d.Span.Start)
		pos := posStyle.Render(fmt.Sprintf("%s:%d:%d:", name, line, col))

		label := warnStyle.Render("warning:")
		if d.Severity == template.SeverityError {
			label = errStyle.Render("error:")
		}
		fmt.Fprintf(os.Stderr, "%s %s %s\n", pos, label, d.Err.Error())
	}
}
