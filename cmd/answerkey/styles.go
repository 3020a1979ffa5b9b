package main

import (
	"fmt"
	"io"

	"answerkey/internal/answerkey"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	nameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

func printResult(w io.Writer, res *answerkey.Result) {
	fmt.Fprintf(w, "%s %s  %d rows  %s  %s\n",
		okStyle.Render("wrote"),
		res.OutputPath,
		res.Rows,
		nameStyle.Render(res.Function),
		dimStyle.Render("sha256 "+shortDigest(res.Digest)))
}

func printFailure(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorStyle.Render("failed"), err)
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
