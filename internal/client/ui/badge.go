// Package ui renders the review screens for a terminal: the assessments
// table, the detail view, status badges, the success acknowledgement and
// the intake form prompts.
package ui

import (
	"io"
	"os"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

const ansiReset = "\x1b[0m"

// ansi colours keyed by status literal
var badgeColors = map[string]string{
	"pending":    "\x1b[33m",
	"approved":   "\x1b[32m",
	"rejected":   "\x1b[31m",
	"needs_info": "\x1b[34m",
}

// ColorEnabled reports whether w is an interactive terminal.
func ColorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isTerminal(int(f.Fd()))
}

// Badge returns the status label, coloured when color is set.
func Badge(s assessment.Status, color bool) string {
	return colorize(s.Badge().Label, s, color)
}

func colorize(text string, s assessment.Status, color bool) string {
	if !color {
		return text
	}
	return badgeColors[s.String()] + text + ansiReset
}
