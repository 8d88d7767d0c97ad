// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - the shared lipgloss palette and color-profile setup.
package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// COLOR PALETTE
// =============================================================================

var (
	ColorPrompt  = lipgloss.Color("87")  // cyan
	ColorInfo    = lipgloss.Color("250") // light gray
	ColorSuccess = lipgloss.Color("42")  // green
	ColorWarning = lipgloss.Color("214") // orange
	ColorError   = lipgloss.Color("196") // red
	ColorAccent  = lipgloss.Color("105") // purple
	ColorDim     = lipgloss.Color("240") // dark gray
)

// =============================================================================
// STYLES
// =============================================================================

var (
	Prompt  = lipgloss.NewStyle().Foreground(ColorPrompt).Bold(true)
	Info    = lipgloss.NewStyle().Foreground(ColorInfo)
	Success = lipgloss.NewStyle().Foreground(ColorSuccess)
	Warning = lipgloss.NewStyle().Foreground(ColorWarning)
	Error   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	Accent  = lipgloss.NewStyle().Foreground(ColorAccent)
	Dim     = lipgloss.NewStyle().Foreground(ColorDim)
	Header  = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Underline(true)
	DirName = lipgloss.NewStyle().Foreground(ColorPrompt).Bold(true)
)

// =============================================================================
// COLOR MODE
// =============================================================================

// Configure applies the configured color mode ("auto", "always",
// "never"). In auto mode color is enabled only when stdout is a
// terminal that supports it.
func Configure(mode string) {
	switch mode {
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		if !IsTerminal() {
			lipgloss.SetColorProfile(termenv.Ascii)
		} else {
			lipgloss.SetColorProfile(termenv.ColorProfile())
		}
	}
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Width returns the terminal width, or 80 when it cannot be
// determined.
func Width() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
