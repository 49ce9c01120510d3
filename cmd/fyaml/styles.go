// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/charmbracelet/lipgloss"

// Color palette - shared hex colors for consistent theming across all CLI
// output. Designed for dark terminal backgrounds with good contrast.
const (
	// ColorPrimary is purple - used for titles, headers, and primary emphasis.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for subtitles, secondary text, and de-emphasized content.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - used for success states and positive outcomes.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - used for errors and failures.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for warnings and caution states.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue - used for locations, keys, and interactive elements.
	ColorHighlight = lipgloss.Color("#3B82F6")

	// ColorVerbose is light gray - used for supplementary detail lines.
	ColorVerbose = lipgloss.Color("#9CA3AF")
)

// Base styles - reusable lipgloss styles built from the color palette.
var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages and positive indicators.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error-severity diagnostic headers.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warn-severity diagnostic headers.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// InfoStyle is for info-severity diagnostic headers.
	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// FieldLabelStyle is for the "Location:"/"Cause:"/"Action:" field labels
	// inside a rendered diagnostic.
	FieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorMuted)

	// CmdStyle is for command names and code within prose.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// VerboseStyle is for supplementary/verbose output.
	VerboseStyle = lipgloss.NewStyle().
			Foreground(ColorVerbose)
)
