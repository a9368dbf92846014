// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all CLI output, tuned for dark terminal backgrounds.
const (
	// ColorPrimary is purple - used for the banner.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for secondary text.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - used for the final success line.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - used for failure messages.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for the nothing-to-pack notice.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue - used for help section titles.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for the banner.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for the working directory line and hints.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for the saved-bundle line.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for stage failures.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for the nothing-to-pack notice.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// SectionStyle is for help section titles.
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight)
)
