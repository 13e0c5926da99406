// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#696969"}
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusedColor = lipgloss.AdaptiveColor{Light: "#0078D4", Dark: "#0078D4"}

	// Convert button
	ButtonTextColor    = lipgloss.Color("#FFFFFF")
	ButtonBgColor      = lipgloss.Color("#0078D4")
	ButtonHoverBgColor = lipgloss.Color("#106EBE")

	// Toast backgrounds
	ToastTextColor      = lipgloss.Color("#FFFFFF")
	ToastInfoBgColor    = lipgloss.Color("#2C3E50")
	ToastSuccessBgColor = lipgloss.Color("#4CAF50")
	ToastErrorBgColor   = lipgloss.Color("#E74C3C")
	ToastFadedColor     = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#555555"}

	// Danger action (popup clear)
	DangerColor = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#FF8787"}

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	ButtonStyle      = baseButtonStyle.Foreground(ButtonTextColor).Background(ButtonBgColor)
	ButtonHoverStyle = baseButtonStyle.Foreground(ButtonTextColor).Background(ButtonHoverBgColor)

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	LabelStyle = lipgloss.NewStyle().Bold(true).Foreground(TextDescriptionColor)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderDefaultColor).
			Padding(0, 1)

	DangerButtonStyle = lipgloss.NewStyle().Foreground(DangerColor).Bold(true)

	HintStyle = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)
)
