package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/smartcat-ai/kicat/internal/risk"
)

var (
	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	userPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	riskStyles = map[risk.Tier]lipgloss.Style{
		risk.Safe:     lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		risk.Low:      lipgloss.NewStyle().Foreground(lipgloss.Color("148")),
		risk.Medium:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		risk.High:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		risk.Critical: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

func renderReply(text string) string {
	return assistantStyle.Render("kicat") + " " + text
}

func renderError(err error) string {
	return errorStyle.Render(fmt.Sprintf("error: %v", err))
}

func renderInfo(text string) string {
	return infoStyle.Render(text)
}

func renderRisk(t risk.Tier) string {
	style, ok := riskStyles[t]
	if !ok {
		style = riskStyles[risk.Medium]
	}
	return style.Render(t.String())
}
