package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/eslsoft/sentnet/internal/entity"
)

var (
	styleHeader   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleWord     = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	styleBadge    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")).Padding(0, 1)
	styleSubtle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1, 0)
	styleSuccess  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleWarning  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleDanger   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleFeedback = lipgloss.NewStyle().PaddingLeft(2)
)

func bandStyle(band entity.Band) lipgloss.Style {
	switch band {
	case entity.BandSuccess:
		return styleSuccess
	case entity.BandWarning:
		return styleWarning
	default:
		return styleDanger
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styleHeader.Render("sentnet practice"))
	b.WriteString("\n\n")

	switch m.state.Phase() {
	case entity.PhaseLoading:
		b.WriteString(styleSubtle.Render("Fetching a new word..."))
		b.WriteString("\n")

	case entity.PhaseErrored:
		b.WriteString(styleError.Render(m.state.Err))
		b.WriteString("\n")
		b.WriteString(styleSubtle.Render("enter: retry • esc: quit"))
		b.WriteString("\n")

	default:
		m.renderRound(&b)
	}

	return b.String()
}

func (m Model) renderRound(b *strings.Builder) {
	word := m.state.Word

	b.WriteString(styleWord.Render(word.Text))
	if d := word.Difficulty.Code(); d != "" {
		b.WriteString("  ")
		b.WriteString(styleBadge.Render(d))
	}
	b.WriteString("\n")
	b.WriteString(styleSubtle.Render(word.Definition))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch m.state.Phase() {
	case entity.PhaseSubmitting:
		b.WriteString(styleSubtle.Render("Scoring your sentence..."))
		b.WriteString("\n")

	case entity.PhaseSubmitted:
		score := bandStyle(m.state.Band).Render(fmt.Sprintf("Score: %.1f / 10", m.state.Score))
		b.WriteString(score)
		b.WriteString("\n")
		if m.state.Feedback != "" {
			b.WriteString(styleFeedback.Render(m.state.Feedback))
			b.WriteString("\n")
		}
		if m.state.Corrected != "" {
			b.WriteString(styleFeedback.Render("Suggested: " + m.state.Corrected))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(styleSubtle.Render("enter: next word • esc: quit"))
		b.WriteString("\n")

	default:
		if m.state.Err != "" {
			b.WriteString(styleError.Render(m.state.Err))
			b.WriteString("\n")
		}
		b.WriteString(styleSubtle.Render("enter: submit • ctrl+n: skip word • esc: quit"))
		b.WriteString("\n")
	}
}
