// Package tui renders the interactive practice session.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/eslsoft/sentnet/internal/entity"
	"github.com/eslsoft/sentnet/internal/usecase"
)

// roundMsg delivers the round state resulting from a session operation.
type roundMsg struct {
	state entity.RoundState
}

// Model is the bubbletea model for the practice screen.
type Model struct {
	session usecase.SessionUsecase
	input   textinput.Model
	state   entity.RoundState
	width   int
}

// NewModel creates the practice screen bound to a session.
func NewModel(session usecase.SessionUsecase) Model {
	ti := textinput.New()
	ti.Placeholder = "Write a sentence using the word..."
	ti.CharLimit = 280
	ti.Width = 64
	ti.Prompt = "> "

	return Model{
		session: session,
		input:   ti,
		state:   session.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, loadWordCmd(m.session))
}

func loadWordCmd(s usecase.SessionUsecase) tea.Cmd {
	return func() tea.Msg {
		return roundMsg{state: s.LoadNewWord(context.Background())}
	}
}

func submitCmd(s usecase.SessionUsecase) tea.Cmd {
	return func() tea.Msg {
		return roundMsg{state: s.SubmitSentence(context.Background())}
	}
}

func advanceCmd(s usecase.SessionUsecase) tea.Cmd {
	return func() tea.Msg {
		return roundMsg{state: s.AdvanceToNextWord(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case roundMsg:
		return m.applyRound(msg.state), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forwardToInput(msg)
}

// applyRound syncs the model and the text input with a fresh snapshot.
func (m Model) applyRound(state entity.RoundState) Model {
	m.state = state
	if m.input.Value() != state.Sentence {
		m.input.SetValue(state.Sentence)
		m.input.CursorEnd()
	}
	if m.editable() {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	return m
}

// editable reports whether the input surface accepts keystrokes: a word is
// loaded, the round is not submitted, and no submission is in flight.
func (m Model) editable() bool {
	return m.state.Phase() == entity.PhaseReady
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyEnter:
		switch m.state.Phase() {
		case entity.PhaseSubmitted:
			return m, advanceCmd(m.session)
		case entity.PhaseErrored:
			return m, loadWordCmd(m.session)
		case entity.PhaseReady:
			return m, submitCmd(m.session)
		}
		return m, nil

	case tea.KeyCtrlN:
		if m.state.Phase() != entity.PhaseLoading {
			return m, advanceCmd(m.session)
		}
		return m, nil

	case tea.KeyCtrlR:
		if m.state.Phase() == entity.PhaseErrored {
			return m, loadWordCmd(m.session)
		}
		return m, nil
	}

	return m.forwardToInput(msg)
}

func (m Model) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.editable() {
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.state = m.session.EditSentence(m.input.Value())
	}
	return m, cmd
}
