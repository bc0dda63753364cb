package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAsker returns a fixed answer for every question.
type stubAsker struct {
	answer string
	calls  int
}

func (s *stubAsker) Ask(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.answer, nil
}

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func TestModel_NotReadyBeforeFirstResize(t *testing.T) {
	m := New(&stubAsker{})
	assert.Equal(t, "Loading...", m.View())
}

func TestModel_ReadyAfterResize(t *testing.T) {
	m := sized(New(&stubAsker{}))
	assert.NotEqual(t, "Loading...", m.View())
	assert.Contains(t, m.View(), "askdoc chat")
}

func TestModel_EnterSubmitsQuestion(t *testing.T) {
	asker := &stubAsker{answer: "a grounded answer"}
	m := sized(New(asker))

	m.input.SetValue("What was the revenue?")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	require.NotNil(t, cmd, "enter should produce an ask command")
	assert.True(t, m.waiting)
	require.Len(t, m.Transcript(), 1)
	assert.Contains(t, m.Transcript()[0], "What was the revenue?")
	assert.Empty(t, m.input.Value())

	// Run the command and feed the answer back.
	msg := cmd()
	answer, ok := msg.(answerMsg)
	require.True(t, ok)
	assert.Equal(t, 1, asker.calls)

	updated, _ = m.Update(answer)
	m = updated.(Model)

	assert.False(t, m.waiting)
	require.Len(t, m.Transcript(), 2)
	assert.Contains(t, m.Transcript()[1], "a grounded answer")
}

func TestModel_EmptyInputIsIgnored(t *testing.T) {
	m := sized(New(&stubAsker{}))

	m.input.SetValue("   ")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	assert.Nil(t, cmd)
	assert.Empty(t, m.Transcript())
}

func TestModel_ExitCommandsQuit(t *testing.T) {
	for _, input := range []string{"/exit", "exit", "quit", "/EXIT"} {
		m := sized(New(&stubAsker{}))
		m.input.SetValue(input)

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		require.NotNil(t, cmd, "input %q should quit", input)
		assert.Equal(t, tea.Quit(), cmd(), "input %q should quit", input)
	}
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := sized(New(&stubAsker{}))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ErrorRendersGenericMessage(t *testing.T) {
	m := sized(New(&stubAsker{}))

	updated, _ := m.Update(answerMsg{question: "q", err: context.DeadlineExceeded})
	m = updated.(Model)

	require.Len(t, m.Transcript(), 1)
	assert.Contains(t, m.Transcript()[0], "An error occurred")
	assert.True(t, strings.Contains(m.status, "deadline"))
}
