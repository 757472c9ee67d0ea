package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zioncloud/docqa/internal/core/domain"
)

type stubAnswers struct {
	rec      *domain.AnswerRecord
	err      error
	question string
}

func (s *stubAnswers) Answer(_ context.Context, question, _ string, _ int, _ string) (*domain.AnswerRecord, error) {
	s.question = question
	return s.rec, s.err
}

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func TestModel_Init(t *testing.T) {
	m := New(&stubAnswers{}, "docs", 5)
	assert.NotNil(t, m.Init())
}

func TestModel_View(t *testing.T) {
	t.Run("loading before first size", func(t *testing.T) {
		m := New(&stubAnswers{}, "docs", 5)
		assert.Equal(t, "Loading...", m.View())
	})

	t.Run("shows collection after sizing", func(t *testing.T) {
		m := sized(New(&stubAnswers{}, "docs", 5))
		view := m.View()
		assert.Contains(t, view, "docqa")
		assert.Contains(t, view, "docs")
		assert.Contains(t, view, "No answer yet")
	})
}

func TestModel_Update(t *testing.T) {
	t.Run("quit keys", func(t *testing.T) {
		m := sized(New(&stubAnswers{}, "docs", 5))
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	})

	t.Run("enter with empty input is ignored", func(t *testing.T) {
		m := sized(New(&stubAnswers{}, "docs", 5))
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Nil(t, cmd)
		assert.False(t, updated.(Model).waiting)
	})

	t.Run("enter asks the service", func(t *testing.T) {
		answers := &stubAnswers{rec: &domain.AnswerRecord{Answer: "forty-two"}}
		m := sized(New(answers, "docs", 5))
		m.input.SetValue("what is the answer?")

		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = updated.(Model)
		assert.True(t, m.waiting)
		require.NotNil(t, cmd)

		// Run the batched command's sub-commands until the answer
		// message appears, then feed it back into the model.
		msg := drainFor[answerMsg](t, cmd)
		require.NoError(t, msg.err)
		assert.Equal(t, "what is the answer?", answers.question)

		updated, _ = m.Update(msg)
		m = updated.(Model)
		assert.False(t, m.waiting)
		assert.Contains(t, m.View(), "forty-two")
	})

	t.Run("answer failure shows error", func(t *testing.T) {
		m := sized(New(&stubAnswers{}, "docs", 5))
		updated, _ := m.Update(answerMsg{err: errors.New("provider down")})
		m = updated.(Model)
		assert.Contains(t, m.status, "provider down")
	})

	t.Run("answer renders sources", func(t *testing.T) {
		m := sized(New(&stubAnswers{}, "docs", 5))
		updated, _ := m.Update(answerMsg{record: &domain.AnswerRecord{
			Answer: "an answer",
			Sources: []domain.SearchResult{
				{Source: "sotu.txt", Score: 0.91},
			},
		}})
		m = updated.(Model)

		view := m.View()
		assert.Contains(t, view, "an answer")
		assert.Contains(t, view, "sotu.txt")
	})
}

// drainFor executes cmd (recursing into batches) until a message of
// type T is produced.
func drainFor[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()

	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		msg := next()
		if typed, ok := msg.(T); ok {
			return typed
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
		}
	}

	t.Fatal("expected message not produced")
	var zero T
	return zero
}
