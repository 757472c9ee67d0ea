// Package tui is a terminal dashboard for asking questions against a
// collection and reading the sourced answers.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zioncloud/docqa/internal/core/domain"
	"github.com/zioncloud/docqa/internal/core/ports/driving"
)

// answerTimeout bounds one question round trip.
const answerTimeout = 2 * time.Minute

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	answerBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// answerMsg carries a completed answer back into the update loop.
type answerMsg struct {
	record *domain.AnswerRecord
	err    error
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	answers    driving.AnswerService
	collection string
	limit      int

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	record  *domain.AnswerRecord
	status  string
	waiting bool
	ready   bool
}

// New creates a dashboard asking against the named collection.
func New(answers driving.AnswerService, collection string, limit int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		answers:    answers,
		collection: collection,
		limit:      limit,
		input:      ti,
		spinner:    sp,
		viewport:   viewport.New(0, 0),
		status:     "Ready.",
	}
}

// Init starts the input cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ah := answerBox.GetFrameSize()
		_, qh := questionBox.GetFrameSize()
		vh := msg.Height - ah - qh - 4
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width-4)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderAnswer())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.waiting {
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.waiting = true
			m.status = "Thinking..."
			return m, tea.Batch(m.spinner.Tick, m.ask(question))
		}

	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = errorStyle.Render("Error: " + msg.err.Error())
			m.record = nil
		} else {
			m.record = msg.record
			m.status = fmt.Sprintf("Answered from %d sources", len(msg.record.Sources))
		}
		m.viewport.SetContent(m.renderAnswer())
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View renders the dashboard.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := titleStyle.Render("docqa") + "  " +
		dimStyle.Render("collection: "+m.collection)

	status := m.status
	if m.waiting {
		status = m.spinner.View() + " " + status
	}

	return header + "\n" +
		answerBox.Render(m.viewport.View()) + "\n" +
		questionBox.Render(m.input.View()) + "\n" +
		statusStyle.Render(status)
}

// ask runs the question off the update loop.
func (m Model) ask(question string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), answerTimeout)
		defer cancel()

		rec, err := m.answers.Answer(ctx, question, m.collection, m.limit, "")
		return answerMsg{record: rec, err: err}
	}
}

// renderAnswer formats the current answer with its sources.
func (m Model) renderAnswer() string {
	if m.record == nil {
		return "No answer yet. Ask something below."
	}

	var b strings.Builder
	b.WriteString(m.record.Answer)
	if len(m.record.Sources) > 0 {
		b.WriteString("\n\n")
		b.WriteString(sourceStyle.Render("Sources:"))
		for _, src := range m.record.Sources {
			b.WriteString(fmt.Sprintf("\n  - %s (%.3f)", src.Source, src.Score))
		}
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Run starts the dashboard and blocks until the user quits.
func Run(answers driving.AnswerService, collection string, limit int) error {
	_, err := tea.NewProgram(New(answers, collection, limit), tea.WithAltScreen()).Run()
	return err
}
