package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// backCommand typed as an answer returns to the previous step.
const backCommand = "<"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

type keyMap struct {
	Submit key.Binding
	Back   key.Binding
	Quit   key.Binding
}

var defaultKeyMap = keyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "answer"),
	),
	Back: key.NewBinding(
		key.WithKeys("shift+tab", "ctrl+b"),
		key.WithHelp("shift+tab", "previous step"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}

type submitResultMsg struct {
	err error
}

// Model drives a Form from the terminal, one question at a time.
type Model struct {
	ctx        context.Context
	form       *Form
	keys       keyMap
	input      textinput.Model
	bar        progress.Model
	index      int
	notice     string
	failed     bool
	submitting bool
	done       bool
	quitting   bool
}

func NewModel(ctx context.Context, form *Form) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Focus()

	m := Model{
		ctx:   ctx,
		form:  form,
		keys:  defaultKeyMap,
		input: input,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
	m.index = m.firstQuestion(form.Step())
	return m
}

func (m Model) Form() *Form { return m.form }

// Done reports whether a submission attempt finished.
func (m Model) Done() bool { return m.done }

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		m.submitting = false
		m.done = true
		m.failed = msg.err != nil
		m.notice = m.form.Status()
		if msg.err != nil {
			m.notice = fmt.Sprintf("%s: %v", m.form.Status(), msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case m.done:
			if key.Matches(msg, m.keys.Submit) {
				return m, tea.Quit
			}
			return m, nil
		case m.submitting || m.form.Sending():
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			return m.answer(m.input.Value())
		case key.Matches(msg, m.keys.Back):
			return m.back()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) back() (tea.Model, tea.Cmd) {
	m.input.Reset()
	m.notice = ""
	m.failed = false
	m.form.Back()
	m.index = m.firstQuestion(m.form.Step())
	return m, nil
}

func (m Model) answer(raw string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(raw) == backCommand {
		return m.back()
	}

	m.input.Reset()
	m.notice = ""
	m.failed = false

	q := questions[m.index]
	if err := q.apply(m.form, raw); err != nil {
		m.notice = err.Error()
		m.failed = true
		return m, nil
	}

	record := m.form.Record()
	for i := m.index + 1; i < len(questions) && questions[i].step == q.step; i++ {
		if questions[i].shown(record) {
			m.index = i
			return m, nil
		}
	}

	return m.finishStep()
}

func (m Model) finishStep() (tea.Model, tea.Cmd) {
	step := m.form.Step()

	if step < LastStep {
		if !m.form.Next() {
			m.notice = "fill in the required fields to continue"
			m.failed = true
		}
		m.index = m.firstQuestion(m.form.Step())
		return m, nil
	}

	if missing := m.form.MissingFields(); len(missing) > 0 {
		m.notice = "missing required fields: " + strings.Join(missing, ", ")
		m.failed = true
		target := stepOfField(missing[0])
		for m.form.Step() > target && m.form.Back() {
		}
		m.index = m.firstQuestion(m.form.Step())
		return m, nil
	}

	form, ctx := m.form, m.ctx
	m.submitting = true
	m.notice = "sending..."
	return m, func() tea.Msg {
		return submitResultMsg{err: form.Submit(ctx)}
	}
}

func (m Model) firstQuestion(step int) int {
	record := m.form.Record()
	for i, q := range questions {
		if q.step == step && q.shown(record) {
			return i
		}
	}
	return 0
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	step := m.form.Step()

	b.WriteString(titleStyle.Render(fmt.Sprintf("Registration %d/%d: %s", step, LastStep, stepTitles[step])))
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(float64(m.form.Progress()) / 100))
	b.WriteString("\n\n")

	if m.done {
		style := successStyle
		if m.failed {
			style = errorStyle
		}
		b.WriteString(style.Render(m.notice))
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("press enter to exit"))
		b.WriteString("\n")
		return b.String()
	}

	q := questions[m.index]
	label := q.label
	if q.optional {
		label += " (optional)"
	}
	b.WriteString(labelStyle.Render(label))
	b.WriteString("\n")

	switch q.kind {
	case kindYesNo:
		b.WriteString(hintStyle.Render("y/n"))
		b.WriteString("\n")
	case kindChoice, kindMultiChoice:
		for i, o := range q.options {
			fmt.Fprintf(&b, "  %d) %s\n", i+1, o)
		}
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.notice != "" {
		style := hintStyle
		if m.failed {
			style = errorStyle
		}
		b.WriteString(style.Render(m.notice))
		b.WriteString("\n")
	}

	help := []string{helpText(m.keys.Submit), helpText(m.keys.Quit)}
	if step > FirstStep {
		help = append(help, helpText(m.keys.Back)+" (or type "+backCommand+")")
	}
	b.WriteString(hintStyle.Render(strings.Join(help, " | ")))
	b.WriteString("\n")

	return b.String()
}

func helpText(b key.Binding) string {
	h := b.Help()
	return h.Key + " " + h.Desc
}
