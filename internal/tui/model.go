// Package tui is the interactive terminal view over a task collection.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskman/internal/collection"
	"taskman/internal/output"
	"taskman/internal/service"
)

const listHelp = "a add  space toggle  r refresh  j/k move  q quit"
const formHelp = "enter save  esc cancel  tab category  up/down priority"

// Store results, delivered back to Update.
type (
	loadedMsg  struct{ err error }
	createdMsg struct{ err error }
	toggledMsg struct {
		id  int64
		err error
	}
)

// Model is the bubbletea model. Store calls run as commands so the view
// never blocks on the backend.
type Model struct {
	ctx    context.Context
	ctl    *collection.Controller
	theme  *output.Theme
	cursor int
	input  textinput.Model

	category int // index into service.Categories
	priority int

	status string
}

// New creates a model over ctl. ctx bounds every store call it issues. A nil
// theme renders the list without colors.
func New(ctx context.Context, ctl *collection.Controller, theme *output.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 256
	ti.Width = 40

	return Model{
		ctx:      ctx,
		ctl:      ctl,
		theme:    theme,
		input:    ti,
		category: len(service.Categories) - 1,
		priority: service.PriorityLow,
		status:   "loading...",
	}
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, ctl *collection.Controller, theme *output.Theme, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(ctx, ctl, theme), opts...).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.load(true)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.ctl.FormOpen() {
			return m.updateForm(msg)
		}
		return m.updateList(msg)

	case tea.WindowSizeMsg:
		if msg.Width > 20 {
			m.input.Width = msg.Width - 20
		}

	case loadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("load failed: %v", msg.err)
		} else {
			m.status = ""
		}
		m.cursor = clampCursor(m.cursor, m.ctl.Len())

	case createdMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("save failed: %v", msg.err)
			return m, nil
		}
		m.input.SetValue("")
		m.input.Blur()
		m.cursor = clampCursor(m.ctl.Len()-1, m.ctl.Len())
		m.status = "Added task"

	case toggledMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", msg.err)
			return m, nil
		}
		m.cursor = clampCursor(m.cursor, m.ctl.Len())
		if task, ok := m.ctl.Task(msg.id); ok {
			m.status = fmt.Sprintf("#%d %s", task.ID, stateWord(task.Completed))
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.ctl.Tasks()
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "j", "down":
		m.cursor = clampCursor(m.cursor+1, len(tasks))
	case "k", "up":
		m.cursor = clampCursor(m.cursor-1, len(tasks))
	case "r":
		m.status = "refreshing..."
		return m, m.load(false)
	case "a":
		m.ctl.OpenForm()
		m.status = ""
		cmd := m.input.Focus()
		return m, cmd
	case " ":
		if len(tasks) == 0 {
			return m, nil
		}
		return m, m.toggle(tasks[clampCursor(m.cursor, len(tasks))].ID)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.ctl.CancelForm()
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			m.status = "Title cannot be empty"
			return m, nil
		}
		m.status = "saving..."
		return m, m.submit(title, service.Categories[m.category], m.priority)
	case "tab":
		m.category = (m.category + 1) % len(service.Categories)
		return m, nil
	case "shift+tab":
		m.category = (m.category + len(service.Categories) - 1) % len(service.Categories)
		return m, nil
	case "up":
		if m.priority < service.PriorityHigh {
			m.priority++
		}
		return m, nil
	case "down":
		if m.priority > service.PriorityLow {
			m.priority--
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) load(initial bool) tea.Cmd {
	ctl, ctx := m.ctl, m.ctx
	return func() tea.Msg {
		if initial {
			return loadedMsg{err: ctl.Initialize(ctx)}
		}
		return loadedMsg{err: ctl.Refresh(ctx)}
	}
}

func (m Model) submit(title, category string, priority int) tea.Cmd {
	ctl, ctx := m.ctl, m.ctx
	return func() tea.Msg {
		return createdMsg{err: ctl.SubmitNewTask(ctx, title, category, priority)}
	}
}

func (m Model) toggle(id int64) tea.Cmd {
	ctl, ctx := m.ctl, m.ctx
	return func() tea.Msg {
		return toggledMsg{id: id, err: ctl.Toggle(ctx, id)}
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString("taskman\n\n")

	tasks := m.ctl.Tasks()
	if len(tasks) == 0 {
		b.WriteString("  " + output.EmptyMessage + "\n")
	}
	for i, task := range tasks {
		prefix := "  "
		if i == m.cursor && !m.ctl.FormOpen() {
			prefix = "> "
		}
		b.WriteString(prefix + output.TaskLine(task, m.theme) + "\n")
	}

	b.WriteString("\n")
	if m.ctl.FormOpen() {
		b.WriteString(m.renderForm())
		b.WriteString("\n" + formHelp + "\n")
	} else {
		b.WriteString(listHelp + "\n")
	}
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	return b.String()
}

func (m Model) renderForm() string {
	category := service.Categories[m.category]
	var b strings.Builder
	b.WriteString("New task\n")
	fmt.Fprintf(&b, "  Title    : %s\n", m.input.View())
	fmt.Fprintf(&b, "  Category : %s %s\n", output.IconFor(category).Glyph(), category)
	fmt.Fprintf(&b, "  Priority : %s\n", output.LabelFor(m.priority))
	return b.String()
}

func stateWord(completed bool) string {
	if completed {
		return "done"
	}
	return "open"
}

func clampCursor(cur, n int) int {
	if n <= 0 || cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
