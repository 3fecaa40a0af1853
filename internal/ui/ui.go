package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskterm/internal/app"
	"taskterm/internal/config"
	"taskterm/internal/task"
)

type Model struct {
	state      *app.State
	dispatcher *app.Dispatcher
	keys       keyMap
	inputs     []textinput.Model
	status     string
	statusErr  bool
	confirmDel bool
	pendingDel *task.Task
}

func New(state *app.State, dispatcher *app.Dispatcher, cfg config.Config) Model {
	placeholders := []string{"Task title", "Description", "Date (DD-MM-YY)"}
	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		ti := textinput.New()
		ti.Placeholder = p
		ti.CharLimit = 256
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[app.FieldDate].CharLimit = len(task.DateLayout)

	return Model{
		state:      state,
		dispatcher: dispatcher,
		keys:       newKeyMap(cfg.Keys),
		inputs:     inputs,
		status:     fmt.Sprintf("Press '%s' to add, %s to toggle, '%s' to delete.", cfg.Keys.Add, displayKey(cfg.Keys.Toggle), cfg.Keys.Delete),
	}
}

// Run loads the task list and blocks until the user quits.
func Run(state *app.State, dispatcher *app.Dispatcher, cfg config.Config) error {
	if err := state.Reload(); err != nil {
		return err
	}
	program := tea.NewProgram(New(state, dispatcher, cfg))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		for i := range m.inputs {
			m.inputs[i].Width = msg.Width - 20
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.Mode != app.ModeNormal {
		return m.updateEditMode(msg)
	}
	return m.updateListMode(msg)
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.run(app.SelectNext{}, "")
	case key.Matches(msg, m.keys.Up):
		m.run(app.SelectPrevious{}, "")
	case key.Matches(msg, m.keys.Add):
		if m.run(app.EnterEditMode{}, "Add mode: fill the fields, Enter to save") {
			return m, m.syncInputs()
		}
	case key.Matches(msg, m.keys.Edit):
		if len(m.state.Tasks) == 0 {
			m.setStatus("No tasks to edit")
			return m, nil
		}
		if m.run(app.StartEditingExistingTask{}, "Edit mode: Enter to save, Esc to cancel") {
			return m, m.syncInputs()
		}
	case key.Matches(msg, m.keys.Toggle):
		if len(m.state.Tasks) == 0 {
			return m, nil
		}
		m.run(app.ToggleTaskStatus{}, "Toggled task")
	case key.Matches(msg, m.keys.Priority):
		if len(m.state.Tasks) == 0 {
			return m, nil
		}
		if m.run(app.ToggleItemPriority{}, "") {
			t, _ := m.state.SelectedTask()
			m.setStatus("Priority: " + t.Priority.String())
		}
	case key.Matches(msg, m.keys.Delete):
		t, ok := m.state.SelectedTask()
		if !ok {
			return m, nil
		}
		m.confirmDel = true
		m.pendingDel = &t
		m.setStatus(fmt.Sprintf("Delete \"%s\"? y/n", t.Title))
	case key.Matches(msg, m.keys.Sort):
		if m.run(app.CycleSort{}, "") {
			m.setStatus("Sorted by " + m.state.Sort.String())
		}
	}
	return m, nil
}

func (m Model) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.run(app.StopEditing{}, "Cancelled")
		return m, m.syncInputs()
	case key.Matches(msg, m.keys.NextField):
		m.flushInput()
		m.run(app.NextField{}, "")
		return m, m.syncInputs()
	case key.Matches(msg, m.keys.Confirm):
		m.flushInput()
		var cmd app.Command = app.AddTask{}
		done := "Added task"
		if m.state.Mode == app.ModeEditingExisting {
			cmd, done = app.FinishEditingExistingTask{}, "Saved task"
		}
		if m.run(cmd, done) {
			return m, m.syncInputs()
		}
		return m, nil
	default:
		var cmd tea.Cmd
		f := m.state.Field
		m.inputs[f], cmd = m.inputs[f].Update(msg)
		m.flushInput()
		return m, cmd
	}
}

func (m Model) updateDeleteConfirm(k string) (tea.Model, tea.Cmd) {
	switch k {
	case "n", "N", "esc":
		m.setStatus("Delete cancelled")
	case "y", "Y":
		cur, ok := m.state.SelectedTask()
		if m.pendingDel == nil || !ok || cur.ID != m.pendingDel.ID {
			m.setStatus("Nothing to delete")
			break
		}
		m.run(app.DeleteTask{}, "Deleted task")
	default:
		return m, nil
	}
	m.confirmDel = false
	m.pendingDel = nil
	return m, nil
}

// run dispatches cmd and reports the outcome on the status line. An empty
// done message leaves the status untouched on success.
func (m *Model) run(cmd app.Command, done string) bool {
	if err := m.dispatcher.Dispatch(m.state, cmd); err != nil {
		var ae *app.Error
		if errors.As(err, &ae) {
			m.setError(fmt.Sprintf("%s failed: %v", ae.Op, ae.Err))
		} else {
			m.setError(err.Error())
		}
		return false
	}
	if done != "" {
		m.setStatus(done)
	}
	return true
}

// flushInput copies the focused input into its state buffer.
func (m *Model) flushInput() {
	f := m.state.Field
	m.state.SetBuffer(f, m.inputs[f].Value())
}

// syncInputs mirrors the state buffers into the inputs and moves focus to
// the active field.
func (m *Model) syncInputs() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.inputs {
		f := app.Field(i)
		m.inputs[i].SetValue(m.state.Buffer(f))
		if m.state.Mode != app.ModeNormal && f == m.state.Field {
			cmd = m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}
	return cmd
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Todo (Bubble Tea + SQLite)"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d tasks • sort: %s", len(m.state.Tasks), m.state.Sort)))
	b.WriteString("\n\n")

	if len(m.state.Tasks) == 0 {
		b.WriteString(fmt.Sprintf("No tasks yet. Press '%s' to add one.", m.keys.Add.Help().Key))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n")
	if m.state.Mode != app.ModeNormal {
		b.WriteString(panelStyle.Render(m.renderForm()))
	} else {
		b.WriteString(panelStyle.Render(m.renderDetailPanel()))
	}

	b.WriteString("\n\n")
	if m.statusErr {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.renderHelp()))

	return b.String()
}

func (m Model) renderTaskList() string {
	var b strings.Builder
	sel, hasSel := m.state.Selected()
	for i, t := range m.state.Tasks {
		cursor := " "
		if hasSel && sel == i && m.state.Mode == app.ModeNormal {
			cursor = cursorStyle.Render(">")
		}

		checkbox := "[ ]"
		title := t.Title
		if t.Completed {
			checkbox = "[x]"
			title = doneStyle.Render(title)
		}

		body := fmt.Sprintf("%s %s %s %s", cursor, checkbox, priorityBadge(t.Priority), title)
		if d := task.FormatDate(t.Date); d != "" {
			body += " " + dimStyle.Render(d)
		}

		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderForm() string {
	heading := "New task"
	if m.state.Mode == app.ModeEditingExisting {
		heading = "Edit task"
	}
	labels := []string{"Title", "Description", "Date"}

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	for i, label := range labels {
		style := labelStyle
		if app.Field(i) == m.state.Field {
			style = activeLabel
		}
		b.WriteString(style.Render(label))
		b.WriteString(m.inputs[i].View())
		if i < len(labels)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderDetailPanel() string {
	t, ok := m.state.SelectedTask()
	if !ok {
		return "No task selected"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Task #%d\n", t.ID))
	b.WriteString(fmt.Sprintf("Title       : %s\n", t.Title))
	b.WriteString(fmt.Sprintf("Description : %s\n", emptyPlaceholder(t.Description)))
	b.WriteString(fmt.Sprintf("Status      : %s\n", task.HumanDone(t.Completed)))
	b.WriteString(fmt.Sprintf("Priority    : %s\n", t.Priority))
	b.WriteString(fmt.Sprintf("Date        : %s", emptyPlaceholder(task.FormatDate(t.Date))))
	return b.String()
}

func (m Model) renderHelp() string {
	bindings := m.keys.listHelp()
	if m.state.Mode != app.ModeNormal {
		bindings = m.keys.editHelp()
	}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

func emptyPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return "(empty)"
	}
	return v
}
