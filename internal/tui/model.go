package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/easykanban/kanban/internal/cli/formatter"
	"github.com/easykanban/kanban/internal/domain"
	"github.com/easykanban/kanban/internal/ordering"
	"github.com/easykanban/kanban/internal/service"
)

// Services bundles the service interfaces the board view needs.
type Services struct {
	Boards  service.BoardService
	Columns service.ColumnService
	Tasks   service.TaskService
}

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	SendLeft  key.Binding
	SendRight key.Binding
	Add       key.Binding
	NextBoard key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "select up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "select down")),
		Left:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "column left")),
		Right:     key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "column right")),
		MoveUp:    key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move task up")),
		MoveDown:  key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move task down")),
		SendLeft:  key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "send task left")),
		SendRight: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "send task right")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		NextBoard: key.NewBinding(key.WithKeys("b", "tab"), key.WithHelp("b", "next board")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.NextBoard, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.MoveUp, k.MoveDown, k.SendLeft, k.SendRight},
		{k.Add, k.NextBoard, k.Refresh, k.Quit},
	}
}

// boardData is the loaded state of one board.
type boardData struct {
	board   *domain.Board
	columns []*domain.Column
	tasks   map[string][]*domain.Task
}

type loadedMsg struct {
	boards []*domain.Board
	data   *boardData
	err    error
}

// Model is the bubbletea model for the interactive board view.
type Model struct {
	svc  Services
	keys keyMap
	help help.Model

	boards   []*domain.Board
	boardIdx int
	data     *boardData
	loaded   bool

	// colIdx selects the active column; taskIdx the task within it.
	colIdx  int
	taskIdx int

	// adding switches the view into the inline new-task prompt.
	adding bool
	input  textinput.Model

	width  int
	height int
	err    error
}

func NewModel(svc Services) Model {
	in := textinput.New()
	in.Placeholder = "task title"
	in.CharLimit = 200
	return Model{
		svc:   svc,
		keys:  defaultKeyMap(),
		help:  help.New(),
		input: in,
	}
}

func (m Model) Init() tea.Cmd {
	return m.load(0)
}

// load reloads the board list and the board at index idx.
func (m Model) load(idx int) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx := context.Background()
		boards, err := svc.Boards.List(ctx, false)
		if err != nil {
			return loadedMsg{err: err}
		}
		if len(boards) == 0 {
			return loadedMsg{boards: boards}
		}
		if idx >= len(boards) {
			idx = 0
		}
		b := boards[idx]
		columns, err := svc.Columns.ListByBoard(ctx, b.ID)
		if err != nil {
			return loadedMsg{err: err}
		}
		tasks := make(map[string][]*domain.Task, len(columns))
		for _, c := range columns {
			list, err := svc.Tasks.ListByColumn(ctx, c.ID)
			if err != nil {
				return loadedMsg{err: err}
			}
			tasks[c.ID] = list
		}
		return loadedMsg{
			boards: boards,
			data:   &boardData{board: b, columns: columns, tasks: tasks},
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.loaded = true
		m.boards = msg.boards
		m.data = msg.data
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.handleAddKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.adding = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		title := strings.TrimSpace(m.input.Value())
		col := m.currentColumn()
		m.adding = false
		m.input.Blur()
		if title == "" || col == nil {
			return m, nil
		}
		return m, m.createTask(col.ID, title)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) clampCursor() {
	if m.data == nil || len(m.data.columns) == 0 {
		m.colIdx, m.taskIdx = 0, 0
		return
	}
	if m.colIdx >= len(m.data.columns) {
		m.colIdx = len(m.data.columns) - 1
	}
	n := len(m.currentTasks())
	if m.taskIdx >= n {
		m.taskIdx = n - 1
	}
	if m.taskIdx < 0 {
		m.taskIdx = 0
	}
}

func (m Model) currentColumn() *domain.Column {
	if m.data == nil || m.colIdx >= len(m.data.columns) {
		return nil
	}
	return m.data.columns[m.colIdx]
}

func (m Model) currentTasks() []*domain.Task {
	col := m.currentColumn()
	if col == nil {
		return nil
	}
	return m.data.tasks[col.ID]
}

func (m Model) currentTask() *domain.Task {
	tasks := m.currentTasks()
	if m.taskIdx < 0 || m.taskIdx >= len(tasks) {
		return nil
	}
	return tasks[m.taskIdx]
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.load(m.boardIdx)

	case key.Matches(msg, m.keys.NextBoard):
		if len(m.boards) > 1 {
			m.boardIdx = (m.boardIdx + 1) % len(m.boards)
			m.colIdx, m.taskIdx = 0, 0
			return m, m.load(m.boardIdx)
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if n := len(m.currentTasks()); n > 0 && m.taskIdx < n-1 {
			m.taskIdx++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.taskIdx > 0 {
			m.taskIdx--
		}
		return m, nil

	case key.Matches(msg, m.keys.Left):
		if m.colIdx > 0 {
			m.colIdx--
			m.clampCursor()
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.data != nil && m.colIdx < len(m.data.columns)-1 {
			m.colIdx++
			m.clampCursor()
		}
		return m, nil

	case key.Matches(msg, m.keys.MoveDown):
		if t := m.currentTask(); t != nil && m.taskIdx < len(m.currentTasks())-1 {
			return m, m.reorderTask(t.ID, m.taskIdx+1)
		}
		return m, nil

	case key.Matches(msg, m.keys.MoveUp):
		if t := m.currentTask(); t != nil && m.taskIdx > 0 {
			return m, m.reorderTask(t.ID, m.taskIdx-1)
		}
		return m, nil

	case key.Matches(msg, m.keys.SendLeft):
		if t := m.currentTask(); t != nil && m.colIdx > 0 {
			return m, m.sendTask(t.ID, m.data.columns[m.colIdx-1].ID, m.colIdx-1)
		}
		return m, nil

	case key.Matches(msg, m.keys.SendRight):
		if t := m.currentTask(); t != nil && m.data != nil && m.colIdx < len(m.data.columns)-1 {
			return m, m.sendTask(t.ID, m.data.columns[m.colIdx+1].ID, m.colIdx+1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Add):
		if m.currentColumn() != nil {
			m.adding = true
			m.input.SetValue("")
			return m, m.input.Focus()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) createTask(columnID, title string) tea.Cmd {
	svc := m.svc
	load := m.load(m.boardIdx)
	return func() tea.Msg {
		if _, err := svc.Tasks.Create(context.Background(), columnID, title, service.CreateTaskInput{}); err != nil {
			return loadedMsg{err: err}
		}
		return load()
	}
}

func (m *Model) reorderTask(id string, target int) tea.Cmd {
	svc := m.svc
	idx := m.boardIdx
	m.taskIdx = target
	load := m.load(idx)
	return func() tea.Msg {
		if err := svc.Tasks.Reorder(context.Background(), id, target); err != nil {
			return loadedMsg{err: err}
		}
		return load()
	}
}

func (m *Model) sendTask(id, toColumnID string, toColIdx int) tea.Cmd {
	svc := m.svc
	idx := m.boardIdx
	m.colIdx = toColIdx
	load := m.load(idx)
	return func() tea.Msg {
		if err := svc.Tasks.MoveToColumn(context.Background(), id, toColumnID, ordering.AtEnd); err != nil {
			return loadedMsg{err: err}
		}
		return load()
	}
}

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(formatter.ColorDim).
			Padding(0, 1)
	activePaneStyle = paneStyle.
			BorderForeground(formatter.ColorHeader)
	selectedTaskStyle = lipgloss.NewStyle().
				Foreground(formatter.ColorFg).
				Background(lipgloss.Color("#3c3836")).
				Bold(true)
)

func (m Model) View() string {
	if m.err != nil {
		return formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n" + m.help.View(m.keys)
	}
	if m.data == nil {
		if m.loaded {
			return formatter.Dim("No boards yet. Create one with: kanban board add") + "\n"
		}
		return formatter.Dim("Loading…") + "\n"
	}

	title := formatter.Header(fmt.Sprintf("%s [%s]", m.data.board.Name, m.data.board.Prefix))

	panes := make([]string, 0, len(m.data.columns))
	paneWidth := 28
	if len(m.data.columns) > 0 && m.width > 0 {
		if w := m.width/len(m.data.columns) - 4; w > 16 {
			paneWidth = w
		}
	}

	for ci, col := range m.data.columns {
		var b strings.Builder
		b.WriteString(formatter.Bold(col.Name))
		b.WriteString(formatter.Dim(fmt.Sprintf(" (%d)", len(m.data.tasks[col.ID]))))
		b.WriteString("\n")
		for ti, t := range m.data.tasks[col.ID] {
			line := fmt.Sprintf("%s %s", t.Ticket, formatter.Truncate(t.Title, paneWidth-12))
			if ci == m.colIdx && ti == m.taskIdx {
				line = selectedTaskStyle.Render("▸ " + line)
			} else {
				line = "  " + formatter.PriorityColor(t.Priority).Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		style := paneStyle
		if ci == m.colIdx {
			style = activePaneStyle
		}
		panes = append(panes, style.Width(paneWidth).Render(b.String()))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, panes...)
	footer := m.help.View(m.keys)
	if m.adding {
		col := m.currentColumn()
		prompt := formatter.Bold("New task in "+col.Name+": ") + m.input.View()
		footer = prompt + "\n" + formatter.Dim("enter to create, esc to cancel")
	}
	return title + "\n" + board + "\n" + footer
}
