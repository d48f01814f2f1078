package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/taskdesk/taskdesk/internal/app"
	"github.com/taskdesk/taskdesk/internal/domain"
	"github.com/taskdesk/taskdesk/internal/grouping"
	"github.com/taskdesk/taskdesk/internal/tui/window"
	"github.com/taskdesk/taskdesk/internal/usecase"
)

// Row heights used by the windowed renderer.
const (
	heightTask   = 2 // Title line + meta line
	heightHeader = 1
	heightBanner = 1
	heightEmpty  = 1
)

// Model is the top-level bubbletea model for the task browser.
// Fields are ordered to minimize memory padding.
type Model struct {
	container *app.Container
	user      *domain.User

	tasks     []*domain.Task
	processes []domain.Process
	users     map[int]domain.User
	rows      []grouping.Row
	win       *window.Window

	resultInput textarea.Model
	hoursInput  textinput.Model
	spinner     spinner.Model
	keys        KeyMap
	styles      Styles

	actions  []domain.Action
	errText  string
	fatalErr error

	groupBy grouping.GroupBy
	mode    Mode

	cursor    int
	scrollTop int
	width     int
	height    int
	page      int

	confirmTaskID  int
	completeTaskID int
	actionCursor   int
	completeFocus  int
	confirmAction  ConfirmAction
	completeAction string

	trash       bool
	loading     bool
	loadingMore bool
	morePages   bool
	primed      bool
}

// New creates the initial model.
func New(c *app.Container) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	result := textarea.New()
	result.Placeholder = "What was done?"
	result.SetHeight(5)
	result.CharLimit = 0

	hours := textinput.New()
	hours.Placeholder = "0.0"
	hours.CharLimit = 8
	hours.Width = 10

	groupBy := grouping.GroupBy(c.Config.TUI.GroupBy)
	if !groupBy.IsValid() {
		groupBy = grouping.ByTime
	}

	return Model{
		container:   c,
		user:        c.User(),
		keys:        DefaultKeyMap(),
		styles:      DefaultStyles(),
		spinner:     sp,
		resultInput: result,
		hoursInput:  hours,
		groupBy:     groupBy,
		mode:        ModeNormal,
		page:        1,
		loading:     true,
	}
}

// Run starts the task browser.
func Run(c *app.Container) error {
	if c.User() == nil {
		return domain.ErrNotLoggedIn
	}
	final, err := tea.NewProgram(New(c), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.fatalErr != nil {
		return m.fatalErr
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadTasks(1, m.trash),
		m.loadDirectory(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(time.Time) tea.Msg {
		return MsgTick{}
	})
}

func clearErrorCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return MsgClearError{}
	})
}

// loadTasks fetches one page of the task list.
func (m Model) loadTasks(page int, trash bool) tea.Cmd {
	c := m.container
	user := m.user
	return func() tea.Msg {
		filter := domain.TaskFilter{
			Page:        page,
			PageSize:    c.Config.TUI.PageSize,
			DeletedOnly: trash,
		}
		if !trash {
			filter.AssigneeID = user.ID
		}
		out, err := c.ListTasksUseCase().Execute(context.Background(), usecase.ListTasksInput{Filter: filter})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTasksLoaded{Tasks: out.Tasks, Page: page, Trash: trash}
	}
}

// loadDirectory fetches the supporting collections.
func (m Model) loadDirectory() tea.Cmd {
	c := m.container
	return func() tea.Msg {
		ctx := context.Background()
		users, err := c.Directory.ListUsers(ctx)
		if err != nil {
			return MsgError{Err: err}
		}
		processes, err := c.Directory.ListProcesses(ctx)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgDirectoryLoaded{Users: users, Processes: processes}
	}
}

func (m Model) applyActionCmd(taskID int, action, result string, hours float64) tea.Cmd {
	c := m.container
	user := m.user
	return func() tea.Msg {
		out, err := c.ChangeStatusUseCase().Execute(context.Background(), usecase.ChangeStatusInput{
			User:        user,
			Action:      action,
			Result:      result,
			ActualHours: hours,
			TaskID:      taskID,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskUpdated{Task: out.Task}
	}
}

func (m Model) deleteTaskCmd(taskID int) tea.Cmd {
	c := m.container
	user := m.user
	return func() tea.Msg {
		if err := c.DeleteTaskUseCase().Execute(context.Background(), usecase.DeleteTaskInput{
			User:   user,
			TaskID: taskID,
		}); err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskRemoved{TaskID: taskID}
	}
}

func (m Model) restoreTaskCmd(taskID int) tea.Cmd {
	c := m.container
	user := m.user
	return func() tea.Msg {
		if err := c.RestoreTaskUseCase().Execute(context.Background(), usecase.RestoreTaskInput{
			User:   user,
			TaskID: taskID,
		}); err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskRemoved{TaskID: taskID}
	}
}

func (m Model) purgeTaskCmd(taskID int) tea.Cmd {
	c := m.container
	user := m.user
	return func() tea.Msg {
		if err := c.PurgeTaskUseCase().Execute(context.Background(), usecase.PurgeTaskInput{
			User:   user,
			TaskID: taskID,
		}); err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskRemoved{TaskID: taskID}
	}
}

// rebuildRows regroups the task list and rebuilds the height window.
// The cursor is clamped to the nearest task row.
func (m *Model) rebuildRows() {
	now := m.container.Clock.Now()
	trashView := m.trash || grouping.IsTrashView(m.tasks)
	groups := grouping.GroupTasks(m.tasks, m.groupBy, m.processes, now)
	m.rows = grouping.Flatten(groups, trashView)

	kinds := make([]int, len(m.rows))
	for i, row := range m.rows {
		kinds[i] = int(row.Kind)
	}
	m.win = window.New(len(m.rows), window.FixedHeights(kinds, map[int]int{
		int(grouping.RowTask):        heightTask,
		int(grouping.RowGroupHeader): heightHeader,
		int(grouping.RowTrashBanner): heightBanner,
		int(grouping.RowEmpty):       heightEmpty,
	}, 1))

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if len(m.rows) > 0 && m.rows[m.cursor].Kind != grouping.RowTask {
		m.moveCursor(1)
	}
	m.scrollTop = m.win.ClampScroll(m.scrollTop, m.viewportHeight())
}

// moveCursor advances the cursor by delta, skipping non-task rows, and
// keeps it visible.
func (m *Model) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	i := m.cursor
	for {
		i += delta
		if i < 0 || i >= len(m.rows) {
			return
		}
		if m.rows[i].Kind == grouping.RowTask {
			break
		}
	}
	m.cursor = i
	m.scrollTop = m.win.ScrollIntoView(m.cursor, m.scrollTop, m.viewportHeight())
}

// selectedTask returns the task under the cursor, or nil.
func (m *Model) selectedTask() *domain.Task {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].Task
}

// viewportHeight is the list area height: total minus header, footer
// and padding.
func (m *Model) viewportHeight() int {
	h := m.height - 6
	if h < 1 {
		return 1
	}
	return h
}

// maybeLoadMore requests the next page when the visible window is near
// the end of the loaded rows.
func (m *Model) maybeLoadMore() tea.Cmd {
	if m.loadingMore || !m.morePages || m.win == nil {
		return nil
	}
	_, end := m.win.Visible(m.scrollTop, m.viewportHeight())
	if !m.win.NearEnd(end, m.container.Config.TUI.LoadMoreThreshold) {
		return nil
	}
	m.loadingMore = true
	return m.loadTasks(m.page+1, m.trash)
}
