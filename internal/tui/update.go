package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/taskdesk/taskdesk/internal/domain"
	"github.com/taskdesk/taskdesk/internal/grouping"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resultInput.SetWidth(min(msg.Width-10, 70))
		if m.win != nil {
			m.scrollTop = m.win.ClampScroll(m.scrollTop, m.viewportHeight())
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.loadingMore {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case MsgTasksLoaded:
		if msg.Trash != m.trash {
			// A stale page from before the view toggled.
			return m, nil
		}
		if msg.Page <= 1 {
			m.tasks = msg.Tasks
		} else {
			m.tasks = append(m.tasks, msg.Tasks...)
		}
		m.page = max(msg.Page, 1)
		m.morePages = len(msg.Tasks) >= m.container.Config.TUI.PageSize
		m.loading = false
		m.loadingMore = false
		m.primed = true
		m.rebuildRows()
		return m, m.maybeLoadMore()

	case MsgDirectoryLoaded:
		m.processes = msg.Processes
		m.users = make(map[int]domain.User, len(msg.Users))
		for _, u := range msg.Users {
			m.users[u.ID] = u
		}
		m.rebuildRows()
		return m, nil

	case MsgError:
		if !m.primed {
			// The initial bulk load failing is fatal.
			m.fatalErr = msg.Err
			return m, tea.Quit
		}
		m.loadingMore = false
		m.loading = false
		m.errText = msg.Err.Error()
		return m, clearErrorCmd()

	case MsgClearError:
		m.errText = ""
		return m, nil

	case MsgTick:
		if m.container.Cache != nil {
			if changed := m.container.Cache.RefreshOverdue(m.container.Clock.Now()); changed > 0 {
				m.rebuildRows()
			}
		}
		return m, tickCmd()

	case MsgTaskUpdated:
		m.replaceTask(msg.Task)
		m.mode = ModeNormal
		m.rebuildRows()
		return m, nil

	case MsgTaskRemoved:
		m.removeTask(msg.TaskID)
		m.mode = ModeNormal
		m.rebuildRows()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeComplete:
		return m.handleCompleteKey(msg)
	case ModeActions:
		return m.handleActionsKey(msg)
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	case ModeHelp, ModeDetail:
		if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Quit) || key.Matches(msg, m.keys.Enter) {
			m.mode = ModeNormal
		}
		return m, nil
	default:
		return m.handleNormalKey(msg)
	}
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, keys.Down):
		m.moveCursor(1)
		return m, m.maybeLoadMore()

	case key.Matches(msg, keys.PageUp):
		if m.win != nil {
			m.scrollTop = m.win.ClampScroll(m.scrollTop-m.viewportHeight(), m.viewportHeight())
		}
		return m, nil

	case key.Matches(msg, keys.PageDown):
		if m.win != nil {
			m.scrollTop = m.win.ClampScroll(m.scrollTop+m.viewportHeight(), m.viewportHeight())
		}
		return m, m.maybeLoadMore()

	case key.Matches(msg, keys.Enter):
		if m.selectedTask() != nil {
			m.mode = ModeDetail
		}
		return m, nil

	case key.Matches(msg, keys.Actions):
		task := m.selectedTask()
		if task == nil {
			return m, nil
		}
		m.actions = domain.AvailableActions(task, m.user)
		if len(m.actions) == 0 {
			m.errText = "no status actions available"
			return m, clearErrorCmd()
		}
		m.actionCursor = 0
		m.mode = ModeActions
		return m, nil

	case key.Matches(msg, keys.Complete):
		task := m.selectedTask()
		if task == nil {
			return m, nil
		}
		return m.openCompleteDialog(task)

	case key.Matches(msg, keys.Delete):
		task := m.selectedTask()
		if task == nil {
			return m, nil
		}
		m.confirmTaskID = task.ID
		if task.IsDeleted {
			m.confirmAction = ConfirmPurge
		} else {
			m.confirmAction = ConfirmDelete
		}
		m.mode = ModeConfirm
		return m, nil

	case key.Matches(msg, keys.Restore):
		task := m.selectedTask()
		if task == nil || !task.IsDeleted {
			return m, nil
		}
		m.confirmTaskID = task.ID
		m.confirmAction = ConfirmRestore
		m.mode = ModeConfirm
		return m, nil

	case key.Matches(msg, keys.Refresh):
		m.loading = true
		m.page = 1
		return m, tea.Batch(m.spinner.Tick, m.loadTasks(1, m.trash))

	case key.Matches(msg, keys.Group):
		m.groupBy = nextGroupBy(m.groupBy)
		m.rebuildRows()
		return m, nil

	case key.Matches(msg, keys.Trash):
		m.trash = !m.trash
		m.loading = true
		m.page = 1
		m.cursor = 0
		m.scrollTop = 0
		m.tasks = nil
		m.rebuildRows()
		return m, tea.Batch(m.spinner.Tick, m.loadTasks(1, m.trash))

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
		return m, nil
	}

	return m, nil
}

func (m Model) handleActionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.actionCursor > 0 {
			m.actionCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.actionCursor < len(m.actions)-1 {
			m.actionCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		task := m.selectedTask()
		if task == nil || m.actionCursor >= len(m.actions) {
			m.mode = ModeNormal
			return m, nil
		}
		action := m.actions[m.actionCursor]
		if action.NeedsResult {
			return m.openCompleteDialogFor(task, action.Name)
		}
		m.mode = ModeNormal
		return m, m.applyActionCmd(task.ID, action.Name, "", 0)
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Confirm) {
		id := m.confirmTaskID
		action := m.confirmAction
		m.mode = ModeNormal
		m.confirmAction = ConfirmNone
		switch action {
		case ConfirmDelete:
			return m, m.deleteTaskCmd(id)
		case ConfirmRestore:
			return m, m.restoreTaskCmd(id)
		case ConfirmPurge:
			return m, m.purgeTaskCmd(id)
		}
		return m, nil
	}
	// Anything else cancels.
	m.mode = ModeNormal
	m.confirmAction = ConfirmNone
	return m, nil
}

func (m Model) handleCompleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.completeFocus = (m.completeFocus + 1) % 2
		if m.completeFocus == 0 {
			m.resultInput.Focus()
			m.hoursInput.Blur()
		} else {
			m.resultInput.Blur()
			m.hoursInput.Focus()
		}
		return m, nil

	case msg.Type == tea.KeyEnter && m.completeFocus == 1:
		return m.submitComplete()

	case msg.Type == tea.KeyCtrlS:
		return m.submitComplete()
	}

	var cmd tea.Cmd
	if m.completeFocus == 0 {
		m.resultInput, cmd = m.resultInput.Update(msg)
	} else {
		m.hoursInput, cmd = m.hoursInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submitComplete() (tea.Model, tea.Cmd) {
	result := strings.TrimSpace(m.resultInput.Value())
	if result == "" {
		m.errText = "a completion result is required"
		return m, clearErrorCmd()
	}

	var hours float64
	if raw := strings.TrimSpace(m.hoursInput.Value()); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			m.errText = "hours must be a non-negative number"
			return m, clearErrorCmd()
		}
		hours = parsed
	}

	taskID := m.completeTaskID
	action := m.completeAction
	m.mode = ModeNormal
	return m, m.applyActionCmd(taskID, action, result, hours)
}

// openCompleteDialog opens the completion dialog with the action implied
// by the task's current status.
func (m Model) openCompleteDialog(task *domain.Task) (tea.Model, tea.Cmd) {
	name := "complete"
	if task.Status == domain.StatusOnControl {
		name = "approve"
	}
	return m.openCompleteDialogFor(task, name)
}

func (m Model) openCompleteDialogFor(task *domain.Task, action string) (tea.Model, tea.Cmd) {
	if domain.FindAction(domain.AvailableActions(task, m.user), action) == nil {
		m.errText = "completing is not available for this task"
		return m, clearErrorCmd()
	}
	m.completeTaskID = task.ID
	m.completeAction = action
	m.completeFocus = 0
	m.resultInput.Reset()
	m.hoursInput.Reset()
	m.hoursInput.Blur()
	m.mode = ModeComplete
	return m, m.resultInput.Focus()
}

func (m *Model) replaceTask(task *domain.Task) {
	for i, t := range m.tasks {
		if t.ID == task.ID {
			m.tasks[i] = task
			return
		}
	}
	m.tasks = append(m.tasks, task)
}

func (m *Model) removeTask(id int) {
	for i, t := range m.tasks {
		if t.ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return
		}
	}
}

func nextGroupBy(g grouping.GroupBy) grouping.GroupBy {
	switch g {
	case grouping.ByTime:
		return grouping.ByProcess
	case grouping.ByProcess:
		return grouping.ByPriority
	default:
		return grouping.ByTime
	}
}
