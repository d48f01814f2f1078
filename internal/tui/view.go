package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/taskdesk/taskdesk/internal/domain"
	"github.com/taskdesk/taskdesk/internal/grouping"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	switch m.mode {
	case ModeHelp:
		return m.styles.App.Render(m.helpView())
	case ModeDetail:
		return m.styles.App.Render(m.detailView())
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.listView())
	b.WriteString("\n")
	b.WriteString(m.footerView())

	content := b.String()
	switch m.mode {
	case ModeActions:
		return m.overlay(content, m.actionsDialog())
	case ModeConfirm:
		return m.overlay(content, m.confirmDialog())
	case ModeComplete:
		return m.overlay(content, m.completeDialog())
	}
	return m.styles.App.Render(content)
}

func (m Model) headerView() string {
	title := "taskdesk"
	if m.trash {
		title += " · trash"
	} else {
		title += " · " + string(m.groupBy)
	}
	if m.loading {
		title += " " + m.spinner.View()
	}
	return m.styles.Header.Render(title)
}

func (m Model) listView() string {
	if m.win == nil || len(m.rows) == 0 {
		return m.styles.EmptyRow.Render("No tasks")
	}

	start, end := m.win.Visible(m.scrollTop, m.viewportHeight())
	var b strings.Builder
	for i := start; i < end; i++ {
		if i > start {
			b.WriteString("\n")
		}
		b.WriteString(m.rowView(i))
	}
	if m.loadingMore {
		b.WriteString("\n")
		b.WriteString(m.styles.EmptyRow.Render(m.spinner.View() + " loading more..."))
	}
	return b.String()
}

func (m Model) rowView(i int) string {
	row := m.rows[i]
	switch row.Kind {
	case grouping.RowGroupHeader:
		label := fmt.Sprintf("%s (%d)", row.Label, row.Count)
		lineWidth := m.width - lipgloss.Width(label) - 8
		if lineWidth < 0 {
			lineWidth = 0
		}
		return m.styles.GroupHeaderLabel.Render(label) + " " +
			m.styles.GroupHeaderLine.Render(strings.Repeat("─", lineWidth))

	case grouping.RowTrashBanner:
		return m.styles.TrashBanner.Render(row.Label)

	case grouping.RowEmpty:
		return m.styles.EmptyRow.Render(row.Label)

	case grouping.RowTask:
		return m.taskRowView(row.Task, i == m.cursor)
	}
	return ""
}

func (m Model) taskRowView(t *domain.Task, selected bool) string {
	cursor := "  "
	idStyle := m.styles.TaskID
	titleStyle := m.styles.TaskTitle
	metaStyle := m.styles.TaskMeta
	if selected {
		cursor = m.styles.CursorSelected.Render("> ")
		idStyle = m.styles.TaskIDSelected
		titleStyle = m.styles.TaskTitleSelected
		metaStyle = m.styles.TaskMetaSelected
	}

	icon := m.styles.StatusStyle(t.Status).Render(StatusIcon(t.Status))
	id := idStyle.Render(fmt.Sprintf("#%d", t.ID))

	maxTitle := m.width - 16
	if maxTitle < 10 {
		maxTitle = 10
	}
	title := titleStyle.Render(runewidth.Truncate(t.Title, maxTitle, "…"))

	meta := fmt.Sprintf("%s · P%d · due %s", t.Status.Display(), t.Priority, t.DueDate.Format("Jan 2 15:04"))
	if t.IsDeleted && t.DeletedAt != nil {
		meta = "deleted " + t.DeletedAt.Format("Jan 2 15:04")
	}
	metaLine := metaStyle.Render(meta)
	switch {
	case t.IsOverdue:
		metaLine += " " + m.styles.Overdue.Render("overdue")
	case t.IsAlmostOverdue:
		metaLine += " " + m.styles.AlmostOverdue.Render("due soon")
	}

	return cursor + icon + " " + id + " " + title + "\n" +
		"     " + metaLine
}

func (m Model) footerView() string {
	if m.errText != "" {
		return m.styles.ErrorMsg.Render(m.errText)
	}
	var parts []string
	for _, binding := range m.keys.ShortHelp() {
		parts = append(parts,
			m.styles.FooterKey.Render(binding.Help().Key)+" "+
				m.styles.Footer.Render(binding.Help().Desc))
	}
	return m.styles.Footer.Render(strings.Join(parts, "  "))
}

func (m Model) actionsDialog() string {
	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render("Status actions"))
	b.WriteString("\n\n")
	for i, action := range m.actions {
		cursor := "  "
		if i == m.actionCursor {
			cursor = m.styles.CursorSelected.Render("> ")
		}
		line := fmt.Sprintf("%s%s → %s", cursor, action.Label, action.Target.Display())
		if action.NeedsResult {
			line += m.styles.HelpDesc.Render(" (result required)")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.HelpDesc.Render("enter apply · esc cancel"))
	return m.styles.Dialog.Render(b.String())
}

func (m Model) confirmDialog() string {
	task := m.taskByID(m.confirmTaskID)
	title := ""
	if task != nil {
		title = runewidth.Truncate(task.Title, 40, "…")
	}
	prompt := fmt.Sprintf("Really %s #%d %s?", m.confirmAction.String(), m.confirmTaskID, title)
	body := m.styles.DialogTitle.Render("Confirm") + "\n\n" +
		m.styles.DialogPrompt.Render(prompt) + "\n\n" +
		m.styles.HelpDesc.Render("y confirm · any other key cancels")
	return m.styles.Dialog.Render(body)
}

func (m Model) completeDialog() string {
	title := "Complete task"
	if m.completeAction == "approve" {
		title = "Approve task"
	}
	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render(fmt.Sprintf("%s #%d", title, m.completeTaskID)))
	b.WriteString("\n\n")
	b.WriteString("Result:\n")
	b.WriteString(m.resultInput.View())
	b.WriteString("\n\nActual hours: ")
	b.WriteString(m.hoursInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.HelpDesc.Render("tab switch field · ctrl+s submit · esc cancel"))
	return m.styles.Dialog.Render(b.String())
}

func (m Model) helpView() string {
	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render("Keybindings"))
	b.WriteString("\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			b.WriteString(fmt.Sprintf("%s  %s\n",
				m.styles.HelpKey.Render(fmt.Sprintf("%-10s", binding.Help().Key)),
				m.styles.HelpDesc.Render(binding.Help().Desc)))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.HelpDesc.Render("esc to close"))
	return m.styles.Help.Render(b.String())
}

func (m Model) detailView() string {
	task := m.selectedTask()
	if task == nil {
		return m.styles.EmptyRow.Render("No task selected")
	}

	s := m.styles
	var b strings.Builder
	b.WriteString(s.DetailTitle.Render(fmt.Sprintf("#%d %s", task.ID, task.Title)))
	b.WriteString("\n")

	write := func(label, value string) {
		b.WriteString(s.DetailLabel.Render(label))
		b.WriteString(s.DetailValue.Render(value))
		b.WriteString("\n")
	}
	status := task.Status.Display()
	switch {
	case task.IsDeleted:
		status += " (in trash)"
	case task.IsOverdue:
		status += " (overdue)"
	case task.IsAlmostOverdue:
		status += " (due soon)"
	}
	write("Status", status)
	write("Priority", fmt.Sprintf("%d", task.Priority))
	write("Due", task.DueDate.Format("2006-01-02 15:04"))
	write("Creator", m.userName(task.Creator))
	if len(task.Assignees) > 0 {
		names := make([]string, len(task.Assignees))
		for i, ref := range task.Assignees {
			names[i] = m.userName(ref)
		}
		write("Assignees", strings.Join(names, ", "))
	}
	if len(task.Tags) > 0 {
		write("Tags", strings.Join(task.Tags, ", "))
	}
	if task.Description != "" {
		b.WriteString(s.DetailDesc.Render(task.Description))
		b.WriteString("\n")
	}
	if task.Result != "" {
		b.WriteString("\n")
		write("Result", task.Result)
	}

	if len(task.Checklist) > 0 {
		done := 0
		for _, item := range task.Checklist {
			if item.Completed {
				done++
			}
		}
		b.WriteString(fmt.Sprintf("\nChecklist (%d/%d):\n", done, len(task.Checklist)))
		for _, item := range task.Checklist {
			mark := "[ ]"
			if item.Completed {
				mark = "[x]"
			}
			b.WriteString(fmt.Sprintf("  %s%s %s\n", strings.Repeat("  ", item.Level), mark, item.Text))
		}
	}

	if len(task.Comments) > 0 {
		b.WriteString(fmt.Sprintf("\nComments (%d):\n", len(task.Comments)))
		for _, comment := range task.Comments {
			b.WriteString(s.HelpDesc.Render(fmt.Sprintf("  %s %s:",
				comment.Created.Format("Jan 2 15:04"), m.userNameByID(comment.AuthorID))))
			b.WriteString(" " + comment.Text + "\n")
		}
	}

	actions := domain.AvailableActions(task, m.user)
	if len(actions) > 0 {
		names := make([]string, len(actions))
		for i, a := range actions {
			names[i] = a.Label
		}
		b.WriteString("\n")
		write("Actions", strings.Join(names, ", "))
	}

	b.WriteString("\n")
	b.WriteString(s.HelpDesc.Render("esc back"))
	return b.String()
}

func (m Model) overlay(_ string, dialog string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}

func (m Model) taskByID(id int) *domain.Task {
	for _, t := range m.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (m Model) userName(ref domain.UserRef) string {
	if ref.User != nil && ref.User.Name != "" {
		return ref.User.Name
	}
	return m.userNameByID(ref.ID)
}

func (m Model) userNameByID(id int) string {
	if id == domain.SystemUserID {
		return "system"
	}
	if u, ok := m.users[id]; ok && u.Name != "" {
		return u.Name
	}
	return fmt.Sprintf("user %d", id)
}
