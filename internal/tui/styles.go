package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/taskdesk/taskdesk/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color

	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color
	DescNormal    lipgloss.Color

	// Status colors
	New            lipgloss.Color
	Acknowledged   lipgloss.Color
	InProgress     lipgloss.Color
	Paused         lipgloss.Color
	WaitingControl lipgloss.Color
	OnControl      lipgloss.Color
	Completed      lipgloss.Color

	GroupLine lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Background: lipgloss.Color("#2D3436"), // Dark gray

	TitleNormal:   lipgloss.Color("#DFE6E9"),
	TitleSelected: lipgloss.Color("#FFEAA7"),
	DescNormal:    lipgloss.Color("#636E72"),

	New:            lipgloss.Color("#74B9FF"), // Light blue
	Acknowledged:   lipgloss.Color("#81ECEC"), // Cyan
	InProgress:     lipgloss.Color("#FDCB6E"), // Yellow
	Paused:         lipgloss.Color("#636E72"), // Gray
	WaitingControl: lipgloss.Color("#A29BFE"), // Lavender
	OnControl:      lipgloss.Color("#E17055"), // Orange
	Completed:      lipgloss.Color("#00B894"), // Green

	GroupLine: lipgloss.Color("#636E72"),
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	App        lipgloss.Style
	Header     lipgloss.Style
	HeaderText lipgloss.Style

	TaskID            lipgloss.Style
	TaskIDSelected    lipgloss.Style
	TaskTitle         lipgloss.Style
	TaskTitleSelected lipgloss.Style
	TaskMeta          lipgloss.Style
	TaskMetaSelected  lipgloss.Style
	CursorSelected    lipgloss.Style

	Overdue       lipgloss.Style
	AlmostOverdue lipgloss.Style

	GroupHeaderLine  lipgloss.Style
	GroupHeaderLabel lipgloss.Style
	TrashBanner      lipgloss.Style
	EmptyRow         lipgloss.Style

	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogPrompt lipgloss.Style

	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	Footer    lipgloss.Style
	FooterKey lipgloss.Style
	ErrorMsg  lipgloss.Style

	DetailTitle lipgloss.Style
	DetailLabel lipgloss.Style
	DetailValue lipgloss.Style
	DetailDesc  lipgloss.Style

	statusStyles map[domain.Status]lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	s := Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		HeaderText: lipgloss.NewStyle().
			Bold(true),

		TaskID: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Width(6),

		TaskIDSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true).
			Width(6),

		TaskTitle: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		TaskTitleSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		TaskMeta: lipgloss.NewStyle().
			Foreground(Colors.DescNormal),

		TaskMetaSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected),

		CursorSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		Overdue: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),

		AlmostOverdue: lipgloss.NewStyle().
			Foreground(Colors.Warning),

		GroupHeaderLine: lipgloss.NewStyle().
			Foreground(Colors.GroupLine),

		GroupHeaderLabel: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		TrashBanner: lipgloss.NewStyle().
			Foreground(Colors.Warning).
			Bold(true),

		EmptyRow: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),

		Dialog: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary),

		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		DialogPrompt: lipgloss.NewStyle(),

		Help: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted),

		HelpKey: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		FooterKey: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),

		DetailTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		DetailLabel: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Width(12),

		DetailValue: lipgloss.NewStyle(),

		DetailDesc: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			MarginTop(1),
	}

	s.statusStyles = map[domain.Status]lipgloss.Style{
		domain.StatusNew:            lipgloss.NewStyle().Foreground(Colors.New),
		domain.StatusAcknowledged:   lipgloss.NewStyle().Foreground(Colors.Acknowledged),
		domain.StatusInProgress:     lipgloss.NewStyle().Foreground(Colors.InProgress),
		domain.StatusPaused:         lipgloss.NewStyle().Foreground(Colors.Paused),
		domain.StatusWaitingControl: lipgloss.NewStyle().Foreground(Colors.WaitingControl),
		domain.StatusOnControl:      lipgloss.NewStyle().Foreground(Colors.OnControl),
		domain.StatusCompleted:      lipgloss.NewStyle().Foreground(Colors.Completed),
	}
	return s
}

// StatusStyle returns the style for a given status.
func (s Styles) StatusStyle(status domain.Status) lipgloss.Style {
	if style, ok := s.statusStyles[status]; ok {
		return style
	}
	return lipgloss.NewStyle().Foreground(Colors.Muted)
}

// StatusIcon returns an icon for a given status.
func StatusIcon(status domain.Status) string {
	switch status {
	case domain.StatusNew:
		return "○"
	case domain.StatusAcknowledged:
		return "◌"
	case domain.StatusInProgress:
		return "●"
	case domain.StatusPaused:
		return "◫"
	case domain.StatusWaitingControl:
		return "◍"
	case domain.StatusOnControl:
		return "◉"
	case domain.StatusCompleted:
		return "✓"
	default:
		return "?"
	}
}
