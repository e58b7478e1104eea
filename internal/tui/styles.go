package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-ports/pantry/internal/expiration"
)

// Palette.
var (
	colorPrimary = lipgloss.Color("#16a34a")
	colorMuted   = lipgloss.Color("#6b7280")
	colorBorder  = lipgloss.Color("#374151")
	colorError   = lipgloss.Color("#dc2626")
	colorCursor  = lipgloss.Color("#2563eb")
)

type styles struct {
	Sidebar      lipgloss.Style
	SidebarTitle lipgloss.Style
	NavItem      lipgloss.Style
	NavActive    lipgloss.Style
	Content      lipgloss.Style
	Header       lipgloss.Style
	Subtle       lipgloss.Style
	Error        lipgloss.Style
	Card         lipgloss.Style
	CardValue    lipgloss.Style
	Bar          lipgloss.Style
	Section      lipgloss.Style
	Cursor       lipgloss.Style
	Checked      lipgloss.Style
	Help         lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Sidebar: lipgloss.NewStyle().
			Width(sidebarWidth).
			Padding(1, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(colorBorder),
		SidebarTitle: lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginBottom(1),
		NavItem:      lipgloss.NewStyle().PaddingLeft(1),
		NavActive:    lipgloss.NewStyle().PaddingLeft(1).Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(colorPrimary),
		Content:      lipgloss.NewStyle().Padding(1, 2),
		Header:       lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Subtle:       lipgloss.NewStyle().Foreground(colorMuted),
		Error:        lipgloss.NewStyle().Foreground(colorError),
		Card: lipgloss.NewStyle().
			Width(cardWidth).
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder),
		CardValue: lipgloss.NewStyle().Bold(true),
		Bar:       lipgloss.NewStyle().Foreground(colorPrimary),
		Section:   lipgloss.NewStyle().Bold(true).MarginTop(1),
		Cursor:    lipgloss.NewStyle().Foreground(colorCursor).Bold(true),
		Checked:   lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true),
		Help:      lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
	}
}

// status renders an expiration badge in its colour.
func (s styles) status(st expiration.Status) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(st.Color())).Bold(true).Render(string(st))
}

func tableStyles() table.Styles {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("#ffffff")).
		Background(colorCursor).
		Bold(false)
	return ts
}
