package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-ports/pantry/internal/service"
)

const (
	cardWidth   = 22
	maxBarWidth = 40
)

type dashboardLoadedMsg struct {
	counts service.Counts
	err    error
}

type dashboardPage struct {
	env    *env
	status pageStatus
	counts service.Counts
}

func newDashboardPage(e *env) *dashboardPage {
	return &dashboardPage{env: e}
}

func (p *dashboardPage) title() string   { return "Dashboard" }
func (p *dashboardPage) capturing() bool { return false }
func (p *dashboardPage) help() string    { return "r reload" }

func (p *dashboardPage) load() tea.Cmd {
	p.status.loading()
	svc, ctx := p.env.svc, p.env.ctx
	return func() tea.Msg {
		counts, err := svc.Dashboard(ctx)
		return dashboardLoadedMsg{counts: counts, err: err}
	}
}

func (p *dashboardPage) update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(dashboardLoadedMsg); ok && p.status.loaded(m.err) {
		p.counts = m.counts
	}
	return nil
}

func (p *dashboardPage) view(width, _ int) string {
	st := p.env.styles
	var sb strings.Builder
	sb.WriteString(st.Header.Render("Dashboard"))
	sb.WriteString("\n")
	if body, ok := p.status.placeholder(st); ok {
		sb.WriteString(body)
		return sb.String()
	}

	cards := p.counts.Cards(p.env.svc.Config.Dashboard.ExpiringDays)
	boxes := make([]string, len(cards))
	for i, c := range cards {
		boxes[i] = st.Card.Render(c.Title + "\n" + st.CardValue.Render(strconv.Itoa(c.Value)) + "\n" + st.Subtle.Render(c.Hint))
	}
	sb.WriteString(wrapRow(boxes, width))
	sb.WriteString("\n\n")
	sb.WriteString(st.Section.Render("Overview"))
	sb.WriteString("\n")
	sb.WriteString(barChart(cards, st, width))
	return sb.String()
}

// wrapRow lays boxes out horizontally, starting a new row when the next box
// would exceed width.
func wrapRow(boxes []string, width int) string {
	var rows []string
	var row []string
	used := 0
	for _, b := range boxes {
		w := lipgloss.Width(b)
		if len(row) > 0 && width > 0 && used+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, used = nil, 0
		}
		row = append(row, b)
		used += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// barChart draws one horizontal bar per card scaled to the largest value.
func barChart(cards []service.Card, st styles, width int) string {
	labelWidth := 0
	maxValue := 0
	for _, c := range cards {
		labelWidth = max(labelWidth, lipgloss.Width(c.Title))
		maxValue = max(maxValue, c.Value)
	}
	barWidth := maxBarWidth
	if width > 0 {
		barWidth = min(barWidth, width-labelWidth-8)
	}
	barWidth = max(barWidth, 1)

	var sb strings.Builder
	for _, c := range cards {
		n := 0
		if maxValue > 0 {
			n = c.Value * barWidth / maxValue
		}
		if c.Value > 0 && n == 0 {
			n = 1
		}
		fmt.Fprintf(&sb, "%-*s %s %d\n", labelWidth, c.Title, st.Bar.Render(strings.Repeat("█", n)), c.Value)
	}
	return strings.TrimRight(sb.String(), "\n")
}
