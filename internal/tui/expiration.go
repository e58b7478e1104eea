package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-ports/pantry/internal/expiration"
	"github.com/go-ports/pantry/internal/models"
	"github.com/go-ports/pantry/internal/service"
)

type expirationLoadedMsg struct {
	report service.ExpirationReport
	err    error
}

type expirationPage struct {
	env    *env
	status pageStatus
	report service.ExpirationReport
	table  table.Model
}

func newExpirationPage(e *env) *expirationPage {
	return &expirationPage{
		env: e,
		table: newTable([]table.Column{
			{Title: "Name", Width: 24},
			{Title: "Quantity", Width: 12},
			{Title: "Expiration Date", Width: 16},
			{Title: "Status", Width: 10},
			{Title: "Days Left", Width: 12},
		}),
	}
}

func (p *expirationPage) title() string   { return "Expiration" }
func (p *expirationPage) capturing() bool { return false }
func (p *expirationPage) help() string    { return "↑/↓ move · r reload" }

func (p *expirationPage) load() tea.Cmd {
	p.status.loading()
	svc, ctx := p.env.svc, p.env.ctx
	return func() tea.Msg {
		rep, err := svc.Expiration(ctx)
		return expirationLoadedMsg{report: rep, err: err}
	}
}

func (p *expirationPage) update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(expirationLoadedMsg); ok {
		if p.status.loaded(m.err) {
			p.report = m.report
			p.refresh()
		}
		return nil
	}
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return cmd
}

func (p *expirationPage) refresh() {
	rows := make([]table.Row, len(p.report.Rows))
	for i, r := range p.report.Rows {
		status := "-"
		if r.Valid {
			status = string(r.Status)
		}
		rows[i] = table.Row{
			r.Ingredient.Name,
			models.FormatQuantity(r.Ingredient.Quantity) + " " + r.Ingredient.Unit,
			displayDate(r),
			status,
			r.DaysLeftLabel(),
		}
	}
	p.table.SetRows(rows)
}

func (p *expirationPage) view(width, height int) string {
	st := p.env.styles
	var sb strings.Builder
	sb.WriteString(st.Header.Render("Expiration Tracking"))
	sb.WriteString("\n")
	if body, ok := p.status.placeholder(st); ok {
		sb.WriteString(body)
		return sb.String()
	}

	cards := make([]string, len(expiration.Statuses))
	for i, s := range expiration.Statuses {
		cards[i] = st.Card.Render(s.Title() + "\n" + st.status(s) + " " + st.CardValue.Render(strconv.Itoa(p.report.Summary[s])))
	}
	sb.WriteString(wrapRow(cards, width))
	sb.WriteString("\n\n")

	if len(p.report.Rows) == 0 {
		sb.WriteString(st.Subtle.Render("No ingredients in the pantry."))
		return sb.String()
	}
	fitTable(&p.table, height, 14)
	sb.WriteString(p.table.View())
	return sb.String()
}

// displayDate renders a row's date as DD/MM/YYYY, or the raw value when it
// does not parse.
func displayDate(r expiration.Row) string {
	if !r.Valid {
		return r.Ingredient.ExpirationDate
	}
	return r.Expires.Format("02/01/2006")
}
