package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-ports/pantry/internal/models"
	"github.com/go-ports/pantry/internal/search"
)

type (
	ingredientsLoadedMsg struct {
		items []models.Ingredient
		err   error
	}
	ingredientAddedMsg struct {
		item models.Ingredient
		err  error
	}
	ingredientDeletedMsg struct {
		id  models.ID
		err error
	}
)

type ingredientsPage struct {
	env    *env
	status pageStatus
	items  []models.Ingredient
	shown  []models.Ingredient
	table  table.Model
	form   formHost
	draft  *ingredientDraft

	filter filterBox
}

func newIngredientsPage(e *env) *ingredientsPage {
	return &ingredientsPage{
		env: e,
		table: newTable([]table.Column{
			{Title: "Name", Width: 24},
			{Title: "Quantity", Width: 10},
			{Title: "Unit", Width: 6},
			{Title: "Expiration Date", Width: 16},
		}),
		filter: newFilterBox("filter by name"),
	}
}

func (p *ingredientsPage) title() string   { return "Ingredients" }
func (p *ingredientsPage) capturing() bool { return p.form.active() || p.filter.active }
func (p *ingredientsPage) help() string    { return "a add · d delete · / filter · r reload" }

func (p *ingredientsPage) load() tea.Cmd {
	p.status.loading()
	svc, ctx := p.env.svc, p.env.ctx
	return func() tea.Msg {
		items, err := svc.Ingredients(ctx)
		return ingredientsLoadedMsg{items: items, err: err}
	}
}

func (p *ingredientsPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ingredientsLoadedMsg:
		if p.status.loaded(msg.err) {
			p.items = msg.items
			p.refresh()
		}
		return nil
	case ingredientAddedMsg:
		if p.status.mutated(msg.err, "Added "+msg.item.Name) {
			p.items = append(p.items, msg.item)
			p.refresh()
		}
		return nil
	case ingredientDeletedMsg:
		if p.status.mutated(msg.err, "Deleted") {
			p.items = removeByID(p.items, msg.id, func(i models.Ingredient) models.ID { return i.ID })
			p.refresh()
		}
		return nil
	}

	if p.form.active() {
		return p.form.update(msg)
	}
	if p.filter.active {
		cmd := p.filter.update(msg)
		p.refresh()
		return cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok && p.status.state == stateReady {
		switch km.String() {
		case "a":
			return p.openAdd()
		case "d":
			return p.deleteSelected()
		case "/":
			return p.filter.focus()
		}
	}
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return cmd
}

func (p *ingredientsPage) refresh() {
	p.shown = search.Ingredients(p.items, p.filter.value())
	rows := make([]table.Row, len(p.shown))
	for i, ing := range p.shown {
		rows[i] = table.Row{ing.Name, models.FormatQuantity(ing.Quantity), ing.Unit, ing.ExpirationDate}
	}
	p.table.SetRows(rows)
	if p.table.Cursor() >= len(rows) {
		p.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (p *ingredientsPage) openAdd() tea.Cmd {
	p.draft = newIngredientDraft()
	return p.form.open(p.draft.form(), p.submitAdd)
}

func (p *ingredientsPage) submitAdd() tea.Cmd {
	ing, err := p.draft.ingredient()
	if err != nil {
		p.status.mutated(err, "")
		return nil
	}
	svc, ctx := p.env.svc, p.env.ctx
	return func() tea.Msg {
		created, err := svc.AddIngredient(ctx, ing)
		return ingredientAddedMsg{item: created, err: err}
	}
}

func (p *ingredientsPage) deleteSelected() tea.Cmd {
	i, ok := selectedIndex(p.table, len(p.shown))
	if !ok {
		return nil
	}
	id := p.shown[i].ID
	svc, ctx := p.env.svc, p.env.ctx
	return func() tea.Msg {
		return ingredientDeletedMsg{id: id, err: svc.DeleteIngredient(ctx, id)}
	}
}

func (p *ingredientsPage) view(_, height int) string {
	st := p.env.styles
	var sb strings.Builder
	sb.WriteString(st.Header.Render("Ingredients"))
	sb.WriteString("\n")
	if p.form.active() {
		sb.WriteString(st.Section.Render("Add New Ingredient"))
		sb.WriteString("\n")
		sb.WriteString(p.form.view())
		return sb.String()
	}
	if body, ok := p.status.placeholder(st); ok {
		sb.WriteString(body)
		return sb.String()
	}
	if p.filter.visible() {
		sb.WriteString(p.filter.view())
		sb.WriteString("\n")
	}
	if len(p.items) == 0 {
		sb.WriteString(st.Subtle.Render("No ingredients yet. Press a to add one."))
	} else {
		fitTable(&p.table, height, 8)
		sb.WriteString(p.table.View())
	}
	sb.WriteString(p.status.flashLine(st))
	return sb.String()
}

func removeByID[T any](items []T, id models.ID, idOf func(T) models.ID) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if idOf(it) != id {
			out = append(out, it)
		}
	}
	return out
}
