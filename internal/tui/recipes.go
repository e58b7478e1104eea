package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-ports/pantry/internal/markdown"
	"github.com/go-ports/pantry/internal/models"
	"github.com/go-ports/pantry/internal/search"
)

type (
	recipesLoadedMsg struct {
		items []models.Recipe
		err   error
	}
	recipeSavedMsg struct {
		recipe  models.Recipe
		created bool
		err     error
	}
	recipeDeletedMsg struct {
		id  models.ID
		err error
	}
)

type recipesPage struct {
	env    *env
	status pageStatus
	items  []models.Recipe
	shown  []models.Recipe
	table  table.Model
	form   formHost
	draft  *recipeDraft
	filter filterBox

	// details is non-nil while a recipe is shown full screen.
	details *viewport.Model
}

func newRecipesPage(e *env) *recipesPage {
	return &recipesPage{
		env: e,
		table: newTable([]table.Column{
			{Title: "Name", Width: 28},
			{Title: "Ingredients", Width: 12},
			{Title: "Steps", Width: 6},
			{Title: "Prep", Width: 8},
			{Title: "Cook", Width: 8},
			{Title: "Total", Width: 8},
		}),
		filter: newFilterBox("filter by name or ingredient"),
	}
}

func (p *recipesPage) title() string   { return "Recipes" }
func (p *recipesPage) capturing() bool { return p.form.active() || p.details != nil || p.filter.active }

func (p *recipesPage) help() string {
	if p.details != nil {
		return "↑/↓ scroll · esc back"
	}
	return "a add · e edit · d delete · enter details · / filter · r reload"
}

func (p *recipesPage) load() tea.Cmd {
	p.status.loading()
	p.details = nil
	svc, ctx := p.env.svc, p.env.ctx
	return func() tea.Msg {
		items, err := svc.Recipes(ctx)
		return recipesLoadedMsg{items: items, err: err}
	}
}

func (p *recipesPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case recipesLoadedMsg:
		if p.status.loaded(msg.err) {
			p.items = msg.items
			p.refresh()
		}
		return nil
	case recipeSavedMsg:
		verb := "Updated "
		if msg.created {
			verb = "Added "
		}
		if p.status.mutated(msg.err, verb+msg.recipe.Name) {
			p.items = upsertRecipe(p.items, msg.recipe)
			p.refresh()
		}
		return nil
	case recipeDeletedMsg:
		if p.status.mutated(msg.err, "Deleted") {
			p.items = removeByID(p.items, msg.id, func(r models.Recipe) models.ID { return r.ID })
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
	if p.details != nil {
		if km, ok := msg.(tea.KeyMsg); ok && (km.String() == "esc" || km.String() == "q") {
			p.details = nil
			return nil
		}
		var cmd tea.Cmd
		*p.details, cmd = p.details.Update(msg)
		return cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok && p.status.state == stateReady {
		switch km.String() {
		case "a":
			return p.openForm(nil)
		case "e":
			if r, ok := p.selected(); ok {
				return p.openForm(&r)
			}
			return nil
		case "d":
			return p.deleteSelected()
		case "enter":
			p.showDetails()
			return nil
		case "/":
			return p.filter.focus()
		}
	}
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return cmd
}

func (p *recipesPage) refresh() {
	p.shown = search.Recipes(p.items, p.filter.value())
	rows := make([]table.Row, len(p.shown))
	for i, r := range p.shown {
		rows[i] = table.Row{
			r.Name,
			strconv.Itoa(len(r.Ingredients)),
			strconv.Itoa(len(r.Steps)),
			minutesLabel(r.PrepTime),
			minutesLabel(r.CookTime),
			minutesLabel(r.TotalTime()),
		}
	}
	p.table.SetRows(rows)
	if p.table.Cursor() >= len(rows) {
		p.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (p *recipesPage) selected() (models.Recipe, bool) {
	i, ok := selectedIndex(p.table, len(p.shown))
	if !ok {
		return models.Recipe{}, false
	}
	return p.shown[i], true
}

func (p *recipesPage) openForm(r *models.Recipe) tea.Cmd {
	p.draft = newRecipeDraft(r)
	return p.form.open(p.draft.form(), p.submit)
}

func (p *recipesPage) submit() tea.Cmd {
	r := p.draft.recipe()
	svc, ctx := p.env.svc, p.env.ctx
	return func() tea.Msg {
		if r.ID == "" {
			saved, err := svc.AddRecipe(ctx, r)
			return recipeSavedMsg{recipe: saved, created: true, err: err}
		}
		saved, err := svc.UpdateRecipe(ctx, r)
		return recipeSavedMsg{recipe: saved, err: err}
	}
}

func (p *recipesPage) deleteSelected() tea.Cmd {
	r, ok := p.selected()
	if !ok {
		return nil
	}
	svc, ctx := p.env.svc, p.env.ctx
	return func() tea.Msg {
		return recipeDeletedMsg{id: r.ID, err: svc.DeleteRecipe(ctx, r.ID)}
	}
}

func (p *recipesPage) showDetails() {
	r, ok := p.selected()
	if !ok {
		return
	}
	vp := viewport.New(80, 20)
	vp.SetContent(renderRecipe(r, p.env.glamourStyle, 78))
	p.details = &vp
}

func (p *recipesPage) view(width, height int) string {
	st := p.env.styles
	var sb strings.Builder
	sb.WriteString(st.Header.Render("Recipes"))
	sb.WriteString("\n")
	switch {
	case p.form.active():
		heading := "Add New Recipe"
		if p.draft.ID != "" {
			heading = "Edit Recipe"
		}
		sb.WriteString(st.Section.Render(heading))
		sb.WriteString("\n")
		sb.WriteString(p.form.view())
		return sb.String()
	case p.details != nil:
		p.details.Width = max(width, 20)
		p.details.Height = max(height-4, 3)
		sb.WriteString(p.details.View())
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
		sb.WriteString(st.Subtle.Render("No recipes yet. Press a to add one."))
	} else {
		fitTable(&p.table, height, 8)
		sb.WriteString(p.table.View())
	}
	sb.WriteString(p.status.flashLine(st))
	return sb.String()
}

// renderRecipe renders the recipe's markdown for the terminal. It falls back
// to the raw markdown when glamour fails.
func renderRecipe(r models.Recipe, style string, wrap int) string {
	md := markdown.RenderRecipe(r)
	out, err := markdown.Terminal(md, style, wrap)
	if err != nil {
		return md
	}
	return out
}

func minutesLabel(n int) string {
	return strconv.Itoa(n) + " min"
}

func upsertRecipe(items []models.Recipe, r models.Recipe) []models.Recipe {
	for i := range items {
		if items[i].ID == r.ID {
			out := append([]models.Recipe(nil), items...)
			out[i] = r
			return out
		}
	}
	return append(items, r)
}
