package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/go-ports/pantry/internal/models"
	"github.com/go-ports/pantry/internal/service"
)

type (
	weekLoadedMsg struct {
		week *service.Week
		err  error
	}
	// weekChangedMsg carries one saved or removed entry. It is merged into
	// the page's current week so overlapping mutations do not drop each other.
	weekChangedMsg struct {
		saved   models.MealPlan
		removed models.ID
		done    string
		err     error
	}
)

const mealCellWidth = 14

type mealPlanPage struct {
	env    *env
	status pageStatus
	week   *service.Week
	day    int // column cursor into models.Days
	meal   int // row cursor into models.MealTypes
	form   formHost
	draft  *mealDraft
}

func newMealPlanPage(e *env) *mealPlanPage {
	return &mealPlanPage{env: e, week: &service.Week{}}
}

func (p *mealPlanPage) title() string   { return "Meal Planning" }
func (p *mealPlanPage) capturing() bool { return p.form.active() }

func (p *mealPlanPage) help() string {
	return "←/→/↑/↓ move · a/enter plan meal · d remove · r reload"
}

func (p *mealPlanPage) load() tea.Cmd {
	p.status.loading()
	svc, ctx := p.env.svc, p.env.ctx
	return func() tea.Msg {
		week, err := svc.Week(ctx)
		return weekLoadedMsg{week: week, err: err}
	}
}

func (p *mealPlanPage) slot() models.Slot {
	return models.Slot{Day: models.Days[p.day], MealType: models.MealTypes[p.meal]}
}

func (p *mealPlanPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case weekLoadedMsg:
		if p.status.loaded(msg.err) {
			p.week = msg.week
		}
		return nil
	case weekChangedMsg:
		if p.status.mutated(msg.err, msg.done) {
			if msg.removed != "" {
				p.week.Remove(msg.removed)
			} else {
				p.week.Upsert(msg.saved)
			}
		}
		return nil
	}

	if p.form.active() {
		return p.form.update(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok || p.status.state != stateReady {
		return nil
	}
	switch km.String() {
	case "left", "h":
		p.day = max(p.day-1, 0)
	case "right", "l":
		p.day = min(p.day+1, len(models.Days)-1)
	case "up", "k":
		p.meal = max(p.meal-1, 0)
	case "down", "j":
		p.meal = min(p.meal+1, len(models.MealTypes)-1)
	case "a", "enter":
		return p.openPicker()
	case "d":
		return p.clearSlot()
	}
	return nil
}

func (p *mealPlanPage) openPicker() tea.Cmd {
	if len(p.week.Recipes) == 0 {
		p.status.flash = "Error: add a recipe first"
		return nil
	}
	slot := p.slot()
	p.draft = &mealDraft{RecipeID: p.week.Recipes[0].ID.String()}
	if existing, ok := p.week.Find(slot); ok {
		p.draft.RecipeID = existing.RecipeID.String()
	}
	return p.form.open(p.draft.form(slot, p.week.Recipes), func() tea.Cmd {
		return p.setMeal(slot, models.ID(p.draft.RecipeID))
	})
}

func (p *mealPlanPage) setMeal(slot models.Slot, recipeID models.ID) tea.Cmd {
	week := p.week.Clone()
	svc, ctx := p.env.svc, p.env.ctx
	return func() tea.Msg {
		saved, err := svc.SetMeal(ctx, week, slot, recipeID)
		return weekChangedMsg{saved: saved, done: "Planned " + week.RecipeName(recipeID), err: err}
	}
}

func (p *mealPlanPage) clearSlot() tea.Cmd {
	slot := p.slot()
	plan, ok := p.week.Find(slot)
	if !ok {
		return nil
	}
	week := p.week.Clone()
	svc, ctx := p.env.svc, p.env.ctx
	return func() tea.Msg {
		err := svc.DeleteMeal(ctx, week, plan.ID)
		return weekChangedMsg{removed: plan.ID, done: "Removed " + slot.Day + " " + slot.MealType.Label(), err: err}
	}
}

func (p *mealPlanPage) view(_, _ int) string {
	st := p.env.styles
	var sb strings.Builder
	sb.WriteString(st.Header.Render("Meal Planning"))
	sb.WriteString("\n")
	if p.form.active() {
		sb.WriteString(p.form.view())
		return sb.String()
	}
	if body, ok := p.status.placeholder(st); ok {
		sb.WriteString(body)
		return sb.String()
	}

	sb.WriteString(p.grid())
	sb.WriteString("\n")
	slot := p.slot()
	selected := st.Subtle.Render("empty")
	if plan, ok := p.week.Find(slot); ok {
		selected = p.week.RecipeName(plan.RecipeID)
	}
	sb.WriteString(slot.Day + " " + slot.MealType.Label() + ": " + selected)
	sb.WriteString(p.status.flashLine(st))
	return sb.String()
}

// grid renders the 7x3 planner with meal types as rows and days as columns.
func (p *mealPlanPage) grid() string {
	cells := p.week.Grid()
	headers := append([]string{""}, models.Days...)
	rows := make([][]string, len(models.MealTypes))
	for mi, meal := range models.MealTypes {
		row := make([]string, 0, len(models.Days)+1)
		row = append(row, meal.Label())
		for _, cell := range cells[mi] {
			name := "+"
			if cell.Filled {
				name = truncate(cell.RecipeName, mealCellWidth)
			}
			row = append(row, name)
		}
		rows[mi] = row
	}

	base := lipgloss.NewStyle().Padding(0, 1)
	cursor := base.Foreground(lipgloss.Color("#ffffff")).Background(colorCursor)
	return ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == ltable.HeaderRow:
				return base.Bold(true)
			case col == 0:
				return base.Bold(true)
			case row == p.meal && col-1 == p.day:
				return cursor
			}
			return base
		}).
		String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
