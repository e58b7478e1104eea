package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-ports/pantry/internal/models"
	"github.com/go-ports/pantry/internal/service"
)

type (
	shoppingLoadedMsg struct {
		list service.ShoppingList
		err  error
	}
	shoppingAddedMsg struct {
		item models.ShoppingItem
		err  error
	}
	shoppingToggledMsg struct {
		item models.ShoppingItem
		err  error
	}
	shoppingDeletedMsg struct {
		id  models.ID
		err error
	}
	shoppingClearedMsg struct {
		remaining service.ShoppingList
		err       error
	}
)

// shoppingPage lists unchecked items under "To buy" and checked items under
// "In cart". The cursor walks both sections in display order.
type shoppingPage struct {
	env    *env
	status pageStatus
	list   service.ShoppingList
	cursor int
	form   formHost
	draft  *shoppingDraft
}

func newShoppingPage(e *env) *shoppingPage {
	return &shoppingPage{env: e}
}

func (p *shoppingPage) title() string   { return "Shopping List" }
func (p *shoppingPage) capturing() bool { return p.form.active() }

func (p *shoppingPage) help() string {
	return "a add · space toggle · d delete · c clear checked · r reload"
}

func (p *shoppingPage) load() tea.Cmd {
	p.status.loading()
	svc, ctx := p.env.svc, p.env.ctx
	return func() tea.Msg {
		list, err := svc.ShoppingList(ctx)
		return shoppingLoadedMsg{list: list, err: err}
	}
}

// follow moves the cursor onto id, which a toggle moves between sections.
func (p *shoppingPage) follow(id models.ID) {
	for i, it := range p.ordered() {
		if it.ID == id {
			p.cursor = i
			return
		}
	}
}

// ordered returns the items in display order.
func (p *shoppingPage) ordered() []models.ShoppingItem {
	return append(p.list.Unchecked(), p.list.Checked()...)
}

func (p *shoppingPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case shoppingLoadedMsg:
		if p.status.loaded(msg.err) {
			p.list = msg.list
			p.clampCursor()
		}
		return nil
	case shoppingAddedMsg:
		if p.status.mutated(msg.err, "Added "+msg.item.Name) {
			p.list = append(p.list, msg.item)
		}
		return nil
	case shoppingToggledMsg:
		if p.status.mutated(msg.err, "") {
			p.list = p.list.Replace(msg.item)
			p.follow(msg.item.ID)
		}
		return nil
	case shoppingDeletedMsg:
		if p.status.mutated(msg.err, "Deleted") {
			p.list = p.list.Without(msg.id)
			p.clampCursor()
		}
		return nil
	case shoppingClearedMsg:
		// Items deleted before a failure are gone either way.
		p.list = msg.remaining
		p.status.mutated(msg.err, "Cleared checked items")
		p.clampCursor()
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
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.list)-1 {
			p.cursor++
		}
	case "a":
		p.draft = newShoppingDraft()
		return p.form.open(p.draft.form(), p.submitAdd)
	case " ", "space", "enter":
		return p.toggleSelected()
	case "d":
		return p.deleteSelected()
	case "c":
		return p.clearChecked()
	}
	return nil
}

func (p *shoppingPage) clampCursor() {
	p.cursor = min(p.cursor, len(p.list)-1)
	p.cursor = max(p.cursor, 0)
}

func (p *shoppingPage) selected() (models.ShoppingItem, bool) {
	items := p.ordered()
	if p.cursor < 0 || p.cursor >= len(items) {
		return models.ShoppingItem{}, false
	}
	return items[p.cursor], true
}

func (p *shoppingPage) submitAdd() tea.Cmd {
	item, err := p.draft.item()
	if err != nil {
		p.status.mutated(err, "")
		return nil
	}
	svc, ctx := p.env.svc, p.env.ctx
	return func() tea.Msg {
		created, err := svc.AddShoppingItem(ctx, item)
		return shoppingAddedMsg{item: created, err: err}
	}
}

func (p *shoppingPage) toggleSelected() tea.Cmd {
	item, ok := p.selected()
	if !ok {
		return nil
	}
	svc, ctx := p.env.svc, p.env.ctx
	return func() tea.Msg {
		updated, err := svc.ToggleShoppingItem(ctx, item)
		return shoppingToggledMsg{item: updated, err: err}
	}
}

func (p *shoppingPage) deleteSelected() tea.Cmd {
	item, ok := p.selected()
	if !ok {
		return nil
	}
	svc, ctx := p.env.svc, p.env.ctx
	return func() tea.Msg {
		return shoppingDeletedMsg{id: item.ID, err: svc.DeleteShoppingItem(ctx, item.ID)}
	}
}

func (p *shoppingPage) clearChecked() tea.Cmd {
	if len(p.list.Checked()) == 0 {
		return nil
	}
	list := append(service.ShoppingList(nil), p.list...)
	svc, ctx := p.env.svc, p.env.ctx
	return func() tea.Msg {
		remaining, err := svc.ClearChecked(ctx, list)
		return shoppingClearedMsg{remaining: remaining, err: err}
	}
}

func (p *shoppingPage) view(_, _ int) string {
	st := p.env.styles
	var sb strings.Builder
	sb.WriteString(st.Header.Render("Shopping List"))
	sb.WriteString("\n")
	if p.form.active() {
		sb.WriteString(st.Section.Render("Add Item"))
		sb.WriteString("\n")
		sb.WriteString(p.form.view())
		return sb.String()
	}
	if body, ok := p.status.placeholder(st); ok {
		sb.WriteString(body)
		return sb.String()
	}

	toBuy, inCart := p.list.Unchecked(), p.list.Checked()
	idx := 0
	section := func(title string, items []models.ShoppingItem, empty string) {
		sb.WriteString(st.Section.Render(fmt.Sprintf("%s (%d)", title, len(items))))
		sb.WriteString("\n")
		if len(items) == 0 {
			sb.WriteString(st.Subtle.Render(empty))
			sb.WriteString("\n")
		}
		for _, it := range items {
			box, label := "[ ]", fmt.Sprintf("%s  %s %s", it.Name, models.FormatQuantity(it.Quantity), it.Unit)
			if it.Checked {
				box, label = "[x]", st.Checked.Render(label)
			}
			line := box + " " + label
			if idx == p.cursor {
				line = st.Cursor.Render("> ") + line
			} else {
				line = "  " + line
			}
			sb.WriteString(line)
			sb.WriteString("\n")
			idx++
		}
	}
	section("To buy", toBuy, "Nothing left to buy.")
	section("In cart", inCart, "No items in the cart.")
	sb.WriteString(strings.TrimRight(p.status.flashLine(st), "\n"))
	return strings.TrimRight(sb.String(), "\n")
}
