package tui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/go-ports/pantry/internal/service"
)

// page is one screen reachable from the sidebar.
type page interface {
	title() string
	// load starts fetching the page's data. Called on every activation.
	load() tea.Cmd
	update(msg tea.Msg) tea.Cmd
	view(width, height int) string
	// capturing reports whether the page owns all keys, e.g. while a form
	// or filter input is open.
	capturing() bool
	help() string
}

// env is shared by every page.
type env struct {
	ctx          context.Context
	svc          *service.Service
	log          *slog.Logger
	styles       styles
	glamourStyle string
}

type loadState int

const (
	stateLoading loadState = iota
	stateReady
	stateFailed
)

// pageStatus tracks the fetch state and the outcome of the last mutation.
type pageStatus struct {
	state loadState
	err   error
	flash string
}

func (p *pageStatus) loading() {
	p.state = stateLoading
	p.err = nil
}

// loaded records a fetch result and reports whether it succeeded.
func (p *pageStatus) loaded(err error) bool {
	if err != nil {
		p.state = stateFailed
		p.err = err
		return false
	}
	p.state = stateReady
	p.err = nil
	return true
}

// mutated records a mutation result in the flash line and reports whether
// it succeeded.
func (p *pageStatus) mutated(err error, ok string) bool {
	if err != nil {
		p.flash = "Error: " + err.Error()
		return false
	}
	p.flash = ok
	return true
}

// placeholder returns the loading or error body, or false when the page is
// ready to render its data.
func (p *pageStatus) placeholder(st styles) (string, bool) {
	switch p.state {
	case stateLoading:
		return st.Subtle.Render("Loading…"), true
	case stateFailed:
		return st.Error.Render("Error: " + p.err.Error()), true
	}
	return "", false
}

func (p *pageStatus) flashLine(st styles) string {
	if p.flash == "" {
		return ""
	}
	if strings.HasPrefix(p.flash, "Error: ") {
		return "\n" + st.Error.Render(p.flash)
	}
	return "\n" + st.Subtle.Render(p.flash)
}

// ---------------------------------------------------------------------------
// Forms
// ---------------------------------------------------------------------------

// formHost embeds an optional huh form. esc closes it; completion hands the
// page control back through onSubmit.
type formHost struct {
	form     *huh.Form
	onSubmit func() tea.Cmd
}

func (h *formHost) open(form *huh.Form, onSubmit func() tea.Cmd) tea.Cmd {
	form.SubmitCmd = nil
	form.CancelCmd = nil
	h.form = form.WithShowHelp(true)
	h.onSubmit = onSubmit
	return h.form.Init()
}

func (h *formHost) active() bool { return h.form != nil }

func (h *formHost) close() {
	h.form = nil
	h.onSubmit = nil
}

// update forwards msg to the open form.
func (h *formHost) update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		h.close()
		return nil
	}
	model, cmd := h.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		h.form = f
	}
	switch h.form.State {
	case huh.StateCompleted:
		submit := h.onSubmit
		h.close()
		return tea.Batch(cmd, submit())
	case huh.StateAborted:
		h.close()
	}
	return cmd
}

func (h *formHost) view() string { return h.form.View() }

// ---------------------------------------------------------------------------
// Tables
// ---------------------------------------------------------------------------

func newTable(cols []table.Column) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())
	return t
}

// fitTable sizes t to the content area, keeping room for headers and help.
func fitTable(t *table.Model, height, reserved int) {
	h := height - reserved
	if h < 3 {
		h = 3
	}
	t.SetHeight(h)
}

// selectedIndex returns the table cursor when it points at a row.
func selectedIndex(t table.Model, n int) (int, bool) {
	i := t.Cursor()
	return i, i >= 0 && i < n
}

// filterBox is the "/" query line of a list page. esc clears the query,
// enter keeps it.
type filterBox struct {
	input  textinput.Model
	active bool
}

func newFilterBox(placeholder string) filterBox {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = "/ "
	in.CharLimit = 60
	return filterBox{input: in}
}

func (f *filterBox) focus() tea.Cmd {
	f.active = true
	return f.input.Focus()
}

func (f *filterBox) update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			f.input.SetValue("")
			fallthrough
		case "enter":
			f.active = false
			f.input.Blur()
			return nil
		}
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (f *filterBox) value() string { return f.input.Value() }

// visible reports whether the line should be drawn.
func (f *filterBox) visible() bool { return f.active || f.input.Value() != "" }

func (f *filterBox) view() string { return f.input.View() }
