// Package tui is the interactive pantry dashboard: a sidebar with six pages,
// each fetching its collection from the pantry API on activation.
//
// It follows the Elm architecture bubbletea is built on. Pages load data
// through commands that call the service layer and hand results back as
// messages; nothing is shared between pages.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-ports/pantry/internal/logging"
	"github.com/go-ports/pantry/internal/service"
)

const sidebarWidth = 22

// PageID identifies a sidebar entry.
type PageID int

// Pages in sidebar order.
const (
	PageDashboard PageID = iota
	PageIngredients
	PageRecipes
	PageExpiration
	PageShopping
	PageMealPlan
)

var pageNames = map[string]PageID{
	"dashboard":   PageDashboard,
	"ingredients": PageIngredients,
	"recipes":     PageRecipes,
	"expiration":  PageExpiration,
	"shopping":    PageShopping,
	"meals":       PageMealPlan,
	"mealplan":    PageMealPlan,
}

// PageByName resolves a page name as accepted on the command line.
func PageByName(name string) (PageID, error) {
	id, ok := pageNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("tui: unknown page %q (dashboard, ingredients, recipes, expiration, shopping, meals)", name)
	}
	return id, nil
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithContext sets the context passed to every API call.
func WithContext(ctx context.Context) AppOption {
	return func(a *App) {
		if ctx != nil {
			a.env.ctx = ctx
		}
	}
}

// WithLogger sets the logger for navigation events.
func WithLogger(l *slog.Logger) AppOption {
	return func(a *App) {
		if l != nil {
			a.env.log = l
		}
	}
}

// WithStartPage opens the app on page instead of the dashboard.
func WithStartPage(id PageID) AppOption {
	return func(a *App) {
		if int(id) >= 0 && int(id) < len(a.pages) {
			a.active = int(id)
		}
	}
}

// WithGlamourStyle selects the glamour style used for recipe details, e.g.
// "dark", "light" or "notty". The default "auto" detects the terminal.
func WithGlamourStyle(style string) AppOption {
	return func(a *App) { a.env.glamourStyle = style }
}

// App is the root bubbletea model.
type App struct {
	env    *env
	pages  []page
	active int
	width  int
	height int
}

// NewApp builds the app over svc.
func NewApp(svc *service.Service, opts ...AppOption) *App {
	e := &env{
		ctx:          context.Background(),
		svc:          svc,
		log:          logging.Discard(),
		styles:       defaultStyles(),
		glamourStyle: "auto",
	}
	a := &App{
		env: e,
		pages: []page{
			newDashboardPage(e),
			newIngredientsPage(e),
			newRecipesPage(e),
			newExpirationPage(e),
			newShoppingPage(e),
			newMealPlanPage(e),
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run starts the full-screen program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, svc *service.Service, opts ...AppOption) error {
	app := NewApp(svc, append([]AppOption{WithContext(ctx)}, opts...)...)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// Active returns the page currently shown.
func (a *App) Active() PageID { return PageID(a.active) }

// Init loads the start page.
func (a *App) Init() tea.Cmd {
	return a.pages[a.active].load()
}

// Update routes keys to the active page after handling global navigation;
// every other message is broadcast so results land on the page that asked
// for them.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		cur := a.pages[a.active]
		if !cur.capturing() {
			if cmd, handled := a.navigate(msg.String()); handled {
				return a, cmd
			}
		}
		return a, cur.update(msg)
	}

	var cmds []tea.Cmd
	for _, p := range a.pages {
		cmds = append(cmds, p.update(msg))
	}
	return a, tea.Batch(cmds...)
}

func (a *App) navigate(key string) (tea.Cmd, bool) {
	switch key {
	case "q":
		return tea.Quit, true
	case "tab":
		return a.activate((a.active + 1) % len(a.pages)), true
	case "shift+tab":
		return a.activate((a.active + len(a.pages) - 1) % len(a.pages)), true
	case "r":
		return a.pages[a.active].load(), true
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(a.pages) {
		return a.activate(n - 1), true
	}
	return nil, false
}

func (a *App) activate(i int) tea.Cmd {
	a.active = i
	a.env.log.Debug("page activated", "page", a.pages[i].title())
	return a.pages[i].load()
}

// View renders the sidebar next to the active page.
func (a *App) View() string {
	st := a.env.styles
	contentWidth := max(a.width-sidebarWidth-6, 0)
	contentHeight := max(a.height-2, 0)

	cur := a.pages[a.active]
	content := cur.view(contentWidth, contentHeight) + "\n" + st.Help.Render(cur.help()+" · tab/1-6 switch · q quit")
	return lipgloss.JoinHorizontal(lipgloss.Top,
		a.sidebar(),
		st.Content.Render(content),
	)
}

func (a *App) sidebar() string {
	st := a.env.styles
	var sb strings.Builder
	sb.WriteString(st.SidebarTitle.Render("Pantry"))
	sb.WriteString("\n")
	for i, p := range a.pages {
		label := fmt.Sprintf("%d %s", i+1, p.title())
		if i == a.active {
			sb.WriteString(st.NavActive.Width(sidebarWidth - 2).Render(label))
		} else {
			sb.WriteString(st.NavItem.Render(label))
		}
		sb.WriteString("\n")
	}
	sidebar := st.Sidebar
	if a.height > 0 {
		sidebar = sidebar.Height(a.height - 2)
	}
	return sidebar.Render(strings.TrimRight(sb.String(), "\n"))
}
