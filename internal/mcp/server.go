// Package mcp provides the stdio MCP server exposing pantry tools to agents.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/go-ports/pantry/internal/buildinfo"
	"github.com/go-ports/pantry/internal/expiration"
	"github.com/go-ports/pantry/internal/models"
	"github.com/go-ports/pantry/internal/search"
	"github.com/go-ports/pantry/internal/service"
)

const dashboardDescription = `Summarise the pantry: number of ingredients, recipes, items expiring soon, shopping list entries and meals planned this week. Call this first to get an overview.`

const expiringDescription = `List ingredients expiring within the given number of days (default 7), each classified as Expired, Critical (3 days or less), Warning (7 days or less) or Good.` //nolint:lll

const setMealDescription = `Assign a recipe to a slot of the weekly meal plan. An existing meal in the slot is replaced. Use pantry_recipes to look up recipe ids.` //nolint:lll

// NewServer creates and registers all pantry tools on a new MCP server.
// It is separate from Serve so tests can obtain a configured server without
// the stdio transport.
func NewServer(svc *service.Service) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("pantry", buildinfo.ResolvedVersion())
	registerTools(s, svc)
	return s
}

// Serve starts the stdio MCP server, blocking until stdin closes or ctx is
// cancelled.
func Serve(ctx context.Context, home string, opts ...service.Option) error {
	svc, err := service.New(home, opts...)
	if err != nil {
		return fmt.Errorf("mcp: init service: %w", err)
	}
	return mcpserver.NewStdioServer(NewServer(svc)).Listen(ctx, os.Stdin, os.Stdout)
}

func registerTools(s *mcpserver.MCPServer, svc *service.Service) {
	s.AddTool(mcp.NewTool("pantry_dashboard",
		mcp.WithDescription(dashboardDescription),
	), func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDashboard(ctx, svc)
	})

	s.AddTool(mcp.NewTool("pantry_ingredients",
		mcp.WithDescription("List pantry ingredients with quantity, unit and expiration date."),
		mcp.WithString("query", mcp.Description("Only return ingredients whose name matches.")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleIngredients(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("pantry_add_ingredient",
		mcp.WithDescription("Add an ingredient to the pantry."),
		mcp.WithString("name", mcp.Description("Ingredient name."), mcp.Required()),
		mcp.WithNumber("quantity", mcp.Description("Amount, greater than zero."), mcp.Required()),
		mcp.WithString("unit", mcp.Description("Unit (default g)."), mcp.Enum(unitValues()...)),
		mcp.WithString("expiration_date", mcp.Description("Expiration date, YYYY-MM-DD."), mcp.Required()),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAddIngredient(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("pantry_expiring",
		mcp.WithDescription(expiringDescription),
		mcp.WithNumber("days", mcp.Description("Window in days (default 7).")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleExpiring(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("pantry_shopping_list",
		mcp.WithDescription("Show the shopping list split into items to buy and items already in the cart."),
	), func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleShoppingList(ctx, svc)
	})

	s.AddTool(mcp.NewTool("pantry_add_shopping_item",
		mcp.WithDescription("Add an item to the shopping list."),
		mcp.WithString("name", mcp.Description("Item name."), mcp.Required()),
		mcp.WithNumber("quantity", mcp.Description("Amount (default 1).")),
		mcp.WithString("unit", mcp.Description("Unit (default pcs).")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAddShoppingItem(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("pantry_toggle_shopping_item",
		mcp.WithDescription("Move a shopping list item between to-buy and in-cart."),
		mcp.WithString("id", mcp.Description("Item id from pantry_shopping_list."), mcp.Required()),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleToggleShoppingItem(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("pantry_meal_plan",
		mcp.WithDescription("Show the weekly meal plan, Monday to Sunday, breakfast, lunch and dinner."),
	), func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleMealPlan(ctx, svc)
	})

	s.AddTool(mcp.NewTool("pantry_set_meal",
		mcp.WithDescription(setMealDescription),
		mcp.WithString("day", mcp.Description("Day of the week."), mcp.Required(), mcp.Enum(models.Days...)),
		mcp.WithString("meal", mcp.Description("Meal type."), mcp.Required(), mcp.Enum(mealValues()...)),
		mcp.WithString("recipe_id", mcp.Description("Recipe id."), mcp.Required()),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSetMeal(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("pantry_recipes",
		mcp.WithDescription("List recipes with ingredients, steps and times in minutes."),
		mcp.WithString("query", mcp.Description("Rank recipes by name, ingredient and description match.")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleRecipes(ctx, svc, req)
	})
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

func handleDashboard(ctx context.Context, svc *service.Service) (*mcp.CallToolResult, error) {
	counts, err := svc.Dashboard(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"counts":        counts,
		"expiring_days": svc.Config.Dashboard.ExpiringDays,
	})
}

func handleIngredients(ctx context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := svc.Ingredients(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	items = search.Ingredients(items, req.GetString("query", ""))

	now := svc.Now()
	out := make([]map[string]any, 0, len(items))
	for _, ing := range items {
		out = append(out, ingredientView(expiration.Annotate(ing, now)))
	}
	return jsonResult(map[string]any{"total": len(out), "ingredients": out})
}

func handleAddIngredient(ctx context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	created, err := svc.AddIngredient(ctx, models.Ingredient{
		Name:           req.GetString("name", ""),
		Quantity:       req.GetFloat("quantity", 0),
		Unit:           req.GetString("unit", ""),
		ExpirationDate: req.GetString("expiration_date", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"action": "created", "ingredient": created})
}

func handleExpiring(ctx context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := req.GetInt("days", expiration.WarningDays)
	if days < 0 {
		days = expiration.WarningDays
	}
	items, err := svc.Expiring(ctx, days)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rows := expiration.Report(items, svc.Now())
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, ingredientView(r))
	}
	return jsonResult(map[string]any{
		"days":    days,
		"total":   len(out),
		"summary": expiration.Summarize(rows),
		"items":   out,
	})
}

func handleShoppingList(ctx context.Context, svc *service.Service) (*mcp.CallToolResult, error) {
	list, err := svc.ShoppingList(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(shoppingView(list))
}

func handleAddShoppingItem(ctx context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	created, err := svc.AddShoppingItem(ctx, models.ShoppingItem{
		Name:     req.GetString("name", ""),
		Quantity: req.GetFloat("quantity", models.DefaultShoppingQty),
		Unit:     req.GetString("unit", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"action": "created", "item": created})
}

func handleToggleShoppingItem(ctx context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := models.ID(strings.TrimSpace(req.GetString("id", "")))
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	item, err := svc.ToggleShoppingItemByID(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"action": "toggled", "item": item})
}

func handleMealPlan(ctx context.Context, svc *service.Service) (*mcp.CallToolResult, error) {
	week, err := svc.Week(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(weekView(week))
}

func handleSetMeal(ctx context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slot, err := models.NewSlot(req.GetString("day", ""), req.GetString("meal", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	week, err := svc.Week(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	saved, err := svc.SetMeal(ctx, week, slot, models.ID(strings.TrimSpace(req.GetString("recipe_id", ""))))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"action": "planned",
		"slot":   saved.Date,
		"recipe": week.RecipeName(saved.RecipeID),
		"entry":  saved,
	})
}

func handleRecipes(ctx context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recipes, err := svc.Recipes(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if q := req.GetString("query", ""); strings.TrimSpace(q) != "" {
		hits := search.Rank(recipes, q, 0, search.RecipeFields...)
		recipes = make([]models.Recipe, len(hits))
		for i, h := range hits {
			recipes[i] = h.Item
		}
	}
	return jsonResult(map[string]any{"total": len(recipes), "recipes": recipes})
}

// ---------------------------------------------------------------------------
// Views
// ---------------------------------------------------------------------------

func ingredientView(r expiration.Row) map[string]any {
	v := map[string]any{
		"id":              r.Ingredient.ID,
		"name":            r.Ingredient.Name,
		"quantity":        r.Ingredient.Quantity,
		"unit":            r.Ingredient.Unit,
		"expiration_date": r.Ingredient.ExpirationDate,
		"days_left":       r.DaysLeftLabel(),
	}
	if r.Valid {
		v["status"] = r.Status
	}
	return v
}

func shoppingView(list service.ShoppingList) map[string]any {
	toBuy, inCart := list.Unchecked(), list.Checked()
	return map[string]any{
		"to_buy":    toBuy,
		"in_cart":   inCart,
		"unchecked": len(toBuy),
		"checked":   len(inCart),
	}
}

func weekView(week *service.Week) map[string]any {
	slots := make([]map[string]any, 0, len(week.Plans))
	for _, row := range week.Grid() {
		for _, cell := range row {
			if !cell.Filled {
				continue
			}
			slots = append(slots, map[string]any{
				"id":        cell.Plan.ID,
				"slot":      cell.Slot.Key(),
				"day":       cell.Slot.Day,
				"meal":      cell.Slot.MealType,
				"recipe_id": cell.Plan.RecipeID,
				"recipe":    cell.RecipeName,
			})
		}
	}
	return map[string]any{"planned": len(slots), "slots": slots}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func unitValues() []string {
	out := make([]string, len(models.Units))
	for i, u := range models.Units {
		out[i] = u.Value
	}
	return out
}

func mealValues() []string {
	out := make([]string, len(models.MealTypes))
	for i, m := range models.MealTypes {
		out[i] = string(m)
	}
	return out
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
