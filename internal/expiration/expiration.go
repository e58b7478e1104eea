// Package expiration classifies ingredient expiration dates into status
// buckets by whole-day difference from today.
package expiration

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/go-ports/pantry/internal/models"
)

// Status is an expiration bucket.
type Status string

// Buckets, in severity order.
const (
	Expired  Status = "Expired"
	Critical Status = "Critical"
	Warning  Status = "Warning"
	Good     Status = "Good"
)

// Statuses lists every bucket in display order.
var Statuses = []Status{Expired, Critical, Warning, Good}

// Bucket thresholds in days.
const (
	CriticalDays = 3
	WarningDays  = 7
)

const msPerDay = 24 * 60 * 60 * 1000

// Color is the hex display colour for the status badge.
func (s Status) Color() string {
	switch s {
	case Expired:
		return "#dc2626"
	case Critical:
		return "#ea580c"
	case Warning:
		return "#ca8a04"
	default:
		return "#16a34a"
	}
}

// Title is the summary-card heading for the status.
func (s Status) Title() string {
	switch s {
	case Critical:
		return fmt.Sprintf("Critical (≤%dd)", CriticalDays)
	case Warning:
		return fmt.Sprintf("Warning (≤%dd)", WarningDays)
	default:
		return string(s)
	}
}

// Today returns now truncated to local midnight.
func Today(now time.Time) time.Time {
	now = now.In(time.Local)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

// DaysUntil is ceil((exp - today) / 1 day) in milliseconds, with today taken
// at local midnight of now.
func DaysUntil(exp, now time.Time) int {
	diff := exp.Sub(Today(now)).Milliseconds()
	return int(math.Ceil(float64(diff) / msPerDay))
}

// Classify buckets a day difference.
func Classify(diffDays int) Status {
	switch {
	case diffDays < 0:
		return Expired
	case diffDays <= CriticalDays:
		return Critical
	case diffDays <= WarningDays:
		return Warning
	default:
		return Good
	}
}

// DaysLeftLabel renders a day difference for display.
func DaysLeftLabel(diffDays int) string {
	switch {
	case diffDays < 0:
		return fmt.Sprintf("%d days ago", -diffDays)
	case diffDays == 0:
		return "Today"
	default:
		return fmt.Sprintf("%d days", diffDays)
	}
}

// Row is an ingredient annotated for the expiration table.
type Row struct {
	Ingredient models.Ingredient
	Expires    time.Time
	DaysLeft   int
	Status     Status
	// Valid is false when the expiration date could not be parsed; such rows
	// carry no status.
	Valid bool
}

// DaysLeftLabel renders the row's day difference, or "-" for invalid rows.
func (r Row) DaysLeftLabel() string {
	if !r.Valid {
		return "-"
	}
	return DaysLeftLabel(r.DaysLeft)
}

// Annotate classifies a single ingredient relative to now.
func Annotate(ing models.Ingredient, now time.Time) Row {
	exp, err := ing.Expires()
	if err != nil {
		return Row{Ingredient: ing}
	}
	diff := DaysUntil(exp, now)
	return Row{
		Ingredient: ing,
		Expires:    exp,
		DaysLeft:   diff,
		Status:     Classify(diff),
		Valid:      true,
	}
}

// Report annotates and sorts ingredients by expiration date ascending.
// Unparseable dates sort last; ties keep input order.
func Report(items []models.Ingredient, now time.Time) []Row {
	rows := make([]Row, len(items))
	for i, ing := range items {
		rows[i] = Annotate(ing, now)
	}
	SortByDate(rows)
	return rows
}

// SortByDate orders rows by expiration date ascending in place. Invalid rows
// go last and ties keep their relative order.
func SortByDate(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Expires.Before(b.Expires)
	})
}

// Summary counts rows per bucket.
type Summary map[Status]int

// Summarize counts the valid rows in each bucket. Every bucket is present.
func Summarize(rows []Row) Summary {
	s := Summary{Expired: 0, Critical: 0, Warning: 0, Good: 0}
	for _, r := range rows {
		if r.Valid {
			s[r.Status]++
		}
	}
	return s
}

// Within returns the ingredients expiring between today and days from now
// inclusive, in input order. It mirrors the notifications endpoint.
func Within(items []models.Ingredient, days int, now time.Time) []models.Ingredient {
	out := make([]models.Ingredient, 0, len(items))
	for _, ing := range items {
		r := Annotate(ing, now)
		if r.Valid && r.DaysLeft >= 0 && r.DaysLeft <= days {
			out = append(out, ing)
		}
	}
	return out
}
