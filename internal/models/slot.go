package models

import (
	"fmt"
	"strings"
)

// Days lists the week in planner order.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// MealType is one of the three daily meals.
type MealType string

// Meal types.
const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
)

// MealTypes lists the meals in planner order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner}

// Label is the capitalised display form.
func (m MealType) Label() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// Slot is a (day, meal type) cell of the weekly planner.
type Slot struct {
	Day      string
	MealType MealType
}

// Key encodes the slot as the API's composite date field.
func (s Slot) Key() string { return SlotKey(s.Day, s.MealType) }

// SlotKey joins day and meal type with an underscore.
func SlotKey(day string, meal MealType) string {
	return day + "_" + string(meal)
}

// ParseSlot splits "Day_MealType" on underscores and reads the first two
// parts; anything after a second underscore is ignored. ok is false unless
// both parts are a known day and meal type; the parts are still returned for
// display.
func ParseSlot(key string) (slot Slot, ok bool) {
	parts := strings.Split(key, "_")
	slot.Day = parts[0]
	if len(parts) < 2 {
		return slot, false
	}
	slot.MealType = MealType(parts[1])
	return slot, DayIndex(slot.Day) >= 0 && MealIndex(slot.MealType) >= 0
}

// NewSlot builds a slot from user input. Surrounding space is ignored and the
// meal type is case-folded; the day must match one of Days exactly.
func NewSlot(day, meal string) (Slot, error) {
	key := SlotKey(strings.TrimSpace(day), MealType(strings.ToLower(strings.TrimSpace(meal))))
	slot, ok := ParseSlot(key)
	if !ok || slot.Key() != key {
		return Slot{}, fmt.Errorf("%w slot %q %q: day must be Monday..Sunday and meal one of breakfast, lunch, dinner", ErrInvalid, day, meal)
	}
	return slot, nil
}

// DayIndex returns the position of day in Days, or -1.
func DayIndex(day string) int {
	for i, d := range Days {
		if d == day {
			return i
		}
	}
	return -1
}

// MealIndex returns the position of meal in MealTypes, or -1.
func MealIndex(meal MealType) int {
	for i, m := range MealTypes {
		if m == meal {
			return i
		}
	}
	return -1
}
