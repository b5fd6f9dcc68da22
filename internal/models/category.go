package models

import (
	"sort"
	"strings"
)

type Category string

const (
	CategoryHealth   Category = "health"
	CategoryFitness  Category = "fitness"
	CategoryWork     Category = "work"
	CategoryLearning Category = "learning"
	CategoryPersonal Category = "personal"

	DefaultCategory = CategoryPersonal
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Weight orders priorities for ranking (high first).
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// CategoryInfo is the static metadata attached to a category
type CategoryInfo struct {
	Icon         string   `json:"icon"`
	Color        string   `json:"color"`
	BasePriority Priority `json:"base_priority"`
	Multiplier   float64  `json:"multiplier"`
}

// LookupCategory returns a copy of the catalog entry, falling back to personal.
func LookupCategory(c Category) CategoryInfo {
	switch c {
	case CategoryHealth:
		return CategoryInfo{Icon: "🏃", Color: "#10B981", BasePriority: PriorityHigh, Multiplier: 1.5}
	case CategoryFitness:
		return CategoryInfo{Icon: "💪", Color: "#EF4444", BasePriority: PriorityHigh, Multiplier: 1.3}
	case CategoryWork:
		return CategoryInfo{Icon: "💼", Color: "#3B82F6", BasePriority: PriorityHigh, Multiplier: 1.2}
	case CategoryLearning:
		return CategoryInfo{Icon: "📚", Color: "#8B5CF6", BasePriority: PriorityMedium, Multiplier: 1.1}
	default:
		return CategoryInfo{Icon: "❤️", Color: "#F59E0B", BasePriority: PriorityMedium, Multiplier: 1.0}
	}
}

// Categories lists the known categories in display order.
func Categories() []Category {
	return []Category{CategoryHealth, CategoryFitness, CategoryWork, CategoryLearning, CategoryPersonal}
}

// CategoryCatalog builds a fresh catalog map on every call.
func CategoryCatalog() map[Category]CategoryInfo {
	catalog := make(map[Category]CategoryInfo, len(Categories()))
	for _, c := range Categories() {
		catalog[c] = LookupCategory(c)
	}
	return catalog
}

// NormalizeCategory maps free-form input onto the catalog, defaulting to personal.
func NormalizeCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return c
		}
	}
	return DefaultCategory
}

// SortedCategories returns the map keys in lexical order.
func SortedCategories[V any](m map[Category]V) []Category {
	keys := make([]Category, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
