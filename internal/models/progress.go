package models

import (
	"slices"
	"time"
)

// ProgressStats is the running tally the achievement and badge predicates read
type ProgressStats struct {
	TotalHabitsCompleted int        `json:"total_habits_completed"`
	BestStreak           int        `json:"best_streak"`
	PerfectDays          int        `json:"perfect_days"`
	CategoriesCompleted  []Category `json:"categories_completed"`
	LastPerfectDay       string     `json:"last_perfect_day,omitempty"` // YYYY-MM-DD format
	WeekendPerfectDays   int        `json:"weekend_perfect_days"`
	EarlyCompletions     int        `json:"early_completions"`
	LateCompletions      int        `json:"late_completions"`
	WeeklyGoals          int        `json:"weekly_goals"`
	MonthlyGoals         int        `json:"monthly_goals"`

	// Tallies for the current challenge week
	WeekOf          string     `json:"week_of,omitempty"`
	WeekCompletions int        `json:"week_completions"`
	WeekCategories  []Category `json:"week_categories"`
}

// DistinctCategories is the number of categories with at least one completion.
func (s ProgressStats) DistinctCategories() int {
	return len(s.CategoriesCompleted)
}

// HasCategory reports whether a completion in c was already counted.
func (s ProgressStats) HasCategory(c Category) bool {
	return slices.Contains(s.CategoriesCompleted, c)
}

// GamificationProgress is the per-user accumulator, persisted as a whole record
type GamificationProgress struct {
	TotalPoints  int           `json:"total_points"`
	Level        int           `json:"level"` // cache of the level curve over TotalPoints
	Achievements []string      `json:"achievements"`
	Badges       []string      `json:"badges"`
	Challenges   []Challenge   `json:"challenges"`
	Stats        ProgressStats `json:"stats"`
	LastUpdated  time.Time     `json:"last_updated"`
}

// DefaultProgress is the record handed out on first access.
func DefaultProgress(now time.Time) GamificationProgress {
	return GamificationProgress{
		Level:        1,
		Achievements: []string{},
		Badges:       []string{},
		Challenges:   []Challenge{},
		Stats: ProgressStats{
			CategoriesCompleted: []Category{},
			WeekCategories:      []Category{},
		},
		LastUpdated: now,
	}
}

// Clone deep-copies the slices so derived records never alias the input.
func (p GamificationProgress) Clone() GamificationProgress {
	out := p
	out.Achievements = append([]string{}, p.Achievements...)
	out.Badges = append([]string{}, p.Badges...)
	out.Challenges = append([]Challenge{}, p.Challenges...)
	out.Stats.CategoriesCompleted = append([]Category{}, p.Stats.CategoriesCompleted...)
	out.Stats.WeekCategories = append([]Category{}, p.Stats.WeekCategories...)
	return out
}

type AchievementType string

const (
	AchievementStreak      AchievementType = "streak"
	AchievementCompletions AchievementType = "completions"
	AchievementPerfectDays AchievementType = "perfect_days"
	AchievementCategories  AchievementType = "categories"
)

// Achievement is a static catalog entry unlocked by a stats predicate
type Achievement struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Points      int             `json:"points"`
	Type        AchievementType `json:"type"`
}

// Badge is a cosmetic catalog entry
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Requirement string `json:"requirement"`
}

type ChallengeType string

const (
	ChallengeStreak      ChallengeType = "streak"
	ChallengeCompletions ChallengeType = "completions"
	ChallengeCategories  ChallengeType = "categories"
)

// Challenge is a weekly goal whose progress the caller tracks
type Challenge struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Points      int           `json:"points"`
	Progress    int           `json:"progress"`
	Target      int           `json:"target"`
	Type        ChallengeType `json:"type"`
	Completed   bool          `json:"completed"`
	WeekOf      string        `json:"week_of,omitempty"` // YYYY-MM-DD of the week's first day
}
