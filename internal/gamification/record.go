package gamification

import (
	"slices"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// CompletionEvent is one applied habit completion together with the day's
// totals after it was applied.
type CompletionEvent struct {
	HabitID  string
	Category models.Category
	// PriorStreak is the streak before the completion; points are scored on it.
	PriorStreak int
	Streak      int
	CompletedAt time.Time
	// CompletedToday and ScheduledToday count active habits for the perfect
	// day check, including this one.
	CompletedToday int
	ScheduledToday int
	ActiveHabits   int
}

// Outcome is the updated progress record plus what changed.
type Outcome struct {
	Progress      models.GamificationProgress
	HabitPoints   int
	BonusPoints   int
	PointsAwarded int
	PerfectDay    bool
	Achievements  []models.Achievement
	Badges        []models.Badge
	Challenges    []models.Challenge
	PreviousLevel int
	LeveledUp     bool
	Rewards       *models.LevelRewards
}

// RecordCompletion applies a completion to a copy of progress. Day and week
// boundaries are taken in loc. The level is recomputed from the new point
// total on every call.
func RecordCompletion(progress models.GamificationProgress, event CompletionEvent, loc *time.Location) Outcome {
	p := progress.Clone()
	at := event.CompletedAt
	if loc == nil {
		loc = at.Location()
	}
	local := at.In(loc)
	category := models.NormalizeCategory(string(event.Category))

	out := Outcome{
		HabitPoints:   CalculateHabitPoints(category, event.PriorStreak),
		PreviousLevel: CalculateLevel(p.TotalPoints),
	}

	weekOf := utils.StartOfWeek(at, loc).Format(constants.DateFormat)
	if p.Stats.WeekOf != weekOf {
		p.Stats.WeekOf = weekOf
		p.Stats.WeekCompletions = 0
		p.Stats.WeekCategories = []models.Category{}
		p.Challenges = GenerateWeeklyChallenges(p.Stats, event.ActiveHabits, weekOf)
	}

	stats := &p.Stats
	stats.TotalHabitsCompleted++
	stats.BestStreak = max(stats.BestStreak, event.Streak)
	if !stats.HasCategory(category) {
		stats.CategoriesCompleted = append(stats.CategoriesCompleted, category)
	}
	switch hour := local.Hour(); {
	case hour < constants.EarlyBirdHour:
		stats.EarlyCompletions++
	case hour >= constants.NightOwlHour:
		stats.LateCompletions++
	}

	dayKey := local.Format(constants.DateFormat)
	if bonus := PerfectDayPoints(event.CompletedToday, event.ScheduledToday); bonus > 0 && stats.LastPerfectDay != dayKey {
		stats.PerfectDays++
		stats.LastPerfectDay = dayKey
		if utils.IsWeekend(local.Weekday()) {
			stats.WeekendPerfectDays++
		}
		out.PerfectDay = true
		out.BonusPoints += bonus
	}

	stats.WeekCompletions++
	if !slices.Contains(stats.WeekCategories, category) {
		stats.WeekCategories = append(stats.WeekCategories, category)
	}
	hadAll := AllCompleted(p.Challenges)
	p.Challenges, out.Challenges = UpdateChallenges(p.Challenges, WeekTally{
		BestStreak:  event.Streak,
		Completions: stats.WeekCompletions,
		Categories:  len(stats.WeekCategories),
	})
	for _, c := range out.Challenges {
		out.BonusPoints += c.Points
	}
	if !hadAll && AllCompleted(p.Challenges) {
		stats.WeeklyGoals++
		out.BonusPoints += constants.WeeklyGoalBonus
	}

	out.Achievements = NewlyUnlocked(p.Stats, p.Achievements)
	for _, a := range out.Achievements {
		p.Achievements = append(p.Achievements, a.ID)
		out.BonusPoints += a.Points
	}
	out.Badges = NewlyEarnedBadges(p.Stats, p.Badges)
	for _, b := range out.Badges {
		p.Badges = append(p.Badges, b.ID)
	}

	out.PointsAwarded = out.HabitPoints + out.BonusPoints
	p.TotalPoints += out.PointsAwarded
	p.Level = CalculateLevel(p.TotalPoints)
	p.LastUpdated = at
	if p.Level > out.PreviousLevel {
		out.LeveledUp = true
		rewards := LevelRewards(p.Level)
		out.Rewards = &rewards
	}

	out.Progress = p
	return out
}
