package gamification

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/habitual/internal/models"
)

func TestCalculateHabitPoints(t *testing.T) {
	tests := []struct {
		name     string
		category models.Category
		streak   int
		want     int
	}{
		{"health with streak 5", models.CategoryHealth, 5, 53},
		{"personal first completion", models.CategoryPersonal, 0, 10},
		{"streak of one earns no bonus", models.CategoryPersonal, 1, 10},
		{"bonus capped at ten days", models.CategoryWork, 20, 72},
		{"learning streak 2", models.CategoryLearning, 2, 22},
		{"unknown category uses personal", models.Category("gardening"), 2, 20},
		{"fitness streak 3", models.CategoryFitness, 3, 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateHabitPoints(tt.category, tt.streak); got != tt.want {
				t.Errorf("CalculateHabitPoints(%s, %d) = %d, want %d", tt.category, tt.streak, got, tt.want)
			}
		})
	}
}

func TestPeriodPoints(t *testing.T) {
	if got := PerfectDayPoints(3, 3); got != 20 {
		t.Errorf("PerfectDayPoints(3, 3) = %d, want 20", got)
	}
	if got := PerfectDayPoints(0, 0); got != 0 {
		t.Errorf("PerfectDayPoints(0, 0) = %d, want 0", got)
	}
	if got := WeeklyPoints(PeriodStats{CompletedHabits: 7, TotalHabits: 7, MaintainedStreaks: 2}); got != 130 {
		t.Errorf("WeeklyPoints = %d, want 130", got)
	}
	if got := MonthlyPoints(PeriodStats{CompletedHabits: 5, TotalHabits: 10}); got != 50 {
		t.Errorf("MonthlyPoints = %d, want 50", got)
	}
}

func TestCalculateLevel(t *testing.T) {
	tests := []struct {
		points int
		want   int
	}{
		{-50, 1},
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 2},
		{399, 2},
		{400, 3},
		{10000, 11},
	}
	for _, tt := range tests {
		if got := CalculateLevel(tt.points); got != tt.want {
			t.Errorf("CalculateLevel(%d) = %d, want %d", tt.points, got, tt.want)
		}
	}
}

func TestLevelProgressScenario(t *testing.T) {
	want := models.LevelProgress{CurrentLevel: 2, Progress: 150, Total: 300, Percentage: 50}
	if diff := cmp.Diff(want, CalculateLevelProgress(250)); diff != "" {
		t.Errorf("CalculateLevelProgress(250) mismatch (-want +got):\n%s", diff)
	}
}

func TestLevelProperties(t *testing.T) {
	prev := CalculateLevel(0)
	for p := 0; p <= 200000; p += 7 {
		level := CalculateLevel(p)
		if level < prev {
			t.Fatalf("level decreased at %d: %d < %d", p, level, prev)
		}
		prev = level
		if PointsForLevel(level) > p || p >= PointsForLevel(level+1) {
			t.Fatalf("round-trip failed at %d: level %d spans [%d, %d)", p, level, PointsForLevel(level), PointsForLevel(level+1))
		}
	}
}

func TestLevelTitlesAndRewards(t *testing.T) {
	if got := LevelTitle(11); got != "Level 11" {
		t.Errorf("LevelTitle(11) = %q", got)
	}
	r := LevelRewards(5)
	if r.Points != 250 || r.Special == "" {
		t.Errorf("LevelRewards(5) = %+v", r)
	}
	if r := LevelRewards(4); r.Special != "" || r.Points != 200 {
		t.Errorf("LevelRewards(4) = %+v", r)
	}
	if r := LevelRewards(12); r.Message != "Congratulations on your new level!" {
		t.Errorf("LevelRewards(12).Message = %q", r.Message)
	}
}

func ids[T any](items []T, id func(T) string) []string {
	var out []string
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

func achievementID(a models.Achievement) string { return a.ID }
func badgeID(b models.Badge) string { return b.ID }
func challengeID(c models.Challenge) string { return c.ID }

func TestAchievements(t *testing.T) {
	stats := models.ProgressStats{
		BestStreak:           30,
		TotalHabitsCompleted: 100,
		CategoriesCompleted:  models.Categories(),
	}

	all := ids(CheckAchievements(stats), achievementID)
	if diff := cmp.Diff([]string{"streak_7", "streak_30", "completions_100", "categories_5"}, all); diff != "" {
		t.Errorf("CheckAchievements mismatch (-want +got):\n%s", diff)
	}

	fresh := ids(NewlyUnlocked(stats, []string{"streak_7"}), achievementID)
	if diff := cmp.Diff([]string{"streak_30", "completions_100", "categories_5"}, fresh); diff != "" {
		t.Errorf("NewlyUnlocked mismatch (-want +got):\n%s", diff)
	}

	if got := CheckAchievements(models.ProgressStats{}); len(got) != 0 {
		t.Errorf("empty stats unlocked %v", got)
	}
}

func TestBadges(t *testing.T) {
	stats := models.ProgressStats{BestStreak: 7, LateCompletions: 1, WeekendPerfectDays: 1, PerfectDays: 1}
	got := ids(NewlyEarnedBadges(stats, []string{"streak_3"}), badgeID)
	want := []string{"streak_7", "perfect_1", "night_owl", "weekend_warrior"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewlyEarnedBadges mismatch (-want +got):\n%s", diff)
	}
	if len(Badges()) != 13 {
		t.Errorf("badge catalog has %d entries, want 13", len(Badges()))
	}
}

func TestWeeklyChallenges(t *testing.T) {
	challenges := GenerateWeeklyChallenges(models.ProgressStats{BestStreak: 5}, 4, "2026-04-06")
	var targets []int
	for _, c := range challenges {
		targets = append(targets, c.Target)
		if c.WeekOf != "2026-04-06" {
			t.Errorf("challenge %s week = %q", c.ID, c.WeekOf)
		}
	}
	if diff := cmp.Diff([]int{7, 4, 3}, targets); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}

	updated, done := UpdateChallenges(challenges, WeekTally{BestStreak: 7, Completions: 2, Categories: 3})
	if diff := cmp.Diff([]string{"weekly_streak", "weekly_categories"}, ids(done, challengeID)); diff != "" {
		t.Errorf("completed mismatch (-want +got):\n%s", diff)
	}
	if challenges[0].Completed {
		t.Error("UpdateChallenges mutated its input")
	}

	_, again := UpdateChallenges(updated, WeekTally{BestStreak: 8, Completions: 2, Categories: 3})
	if len(again) != 0 {
		t.Errorf("challenges reported twice: %v", again)
	}

	low := GenerateWeeklyChallenges(models.ProgressStats{}, 0, "")
	if low[0].Target != 3 || low[1].Target != 0 {
		t.Errorf("minimum targets = %d/%d, want 3/0", low[0].Target, low[1].Target)
	}
	if _, done := UpdateChallenges(low, WeekTally{}); len(done) != 0 {
		t.Errorf("zero-target challenge completed: %v", done)
	}
	if one := GenerateWeeklyChallenges(models.ProgressStats{}, 1, ""); one[1].Target != 1 {
		t.Errorf("completions target for one habit = %d, want 1", one[1].Target)
	}
}

func TestRankAndMilestones(t *testing.T) {
	ranks := map[int]string{
		0:     "🌱 Novice",
		500:   "🌱 Intermediate",
		1999:  "🎯 Expert",
		10000: "👑 Emperor",
	}
	for points, want := range ranks {
		if got := CalculateRank(points); got != want {
			t.Errorf("CalculateRank(%d) = %q, want %q", points, got, want)
		}
	}

	if m := NextMilestone(100); m == nil || m.Points != 500 || m.Remaining != 400 {
		t.Errorf("NextMilestone(100) = %+v", m)
	}
	if m := NextMilestone(10000); m != nil {
		t.Errorf("NextMilestone(10000) = %+v, want nil", m)
	}
}

func TestCalculateGamificationStats(t *testing.T) {
	progress := models.DefaultProgress(time.Time{})
	progress.TotalPoints = 250
	progress.Level = 1 // stale cache
	progress.Achievements = []string{"streak_7"}
	progress.Challenges = []models.Challenge{{ID: "a", Completed: true}, {ID: "b"}}

	stats := CalculateGamificationStats(progress)
	if stats.CurrentLevel != 2 || stats.LevelTitle != "🌿 Apprentice" {
		t.Errorf("level = %d %q", stats.CurrentLevel, stats.LevelTitle)
	}
	if stats.Achievements != 1 || stats.CompletedChallenges != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.NextMilestone == nil || stats.NextMilestone.Remaining != 250 {
		t.Errorf("next milestone = %+v", stats.NextMilestone)
	}
}

func TestRecordCompletion(t *testing.T) {
	at := time.Date(2026, 4, 10, 6, 30, 0, 0, time.UTC)
	start := models.DefaultProgress(at.Add(-time.Hour))

	first := RecordCompletion(start, CompletionEvent{
		HabitID:        "h1",
		Category:       models.CategoryHealth,
		Streak:         1,
		CompletedAt:    at,
		CompletedToday: 1,
		ScheduledToday: 1,
		ActiveHabits:   1,
	}, time.UTC)

	if first.HabitPoints != 15 {
		t.Errorf("HabitPoints = %d, want 15", first.HabitPoints)
	}
	// perfect day 20 + weekly_completions challenge 80
	if first.BonusPoints != 100 || first.PointsAwarded != 115 {
		t.Errorf("bonus = %d awarded = %d, want 100/115", first.BonusPoints, first.PointsAwarded)
	}
	if !first.PerfectDay || first.Progress.Stats.PerfectDays != 1 {
		t.Errorf("expected a perfect day, stats = %+v", first.Progress.Stats)
	}
	if !first.LeveledUp || first.Progress.Level != 2 || first.Rewards == nil || first.Rewards.Points != 100 {
		t.Errorf("level up = %v level = %d rewards = %+v", first.LeveledUp, first.Progress.Level, first.Rewards)
	}
	if diff := cmp.Diff([]string{"perfect_1", "early_bird"}, first.Progress.Badges); diff != "" {
		t.Errorf("badges mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"weekly_completions"}, ids(first.Challenges, challengeID)); diff != "" {
		t.Errorf("challenges mismatch (-want +got):\n%s", diff)
	}
	if first.Progress.Stats.WeekOf != "2026-04-06" {
		t.Errorf("WeekOf = %q", first.Progress.Stats.WeekOf)
	}

	if start.TotalPoints != 0 || len(start.Badges) != 0 || len(start.Challenges) != 0 {
		t.Errorf("input progress was mutated: %+v", start)
	}

	second := RecordCompletion(first.Progress, CompletionEvent{
		HabitID:        "h2",
		Category:       models.CategoryWork,
		Streak:         1,
		CompletedAt:    at.Add(time.Hour),
		CompletedToday: 2,
		ScheduledToday: 2,
		ActiveHabits:   2,
	}, time.UTC)

	if second.PerfectDay || second.Progress.Stats.PerfectDays != 1 {
		t.Errorf("perfect day counted twice: %+v", second.Progress.Stats)
	}
	if second.PointsAwarded != 12 || second.Progress.TotalPoints != 127 {
		t.Errorf("awarded = %d total = %d, want 12/127", second.PointsAwarded, second.Progress.TotalPoints)
	}
	if len(second.Badges) != 0 || len(second.Challenges) != 0 || second.LeveledUp {
		t.Errorf("unexpected effects: %+v", second)
	}
	if got := second.Progress.Stats.DistinctCategories(); got != 2 {
		t.Errorf("distinct categories = %d, want 2", got)
	}
}

func TestRecordCompletionNewWeekResetsChallenges(t *testing.T) {
	progress := models.DefaultProgress(time.Time{})
	progress.Stats.WeekOf = "2026-03-30"
	progress.Stats.WeekCompletions = 9
	progress.Challenges = []models.Challenge{{ID: "weekly_streak", Type: models.ChallengeStreak, Target: 3, Completed: true, WeekOf: "2026-03-30"}}

	out := RecordCompletion(progress, CompletionEvent{
		Category:       models.CategoryPersonal,
		Streak:         1,
		CompletedAt:    time.Date(2026, 4, 8, 12, 0, 0, 0, time.UTC),
		ScheduledToday: 3,
		CompletedToday: 1,
		ActiveHabits:   3,
	}, time.UTC)

	if out.Progress.Stats.WeekOf != "2026-04-06" || out.Progress.Stats.WeekCompletions != 1 {
		t.Errorf("week tallies = %q/%d", out.Progress.Stats.WeekOf, out.Progress.Stats.WeekCompletions)
	}
	if len(out.Progress.Challenges) != 3 {
		t.Fatalf("expected fresh challenges, got %+v", out.Progress.Challenges)
	}
	for _, c := range out.Progress.Challenges {
		if c.WeekOf != "2026-04-06" {
			t.Errorf("challenge %s week = %q", c.ID, c.WeekOf)
		}
	}
}
