package models

import "time"

type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

type Consistency string

const (
	ConsistencyVeryHigh Consistency = "very high"
	ConsistencyHigh     Consistency = "high"
	ConsistencyModerate Consistency = "moderate"
	ConsistencyLow      Consistency = "low"
	ConsistencyNone     Consistency = "none"
)

// Regression is an ordinary least-squares fit of count against day index
type Regression struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

type WeekdayAverage struct {
	DayOfWeek time.Weekday `json:"day_of_week"`
	DayName   string       `json:"day_name"`
	Average   float64      `json:"average"`
}

type TrendSummary struct {
	TotalCompleted     int              `json:"total_completed"`
	Average            float64          `json:"average"`
	Trend              float64          `json:"trend"`
	TrendDirection     TrendDirection   `json:"trend_direction"`
	StandardDeviation  float64          `json:"standard_deviation"`
	Consistency        Consistency      `json:"consistency"`
	WeeklyPattern      []WeekdayAverage `json:"weekly_pattern"`
	MostProductiveDays []WeekdayAverage `json:"most_productive_days"`
}

// TrendReport pairs the raw day series with its derived summary
type TrendReport struct {
	TrendData []TrendPoint `json:"trend_data"`
	Summary   TrendSummary `json:"summary"`
}

type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
	SlotNight     TimeSlot = "night"
)

type TimeDistribution struct {
	Morning       float64  `json:"morning"`
	Afternoon     float64  `json:"afternoon"`
	Evening       float64  `json:"evening"`
	Night         float64  `json:"night"`
	PreferredTime TimeSlot `json:"preferred_time"`
}

type CategoryPerformance struct {
	Total              int               `json:"total"`
	Completed          int               `json:"completed"`
	TotalStreak        int               `json:"total_streak"`
	TotalCompletions   int               `json:"total_completions"`
	CompletionRate     float64           `json:"completion_rate"`
	AverageStreak      float64           `json:"average_streak"`
	AverageCompletions float64           `json:"average_completions"`
	TimeDistribution   *TimeDistribution `json:"time_distribution,omitempty"`
	Strength           int               `json:"strength"`
}

type ProductivityFactors struct {
	CompletionRate   float64 `json:"completion_rate"`
	StreakBonus      float64 `json:"streak_bonus"`
	ConsistencyBonus float64 `json:"consistency_bonus"`
	VarietyBonus     float64 `json:"variety_bonus"`
}

type ProductivityBreakdown struct {
	TotalHabits     int `json:"total_habits"`
	CompletedHabits int `json:"completed_habits"`
}

type ProductivityIndexResult struct {
	Index     float64               `json:"index"`
	Factors   ProductivityFactors   `json:"factors"`
	Breakdown ProductivityBreakdown `json:"breakdown"`
}

type StreakEntry struct {
	HabitID  string   `json:"habit_id"`
	Title    string   `json:"title"`
	Category Category `json:"category"`
	Streak   int      `json:"streak"`
}

type StreakPatterns struct {
	Distribution           map[int][]string   `json:"distribution"`
	CategoryStreaks        map[Category][]int `json:"category_streaks"`
	TotalHabitsWithStreaks int                `json:"total_habits_with_streaks"`
	MaxStreak              int                `json:"max_streak"`
	AverageStreak          float64            `json:"average_streak"`
	TopStreaks             []StreakEntry      `json:"top_streaks"`
}

// UserSummary is the at-a-glance count of today's habit states
type UserSummary struct {
	TotalHabits        int `json:"total_habits"`
	CompletedToday     int `json:"completed_today"`
	PendingToday       int `json:"pending_today"`
	MissedToday        int `json:"missed_today"`
	TotalStreak        int `json:"total_streak"`
	BestStreak         int `json:"best_streak"`
	TotalCompletions   int `json:"total_completions"`
	ProgressPercentage int `json:"progress_percentage"`
}

type LevelProgress struct {
	CurrentLevel int `json:"current_level"`
	Progress     int `json:"progress"`
	Total        int `json:"total"`
	Percentage   int `json:"percentage"`
}

type LevelRewards struct {
	Title   string `json:"title"`
	Points  int    `json:"points"`
	Special string `json:"special,omitempty"`
	Message string `json:"message"`
}

type Milestone struct {
	Points    int `json:"points"`
	Remaining int `json:"remaining"`
}

type GamificationStats struct {
	CurrentLevel        int           `json:"current_level"`
	LevelTitle          string        `json:"level_title"`
	TotalPoints         int           `json:"total_points"`
	LevelProgress       LevelProgress `json:"level_progress"`
	Achievements        int           `json:"achievements"`
	Badges              int           `json:"badges"`
	CompletedChallenges int           `json:"completed_challenges"`
	Rank                string        `json:"rank"`
	NextMilestone       *Milestone    `json:"next_milestone,omitempty"`
}

type InsightType string

const (
	InsightSuccess InsightType = "success"
	InsightWarning InsightType = "warning"
	InsightInfo    InsightType = "info"
)

type Insight struct {
	Key      string      `json:"key"`
	Type     InsightType `json:"type"`
	Title    string      `json:"title"`
	Message  string      `json:"message"`
	Priority Priority    `json:"priority"`
}

type RecommendationType string

const (
	RecommendationAction   RecommendationType = "action"
	RecommendationStrategy RecommendationType = "strategy"
)

type Recommendation struct {
	Type        RecommendationType `json:"type"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Priority    Priority           `json:"priority"`
}

type ReportSummary struct {
	TotalHabits       int     `json:"total_habits"`
	ActiveHabits      int     `json:"active_habits"`
	CompletionRate    float64 `json:"completion_rate"`
	ProductivityIndex float64 `json:"productivity_index"`
	BestStreak        int     `json:"best_streak"`
}

// Report is the complete analytics export for one window
type Report struct {
	Period          int                              `json:"period"`
	GeneratedAt     time.Time                        `json:"generated_at"`
	Summary         ReportSummary                    `json:"summary"`
	Trends          TrendReport                      `json:"trends"`
	Categories      map[Category]CategoryPerformance `json:"categories"`
	Streaks         StreakPatterns                   `json:"streaks"`
	Productivity    ProductivityIndexResult          `json:"productivity"`
	Insights        []Insight                        `json:"insights"`
	Recommendations []Recommendation                 `json:"recommendations"`
}
