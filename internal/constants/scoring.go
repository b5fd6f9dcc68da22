package constants

const (
	// Points
	PointsPerHabit      = 10
	StreakBonusPerDay   = 5
	StreakBonusMaxDays  = 10
	PerfectDayBonus     = 20
	WeeklyGoalBonus     = 50
	MonthlyGoalBonus    = 100
	LevelPointsDivisor  = 100
	LevelRewardPerLevel = 50
	SpecialRewardEvery  = 5

	// Trend classification
	TrendSlopeThreshold = 0.1

	// Coefficient of variation cut-offs for consistency labels
	ConsistencyVeryHighCV = 0.3
	ConsistencyHighCV     = 0.5
	ConsistencyModerateCV = 0.7

	// Category strength weights; must sum to 1.0
	StrengthCompletionWeight  = 0.4
	StrengthStreakWeight      = 0.3
	StrengthConsistencyWeight = 0.3
	StrengthStreakCap         = 10.0
	StrengthConsistentRate    = 80.0
	WeakCategoryStrength      = 50

	// Productivity index
	ProductivityStreakBonusFactor = 2
	ProductivityStreakBonusCap    = 20
	ProductivityMax               = 100.0
	ConsistencyBonusVeryHigh      = 15
	ConsistencyBonusHigh          = 10
	ConsistencyBonusModerate      = 5
	VarietyBonusWide              = 10
	VarietyBonusSome              = 5
	VarietyWideCategories         = 5
	VarietySomeCategories         = 3
	LowProductivityIndex          = 50
	HighProductivityIndex         = 80

	// Insights
	ImpressiveStreakDays = 7
	MaxWeakCategories    = 2
	TopStreaksLimit      = 5
	TopProductiveDays    = 3

	// Default analysis window in days
	DefaultWindowDays = 30

	// Badge time-of-day boundaries (hour of day)
	EarlyBirdHour = 7
	NightOwlHour  = 22
)

func init() {
	if StrengthCompletionWeight+StrengthStreakWeight+StrengthConsistencyWeight != 1.0 {
		panic("category strength weights must sum to 1.0")
	}
}
