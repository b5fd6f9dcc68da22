// Package analytics computes completion trends, category performance and the
// productivity index from a snapshot of habits. Every function is a pure
// reduction over its input and returns freshly built results.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// CalculateCompletionTrend builds one TrendPoint per calendar day for the last
// days days ending today (inclusive) and analyzes the series. A habit counts
// toward the day its lastCompleted falls on in loc.
func CalculateCompletionTrend(habits []models.Habit, days int, now time.Time, loc *time.Location) models.TrendReport {
	return AnalyzeTrend(BuildTrendPoints(habits, days, now, loc))
}

// BuildTrendPoints returns the raw day series, oldest first.
func BuildTrendPoints(habits []models.Habit, days int, now time.Time, loc *time.Location) []models.TrendPoint {
	if days <= 0 {
		return []models.TrendPoint{}
	}
	if loc == nil {
		loc = now.Location()
	}

	perDay := make(map[string]int)
	for _, h := range models.ActiveHabits(habits) {
		if h.LastCompleted == nil {
			continue
		}
		perDay[utils.DateKey(*h.LastCompleted, loc)]++
	}

	today := utils.StartOfDay(now, loc)
	points := make([]models.TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := day.Format(constants.DateFormat)
		points = append(points, models.TrendPoint{
			Date:      key,
			Completed: perDay[key],
			DayOfWeek: day.Weekday(),
			IsWeekend: utils.IsWeekend(day.Weekday()),
		})
	}
	return points
}

// AnalyzeTrend summarizes a day series: mean, OLS slope, population standard
// deviation, consistency label and weekday pattern.
func AnalyzeTrend(points []models.TrendPoint) models.TrendReport {
	data := append([]models.TrendPoint{}, points...)

	total := 0
	for _, p := range data {
		total += p.Completed
	}

	var average, stddev float64
	if n := len(data); n > 0 {
		average = float64(total) / float64(n)
		var variance float64
		for _, p := range data {
			d := float64(p.Completed) - average
			variance += d * d
		}
		stddev = math.Sqrt(variance / float64(n))
	}

	reg := LinearRegression(data)

	return models.TrendReport{
		TrendData: data,
		Summary: models.TrendSummary{
			TotalCompleted:     total,
			Average:            average,
			Trend:              reg.Slope,
			TrendDirection:     ClassifyDirection(reg.Slope),
			StandardDeviation:  stddev,
			Consistency:        ClassifyConsistency(stddev, average),
			WeeklyPattern:      WeeklyPattern(data),
			MostProductiveDays: MostProductiveDays(data),
		},
	}
}

// LinearRegression fits completed counts against the day index 0..n-1 using
// the closed-form least-squares solution. Series too short to define a slope
// yield a flat line through the mean.
func LinearRegression(points []models.TrendPoint) models.Regression {
	n := float64(len(points))
	if n == 0 {
		return models.Regression{}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, p := range points {
		x := float64(i)
		y := float64(p.Completed)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return models.Regression{Intercept: sumY / n}
	}
	slope := (n*sumXY - sumX*sumY) / denom
	return models.Regression{
		Slope:     slope,
		Intercept: (sumY - slope*sumX) / n,
	}
}

// ClassifyDirection labels a slope as increasing, decreasing or stable.
func ClassifyDirection(slope float64) models.TrendDirection {
	switch {
	case slope > constants.TrendSlopeThreshold:
		return models.TrendIncreasing
	case slope < -constants.TrendSlopeThreshold:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

// ClassifyConsistency maps the coefficient of variation to a label.
// A zero average has no meaningful variation and reports ConsistencyNone.
func ClassifyConsistency(stddev, average float64) models.Consistency {
	if average == 0 {
		return models.ConsistencyNone
	}
	cv := stddev / average
	switch {
	case cv < constants.ConsistencyVeryHighCV:
		return models.ConsistencyVeryHigh
	case cv < constants.ConsistencyHighCV:
		return models.ConsistencyHigh
	case cv < constants.ConsistencyModerateCV:
		return models.ConsistencyModerate
	default:
		return models.ConsistencyLow
	}
}

// WeeklyPattern averages completions per weekday, Sunday first.
func WeeklyPattern(points []models.TrendPoint) []models.WeekdayAverage {
	var counts, totals [7]int
	for _, p := range points {
		counts[p.DayOfWeek]++
		totals[p.DayOfWeek] += p.Completed
	}

	pattern := make([]models.WeekdayAverage, 7)
	for i := range pattern {
		avg := 0.0
		if counts[i] > 0 {
			avg = float64(totals[i]) / float64(counts[i])
		}
		pattern[i] = models.WeekdayAverage{
			DayOfWeek: time.Weekday(i),
			DayName:   time.Weekday(i).String(),
			Average:   avg,
		}
	}
	return pattern
}

// MostProductiveDays returns the three weekdays with the highest mean,
// ties kept in weekday order.
func MostProductiveDays(points []models.TrendPoint) []models.WeekdayAverage {
	pattern := WeeklyPattern(points)
	sort.SliceStable(pattern, func(i, j int) bool {
		return pattern[i].Average > pattern[j].Average
	})

	top := pattern[:constants.TopProductiveDays]
	out := make([]models.WeekdayAverage, len(top))
	for i, d := range top {
		d.Average = utils.Round2(d.Average)
		out[i] = d
	}
	return out
}
