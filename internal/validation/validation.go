package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

const maxTitleLength = 120

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvariantViolation ConflictType = "invariant_violation"
	ConflictDuplicateTitle     ConflictType = "duplicate_title"
	ConflictInvalidTime        ConflictType = "invalid_time"
	ConflictUnknownCategory    ConflictType = "unknown_category"
	ConflictFutureCompletion   ConflictType = "future_completion"
)

// Conflict represents a problem detected in the stored habits
type Conflict struct {
	Type        ConflictType
	Description string
	HabitIDs    []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// HabitInput is the user-supplied part of a new habit.
type HabitInput struct {
	UserID      string
	Title       string
	Description string
	Category    string
	Time        string // HH:MM, optional
	Weekdays    []time.Weekday
}

// ValidateHabitInput rejects input a habit cannot be created from. A missing
// category or time is not an error.
func ValidateHabitInput(in HabitInput) error {
	var errs []error
	title := strings.TrimSpace(in.Title)
	switch {
	case title == "":
		errs = append(errs, errors.New("title cannot be empty"))
	case len(title) > maxTitleLength:
		errs = append(errs, fmt.Errorf("title is longer than %d characters", maxTitleLength))
	}
	if strings.TrimSpace(in.UserID) == "" {
		errs = append(errs, errors.New("user id cannot be empty"))
	}
	if in.Time != "" && !utils.ValidateTimeFormat(in.Time) {
		errs = append(errs, fmt.Errorf("invalid time %q, expected HH:MM", in.Time))
	}
	for _, wd := range in.Weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			errs = append(errs, fmt.Errorf("invalid weekday %d", wd))
		}
	}
	return errors.Join(errs...)
}

// ParseWeekdays turns names like "mon,wed" or "Monday" into weekdays.
func ParseWeekdays(s string) ([]time.Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var days []time.Weekday
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		found := false
		for d := time.Sunday; d <= time.Saturday; d++ {
			full := strings.ToLower(d.String())
			if name == full || (len(name) >= 3 && strings.HasPrefix(full, name)) {
				days = append(days, d)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
	}
	return days, nil
}

// Validator checks stored habit snapshots
type Validator struct {
	Now func() time.Time
}

// New creates a new Validator
func New() *Validator {
	return &Validator{Now: time.Now}
}

// ValidateHabits reports snapshots that break the record rules along with
// softer problems like duplicate titles among active habits.
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	var result ValidationResult
	now := v.Now()
	titles := map[string][]string{}
	var order []string

	for _, h := range habits {
		if err := h.CheckInvariants(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvariantViolation,
				Description: err.Error(),
				HabitIDs:    []string{h.ID},
			})
		}
		if t := h.ScheduledTime(); t != "" && !utils.ValidateTimeFormat(t) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("habit %q has invalid time %q", h.Title, t),
				HabitIDs:    []string{h.ID},
			})
		}
		if h.Category != "" {
			if _, ok := models.CategoryCatalog()[h.Category]; !ok {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictUnknownCategory,
					Description: fmt.Sprintf("habit %q has unknown category %q", h.Title, h.Category),
					HabitIDs:    []string{h.ID},
				})
			}
		}
		if h.LastCompleted != nil && h.LastCompleted.After(now) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureCompletion,
				Description: fmt.Sprintf("habit %q was completed in the future (%s)", h.Title, h.LastCompleted.Format(time.RFC3339)),
				HabitIDs:    []string{h.ID},
			})
		}
		if h.IsActive {
			key := strings.ToLower(strings.TrimSpace(h.Title))
			if _, seen := titles[key]; !seen {
				order = append(order, key)
			}
			titles[key] = append(titles[key], h.ID)
		}
	}

	for _, key := range order {
		if ids := titles[key]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateTitle,
				Description: fmt.Sprintf("%d active habits share the title %q", len(ids), key),
				HabitIDs:    ids,
			})
		}
	}
	return result
}
