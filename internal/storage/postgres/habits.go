package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
)

const habitColumns = `id, user_id, title, description, category, time, weekdays, status,
	streak, total_completions, last_completed, previous_streak, previous_completed, scored_on,
	is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var category, status, weekdays string
	var timeStr sql.NullString
	var lastCompleted, previousCompleted sql.NullTime

	err := row.Scan(&h.ID, &h.UserID, &h.Title, &h.Description, &category, &timeStr, &weekdays, &status,
		&h.Streak, &h.TotalCompletions, &lastCompleted, &h.PreviousStreak, &previousCompleted, &h.ScoredOn,
		&h.IsActive, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Category = models.Category(category)
	h.Status = models.HabitStatus(status)
	if timeStr.Valid {
		h.Time = &timeStr.String
	}
	if lastCompleted.Valid {
		t := lastCompleted.Time
		h.LastCompleted = &t
	}
	if previousCompleted.Valid {
		t := previousCompleted.Time
		h.PreviousCompleted = &t
	}
	if h.Weekdays, err = storage.DecodeWeekdays(weekdays); err != nil {
		return models.Habit{}, fmt.Errorf("habit %s: %w", h.ID, err)
	}
	return h, nil
}

func habitArgs(h models.Habit) []any {
	var timeStr sql.NullString
	var lastCompleted, previousCompleted sql.NullTime
	if h.Time != nil {
		timeStr = sql.NullString{String: *h.Time, Valid: true}
	}
	if h.LastCompleted != nil {
		lastCompleted = sql.NullTime{Time: *h.LastCompleted, Valid: true}
	}
	if h.PreviousCompleted != nil {
		previousCompleted = sql.NullTime{Time: *h.PreviousCompleted, Valid: true}
	}
	return []any{h.ID, h.UserID, h.Title, h.Description, string(h.Category), timeStr,
		storage.EncodeWeekdays(h.Weekdays), string(h.Status), h.Streak, h.TotalCompletions,
		lastCompleted, h.PreviousStreak, previousCompleted, h.ScoredOn,
		h.IsActive, h.CreatedAt, h.UpdatedAt}
}

func (s *Store) AddHabit(habit models.Habit) error {
	_, err := s.db.Exec(`INSERT INTO habits (`+habitColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`, habitArgs(habit)...)
	if err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}
	return nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	h, err := scanHabit(s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
	}
	return h, err
}

func (s *Store) GetHabits(userID string, includeInactive bool) ([]models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = $1`
	if !includeInactive {
		query += " AND is_active"
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	res, err := s.db.Exec(`UPDATE habits SET user_id = $2, title = $3, description = $4, category = $5,
		time = $6, weekdays = $7, status = $8, streak = $9, total_completions = $10, last_completed = $11,
		previous_streak = $12, previous_completed = $13, scored_on = $14,
		is_active = $15, created_at = $16, updated_at = $17 WHERE id = $1`, habitArgs(habit)...)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return requireRow(res, "habit", habit.ID)
}

func (s *Store) DeleteHabit(id string) error {
	return s.setHabitActive(id, false)
}

func (s *Store) RestoreHabit(id string) error {
	return s.setHabitActive(id, true)
}

func (s *Store) setHabitActive(id string, active bool) error {
	res, err := s.db.Exec("UPDATE habits SET is_active = $1, updated_at = $2 WHERE id = $3", active, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res, "habit", id)
}
