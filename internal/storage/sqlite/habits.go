package sqlite

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
	var category, status, weekdays, createdAt, updatedAt string
	var timeStr, lastCompleted, previousCompleted sql.NullString
	var isActive int

	err := row.Scan(&h.ID, &h.UserID, &h.Title, &h.Description, &category, &timeStr, &weekdays, &status,
		&h.Streak, &h.TotalCompletions, &lastCompleted, &h.PreviousStreak, &previousCompleted, &h.ScoredOn,
		&isActive, &createdAt, &updatedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Category = models.Category(category)
	h.Status = models.HabitStatus(status)
	h.IsActive = isActive == 1
	if timeStr.Valid {
		h.Time = &timeStr.String
	}
	if h.Weekdays, err = storage.DecodeWeekdays(weekdays); err != nil {
		return models.Habit{}, fmt.Errorf("habit %s: %w", h.ID, err)
	}
	if lastCompleted.Valid {
		t, err := parseTime("last_completed", lastCompleted.String)
		if err != nil {
			return models.Habit{}, err
		}
		h.LastCompleted = &t
	}
	if previousCompleted.Valid {
		t, err := parseTime("previous_completed", previousCompleted.String)
		if err != nil {
			return models.Habit{}, err
		}
		h.PreviousCompleted = &t
	}
	if h.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.Habit{}, err
	}
	if h.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

func habitArgs(h models.Habit) []any {
	var timeStr, lastCompleted, previousCompleted sql.NullString
	if h.Time != nil {
		timeStr = sql.NullString{String: *h.Time, Valid: true}
	}
	if h.LastCompleted != nil {
		lastCompleted = sql.NullString{String: formatTime(*h.LastCompleted), Valid: true}
	}
	if h.PreviousCompleted != nil {
		previousCompleted = sql.NullString{String: formatTime(*h.PreviousCompleted), Valid: true}
	}
	isActive := 0
	if h.IsActive {
		isActive = 1
	}
	return []any{h.ID, h.UserID, h.Title, h.Description, string(h.Category), timeStr,
		storage.EncodeWeekdays(h.Weekdays), string(h.Status), h.Streak, h.TotalCompletions,
		lastCompleted, h.PreviousStreak, previousCompleted, h.ScoredOn,
		isActive, formatTime(h.CreatedAt), formatTime(h.UpdatedAt)}
}

func (s *Store) AddHabit(habit models.Habit) error {
	_, err := s.db.Exec(`INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, habitArgs(habit)...)
	if err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}
	return nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
	}
	return h, err
}

func (s *Store) GetHabits(userID string, includeInactive bool) ([]models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = ?`
	if !includeInactive {
		query += " AND is_active = 1"
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
	args := habitArgs(habit)
	res, err := s.db.Exec(`UPDATE habits SET user_id = ?, title = ?, description = ?, category = ?,
		time = ?, weekdays = ?, status = ?, streak = ?, total_completions = ?, last_completed = ?,
		previous_streak = ?, previous_completed = ?, scored_on = ?,
		is_active = ?, created_at = ?, updated_at = ? WHERE id = ?`, append(args[1:], args[0])...)
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
	v := 0
	if active {
		v = 1
	}
	res, err := s.db.Exec("UPDATE habits SET is_active = ?, updated_at = ? WHERE id = ?", v, formatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return requireRow(res, "habit", id)
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
