package sqlite

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

func (s *Store) AddReminder(r models.Reminder) error {
	_, err := s.db.Exec(`INSERT INTO reminders (id, user_id, habit_id, kind, streak, due_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.HabitID, r.Kind, r.Streak, r.DueAt.Unix(), formatTime(r.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to add reminder: %w", err)
	}
	return nil
}

func (s *Store) GetReminders(userID string) ([]models.Reminder, error) {
	return s.queryReminders(`SELECT id, user_id, habit_id, kind, streak, due_at, created_at
		FROM reminders WHERE user_id = ? ORDER BY due_at, id`, userID)
}

// GetDueReminders returns reminders due at or before the given instant.
func (s *Store) GetDueReminders(userID string, before time.Time) ([]models.Reminder, error) {
	return s.queryReminders(`SELECT id, user_id, habit_id, kind, streak, due_at, created_at
		FROM reminders WHERE user_id = ? AND due_at <= ? ORDER BY due_at, id`, userID, before.Unix())
}

func (s *Store) queryReminders(query string, args ...any) ([]models.Reminder, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := []models.Reminder{}
	for rows.Next() {
		var r models.Reminder
		var dueAt int64
		var createdAt string
		if err := rows.Scan(&r.ID, &r.UserID, &r.HabitID, &r.Kind, &r.Streak, &dueAt, &createdAt); err != nil {
			return nil, err
		}
		r.DueAt = time.Unix(dueAt, 0).UTC()
		if r.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

func (s *Store) DeleteReminder(id string) error {
	res, err := s.db.Exec("DELETE FROM reminders WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "reminder", id)
}

func (s *Store) DeleteHabitReminders(habitID, kind string) error {
	_, err := s.db.Exec("DELETE FROM reminders WHERE habit_id = ? AND kind = ?", habitID, kind)
	return err
}
