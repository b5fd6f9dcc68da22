package postgres

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

const reminderColumns = "id, user_id, habit_id, kind, streak, due_at, created_at"

func (s *Store) AddReminder(r models.Reminder) error {
	_, err := s.db.Exec(`INSERT INTO reminders (`+reminderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.ID, r.UserID, r.HabitID, r.Kind, r.Streak, r.DueAt, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add reminder: %w", err)
	}
	return nil
}

func (s *Store) GetReminders(userID string) ([]models.Reminder, error) {
	return s.queryReminders(`SELECT `+reminderColumns+` FROM reminders WHERE user_id = $1 ORDER BY due_at, id`, userID)
}

func (s *Store) GetDueReminders(userID string, before time.Time) ([]models.Reminder, error) {
	return s.queryReminders(`SELECT `+reminderColumns+` FROM reminders
		WHERE user_id = $1 AND due_at <= $2 ORDER BY due_at, id`, userID, before)
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
		if err := rows.Scan(&r.ID, &r.UserID, &r.HabitID, &r.Kind, &r.Streak, &r.DueAt, &r.CreatedAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

func (s *Store) DeleteReminder(id string) error {
	res, err := s.db.Exec("DELETE FROM reminders WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res, "reminder", id)
}

func (s *Store) DeleteHabitReminders(habitID, kind string) error {
	_, err := s.db.Exec("DELETE FROM reminders WHERE habit_id = $1 AND kind = $2", habitID, kind)
	return err
}
