package models

import "time"

// Reminder is a queued notification waiting for its due time
type Reminder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	HabitID   string    `json:"habit_id"`
	Kind      string    `json:"kind"`
	Streak    int       `json:"streak"`
	DueAt     time.Time `json:"due_at"`
	CreatedAt time.Time `json:"created_at"`
}
