package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
)

func (s *Store) LoadProgress(userID string) (models.GamificationProgress, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM progress WHERE user_id = ?", userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GamificationProgress{}, fmt.Errorf("progress for %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return models.GamificationProgress{}, err
	}
	return storage.DecodeProgress([]byte(data))
}

func (s *Store) SaveProgress(userID string, progress models.GamificationProgress) error {
	data, err := storage.EncodeProgress(progress)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO progress (user_id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		userID, string(data), formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}
