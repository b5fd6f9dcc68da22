package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
)

func (s *Store) LoadProgress(userID string) (models.GamificationProgress, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM progress WHERE user_id = $1", userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GamificationProgress{}, fmt.Errorf("progress for %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return models.GamificationProgress{}, err
	}
	return storage.DecodeProgress(data)
}

func (s *Store) SaveProgress(userID string, progress models.GamificationProgress) error {
	data, err := storage.EncodeProgress(progress)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO progress (user_id, data, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		userID, string(data), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}
