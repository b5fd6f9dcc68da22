package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Setting keys
const (
	SettingLastRollover = "last_rollover"
)

// RolloverKey is the per-user setting holding the last rollover date.
func RolloverKey(userID string) string {
	return SettingLastRollover + ":" + userID
}

// EncodeWeekdays stores a weekday set as a comma separated list of day numbers.
func EncodeWeekdays(days []time.Weekday) string {
	if len(days) == 0 {
		return ""
	}
	sorted := slices.Clone(days)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	parts := make([]string, len(sorted))
	for i, d := range sorted {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

// DecodeWeekdays reverses EncodeWeekdays.
func DecodeWeekdays(s string) ([]time.Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var days []time.Weekday
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid weekday %q", part)
		}
		days = append(days, time.Weekday(n))
	}
	return days, nil
}

// EncodeProgress serializes a progress record for storage.
func EncodeProgress(p models.GamificationProgress) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode progress: %w", err)
	}
	return data, nil
}

// DecodeProgress parses a stored progress record. Nil slices are replaced with
// empty ones so older records behave like fresh defaults.
func DecodeProgress(data []byte) (models.GamificationProgress, error) {
	var p models.GamificationProgress
	if err := json.Unmarshal(data, &p); err != nil {
		return models.GamificationProgress{}, fmt.Errorf("failed to decode progress: %w", err)
	}
	if p.Level < 1 {
		p.Level = 1
	}
	return p.Clone(), nil
}
