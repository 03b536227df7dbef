package store

import (
	"fmt"
	"time"

	"wiserate/internal/domain"

	"github.com/shopspring/decimal"
)

// AlertStore persists alert definitions next to the rate cache, with the
// same key scheme and atomic-replace discipline.
type AlertStore struct {
	path string
}

func NewAlertStore(path string) *AlertStore {
	return &AlertStore{path: path}
}

type alertRecord struct {
	Threshold     decimal.Decimal `json:"threshold"`
	Direction     string          `json:"direction"`
	CreatedAt     time.Time       `json:"created_at"`
	LastTriggered *time.Time      `json:"last_triggered_at"`
}

func (s *AlertStore) Load() (domain.AlertSet, error) {
	records := make(map[string]alertRecord)
	if _, err := readJSON(s.path, &records); err != nil {
		return nil, err
	}

	alerts := make(domain.AlertSet, len(records))
	for key, rec := range records {
		pair, err := domain.ParseKey(key)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid alert entry %q", domain.ErrPersistence, key)
		}
		direction, err := domain.ParseDirection(rec.Direction)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid direction for %q", domain.ErrPersistence, key)
		}
		if !rec.Threshold.IsPositive() {
			return nil, fmt.Errorf("%w: non-positive threshold for %q", domain.ErrPersistence, key)
		}
		alerts[pair] = domain.Alert{
			Pair:          pair,
			Threshold:     rec.Threshold,
			Direction:     direction,
			CreatedAt:     rec.CreatedAt,
			LastTriggered: rec.LastTriggered,
		}
	}
	return alerts, nil
}

func (s *AlertStore) Save(alerts domain.AlertSet) error {
	records := make(map[string]alertRecord, len(alerts))
	for pair, a := range alerts {
		records[pair.Key()] = alertRecord{
			Threshold:     a.Threshold,
			Direction:     string(a.Direction),
			CreatedAt:     a.CreatedAt.UTC(),
			LastTriggered: a.LastTriggered,
		}
	}
	return writeJSON(s.path, records)
}
