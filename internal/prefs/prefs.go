// Package prefs persists the slot-list display preference.
package prefs

import (
	"context"

	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/model"
	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/storage"
)

type Store struct {
	kv  storage.KV
	key string
}

func New(kv storage.KV, key string) *Store {
	return &Store{kv: kv, key: key}
}

// ViewMode returns the persisted preference. A missing or unknown value falls
// back to grid; neither is an error.
func (s *Store) ViewMode(ctx context.Context) model.ViewMode {
	value, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return model.ViewModeGrid
	}
	return model.ParseViewMode(value)
}

// SetViewMode persists the preference.
func (s *Store) SetViewMode(ctx context.Context, mode model.ViewMode) error {
	return s.kv.Set(ctx, s.key, string(mode))
}
