package store

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/ZevWepster/eventpage/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Seed is the static data file the dashboard can boot from when no gateway
// is configured. It has the same shape as the gateway's database file.
type Seed struct {
	Events     []domain.Event    `json:"events"`
	Categories []domain.Category `json:"categories"`
	Users      []domain.User     `json:"users"`
}

// LoadSeed reads a seed file from disk.
func LoadSeed(path string) (Seed, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed: %w", err)
	}
	var s Seed
	if err := json.Unmarshal(b, &s); err != nil {
		return Seed{}, fmt.Errorf("parse seed: %w", err)
	}
	return s, nil
}

// Populate installs the seed into the store.
func (s *Store) Populate(seed Seed) {
	s.SetEvents(seed.Events)
	s.SetCategories(seed.Categories)
	s.SetUsers(seed.Users)
}
