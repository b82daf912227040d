// Package store owns the canonical event list and the current query state.
// The filtered view is never cached: it is recomputed from (list, search,
// category) on every read, so it cannot drift from its inputs.
package store

import (
	"sync"

	"github.com/ZevWepster/eventpage/internal/domain"
	"github.com/ZevWepster/eventpage/internal/query"
)

type filterMode int

const (
	modeNone filterMode = iota
	modeSearch
	modeCategory
)

// QueryState is the pair of dashboard controls as last set by the user.
type QueryState struct {
	Search     string `json:"search"`
	CategoryID string `json:"categoryId"`
}

// Store holds the full event list plus reference data. Mutations go through
// the methods below only; handlers and controllers never touch the slices
// directly.
type Store struct {
	mu         sync.RWMutex
	events     []domain.Event
	categories []domain.Category
	users      []domain.User

	search   string
	category string
	mode     filterMode
}

func New() *Store {
	return &Store{}
}

// SetEvents replaces the canonical list wholesale. Used for the initial load
// from the gateway or a seed file.
func (s *Store) SetEvents(events []domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append([]domain.Event(nil), events...)
}

func (s *Store) SetCategories(categories []domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append([]domain.Category(nil), categories...)
}

func (s *Store) SetUsers(users []domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]domain.User(nil), users...)
}

// Append adds a freshly created event to the end of the canonical list.
func (s *Store) Append(e domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

// Replace swaps the stored event with the same id for the given one and
// reports whether a match existed.
func (s *Store) Replace(e domain.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID.String() == e.ID.String() {
			s.events[i] = e
			return true
		}
	}
	return false
}

// Remove drops the event with the given id and reports whether it was there.
func (s *Store) Remove(id domain.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID.String() == id.String() {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return true
		}
	}
	return false
}

// Get resolves an event by string-normalized id comparison.
func (s *Store) Get(id domain.ID) (domain.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.events {
		if e.ID.String() == id.String() {
			return e.Clone(), true
		}
	}
	return domain.Event{}, false
}

// Events returns a copy of the canonical list.
func (s *Store) Events() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Event(nil), s.events...)
}

func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Category(nil), s.categories...)
}

func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.User(nil), s.users...)
}

// SetSearch records new search text and makes search the active control.
func (s *Store) SetSearch(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = q
	s.mode = modeSearch
}

// SetCategoryFilter records a category selection and makes it the active
// control.
func (s *Store) SetCategoryFilter(categoryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.category = categoryID
	s.mode = modeCategory
}

// ResetFilters clears both controls, as the home button does.
func (s *Store) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = ""
	s.category = ""
	s.mode = modeNone
}

// State returns the current pair of control values.
func (s *Store) State() QueryState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return QueryState{Search: s.search, CategoryID: s.category}
}

// View recomputes the filtered list from the canonical one. The two controls
// are independent: whichever was changed last is applied against the full
// list and the other is ignored. Search and category filter are two
// separate inputs, not stages of a pipeline.
func (s *Store) View() []domain.Event {
	s.mu.RLock()
	events := append([]domain.Event(nil), s.events...)
	mode, search, category := s.mode, s.search, s.category
	s.mu.RUnlock()

	switch mode {
	case modeSearch:
		return query.Search(events, search)
	case modeCategory:
		return query.FilterByCategory(events, category)
	default:
		return events
	}
}

// Suggest matches the current canonical list against typed text for the
// search dropdown. It reads nothing from the stored query state.
func (s *Store) Suggest(q string) []domain.Event {
	return query.Suggest(s.Events(), q)
}
