// Package query holds the pure matching functions behind the dashboard's
// search box and category selector. All functions treat their input as
// read-only and return either the input slice unchanged or a fresh slice.
package query

import (
	"strings"

	"github.com/ZevWepster/eventpage/internal/domain"
)

// SuggestionLimit caps the dropdown under the search box.
const SuggestionLimit = 5

// Search returns every event whose title contains the query as a
// case-insensitive substring, in original list order. An empty or
// whitespace-only query is the identity: the full input comes back, not an
// empty result. Events without a title never match but never error either.
func Search(events []domain.Event, q string) []domain.Event {
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return events
	}
	var matches []domain.Event
	for _, e := range events {
		if e.Title == "" {
			continue
		}
		if strings.Contains(strings.ToLower(e.Title), needle) {
			matches = append(matches, e)
		}
	}
	if matches == nil {
		matches = []domain.Event{}
	}
	return matches
}

// Suggest is Search capped to the first SuggestionLimit matches in list
// order. There is no relevance ranking. Unlike Search, an empty query yields
// no suggestions: the dropdown only opens while the user is typing.
func Suggest(events []domain.Event, q string) []domain.Event {
	if strings.TrimSpace(q) == "" {
		return []domain.Event{}
	}
	matches := Search(events, q)
	if len(matches) > SuggestionLimit {
		matches = matches[:SuggestionLimit]
	}
	return matches
}

// FilterByCategory returns every event tagged with the numeric value of
// categoryID. An empty id means "all" and is the identity. An id that does
// not parse as a number matches nothing.
func FilterByCategory(events []domain.Event, categoryID string) []domain.Event {
	if strings.TrimSpace(categoryID) == "" {
		return events
	}
	id, err := domain.ParseCategoryID(categoryID)
	if err != nil {
		return []domain.Event{}
	}
	matches := []domain.Event{}
	for _, e := range events {
		if e.HasCategory(id) {
			matches = append(matches, e)
		}
	}
	return matches
}
