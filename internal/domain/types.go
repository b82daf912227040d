package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is an entity identifier. The gateway is loose about id types (numbers
// and strings show up in the same collections), so incoming JSON is
// normalized to a string at the decode boundary and compared in string form
// everywhere after that.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// CategoryID is always numeric, but the gateway and form inputs may carry it
// as a quoted string.
type CategoryID int

func (c *CategoryID) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("category id %q is not numeric: %w", raw, err)
	}
	*c = CategoryID(n)
	return nil
}

// ParseCategoryID coerces a form or query value to a numeric category id.
func ParseCategoryID(s string) (CategoryID, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("category id %q is not numeric: %w", s, err)
	}
	return CategoryID(n), nil
}

type Event struct {
	ID          ID           `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Image       string       `json:"image,omitempty"`
	Location    string       `json:"location,omitempty"`
	StartTime   string       `json:"startTime,omitempty"`
	EndTime     string       `json:"endTime,omitempty"`
	CategoryIDs []CategoryID `json:"categoryIds"`
	CreatedBy   ID           `json:"createdBy,omitempty"`
}

// Clone returns a copy whose CategoryIDs slice is independent of the
// receiver's, so draft edits never reach the stored event.
func (e Event) Clone() Event {
	out := e
	out.CategoryIDs = append([]CategoryID(nil), e.CategoryIDs...)
	return out
}

// HasCategory reports whether the event is tagged with the given category.
func (e Event) HasCategory(id CategoryID) bool {
	for _, c := range e.CategoryIDs {
		if c == id {
			return true
		}
	}
	return false
}

type Category struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// EventDraft is transient form state. Category ids arrive as raw strings
// from checkbox inputs and are only coerced on submit.
type EventDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Location    string   `json:"location"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	CategoryIDs []string `json:"categoryIds"`
}

// CategorySet coerces the draft's category ids to unique integers,
// preserving first-seen order.
func (d EventDraft) CategorySet() ([]CategoryID, error) {
	ids := make([]CategoryID, 0, len(d.CategoryIDs))
	for _, raw := range d.CategoryIDs {
		id, err := ParseCategoryID(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return DedupCategoryIDs(ids), nil
}

// DedupCategoryIDs removes duplicate ids, preserving first-seen order. The
// result is never nil, so stored events always carry a well-formed set.
func DedupCategoryIDs(ids []CategoryID) []CategoryID {
	out := make([]CategoryID, 0, len(ids))
	seen := make(map[CategoryID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
