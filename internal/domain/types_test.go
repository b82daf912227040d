package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZevWepster/eventpage/internal/domain"
)

func TestIDNormalizesStringsAndNumbers(t *testing.T) {
	var e domain.Event
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42, "title": "x"}`), &e))
	assert.Equal(t, domain.ID("42"), e.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": "42", "title": "x"}`), &e))
	assert.Equal(t, domain.ID("42"), e.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": null}`), &e))
	assert.Equal(t, domain.ID(""), e.ID)
}

func TestCategoryIDAcceptsQuotedNumbers(t *testing.T) {
	var e domain.Event
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","categoryIds":[1,"2",3]}`), &e))
	assert.Equal(t, []domain.CategoryID{1, 2, 3}, e.CategoryIDs)

	err := json.Unmarshal([]byte(`{"id":"1","categoryIds":["x"]}`), &e)
	require.Error(t, err)
}

func TestParseCategoryID(t *testing.T) {
	id, err := domain.ParseCategoryID(" 7 ")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryID(7), id)

	_, err = domain.ParseCategoryID("seven")
	require.Error(t, err)
}

func TestDraftCategorySetDedupsAndCoerces(t *testing.T) {
	draft := domain.EventDraft{CategoryIDs: []string{"2", "2", "3"}}
	ids, err := draft.CategorySet()
	require.NoError(t, err)
	assert.Equal(t, []domain.CategoryID{2, 3}, ids)

	draft = domain.EventDraft{CategoryIDs: []string{"2", "oops"}}
	_, err = draft.CategorySet()
	require.Error(t, err)
}

func TestDedupCategoryIDsNeverNil(t *testing.T) {
	assert.Equal(t, []domain.CategoryID{}, domain.DedupCategoryIDs(nil))
	assert.Equal(t, []domain.CategoryID{3, 2}, domain.DedupCategoryIDs([]domain.CategoryID{3, 2, 3, 2, 2}))
}

func TestCloneIsDefensive(t *testing.T) {
	original := domain.Event{ID: "1", CategoryIDs: []domain.CategoryID{1, 2}}
	clone := original.Clone()
	clone.CategoryIDs[0] = 99
	assert.Equal(t, domain.CategoryID(1), original.CategoryIDs[0])
}

func TestHasCategory(t *testing.T) {
	e := domain.Event{CategoryIDs: []domain.CategoryID{1, 3}}
	assert.True(t, e.HasCategory(3))
	assert.False(t, e.HasCategory(2))
}
