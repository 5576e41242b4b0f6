package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTag_MatchesTitle(t *testing.T) {
	tag := Tag{ID: "tag-1", Title: "Quasi Dolorem", Slug: "quasi-dolorem"}

	tests := []struct {
		name   string
		search string
		want   bool
	}{
		{"empty search", "", true},
		{"exact", "Quasi Dolorem", true},
		{"lowercase substring", "dolor", true},
		{"uppercase substring", "QUASI", true},
		{"no match", "video", false},
		{"slug is not searched", "quasi-dolorem", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tag.MatchesTitle(tt.search))
		})
	}
}

func TestTag_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(Tag{ID: "tag-1", Title: "Alpha", Slug: "alpha", AmountOfVideos: 7})
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"tag-1","title":"Alpha","slug":"alpha","amountOfVideos":7}`, string(data))
}

func TestTagPage_NullBoundaries(t *testing.T) {
	page := TagPage{First: 1, Last: 1, Pages: 1, Data: []Tag{}}

	data, err := json.Marshal(page)
	require.NoError(t, err)

	assert.JSONEq(t, `{"first":1,"prev":null,"next":null,"last":1,"pages":1,"items":0,"data":[]}`, string(data))
}
