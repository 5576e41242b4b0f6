package domain

import "strings"

// MinTitleLength is the fewest characters a tag title may have.
const MinTitleLength = 3

// Tag is a named category with a derived slug and a count of videos using it.
// Tags are immutable once created; the store only ever appends them.
type Tag struct {
	ID             string `json:"id" yaml:"id"`
	Title          string `json:"title" yaml:"title"`
	Slug           string `json:"slug" yaml:"slug"` // Derived from Title, not unique
	AmountOfVideos int    `json:"amountOfVideos" yaml:"amountOfVideos"`
}

// MatchesTitle reports whether the title contains search, ignoring case.
// An empty search matches every tag.
func (t Tag) MatchesTitle(search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), strings.ToLower(search))
}

// TagQuery selects one page of tags.
type TagQuery struct {
	Page        int
	RowsPerPage int
	Search      string
}

// TagPage is one page of a filtered tag listing plus its navigation metadata.
// Prev and Next are nil at the boundaries.
type TagPage struct {
	First int   `json:"first" yaml:"first"`
	Prev  *int  `json:"prev" yaml:"prev"`
	Next  *int  `json:"next" yaml:"next"`
	Last  int   `json:"last" yaml:"last"`
	Pages int   `json:"pages" yaml:"pages"`
	Items int   `json:"items" yaml:"items"`
	Data  []Tag `json:"data" yaml:"data"`
}
