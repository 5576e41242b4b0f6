// Package slug derives URL-safe identifiers from tag titles.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Separator joins the words of a slug.
const Separator = "-"

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// latin spells out letters that NFKD leaves without an ASCII base.
var latin = strings.NewReplacer(
	"ß", "ss", "ẞ", "SS",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O",
	"đ", "d", "Đ", "D",
	"ð", "d", "Ð", "D",
	"ł", "l", "Ł", "L",
	"þ", "th", "Þ", "TH",
	"ı", "i",
)

// Derive converts a title to a slug.
// "Science Fiction" -> "science-fiction".
// "Café Crème" -> "cafe-creme".
// "  --Rock & Roll!!  " -> "rock-roll".
//
// Derive is total: titles with no ASCII letters or digits yield "".
// Two titles may share a slug.
func Derive(title string) string {
	// Decompose so accents become separate combining marks.
	s := norm.NFKD.String(latin.Replace(title))

	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)

	// One pass both replaces and collapses runs.
	s = nonAlphanumeric.ReplaceAllString(s, Separator)

	return strings.Trim(s, Separator)
}
