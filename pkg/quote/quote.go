// Package quote picks the motivational quote of the day.
package quote

import (
	"unicode/utf16"

	"tableflip.dev/routine/pkg/day"
)

// Quote is a line of text and who said it.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// Default is shown when selection fails.
var Default = Quote{
	Text:   "The secret of getting ahead is getting started.",
	Author: "Mark Twain",
}

// Catalog is the fixed, ordered list quotes are drawn from.
var Catalog = []Quote{
	{Text: "We are what we repeatedly do. Excellence, then, is not an act, but a habit.", Author: "Will Durant"},
	{Text: "Small deeds done are better than great deeds planned.", Author: "Peter Marshall"},
	{Text: "The way to get started is to quit talking and begin doing.", Author: "Walt Disney"},
	{Text: "It does not matter how slowly you go as long as you do not stop.", Author: "Confucius"},
	{Text: "Motivation is what gets you started. Habit is what keeps you going.", Author: "Jim Ryun"},
	{Text: "Well begun is half done.", Author: "Aristotle"},
	{Text: "How we spend our days is, of course, how we spend our lives.", Author: "Annie Dillard"},
}

// Hash is the 32-bit polynomial rolling hash hash = hash*31 + c over the
// UTF-16 code units of s, wrapping at every step.
func Hash(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	return h
}

// Index maps key onto [0, n) as abs(hash) mod n.
func Index(key string, n int) int {
	if n <= 0 {
		return 0
	}
	h := int64(Hash(key))
	if h < 0 {
		h = -h
	}
	return int(h % int64(n))
}

// ForDay returns the quote for d from Catalog.
func ForDay(d day.Key) Quote {
	return Pick(d, Catalog)
}

// Pick returns the quote for d from catalog, or Default when catalog is empty.
func Pick(d day.Key, catalog []Quote) Quote {
	if len(catalog) == 0 || d == "" {
		return Default
	}
	return catalog[Index(string(d), len(catalog))]
}
