// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outline classifies PDF bookmark entries as chapter headings and
// turns them into an ordered chapter list. The analyzer is a pure function
// of its input; reading the outline from the document is the pdfinfo
// package's job.
package outline

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/gazza2577/pdf-chapter-extractor/pkg/types"
)

// ErrNoChapters is returned when the outline holds fewer than two
// chapter-like entries. A single detected chapter is not actionable;
// the caller falls back to manual entry.
var ErrNoChapters = errors.New("no chapter-like outline entries detected")

// maxRomanChapter bounds accepted Roman numeral values. Ordinary words made
// of Roman letters ("Mix", "Dim") convert to implausibly large values, so
// anything above this is treated as a non-chapter title.
const maxRomanChapter = 100

// numberWords maps spelled-out English chapter numbers to their values.
var numberWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
	"nineteen": 19, "twenty": 20,
}

var (
	// prefixRE strips a heading marker ("Chapter 3", "Part IV", "Ch. 2")
	// so the numeral check is anchored to what follows it.
	prefixRE = regexp.MustCompile(`(?i)^(?:chapter|part|section|ch\.?)[\s.:-]*`)

	digitRE = regexp.MustCompile(`^0*([0-9]+)\b`)
	wordRE  = regexp.MustCompile(`(?i)^([a-z]+)\b`)

	// dottedDigitRE matches a full dotted numbering run ("4", "1.2",
	// "2.3.1") so normalizing "Section 4.2" does not leave a stray "2".
	dottedDigitRE = regexp.MustCompile(`^0*[0-9]+(?:\.[0-9]+)*`)

	// trailerRE removes the separator left between a stripped numeral and
	// the remaining title text ("1: Intro" -> "Intro").
	trailerRE = regexp.MustCompile(`^[\s.:-]+`)
)

// romanValues is ordered for subtractive-notation conversion.
var romanValues = map[byte]int{
	'i': 1, 'v': 5, 'x': 10, 'l': 50, 'c': 100, 'd': 500, 'm': 1000,
}

// romanToInt converts a Roman numeral to its value, or 0 if any character
// is not a Roman digit.
func romanToInt(s string) int {
	s = strings.ToLower(s)
	total, prev := 0, 0
	for i := len(s) - 1; i >= 0; i-- {
		v, ok := romanValues[s[i]]
		if !ok {
			return 0
		}
		if v < prev {
			total -= v
		} else {
			total += v
			prev = v
		}
	}
	return total
}

// IsChapterTitle reports whether a bookmark title looks like a chapter
// heading: an optional heading marker followed by a decimal number, a Roman
// numeral, or a spelled-out English number word.
func IsChapterTitle(title string) bool {
	rest := prefixRE.ReplaceAllString(strings.TrimSpace(title), "")
	if digitRE.MatchString(rest) {
		return true
	}
	m := wordRE.FindStringSubmatch(rest)
	if m == nil {
		return false
	}
	word := strings.ToLower(m[1])
	if _, ok := numberWords[word]; ok {
		return true
	}
	if v := romanToInt(word); v > 0 && v <= maxRomanChapter {
		return true
	}
	return false
}

// NormalizeTitle strips the heading marker, numeral, and trailing separator
// from a chapter title ("Chapter 1: Intro" -> "Intro"). When stripping would
// leave nothing, the trimmed original is returned so an entry titled just
// "Chapter 3" keeps a usable title.
func NormalizeTitle(title string) string {
	trimmed := strings.TrimSpace(title)
	rest := prefixRE.ReplaceAllString(trimmed, "")

	if m := dottedDigitRE.FindString(rest); m != "" {
		rest = rest[len(m):]
	} else if m := wordRE.FindStringSubmatch(rest); m != nil {
		word := strings.ToLower(m[1])
		_, isWord := numberWords[word]
		v := romanToInt(word)
		if isWord || (v > 0 && v <= maxRomanChapter) {
			rest = rest[len(m[1]):]
		}
	}

	rest = strings.TrimSpace(trailerRE.ReplaceAllString(rest, ""))
	if rest == "" {
		return trimmed
	}
	return rest
}

// Analyze classifies outline entries and returns the chapter list, numbered
// 1..N in strictly increasing start-page order. Entries targeting pages
// outside [1, totalPages] are dropped as corrupt. When chapter-like titles
// appear at several nesting depths only the shallowest depth survives;
// deeper matches are sub-headings and would split chapters. Returns
// ErrNoChapters when fewer than two entries survive.
func Analyze(entries []types.OutlineEntry, totalPages int) ([]types.Chapter, error) {
	var candidates []types.OutlineEntry
	for _, e := range entries {
		if e.Page < 1 || e.Page > totalPages {
			continue
		}
		if IsChapterTitle(e.Title) {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoChapters
	}

	minDepth := candidates[0].Depth
	for _, c := range candidates[1:] {
		if c.Depth < minDepth {
			minDepth = c.Depth
		}
	}
	kept := candidates[:0]
	for _, c := range candidates {
		if c.Depth == minDepth {
			kept = append(kept, c)
		}
	}

	// The PDF library usually yields targets in document order, but
	// malformed outlines exist; sort rather than trust it.
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Page < kept[j].Page })

	var chapters []types.Chapter
	lastPage := 0
	for _, c := range kept {
		if c.Page == lastPage {
			// Bookmark artifact pointing at the same page as a
			// previously accepted entry.
			continue
		}
		lastPage = c.Page
		chapters = append(chapters, types.Chapter{
			Number:    len(chapters) + 1,
			Title:     NormalizeTitle(c.Title),
			StartPage: c.Page,
		})
	}

	if len(chapters) < 2 {
		return nil, ErrNoChapters
	}
	return chapters, nil
}
