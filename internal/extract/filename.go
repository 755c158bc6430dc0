// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"regexp"
	"strings"
)

var nonAlnumRE = regexp.MustCompile(`[^a-z0-9]+`)

// Slug renders s filesystem-safe: lowercase, runs of non-alphanumeric
// characters collapsed to a single underscore, trimmed of leading and
// trailing underscores, truncated to max bytes. Slugging a slug returns
// it unchanged.
func Slug(s string, max int) string {
	out := nonAlnumRE.ReplaceAllString(strings.ToLower(s), "_")
	out = strings.Trim(out, "_")
	if max > 0 && len(out) > max {
		out = strings.TrimRight(out[:max], "_")
	}
	return out
}

// FilenameAllocator builds output filenames of the form
// <doc>_chapter_<n>_<title>.txt and keeps them unique within one run by
// appending a numeric suffix on collision.
type FilenameAllocator struct {
	docSlug string
	maxLen  int
	used    map[string]bool
}

// NewFilenameAllocator creates an allocator for one document. docName is the
// PDF filename without extension; maxLen bounds each slug component.
func NewFilenameAllocator(docName string, maxLen int) *FilenameAllocator {
	doc := Slug(docName, maxLen)
	if doc == "" {
		doc = "book"
	}
	return &FilenameAllocator{
		docSlug: doc,
		maxLen:  maxLen,
		used:    make(map[string]bool),
	}
}

// Allocate returns a filename for the given chapter, unique among the names
// this allocator has handed out.
func (a *FilenameAllocator) Allocate(number int, title string) string {
	titleSlug := Slug(title, a.maxLen)
	if titleSlug == "" {
		titleSlug = "chapter"
	}

	base := fmt.Sprintf("%s_chapter_%d_%s", a.docSlug, number, titleSlug)
	name := base + ".txt"
	for suffix := 2; a.used[name]; suffix++ {
		name = fmt.Sprintf("%s_%d.txt", base, suffix)
	}
	a.used[name] = true
	return name
}
