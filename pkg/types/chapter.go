// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the chapter extraction
// pipeline: raw outline entries, classified chapters, resolved page ranges,
// and export requests handed to the text extraction backend.
package types

// OutlineEntry is one bookmark from the PDF outline tree, flattened into
// document order (pre-order traversal) with its nesting depth preserved.
type OutlineEntry struct {
	// Title is the bookmark title as stored in the PDF.
	Title string `json:"title" yaml:"title"`

	// Depth is the nesting level in the bookmark tree; top-level entries
	// have depth 0.
	Depth int `json:"depth" yaml:"depth"`

	// Page is the 1-based target page of the bookmark.
	Page int `json:"page" yaml:"page"`
}

// Chapter is a classified chapter heading with its starting page.
// Within one chapter list, StartPage values are strictly increasing
// by chapter number.
type Chapter struct {
	// Number is the sequential chapter number, assigned in page order
	// starting at 1. Numbers recovered from titles are never trusted
	// for sequencing.
	Number int `json:"number" yaml:"number"`

	// Title is the normalized chapter title, with heading markers and
	// numerals stripped where that leaves a non-empty title.
	Title string `json:"title" yaml:"title"`

	// StartPage is the 1-based first page of the chapter.
	StartPage int `json:"start_page" yaml:"start_page"`
}

// ChapterRange is a chapter with its resolved inclusive page range.
type ChapterRange struct {
	Number    int    `json:"number" yaml:"number"`
	Title     string `json:"title" yaml:"title"`
	StartPage int    `json:"start_page" yaml:"start_page"`
	EndPage   int    `json:"end_page" yaml:"end_page"`
}

// Pages returns the number of pages in the range.
func (r ChapterRange) Pages() int {
	return r.EndPage - r.StartPage + 1
}

// ExportRequest asks the extraction backend for one chapter's text.
type ExportRequest struct {
	Number    int    `json:"number" yaml:"number"`
	Title     string `json:"title" yaml:"title"`
	StartPage int    `json:"start_page" yaml:"start_page"`
	EndPage   int    `json:"end_page" yaml:"end_page"`

	// Filename is the output filename, unique within one run.
	Filename string `json:"filename" yaml:"filename"`
}

// ExportStatus is the outcome of one chapter export.
type ExportStatus string

const (
	// ExportDone means the chapter text file was written.
	ExportDone ExportStatus = "done"

	// ExportSkipped means the output file already existed and was left alone.
	ExportSkipped ExportStatus = "skipped"

	// ExportFailed means extraction failed; any partial output was removed.
	ExportFailed ExportStatus = "failed"
)
