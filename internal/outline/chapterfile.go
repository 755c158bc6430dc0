// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/gazza2577/pdf-chapter-extractor/pkg/types"
)

// ChapterFile is the on-disk representation of a chapter list. A user can
// save detected chapters to a file and reuse them in later sessions instead
// of retyping manual boundaries.
type ChapterFile struct {
	// Document is the source PDF filename the chapters were derived from.
	Document string `yaml:"document"`

	// TotalPages is the document page count at the time of writing.
	TotalPages int `yaml:"total_pages"`

	Chapters []types.Chapter `yaml:"chapters"`
}

// WriteChapterFile saves a chapter list to a YAML file.
func WriteChapterFile(path string, cf ChapterFile) error {
	data, err := yaml.Marshal(&cf)
	if err != nil {
		return fmt.Errorf("marshaling chapter file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadChapterFile loads and validates a previously saved chapter file.
func ReadChapterFile(path string) (*ChapterFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chapter file: %w", err)
	}
	var cf ChapterFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing chapter file %s: %w", path, err)
	}
	if err := validateChapters(cf.Chapters); err != nil {
		return nil, fmt.Errorf("chapter file %s: %w", path, err)
	}
	return &cf, nil
}

// validateChapters enforces the chapter list invariants: numbers sequential
// from 1, titles non-empty, start pages strictly increasing.
func validateChapters(chapters []types.Chapter) error {
	if len(chapters) == 0 {
		return fmt.Errorf("no chapters defined")
	}
	prevPage := 0
	for i, c := range chapters {
		if c.Number != i+1 {
			return fmt.Errorf("chapter %d: number %d out of sequence", i+1, c.Number)
		}
		if c.Title == "" {
			return fmt.Errorf("chapter %d: empty title", c.Number)
		}
		if c.StartPage < 1 {
			return fmt.Errorf("chapter %d: start page %d must be positive", c.Number, c.StartPage)
		}
		if c.StartPage <= prevPage {
			return fmt.Errorf("chapter %d: start page %d not after previous chapter's %d",
				c.Number, c.StartPage, prevPage)
		}
		prevPage = c.StartPage
	}
	return nil
}
