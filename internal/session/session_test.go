// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gazza2577/pdf-chapter-extractor/internal/extract"
	"github.com/gazza2577/pdf-chapter-extractor/internal/outline"
	"github.com/gazza2577/pdf-chapter-extractor/pkg/types"
)

// fakeProvider serves a canned outline and page count.
type fakeProvider struct {
	entries []types.OutlineEntry
	pages   int
	err     error
}

func (f *fakeProvider) ReadOutline(path string) ([]types.OutlineEntry, error) {
	return f.entries, f.err
}

func (f *fakeProvider) PageCount(path string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.pages, nil
}

// fakeExtractor records requests and writes output files, failing for
// chapter numbers listed in failFor.
type fakeExtractor struct {
	requests []types.ExportRequest
	failFor  map[int]bool
}

func (f *fakeExtractor) Extract(pdfPath string, req types.ExportRequest) error {
	f.requests = append(f.requests, req)
	if f.failFor[req.Number] {
		return errors.New("exit status 1")
	}
	return os.WriteFile(req.Filename, []byte("text"), 0o644)
}

// setupDir creates a directory holding one fake PDF and returns both paths.
func setupDir(t *testing.T) (dir, pdfPath string) {
	t.Helper()
	dir = t.TempDir()
	pdfPath = filepath.Join(dir, "book.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.4"), 0o644))
	return dir, pdfPath
}

func outlineEntries() []types.OutlineEntry {
	return []types.OutlineEntry{
		{Title: "Chapter 1: Intro", Depth: 0, Page: 1},
		{Title: "Chapter 2: Body", Depth: 0, Page: 10},
		{Title: "Notes", Depth: 1, Page: 15},
	}
}

func run(t *testing.T, cfg types.SessionConfig, provider *fakeProvider, ex extract.Extractor, input string) (*bytes.Buffer, error) {
	t.Helper()
	var out bytes.Buffer
	s := New(cfg, provider, ex, strings.NewReader(input), &out)
	return &out, s.Run()
}

func TestRun_DetectedChapters(t *testing.T) {
	dir, _ := setupDir(t)
	provider := &fakeProvider{entries: outlineEntries(), pages: 20}
	ex := &fakeExtractor{}

	// Pick file 1, accept detected chapters, extract both.
	out, err := run(t, types.SessionConfig{Dir: dir}, provider, ex, "1\n\n1-2\n")
	require.NoError(t, err)

	require.Len(t, ex.requests, 2)
	assert.Equal(t, 1, ex.requests[0].StartPage)
	assert.Equal(t, 9, ex.requests[0].EndPage)
	assert.Equal(t, 10, ex.requests[1].StartPage)
	assert.Equal(t, 20, ex.requests[1].EndPage)
	assert.Equal(t, "book_chapter_1_intro.txt", filepath.Base(ex.requests[0].Filename))
	assert.Equal(t, "book_chapter_2_body.txt", filepath.Base(ex.requests[1].Filename))

	output := out.String()
	assert.Contains(t, output, "Detected chapters:")
	assert.Contains(t, output, "1. Intro (starts at page 1)")
	assert.Contains(t, output, "created: book_chapter_1_intro.txt (pages 1-9)")
	assert.Contains(t, output, "Exported 2 of 2 chapters.")
}

func TestRun_InvalidFileChoiceReprompts(t *testing.T) {
	dir, _ := setupDir(t)
	provider := &fakeProvider{entries: outlineEntries(), pages: 20}
	ex := &fakeExtractor{}

	out, err := run(t, types.SessionConfig{Dir: dir}, provider, ex, "x\n9\n1\n\n1\n")
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "Please enter a whole number.")
	assert.Contains(t, output, "Choice out of range. Try again.")
	require.Len(t, ex.requests, 1)
}

func TestRun_InvalidSelectionReprompts(t *testing.T) {
	dir, _ := setupDir(t)
	provider := &fakeProvider{entries: outlineEntries(), pages: 20}
	ex := &fakeExtractor{}

	out, err := run(t, types.SessionConfig{Dir: dir}, provider, ex, "1\n\n9\n5-1\n2\n")
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "outside 1-2")
	assert.Contains(t, output, "runs backwards")
	require.Len(t, ex.requests, 1)
	assert.Equal(t, 2, ex.requests[0].Number)
}

func TestRun_ManualFallback(t *testing.T) {
	dir, _ := setupDir(t)
	// Outline has nothing chapter-like, forcing manual entry.
	provider := &fakeProvider{
		entries: []types.OutlineEntry{{Title: "Preface", Depth: 0, Page: 1}},
		pages:   30,
	}
	ex := &fakeExtractor{}

	input := strings.Join([]string{
		"1",     // pick book.pdf
		"Intro", // chapter 1 title
		"1",     // chapter 1 start page
		"Body",  // chapter 2 title
		"bad",   // not a number - reprompt
		"3",     // chapter 2 start page
		"",      // blank title ends entry
		"1-2",   // selection
	}, "\n") + "\n"

	out, err := run(t, types.SessionConfig{Dir: dir}, provider, ex, input)
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "No chapter-like bookmarks detected.")
	assert.Contains(t, output, "Enter a positive page number.")
	require.Len(t, ex.requests, 2)
	assert.Equal(t, 1, ex.requests[0].StartPage)
	assert.Equal(t, 2, ex.requests[0].EndPage)
	assert.Equal(t, 3, ex.requests[1].StartPage)
	assert.Equal(t, 30, ex.requests[1].EndPage)
}

func TestRun_ManualRejectsNonIncreasingPages(t *testing.T) {
	dir, _ := setupDir(t)
	provider := &fakeProvider{pages: 30}
	ex := &fakeExtractor{}

	input := strings.Join([]string{
		"1",
		"One", "5",
		"Two", "3", // not after page 5 - reprompt
		"7", // accepted
		"",
		"1,2",
	}, "\n") + "\n"

	out, err := run(t, types.SessionConfig{Dir: dir}, provider, ex, input)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Start pages must increase; previous chapter starts at 5.")
	require.Len(t, ex.requests, 2)
}

func TestRun_ChapterFileFallback(t *testing.T) {
	dir, _ := setupDir(t)
	chaptersPath := filepath.Join(dir, "chapters.yaml")
	require.NoError(t, outline.WriteChapterFile(chaptersPath, outline.ChapterFile{
		Document: "book.pdf",
		Chapters: []types.Chapter{
			{Number: 1, Title: "First", StartPage: 1},
			{Number: 2, Title: "Second", StartPage: 12},
		},
	}))

	provider := &fakeProvider{pages: 25}
	ex := &fakeExtractor{}
	cfg := types.SessionConfig{Dir: dir, ChaptersFile: chaptersPath}

	out, err := run(t, cfg, provider, ex, "1\n1-2\n")
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Loaded 2 chapters from")
	require.Len(t, ex.requests, 2)
	assert.Equal(t, 12, ex.requests[1].StartPage)
	assert.Equal(t, 25, ex.requests[1].EndPage)
}

func TestRun_PartialFailure(t *testing.T) {
	dir, _ := setupDir(t)
	provider := &fakeProvider{
		entries: []types.OutlineEntry{
			{Title: "Chapter 1: A", Depth: 0, Page: 1},
			{Title: "Chapter 2: B", Depth: 0, Page: 10},
			{Title: "Chapter 3: C", Depth: 0, Page: 20},
		},
		pages: 30,
	}
	ex := &fakeExtractor{failFor: map[int]bool{2: true}}

	out, err := run(t, types.SessionConfig{Dir: dir}, provider, ex, "1\n\n1-3\n")
	// Chapters 1 and 3 succeed, the run still reports failure.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 chapters failed")

	output := out.String()
	assert.Contains(t, output, "failed:  chapter 2")
	assert.Contains(t, output, "Exported 2 of 3 chapters.")

	// Output files exist for 1 and 3 only.
	_, statErr := os.Stat(filepath.Join(dir, "book_chapter_1_a.txt"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(dir, "book_chapter_2_b.txt"))
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(dir, "book_chapter_3_c.txt"))
	assert.NoError(t, statErr)
}

func TestRun_ExistingOutputSkipped(t *testing.T) {
	dir, _ := setupDir(t)
	provider := &fakeProvider{entries: outlineEntries(), pages: 20}
	ex := &fakeExtractor{}

	// A file left over from an earlier run must not be re-extracted.
	existing := filepath.Join(dir, "book_chapter_1_intro.txt")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0o644))

	out, err := run(t, types.SessionConfig{Dir: dir}, provider, ex, "1\n\n1-2\n")
	require.NoError(t, err)

	require.Len(t, ex.requests, 1)
	assert.Equal(t, 2, ex.requests[0].Number)

	output := out.String()
	assert.Contains(t, output, "skipped: book_chapter_1_intro.txt (already exists)")
	assert.Contains(t, output, "created: book_chapter_2_body.txt (pages 10-20)")

	data, readErr := os.ReadFile(existing)
	require.NoError(t, readErr)
	assert.Equal(t, "old", string(data))
}

func TestRun_AllSkippedIsNotAFailure(t *testing.T) {
	dir, _ := setupDir(t)
	provider := &fakeProvider{entries: outlineEntries(), pages: 20}
	ex := &fakeExtractor{}

	for _, name := range []string{"book_chapter_1_intro.txt", "book_chapter_2_body.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("old"), 0o644))
	}

	out, err := run(t, types.SessionConfig{Dir: dir}, provider, ex, "1\n\n1-2\n")
	require.NoError(t, err)
	assert.Empty(t, ex.requests)
	assert.Contains(t, out.String(), "Exported 0 of 2 chapters.")
}

func TestRun_AllFailures(t *testing.T) {
	dir, _ := setupDir(t)
	provider := &fakeProvider{entries: outlineEntries(), pages: 20}
	ex := &fakeExtractor{failFor: map[int]bool{1: true, 2: true}}

	_, err := run(t, types.SessionConfig{Dir: dir}, provider, ex, "1\n\n1-2\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no chapters were exported")
}

func TestRun_NoPDFs(t *testing.T) {
	dir := t.TempDir()
	provider := &fakeProvider{}
	ex := &fakeExtractor{}

	_, err := run(t, types.SessionConfig{Dir: dir}, provider, ex, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no PDF files found")
}

func TestRun_UnreadableDocument(t *testing.T) {
	dir, _ := setupDir(t)
	provider := &fakeProvider{err: errors.New("unreadable document: book.pdf")}
	ex := &fakeExtractor{}

	_, err := run(t, types.SessionConfig{Dir: dir}, provider, ex, "1\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreadable document")
	assert.Empty(t, ex.requests)
}

func TestRun_DeclineDetectedGoesManual(t *testing.T) {
	dir, _ := setupDir(t)
	provider := &fakeProvider{entries: outlineEntries(), pages: 20}
	ex := &fakeExtractor{}

	input := strings.Join([]string{
		"1",
		"n", // reject detected chapters
		"Whole Book", "1",
		"",
		"1",
	}, "\n") + "\n"

	out, err := run(t, types.SessionConfig{Dir: dir}, provider, ex, input)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Enter chapters manually")
	require.Len(t, ex.requests, 1)
	assert.Equal(t, 1, ex.requests[0].StartPage)
	assert.Equal(t, 20, ex.requests[0].EndPage)
}

func TestFindPDFs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.PDF", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.pdf"), 0o755))

	pdfs, err := FindPDFs(dir)
	require.NoError(t, err)
	require.Len(t, pdfs, 2)
	assert.Equal(t, "a.PDF", filepath.Base(pdfs[0]))
	assert.Equal(t, "b.pdf", filepath.Base(pdfs[1]))
}
