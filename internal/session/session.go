// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session drives the interactive chapter extraction workflow: pick a
// PDF, derive or enter chapter boundaries, choose chapters, export each one
// through the extraction backend. Console I/O goes through an injected
// reader/writer pair so the whole flow is testable without a terminal.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gazza2577/pdf-chapter-extractor/internal/extract"
	"github.com/gazza2577/pdf-chapter-extractor/internal/outline"
	"github.com/gazza2577/pdf-chapter-extractor/internal/pdfinfo"
	"github.com/gazza2577/pdf-chapter-extractor/internal/ranges"
	"github.com/gazza2577/pdf-chapter-extractor/pkg/types"
)

// state tracks the workflow position. Prompt validation failures re-enter
// the same state instead of looping in place, which keeps each handler a
// single pass.
type state int

const (
	stateAwaitFile state = iota
	stateAwaitMode
	stateAwaitSelection
	stateExporting
	stateDone
)

// Session holds one interactive run against one document.
type Session struct {
	cfg       types.SessionConfig
	provider  pdfinfo.Provider
	extractor extract.Extractor
	in        *bufio.Reader
	out       io.Writer

	pdfPath    string
	totalPages int
	chapters   []types.Chapter
	selected   []int
	succeeded  int
	skipped    int
	failed     int
}

// New builds a session. in and out are the interactive console streams;
// tests pass scripted readers and buffers.
func New(cfg types.SessionConfig, provider pdfinfo.Provider, extractor extract.Extractor, in io.Reader, out io.Writer) *Session {
	if cfg.Output.MaxFilenameLength <= 0 {
		cfg.Output.MaxFilenameLength = types.DefaultMaxFilenameLength
	}
	return &Session{
		cfg:       cfg,
		provider:  provider,
		extractor: extractor,
		in:        bufio.NewReader(in),
		out:       out,
	}
}

// Run drives the workflow to completion. It returns an error when nothing
// could be exported (no PDFs found, unreadable document, no chapters defined
// or selected) and when any selected chapter failed to extract.
func (s *Session) Run() error {
	for st := stateAwaitFile; st != stateDone; {
		var err error
		switch st {
		case stateAwaitFile:
			err = s.awaitFile()
			st = stateAwaitMode
		case stateAwaitMode:
			err = s.awaitMode()
			st = stateAwaitSelection
		case stateAwaitSelection:
			err = s.awaitSelection()
			st = stateExporting
		case stateExporting:
			err = s.export()
			st = stateDone
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// awaitFile lists the PDFs in the configured directory and prompts for one.
func (s *Session) awaitFile() error {
	pdfs, err := FindPDFs(s.cfg.Dir)
	if err != nil {
		return err
	}
	if len(pdfs) == 0 {
		return fmt.Errorf("no PDF files found in %s", s.cfg.Dir)
	}

	fmt.Fprintln(s.out, "Available PDF files:")
	for i, p := range pdfs {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, filepath.Base(p))
	}

	for {
		line, err := s.prompt(fmt.Sprintf("Select a PDF by number (1-%d): ", len(pdfs)))
		if err != nil {
			return err
		}
		idx, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(s.out, "Please enter a whole number.")
			continue
		}
		if idx < 1 || idx > len(pdfs) {
			fmt.Fprintln(s.out, "Choice out of range. Try again.")
			continue
		}
		s.pdfPath = pdfs[idx-1]
		break
	}

	fmt.Fprintf(s.out, "You selected: %s\n", filepath.Base(s.pdfPath))

	s.totalPages, err = s.provider.PageCount(s.pdfPath)
	if err != nil {
		return err
	}
	return nil
}

// awaitMode derives chapters from the outline when possible, offering the
// detected list for acceptance, and otherwise falls back to a chapter file
// or manual entry.
func (s *Session) awaitMode() error {
	entries, err := s.provider.ReadOutline(s.pdfPath)
	if err != nil {
		return err
	}

	detected, err := outline.Analyze(entries, s.totalPages)
	switch {
	case err == nil:
		s.printChapters(detected)
		line, err := s.prompt("Use these detected chapters? [Y/n]: ")
		if err != nil {
			return err
		}
		if answer := strings.ToLower(line); answer == "" || answer == "y" || answer == "yes" {
			s.chapters = detected
			return nil
		}
	case errors.Is(err, outline.ErrNoChapters):
		fmt.Fprintln(s.out, "No chapter-like bookmarks detected.")
	default:
		return err
	}

	if s.cfg.ChaptersFile != "" {
		cf, err := outline.ReadChapterFile(s.cfg.ChaptersFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Loaded %d chapters from %s\n", len(cf.Chapters), s.cfg.ChaptersFile)
		s.chapters = cf.Chapters
		return nil
	}

	chapters, err := s.manualChapters()
	if err != nil {
		return err
	}
	if len(chapters) == 0 {
		return fmt.Errorf("no chapters provided")
	}
	s.chapters = chapters
	return nil
}

// manualChapters collects (title, start page) pairs until a blank title.
// Start pages must be entered in ascending order; out-of-order input is
// rejected with a re-prompt rather than silently reordered, since reordering
// could not recover the intended boundaries.
func (s *Session) manualChapters() ([]types.Chapter, error) {
	fmt.Fprintln(s.out, "Enter chapters manually (blank title to finish).")

	var chapters []types.Chapter
	prevPage := 0
	for {
		title, err := s.prompt(fmt.Sprintf("Chapter %d title: ", len(chapters)+1))
		if err != nil {
			return nil, err
		}
		if title == "" {
			return chapters, nil
		}

		for {
			line, err := s.prompt(fmt.Sprintf("Start page for %q: ", title))
			if err != nil {
				return nil, err
			}
			page, err := strconv.Atoi(line)
			if err != nil || page < 1 {
				fmt.Fprintln(s.out, "Enter a positive page number.")
				continue
			}
			if page > s.totalPages {
				fmt.Fprintf(s.out, "The document has only %d pages.\n", s.totalPages)
				continue
			}
			if page <= prevPage {
				fmt.Fprintf(s.out, "Start pages must increase; previous chapter starts at %d.\n", prevPage)
				continue
			}
			prevPage = page
			chapters = append(chapters, types.Chapter{
				Number:    len(chapters) + 1,
				Title:     title,
				StartPage: page,
			})
			break
		}
	}
}

// awaitSelection shows the resolved ranges and prompts for a selection
// expression, re-prompting on invalid input.
func (s *Session) awaitSelection() error {
	resolved, err := ranges.Resolve(s.chapters, s.totalPages)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, "Available chapters:")
	for _, r := range resolved {
		fmt.Fprintf(s.out, "%d. %s (pages %d-%d)\n", r.Number, r.Title, r.StartPage, r.EndPage)
	}

	for {
		line, err := s.prompt("Enter chapters to extract (e.g., 1 or 1-3,5): ")
		if err != nil {
			return err
		}
		if line == "" {
			return fmt.Errorf("no chapters selected")
		}
		selected, err := ranges.ParseSelection(line, len(s.chapters))
		if err != nil {
			fmt.Fprintln(s.out, strings.TrimPrefix(err.Error(), "invalid chapter selection: "))
			continue
		}
		s.selected = selected
		return nil
	}
}

// export processes each selected chapter in ascending order, printing one
// status line per chapter. Chapters whose output file already exists are
// skipped; the run still fails when any chapter failed, and reports an error
// when nothing was exported or kept.
func (s *Session) export() error {
	resolved, err := ranges.Resolve(s.chapters, s.totalPages)
	if err != nil {
		return err
	}

	outDir := s.cfg.Output.Dir
	if outDir == "" {
		outDir = filepath.Dir(s.pdfPath)
	}
	docName := strings.TrimSuffix(filepath.Base(s.pdfPath), filepath.Ext(s.pdfPath))
	alloc := extract.NewFilenameAllocator(docName, s.cfg.Output.MaxFilenameLength)

	for _, n := range s.selected {
		r := resolved[n-1]
		req := types.ExportRequest{
			Number:    r.Number,
			Title:     r.Title,
			StartPage: r.StartPage,
			EndPage:   r.EndPage,
			Filename:  filepath.Join(outDir, alloc.Allocate(r.Number, r.Title)),
		}
		switch s.exportOne(req) {
		case types.ExportDone:
			s.succeeded++
		case types.ExportSkipped:
			s.skipped++
		case types.ExportFailed:
			s.failed++
		}
	}

	fmt.Fprintf(s.out, "\nExported %d of %d chapters.\n", s.succeeded, len(s.selected))
	if s.succeeded == 0 && s.skipped == 0 {
		return fmt.Errorf("no chapters were exported")
	}
	if s.failed > 0 {
		return fmt.Errorf("%d of %d chapters failed", s.failed, len(s.selected))
	}
	return nil
}

// exportOne runs the extraction backend for a single chapter and reports the
// outcome. Output files surviving from an earlier run are left alone.
func (s *Session) exportOne(req types.ExportRequest) types.ExportStatus {
	if _, err := os.Stat(req.Filename); err == nil {
		fmt.Fprintf(s.out, "skipped: %s (already exists)\n", filepath.Base(req.Filename))
		return types.ExportSkipped
	}
	if err := s.extractor.Extract(s.pdfPath, req); err != nil {
		fmt.Fprintf(s.out, "failed:  chapter %d (%v)\n", req.Number, err)
		return types.ExportFailed
	}
	fmt.Fprintf(s.out, "created: %s (pages %d-%d)\n", filepath.Base(req.Filename), req.StartPage, req.EndPage)
	return types.ExportDone
}

// printChapters lists detected chapters before ranges are resolved.
func (s *Session) printChapters(chapters []types.Chapter) {
	fmt.Fprintln(s.out, "Detected chapters:")
	for _, c := range chapters {
		fmt.Fprintf(s.out, "%d. %s (starts at page %d)\n", c.Number, c.Title, c.StartPage)
	}
}

// prompt prints a prompt and reads one trimmed line.
func (s *Session) prompt(msg string) (string, error) {
	fmt.Fprint(s.out, msg)
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// FindPDFs returns the PDF files in dir, sorted by name.
func FindPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var pdfs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			pdfs = append(pdfs, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(pdfs)
	return pdfs, nil
}
