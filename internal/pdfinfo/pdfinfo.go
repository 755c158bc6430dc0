// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfinfo reads outline (bookmark) structure and page counts from
// PDF documents via pdfcpu. It is the only package that touches PDF
// internals; the analyzer consumes its flat entry sequence.
package pdfinfo

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/gazza2577/pdf-chapter-extractor/pkg/types"
)

// ErrUnreadableDocument indicates a PDF that could not be opened or parsed
// (corrupt or encrypted). Fatal: nothing downstream can work without the
// document.
var ErrUnreadableDocument = errors.New("unreadable document")

// Provider supplies outline entries and page counts for a document.
// The production implementation is pdfcpu-backed; tests inject fakes.
type Provider interface {
	// ReadOutline returns the document's bookmark tree flattened into
	// document order with nesting depths. An empty slice (not an error)
	// means the document has no outline.
	ReadOutline(path string) ([]types.OutlineEntry, error)

	// PageCount returns the number of pages in the document.
	PageCount(path string) (int, error)
}

// PDFCPU reads documents with the pdfcpu library.
type PDFCPU struct {
	conf *model.Configuration
}

// New returns a pdfcpu-backed Provider with default configuration.
func New() *PDFCPU {
	return &PDFCPU{conf: model.NewDefaultConfiguration()}
}

func (p *PDFCPU) ReadOutline(path string) ([]types.OutlineEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableDocument, path, err)
	}
	defer f.Close()

	bms, err := api.Bookmarks(f, p.conf)
	if err != nil {
		// pdfcpu reports "no bookmarks" as an error; treat a document
		// without an outline as an empty outline, not a failure.
		if noBookmarks(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableDocument, path, err)
	}

	return flatten(bms, 0, nil), nil
}

func (p *PDFCPU) PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrUnreadableDocument, path, err)
	}
	return n, nil
}

// flatten walks the bookmark tree pre-order, emitting one entry per node
// with its depth, so the analyzer works on a flat sequence.
func flatten(bms []pdfcpu.Bookmark, depth int, out []types.OutlineEntry) []types.OutlineEntry {
	for _, bm := range bms {
		out = append(out, types.OutlineEntry{
			Title: bm.Title,
			Depth: depth,
			Page:  bm.PageFrom,
		})
		if len(bm.Kids) > 0 {
			out = flatten(bm.Kids, depth+1, out)
		}
	}
	return out
}

// noBookmarks reports whether err is pdfcpu's "document has no bookmarks"
// condition rather than a real read failure.
func noBookmarks(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "no bookmarks")
}
