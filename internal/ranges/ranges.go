// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ranges resolves chapter start pages into inclusive page ranges and
// parses user chapter-selection expressions such as "1-3,5".
package ranges

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gazza2577/pdf-chapter-extractor/pkg/types"
)

// ErrDegenerateRange indicates chapter start pages that are not strictly
// increasing. Ranges computed from such a list would be meaningless, so the
// run is aborted rather than reordered behind the user's back.
var ErrDegenerateRange = errors.New("degenerate chapter range")

// ErrInvalidSelection indicates a malformed or out-of-range chapter
// selection expression. The caller re-prompts.
var ErrInvalidSelection = errors.New("invalid chapter selection")

// Resolve computes the inclusive page range for each chapter: a chapter ends
// on the page before its successor starts, and the last chapter ends on the
// document's last page.
func Resolve(chapters []types.Chapter, totalPages int) ([]types.ChapterRange, error) {
	result := make([]types.ChapterRange, 0, len(chapters))
	for i, c := range chapters {
		end := totalPages
		if i+1 < len(chapters) {
			end = chapters[i+1].StartPage - 1
		}
		if end < c.StartPage {
			return nil, fmt.Errorf("%w: chapter %d starts at page %d but ends at %d",
				ErrDegenerateRange, c.Number, c.StartPage, end)
		}
		result = append(result, types.ChapterRange{
			Number:    c.Number,
			Title:     c.Title,
			StartPage: c.StartPage,
			EndPage:   end,
		})
	}
	return result, nil
}

// ParseSelection parses a chapter selection expression into an ascending,
// de-duplicated list of chapter numbers. Tokens are comma-separated and each
// is either a single number ("3") or an inclusive range ("2-4"). available
// is the highest valid chapter number. Export order is always ascending
// regardless of input order, so output files come out in reading order.
func ParseSelection(expr string, available int) ([]int, error) {
	tokens := strings.Split(expr, ",")
	picked := make(map[int]bool)
	seen := false

	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		seen = true

		low, high, err := parseToken(tok)
		if err != nil {
			return nil, err
		}
		if low < 1 || high > available {
			return nil, fmt.Errorf("%w: %q is outside 1-%d", ErrInvalidSelection, tok, available)
		}
		for n := low; n <= high; n++ {
			picked[n] = true
		}
	}

	if !seen {
		return nil, fmt.Errorf("%w: no chapter numbers given", ErrInvalidSelection)
	}

	result := make([]int, 0, len(picked))
	for n := range picked {
		result = append(result, n)
	}
	sort.Ints(result)
	return result, nil
}

// parseToken reads a single selection token: "N" or "LOW-HIGH".
func parseToken(tok string) (low, high int, err error) {
	if lowStr, highStr, ok := strings.Cut(tok, "-"); ok {
		low, err = strconv.Atoi(strings.TrimSpace(lowStr))
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q is not a number or range", ErrInvalidSelection, tok)
		}
		high, err = strconv.Atoi(strings.TrimSpace(highStr))
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q is not a number or range", ErrInvalidSelection, tok)
		}
		if low > high {
			return 0, 0, fmt.Errorf("%w: range %q runs backwards", ErrInvalidSelection, tok)
		}
		return low, high, nil
	}

	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q is not a number or range", ErrInvalidSelection, tok)
	}
	return n, n, nil
}
