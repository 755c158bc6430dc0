// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract invokes the external pdftotext executable for chapter page
// ranges and builds collision-free output filenames.
package extract

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/gazza2577/pdf-chapter-extractor/pkg/types"
)

// DefaultCommand is the text extraction executable looked up on PATH.
const DefaultCommand = "pdftotext"

// ErrMissingExecutable indicates the extraction executable was not found on
// PATH. Detected once at startup, before any prompting, since nothing
// downstream can succeed without it.
var ErrMissingExecutable = errors.New("extraction executable not found")

// ErrExtractionFailed indicates a non-zero exit from the extraction
// executable for one chapter. Non-fatal: the run continues with the next
// chapter after the partial output is removed.
var ErrExtractionFailed = errors.New("extraction failed")

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Extractor writes one chapter's text to a file.
type Extractor interface {
	// Extract converts req's page range of the PDF at pdfPath into the
	// file req.Filename. On failure no output file is left behind.
	Extract(pdfPath string, req types.ExportRequest) error
}

// Pdftotext extracts text by shelling out to the pdftotext executable
// (poppler-utils).
type Pdftotext struct {
	command  string
	encoding string
	exec     executor
}

// NewPdftotext resolves the extraction command on PATH and returns an
// extractor bound to it. encoding, when non-empty, is passed through to
// pdftotext's -enc flag. Returns ErrMissingExecutable when the command is
// not installed.
func NewPdftotext(command, encoding string) (*Pdftotext, error) {
	return newPdftotext(command, encoding, &osExecutor{})
}

func newPdftotext(command, encoding string, exec executor) (*Pdftotext, error) {
	if command == "" {
		command = DefaultCommand
	}
	resolved, err := exec.LookPath(command)
	if err != nil {
		return nil, fmt.Errorf("%w: %q (install poppler-utils or adjust PATH)", ErrMissingExecutable, command)
	}
	return &Pdftotext{command: resolved, encoding: encoding, exec: exec}, nil
}

// Extract runs pdftotext for req's page range. Output goes to a partial
// file first and is renamed into place on success, so an interrupted or
// failed run never leaves a truncated file under the final name.
func (p *Pdftotext) Extract(pdfPath string, req types.ExportRequest) error {
	partial := req.Filename + ".part"

	args := []string{
		"-f", fmt.Sprint(req.StartPage),
		"-l", fmt.Sprint(req.EndPage),
	}
	if p.encoding != "" {
		args = append(args, "-enc", p.encoding)
	}
	args = append(args, pdfPath, partial)

	if err := p.exec.Run(p.command, args...); err != nil {
		os.Remove(partial)
		return fmt.Errorf("%w: pages %d-%d: %v", ErrExtractionFailed, req.StartPage, req.EndPage, err)
	}

	if err := os.Rename(partial, req.Filename); err != nil {
		os.Remove(partial)
		return fmt.Errorf("%w: placing output %s: %v", ErrExtractionFailed, req.Filename, err)
	}
	return nil
}
