// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExtractorConfig holds settings for the external text extraction executable.
type ExtractorConfig struct {
	// Command is the extraction executable name or path (default "pdftotext").
	Command string `json:"command" yaml:"command"`

	// Encoding, when set, is passed through to the executable's -enc flag.
	// Optional passthrough; empty means the executable's default.
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty"`
}

// OutputConfig holds settings for output file naming and placement.
type OutputConfig struct {
	// Dir is the directory output files are written to. Empty means
	// alongside the source PDF.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// MaxFilenameLength bounds slug length in output filenames so long
	// titles cannot produce filesystem path-length failures (default 60).
	MaxFilenameLength int `json:"max_filename_length" yaml:"max_filename_length"`
}

// SessionConfig holds the full configuration for one interactive session.
// The working directory is passed in explicitly so the core stays a pure
// function of its inputs.
type SessionConfig struct {
	// Dir is the directory scanned for *.pdf files.
	Dir string `json:"dir" yaml:"dir"`

	// ChaptersFile is an optional YAML chapter definition file used
	// instead of manual entry when the outline yields no chapters.
	ChaptersFile string `json:"chapters_file,omitempty" yaml:"chapters_file,omitempty"`

	Extractor ExtractorConfig `json:"extractor" yaml:"extractor"`
	Output    OutputConfig    `json:"output" yaml:"output"`
}

// DefaultMaxFilenameLength is the slug length bound applied when
// OutputConfig.MaxFilenameLength is unset.
const DefaultMaxFilenameLength = 60
