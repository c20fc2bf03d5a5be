// Package errors provides sentinel errors for the content pipeline.
// Lower layers wrap these with fmt.Errorf("%w: ...") so callers can classify
// failures with errors.Is regardless of how much context was added.
package errors

import "errors"

var (
	// ErrDiscovery indicates the content root is missing, unreadable or not a directory.
	ErrDiscovery = errors.New("content discovery failed")

	// ErrDocumentRead indicates a located document could not be read.
	ErrDocumentRead = errors.New("document read failed")

	// ErrMalformedFrontmatter indicates required metadata is missing or has the wrong type.
	ErrMalformedFrontmatter = errors.New("malformed frontmatter")

	// ErrCompilation indicates a document body could not be compiled.
	ErrCompilation = errors.New("compilation failed")

	// ErrDuplicateID indicates two documents resolve to the same identifier.
	ErrDuplicateID = errors.New("duplicate post identifier")
)
