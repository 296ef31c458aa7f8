package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrUnknownTemplate is returned when no fixed template exists for
	// the requested doc target.
	ErrUnknownTemplate = errors.New("no template for doc target")

	// ErrTemplateRender is returned when executing a fixed template
	// fails.
	ErrTemplateRender = errors.New("failed to render template")
)
