package domain

import "errors"

var (
	// ErrNotFound reports a catalog or import-run lookup miss.
	ErrNotFound = errors.New("not found")

	// ErrEmptyMessage reports a message with neither text nor caption.
	ErrEmptyMessage = errors.New("message has no text or caption")

	// ErrNoProductData reports a message no parse strategy matched.
	ErrNoProductData = errors.New("no product data extracted")

	// ErrIncomplete reports an extraction missing its name or price.
	ErrIncomplete = errors.New("incomplete product information")
)
