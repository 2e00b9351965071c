package documents

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is the parent of every request validation error.
	ErrInvalidInput = errors.New("invalid input")

	ErrMissingDocumentType = fmt.Errorf("%w: doc-type is required", ErrInvalidInput)
	ErrUnknownDocumentType = fmt.Errorf("%w: doc-type is not a recognized document type", ErrInvalidInput)
	ErrMissingDocument     = fmt.Errorf("%w: document is required", ErrInvalidInput)
	ErrEmptyDocument       = fmt.Errorf("%w: document is empty", ErrInvalidInput)
	ErrMalformedFileName   = fmt.Errorf("%w: malformed filename", ErrInvalidInput)

	// ErrDocumentTooLarge is returned when the request body exceeds the configured limit.
	ErrDocumentTooLarge = errors.New("document exceeds upload limit")
)
