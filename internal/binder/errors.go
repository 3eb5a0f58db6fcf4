package binder

import "errors"

var (
	// ErrMissingContentType is returned when the request has no Content-Type header.
	ErrMissingContentType = errors.New("missing content type")
	// ErrUnsupportedMediaType is returned for content types the binder does not handle.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	// ErrFailedToParseForm is returned when the body or target is invalid.
	ErrFailedToParseForm = errors.New("failed to parse form")
)
