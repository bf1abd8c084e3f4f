package domain

import "errors"

// ErrDocumentNotFound is returned when a document ID cannot be found in a store.
var ErrDocumentNotFound = errors.New("document not found")

// ErrInvalidDocumentID is returned for empty or malformed document IDs.
var ErrInvalidDocumentID = errors.New("invalid document id")
