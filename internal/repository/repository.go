package repository

import "errors"

// ErrNotFound is returned when a document does not exist. Controllers map it
// to 404.
var ErrNotFound = errors.New("document not found")
