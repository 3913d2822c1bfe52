package database

import "errors"

// ErrDuplicate is returned by Create methods when a unique index rejects the document.
var ErrDuplicate = errors.New("duplicate key")
