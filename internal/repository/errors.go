package repository

import "errors"

// ErrNotFound covers both a genuinely missing row and a row owned by another
// tenant. Callers must not be able to tell the two apart.
var ErrNotFound = errors.New("not found")
