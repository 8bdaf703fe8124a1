// Package repository implements data access over database/sql.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist. For
// per-owner resources it also covers rows owned by a different user, so
// callers cannot probe for the existence of foreign records.
var ErrNotFound = errors.New("not found")
