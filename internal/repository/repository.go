// Package repository contains metadata-store abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
package repository

import "errors"

// ErrMultipleRows is returned by single-match lookups that find more than one row.
var ErrMultipleRows = errors.New("multiple rows matched")
