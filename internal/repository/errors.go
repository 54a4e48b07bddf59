// Package repository contains data access logic separated from HTTP
// handlers.  Sentinel values let handlers distinguish failure
// scenarios without inspecting driver error strings.
package repository

import "errors"

// ErrConflict is returned when a delete or update cannot be performed
// because of dependent records, typically a foreign key constraint.
var ErrConflict = errors.New("conflict")
