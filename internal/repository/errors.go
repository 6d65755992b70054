// Package repository contains data access logic separated from HTTP
// handlers. This file defines sentinel errors shared across the
// repositories so handlers can map failure scenarios onto the HTTP
// error taxonomy without inspecting driver errors themselves.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a lookup resolves no row. Handlers
// translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a signup collides with the unique
// email index. Handlers translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrSlugExists is returned when a category collides with the unique
// slug index. Handlers translate this into an HTTP 409 response.
var ErrSlugExists = errors.New("category slug already exists")

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062) on some unique index.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
