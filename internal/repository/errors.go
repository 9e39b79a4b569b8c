// Package repository implements the data access layer over MySQL. Sentinel
// errors defined here let handlers distinguish failure modes without
// inspecting driver error strings.
package repository

import "errors"

// ErrEmailExists is returned when registering with an email that already
// has an account. Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a requested row does not exist. Handlers
// translate this into HTTP 404.
var ErrNotFound = errors.New("not found")
