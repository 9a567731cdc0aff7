// Copyright (c) 2026 Inkwell Authors <hello@inkwell.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound indicates an identifier or slug did not resolve to an
	// existing entity. Surfaced to the caller, never retried here.
	ErrNotFound = errors.New("not found")

	// ErrDriverReadOnly indicates the active storage driver cannot perform
	// mutations (the remote content-API driver is read-only).
	ErrDriverReadOnly = errors.New("storage driver is read-only")

	// ErrInvalidTransition is reserved for stricter state-machine
	// enforcement. Every transition is currently permitted, so no code
	// path returns it today.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// PostError wraps a failure of a post operation with its identifier and
// operation name.
type PostError struct {
	ID  uuid.UUID
	Op  string
	Err error
}

func (e *PostError) Error() string {
	return fmt.Sprintf("post %s: %s: %v", e.Op, e.ID, e.Err)
}

func (e *PostError) Unwrap() error { return e.Err }

// CategoryError wraps a failure of a category operation.
type CategoryError struct {
	ID  uuid.UUID
	Op  string
	Err error
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("category %s: %s: %v", e.Op, e.ID, e.Err)
}

func (e *CategoryError) Unwrap() error { return e.Err }
