// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package pipelineerr holds the sentinel errors and the aggregating
// PhaseError type shared by every internal/pipeline phase. Phases never
// stop at the first failure; they collect every error they can find and
// report all of them through a single PhaseError, mirroring the
// aggregation already used in internal/specs, internal/ir, and
// internal/validate.
package pipelineerr

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions a caller may want to match with
// errors.Is without string-matching error text.
var (
	ErrSpecNotFound          = errors.New("pipelineerr: spec not found")
	ErrCacheMiss             = errors.New("pipelineerr: cache miss")
	ErrUnresolvedReference   = errors.New("pipelineerr: unresolved reference")
	ErrEnumDefaultNotAllowed = errors.New("pipelineerr: enum default not in allowed values")
	ErrNoTemplateForRecord   = errors.New("pipelineerr: no template registered for record")
	ErrAborted               = errors.New("pipelineerr: aborted by context cancellation")
)

// PhaseError aggregates every error one pipeline phase produced. A phase
// that found zero errors never constructs one; Wrap returns nil for an
// empty slice so callers can unconditionally call it at the end of a
// phase and treat a nil result as success.
type PhaseError struct {
	Phase string
	Errs  []error
}

// Wrap returns nil if errs is empty and otherwise a *PhaseError aggregating
// all of them, even when errs has a single element.
func Wrap(phase string, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &PhaseError{Phase: phase, Errs: errs}
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("pipeline: phase %q failed with %d error(s): %s", e.Phase, len(e.Errs), e.Errs[0])
}

// Unwrap exposes every wrapped error so errors.Is/errors.As can reach
// past the aggregate.
func (e *PhaseError) Unwrap() []error {
	return e.Errs
}
