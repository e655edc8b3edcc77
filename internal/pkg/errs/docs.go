// Package errs provides standardized error types for the ordering application.
//
// Two layers live here:
//
// Field errors describe a single bad parameter and follow one pattern each:
// a sentinel (ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange,
// ErrObjectNotFound), a struct carrying the details, constructors with and
// without cause, and an Unwrap that returns the sentinel.
//
// Error is the tagged error surfaced by the core. Its Kind is one of
// Validation, InvalidTransition, NotFound or Conflict, and a validation
// failure carries every offending field error in Fields. KindOf classifies
// any error produced by the core so adapters can translate it without
// knowing the concrete types.
package errs
