package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies errors surfaced by the core.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindInvalidTransition
	KindNotFound
	KindConflict
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("conflict")
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindInvalidTransition:
		return ErrInvalidTransition
	case KindNotFound:
		return ErrObjectNotFound
	case KindConflict:
		return ErrConflict
	default:
		return nil
	}
}

// Error is the single tagged error type of the core. Fields holds the field
// errors of a validation failure and is empty for the other kinds.
type Error struct {
	Kind    Kind
	Message string
	Fields  []error
	Cause   error
}

// NewValidationError collects field errors into one validation failure.
// Nil entries are dropped.
func NewValidationError(message string, fields ...error) *Error {
	collected := make([]error, 0, len(fields))
	for _, f := range fields {
		if f != nil {
			collected = append(collected, f)
		}
	}
	return &Error{Kind: KindValidation, Message: message, Fields: collected}
}

// NewInvalidTransitionError reports a status change the state machine forbids.
func NewInvalidTransitionError(from, to fmt.Stringer) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("%s -> %s is not allowed", from, to),
	}
}

func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NewConflictErrorWithCause(message string, cause error) *Error {
	return &Error{Kind: KindConflict, Message: message, Cause: cause}
}

func NewNotFoundError(paramName string, id any) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s %v", paramName, sanitize(id)),
		Cause:   NewObjectNotFoundError(paramName, id),
	}
}

func (e *Error) Error() string {
	var b strings.Builder
	if s := e.Kind.sentinel(); s != nil {
		b.WriteString(s.Error())
	} else {
		b.WriteString("error")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.Error())
		}
		b.WriteString(" [")
		b.WriteString(strings.Join(parts, "; "))
		b.WriteString("]")
	}
	if e.Cause != nil && e.Kind != KindNotFound {
		fmt.Fprintf(&b, " (cause: %v)", e.Cause)
	}
	return b.String()
}

// Unwrap exposes the kind sentinel, every field error and the cause so that
// errors.Is matches on any of them.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, len(e.Fields)+2)
	if s := e.Kind.sentinel(); s != nil {
		out = append(out, s)
	}
	out = append(out, e.Fields...)
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	return out
}

// FieldNames lists ParamName of every field error that has one.
func (e *Error) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if name := paramName(f); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// KindOf classifies err. Bare field errors, including joined ones returned by
// domain constructors, count as validation failures.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}
	switch {
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	default:
		return KindUnknown
	}
}

func paramName(err error) string {
	var (
		required *ValueIsRequiredError
		invalid  *ValueIsInvalidError
		ranged   *ValueIsOutOfRangeError
	)
	switch {
	case errors.As(err, &required):
		return required.ParamName
	case errors.As(err, &invalid):
		return invalid.ParamName
	case errors.As(err, &ranged):
		return ranged.ParamName
	default:
		return ""
	}
}
