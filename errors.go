package phonofix

import "fmt"

// Kind enumerates the error taxonomy from the design's error handling
// section. It identifies the category of failure, not the Go type: every
// error returned across the package boundary is a *Error with one of these
// Kinds, so callers branch on Kind rather than on concrete types.
type Kind int

const (
	// InvalidInput marks a malformed term dictionary: empty canonical,
	// non-string alias, or a weight outside [0,1]. Always raised at
	// CreateCorrector, never during Correct.
	InvalidInput Kind = iota

	// BackendUnavailable marks a missing or mis-configured phonetic engine.
	// Raised at first use unless FailPolicy is FailDegrade, in which case
	// the Corrector becomes pass-through instead.
	BackendUnavailable

	// FuzzyError marks a transient failure converting a single span to its
	// phonetic key. During Correct it is always recovered locally: the
	// offending window is treated as non-matching. During CreateCorrector it
	// is returned under FailRaise; under FailDegrade the affected term keeps
	// exact-surface matching only.
	FuzzyError

	// ResourceLimit marks a protected-term set or variant set that exceeds
	// a configured bound.
	ResourceLimit
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case BackendUnavailable:
		return "BackendUnavailable"
	case FuzzyError:
		return "FuzzyError"
	case ResourceLimit:
		return "ResourceLimit"
	default:
		return "Unknown"
	}
}

// Error is the single error type used across the phonofix public API.
type Error struct {
	Kind    Kind
	Message string
	Hint    string // install/remediation hint, set for BackendUnavailable
	Cause   error
}

func (e *Error) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("phonofix: %s: %s (%s)", e.Kind, e.Message, e.Hint)
	}
	if e.Cause != nil {
		return fmt.Sprintf("phonofix: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("phonofix: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Kind, so that
// errors.Is(err, &Error{Kind: BackendUnavailable}) style checks work without
// requiring callers to know the Message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func unavailable(lang, message, hint string) *Error {
	return &Error{
		Kind:    BackendUnavailable,
		Message: fmt.Sprintf("%s backend unavailable: %s", lang, message),
		Hint:    hint,
	}
}

// NewBackendUnavailable lets a lang/<code> backend construct a
// BackendUnavailable *Error with an install/remediation hint, without
// exposing the *Error struct's internals as something callers should build
// by hand.
func NewBackendUnavailable(lang, message, hint string) *Error {
	return unavailable(lang, message, hint)
}
