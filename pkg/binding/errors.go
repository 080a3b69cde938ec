package binding

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownConstructor is returned when no constructor has the requested name
	ErrUnknownConstructor = errors.New("unknown constructor")

	// ErrDuplicateConstructor is returned when a module registers a name twice
	ErrDuplicateConstructor = errors.New("constructor already registered")

	// ErrAmbiguousConstructor is returned when a bare name matches constructors
	// of several modules
	ErrAmbiguousConstructor = errors.New("ambiguous constructor name")

	// ErrStubFileCollision is returned when two modules share a stub file name
	ErrStubFileCollision = errors.New("stub file name collision")

	// ErrMissingArgument is returned when a required argument was not supplied
	ErrMissingArgument = errors.New("missing required argument")

	// ErrInvalidArgument is returned when an argument has the wrong shape or value
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnexpectedArgument is returned for keyword arguments no parameter accepts
	ErrUnexpectedArgument = errors.New("unexpected keyword argument")
)

// ArgumentError reports a problem with one host keyword argument
type ArgumentError struct {
	Constructor string // wrapper name, empty when unknown at the failure site
	Argument    string // host-side argument name
	Kind        error  // one of the Err* sentinels
	Err         error  // underlying conversion error, may be nil
}

// Error implements the error interface
func (e *ArgumentError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Argument)
	if e.Constructor != "" {
		msg = e.Constructor + "(): " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel and the underlying cause
func (e *ArgumentError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// MissingArgument is used by generated code when the factory argument is absent
func MissingArgument(constructor, argument string) error {
	return &ArgumentError{Constructor: constructor, Argument: argument, Kind: ErrMissingArgument}
}

// InvalidArgument wraps a failed conversion of one argument
func InvalidArgument(argument string, err error) error {
	return &ArgumentError{Argument: argument, Kind: ErrInvalidArgument, Err: err}
}

func typeMismatch(argument, want string, got any) error {
	return InvalidArgument(argument, fmt.Errorf("expected %s, got %T", want, got))
}
