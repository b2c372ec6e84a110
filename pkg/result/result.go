// Package result models the outcome of an operation as a tagged union:
// either a success payload or an error message with an optional partial
// payload. Callers must discriminate the variant before reading a payload.
package result

import "fmt"

// Kind identifies which variant a Result holds.
type Kind uint8

const (
	// KindInvalid is the zero value; it never comes out of a constructor.
	KindInvalid Kind = iota
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "invalid"
	}
}

// Result holds exactly one of Success(value) or Error(message, data).
type Result[T any] struct {
	kind    Kind
	value   T
	message string
	data    *T
}

// Success wraps a completed payload.
func Success[T any](value T) Result[T] {
	return Result[T]{kind: KindSuccess, value: value}
}

// Error wraps a failure message and an optional partial payload.
func Error[T any](message string, data *T) Result[T] {
	return Result[T]{kind: KindError, message: message, data: data}
}

// Kind reports the populated variant.
func (r Result[T]) Kind() Kind { return r.kind }

func (r Result[T]) IsSuccess() bool { return r.kind == KindSuccess }
func (r Result[T]) IsError() bool   { return r.kind == KindError }

// Get returns the success payload and true, or the zero value and false.
func (r Result[T]) Get() (T, bool) {
	if r.kind != KindSuccess {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Value returns the success payload. It panics when r is not a success.
func (r Result[T]) Value() T {
	r.must(KindSuccess)
	return r.value
}

// Message returns the error message. It panics when r is not an error.
func (r Result[T]) Message() string {
	r.must(KindError)
	return r.message
}

// Data returns the partial payload carried by an error, if any.
// It panics when r is not an error.
func (r Result[T]) Data() (T, bool) {
	r.must(KindError)
	if r.data == nil {
		var zero T
		return zero, false
	}
	return *r.data, true
}

// Err returns nil for a success and a *Failure for an error.
func (r Result[T]) Err() error {
	switch r.kind {
	case KindSuccess:
		return nil
	case KindError:
		return &Failure{Message: r.message}
	default:
		return &Failure{Message: "invalid result"}
	}
}

func (r Result[T]) String() string {
	switch r.kind {
	case KindSuccess:
		return fmt.Sprintf("Success(%v)", r.value)
	case KindError:
		return fmt.Sprintf("Error(%q)", r.message)
	default:
		return "Invalid"
	}
}

func (r Result[T]) must(want Kind) {
	if r.kind != want {
		panic(fmt.Sprintf("result: %s accessor used on %s result", want, r.kind))
	}
}

// Match calls exactly one of the handlers depending on the variant.
// Both handlers are required; a zero Result panics.
func Match[T, R any](r Result[T], onSuccess func(T) R, onError func(message string, data *T) R) R {
	switch r.kind {
	case KindSuccess:
		return onSuccess(r.value)
	case KindError:
		return onError(r.message, r.data)
	default:
		panic("result: match on invalid result")
	}
}

// Failure is the error form of an Error result.
type Failure struct {
	Message string
}

func (f *Failure) Error() string { return f.Message }
