// Package result provides a two-variant outcome type: either a value or an error.
package result

import "errors"

// Result holds either a successful value or the error that prevented one.
// The zero value is a failure with no error attached; use Ok or Fail to build one.
type Result[T any] struct {
	ok    bool
	value T
	err   error
}

// Ok wraps a successful value.
func Ok[T any](value T) Result[T] {
	return Result[T]{ok: true, value: value}
}

// Fail wraps an error. A nil error is replaced so the failure always carries one.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = errors.New("unknown error")
	}
	return Result[T]{err: err}
}

// FailMessage builds a failure from a plain message.
func FailMessage[T any](msg string) Result[T] {
	return Fail[T](errors.New(msg))
}

// OK reports whether the result is the success variant.
func (r Result[T]) OK() bool { return r.ok }

// Value returns the success value, or the zero value of T for a failure.
func (r Result[T]) Value() T {
	if !r.ok {
		var zero T
		return zero
	}
	return r.value
}

// Err returns the failure's error, or nil for a success.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	if r.err == nil {
		return errors.New("unknown error")
	}
	return r.err
}

// Error returns the failure message, or "" for a success.
func (r Result[T]) Error() string {
	if err := r.Err(); err != nil {
		return err.Error()
	}
	return ""
}

// Unwrap converts the result into Go's usual (value, error) pair.
func (r Result[T]) Unwrap() (T, error) {
	return r.Value(), r.Err()
}

// Map transforms a success value with fn; failures pass through untouched.
// fn itself may fail, in which case its error becomes the failure.
func Map[T, U any](r Result[T], fn func(T) (U, error)) Result[U] {
	if !r.ok {
		return Fail[U](r.Err())
	}
	u, err := fn(r.value)
	if err != nil {
		return Fail[U](err)
	}
	return Ok(u)
}
