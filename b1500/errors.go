package b1500

import "errors"

var (
	// ErrValidation indicates that a caller-supplied value is outside its
	// declared range, resolution or kind. No command is built or sent.
	ErrValidation = errors.New("validation error")

	// ErrTypeMismatch indicates that an operation conflicts with the kind of
	// the cached configuration, e.g. forcing voltage while the configured
	// output range is a current range.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrState indicates that a derived value was requested before the
	// configuration it depends on was supplied.
	ErrState = errors.New("state error")

	// ErrParse indicates that a response line does not match the grammar of
	// the query that produced it.
	ErrParse = errors.New("parse error")
)
