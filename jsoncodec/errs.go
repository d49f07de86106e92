package jsoncodec

import "errors"

var (
	// ErrValidation marks malformed call-site input: a value shape the
	// selected mode cannot accept.
	ErrValidation = errors.New("json validation error")
	// ErrParse marks JSON text that does not parse, or a value that
	// fails the high-fidelity structural contract.
	ErrParse = errors.New("json parse error")
)
