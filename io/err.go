package io

import (
	"errors"

	"github.com/ezrec/x8000/translate"
)

var f = translate.From

var (
	// Console errors
	ErrFdInvalid     = errors.New(f("file descriptor invalid"))
	ErrStreamMissing = errors.New(f("stream not attached"))
)

// ErrFd is the descriptor of a failed console operation.
type ErrFd int64

func (err ErrFd) Error() string {
	return f("fd %d", int64(err))
}
