// Package io provides the host streams behind the x8000 WRITE and READ
// syscalls.
package io

import (
	"errors"
	"io"
	"os"

	"github.com/ezrec/x8000/cpu"
)

// Console maps the x8000 file descriptors onto host streams.
// STDOUT and STDERR are write-only, STDIN is read-only.
type Console struct {
	Input  io.Reader
	Output io.Writer
	Error  io.Writer
}

var _ cpu.Console = (*Console)(nil)

// NewConsole attaches to the process standard streams.
func NewConsole() *Console {
	return &Console{
		Input:  os.Stdin,
		Output: os.Stdout,
		Error:  os.Stderr,
	}
}

func (con *Console) writer(fd int64) (w io.Writer, err error) {
	switch fd {
	case cpu.FD_STDOUT:
		w = con.Output
	case cpu.FD_STDERR:
		w = con.Error
	default:
		err = errors.Join(ErrFdInvalid, ErrFd(fd))
		return
	}

	if w == nil {
		err = errors.Join(ErrStreamMissing, ErrFd(fd))
	}

	return
}

// Write all of data to the stream for fd.
func (con *Console) Write(fd int64, data []byte) (err error) {
	w, err := con.writer(fd)
	if err != nil {
		return
	}

	if len(data) == 0 {
		return
	}

	_, err = w.Write(data)

	return
}

// Read performs a single read from the stream for fd, so a short count is
// normal. End of input is a zero count, not an error.
func (con *Console) Read(fd int64, data []byte) (n int, err error) {
	if fd != cpu.FD_STDIN {
		err = errors.Join(ErrFdInvalid, ErrFd(fd))
		return
	}

	if con.Input == nil {
		err = errors.Join(ErrStreamMissing, ErrFd(fd))
		return
	}

	n, err = con.Input.Read(data)
	if errors.Is(err, io.EOF) {
		err = nil
	}

	return
}
