package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/x8000/cpu"
)

func TestConsole_Write(t *testing.T) {
	assert := assert.New(t)

	var stdout, stderr bytes.Buffer
	con := &Console{Output: &stdout, Error: &stderr}

	assert.NoError(con.Write(cpu.FD_STDOUT, []byte("out")))
	assert.NoError(con.Write(cpu.FD_STDERR, []byte("err")))
	assert.NoError(con.Write(cpu.FD_STDOUT, nil))

	assert.Equal("out", stdout.String())
	assert.Equal("err", stderr.String())

	table := []int64{0, cpu.FD_STDIN, 4, -1}
	for _, fd := range table {
		err := con.Write(fd, []byte("x"))
		assert.ErrorIs(err, ErrFdInvalid, fd)
	}

	assert.Equal("out", stdout.String())
}

func TestConsole_Read(t *testing.T) {
	assert := assert.New(t)

	con := &Console{Input: strings.NewReader("hello")}

	buff := make([]byte, 3)
	n, err := con.Read(cpu.FD_STDIN, buff)
	assert.NoError(err)
	assert.Equal(3, n)
	assert.Equal("hel", string(buff))

	n, err = con.Read(cpu.FD_STDIN, buff)
	assert.NoError(err)
	assert.Equal(2, n)

	n, err = con.Read(cpu.FD_STDIN, buff)
	assert.NoError(err)
	assert.Equal(0, n)

	_, err = con.Read(cpu.FD_STDOUT, buff)
	assert.ErrorIs(err, ErrFdInvalid)
}

func TestConsole_Missing(t *testing.T) {
	assert := assert.New(t)

	con := &Console{}
	assert.ErrorIs(con.Write(cpu.FD_STDOUT, []byte("x")), ErrStreamMissing)

	_, err := con.Read(cpu.FD_STDIN, make([]byte, 1))
	assert.ErrorIs(err, ErrStreamMissing)
}
