package internal

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArgs(t *testing.T) {
	table := [](struct {
		arguments []string
		args      []string
		output    string
		verbose   bool
	}){
		{[]string{}, nil, "", false},
		{[]string{"in.s"}, []string{"in.s"}, "", false},
		{[]string{"in.s", "-o", "out"}, []string{"in.s"}, "out", false},
		{[]string{"-o", "out", "in.s"}, []string{"in.s"}, "out", false},
		{[]string{"a", "-v", "b", "-o", "out"}, []string{"a", "b"}, "out", true},
		{[]string{"a", "--", "-v"}, []string{"a", "-v"}, "", false},
	}

	for _, entry := range table {
		assert := assert.New(t)

		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		output := fs.String("o", "", "output")
		verbose := fs.Bool("v", false, "verbose")

		args, err := ParseArgs(fs, entry.arguments)
		assert.NoError(err, entry.arguments)
		assert.Equal(entry.args, args, entry.arguments)
		assert.Equal(entry.output, *output, entry.arguments)
		assert.Equal(entry.verbose, *verbose, entry.arguments)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	_, err := ParseArgs(fs, []string{"in.s", "-x"})
	assert.Error(t, err)
}

func TestNewFlagSet(t *testing.T) {
	assert := assert.New(t)

	fs := NewFlagSet("tasm")
	fs.SetOutput(io.Discard)
	assert.Equal("tasm", fs.Name())
	assert.Equal(flag.ContinueOnError, fs.ErrorHandling())

	// A bad flag is returned, not fatal.
	fs.String("o", "", "output")
	_, err := ParseArgs(fs, []string{"in.s", "-o"})
	assert.Error(err)
	_, err = ParseArgs(fs, []string{"-bogus"})
	assert.Error(err)

	assert.Equal(1, EXIT_USAGE)
}
