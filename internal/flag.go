package internal

import (
	"flag"
)

// EXIT_USAGE is the process exit code for command line errors.
const EXIT_USAGE = 1

// NewFlagSet creates a flag set that reports parse errors to the caller,
// rather than exiting.
func NewFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

// ParseArgs parses arguments with flags and positional arguments
// interleaved, so `tasm input.s -o output` works. Positional arguments are
// returned in order; a "--" ends flag parsing.
func ParseArgs(fs *flag.FlagSet, arguments []string) (args []string, err error) {
	rest := arguments
	for {
		err = fs.Parse(rest)
		if err != nil {
			return
		}

		rest = fs.Args()
		if len(rest) == 0 {
			return
		}

		// flag stops after "--", leaving everything else positional.
		if len(arguments) > len(rest) && arguments[len(arguments)-len(rest)-1] == "--" {
			args = append(args, rest...)
			return
		}

		args = append(args, rest[0])
		rest = rest[1:]
	}
}
