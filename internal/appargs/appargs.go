// Package appargs provides validation of positional command line arguments.
package appargs

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Validator validates the leading arguments of a command line and returns
// the number of arguments it consumed, or a negative number if the arguments
// are invalid.
type Validator func(args []string) int

// String is a validator for any single string.
func String(args []string) int {
	if len(args) == 0 {
		return -1
	}
	return 1
}

// NonEmptyString is a validator for a single non-empty string.
func NonEmptyString(args []string) int {
	if len(args) == 0 || args[0] == "" {
		return -1
	}
	return 1
}

// Optional returns a validator that succeeds without consuming anything when
// no arguments remain.
func Optional(v Validator) Validator {
	return func(args []string) int {
		if len(args) == 0 {
			return 0
		}
		return v(args)
	}
}

// Validate returns a function, suitable for a cli.Command's Before hook, that
// runs the validators over the command's arguments in order and rejects the
// command line when a validator fails or arguments are left over.
func Validate(vs ...Validator) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		args := []string(ctx.Args())
		for _, v := range vs {
			n := v(args)
			if n < 0 {
				return errors.New("invalid command line arguments")
			}
			args = args[n:]
		}
		if len(args) != 0 {
			return errors.New("too many command line arguments")
		}
		return nil
	}
}
