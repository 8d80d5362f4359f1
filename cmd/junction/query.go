//go:build windows
// +build windows

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/zanieb/junction"
	"github.com/zanieb/junction/internal/appargs"
)

var existsCommand = cli.Command{
	Name:      "exists",
	Usage:     "reports whether the path is a junction; exits non-zero when it is not",
	ArgsUsage: "<junction path>",
	Before:    appargs.Validate(appargs.NonEmptyString),
	Action: func(context *cli.Context) error {
		path, err := filepath.Abs(context.Args().First())
		if err != nil {
			return err
		}
		ok, err := junction.Exists(path)
		if err != nil {
			return err
		}
		fmt.Println(ok)
		if !ok {
			os.Exit(1)
		}
		return nil
	},
}

var targetCommand = cli.Command{
	Name:      "target",
	Usage:     "prints the directory the junction points at",
	ArgsUsage: "<junction path>",
	Before:    appargs.Validate(appargs.NonEmptyString),
	Action: func(context *cli.Context) error {
		path, err := filepath.Abs(context.Args().First())
		if err != nil {
			return err
		}
		target, err := junction.GetTarget(path)
		if err != nil {
			return err
		}
		_, err = fmt.Println(target)
		return err
	},
}
