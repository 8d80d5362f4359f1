//go:build windows
// +build windows

package main

import (
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/zanieb/junction"
	"github.com/zanieb/junction/internal/appargs"
)

var createCommand = cli.Command{
	Name:      "create",
	Usage:     "creates a junction pointing at the target directory",
	ArgsUsage: "<target dir> <junction path>",
	Before:    appargs.Validate(appargs.NonEmptyString, appargs.NonEmptyString),
	Action: func(context *cli.Context) error {
		target, err := filepath.Abs(context.Args().Get(0))
		if err != nil {
			return err
		}
		path, err := filepath.Abs(context.Args().Get(1))
		if err != nil {
			return err
		}
		return junction.Create(target, path)
	},
}
