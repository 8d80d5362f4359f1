//go:build windows
// +build windows

package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/zanieb/junction"
	"github.com/zanieb/junction/internal/appargs"
)

var removeCommand = cli.Command{
	Name:      "remove",
	Usage:     "removes a junction, optionally deleting the directory left behind",
	ArgsUsage: "<junction path>",
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "rmdir",
			Usage: "also remove the empty carrier directory",
		},
	},
	Before: appargs.Validate(appargs.NonEmptyString),
	Action: func(context *cli.Context) error {
		path, err := filepath.Abs(context.Args().First())
		if err != nil {
			return err
		}
		if err := junction.Delete(path); err != nil {
			return err
		}
		if context.Bool("rmdir") {
			return os.Remove(path)
		}
		return nil
	},
}
