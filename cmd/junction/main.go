//go:build windows
// +build windows

package main

import (
	"fmt"
	"os"

	winio "github.com/Microsoft/go-winio"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"go.opencensus.io/trace"

	"github.com/zanieb/junction/internal/oc"
)

func main() {
	app := cli.NewApp()
	app.Name = "junction"
	app.Usage = "manage NTFS directory junctions"
	app.Commands = []cli.Command{
		createCommand,
		removeCommand,
		existsCommand,
		targetCommand,
		layerCreateCommand,
		layerVerifyCommand,
	}
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug output and span logging",
		},
	}
	app.Before = func(context *cli.Context) error {
		if context.GlobalBool("debug") {
			logrus.SetLevel(logrus.DebugLevel)
			trace.RegisterExporter(&oc.LogrusExporter{})
			trace.ApplyConfig(trace.Config{DefaultSampler: oc.DefaultSampler})
		}
		// Reparse point manipulation on directories we don't own needs
		// backup/restore privileges.
		return winio.EnableProcessPrivileges([]string{winio.SeBackupPrivilege, winio.SeRestorePrivilege})
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
