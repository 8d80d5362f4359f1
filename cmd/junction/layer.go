//go:build windows
// +build windows

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/zanieb/junction"
	"github.com/zanieb/junction/internal/appargs"
)

// The layer-create / layer-verify pair checks that a junction survives a
// container image layer snapshot. Run layer-create in one Dockerfile RUN step
// and layer-verify in the next; a reparse point with an empty print name
// loses its target during layer serialization and fails the verify step.

const (
	layerMarkerName    = "marker.txt"
	layerMarkerContent = "junction-layer-ok"
)

var layerCreateCommand = cli.Command{
	Name:      "layer-create",
	Usage:     "creates a junction plus a marker file for cross-layer verification",
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

		if err := os.MkdirAll(target, 0777); err != nil {
			return errors.Wrap(err, "failed to create target directory")
		}
		if err := os.WriteFile(filepath.Join(target, layerMarkerName), []byte(layerMarkerContent), 0666); err != nil {
			return errors.Wrap(err, "failed to write marker file")
		}
		if err := junction.Create(target, path); err != nil {
			return errors.Wrap(err, "failed to create junction")
		}

		// Verify within this layer before the snapshot gets a chance to
		// break anything.
		if err := verifyJunction(path, target); err != nil {
			return errors.Wrap(err, "junction broken in the layer that created it")
		}
		fmt.Printf("created junction %s -> %s\n", path, target)
		return nil
	},
}

var layerVerifyCommand = cli.Command{
	Name:      "layer-verify",
	Usage:     "verifies a junction made by layer-create survived a layer snapshot",
	ArgsUsage: "<junction path> <expected target>",
	Before:    appargs.Validate(appargs.NonEmptyString, appargs.NonEmptyString),
	Action: func(context *cli.Context) error {
		path, err := filepath.Abs(context.Args().Get(0))
		if err != nil {
			return err
		}
		target, err := filepath.Abs(context.Args().Get(1))
		if err != nil {
			return err
		}
		if err := verifyJunction(path, target); err != nil {
			return errors.Wrap(err, "junction did not survive the layer snapshot")
		}
		fmt.Printf("junction %s -> %s intact\n", path, target)
		return nil
	},
}

func verifyJunction(path, target string) error {
	ok, err := junction.Exists(path)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Errorf("%s is not a junction", path)
	}
	resolved, err := junction.GetTarget(path)
	if err != nil {
		return err
	}
	if !strings.EqualFold(resolved, target) {
		return errors.Errorf("junction resolves to %s, expected %s", resolved, target)
	}
	data, err := os.ReadFile(filepath.Join(path, layerMarkerName))
	if err != nil {
		return errors.Wrap(err, "failed to read marker through junction")
	}
	if string(data) != layerMarkerContent {
		return errors.Errorf("marker content mismatch: %q", data)
	}
	return nil
}
