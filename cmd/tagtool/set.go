package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/jpalus/taglib"
)

var errInvalidAssignment = errors.New("expected KEY=VALUE")

func setCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Set one or more tag properties and save",
		ArgsUsage: "<file> KEY=VALUE [KEY=VALUE...]",
		Action:    runSet,
	}
}

func runSet(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 2 {
		return fmt.Errorf("%w after the file path: got %d arguments", errInvalidAssignment, cmd.NArg())
	}

	path := cmd.Args().First()

	props := taglib.PropertyMap{}

	for _, arg := range cmd.Args().Slice()[1:] {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("%q: %w", arg, errInvalidAssignment)
		}

		key = strings.ToUpper(key)
		props[key] = append(props[key], value)
	}

	stream, err := taglib.OpenFile(path, false)
	if err != nil {
		return err
	}

	defer func() {
		if closer, ok := stream.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}()

	coord, _, err := openCoordinator(stream)
	if err != nil {
		return err
	}

	coord.SetProperties(props)

	if err := coord.Save(); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	return nil
}
