package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/jpalus/taglib"
)

func stripCommand() *cli.Command {
	return &cli.Command{
		Name:      "strip",
		Usage:     "Remove tag blocks and save",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "ape", Usage: "remove the APEv2 tag"},
			&cli.BoolFlag{Name: "id3v1", Usage: "remove the ID3v1 tag"},
			&cli.BoolFlag{Name: "id3v2", Usage: "remove the ID3v2 header block"},
		},
		Action: runStrip,
	}
}

func runStrip(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
	}

	path := cmd.Args().First()

	stream, err := taglib.OpenFile(path, false)
	if err != nil {
		return err
	}

	defer func() {
		if closer, ok := stream.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}()

	coord, fam, err := openCoordinator(stream)
	if err != nil {
		return err
	}

	s, ok := coord.(stripper)
	if !ok {
		return fmt.Errorf("%s files have nothing strippable by kind", fam)
	}

	var kinds []taglib.Kind
	if cmd.Bool("ape") {
		kinds = append(kinds, taglib.KindAPE)
	}

	if cmd.Bool("id3v1") {
		kinds = append(kinds, taglib.KindID3v1)
	}

	if cmd.Bool("id3v2") {
		kinds = append(kinds, taglib.KindID3v2)
	}

	s.Strip(kinds...)

	if err := coord.Save(); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	return nil
}
