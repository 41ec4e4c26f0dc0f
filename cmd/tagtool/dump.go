package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/jpalus/taglib"
)

var errInvalidArgCount = errors.New("expected exactly one argument: file path")

func dumpCommand() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "Print a file's tag properties and audio properties",
		ArgsUsage: "<file>",
		Action:    runDump,
	}
}

func runDump(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
	}

	path := cmd.Args().First()

	stream, err := taglib.OpenFile(path, true)
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

	out := colorable.NewColorable(os.Stdout)
	colorize := isatty.IsTerminal(os.Stdout.Fd())

	header := fmt.Sprintf("%s (%s)", path, fam)
	if colorize {
		header = "\x1b[1m" + header + "\x1b[0m"
	}

	fmt.Fprintln(out, header)

	if reporter, ok := coord.(audioReporter); ok {
		props := reporter.AudioProperties()
		fmt.Fprintf(out, "  length:     %d ms\n", props.LengthMS)
		fmt.Fprintf(out, "  bitrate:    %d kbps\n", props.BitrateKbps)
		fmt.Fprintf(out, "  sample rate: %d Hz\n", props.SampleRate)
		fmt.Fprintf(out, "  channels:   %d\n", props.Channels)
	}

	keys := make([]string, 0, len(coord.Properties()))
	for k := range coord.Properties() {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	props := coord.Properties()
	for _, k := range keys {
		for _, v := range props[k] {
			label := k
			if colorize {
				label = "\x1b[36m" + k + "\x1b[0m"
			}

			fmt.Fprintf(out, "  %s = %s\n", label, v)
		}
	}

	return nil
}
