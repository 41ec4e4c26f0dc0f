// Package main provides the tagtool CLI for inspecting and editing audio
// tag metadata across the APE, MPEG, and Ogg (Vorbis/Opus/Speex)
// container families.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/primordium/app"

	"github.com/jpalus/taglib/version"
)

func main() {
	ctx := context.Background()
	app.New(ctx, version.Name())

	appl := &cli.Command{
		Name:    version.Name(),
		Usage:   "Audio tag inspection and editing CLI",
		Version: version.Version() + " (" + version.Commit() + " - " + version.Date() + ")",
		Commands: []*cli.Command{
			dumpCommand(),
			setCommand(),
			stripCommand(),
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)

		os.Exit(1)
	}
}
