package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/mp3forensics/version"
)

func main() {
	ctx := context.Background()

	appl := &cli.Command{
		Name:    version.Name(),
		Usage:   "MP3 transcode-forensics detector",
		Version: version.Version() + " " + version.Commit(),
		Commands: []*cli.Command{
			analyzeCommand(),
			batchCommand(),
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		var es *exitStatus
		if errors.As(err, &es) {
			os.Exit(es.code)
		}

		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}
