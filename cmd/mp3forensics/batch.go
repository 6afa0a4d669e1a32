package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/mp3forensics"
	"github.com/farcloser/mp3forensics/internal/types"
	"github.com/farcloser/mp3forensics/internal/walk"
)

var errBatchArgs = errors.New("expected exactly one argument: directory path")

func batchCommand() *cli.Command {
	flags := append(commonFlags(), &cli.IntFlag{
		Name:  "jobs",
		Usage: "Number of files analyzed concurrently (0 = unbounded)",
		Value: runtime.GOMAXPROCS(0),
	})

	return &cli.Command{
		Name:      "batch",
		Usage:     "Walk a directory and analyze every recognized audio file",
		ArgsUsage: "<directory>",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errBatchArgs, cmd.NArg())
			}

			configureLogging(cmd)

			root := cmd.Args().First()
			walkOpts := walk.Options{Jobs: cmd.Int("jobs")}

			files, err := walk.Discover(root, walkOpts)
			if err != nil {
				return fmt.Errorf("discovering files: %w", err)
			}

			opts := optionsFromFlags(cmd)

			var (
				mu    sync.Mutex
				worst types.Verdict
			)

			quiet := cmd.Bool("quiet")
			formatName := cmd.String("format")
			outputPath := cmd.String("output")

			analyzeErr := walk.Analyze(ctx, files, walkOpts, func(ctx context.Context, path string) error {
				result, err := mp3forensics.Analyze(ctx, path, opts)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				mu.Lock()
				defer mu.Unlock()

				worst = worstVerdict(worst, result.Verdict)

				if quiet {
					return nil
				}

				return printResult(result, formatName, outputPath)
			})
			if analyzeErr != nil {
				return fmt.Errorf("batch analysis failed: %w", analyzeErr)
			}

			if code := exitCode(worst); code != 0 {
				return &exitStatus{code: code}
			}

			return nil
		},
	}
}
