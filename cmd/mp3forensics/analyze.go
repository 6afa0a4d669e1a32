package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/mp3forensics"
)

var errAnalyzeArgs = errors.New("expected exactly one argument: file path")

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Analyze a single audio file for transcode evidence",
		ArgsUsage: "<file>",
		Flags:     commonFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errAnalyzeArgs, cmd.NArg())
			}

			configureLogging(cmd)

			filePath := cmd.Args().First()
			opts := optionsFromFlags(cmd)

			result, err := mp3forensics.Analyze(ctx, filePath, opts)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			if !cmd.Bool("quiet") {
				if err := printResult(result, cmd.String("format"), cmd.String("output")); err != nil {
					return err
				}
			}

			if code := exitCode(result.Verdict); code != 0 {
				return &exitStatus{code: code}
			}

			return nil
		},
	}
}
