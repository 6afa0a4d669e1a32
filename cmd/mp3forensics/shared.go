package main

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/mp3forensics"
	"github.com/farcloser/mp3forensics/internal/fusion"
	"github.com/farcloser/mp3forensics/internal/types"
)

// exitStatus carries a non-error process exit code out of a cli.Command
// Action, so main can os.Exit with it without conflating a verdict outcome
// with a run failure.
type exitStatus struct {
	code int
}

func (e *exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// commonFlags are shared between the analyze and batch subcommands, per
// spec.md §6's CLI surface.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.FloatFlag{
			Name:  "threshold",
			Usage: "Transcode verdict threshold on the combined 0-100 score",
			Value: fusion.DefaultThresholds().Transcode,
		},
		&cli.BoolFlag{
			Name:  "no-spectral",
			Usage: "Skip PCM decode and spectral scoring; binary evidence only",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Enable debug logging",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Suppress per-file console output",
		},
		&cli.StringFlag{
			Name:  "output",
			Usage: "Write results to this path instead of stdout",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "Output format: console, json, markdown",
			Value: "console",
		},
	}
}

func optionsFromFlags(cmd *cli.Command) mp3forensics.Options {
	opts := mp3forensics.DefaultOptions()
	opts.Thresholds.Transcode = cmd.Float("threshold")
	opts.SkipSpectral = cmd.Bool("no-spectral")

	return opts
}

func configureLogging(cmd *cli.Command) {
	level := slog.LevelInfo

	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}

	if cmd.Bool("quiet") {
		level = slog.LevelError
	}

	slog.SetLogLoggerLevel(level)
}

// exitCode maps the worst verdict seen in a run to the process exit code
// spec.md §6 defines: 0 clean, 1 any SUSPECT (no TRANSCODE), 2 any
// TRANSCODE.
func exitCode(worst types.Verdict) int {
	switch worst {
	case types.VerdictTranscode:
		return 2
	case types.VerdictSuspect:
		return 1
	default:
		return 0
	}
}

// worstVerdict folds a new verdict into the running worst-of-batch
// verdict; TRANSCODE outranks SUSPECT outranks OK/ERROR.
func worstVerdict(current, next types.Verdict) types.Verdict {
	if verdictRank(next) > verdictRank(current) {
		return next
	}

	return current
}

func verdictRank(v types.Verdict) int {
	switch v {
	case types.VerdictTranscode:
		return 2
	case types.VerdictSuspect:
		return 1
	default:
		return 0
	}
}
