package main

import (
	"fmt"
	"io"
	"os"

	"github.com/farcloser/primordium/format"

	"github.com/farcloser/mp3forensics/internal/output"
	"github.com/farcloser/mp3forensics/internal/types"
)

// printResult renders one analysis result through the requested formatter,
// to stdout or to outputPath when set.
func printResult(result *types.AnalysisResult, formatName, outputPath string) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return fmt.Errorf("resolving output format: %w", err)
	}

	data := &format.Data{
		Object: result.FilePath,
		Meta:   output.ResultToMap(result),
	}

	writer, closeWriter, err := resolveWriter(outputPath)
	if err != nil {
		return err
	}
	defer closeWriter()

	return formatter.PrintAll([]*format.Data{data}, writer) //nolint:wrapcheck
}

func resolveWriter(outputPath string) (io.Writer, func(), error) {
	if outputPath == "" {
		return os.Stdout, func() {}, nil
	}

	//nolint:gosec // outputPath is caller-provided via --output, not derived from untrusted input
	f, err := os.OpenFile(outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, func() {}, fmt.Errorf("opening output file: %w", err)
	}

	return f, func() { f.Close() }, nil
}
