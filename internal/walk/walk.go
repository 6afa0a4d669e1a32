// Package walk discovers candidate audio files under a directory tree and
// fans analysis out across a bounded worker pool, in the spirit of
// digler's directory scan with an extension filter and a job limit, but
// built on errgroup rather than a hand-rolled channel/WaitGroup pair.
package walk

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// defaultExtensions lists the recognized audio extensions (case-insensitive)
// a walk dispatches for analysis when the caller doesn't specify its own
// filter. Binary-level MP3 evidence only exists for genuine MP3 streams;
// other containers still get a spectral pass and a zero binary score.
var defaultExtensions = []string{
	".flac", ".wav", ".wave", ".aiff", ".aif",
	".mp3", ".m4a", ".aac", ".ogg", ".opus", ".wma", ".alac",
}

// Options configures a directory walk.
type Options struct {
	// Extensions filters which files are handed to Analyze, matched
	// case-insensitively against the file's extension including the dot.
	// Empty means defaultExtensions.
	Extensions []string
	// Jobs bounds how many files are analyzed concurrently. Zero or
	// negative means unbounded (errgroup.SetLimit(-1)).
	Jobs int
}

// Discover walks root and returns every file path matching the configured
// extensions, sorted for deterministic output.
func Discover(root string, opts Options) ([]string, error) {
	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = defaultExtensions
	}

	var matches []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if hasExtension(path, extensions) {
			matches = append(matches, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(matches)

	return matches, nil
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}

	return false
}

// Analyze runs fn over every discovered file using a bounded worker pool.
// fn is called from whichever goroutine picked up that file, so it must be
// safe for concurrent use or otherwise synchronize its own state. The first
// error returned by fn cancels the group's context; Analyze returns that
// error once every in-flight job has finished.
func Analyze(ctx context.Context, files []string, opts Options, fn func(ctx context.Context, path string) error) error {
	group, groupCtx := errgroup.WithContext(ctx)

	if opts.Jobs > 0 {
		group.SetLimit(opts.Jobs)
	}

	for _, path := range files {
		group.Go(func() error {
			return fn(groupCtx, path)
		})
	}

	return group.Wait()
}
