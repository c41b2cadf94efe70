package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/you-not-fish/catscript/internal/syntax"
	"github.com/you-not-fish/catscript/internal/types2"
)

// FileResult is the static-error result for one file.
type FileResult struct {
	Path   string
	Errors syntax.ErrorList
}

// CheckFiles parses and validates files concurrently. Results are in the
// order of paths. An unreadable file stops the batch.
func (d *Driver) CheckFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("check %s: %w", path, err)
			}
			prog := syntax.Parse(path, bytes.NewReader(src), nil)
			types2.Check(prog, nil)
			results[i] = FileResult{Path: path, Errors: syntax.Errors(prog)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if len(r.Errors) > 0 {
			failed++
		}
	}
	d.log.Debug("check files", "files", len(paths), "failed", failed)
	return results, nil
}
