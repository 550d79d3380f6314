package skeleton

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Source is one input of ExtractBatch.
type Source struct {
	Path     string
	Language string
	Text     string
}

// Result is the outcome for one Source. Err is nil on success and otherwise wraps
// ErrUnsupportedLanguage, ErrParseFailure, ErrInvariantViolation or the context error.
type Result struct {
	Path     string
	Language string
	Skeleton string
	Err      error
}

// ExtractBatch extracts every source independently on a bounded worker pool.
// Results are in input order. A failing entry never affects the others; once ctx is
// done the remaining entries fail with its error.
func (e *Extractor) ExtractBatch(ctx context.Context, sources []Source) []Result {
	results := make([]Result, len(sources))

	var g errgroup.Group
	g.SetLimit(e.workers)

	for i, src := range sources {
		results[i] = Result{Path: src.Path, Language: src.Language}
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Skeleton, results[i].Err = e.Extract(src.Text, src.Language)
			return nil
		})
	}

	// Workers record failures in results and always return nil.
	g.Wait()
	return results
}
