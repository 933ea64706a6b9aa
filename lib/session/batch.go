package session

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Batch fetches many URLs concurrently and returns the responses in
// input order. The first error cancels the remaining requests. A
// non-positive worker count defaults to five per CPU.
func (s *Session) Batch(ctx context.Context, urls []string, workers int) ([]*Response, error) {
	ctx, span := tracer.Start(ctx, "session:Batch")
	defer span.End()

	if workers <= 0 {
		workers = runtime.NumCPU() * 5
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	responses := make([]*Response, len(urls))
	for i, url := range urls {
		i, url := i, url
		group.Go(func() error {
			res, err := s.Get(ctx, url)
			if err != nil {
				return err
			}
			responses[i] = res
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return responses, nil
}
