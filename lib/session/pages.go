package session

import (
	"context"
	"errors"
	"log/slog"
)

// ErrStopWalk stops a page walk early without reporting an error.
var ErrStopWalk = errors.New("stop page walk")

type PageOptions struct {
	// Symbols override the link texts treated as "next page".
	Symbols []string
	// MaxPages bounds the walk. Zero means no bound.
	MaxPages int
}

// WalkPages fetches a page, hands it to fn, and follows next-page
// links until there are none, fn returns an error, or the bound is
// hit. Already-visited URLs end the walk, paginations that loop back
// on themselves are not worth following.
func (s *Session) WalkPages(ctx context.Context, start string, opts PageOptions, fn func(*Response) error) error {
	ctx, span := tracer.Start(ctx, "session:WalkPages")
	defer span.End()

	visited := map[string]struct{}{}
	url := start

	for pages := 0; url != ""; pages++ {
		if opts.MaxPages > 0 && pages >= opts.MaxPages {
			return nil
		}
		if _, seen := visited[url]; seen {
			slog.DebugContext(ctx, "pagination loop detected", "url", url)
			return nil
		}
		visited[url] = struct{}{}

		res, err := s.Get(ctx, url)
		if err != nil {
			return err
		}

		if err := fn(res); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}

		doc, err := res.Document()
		if err != nil {
			return err
		}
		url = doc.Next(opts.Symbols...)
	}
	return nil
}
