package catalog

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jonahtballard/CatBase/internal/models"
)

// PageFetcher loads one /sections page
type PageFetcher interface {
	Sections(ctx context.Context, params url.Values) (*models.SectionPage, error)
}

// WalkStats summarizes a finished walk
type WalkStats struct {
	Pages         int
	Sections      int
	ReportedTotal *float64 // last total the backend reported, trusted or not
}

// Walk visits every page of filters from the first, advancing exactly as the
// browser's Next control would and stopping once it is disabled. maxPages
// bounds the walk when positive; it guards fallback mode against a backend
// that keeps returning full pages.
func Walk(ctx context.Context, src PageFetcher, composer Composer, filters models.FilterState, maxPages int, visit func(Result) error) (WalkStats, error) {
	var stats WalkStats
	s := NewSession(composer, filters)
	defer s.Dispose()

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		req, ok := s.Begin()
		if !ok {
			return stats, nil
		}
		page, err := src.Sections(ctx, req.Params)
		if err != nil {
			return stats, fmt.Errorf("failed to fetch page at offset %d: %w", req.Offset, err)
		}
		s.Apply(req.Gen, page, nil)

		res := s.Result()
		stats.Pages++
		stats.Sections += len(res.Items)
		stats.ReportedTotal = page.Total

		if err := visit(res); err != nil {
			return stats, err
		}
		if maxPages > 0 && stats.Pages >= maxPages {
			return stats, nil
		}
		if !s.NextPage() {
			return stats, nil
		}
	}
}
