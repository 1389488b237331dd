package ratings

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jonahtballard/CatBase/internal/api"
	"github.com/jonahtballard/CatBase/internal/catalog"
	"github.com/jonahtballard/CatBase/internal/models"
	"golang.org/x/sync/singleflight"
)

// searchLimit caps name searches; the endpoint ranks by relevance
const searchLimit = 5

// Fetcher is the slice of the catalog API the resolver needs
type Fetcher interface {
	InstructorRating(ctx context.Context, instructorID int64) (*models.RatingProfile, error)
	SearchInstructors(ctx context.Context, q api.InstructorSearch) ([]models.InstructorMatch, error)
}

// Resolver maps instructors to rating profiles through an injected session cache.
// Concurrent calls for one identity share a single backend lookup.
type Resolver struct {
	cache   *Cache
	fetcher Fetcher
	flight  singleflight.Group
	logger  *log.Logger

	missed func(key string) // called after a cache miss, before joining the flight
}

// NewResolver creates a resolver. A nil cache gets a fresh one.
func NewResolver(cache *Cache, fetcher Fetcher, logger *log.Logger) *Resolver {
	if cache == nil {
		cache = NewCache()
	}
	return &Resolver{cache: cache, fetcher: fetcher, logger: logger}
}

// Cached returns the settled lookup for ref without touching the network
func (r *Resolver) Cached(ref models.InstructorRef) (Entry, bool) {
	return r.cache.Get(IdentityKey(ref))
}

// Resolve returns the rating profile of one instructor. An instructor with no
// data yields an empty profile and a nil error. Cached outcomes, failures
// included, are returned without a network call.
//
// The shared lookup is detached from ctx cancellation: one consumer going
// away must not settle the identity as failed for everyone else. The HTTP
// client timeout still bounds it.
func (r *Resolver) Resolve(ctx context.Context, ref models.InstructorRef) (*models.RatingProfile, error) {
	key := IdentityKey(ref)
	if e, ok := r.cache.Get(key); ok {
		return e.Profile, e.Err
	}

	if r.missed != nil {
		r.missed(key)
	}
	v, _, _ := r.flight.Do(key, func() (any, error) {
		// a flight that finished between our cache miss and Do already stored it
		if e, ok := r.cache.Get(key); ok {
			return e, nil
		}
		profile, err := r.lookup(context.WithoutCancel(ctx), ref)
		if err != nil {
			err = fmt.Errorf("resolve rating for %s: %w", key, err)
			profile = nil
		}
		e := Entry{Profile: profile, Err: err}
		r.cache.Put(key, e)

		if r.logger != nil {
			if err != nil {
				r.logger.Warn("Rating lookup failed", "key", key, "error", err)
			} else {
				r.logger.Debug("Rating resolved", "key", key, "empty", profile.IsEmpty())
			}
		}
		return e, nil
	})

	e := v.(Entry)
	return e.Profile, e.Err
}

func (r *Resolver) lookup(ctx context.Context, ref models.InstructorRef) (*models.RatingProfile, error) {
	if ref.InstructorID != nil {
		profile, err := r.fetcher.InstructorRating(ctx, *ref.InstructorID)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			profile = &models.RatingProfile{}
		}
		return profile, nil
	}

	name := catalog.NormalizeName(ref.Name)
	if name == "" {
		return &models.RatingProfile{}, nil
	}

	hits, err := r.fetcher.SearchInstructors(ctx, api.InstructorSearch{
		Search:     strings.TrimSpace(ref.Name),
		IncludeRMP: true,
		HasRMP:     true,
		Limit:      searchLimit,
	})
	if err != nil {
		return nil, err
	}
	return bestMatch(name, hits), nil
}

// bestMatch prefers a hit whose normalized name equals the query and which
// carries rating data; otherwise it falls back to the top-ranked hit.
func bestMatch(normalizedName string, hits []models.InstructorMatch) *models.RatingProfile {
	for _, h := range hits {
		if catalog.NormalizeName(h.Name) == normalizedName && !h.RMP.IsEmpty() {
			return h.RMP
		}
	}
	if len(hits) > 0 && hits[0].RMP != nil {
		return hits[0].RMP
	}
	return &models.RatingProfile{}
}
