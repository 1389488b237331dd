package ratings

import (
	"context"
	"sort"

	"github.com/jonahtballard/CatBase/internal/models"
	"golang.org/x/sync/errgroup"
)

// Resolved is the settled lookup of one instructor in a batch
type Resolved struct {
	Key   string
	Ref   models.InstructorRef
	Entry Entry
}

// ResolveAll resolves every distinct identity among refs with at most
// workers lookups in flight. Lookup failures are returned as entries, not as
// an error; only ctx cancellation stops the batch. Results are ordered by key.
func (r *Resolver) ResolveAll(ctx context.Context, refs []models.InstructorRef, workers int) ([]Resolved, error) {
	byKey := make(map[string]models.InstructorRef)
	for _, ref := range refs {
		key := IdentityKey(ref)
		if _, ok := byKey[key]; !ok {
			byKey[key] = ref
		}
	}

	out := make([]Resolved, 0, len(byKey))
	for key, ref := range byKey {
		out = append(out, Resolved{Key: key, Ref: ref})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range out {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			profile, err := r.Resolve(gctx, out[i].Ref)
			out[i].Entry = Entry{Profile: profile, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
