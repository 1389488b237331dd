package ratings

import (
	"context"
	"errors"
	"testing"

	"github.com/jonahtballard/CatBase/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAllDedupesIdentities(t *testing.T) {
	f := &fakeFetcher{
		ratings: map[int64]*models.RatingProfile{7: rated(4.5, 12)},
		hits:    []models.InstructorMatch{{Name: "Grace Hopper", RMP: rated(3.9, 4)}},
	}
	r := NewResolver(nil, f, nil)

	got, err := r.ResolveAll(context.Background(), []models.InstructorRef{
		{InstructorID: ptr(int64(7)), Name: "Ada Lovelace"},
		{InstructorID: ptr(int64(7)), Name: "A. Lovelace"},
		{Name: "Grace Hopper"},
		{Name: "grace  hopper"},
	}, 3)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "id:7", got[0].Key)
	assert.Equal(t, 4.5, *got[0].Entry.Profile.AvgRating)
	assert.Equal(t, "name:grace hopper", got[1].Key)
	assert.Equal(t, 3.9, *got[1].Entry.Profile.AvgRating)

	assert.Equal(t, 1, f.ratingCalls)
	assert.Equal(t, 1, f.searchCalls)
}

func TestResolveAllKeepsFailuresAsEntries(t *testing.T) {
	boom := errors.New("backend down")
	r := NewResolver(nil, &fakeFetcher{ratingErr: boom}, nil)

	got, err := r.ResolveAll(context.Background(), []models.InstructorRef{{InstructorID: ptr(int64(1))}}, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0].Entry.Err, boom)
	assert.Nil(t, got[0].Entry.Profile)
}

func TestResolveAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &fakeFetcher{}
	_, err := NewResolver(nil, f, nil).ResolveAll(ctx, []models.InstructorRef{{Name: "Ada"}}, 2)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, f.searchCalls)
}
