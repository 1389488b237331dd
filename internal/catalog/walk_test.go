package catalog

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/jonahtballard/CatBase/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pageQueue struct {
	pages   []*models.SectionPage
	err     error
	offsets []string
}

func (q *pageQueue) Sections(_ context.Context, params url.Values) (*models.SectionPage, error) {
	q.offsets = append(q.offsets, params.Get("offset"))
	if q.err != nil {
		return nil, q.err
	}
	i := len(q.offsets) - 1
	if i >= len(q.pages) {
		i = len(q.pages) - 1
	}
	return q.pages[i], nil
}

func TestWalkCountedStopsAtLastPage(t *testing.T) {
	total := 5.0
	src := &pageQueue{pages: []*models.SectionPage{
		{Items: sections(2), Total: &total},
		{Items: sections(2), Total: &total},
		{Items: sections(1), Total: &total},
	}}

	var seen []int
	stats, err := Walk(context.Background(), src, NewComposer(2), models.FilterState{}, 0, func(r Result) error {
		seen = append(seen, r.Pagination.CurrentPage)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seen)
	assert.Equal(t, 3, stats.Pages)
	assert.Equal(t, 5, stats.Sections)
	assert.Equal(t, []string{"0", "2", "4"}, src.offsets)
}

func TestWalkFallbackStopsOnShortPage(t *testing.T) {
	// totals that echo the page size are distrusted
	echo := 2.0
	src := &pageQueue{pages: []*models.SectionPage{
		{Items: sections(2), Total: &echo},
		{Items: sections(2), Total: &echo},
		{Items: sections(1)},
	}}

	stats, err := Walk(context.Background(), src, NewComposer(2), models.FilterState{}, 0, func(Result) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Pages)
	assert.Nil(t, stats.ReportedTotal)
}

func TestWalkMaxPages(t *testing.T) {
	src := &pageQueue{pages: []*models.SectionPage{{Items: sections(2)}}}

	stats, err := Walk(context.Background(), src, NewComposer(2), models.FilterState{}, 4, func(Result) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Pages)
	assert.Len(t, src.offsets, 4)
}

func TestWalkErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := Walk(context.Background(), &pageQueue{err: boom}, NewComposer(2), models.FilterState{}, 0, func(Result) error { return nil })
	assert.ErrorIs(t, err, boom)

	src := &pageQueue{pages: []*models.SectionPage{{Items: sections(2)}}}
	stats, err := Walk(context.Background(), src, NewComposer(2), models.FilterState{}, 0, func(Result) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, stats.Pages)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Walk(ctx, src, NewComposer(2), models.FilterState{}, 0, func(Result) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
