package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func total(v float64) *float64 { return &v }

func TestTrustTotal(t *testing.T) {
	tests := []struct {
		name      string
		total     *float64
		itemCount int
		want      bool
	}{
		{"absent", nil, 10, false},
		{"zero", total(0), 0, false},
		{"negative", total(-5), 0, false},
		{"nan", total(math.NaN()), 0, false},
		{"inf", total(math.Inf(1)), 0, false},
		{"equals page", total(50), 50, false},
		{"smaller than page", total(12), 50, false},
		{"one more than page", total(51), 50, true},
		{"short page with bigger total", total(137), 37, true},
		{"fractional", total(50.5), 50, false},
		{"huge", total(1e300), 50, false},
		{"above int32", total(float64(math.MaxInt32) + 1), 50, false},
		{"at int32 bound", total(float64(math.MaxInt32)), 50, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrustTotal(tt.total, tt.itemCount))
		})
	}
}

func TestPaginateFallback(t *testing.T) {
	t.Run("full page enables next", func(t *testing.T) {
		p := Paginate(PageState{Offset: 0, Limit: 50, ReportedTotal: total(50), ItemCount: 50})
		assert.Equal(t, ModeFallback, p.Mode)
		assert.True(t, p.HasNext)
		assert.False(t, p.HasPrev)
		assert.Equal(t, 1, p.CurrentPage)
		assert.Equal(t, []PageItem{{Page: 1, Current: true}}, p.Pages)
	})

	t.Run("short page disables next", func(t *testing.T) {
		p := Paginate(PageState{Offset: 100, Limit: 50, ItemCount: 12})
		assert.Equal(t, ModeFallback, p.Mode)
		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrev)
		assert.Equal(t, 3, p.CurrentPage)
		assert.Zero(t, p.PageCount)
	})

	t.Run("past the end", func(t *testing.T) {
		p := Paginate(PageState{Offset: 500, Limit: 50, ItemCount: 0})
		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrev)
		assert.Equal(t, 11, p.CurrentPage)
	})
}

func TestPaginateCounted(t *testing.T) {
	p := Paginate(PageState{Offset: 50, Limit: 50, ReportedTotal: total(137), ItemCount: 50})
	require.Equal(t, ModeCounted, p.Mode)
	assert.Equal(t, 3, p.PageCount)
	assert.Equal(t, 2, p.CurrentPage)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
	assert.Equal(t, []PageItem{{Page: 1}, {Page: 2, Current: true}, {Page: 3}}, p.Pages)

	last := Paginate(PageState{Offset: 100, Limit: 50, ReportedTotal: total(137), ItemCount: 37})
	assert.Equal(t, ModeCounted, last.Mode)
	assert.False(t, last.HasNext)
}

// pageLabels flattens a page list for readable comparisons
func pageLabels(items []PageItem) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		if it.Ellipsis {
			out = append(out, "…")
			continue
		}
		out = append(out, it.Page)
	}
	return out
}

func TestPageListWindowing(t *testing.T) {
	tests := []struct {
		name    string
		current int
		count   int
		want    []any
	}{
		{"nine pages all shown", 5, 9, []any{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"middle of twenty", 10, 20, []any{1, "…", 8, 9, 10, 11, 12, "…", 20}},
		{"first page", 1, 20, []any{1, 2, 3, "…", 20}},
		{"page four has no leading ellipsis", 4, 20, []any{1, 2, 3, 4, 5, 6, "…", 20}},
		{"page five has leading ellipsis", 5, 20, []any{1, "…", 3, 4, 5, 6, 7, "…", 20}},
		{"near the end", 17, 20, []any{1, "…", 15, 16, 17, 18, 19, 20}},
		{"last page", 20, 20, []any{1, "…", 18, 19, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pageLabels(pageList(tt.current, tt.count)))
		})
	}
}

func TestPaginateCurrentMarked(t *testing.T) {
	p := Paginate(PageState{Offset: 450, Limit: 50, ReportedTotal: total(1000), ItemCount: 50})
	require.Equal(t, 20, p.PageCount)
	for _, it := range p.Pages {
		assert.Equal(t, it.Page == 10, it.Current, "page %d", it.Page)
	}
}

func TestGoto(t *testing.T) {
	assert.Equal(t, 0, Goto(0, 50))
	assert.Equal(t, 0, Goto(0, 25))
	assert.Equal(t, 0, Goto(-3, 50))
	assert.Equal(t, 0, Goto(1, 50))
	assert.Equal(t, 100, Goto(3, 50))
	assert.Equal(t, 5000, Goto(101, 50), "no upper clamp")
	assert.Equal(t, 50, Goto(2, 0), "zero limit falls back to default page size")
}

func TestPaginateUnsafeTotalsFallBack(t *testing.T) {
	for _, v := range []float64{1e300, 50.5} {
		p := Paginate(PageState{Offset: 0, Limit: 50, ReportedTotal: total(v), ItemCount: 50})
		assert.Equal(t, ModeFallback, p.Mode, "total %g", v)
		assert.True(t, p.HasNext, "total %g", v)
		assert.Zero(t, p.PageCount)
	}
}

func TestTrustedTotalConverts(t *testing.T) {
	n, ok := TrustedTotal(total(137), 37)
	require.True(t, ok)
	assert.Equal(t, 137, n)

	p := Paginate(PageState{Offset: 0, Limit: 50, ReportedTotal: total(137), ItemCount: 50})
	assert.Equal(t, 3, p.PageCount)
}
