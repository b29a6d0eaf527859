package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "jose nunez", Normalize("  José NÚÑEZ "))
	assert.Equal(t, "", Normalize(""))
}

func TestMatchesIgnoresCaseAndAccents(t *testing.T) {
	assert.True(t, Matches("jose", "José"))
	assert.True(t, Matches("PEREZ", "Juan", "Pérez"))
	assert.True(t, Matches("", "anything"))
	assert.True(t, Matches("   "))
	assert.False(t, Matches("maria", "José", "Pérez"))
}

func TestFilter(t *testing.T) {
	got := Filter([]int{1, 2, 3, 4}, func(i int) bool { return i%2 == 0 })
	assert.Equal(t, []int{2, 4}, got)
}

func TestPaginateSliceLengthsAndReconstruction(t *testing.T) {
	for n := 0; n <= 20; n++ {
		for size := 1; size <= 7; size++ {
			items := make([]int, n)
			for i := range items {
				items[i] = i
			}

			first := Paginate(items, 1, size)
			rebuilt := make([]int, 0, n)
			for page := 1; page <= first.TotalPages; page++ {
				p := Paginate(items, page, size)
				require.Equal(t, page, p.Page)

				want := size
				if rest := n - (page-1)*size; rest < want {
					want = rest
				}
				require.Len(t, p.Items, want, "n=%d size=%d page=%d", n, size, page)
				rebuilt = append(rebuilt, p.Items...)
			}
			assert.Equal(t, items, rebuilt, "n=%d size=%d", n, size)
		}
	}
}

func TestPaginateClampsPage(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g"}

	p := Paginate(items, 99, 3)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, []string{"g"}, p.Items)
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())

	p = Paginate(items, -1, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Len(t, p.Items, DefaultPageSize)
	assert.Equal(t, 2, p.NextPage())

	empty := Paginate([]string{}, 3, 6)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Empty(t, empty.Items)

	meta := p.Pagination()
	assert.Equal(t, 7, meta.TotalCount)
	assert.Equal(t, 2, meta.TotalPages)
}
