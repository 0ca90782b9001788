package gopaginate

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func Test_Options_WithMethods_And_SortDedup(t *testing.T) {
	o := (*Options)(nil)
	o = o.WithLimit(5).
		WithPage(2).
		WithSubstitutedSort(
			OrderBy{Column: "id", Direction: DirectionASC},
		).
		WithSort(
			OrderBy{Column: "id", Direction: DirectionDESC},
			OrderBy{Column: "created_at", Direction: DirectionASC},
		)

	require.NotNil(t, o)
	require.Equal(t, lo.ToPtr(5), o.limit)
	require.Equal(t, lo.ToPtr(2), o.page)
	require.Nil(t, o.offset)
	require.Equal(
		t,
		Orderings{
			{Column: "id", Direction: DirectionDESC},
			{Column: "created_at", Direction: DirectionASC},
		},
		o.sort,
	)

	o = o.WithSubstitutedSort(OrderBy{Column: "name", Direction: DirectionASC})
	require.Equal(t, Orderings{{Column: "name", Direction: DirectionASC}}, o.sort)
}

func Test_Options_WithCustomLabels_Accumulates(t *testing.T) {
	o := NewOptions().
		WithCustomLabels(Labels{LabelDocs: "items"}).
		WithCustomLabels(Labels{LabelPage: "current"})

	require.Equal(t, Labels{LabelDocs: "items", LabelPage: "current"}, o.customLabels)
}

func Test_Options_WithSelect_Copies(t *testing.T) {
	columns := []string{"id", "name"}
	o := NewOptions().WithSelect(columns...)
	columns[0] = "changed"

	require.Equal(t, []string{"id", "name"}, o.selectColumns)
}

func Test_mergeOptions(t *testing.T) {
	base := NewOptions().
		WithLimit(5).
		WithPagination(false).
		WithSelect("id").
		WithConsistency(ConsistencyNotBounded).
		WithCustomLabels(Labels{LabelDocs: "items", LabelPage: "p"})
	override := NewOptions().
		WithLimit(7).
		WithOffset(3).
		WithCustomLabels(Labels{LabelPage: "current"})

	merged := mergeOptions(nil, base, nil, override)

	require.Equal(t, lo.ToPtr(7), merged.limit)
	require.Equal(t, lo.ToPtr(3), merged.offset)
	require.Nil(t, merged.page)
	require.Equal(t, lo.ToPtr(false), merged.pagination)
	require.Equal(t, []string{"id"}, merged.selectColumns)
	require.Equal(t, ConsistencyNotBounded, merged.consistency)
	require.Equal(t, Labels{LabelDocs: "items", LabelPage: "current"}, merged.customLabels)

	// Layers are not modified.
	require.Equal(t, Labels{LabelDocs: "items", LabelPage: "p"}, base.customLabels)
	require.Equal(t, lo.ToPtr(5), base.limit)
}

func Test_resolveSettings(t *testing.T) {
	tests := []struct {
		name        string
		options     *Options
		limit       int
		skip        int
		page        int
		currentPage int
		offset      *int
	}{
		{
			name:        "defaults",
			options:     nil,
			limit:       DefaultLimit,
			skip:        0,
			page:        DefaultPage,
			currentPage: 1,
			offset:      lo.ToPtr(0),
		},
		{
			name:        "page path",
			options:     NewOptions().WithLimit(4).WithPage(3),
			limit:       4,
			skip:        8,
			page:        3,
			currentPage: 3,
		},
		{
			name:        "page normalized",
			options:     NewOptions().WithLimit(4).WithPage(0),
			limit:       4,
			skip:        0,
			page:        1,
			currentPage: 1,
		},
		{
			name:        "offset path derives the page",
			options:     NewOptions().WithLimit(4).WithOffset(9),
			limit:       4,
			skip:        9,
			currentPage: 3,
			offset:      lo.ToPtr(9),
		},
		{
			name:        "negative offset normalized",
			options:     NewOptions().WithLimit(4).WithOffset(-9),
			limit:       4,
			skip:        0,
			currentPage: 1,
			offset:      lo.ToPtr(0),
		},
		{
			name:        "offset without limit has no page",
			options:     NewOptions().WithLimit(0).WithOffset(9),
			limit:       0,
			skip:        9,
			currentPage: 0,
			offset:      lo.ToPtr(9),
		},
		{
			name:        "negative limit normalized",
			options:     NewOptions().WithLimit(-1).WithPage(2),
			limit:       0,
			skip:        0,
			page:        2,
			currentPage: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := resolveSettings(tt.options)

			require.Equal(t, tt.limit, s.limit)
			require.Equal(t, tt.skip, s.skip)
			require.Equal(t, tt.page, s.page)
			require.Equal(t, tt.currentPage, s.currentPage())
			require.Equal(t, tt.offset, s.offset)
			require.True(t, s.pagination)
			require.True(t, s.includeQueryMetadata)
		})
	}
}

func Test_settings_findOptions(t *testing.T) {
	s := resolveSettings(NewOptions().WithLimit(3).WithPage(2).WithSelect("id"))

	opts := s.findOptions()
	require.Equal(t, lo.ToPtr(3), opts.Skip)
	require.Equal(t, lo.ToPtr(3), opts.Limit)

	// Sources may modify what they get.
	opts.Select[0] = "changed"
	require.Equal(t, []string{"id"}, s.findOptions().Select)

	s = resolveSettings(NewOptions().WithLimit(3).WithPage(2).WithPagination(false))
	opts = s.findOptions()
	require.Nil(t, opts.Skip)
	require.Nil(t, opts.Limit)
}
