package gopaginate

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Result_CustomLabels(t *testing.T) {
	options := NewOptions().
		WithLimit(2).
		WithPage(4).
		WithCustomLabels(Labels{
			LabelTotalDocs:     "itemCount",
			LabelDocs:          "itemsList",
			LabelLimit:         "perPage",
			LabelPage:          "currentPage",
			LabelNextPage:      "next",
			LabelPrevPage:      "prev",
			LabelTotalPages:    "pageCount",
			LabelPagingCounter: "pageCounter",
			LabelHasPrevPage:   "hasPrevious",
			LabelHasNextPage:   "hasNext",
		})

	res, err := Paginate[tCat](context.Background(), newMemorySource(10), nil, options)
	require.NoError(t, err)

	m := res.Map()
	require.Len(t, m["itemsList"], 2)
	require.Equal(t, int64(10), m["itemCount"])
	require.Equal(t, int64(2), m["perPage"])
	require.Equal(t, int64(4), m["currentPage"])
	require.Equal(t, int64(7), m["pageCounter"])
	require.Equal(t, true, m["hasPrevious"])
	require.Equal(t, true, m["hasNext"])
	require.Equal(t, int64(3), m["prev"])
	require.Equal(t, int64(5), m["next"])
	require.Equal(t, int64(5), m["pageCount"])

	for _, canonical := range []string{"docs", "totalDocs", "limit", "page", "totalPages", "nextPage", "prevPage", "pagingCounter", "hasPrevPage", "hasNextPage"} {
		require.NotContains(t, m, canonical)
	}
}

func Test_Result_EmptyLabels(t *testing.T) {
	options := NewOptions().
		WithLimit(2).
		WithPage(4).
		WithCustomLabels(Labels{
			LabelNextPage: "",
			LabelPrevPage: "",
		})

	res, err := Paginate[tCat](context.Background(), newMemorySource(10), nil, options)
	require.NoError(t, err)

	m := res.Map()
	require.NotContains(t, m, "nextPage")
	require.NotContains(t, m, "prevPage")
	require.NotContains(t, m, "")
	require.Equal(t, true, m["hasPrevPage"])
	require.Equal(t, true, m["hasNextPage"])
	require.Equal(t, int64(4), m["page"])
	require.Equal(t, int64(7), m["pagingCounter"])
	// Dropping navigation labels does not change the page count.
	require.Equal(t, int64(5), m["totalPages"])

	// The typed result keeps the values.
	require.Equal(t, p64(5), res.NextPage)
	require.Equal(t, p64(3), res.PrevPage)
}

func Test_Result_PaginationMetaData(t *testing.T) {
	options := NewOptions().
		WithLimit(3).
		WithCustomLabels(Labels{
			LabelPaginationMetaData: "pagination",
			LabelTotalDocs:          "total",
		})

	source := newMemorySource(7)
	source.meta = "diagnostics"

	res, err := Paginate[tCat](context.Background(), source, nil, options)
	require.NoError(t, err)

	m := res.Map()
	require.Len(t, m, 3)
	require.Len(t, m["docs"], 3)
	require.Equal(t, "diagnostics", m[MetaKey])

	pagination, ok := m["pagination"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, map[string]any{
		"total":         int64(7),
		"offset":        int64(0),
		"limit":         int64(3),
		"totalPages":    int64(3),
		"page":          int64(1),
		"pagingCounter": int64(1),
		"hasPrevPage":   false,
		"hasNextPage":   true,
		"prevPage":      nil,
		"nextPage":      int64(2),
	}, pagination)
}

func Test_Result_MarshalJSON(t *testing.T) {
	res, err := Paginate[tCat](context.Background(), newMemorySource(10), nil, NewOptions().WithLimit(0))
	require.NoError(t, err)

	data, err := json.Marshal(res)
	require.NoError(t, err)

	require.JSONEq(t, `{
		"docs": [],
		"totalDocs": 10,
		"offset": 0,
		"limit": 0,
		"totalPages": null,
		"page": null,
		"pagingCounter": null,
		"hasPrevPage": false,
		"hasNextPage": false,
		"prevPage": null,
		"nextPage": null
	}`, string(data))
}

func Test_Result_ZeroValueUsesDefaultLabels(t *testing.T) {
	var res Result[tCat]

	m := res.Map()
	require.Contains(t, m, "docs")
	require.Contains(t, m, "totalDocs")
	require.Nil(t, m["page"])
	require.NotContains(t, m, OffsetKey)
	require.NotContains(t, m, MetaKey)
}
