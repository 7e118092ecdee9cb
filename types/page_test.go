package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageQueryNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   PageQuery
		want PageQuery
	}{
		{"defaults", PageQuery{}, PageQuery{Page: 0, Size: 10, Sort: SortDesc}},
		{"negative page", PageQuery{Page: -3, Size: 5, Sort: "asc"}, PageQuery{Page: 0, Size: 5, Sort: SortAsc}},
		{"size capped", PageQuery{Page: 2, Size: 1000, Sort: "Desc"}, PageQuery{Page: 2, Size: 100, Sort: SortDesc}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := tc.in
			require.NoError(t, q.Normalize())
			assert.Equal(t, tc.want, q)
		})
	}

	q := PageQuery{Sort: "sideways"}
	assert.ErrorIs(t, q.Normalize(), ErrInvalidSort)
}

func TestPageQueryKey(t *testing.T) {
	q := PageQuery{Page: 1, Size: 20, Sort: "asc"}
	require.NoError(t, q.Normalize())

	assert.Equal(t, "1:20:ASC", q.Key())
	assert.Equal(t, 20, q.Offset())
	assert.False(t, q.Desc())
}
