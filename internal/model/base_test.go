package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerefharsh/amp-csr-portal/pkg/apperror"
)

func TestPaginationNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        Pagination
		want      Pagination
		wantError bool
	}{
		{name: "defaults", in: Pagination{}, want: Pagination{Page: 1, Limit: DefaultPageLimit}},
		{name: "explicit", in: Pagination{Page: 3, Limit: 25}, want: Pagination{Page: 3, Limit: 25}},
		{name: "max limit", in: Pagination{Page: 1, Limit: MaxPageLimit}, want: Pagination{Page: 1, Limit: MaxPageLimit}},
		{name: "negative page", in: Pagination{Page: -1, Limit: 10}, wantError: true},
		{name: "negative limit", in: Pagination{Page: 1, Limit: -5}, wantError: true},
		{name: "limit over max", in: Pagination{Page: 1, Limit: MaxPageLimit + 1}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Normalize()
			if tt.wantError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperror.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPagedResult(t *testing.T) {
	r := NewPagedResult([]int{1, 2, 3}, 25, 1, 10)
	assert.Equal(t, 25, r.Total)
	assert.Equal(t, 3, r.TotalPages)

	// Exact multiple has no extra page.
	r = NewPagedResult([]int{1}, 20, 2, 10)
	assert.Equal(t, 2, r.TotalPages)

	// Empty result still reports the envelope, never a nil slice.
	r = NewPagedResult[int](nil, 0, 1, 10)
	assert.NotNil(t, r.Data)
	assert.Empty(t, r.Data)
	assert.Equal(t, 0, r.TotalPages)
}
