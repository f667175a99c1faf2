// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
		wantErr   bool
	}{
		{name: "defaults when absent", query: "", wantPage: 1, wantLimit: 20},
		{name: "explicit values", query: "page=3&limit=50", wantPage: 3, wantLimit: 50},
		{name: "limit clamped to max", query: "limit=500", wantPage: 1, wantLimit: 100},
		{name: "limit at boundary", query: "limit=100", wantPage: 1, wantLimit: 100},
		{name: "negative page rejected", query: "page=-1", wantErr: true},
		{name: "zero page rejected", query: "page=0", wantErr: true},
		{name: "negative limit rejected", query: "limit=-5", wantErr: true},
		{name: "non-integer page rejected", query: "page=abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/articles?"+tt.query, nil)

			p, err := FromRequest(r)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParam)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, Params{Page: 3, Limit: 20}.Offset())
}

func TestNewMeta(t *testing.T) {
	m := NewMeta(2, 20, 41)
	assert.Equal(t, 3, m.TotalPages)

	empty := NewMeta(1, 20, 0)
	assert.Equal(t, 0, empty.TotalPages)
}
