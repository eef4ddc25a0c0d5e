package pagination

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateOffset(t *testing.T) {
	tests := []struct{ page, limit, want int }{
		{1, 20, 0},
		{2, 20, 20},
		{3, 10, 20},
		{0, 10, 0},
		{2, 0, 0},
		{math.MaxInt/100 + 1, 100, (math.MaxInt / 100) * 100},
		{math.MaxInt/100 + 2, 100, math.MaxInt},
		{math.MaxInt, 1, math.MaxInt - 1},
		{math.MaxInt, 2, math.MaxInt},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateOffset(tt.page, tt.limit), "page=%d limit=%d", tt.page, tt.limit)
	}
}

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 20, 1},
		{8, 3, 3},
		{20, 20, 1},
		{21, 20, 2},
		{5, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateTotalPages(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestParseQueryParams(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name    string
		query   string
		want    Params
		wantErr bool
	}{
		{name: "defaults", query: "", want: Params{Page: 1, Limit: 20}},
		{name: "explicit", query: "?page=3&limit=5", want: Params{Page: 3, Limit: 5}},
		{name: "max limit", query: "?limit=100", want: Params{Page: 1, Limit: 100}},
		{name: "zero page", query: "?page=0", wantErr: true},
		{name: "non-numeric page", query: "?page=abc", wantErr: true},
		{name: "limit too large", query: "?limit=101", wantErr: true},
		{name: "negative limit", query: "?limit=-1", wantErr: true},
		{
			name:  "largest page whose offset fits",
			query: fmt.Sprintf("?page=%d&limit=100", math.MaxInt/100+1),
			want:  Params{Page: math.MaxInt/100 + 1, Limit: 100},
		},
		{name: "offset overflow", query: fmt.Sprintf("?page=%d&limit=100", math.MaxInt/100+2), wantErr: true},
		{name: "offset overflow at default limit", query: fmt.Sprintf("?page=%d", math.MaxInt/20+2), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/lessons"+tt.query, nil)
			got, err := ParseQueryParams(r, cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "10")
		t.Setenv("PAGINATION_MAX_LIMIT", "50")
		cfg := LoadFromEnv()
		assert.Equal(t, Config{DefaultPage: 1, DefaultLimit: 10, MaxLimit: 50}, cfg)
	})

	t.Run("default above max falls back", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "80")
		t.Setenv("PAGINATION_MAX_LIMIT", "50")
		assert.Equal(t, DefaultConfig(), LoadFromEnv())
	})
}

func TestNewResponse_NilDataEncodesAsEmptyArray(t *testing.T) {
	resp := NewResponse[string](nil, Metadata{Total: 0, Page: 1, Limit: 20, TotalPages: 1})

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"pagination":{"total":0,"page":1,"limit":20,"total_pages":1}}`, string(b))
}
