package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginated(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		total     int64
		wantPages int
	}{
		{"exact multiple", 10, 30, 3},
		{"partial last page", 10, 31, 4},
		{"single short page", 10, 3, 1},
		{"empty result", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginated([]string{}, 1, tt.limit, tt.total)
			assert.True(t, got.Success)
			assert.Equal(t, tt.wantPages, got.Pagination.Pages)
			assert.Equal(t, tt.total, got.Pagination.Total)
		})
	}
}
