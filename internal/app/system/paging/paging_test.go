package paging

import (
	"net/http/httptest"
	"testing"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantLimit  int64
		wantOffset int64
	}{
		{"defaults", "/api/users", DefaultLimit, 0},
		{"explicit", "/api/users?limit=25&offset=75", 25, 75},
		{"over max", "/api/users?limit=5000", DefaultLimit, 0},
		{"zero limit", "/api/users?limit=0", DefaultLimit, 0},
		{"negative offset", "/api/users?offset=-10", DefaultLimit, 0},
		{"garbage", "/api/users?limit=abc&offset=xyz", DefaultLimit, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FromRequest(httptest.NewRequest("GET", tt.url, nil))
			if p.Limit != tt.wantLimit || p.Offset != tt.wantOffset {
				t.Errorf("got limit=%d offset=%d, want %d/%d", p.Limit, p.Offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}
