package shared

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNormalizePagination(t *testing.T) {
	cases := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, 20},
		{3, 10, 3, 10},
		{-1, 500, 1, 100},
	}
	for _, tc := range cases {
		page, size := NormalizePagination(tc.page, tc.size)
		if page != tc.wantPage || size != tc.wantSize {
			t.Fatalf("(%d,%d) want (%d,%d) got (%d,%d)", tc.page, tc.size, tc.wantPage, tc.wantSize, page, size)
		}
	}
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		query              string
		wantPage, wantSize int
	}{
		{"", 1, 20},
		{"?page=2&page_size=5", 2, 5},
		{"?page=abc&page_size=1000", 1, 100},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/visit-requests"+tc.query, nil)
		page, size := ParsePagination(c)
		if page != tc.wantPage || size != tc.wantSize {
			t.Fatalf("%q want (%d,%d) got (%d,%d)", tc.query, tc.wantPage, tc.wantSize, page, size)
		}
	}
}
