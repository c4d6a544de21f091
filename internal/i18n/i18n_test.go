package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTFallsBackToKey(t *testing.T) {
	if got := T("fr-FR", "error.forbidden"); got != "You do not have access to this resource" {
		t.Fatalf("unexpected fallback message: %q", got)
	}
	if got := T(DefaultLocale, "error.unknown_key"); got != "error.unknown_key" {
		t.Fatalf("missing key should echo, got %q", got)
	}
	if got := Sprintf(DefaultLocale, "error.login_too_many", 30); got != "Too many login attempts, retry in 30 seconds" {
		t.Fatalf("unexpected sprintf: %q", got)
	}
}

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Accept-Language", "hi-IN, en-in;q=0.8")
	if got := ResolveLocale(c); got != "en-IN" {
		t.Fatalf("want en-IN got %s", got)
	}
	if got := ResolveLocale(nil); got != DefaultLocale {
		t.Fatalf("nil context want default got %s", got)
	}
}
