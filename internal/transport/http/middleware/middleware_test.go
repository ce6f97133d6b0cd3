package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func engine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	return r
}

func TestSanitizeJSON(t *testing.T) {
	r := engine(SanitizeJSON())
	var got string
	r.POST("/x", func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		got = string(b)
	})

	body := `{"titel":"<b>Zomer</b> & Winter","wachtwoord":"<geheim>","tags":["<i>a</i>"]}`
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(httptest.NewRecorder(), req)

	for _, want := range []string{`"titel":"Zomer & Winter"`, `"wachtwoord":"<geheim>"`, `"tags":["a"]`} {
		if !strings.Contains(got, want) {
			t.Errorf("body %s missing %s", got, want)
		}
	}

	req = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"titel":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed: %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := engine(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rid := w.Header().Get(KeyRequestID); rid == "" || rid != w.Body.String() {
		t.Fatalf("generated rid %q / %q", rid, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(KeyRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(KeyRequestID) != "abc-123" {
		t.Fatalf("rid not propagated: %q", w.Header().Get(KeyRequestID))
	}
}

func TestRateLimitPerIP(t *testing.T) {
	r := engine(RateLimitPerIP(rate.Every(time.Hour), 2))
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}

	// 其他 IP 不受影响
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("other ip: %d", w.Code)
	}
}

func TestTimeoutSkip(t *testing.T) {
	r := engine(Timeout(time.Millisecond, "/api/rapportages/export"))
	var hasDeadline []bool
	h := func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		hasDeadline = append(hasDeadline, ok)
		c.Status(http.StatusOK)
	}
	r.GET("/api/kunstwerken", h)
	r.POST("/api/rapportages/export", h)
	r.GET("/api/rapportages/exports", h)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/kunstwerken", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/rapportages/export", nil))
	// 审计列表与导出同前缀，但仍受超时限制
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/rapportages/exports", nil))
	if len(hasDeadline) != 3 || !hasDeadline[0] || hasDeadline[1] || !hasDeadline[2] {
		t.Fatalf("deadlines = %v", hasDeadline)
	}
}
