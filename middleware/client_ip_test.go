package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func requestContext(t *testing.T, headers map[string]string, remoteAddr string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = remoteAddr
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestGetClientIPPrefersForwardedChain(t *testing.T) {
	c := requestContext(t, map[string]string{
		"X-Forwarded-For": " 203.0.113.7 , 10.0.0.1",
		"X-Real-IP":       "10.0.0.2",
	}, "10.0.0.3:52100")

	if ip := getClientIP(c); ip != "203.0.113.7" {
		t.Fatalf("ip = %q, want first forwarded hop", ip)
	}
}

func TestGetClientIPFallsBackToRealIP(t *testing.T) {
	c := requestContext(t, map[string]string{"X-Real-IP": "203.0.113.9"}, "10.0.0.3:52100")

	if ip := getClientIP(c); ip != "203.0.113.9" {
		t.Fatalf("ip = %q, want X-Real-IP", ip)
	}
}

func TestGetClientIPStripsPortFromRemoteAddr(t *testing.T) {
	c := requestContext(t, nil, "198.51.100.4:40022")

	if ip := getClientIP(c); ip != "198.51.100.4" {
		t.Fatalf("ip = %q, want bare host", ip)
	}
}
