package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func brotliRouter(body string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Brotli())
	r.GET("/payload", func(c *gin.Context) {
		c.String(http.StatusOK, body)
	})
	return r
}

func TestBrotliCompressesLargeResponses(t *testing.T) {
	body := strings.Repeat("sequential unlock keeps learners on track. ", 64)
	r := brotliRouter(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payload", nil)
	req.Header.Set("Accept-Encoding", "gzip, br")
	r.ServeHTTP(w, req)

	assert.Equal(t, "br", w.Header().Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", w.Header().Get("Vary"))

	decoded, err := io.ReadAll(brotli.NewReader(w.Body))
	require.NoError(t, err)
	assert.Equal(t, body, string(decoded))
}

func TestBrotliSkipsSmallResponses(t *testing.T) {
	r := brotliRouter("ok")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payload", nil)
	req.Header.Set("Accept-Encoding", "br")
	r.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, "ok", w.Body.String())
}

func TestBrotliSkipsWithoutAcceptEncoding(t *testing.T) {
	body := strings.Repeat("x", 2048)
	r := brotliRouter(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payload", nil)
	r.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, body, w.Body.String())
}

func TestBrotliPassesThroughUpgrades(t *testing.T) {
	body := strings.Repeat("x", 2048)
	r := brotliRouter(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payload", nil)
	req.Header.Set("Accept-Encoding", "br")
	req.Header.Set("Upgrade", "websocket")
	r.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, body, w.Body.String())
}
