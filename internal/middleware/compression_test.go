package middleware

import (
	"bytes"
	gz "compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `{"groups":[{"id":"g-1","name":"chairs"}],"count":1}`

func compressionRouter() *gin.Engine {
	router := gin.New()
	router.Use(Compression("/internal"))
	for _, path := range []string{"/api/groups", "/metrics", "/internal/debug"} {
		router.GET(path, func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json", []byte(catalogJSON))
		})
	}
	router.POST("/api/shipping/simulate", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, "%s", body)
	})
	return router
}

func TestCompression_GzipsAPIResponses(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/groups", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	w := httptest.NewRecorder()
	compressionRouter().ServeHTTP(w, req)

	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	reader, err := gz.NewReader(w.Body)
	require.NoError(t, err)
	plain, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.JSONEq(t, catalogJSON, string(plain))
}

func TestCompression_PlainResponses(t *testing.T) {
	cases := map[string]struct {
		path           string
		acceptEncoding string
	}{
		"client without gzip": {path: "/api/groups"},
		"metrics scrape":      {path: "/metrics", acceptEncoding: "gzip"},
		"extra skip prefix":   {path: "/internal/debug", acceptEncoding: "gzip"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tc.acceptEncoding)
			}
			w := httptest.NewRecorder()
			compressionRouter().ServeHTTP(w, req)

			assert.Empty(t, w.Header().Get("Content-Encoding"))
			assert.JSONEq(t, catalogJSON, w.Body.String())
		})
	}
}

func TestCompression_InflatesRequestBody(t *testing.T) {
	cart := `{"items":[{"product_id":10,"quantity":2}]}`

	var buf bytes.Buffer
	zw := gz.NewWriter(&buf)
	_, err := io.Copy(zw, strings.NewReader(cart))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/shipping/simulate", &buf)
	req.Header.Set("Content-Encoding", "gzip")
	w := httptest.NewRecorder()
	compressionRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, cart, w.Body.String())
}
