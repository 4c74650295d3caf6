package videos

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func streamRouter(t *testing.T, path string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/video/file", func(c *gin.Context) {
		serveVideoFile(c, path)
	})
	return router
}

func writeTempVideo(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0x42}, size), 0o644))
	return path
}

func TestServeVideoFileRange(t *testing.T) {
	router := streamRouter(t, writeTempVideo(t, 1000))

	t.Run("range request gets 206 with content range", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/video/file", nil)
		req.Header.Set("Range", "bytes=0-99")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusPartialContent, w.Code)
		assert.Equal(t, "bytes 0-99/1000", w.Header().Get("Content-Range"))
		assert.Equal(t, "bytes", w.Header().Get("Accept-Ranges"))
		assert.Equal(t, 100, w.Body.Len())
	})

	t.Run("open-ended range returns the tail", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/video/file", nil)
		req.Header.Set("Range", "bytes=900-")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusPartialContent, w.Code)
		assert.Equal(t, "bytes 900-999/1000", w.Header().Get("Content-Range"))
		assert.Equal(t, 100, w.Body.Len())
	})

	t.Run("no range header returns full body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/video/file", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1000, w.Body.Len())
		assert.Equal(t, "video/mp4", w.Header().Get("Content-Type"))
	})
}
