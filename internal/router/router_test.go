package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trsv-dev/simple-media-server/internal/api"
	"github.com/trsv-dev/simple-media-server/internal/config"
	"github.com/trsv-dev/simple-media-server/internal/logger"
	"github.com/trsv-dev/simple-media-server/internal/middleware"
)

func init() {
	logger.InitLogger("error", "stdout")
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "song.ogg"), []byte("OggS-payload"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir"), 0o755))

	return Router(api.NewHandlersContainer(&config.Config{Dir: root}, logger.Log))
}

// TestRouterServesFiles Проверяет маршрутизацию GET и HEAD на раздачу файлов.
func TestRouterServesFiles(t *testing.T) {
	h := newTestRouter(t)

	r := httptest.NewRequest(http.MethodGet, "/song.ogg", nil)
	r.Header.Set("Range", "bytes=0-3")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusPartialContent, w.Code)
	assert.Equal(t, "OggS", w.Body.String())
	assert.Equal(t, "audio/ogg", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	r = httptest.NewRequest(http.MethodHead, "/song.ogg", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "12", w.Header().Get("Content-Length"))
}

// TestRouterRedirectAndNotFound Проверяет редирект каталога и 404.
func TestRouterRedirectAndNotFound(t *testing.T) {
	h := newTestRouter(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dir?q=1", nil))
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/dir/?q=1", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope.mp3", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestRouterRejectsWrites Проверяет что методы записи не поддерживаются.
func TestRouterRejectsWrites(t *testing.T) {
	h := newTestRouter(t)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(method, "/song.ogg", strings.NewReader("x")))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
	}
}

// TestRouterOverHTTP Проверяет раздачу через настоящий HTTP-сервер.
func TestRouterOverHTTP(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/song.ogg", nil)
	require.NoError(t, err)
	req.Header.Set("Range", "bytes=-7")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusPartialContent, resp.StatusCode)
	assert.Equal(t, "bytes 5-11/12", resp.Header.Get("Content-Range"))
	assert.Equal(t, "payload", string(body))
	assert.Equal(t, int64(7), resp.ContentLength)
}
