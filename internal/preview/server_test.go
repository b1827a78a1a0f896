package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/pagesmith/internal/export"
	"github.com/user/pagesmith/internal/render"
	"github.com/user/pagesmith/internal/schema"
	"github.com/user/pagesmith/internal/store"
	"github.com/user/pagesmith/internal/testutil"
)

func newTestServer(t *testing.T, cfg Config) (*Server, *store.Store) {
	t.Helper()
	if cfg.CacheSize == 0 {
		cfg.CacheSize = 8
	}
	st := store.New()
	s, err := New(cfg, st, nil)
	require.NoError(t, err)
	return s, st
}

func do(t *testing.T, h http.Handler, method, path string, body []byte, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func configBody(t *testing.T, cfg schema.PageConfig) []byte {
	t.Helper()
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	return data
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	rec := do(t, s.Handler(), http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Status  string `json:"status"`
		Version uint64 `json:"version"`
		Cache   struct {
			Hits    int64 `json:"hits"`
			Misses  int64 `json:"misses"`
			MaxSize int   `json:"max_size"`
		} `json:"cache"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, uint64(0), body.Version)
	assert.Equal(t, 8, body.Cache.MaxSize)

	do(t, s.Handler(), http.MethodGet, "/", nil)
	do(t, s.Handler(), http.MethodGet, "/", nil)
	rec = do(t, s.Handler(), http.MethodGet, "/healthz", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Cache.Hits)
	assert.Equal(t, int64(1), body.Cache.Misses)
}

func TestPage_ServesPreviewDocument(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	rec := do(t, s.Handler(), http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "<body>")
	assert.Contains(t, body, "IntersectionObserver")

	markup, err := render.Markup(schema.Default())
	require.NoError(t, err)
	assert.Contains(t, body, markup)
}

func TestFragment_IsRenderedMarkup(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	rec := do(t, s.Handler(), http.MethodGet, "/fragment", nil)

	markup, err := render.Markup(schema.Default())
	require.NoError(t, err)
	assert.Equal(t, markup, rec.Body.String())
}

func TestExport_Attachment(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	rec := do(t, s.Handler(), http.MethodGet, "/export", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	disposition := rec.Header().Get("Content-Disposition")
	require.True(t, strings.HasPrefix(disposition, "attachment; filename*=UTF-8''"), disposition)

	name, err := url.PathUnescape(strings.TrimPrefix(disposition, "attachment; filename*=UTF-8''"))
	require.NoError(t, err)
	assert.Equal(t, "建筑展示模板.html", name)
	assert.Contains(t, rec.Body.String(), `class="static-export"`)
}

func TestExport_NameMatchesBody(t *testing.T) {
	s, st := newTestServer(t, Config{})
	h := s.Handler()

	pages := []schema.PageConfig{schema.Default(), testutil.MinimalPage()}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			st.Replace(pages[i%2])
		}
	}()

	for i := 0; i < 50; i++ {
		rec := do(t, h, http.MethodGet, "/export", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		name, err := url.PathUnescape(strings.TrimPrefix(rec.Header().Get("Content-Disposition"), "attachment; filename*=UTF-8''"))
		require.NoError(t, err)
		title := strings.TrimSuffix(name, ".html")
		assert.Contains(t, rec.Body.String(), "<title>"+title+"</title>")
	}
	<-done
}

func TestRenderCache(t *testing.T) {
	s, st := newTestServer(t, Config{})
	h := s.Handler()

	do(t, h, http.MethodGet, "/", nil)
	do(t, h, http.MethodGet, "/", nil)
	stats := s.Cache().Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)

	_, err := st.Replace(testutil.MinimalPage())
	require.NoError(t, err)
	rec := do(t, h, http.MethodGet, "/", nil)
	assert.Contains(t, rec.Body.String(), `<html lang="en">`)
	assert.Equal(t, int64(2), s.Cache().Stats().Misses)
}

func TestPutConfig(t *testing.T) {
	s, st := newTestServer(t, Config{})
	h := s.Handler()

	cfg := testutil.MinimalPage()
	rec := do(t, h, http.MethodPut, "/api/config", configBody(t, cfg))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got schema.PageConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, cfg.Meta.Title, got.Meta.Title)
	assert.Equal(t, uint64(1), st.Version())

	rec = do(t, h, http.MethodGet, "/api/config", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, schema.LanguageEn, got.Meta.Language)
}

func TestPutConfig_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		language string
		body     []byte
		prefix   string
	}{
		{"chinese by default", "", []byte(`{"meta":{}}`), "配置校验失败："},
		{"english requested", "en-US,en;q=0.9", []byte(`{"meta":{}}`), "validation failed: "},
		{"unparsable", "en", []byte(`{`), "validation failed: configuration root: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, st := newTestServer(t, Config{})
			before := st.Get()

			var headers []string
			if tt.language != "" {
				headers = []string{"Accept-Language", tt.language}
			}
			rec := do(t, s.Handler(), http.MethodPut, "/api/config", tt.body, headers...)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.True(t, strings.HasPrefix(resp.Error, tt.prefix), resp.Error)
			assert.NotEmpty(t, resp.Issues)

			assert.Equal(t, before, st.Get())
			assert.Equal(t, uint64(0), st.Version())
		})
	}
}

func TestValidate_DryRun(t *testing.T) {
	s, st := newTestServer(t, Config{})

	rec := do(t, s.Handler(), http.MethodPost, "/api/validate", configBody(t, testutil.MinimalPage()))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(0), st.Version(), "validate must never replace")

	rec = do(t, s.Handler(), http.MethodPost, "/api/validate", []byte(`[]`))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestNavTreeSchema(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	h := s.Handler()

	var items []schema.NavItem
	rec := do(t, h, http.MethodGet, "/api/nav", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 5)
	assert.Equal(t, "01 项目叙述", items[0].Label)

	var tree export.TreeDocument
	rec = do(t, h, http.MethodGet, "/api/tree", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tree))
	assert.Len(t, tree.Viewer, 11)

	rec = do(t, h, http.MethodGet, "/api/schema", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, json.Valid(rec.Body.Bytes()))
}

func TestCORS(t *testing.T) {
	s, _ := newTestServer(t, Config{AllowedOrigins: []string{"http://editor.local"}})
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/healthz", nil, "Origin", "http://editor.local")
	assert.Equal(t, "http://editor.local", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, h, http.MethodGet, "/healthz", nil, "Origin", "http://elsewhere.example")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestContentDisposition(t *testing.T) {
	assert.Equal(t, "attachment; filename*=UTF-8''page.html", ContentDisposition("page.html"))
	assert.Equal(t, "attachment; filename*=UTF-8''%E4%BD%9C%E5%93%81.html", ContentDisposition("作品.html"))
}

func TestWebsocket_ReloadOnReplace(t *testing.T) {
	s, st := newTestServer(t, Config{})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, unsubscribe := st.Subscribe()
	defer unsubscribe()
	go s.forwardEvents(ctx, events)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.Hub().Count() == 1 }, time.Second, 10*time.Millisecond)

	resp, err := http.DefaultClient.Do(mustRequest(t, http.MethodPut, srv.URL+"/api/config", configBody(t, testutil.MinimalPage())))
	require.NoError(t, err)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, Message{Type: MessageReload, Version: 1}, msg)

	s.Hub().Close()
	assert.Equal(t, 0, s.Hub().Count())
}

func mustRequest(t *testing.T, method, target string, body []byte) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLoadPage(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WritePage(t, dir, "page.yaml", testutil.MinimalPage())

	s, st := newTestServer(t, Config{PagePath: path})
	require.NoError(t, s.LoadPage())
	assert.Equal(t, schema.LanguageEn, st.Get().Meta.Language)

	// An invalid edit is ignored and the previous page stays
	require.NoError(t, os.WriteFile(path, []byte("meta: [broken"), 0644))
	s.reloadFromFile()
	assert.Equal(t, schema.LanguageEn, st.Get().Meta.Language)
	assert.Equal(t, uint64(1), st.Version())
}

func TestLoadPage_NoPath(t *testing.T) {
	s, st := newTestServer(t, Config{})
	require.NoError(t, s.LoadPage())
	assert.Equal(t, uint64(0), st.Version())
}

func TestWatcher_Debounces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	changes := make(chan struct{}, 10)
	w, err := NewWatcher(path, 50*time.Millisecond, func() { changes <- struct{}{} }, nil)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644))
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"n":1}`), 0644))
	}

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a change notification")
	}

	select {
	case <-changes:
		t.Fatal("Expected the burst to collapse into one notification")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	page := testutil.WritePage(t, dir, "page.json", testutil.MinimalPage())
	s, _ := newTestServer(t, Config{Addr: "127.0.0.1:0", PagePath: page, Watch: true})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_ListenError(t *testing.T) {
	s, _ := newTestServer(t, Config{Addr: "256.0.0.1:bad"})

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not report the listen error")
	}
}
