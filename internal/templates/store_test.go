package templates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/loganlanou/blindquote/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu    sync.Mutex
	texts map[string]string
	errs  map[string]error
	calls int
}

func (f *fakeSource) Fetch(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.errs[key]; err != nil {
		return "", err
	}
	return f.texts[key], nil
}

func allTemplates() map[string]string {
	return map[string]string{
		"quote-template.html":           "<html>quote</html>",
		"detailed-item-list-final.html": "<html>details</html>",
		"gmail-simple.html":             "<html>gmail</html>",
	}
}

func TestStore_LoadReady(t *testing.T) {
	src := &fakeSource{texts: allTemplates()}
	store := NewStore(src, nil)

	assert.Equal(t, NotLoaded, store.State())
	_, err := store.Template(Quote)
	assert.ErrorIs(t, err, ErrNotReady)

	require.NoError(t, store.Load(context.Background()))
	assert.Equal(t, Ready, store.State())
	assert.Equal(t, 3, src.calls)

	for name, want := range map[Name]string{
		Quote:   "<html>quote</html>",
		Details: "<html>details</html>",
		Gmail:   "<html>gmail</html>",
	} {
		got, err := store.Template(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	status := store.Status()
	assert.Equal(t, "ready", status.State)
	assert.Empty(t, status.Error)
	assert.NotNil(t, status.LoadedAt)
	assert.True(t, status.Templates[Gmail])
}

func TestStore_PartialFailureKeepsOtherTemplates(t *testing.T) {
	src := &fakeSource{
		texts: allTemplates(),
		errs:  map[string]error{"detailed-item-list-final.html": errors.New("boom")},
	}
	store := NewStore(src, nil)

	err := store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, Failed, store.State())

	_, err = store.Template(Details)
	assert.ErrorIs(t, err, ErrNotReady)

	gmail, err := store.Template(Gmail)
	require.NoError(t, err)
	assert.Equal(t, "<html>gmail</html>", gmail)

	status := store.Status()
	assert.Equal(t, "failed", status.State)
	assert.False(t, status.Templates[Details])
	assert.Contains(t, status.Error, "boom")
}

func TestStore_EmptyTemplateIsNotReady(t *testing.T) {
	texts := allTemplates()
	texts["quote-template.html"] = ""
	store := NewStore(&fakeSource{texts: texts}, nil)

	require.Error(t, store.Load(context.Background()))
	_, err := store.Template(Quote)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestStore_RetryAfterFailure(t *testing.T) {
	src := &fakeSource{
		texts: allTemplates(),
		errs:  map[string]error{"gmail-simple.html": errors.New("offline")},
	}
	store := NewStore(src, nil)
	require.Error(t, store.Load(context.Background()))

	src.mu.Lock()
	src.errs = nil
	src.mu.Unlock()

	require.NoError(t, store.Load(context.Background()))
	assert.Equal(t, Ready, store.State())
	assert.Empty(t, store.Status().Error)
}

func TestStore_CustomKeysAndUnknownName(t *testing.T) {
	src := &fakeSource{texts: map[string]string{
		"custom/quote.html":             "q",
		"detailed-item-list-final.html": "d",
		"gmail-simple.html":             "g",
	}}
	store := NewStore(src, map[Name]string{Quote: "custom/quote.html"})

	key, ok := store.Key(Quote)
	assert.True(t, ok)
	assert.Equal(t, "custom/quote.html", key)

	require.NoError(t, store.Load(context.Background()))

	_, err := store.Template(Name("invoice"))
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestFSSource(t *testing.T) {
	src := NewFSSource(fstest.MapFS{
		"partials/quote.html": {Data: []byte("<html>q</html>")},
	})
	ctx := context.Background()

	got, err := src.Fetch(ctx, "/partials/quote.html")
	require.NoError(t, err)
	assert.Equal(t, "<html>q</html>", got)

	_, err = src.Fetch(ctx, "partials/missing.html")
	assert.Error(t, err)
}

func TestEmbeddedHasDefaults(t *testing.T) {
	store := NewStore(NewFSSource(Embedded()), nil)
	require.NoError(t, store.Load(context.Background()))

	for _, name := range Names {
		text, err := store.Template(name)
		require.NoError(t, err)
		assert.Contains(t, text, "</body>", "template %s", name)
	}
}

func TestHTTPSource(t *testing.T) {
	var flaky atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/partials/quote-template.html":
			w.Write([]byte("<html>remote</html>"))
		case "/partials/flaky.html":
			if flaky.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte("<html>second try</html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL+"/partials", 5*time.Second)
	require.NoError(t, err)
	src.backoff = time.Millisecond
	ctx := context.Background()

	got, err := src.Fetch(ctx, "quote-template.html")
	require.NoError(t, err)
	assert.Equal(t, "<html>remote</html>", got)

	got, err = src.Fetch(ctx, "flaky.html")
	require.NoError(t, err)
	assert.Equal(t, "<html>second try</html>", got)

	_, err = src.Fetch(ctx, "missing.html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	_, err = NewHTTPSource("not a url", time.Second)
	assert.Error(t, err)
}

func TestSQLSourceWithSeed(t *testing.T) {
	_, queries, cleanup, err := storage.NewTestDB()
	require.NoError(t, err)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, queries.UpsertTemplate(ctx, "gmail-simple.html", "<html><body>custom</body></html>"))

	require.NoError(t, Seed(ctx, queries, Embedded(), nil))

	store := NewStore(NewSQLSource(queries), nil)
	require.NoError(t, store.Load(ctx))

	gmail, err := store.Template(Gmail)
	require.NoError(t, err)
	assert.Equal(t, "<html><body>custom</body></html>", gmail, "seeding keeps existing rows")

	quote, err := store.Template(Quote)
	require.NoError(t, err)
	assert.Contains(t, quote, "{{{itemsTableBody}}}")
}
