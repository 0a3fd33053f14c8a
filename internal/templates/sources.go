package templates

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/loganlanou/blindquote/storage"
)

//go:embed assets/*.html
var assets embed.FS

// Embedded returns the default templates compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(fmt.Sprintf("embedded templates: %v", err))
	}
	return sub
}

// FSSource reads templates from a file system, keyed by path.
type FSSource struct {
	fsys fs.FS
}

func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// NewDirSource reads templates from a directory on disk.
func NewDirSource(dir string) *FSSource {
	return NewFSSource(os.DirFS(dir))
}

func (s *FSSource) Fetch(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := fs.ReadFile(s.fsys, strings.TrimPrefix(key, "/"))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return string(b), nil
}

// HTTPSource fetches templates relative to a base URL, retrying transient
// failures with exponential backoff.
type HTTPSource struct {
	baseURL    *url.URL
	client     *http.Client
	maxRetries int
	backoff    time.Duration
}

// NewHTTPSource creates a source for templates served under baseURL.
func NewHTTPSource(baseURL string, timeout time.Duration) (*HTTPSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse template base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("template base url %q must be absolute", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	return &HTTPSource{
		baseURL:    u,
		client:     &http.Client{Timeout: timeout},
		maxRetries: 3,
		backoff:    time.Second,
	}, nil
}

func (s *HTTPSource) Fetch(ctx context.Context, key string) (string, error) {
	ref, err := url.Parse(strings.TrimPrefix(key, "/"))
	if err != nil {
		return "", fmt.Errorf("parse template key %q: %w", key, err)
	}
	target := s.baseURL.ResolveReference(ref).String()

	var lastErr error
	for i := 0; i < s.maxRetries; i++ {
		body, status, err := s.get(ctx, target)
		if err == nil && status == http.StatusOK {
			return body, nil
		}

		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("unexpected status code: %d", status)
			// Client errors will not fix themselves.
			if status >= 400 && status < 500 {
				break
			}
		}

		if i < s.maxRetries-1 {
			wait := s.backoff * time.Duration(1<<uint(i))
			slog.Debug("retrying template fetch", "attempt", i+1, "backoff", wait, "url", target)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}

	return "", fmt.Errorf("fetch %s: %w", target, lastErr)
}

func (s *HTTPSource) get(ctx context.Context, target string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return string(body), resp.StatusCode, nil
}

// SQLSource reads templates from the quote_templates table.
type SQLSource struct {
	queries *storage.Queries
}

func NewSQLSource(queries *storage.Queries) *SQLSource {
	return &SQLSource{queries: queries}
}

func (s *SQLSource) Fetch(ctx context.Context, key string) (string, error) {
	tmpl, err := s.queries.GetTemplate(ctx, key)
	if err != nil {
		return "", err
	}
	return tmpl.Body, nil
}

// Seed copies every template in keys that the table does not have yet from
// fsys. Existing rows are kept as they are.
func Seed(ctx context.Context, queries *storage.Queries, fsys fs.FS, keys map[Name]string) error {
	for _, name := range Names {
		key := keys[name]
		if key == "" {
			key = DefaultKeys[name]
		}

		_, err := queries.GetTemplate(ctx, key)
		if err == nil {
			continue
		}
		if !errors.Is(err, storage.ErrTemplateNotFound) && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check template %q: %w", key, err)
		}

		body, err := fs.ReadFile(fsys, DefaultKeys[name])
		if err != nil {
			return fmt.Errorf("read seed for %s: %w", name, err)
		}
		if err := queries.UpsertTemplate(ctx, key, string(body)); err != nil {
			return fmt.Errorf("seed template %q: %w", key, err)
		}
		slog.Info("seeded quote template", "template", name, "key", key)
	}
	return nil
}
