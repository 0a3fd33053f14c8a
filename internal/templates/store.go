// Package templates loads the raw quote templates once and serves them to
// the renderers for the lifetime of the process.
package templates

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Name identifies one of the templates the renderers need.
type Name string

const (
	// Quote is the primary detailed (print/PDF) template.
	Quote Name = "quote"
	// Details is the appendix template spliced into Quote.
	Details Name = "details"
	// Gmail is the single-file email template.
	Gmail Name = "gmail"
)

// Names lists every template the store manages.
var Names = []Name{Quote, Details, Gmail}

// DefaultKeys maps each template to its path in a template source.
var DefaultKeys = map[Name]string{
	Quote:   "quote-template.html",
	Details: "detailed-item-list-final.html",
	Gmail:   "gmail-simple.html",
}

var (
	// ErrNotReady is returned for a template that has not been loaded.
	ErrNotReady = errors.New("template not loaded")
	// ErrUnknownTemplate is returned for names the store does not manage.
	ErrUnknownTemplate = errors.New("unknown template")
)

// State is the lifecycle of a Store.
type State int

const (
	NotLoaded State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case NotLoaded:
		return "not_loaded"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Source fetches raw template text by key.
type Source interface {
	Fetch(ctx context.Context, key string) (string, error)
}

// Status is a snapshot of the store for reporting.
type Status struct {
	State     string          `json:"state"`
	Templates map[Name]bool   `json:"templates"`
	Error     string          `json:"error,omitempty"`
	LoadedAt  *time.Time      `json:"loaded_at,omitempty"`
	Keys      map[Name]string `json:"keys"`
}

// Store caches the templates fetched from a Source. A template becomes
// readable once its own fetch succeeded; the store is Ready only when all of
// them are. A failed load can be retried with Load.
type Store struct {
	source Source
	keys   map[Name]string

	loadMu sync.Mutex

	mu       sync.RWMutex
	state    State
	texts    map[Name]string
	lastErr  error
	loadedAt time.Time
}

// NewStore creates a store reading from source. Names missing from keys use
// DefaultKeys.
func NewStore(source Source, keys map[Name]string) *Store {
	resolved := make(map[Name]string, len(Names))
	for _, name := range Names {
		resolved[name] = DefaultKeys[name]
		if k, ok := keys[name]; ok && k != "" {
			resolved[name] = k
		}
	}

	return &Store{
		source: source,
		keys:   resolved,
		state:  NotLoaded,
		texts:  make(map[Name]string, len(Names)),
	}
}

// Load fetches all templates concurrently and caches the ones that arrive.
// It returns the first fetch error, if any. Concurrent calls are serialized.
func (s *Store) Load(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.Lock()
	s.state = Loading
	s.mu.Unlock()

	start := time.Now()
	fetched := make([]string, len(Names))

	// Fetches are independent: one failing template must not cancel the
	// others.
	var g errgroup.Group
	for i, name := range Names {
		key := s.keys[name]
		g.Go(func() error {
			text, err := s.source.Fetch(ctx, key)
			if err != nil {
				return fmt.Errorf("fetch %s template %q: %w", name, key, err)
			}
			if text == "" {
				return fmt.Errorf("fetch %s template %q: empty template", name, key)
			}
			fetched[i] = text
			return nil
		})
	}
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, name := range Names {
		if fetched[i] != "" {
			s.texts[name] = fetched[i]
		}
	}

	s.lastErr = err
	if err != nil || len(s.texts) < len(Names) {
		s.state = Failed
		slog.Error("failed to pre-fetch quote templates", "error", err, "loaded", len(s.texts))
		return err
	}

	s.state = Ready
	s.loadedAt = time.Now()
	slog.Info("quote templates pre-fetched and cached", "count", len(s.texts), "duration", time.Since(start))
	return nil
}

// Template returns the cached text of name. It never blocks on a load in
// progress; an unloaded template yields ErrNotReady.
func (s *Store) Template(name Name) (string, error) {
	if _, ok := s.keys[name]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	text := s.texts[name]
	if text == "" {
		return "", fmt.Errorf("%w: %s (store %s)", ErrNotReady, name, s.state)
	}
	return text, nil
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Key returns the source key of name.
func (s *Store) Key(name Name) (string, bool) {
	k, ok := s.keys[name]
	return k, ok
}

// Status reports which templates are available.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		State:     s.state.String(),
		Templates: make(map[Name]bool, len(Names)),
		Keys:      make(map[Name]string, len(Names)),
	}
	for _, name := range Names {
		st.Templates[name] = s.texts[name] != ""
		st.Keys[name] = s.keys[name]
	}
	if s.lastErr != nil {
		st.Error = s.lastErr.Error()
	}
	if !s.loadedAt.IsZero() {
		t := s.loadedAt
		st.LoadedAt = &t
	}
	return st
}
