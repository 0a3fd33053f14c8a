package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

func init() {
	level := slog.LevelInfo
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		if err := level.UnmarshalText([]byte(s)); err != nil {
			panic(fmt.Sprintf("invalid log level: %s", s))
		}
	}

	if level == slog.LevelDebug {
		slog.SetDefault(slog.New(newDebugHandler(os.Stdout, modulePrefix())))
		slog.Debug("debug logging enabled")
		return
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// newDebugHandler is the colored development handler. Source paths are
// trimmed to the module and errors are highlighted.
func newDebugHandler(w io.Writer, prefix string) slog.Handler {
	replacer := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.SourceKey {
			if source, ok := a.Value.Any().(*slog.Source); ok {
				source.File = cleanSourcePath(source.File, prefix)
			}
		}
		if err, ok := a.Value.Any().(error); ok {
			aErr := tint.Err(err)
			aErr.Key = a.Key
			return aErr
		}
		return a
	}

	return tint.NewHandler(w, &tint.Options{
		Level:       slog.LevelDebug,
		TimeFormat:  time.TimeOnly,
		ReplaceAttr: replacer,
		AddSource:   true,
	})
}

// modulePrefix returns "/<last module path element>/", e.g. "/blindquote/".
func modulePrefix() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Path == "" {
		if wd, err := os.Getwd(); err == nil {
			return "/" + filepath.Base(wd) + "/"
		}
		return "/blindquote/"
	}
	return "/" + filepath.Base(info.Main.Path) + "/"
}

func cleanSourcePath(file, prefix string) string {
	if _, rest, ok := strings.Cut(file, prefix); ok {
		return rest
	}
	if i := strings.LastIndex(file, "/src/"); i != -1 {
		return file[i+len("/src/"):]
	}
	return file
}
