package main

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanSourcePath(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"/home/dev/blindquote/internal/quote/generator.go", "internal/quote/generator.go"},
		{"/usr/local/go/src/net/http/server.go", "net/http/server.go"},
		{"generator.go", "generator.go"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanSourcePath(tt.file, "/blindquote/"))
	}
}

func TestDebugHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newDebugHandler(&buf, "/blindquote/"))

	logger.Debug("templates loaded", "count", 3, "error", errors.New("partial"))

	out := buf.String()
	assert.Contains(t, out, "templates loaded")
	assert.Contains(t, out, "count")
	assert.Contains(t, out, "partial")
}
