package logger_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/combiner/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	t.Parallel()

	errFetch := zerr.New("failed to fetch file")

	tests := []struct {
		name string
		err  error
		want []logger.ErrorEntry
	}{
		{
			name: "standard error",
			err:  errors.New("boom"),
			want: []logger.ErrorEntry{{Message: "boom"}},
		},
		{
			name: "zerr chain",
			err:  zerr.Wrap(zerr.Wrap(errors.New("no such file"), "open"), "read config"),
			want: []logger.ErrorEntry{
				{Message: "read config"},
				{Message: "open"},
				{Message: "no such file"},
			},
		},
		{
			name: "metadata on each layer",
			err: zerr.With(
				zerr.Wrap(zerr.With(zerr.Wrap(errFetch, "fetch"), "path", "a.js"), "resolve"),
				"type", "script"),
			want: []logger.ErrorEntry{
				{Message: "resolve", Metadata: map[string]any{"type": "script"}},
				{Message: "fetch", Metadata: map[string]any{"path": "a.js"}},
				{Message: "failed to fetch file"},
			},
		},
		{
			name: "metadata on an unnamed layer moves to the cause",
			err:  zerr.With(fmt.Errorf("%w: %w", errFetch, errors.New("timeout")), "path", "b.js"),
			want: []logger.ErrorEntry{
				{Message: "failed to fetch file: timeout", Metadata: map[string]any{"path": "b.js"}},
			},
		},
		{
			name: "nil error",
			err:  nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, withoutEmptyMetadata(logger.CollectErrorEntries(tt.err)))
		})
	}
}

// withoutEmptyMetadata drops metadata maps that carry no keys.
func withoutEmptyMetadata(entries []logger.ErrorEntry) []logger.ErrorEntry {
	for i := range entries {
		if len(entries[i].Metadata) == 0 {
			entries[i].Metadata = nil
		}
	}
	return entries
}

func TestFormatErrorEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "failed to write bundle"}},
			want:    "Error: failed to write bundle",
		},
		{
			name: "causes",
			entries: []logger.ErrorEntry{
				{Message: "failed to write bundle"},
				{Message: "rename"},
				{Message: "permission denied"},
			},
			want: "Error: failed to write bundle\n\n  Caused by:\n    → rename\n    → permission denied",
		},
		{
			name: "metadata sorted by key",
			entries: []logger.ErrorEntry{
				{Message: "failed to fetch file", Metadata: map[string]any{"type": "style", "path": "a.css"}},
				{Message: "timeout", Metadata: map[string]any{"after": "10s"}},
			},
			want: "Error: failed to fetch file\n       path: a.css\n       type: style\n\n" +
				"  Caused by:\n    → timeout\n      after: 10s",
		},
		{
			name:    "multiline message",
			entries: []logger.ErrorEntry{{Message: "line1\nline2"}, {Message: "cause1\ncause2"}},
			want:    "Error: line1\n       line2\n\n  Caused by:\n    → cause1\n      cause2",
		},
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
