package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	t.Parallel()

	for _, s := range []Status{StatusNotStarted, StatusActive, StatusPaused, StatusCompleted} {
		assert.True(t, s.Valid(), "%s", s)
	}
	for _, s := range []Status{"", "ACTIVE", "done", "archived"} {
		assert.False(t, s.Valid(), "%s", s)
	}
}

func TestNormalizeProgressType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  ProgressType
		ok    bool
	}{
		{"dur", ProgressDuration, true},
		{"DUR", ProgressDuration, true},
		{" Cnt ", ProgressCount, true},
		{"cnt", ProgressCount, true},
		{"", "", false},
		{"hours", "", false},
		{"count", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeProgressType(tt.input)
		assert.Equal(t, tt.ok, ok, "%q", tt.input)
		assert.Equal(t, tt.want, got, "%q", tt.input)
	}
}
