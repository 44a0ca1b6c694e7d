package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("DISPATCH_TEST_DIR", "/srv/dispatch")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "plain path untouched", input: "/var/lib/dispatch.db", expected: "/var/lib/dispatch.db"},
		{name: "tilde prefix", input: "~/data/dispatch.db", expected: filepath.Join(home, "data", "dispatch.db")},
		{name: "bare tilde", input: "~", expected: home},
		{name: "env var", input: "$DISPATCH_TEST_DIR/dispatch.db", expected: "/srv/dispatch/dispatch.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandPath(tt.input))
		})
	}
}

func TestDefaultDatabasePath(t *testing.T) {
	path := DefaultDatabasePath()
	assert.True(t, strings.HasSuffix(path, filepath.Join("dispatch", "dispatch.db")))
}
