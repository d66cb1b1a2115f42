package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("BRANDFORGE_TEST_DIR", "/tmp/bf")

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty", path: "", want: ""},
		{name: "absolute untouched", path: "/var/lib/brandforge.db", want: "/var/lib/brandforge.db"},
		{name: "tilde prefix", path: "~/data/brandforge.db", want: filepath.Join(home, "data", "brandforge.db")},
		{name: "bare tilde", path: "~", want: home},
		{name: "env var", path: "$BRANDFORGE_TEST_DIR/brandforge.db", want: "/tmp/bf/brandforge.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.path))
		})
	}
}

func TestDefaultDatabasePath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "brandforge", "brandforge.db"), DefaultDatabasePath())

	t.Setenv("XDG_DATA_HOME", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "brandforge", "brandforge.db"), DefaultDatabasePath())
}
