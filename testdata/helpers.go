package testdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func RndName() string {
	u := uuid.New().String()
	return sanitizeName(u)
}

func sanitizeName(name string) string {
	res := strings.ReplaceAll(strings.ToLower(name), "-", "")
	prefixed := "test" + res
	if len(prefixed) <= 25 {
		return prefixed
	}
	return prefixed[:25]
}

// WriteFile writes content into a new file under t.TempDir and returns its path.
func WriteFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
