package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const seedJSON = `[
  {"name": "Cadeiras", "required": {"10": 2}, "stacking_mode": "single", "base_height": 40, "base_width": 45, "base_length": 50, "base_weight": 6, "height_increment": 8, "max_quantity": 4},
  {"name": "Mesa e cadeiras", "required": {"20": 1, "10": 4}, "stacking_mode": "multiple", "base_height": 80, "base_width": 90, "base_length": 120, "base_weight": 35}
]`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "groups.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
