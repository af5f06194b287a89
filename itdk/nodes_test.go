package itdk

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadNodes(t *testing.T) {
	path := writeFile(t, "test.nodes", `# comment header
node N1:  1.2.3.4 5.6.7.8
node N2:  9.9.9.9
garbage line
node N3:  1.2.3 300.1.1.1 10.0.0.1
`)

	nodes, err := LoadNodes(testLogger(), path)
	require.NoError(t, err)

	require.Len(t, nodes, 3)
	assert.Equal(t, []uint32{0x01020304, 0x05060708}, nodes["N1"])
	assert.Equal(t, []uint32{0x09090909}, nodes["N2"])
	// unparsable addresses are skipped, the node survives
	assert.Equal(t, []uint32{0x0a000001}, nodes["N3"])
}

func TestLoadNodesMissingFile(t *testing.T) {
	_, err := LoadNodes(testLogger(), filepath.Join(t.TempDir(), "nope.nodes"))
	assert.Error(t, err)
}

func TestAddrsOf(t *testing.T) {
	nodes := Nodes{
		"N1": {1, 2},
		"N2": {3},
	}
	assert.Equal(t, []uint32{1, 2, 3}, nodes.AddrsOf([]string{"N1", "N2"}))
	assert.Empty(t, nodes.AddrsOf([]string{"N9"}))
}
