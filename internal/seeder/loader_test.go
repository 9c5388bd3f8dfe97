package seeder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileJSONArray(t *testing.T) {
	path := writeSeedFile(t, `[{"Id tin":"1","Tiêu đề tin":"A"},{"Id tin":"2","Tiêu đề tin":"B"}]`)

	docs, failures, err := LoadFile(path)
	require.NoError(t, err)

	assert.Len(t, docs, 2)
	assert.Zero(t, failures)
	assert.Equal(t, "1", docs[0]["Id tin"])
}

func TestLoadFileDocsWrapper(t *testing.T) {
	path := writeSeedFile(t, `{"docs":[{"id":"c-1","title":"Dev"}]}`)

	docs, _, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestLoadFileNDJSONSkipsMalformedLines(t *testing.T) {
	path := writeSeedFile(t, `{"Id tin":"1","Tiêu đề tin":"A"}
not json at all
{"Id tin":"2","Tiêu đề tin":"B"}

{"Id tin":"3"`)

	docs, failures, err := LoadFile(path)
	require.NoError(t, err)

	assert.Len(t, docs, 2)
	assert.Equal(t, 2, failures)
}

func TestLoadFileTruncatedArrayLeavesNoResidue(t *testing.T) {
	// The file opens as a JSON array, so the array decode consumes two
	// elements before failing on the missing bracket. Those elements must
	// not survive into the NDJSON fallback.
	path := writeSeedFile(t, `[{"Id tin":"9","Tiêu đề tin":"Residue"},
{"Id tin":"1","Tiêu đề tin":"A"}`)

	docs, failures, err := LoadFile(path)
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, "1", docs[0]["Id tin"])
	assert.Equal(t, 1, failures)
}

func TestLoadFileMissing(t *testing.T) {
	_, _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
