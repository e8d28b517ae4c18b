package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atobusu/atobusu/pkg/atobusu"
)

func TestWriteHTML(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	require.NoError(t, w.WriteHTML("<p>hello</p>", "page.html"))

	raw, err := os.ReadFile(filepath.Join(dir, "page.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>hello</p>", string(raw))
}

func TestWriteAppendsExtension(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	require.NoError(t, w.WriteHTML("x", "page"))
	require.NoError(t, w.WritePHP("y", "script"))

	assert.FileExists(t, filepath.Join(dir, "page.html"))
	assert.FileExists(t, filepath.Join(dir, "script.php"))
}

func TestWriteCreatesNestedDirectories(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	require.NoError(t, w.WriteHTML("x", filepath.Join("reviews", "2025", "page.html")))
	assert.FileExists(t, filepath.Join(dir, "reviews", "2025", "page.html"))
}

func TestBackupOfExistingFile(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	require.NoError(t, w.WriteHTML("old content", "page.html"))
	require.NoError(t, w.WriteHTML("new content", "page.html"))

	raw, err := os.ReadFile(filepath.Join(dir, "page.html"))
	require.NoError(t, err)
	assert.Equal(t, "new content", string(raw))

	bak, err := os.ReadFile(filepath.Join(dir, "page.html.bak"))
	require.NoError(t, err)
	assert.Equal(t, "old content", string(bak))
}

func TestBackupDisabled(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	w.SetBackup(false)

	require.NoError(t, w.WriteHTML("old", "page.html"))
	require.NoError(t, w.WriteHTML("new", "page.html"))

	assert.NoFileExists(t, filepath.Join(dir, "page.html.bak"))
}

func TestWriteOutputDispatchesByFormat(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	outputs := []struct {
		format atobusu.OutputFormat
		name   string
		file   string
	}{
		{format: atobusu.FormatHTML, name: "a", file: "a.html"},
		{format: atobusu.FormatPHP, name: "b", file: "b.php"},
		{format: atobusu.FormatMixed, name: "c", file: "c.html"},
	}
	for _, o := range outputs {
		out := &atobusu.RenderedOutput{Text: "content", Format: o.format}
		require.NoError(t, w.WriteOutput(out, o.name))
		assert.FileExists(t, filepath.Join(dir, o.file))
	}
}

func TestWriteDetectsFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	require.NoError(t, w.Write("x", "a.php"))
	require.NoError(t, w.Write("x", "b.html"))
	require.NoError(t, w.Write("x", "c.tpl"))

	stats := w.Stats()
	assert.Equal(t, 1, stats.ByFormat[string(atobusu.FormatPHP)])
	assert.Equal(t, 1, stats.ByFormat[string(atobusu.FormatHTML)])
	assert.Equal(t, 1, stats.ByFormat[string(atobusu.FormatMixed)])
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	require.NoError(t, w.WriteHTML("12345", "a.html"))
	require.NoError(t, w.WritePHP("123", "b.php"))

	stats := w.Stats()
	assert.Equal(t, 2, stats.FilesWritten)
	assert.Equal(t, int64(8), stats.BytesWritten)
	assert.Equal(t, 1, stats.ByFormat[string(atobusu.FormatHTML)])
	assert.Equal(t, 1, stats.ByFormat[string(atobusu.FormatPHP)])

	// Stats is a snapshot, not a live view.
	stats.ByFormat["html"] = 99
	assert.Equal(t, 1, w.Stats().ByFormat[string(atobusu.FormatHTML)])
}
