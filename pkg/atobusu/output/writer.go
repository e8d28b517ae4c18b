// Package output persists rendered pages to disk: format-aware file
// writing, legacy encodings, backups of existing files, and write
// statistics.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/atobusu/atobusu/pkg/atobusu"
	"github.com/atobusu/atobusu/pkg/atobusu/dataio"
)

// WriteStats accumulates counters for files written by a Writer.
type WriteStats struct {
	FilesWritten int
	BytesWritten int64
	ByFormat     map[string]int
}

// Writer writes rendered content under an output directory.
type Writer struct {
	dir      string
	encoding string
	backup   bool
	logger   *zap.Logger

	mu    sync.Mutex
	stats WriteStats
}

// NewWriter creates a writer rooted at dir, using the globally
// configured output encoding. Existing files are backed up before
// being overwritten.
func NewWriter(dir string) *Writer {
	return &Writer{
		dir:      dir,
		encoding: atobusu.GetGlobalConfig().OutputEncoding,
		backup:   true,
		logger:   atobusu.GetLogger(),
		stats:    WriteStats{ByFormat: make(map[string]int)},
	}
}

// SetBackup toggles backup of existing files before overwriting.
func (w *Writer) SetBackup(enabled bool) {
	w.backup = enabled
}

// WriteHTML writes HTML content, appending .html when name has no extension.
func (w *Writer) WriteHTML(content, name string) error {
	return w.write(content, ensureExtension(name, ".html"), string(atobusu.FormatHTML))
}

// WritePHP writes PHP content, appending .php when name has no extension.
func (w *Writer) WritePHP(content, name string) error {
	return w.write(content, ensureExtension(name, ".php"), string(atobusu.FormatPHP))
}

// WriteMixed writes mixed HTML/PHP content. The extension is kept as
// given; mixed pages ship under either suffix.
func (w *Writer) WriteMixed(content, name string) error {
	return w.write(content, ensureExtension(name, ".html"), string(atobusu.FormatMixed))
}

// WriteOutput writes a rendered output using its format tag.
func (w *Writer) WriteOutput(out *atobusu.RenderedOutput, name string) error {
	switch out.Format {
	case atobusu.FormatPHP:
		return w.WritePHP(out.Text, name)
	case atobusu.FormatMixed:
		return w.WriteMixed(out.Text, name)
	default:
		return w.WriteHTML(out.Text, name)
	}
}

// Write writes content, detecting the format from the file extension.
func (w *Writer) Write(content, name string) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".php":
		return w.WritePHP(content, name)
	case ".html", ".htm":
		return w.WriteHTML(content, name)
	default:
		return w.WriteMixed(content, name)
	}
}

func (w *Writer) write(content, name, format string) error {
	path := filepath.Join(w.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if w.backup {
		if err := backupFile(path); err != nil {
			return err
		}
	}

	encoded, err := dataio.EncodeText(content, w.encoding)
	if err != nil {
		return fmt.Errorf("failed to encode output %s: %w", name, err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write output %s: %w", name, err)
	}

	w.mu.Lock()
	w.stats.FilesWritten++
	w.stats.BytesWritten += int64(len(encoded))
	w.stats.ByFormat[format]++
	w.mu.Unlock()

	w.logger.Info("output written",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("bytes", len(encoded)))
	return nil
}

// backupFile copies an existing file aside with a .bak suffix.
func backupFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read existing output: %w", err)
	}
	if err := os.WriteFile(path+".bak", raw, 0o644); err != nil {
		return fmt.Errorf("failed to back up existing output: %w", err)
	}
	return nil
}

// Stats returns a copy of the accumulated write statistics.
func (w *Writer) Stats() WriteStats {
	w.mu.Lock()
	defer w.mu.Unlock()

	byFormat := make(map[string]int, len(w.stats.ByFormat))
	for k, v := range w.stats.ByFormat {
		byFormat[k] = v
	}
	return WriteStats{
		FilesWritten: w.stats.FilesWritten,
		BytesWritten: w.stats.BytesWritten,
		ByFormat:     byFormat,
	}
}

// ensureExtension appends ext when name has no extension at all.
func ensureExtension(name, ext string) string {
	if filepath.Ext(name) == "" {
		return name + ext
	}
	return name
}
