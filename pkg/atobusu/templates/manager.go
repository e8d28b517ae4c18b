// Package templates manages template files on disk: loading, optional
// YAML front matter, output format detection, and region caching in
// front of the rendering engine.
package templates

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"go.uber.org/zap"

	"github.com/atobusu/atobusu/pkg/atobusu"
	"github.com/atobusu/atobusu/pkg/atobusu/dataio"
)

// TemplateMeta is the optional YAML front matter a template may declare.
type TemplateMeta struct {
	// Format overrides output format detection (html, php, mixed).
	Format string `yaml:"format"`
	// Type tags the template kind (page, index, content).
	Type string `yaml:"type"`
}

// Manager loads templates from a directory and renders them through the
// engine, caching tokenized regions per template name.
type Manager struct {
	dir    string
	engine *atobusu.Engine
	cache  *atobusu.RegionCache
	logger *zap.Logger
}

// NewManager creates a manager rooted at dir using the default engine.
func NewManager(dir string) *Manager {
	return NewManagerWithEngine(dir, atobusu.New())
}

// NewManagerWithEngine creates a manager rooted at dir using a custom engine.
func NewManagerWithEngine(dir string, engine *atobusu.Engine) *Manager {
	return &Manager{
		dir:    dir,
		engine: engine,
		cache:  engine.Cache(),
		logger: atobusu.GetLogger(),
	}
}

// Load reads a template file, transcodes it to UTF-8 per the configured
// template encoding, and strips optional YAML front matter. The returned
// body is the raw template text handed to the tokenizer.
func (m *Manager) Load(name string) (string, *TemplateMeta, error) {
	path := filepath.Join(m.dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load template %s: %w", name, err)
	}

	text, err := dataio.DecodeText(raw, m.engine.Config().TemplateEncoding)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode template %s: %w", name, err)
	}

	meta := &TemplateMeta{}
	body, err := frontmatter.Parse(strings.NewReader(text), meta)
	if err != nil {
		return "", nil, fmt.Errorf("invalid front matter in template %s: %w", name, err)
	}

	m.logger.Debug("template loaded",
		zap.String("template", name),
		zap.Int("length", len(body)))
	return string(body), meta, nil
}

// Format determines the output format of a template: declared front
// matter wins, then the file extension, then a content probe for
// embedded PHP.
func (m *Manager) Format(name string, meta *TemplateMeta, body string) atobusu.OutputFormat {
	if meta != nil {
		if f := atobusu.OutputFormat(meta.Format); f.Valid() {
			return f
		}
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".php":
		return atobusu.FormatPHP
	case ".html", ".htm":
		if strings.Contains(body, "<?") {
			return atobusu.FormatMixed
		}
		return atobusu.FormatHTML
	default:
		return atobusu.FormatMixed
	}
}

// Render loads a template by name and renders it with the given
// context. Tokenized regions are cached per template name.
func (m *Manager) Render(name string, ctx atobusu.DataContext) (*atobusu.RenderedOutput, error) {
	body, meta, err := m.Load(name)
	if err != nil {
		return nil, err
	}

	regions, err := m.cache.GetOrTokenize(name, body)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize template %s: %w", name, err)
	}

	format := m.Format(name, meta, body)
	out, err := m.engine.RenderRegions(regions, ctx, format)
	if err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return out, nil
}

// List returns the relative paths of all template files under the
// manager's directory, sorted.
func (m *Manager) List() ([]string, error) {
	var names []string
	err := filepath.WalkDir(m.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(m.dir, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether a template file exists.
func (m *Manager) Exists(name string) bool {
	info, err := os.Stat(filepath.Join(m.dir, name))
	return err == nil && !info.IsDir()
}

// ClearCache drops all cached region sequences.
func (m *Manager) ClearCache() {
	m.cache.Clear()
}
