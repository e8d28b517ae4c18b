package atobusu

import (
	"fmt"
	"sort"
	"time"
)

// OutputFormat tags a rendered output as HTML, PHP, or mixed content.
// The tag is metadata only: the engine applies the same substitution
// rules regardless of format, since mixed templates need the same
// call-preserving behavior as pure PHP templates.
type OutputFormat string

const (
	FormatHTML  OutputFormat = "html"
	FormatPHP   OutputFormat = "php"
	FormatMixed OutputFormat = "mixed"
)

// Valid reports whether f is one of the recognized output formats.
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatHTML, FormatPHP, FormatMixed:
		return true
	}
	return false
}

// DataContext is the immutable field mapping supplied to a single render.
// Values may be strings, integers, or nested string maps. Construct it
// with NewDataContext; the input map is copied so later mutation of the
// caller's map does not leak into the context.
type DataContext struct {
	fields map[string]interface{}
}

// NewDataContext builds a context from a field map. Nested maps are
// copied one level deep.
func NewDataContext(fields map[string]interface{}) DataContext {
	copied := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		copied[k] = copyValue(v)
	}
	return DataContext{fields: copied}
}

func copyValue(v interface{}) interface{} {
	switch m := v.(type) {
	case map[string]interface{}:
		inner := make(map[string]interface{}, len(m))
		for k, vv := range m {
			inner[k] = copyValue(vv)
		}
		return inner
	case map[string]string:
		inner := make(map[string]string, len(m))
		for k, vv := range m {
			inner[k] = vv
		}
		return inner
	default:
		return v
	}
}

// Lookup resolves a field name to its string form. Dotted names
// traverse nested maps (e.g. "dates.post_date"). Scalar leaves are
// stringified; a name that resolves to a map or is absent reports false.
func (c DataContext) Lookup(name string) (string, bool) {
	if name == "" || c.fields == nil {
		return "", false
	}
	var cur interface{} = c.fields
	start := 0
	for i := 0; i <= len(name); i++ {
		if i < len(name) && name[i] != '.' {
			continue
		}
		part := name[start:i]
		start = i + 1
		switch m := cur.(type) {
		case map[string]interface{}:
			v, ok := m[part]
			if !ok {
				return "", false
			}
			cur = v
		case map[string]string:
			v, ok := m[part]
			if !ok {
				return "", false
			}
			cur = v
		default:
			return "", false
		}
	}
	return stringify(cur)
}

func stringify(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case int, int32, int64, uint, uint32, uint64, float32, float64, bool:
		return fmt.Sprintf("%v", s), true
	default:
		return "", false
	}
}

// Has reports whether the field resolves to a scalar value.
func (c DataContext) Has(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}

// Fields returns the top-level field names in sorted order.
func (c DataContext) Fields() []string {
	names := make([]string, 0, len(c.fields))
	for k := range c.fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// RenderedOutput is the result of a single render pass. Ownership passes
// to the caller; the engine retains nothing between renders.
type RenderedOutput struct {
	// Text is the final rendered content.
	Text string
	// Format is the output format tag supplied by the caller.
	Format OutputFormat
	// RenderID uniquely identifies this render for log correlation.
	RenderID string
	// RenderedAt records when the render completed.
	RenderedAt time.Time
}
