package atobusu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputFormatValid(t *testing.T) {
	assert.True(t, FormatHTML.Valid())
	assert.True(t, FormatPHP.Valid())
	assert.True(t, FormatMixed.Valid())
	assert.False(t, OutputFormat("docx").Valid())
	assert.False(t, OutputFormat("").Valid())
}

func TestDataContextLookup(t *testing.T) {
	ctx := NewDataContext(map[string]interface{}{
		"product_code": "ABC123",
		"rating":       5,
		"price":        19.99,
		"published":    true,
		"dates": map[string]string{
			"post_date": "2025/01/15",
		},
		"additional": map[string]interface{}{
			"inner": map[string]interface{}{"deep": "value"},
		},
	})

	tests := []struct {
		name   string
		key    string
		want   string
		wantOK bool
	}{
		{name: "string field", key: "product_code", want: "ABC123", wantOK: true},
		{name: "int field", key: "rating", want: "5", wantOK: true},
		{name: "float field", key: "price", want: "19.99", wantOK: true},
		{name: "bool field", key: "published", want: "true", wantOK: true},
		{name: "dotted path into string map", key: "dates.post_date", want: "2025/01/15", wantOK: true},
		{name: "dotted path two levels", key: "additional.inner.deep", want: "value", wantOK: true},
		{name: "missing field", key: "nope", wantOK: false},
		{name: "missing nested field", key: "dates.nope", wantOK: false},
		{name: "map is not a scalar", key: "dates", wantOK: false},
		{name: "empty name", key: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ctx.Lookup(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDataContextIsolatedFromSourceMap(t *testing.T) {
	fields := map[string]interface{}{
		"product_code": "BEFORE",
		"dates":        map[string]string{"post_date": "2025/01/01"},
	}
	ctx := NewDataContext(fields)

	fields["product_code"] = "AFTER"
	fields["dates"].(map[string]string)["post_date"] = "1999/01/01"

	v, ok := ctx.Lookup("product_code")
	assert.True(t, ok)
	assert.Equal(t, "BEFORE", v)

	v, ok = ctx.Lookup("dates.post_date")
	assert.True(t, ok)
	assert.Equal(t, "2025/01/01", v)
}

func TestDataContextHasAndFields(t *testing.T) {
	ctx := NewDataContext(map[string]interface{}{
		"b": "2",
		"a": "1",
	})
	assert.True(t, ctx.Has("a"))
	assert.False(t, ctx.Has("c"))
	assert.Equal(t, []string{"a", "b"}, ctx.Fields())
}

func TestDataContextZeroValue(t *testing.T) {
	var ctx DataContext
	_, ok := ctx.Lookup("anything")
	assert.False(t, ok)
	assert.Empty(t, ctx.Fields())
}
