package atobusu

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatternError(t *testing.T) {
	err := NewPatternError("embedded call is never closed", `<?=prod_info(`, 12)
	assert.True(t, IsPatternError(err))
	assert.False(t, IsResolutionError(err))
	assert.Contains(t, err.Error(), "offset 12")
	assert.Contains(t, err.Error(), `<?=prod_info(`)

	noSpan := NewPatternError("broken", "", 0)
	assert.Equal(t, "pattern error at offset 0: broken", noSpan.Error())
}

func TestResolutionError(t *testing.T) {
	err := NewResolutionError("product_code", "date_full")
	assert.True(t, IsResolutionError(err))
	assert.False(t, IsPatternError(err))
	assert.Contains(t, err.Error(), `"product_code"`)
	assert.Contains(t, err.Error(), "date_full")

	noPattern := NewResolutionError("post_date", "")
	assert.Equal(t, `resolution error: no value for field "post_date"`, noPattern.Error())
}

func TestEncodingError(t *testing.T) {
	err := NewEncodingError(7)
	assert.True(t, IsEncodingError(err))
	assert.Equal(t, "encoding error: invalid UTF-8 sequence at byte 7", err.Error())
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("render template: %w", NewResolutionError("short_date", "date_short"))
	assert.True(t, IsResolutionError(wrapped))
	assert.False(t, IsEncodingError(wrapped))
	assert.False(t, IsPatternError(wrapped))
}
