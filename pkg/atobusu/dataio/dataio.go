// Package dataio loads structured page data from JSON and YAML sources
// and prepares the data context consumed by the rendering engine.
package dataio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"github.com/atobusu/atobusu/pkg/atobusu"
)

// TemplateData is the structured input for a single page render.
type TemplateData struct {
	ProductCode  string                 `json:"product_code" yaml:"product_code"`
	ProductName  string                 `json:"product_name" yaml:"product_name"`
	Dates        map[string]string      `json:"dates" yaml:"dates"`
	Category     string                 `json:"category" yaml:"category"`
	ReviewerName string                 `json:"reviewer_name" yaml:"reviewer_name"`
	Rating       int                    `json:"rating" yaml:"rating"`
	Additional   map[string]interface{} `json:"additional_data" yaml:"additional_data"`
}

// Validate checks structural constraints on the data. It does not judge
// business semantics of product fields.
func (d TemplateData) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Rating, validation.Min(0), validation.Max(5)),
	)
}

// Context flattens the data into the engine's immutable context. Date
// entries and additional fields are promoted to top level; empty string
// fields are omitted so that required-field resolution can fail for
// them.
func (d TemplateData) Context() atobusu.DataContext {
	fields := make(map[string]interface{})
	put := func(name, value string) {
		if value != "" {
			fields[name] = value
		}
	}
	put("product_code", d.ProductCode)
	put("product_name", d.ProductName)
	put("category", d.Category)
	put("reviewer_name", d.ReviewerName)
	fields["rating"] = d.Rating

	for k, v := range d.Dates {
		put(k, v)
	}
	if len(d.Dates) > 0 {
		fields["dates"] = d.Dates
	}
	for k, v := range d.Additional {
		fields[k] = v
	}
	return atobusu.NewDataContext(fields)
}

// ParseJSON parses a JSON data file.
func ParseJSON(path string) (*TemplateData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	var data TemplateData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON format in %s: %w", path, err)
	}
	return &data, nil
}

// ParseYAML parses a YAML data file. An empty document yields zero-value data.
func ParseYAML(path string) (*TemplateData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file: %w", err)
	}
	var data TemplateData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid YAML format in %s: %w", path, err)
	}
	return &data, nil
}

// ParseFile parses a data file, selecting the parser by extension.
func ParseFile(path string) (*TemplateData, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(path)
	case ".yaml", ".yml":
		return ParseYAML(path)
	default:
		return nil, fmt.Errorf("unsupported data file extension: %s", filepath.Ext(path))
	}
}

// encodingByName resolves the configured encoding names used for legacy
// marketing page files.
func encodingByName(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "shift_jis", "shift-jis", "sjis":
		return japanese.ShiftJIS, nil
	case "euc-jp", "eucjp":
		return japanese.EUCJP, nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", name)
	}
}

// DecodeText converts raw file bytes in the named encoding to UTF-8.
func DecodeText(raw []byte, encodingName string) (string, error) {
	enc, err := encodingByName(encodingName)
	if err != nil {
		return "", err
	}
	if enc == nil {
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("text is not valid UTF-8")
		}
		return string(raw), nil
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s text: %w", encodingName, err)
	}
	return string(decoded), nil
}

// EncodeText converts UTF-8 text to the named encoding for writing.
func EncodeText(text, encodingName string) ([]byte, error) {
	enc, err := encodingByName(encodingName)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return []byte(text), nil
	}
	encoded, _, err := transform.Bytes(enc.NewEncoder(), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to encode text as %s: %w", encodingName, err)
	}
	return encoded, nil
}
