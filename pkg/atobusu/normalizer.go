package atobusu

import (
	"strings"
)

// ConversionRule maps a source character (or multi-character sequence)
// to its replacement text. A rule whose target equals its source is an
// explicit keep-unchanged entry: it documents that the character was
// considered and deliberately excluded from substitution, so future
// catalog edits cannot silently start converting it.
type ConversionRule struct {
	Source string
	Target string
}

const (
	openingQuote = "“" // left curly double quote
	closingQuote = "”" // right curly double quote
)

// circledNumberRules maps full-width circled numbers to numeric
// character references.
var circledNumberRules = []ConversionRule{
	{"①", "&#9312;"}, {"②", "&#9313;"}, {"③", "&#9314;"},
	{"④", "&#9315;"}, {"⑤", "&#9316;"}, {"⑥", "&#9317;"},
	{"⑦", "&#9318;"}, {"⑧", "&#9319;"}, {"⑨", "&#9320;"},
	{"⑩", "&#9321;"}, {"⑪", "&#9322;"}, {"⑫", "&#9323;"},
	{"⑬", "&#9324;"}, {"⑭", "&#9325;"}, {"⑮", "&#9326;"},
	{"⑯", "&#9327;"}, {"⑰", "&#9328;"}, {"⑱", "&#9329;"},
	{"⑲", "&#9330;"}, {"⑳", "&#9331;"},
}

// specialSymbolRules maps named special symbols to numeric character
// references. ハート is a multi-character source sequence.
var specialSymbolRules = []ConversionRule{
	{"◎", "&#9678;"},
	{"ハート", "&#9825;"},
	{"♪", "&#9834;"},
}

// keepRules are explicit no-op entries. ※ must stay literal.
var keepRules = []ConversionRule{
	{"※", "※"},
}

// ConversionRules returns a copy of the full symbol catalog, including
// the explicit keep-unchanged entries.
func ConversionRules() []ConversionRule {
	rules := make([]ConversionRule, 0, len(circledNumberRules)+len(specialSymbolRules)+len(keepRules))
	rules = append(rules, circledNumberRules...)
	rules = append(rules, specialSymbolRules...)
	rules = append(rules, keepRules...)
	return rules
}

// symbolReplacer applies the whole symbol catalog in a single pass.
var symbolReplacer = newSymbolReplacer()

func newSymbolReplacer() *strings.Replacer {
	pairs := make([]string, 0, 2*(len(circledNumberRules)+len(specialSymbolRules)+len(keepRules)))
	for _, r := range ConversionRules() {
		pairs = append(pairs, r.Source, r.Target)
	}
	return strings.NewReplacer(pairs...)
}

// Normalize applies character-level normalization to text: straight
// double quotes become curly quotes (alternating open/close by
// occurrence parity), circled numbers and special symbols become
// numeric character references, and excluded symbols stay literal.
// Unmapped characters pass through unchanged.
//
// Quote parity is scoped to the given text and starts at an opening
// quote. Rendering threads a shared quoteConverter across the spans of
// one template instead, so a pair straddling a preserved embedded call
// still closes.
//
// Normalize is pure, total, and idempotent: it may be invoked more than
// once on the same value without changing the result.
func Normalize(text string) string {
	return newQuoteConverter().normalize(text)
}

// quoteConverter carries straight-to-curly quote parity across
// successive normalized spans.
type quoteConverter struct {
	opening bool
}

func newQuoteConverter() *quoteConverter {
	return &quoteConverter{opening: true}
}

// normalize applies the full normalization pass to one span, advancing
// the converter's quote parity.
func (q *quoteConverter) normalize(text string) string {
	if text == "" {
		return text
	}
	return symbolReplacer.Replace(q.convertQuotes(text))
}

func (q *quoteConverter) convertQuotes(text string) string {
	if !strings.Contains(text, `"`) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + 8)
	for _, r := range text {
		if r != '"' {
			b.WriteRune(r)
			continue
		}
		if q.opening {
			b.WriteString(openingQuote)
		} else {
			b.WriteString(closingQuote)
		}
		q.opening = !q.opening
	}
	return b.String()
}
