package atobusu

import (
	"regexp"
)

// PatternID identifies a pattern family in the catalog.
type PatternID string

const (
	PatternEmbeddedCall PatternID = "embedded_call"
	PatternDateFull     PatternID = "date_full"
	PatternDateShort    PatternID = "date_short"
	PatternCategory     PatternID = "category"
	PatternProductCode  PatternID = "product_code"
	PatternGeneric      PatternID = "generic"
	PatternTemplateVar  PatternID = "template_var"
)

// SubstitutionStrategy describes how a matched span is rewritten.
type SubstitutionStrategy int

const (
	// ReplaceWhole replaces the entire matched span with the resolved value.
	ReplaceWhole SubstitutionStrategy = iota
	// ReplaceCapturedArgsOnly preserves the matched span verbatim except
	// for designated captured arguments.
	ReplaceCapturedArgsOnly
)

// Sentinel placeholder strings recognized by the catalog.
const (
	dateFullSentinel  = "2025/00/00"
	dateShortSentinel = "'25/00/00"
	categorySentinel  = "カテゴリ名"
)

// PatternRule describes one recognized pattern: how to match it, which
// context field it resolves to, and how the match is rewritten.
type PatternRule struct {
	ID       PatternID
	Strategy SubstitutionStrategy
	// Field is the data-context field a ReplaceWhole rule resolves to.
	Field string
	// Required marks fields with no defined default; a missing required
	// field is a fatal resolution error for the render.
	Required bool
	regex    *regexp.Regexp
}

// Regex returns the compiled match expression for the rule.
func (r PatternRule) Regex() *regexp.Regexp {
	return r.regex
}

var (
	// phpBlockRegex consumes any <?= ... ?> block. Embedded blocks are
	// recognized before placeholder rules so that quoted strings inside
	// them are never independently matched.
	phpBlockRegex = regexp.MustCompile(`(?s)<\?=.*?\?>`)

	// callFormRegex recognizes the substitutable two-string-argument
	// call form inside an embedded block.
	callFormRegex = regexp.MustCompile(`^<\?=([A-Za-z_][A-Za-z0-9_]*)\("([^"]*)", "([^"]*)"\)\?>$`)

	dateFullRegex    = regexp.MustCompile(regexp.QuoteMeta(dateFullSentinel))
	dateShortRegex   = regexp.MustCompile(regexp.QuoteMeta(dateShortSentinel))
	categoryRegex    = regexp.MustCompile(regexp.QuoteMeta(categorySentinel))
	productCodeRegex = regexp.MustCompile(`商品コード|製品コード|PRODUCT_CODE|product_code|item_code`)
	genericRegex     = regexp.MustCompile(`\{\{([^}]+)\}\}`)
	templateVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)
)

// patternCatalog is the fixed, ordered rule list. Declaration order is
// the priority order: embedded calls are consumed first so that dates,
// category text, or product codes nested inside a preserved call are
// never substituted on their own, then dates and category, then
// product-code aliases, then the generic placeholder styles.
var patternCatalog = []PatternRule{
	{ID: PatternEmbeddedCall, Strategy: ReplaceCapturedArgsOnly, Field: "product_code", Required: true, regex: phpBlockRegex},
	{ID: PatternDateFull, Strategy: ReplaceWhole, Field: "post_date", Required: true, regex: dateFullRegex},
	{ID: PatternDateShort, Strategy: ReplaceWhole, Field: "short_date", Required: true, regex: dateShortRegex},
	{ID: PatternCategory, Strategy: ReplaceWhole, Field: "category", regex: categoryRegex},
	{ID: PatternProductCode, Strategy: ReplaceWhole, Field: "product_code", Required: true, regex: productCodeRegex},
	{ID: PatternGeneric, Strategy: ReplaceWhole, regex: genericRegex},
	{ID: PatternTemplateVar, Strategy: ReplaceWhole, regex: templateVarRegex},
}

// PatternCatalog returns the ordered pattern rules. The slice is a copy;
// the underlying rules are read-only after process initialization and
// safe to share across renders without locking.
func PatternCatalog() []PatternRule {
	rules := make([]PatternRule, len(patternCatalog))
	copy(rules, patternCatalog)
	return rules
}

// LookupPattern returns the catalog rule with the given id.
func LookupPattern(id PatternID) (PatternRule, bool) {
	for _, rule := range patternCatalog {
		if rule.ID == id {
			return rule, true
		}
	}
	return PatternRule{}, false
}
