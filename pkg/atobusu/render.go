package atobusu

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// renderText tokenizes raw template text and renders the resulting
// regions. On any error no partial output is returned.
func renderText(text string, ctx DataContext, cfg *Config) (string, error) {
	regions, err := Tokenize(text)
	if err != nil {
		return "", err
	}
	return renderRegions(regions, ctx, cfg)
}

// renderRegions walks the region sequence in tokenization order and
// reassembles the final text. Every character of input is accounted for
// in either a literal region or a resolved substitution; no region is
// dropped or reordered. One quote converter spans the whole walk, so
// quote parity is counted per template, not per region; preserved call
// regions sit outside the count.
func renderRegions(regions []Region, ctx DataContext, cfg *Config) (string, error) {
	var b strings.Builder
	quotes := newQuoteConverter()
	for _, region := range regions {
		switch region.Type {
		case RegionLiteral:
			b.WriteString(quotes.normalize(region.Text))
		case RegionCall:
			out, err := renderCall(region, ctx)
			if err != nil {
				return "", err
			}
			b.WriteString(out)
		case RegionPlaceholder:
			out, err := renderPlaceholder(region, ctx, cfg, quotes)
			if err != nil {
				return "", err
			}
			b.WriteString(out)
		default:
			return "", fmt.Errorf("unknown region type %d", region.Type)
		}
	}
	return b.String(), nil
}

// renderCall rewrites a substitutable embedded call, preserving the
// wrapper delimiters, function name, and second argument verbatim. A
// block without the two-argument call form passes through untouched; it
// is deliberately not normalized, since curling the quotes inside a
// preserved host expression would corrupt its syntax.
func renderCall(region Region, ctx DataContext) (string, error) {
	if region.Name == "" {
		return region.Text, nil
	}
	arg1, arg2 := region.Args[0], region.Args[1]
	field := designatedField(arg1)
	if field == "" {
		return region.Text, nil
	}
	value, ok := ctx.Lookup(field)
	if !ok {
		if field == "product_code" {
			return "", NewResolutionError(field, string(PatternEmbeddedCall))
		}
		// Name-designated optional fields keep the original argument.
		return region.Text, nil
	}
	return fmt.Sprintf(`<?=%s("%s", "%s")?>`, region.Name, Normalize(value), arg2), nil
}

// designatedField maps an embedded-call argument to the context field
// it stands in for. An argument containing コード or "code" is a
// product-code slot; otherwise the argument designates a named field it
// mentions, or nothing at all.
func designatedField(arg string) string {
	lower := strings.ToLower(arg)
	if strings.Contains(arg, "コード") || strings.Contains(lower, "code") {
		return "product_code"
	}
	for _, field := range []string{"product_name", "category", "reviewer_name"} {
		if strings.Contains(lower, field) {
			return field
		}
	}
	return ""
}

// renderPlaceholder resolves a placeholder region against the context.
// Category falls back to the configured default; product code and the
// date sentinels are required; generic placeholder styles keep their raw
// text when unresolved (or fail in strict mode).
func renderPlaceholder(region Region, ctx DataContext, cfg *Config, quotes *quoteConverter) (string, error) {
	switch region.Pattern {
	case PatternDateFull, PatternDateShort, PatternProductCode:
		rule, _ := LookupPattern(region.Pattern)
		value, ok := ctx.Lookup(rule.Field)
		if !ok {
			return "", NewResolutionError(rule.Field, string(region.Pattern))
		}
		return quotes.normalize(value), nil
	case PatternCategory:
		if value, ok := ctx.Lookup("category"); ok && value != "" {
			return quotes.normalize(value), nil
		}
		return quotes.normalize(cfg.DefaultCategory), nil
	case PatternGeneric, PatternTemplateVar:
		name := strings.TrimSpace(region.Args[0])
		if value, ok := ctx.Lookup(name); ok {
			return quotes.normalize(value), nil
		}
		if cfg.StrictMode {
			return "", NewResolutionError(name, string(region.Pattern))
		}
		GetLogger().Warn("placeholder not found in data context",
			zap.String("name", name),
			zap.String("pattern", string(region.Pattern)))
		return region.Text, nil
	}
	return region.Text, nil
}
