package atobusu

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// RegionType represents the type of a template region.
type RegionType int

const (
	// RegionLiteral is ordinary text; the normalizer runs over it before
	// it is appended to output.
	RegionLiteral RegionType = iota
	// RegionCall is an embedded host-function call whose wrapper syntax
	// survives rendering verbatim.
	RegionCall
	// RegionPlaceholder is a recognized sentinel resolved against the
	// data context.
	RegionPlaceholder
)

// Region is a typed, non-overlapping span of template text. Regions
// partition the template exactly: concatenating Region.Text values in
// order reconstructs the original input byte-for-byte.
type Region struct {
	Type    RegionType
	Pattern PatternID
	// Text is the raw matched span.
	Text string
	// Name is the function name of a substitutable embedded call. It is
	// empty for preserved-verbatim blocks that do not have the
	// two-string-argument call form.
	Name string
	// Args holds captured sub-parts: both string arguments for a call,
	// or the variable name for generic placeholder styles.
	Args []string
}

// Tokenize splits raw template text into an ordered region sequence in
// a single left-to-right scan. At each position the earliest catalog
// match wins; two matches starting at the same offset are resolved by
// catalog declaration order, not longest-match.
//
// An opening <?= that is never closed is a pattern error; input that is
// not valid UTF-8 is an encoding error.
func Tokenize(input string) ([]Region, error) {
	if off := invalidUTF8Offset(input); off >= 0 {
		return nil, NewEncodingError(off)
	}

	logger := GetLogger()
	debug := debugEnabled()
	if debug {
		logger.Debug("starting tokenization", zap.Int("input_length", len(input)))
	}

	rules := patternCatalog
	next := make([][]int, len(rules))
	done := make([]bool, len(rules))

	var regions []Region
	pos := 0
	for {
		best := -1
		bestStart := len(input)
		for i := range rules {
			if done[i] {
				continue
			}
			// A cached match that begins inside an already consumed span
			// can shadow a later valid one, so the rule is re-scanned
			// from the cursor instead of skipped.
			if next[i] == nil || next[i][0] < pos {
				next[i] = matchFrom(rules[i].regex, input, pos)
				if next[i] == nil {
					done[i] = true
					continue
				}
			}
			if next[i][0] < bestStart {
				best = i
				bestStart = next[i][0]
			}
		}
		if best < 0 {
			break
		}
		m := next[best]
		if bestStart > pos {
			lit, err := literalRegion(input[pos:bestStart], pos)
			if err != nil {
				return nil, err
			}
			regions = append(regions, lit)
		}
		region := newRegion(rules[best], input, m)
		if debug {
			logger.Debug("matched region",
				zap.String("pattern", string(region.Pattern)),
				zap.Int("offset", bestStart))
		}
		regions = append(regions, region)
		pos = m[1]
		next[best] = nil
	}
	if pos < len(input) {
		lit, err := literalRegion(input[pos:], pos)
		if err != nil {
			return nil, err
		}
		regions = append(regions, lit)
	}

	if debug {
		logger.Debug("tokenization complete", zap.Int("region_count", len(regions)))
	}
	return regions, nil
}

// literalRegion emits a literal span, rejecting any stray call opener:
// a <?= surviving into literal text means the block was never closed.
func literalRegion(text string, base int) (Region, error) {
	if i := strings.Index(text, "<?="); i >= 0 {
		span := text[i:]
		if len(span) > 40 {
			span = span[:40]
		}
		return Region{}, NewPatternError("embedded call is never closed", span, base+i)
	}
	return Region{Type: RegionLiteral, Text: text}, nil
}

func newRegion(rule PatternRule, input string, m []int) Region {
	text := input[m[0]:m[1]]
	switch rule.ID {
	case PatternEmbeddedCall:
		if sm := callFormRegex.FindStringSubmatch(text); sm != nil {
			return Region{
				Type:    RegionCall,
				Pattern: rule.ID,
				Text:    text,
				Name:    sm[1],
				Args:    []string{sm[2], sm[3]},
			}
		}
		// Not the two-argument call form: preserved verbatim.
		return Region{Type: RegionCall, Pattern: rule.ID, Text: text}
	case PatternGeneric, PatternTemplateVar:
		return Region{
			Type:    RegionPlaceholder,
			Pattern: rule.ID,
			Text:    text,
			Args:    []string{input[m[2]:m[3]]},
		}
	default:
		return Region{Type: RegionPlaceholder, Pattern: rule.ID, Text: text}
	}
}

// matchFrom finds the leftmost match of re at or after pos, with all
// submatch indices shifted to absolute input offsets.
func matchFrom(re *regexp.Regexp, input string, pos int) []int {
	m := re.FindStringSubmatchIndex(input[pos:])
	if m == nil {
		return nil
	}
	for i := range m {
		if m[i] >= 0 {
			m[i] += pos
		}
	}
	return m
}

// invalidUTF8Offset returns the byte offset of the first invalid UTF-8
// sequence, or -1 when the string is valid.
func invalidUTF8Offset(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
