package lesson

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

const indexPlaceholder = "{n}"

// TitleRule picks a title prefix for every category whose name contains Match.
// Format holds "{n}" for the per-category index; without it the prefix is a plain label.
type TitleRule struct {
	Match  string `yaml:"match"`
	Format string `yaml:"format"`
}

type TitleScheme struct {
	Rules   []TitleRule `yaml:"rules"`
	Default string      `yaml:"default"`
}

// DefaultTitleScheme mirrors the course's published numbering.
var DefaultTitleScheme = TitleScheme{
	Rules: []TitleRule{
		{Match: "基础语法", Format: "{n}. "},
		{Match: "内置指标", Format: "指标 {n}: "},
		{Match: "量化策略", Format: "策略 {n}: "},
		{Match: "参考资料", Format: "附录: "},
	},
	Default: "{n}. ",
}

func (s TitleScheme) format(category string) string {
	for _, r := range s.Rules {
		if strings.Contains(category, r.Match) {
			return r.Format
		}
	}
	return s.defaultFormat()
}

func (s TitleScheme) defaultFormat() string {
	if s.Default == "" {
		return indexPlaceholder + ". "
	}
	return s.Default
}

func (s TitleScheme) formats() []string {
	fmts := make([]string, 0, len(s.Rules)+1)
	for _, r := range s.Rules {
		fmts = append(fmts, r.Format)
	}
	return append(fmts, s.defaultFormat())
}

// stripPatterns turns every format into a regexp matching what it produces,
// with flexible whitespace and any number in place of "{n}".
func (s TitleScheme) stripPatterns() []*regexp.Regexp {
	var pats []*regexp.Regexp
	seen := make(map[string]bool)
	for _, f := range s.formats() {
		var sb strings.Builder
		sb.WriteString("^")
		parts := strings.Split(f, indexPlaceholder)
		for i, part := range parts {
			if i > 0 {
				sb.WriteString(`\s*\d+`)
			}
			for _, field := range strings.FieldsFunc(part, unicode.IsSpace) {
				sb.WriteString(`\s*`)
				sb.WriteString(regexp.QuoteMeta(field))
			}
		}
		sb.WriteString(`\s*`)
		expr := sb.String()
		if expr == `^\s*` || seen[expr] {
			continue
		}
		seen[expr] = true
		pats = append(pats, regexp.MustCompile(expr))
	}
	return pats
}

// Validate rejects formats that cannot be stripped again reliably.
func (s TitleScheme) Validate() error {
	for i, r := range s.Rules {
		if r.Match == "" {
			return errors.Errorf("title rule %d: empty match", i)
		}
	}
	for _, f := range s.formats() {
		if strings.Count(f, indexPlaceholder) > 1 {
			return errors.Errorf("title format %q uses %s more than once", f, indexPlaceholder)
		}
		if strings.TrimSpace(f) == "" {
			return errors.Errorf("title format %q is blank", f)
		}
	}
	return nil
}

// CleanTitle strips every known prefix from title until none is left.
func (s TitleScheme) CleanTitle(title string) string {
	return cleanTitle(title, s.stripPatterns())
}

func cleanTitle(title string, pats []*regexp.Regexp) string {
	cleaned := strings.TrimLeftFunc(title, unicode.IsSpace)
	for {
		before := cleaned
		for _, p := range pats {
			cleaned = p.ReplaceAllString(cleaned, "")
		}
		if cleaned == before {
			return cleaned
		}
	}
}

// label is the text of a number-less format without its separators, e.g. "附录".
func label(format string) string {
	return strings.TrimRightFunc(format, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
}

// Renumber rewrites every title as prefix(category, index) + cleaned title.
// The per-category index is threaded through the fold, starting at 1.
// Applying it to its own output changes nothing.
func Renumber(lessons []Lesson, scheme TitleScheme) []Lesson {
	pats := scheme.stripPatterns()
	out := CloneAll(lessons)

	next := make(map[string]int)
	for i := range out {
		cat := out[i].Category
		if cat == "" {
			cat = DefaultCategory
		}
		idx := next[cat] + 1
		next[cat] = idx

		out[i].Title = applyFormat(scheme.format(cat), idx, cleanTitle(out[i].Title, pats))
	}
	return out
}

func applyFormat(format string, idx int, cleaned string) string {
	if strings.Contains(format, indexPlaceholder) {
		return strings.Replace(format, indexPlaceholder, strconv.Itoa(idx), 1) + cleaned
	}
	if lbl := label(format); lbl != "" && strings.Contains(cleaned, lbl) {
		return cleaned
	}
	return format + cleaned
}
