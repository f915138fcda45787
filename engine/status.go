package engine

import "strings"

// =============================================================================
// STATUS NORMALIZER - Raw labels to canonical categories
// =============================================================================

// defaultSynonyms maps normalized label variants to their canonical category.
// Keys are already in normalized form (lower case, single spaces).
var defaultSynonyms = map[string]Category{
	"wfh":               CategoryWorkFromHome,
	"home":              CategoryWorkFromHome,
	"work from home":    CategoryWorkFromHome,
	"working from home": CategoryWorkFromHome,
	"remote":            CategoryWorkFromHome,
	"in office":         CategoryOffice,
	"in the office":     CategoryOffice,
	"hq":                CategoryOffice,
	"on site":           CategoryField,
	"onsite":            CategoryField,
	"field work":        CategoryField,
	"pto":               CategoryVacation,
	"vacay":             CategoryVacation,
	"annual leave":      CategoryVacation,
	"ooo":               CategoryVacation,
	"out of office":     CategoryVacation,
	"sick day":          CategorySick,
	"sick leave":        CategorySick,
	"ill":               CategorySick,
	"ot":                CategoryOvertime,
}

// Normalizer maps raw free-text status labels to Categories. The vocabulary
// is open: a label with no synonym entry passes through as its normalized
// string, becoming an ad-hoc category instead of an error.
type Normalizer struct {
	synonyms map[string]Category
}

// NewNormalizer builds a Normalizer from the default synonym table plus any
// overrides (typically from configuration). Override keys are normalized
// before insertion so config files may use any casing.
func NewNormalizer(overrides map[string]string) *Normalizer {
	syn := make(map[string]Category, len(defaultSynonyms)+len(overrides))
	for k, v := range defaultSynonyms {
		syn[k] = v
	}
	for k, v := range overrides {
		syn[normalizeLabel(k)] = Category(normalizeLabel(v))
	}
	return &Normalizer{synonyms: syn}
}

// Normalize maps a raw status label to its Category.
func (n *Normalizer) Normalize(raw string) Category {
	label := normalizeLabel(raw)
	if label == "" {
		return CategoryUnknown
	}
	if canonical, ok := n.synonyms[label]; ok {
		return canonical
	}
	return Category(label)
}

// normalizeLabel lower-cases, converts underscores and hyphens to spaces,
// and collapses all internal whitespace runs to single spaces.
func normalizeLabel(raw string) string {
	s := strings.ToLower(raw)
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), " ")
}
