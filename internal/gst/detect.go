package gst

import (
	"strings"

	"github.com/taxstack/gst-api/internal/category"
)

// Detect picks the category whose keywords best overlap the description.
//
// Scoring is a plain substring heuristic: each category scores one point per
// distinct lowercased keyword (the category name counts as a keyword) found
// anywhere inside the lowercased description. Word boundaries are ignored on
// purpose, so "art" matches "smart"; that matches the behaviour the stored
// categories were tuned against. The highest score wins, strict comparison,
// so the first category to reach a score keeps it. A score of zero never
// matches. Returns nil when nothing matches or there are no categories.
func Detect(description string, categories []category.Category) *category.Category {
	normalized := strings.ToLower(strings.TrimSpace(description))
	if normalized == "" {
		return nil
	}

	var best *category.Category
	bestScore := 0
	for i := range categories {
		cat := &categories[i]
		seen := make(map[string]struct{}, len(cat.Keywords)+1)
		for _, kw := range cat.Keywords {
			seen[strings.ToLower(kw)] = struct{}{}
		}
		seen[strings.ToLower(cat.Name)] = struct{}{}

		score := 0
		for kw := range seen {
			if kw == "" {
				continue
			}
			if strings.Contains(normalized, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = cat
		}
	}
	return best
}
