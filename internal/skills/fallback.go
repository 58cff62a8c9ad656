package skills

import (
	"strings"

	"github.com/jonathan/jobmarket/internal/types"
)

// Filler skills assigned when extraction finds nothing.
const (
	FillerTech       = "general tech skills"
	FillerHealthcare = "general healthcare skills"
	FillerGeneral    = "general skills"
)

// Categorize assigns a coarse category by counting title keywords of each
// domain as case-insensitive substrings. The strictly higher count wins;
// ties, including zero to zero, yield CategoryUnknown.
func (e *Extractor) Categorize(title string) types.Category {
	if title == "" {
		return types.CategoryUnknown
	}

	lower := strings.ToLower(title)
	techCount := countContained(lower, e.techKeywords)
	healthcareCount := countContained(lower, e.healthcareKeywords)

	switch {
	case techCount > healthcareCount:
		return types.CategoryTech
	case healthcareCount > techCount:
		return types.CategoryHealthcare
	default:
		return types.CategoryUnknown
	}
}

func countContained(text string, keywords []string) int {
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			count++
		}
	}
	return count
}

// FillerSkill returns the generic skill label for a category.
func FillerSkill(category types.Category) string {
	switch category {
	case types.CategoryTech:
		return FillerTech
	case types.CategoryHealthcare:
		return FillerHealthcare
	default:
		return FillerGeneral
	}
}

// Result is the outcome of extraction for one listing.
type Result struct {
	Skills   types.SkillSet
	Fallback bool           // Skills holds a filler label
	Category types.Category // Set only when Fallback is true
}

// Analyze extracts skills from description and, when none are found, falls
// back to a filler label chosen from the title. The returned set is never empty.
func (e *Extractor) Analyze(title, description string) Result {
	found := e.Extract(description)
	if found.Len() > 0 {
		return Result{Skills: found}
	}

	category := e.Categorize(title)
	return Result{
		Skills:   types.NewSkillSet(FillerSkill(category)),
		Fallback: true,
		Category: category,
	}
}
