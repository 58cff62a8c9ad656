// Package skills extracts skill keywords from job descriptions and assigns a
// coarse category from the title when nothing is found.
package skills

import (
	"regexp"
	"strings"

	"github.com/jonathan/jobmarket/internal/config"
	"github.com/jonathan/jobmarket/internal/types"
)

// RProgramming is the canonical label recorded for a bare "r" token.
const RProgramming = "r programming"

var (
	// wordPattern matches alphabetic tokens of lowercased text.
	wordPattern = regexp.MustCompile(`\b[a-z]+\b`)
	// rPattern matches a standalone "r" bounded by whitespace, commas or slashes.
	rPattern = regexp.MustCompile(`(?:^|[\s,/])r(?:[\s,/]|$)`)
)

// domain is one vocabulary partition with its licensing context words.
type domain struct {
	singles map[string]bool
	context []string
}

// licensed reports whether any context word appears anywhere in text.
func (d domain) licensed(text string) bool {
	for _, word := range d.context {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

// Extractor matches a fixed vocabulary against free text.
// It is immutable after construction and safe for concurrent use.
type Extractor struct {
	phrases    []string // multi-word entries from every domain
	tech       domain
	healthcare domain

	techKeywords       []string
	healthcareKeywords []string
}

// NewExtractor builds an Extractor from a vocabulary. Entries are lowercased
// and deduplicated.
func NewExtractor(v config.Vocabulary) *Extractor {
	e := &Extractor{
		tech:               domain{singles: make(map[string]bool), context: normalizeList(v.TechContext)},
		healthcare:         domain{singles: make(map[string]bool), context: normalizeList(v.HealthcareContext)},
		techKeywords:       normalizeList(v.TechTitleKeywords),
		healthcareKeywords: normalizeList(v.HealthcareTitleKeywords),
	}

	seenPhrase := make(map[string]bool)
	addEntries := func(entries []string, d *domain) {
		for _, entry := range normalizeList(entries) {
			if len(strings.Fields(entry)) > 1 {
				if !seenPhrase[entry] {
					seenPhrase[entry] = true
					e.phrases = append(e.phrases, entry)
				}
				continue
			}
			d.singles[entry] = true
		}
	}
	addEntries(v.TechSkills, &e.tech)
	addEntries(v.HealthcareSkills, &e.healthcare)

	return e
}

// Extract returns the set of vocabulary skills found in text.
//
// Three techniques are applied and their results unioned:
//  1. multi-word entries match as case-insensitive substrings, unconditionally;
//  2. single-word entries match whole tokens, but only when a context word of
//     the same domain appears somewhere in the text;
//  3. a standalone "r" with technical context is recorded as "r programming".
//
// Empty text yields an empty set.
func (e *Extractor) Extract(text string) types.SkillSet {
	found := types.NewSkillSet()
	if text == "" {
		return found
	}

	lower := strings.ToLower(text)

	// 1. Multi-word phrases
	for _, phrase := range e.phrases {
		if strings.Contains(lower, phrase) {
			found.Add(phrase)
		}
	}

	// 2. Context-gated single words
	techOK := e.tech.licensed(lower)
	healthcareOK := e.healthcare.licensed(lower)
	if techOK || healthcareOK {
		for _, token := range wordPattern.FindAllString(lower, -1) {
			if techOK && e.tech.singles[token] {
				found.Add(token)
			}
			if healthcareOK && e.healthcare.singles[token] {
				found.Add(token)
			}
		}
	}

	// 3. Ambiguous "r"
	if techOK && rPattern.MatchString(lower) {
		found.Add(RProgramming)
	}

	return found
}

func normalizeList(entries []string) []string {
	out := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" || seen[entry] {
			continue
		}
		seen[entry] = true
		out = append(out, entry)
	}
	return out
}
