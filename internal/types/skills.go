package types

import (
	"encoding/json"
	"sort"
	"strings"
)

// Category is the coarse domain assigned from a job title when no skills were extracted.
type Category string

const (
	CategoryTech       Category = "tech"
	CategoryHealthcare Category = "healthcare"
	CategoryUnknown    Category = "unknown"
)

// SkillSet is an unordered, duplicate-free collection of skill keywords.
type SkillSet map[string]struct{}

// NewSkillSet builds a set from the given skills, ignoring empty strings.
func NewSkillSet(skills ...string) SkillSet {
	s := make(SkillSet, len(skills))
	for _, skill := range skills {
		s.Add(skill)
	}
	return s
}

// Add inserts a skill into the set.
func (s SkillSet) Add(skill string) {
	if skill == "" {
		return
	}
	s[skill] = struct{}{}
}

// Has reports whether the set contains skill.
func (s SkillSet) Has(skill string) bool {
	_, ok := s[skill]
	return ok
}

// Len returns the number of skills in the set.
func (s SkillSet) Len() int {
	return len(s)
}

// Sorted returns the skills in lexical order.
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for skill := range s {
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}

// Join serializes the set as a single space-separated string.
// This is lossy: multi-word skills cannot be told apart from single words afterwards.
func (s SkillSet) Join() string {
	return strings.Join(s.Sorted(), " ")
}

// MarshalJSON encodes the set as a sorted array.
func (s SkillSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes the set from an array of strings.
func (s *SkillSet) UnmarshalJSON(data []byte) error {
	var skills []string
	if err := json.Unmarshal(data, &skills); err != nil {
		return err
	}
	*s = NewSkillSet(skills...)
	return nil
}
