// Package cleaning turns fetched job records into cleaned, enriched records.
package cleaning

import (
	"sort"

	"github.com/jonathan/jobmarket/internal/parsing"
	"github.com/jonathan/jobmarket/internal/skills"
	"github.com/jonathan/jobmarket/internal/types"
)

// SalaryMid returns the midpoint of a salary range.
func SalaryMid(minSalary, maxSalary float64) float64 {
	return (minSalary + maxSalary) / 2
}

// CleanRecord derives a cleaned record from rec. It reports false when the
// record lacks a salary bound or a coordinate and must be dropped.
func CleanRecord(rec types.JobRecord, extractor *skills.Extractor) (types.CleanedJobRecord, skills.Result, bool) {
	if !rec.Complete() {
		return types.CleanedJobRecord{}, skills.Result{}, false
	}

	res := extractor.Analyze(rec.Title, rec.Description)

	return types.CleanedJobRecord{
		Title:       rec.Title,
		Description: rec.Description,
		SalaryMin:   *rec.SalaryMin,
		SalaryMax:   *rec.SalaryMax,
		Latitude:    *rec.Latitude,
		Longitude:   *rec.Longitude,
		SalaryMid:   SalaryMid(*rec.SalaryMin, *rec.SalaryMax),
		Location:    parsing.ParseLocation(rec.Location),
		Skills:      res.Skills,
	}, res, true
}

// Stats describes one cleaning pass.
type Stats struct {
	Input       int                    `json:"input"`
	Dropped     int                    `json:"dropped"`
	Output      int                    `json:"output"`
	Fallback    map[types.Category]int `json:"fallback"` // Records that received a filler skill, by title category
	SkillCounts map[string]int         `json:"skill_counts"`
}

// SkillCount is a skill with the number of records it appears in.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// FallbackTotal returns the number of records that received a filler skill.
func (s *Stats) FallbackTotal() int {
	total := 0
	for _, n := range s.Fallback {
		total += n
	}
	return total
}

// TopSkills returns the n most frequent skills, ties broken alphabetically.
func (s *Stats) TopSkills(n int) []SkillCount {
	out := make([]SkillCount, 0, len(s.SkillCounts))
	for skill, count := range s.SkillCounts {
		out = append(out, SkillCount{Skill: skill, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Skill < out[j].Skill
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Clean processes a whole table: incomplete records are dropped and every
// remaining record is enriched. The input slice is not modified.
func Clean(records []types.JobRecord, extractor *skills.Extractor) ([]types.CleanedJobRecord, *Stats) {
	stats := &Stats{
		Input:       len(records),
		Fallback:    make(map[types.Category]int),
		SkillCounts: make(map[string]int),
	}

	out := make([]types.CleanedJobRecord, 0, len(records))
	for _, rec := range records {
		cleaned, res, ok := CleanRecord(rec, extractor)
		if !ok {
			stats.Dropped++
			continue
		}
		if res.Fallback {
			stats.Fallback[res.Category]++
		}
		for skill := range cleaned.Skills {
			stats.SkillCounts[skill]++
		}
		out = append(out, cleaned)
	}

	stats.Output = len(out)
	return out, stats
}
