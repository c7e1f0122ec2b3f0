// Package match contains the skill-matching and recommendation-ranking
// logic. Everything in here is a pure function over in-memory values
// (no database, no HTTP), which is what makes the scoring rules trivially
// testable.
package match

import (
	"math"
	"sort"

	"github.com/Priyanshu055/intern-match-backend/internal/model"
)

// Score computes the percentage overlap between a candidate's skills and
// an internship's required skills, as an integer in [0, 100]:
//
//	round(100 × |required ∩ candidate| / |required|)
//
// Matching is exact and case-sensitive: "python" does not match "Python".
// Duplicate entries on either side count once (set semantics).
//
// Two degenerate cases both score 0:
//   - the candidate has no skills recorded (no profile, or an empty list)
//   - the internship lists no required skills (there is nothing to match
//     against, and dividing by zero would be worse than a zero score)
func Score(candidateSkills, requiredSkills []string) int {
	if len(candidateSkills) == 0 || len(requiredSkills) == 0 {
		return 0
	}

	have := make(map[string]bool, len(candidateSkills))
	for _, s := range candidateSkills {
		have[s] = true
	}

	seen := make(map[string]bool, len(requiredSkills))
	matched, total := 0, 0
	for _, s := range requiredSkills {
		if seen[s] {
			continue // count each required skill once
		}
		seen[s] = true
		total++
		if have[s] {
			matched++
		}
	}

	// math.Round rounds half away from zero, which for non-negative
	// ratios is exactly round-half-up.
	return int(math.Round(100 * float64(matched) / float64(total)))
}

// Recommendation pairs an internship with its match score for one
// candidate.
type Recommendation struct {
	Internship model.Internship `json:"internship"`
	MatchScore int              `json:"matchScore"`
}

// Rank scores every internship in the catalog against the candidate's
// skills and returns them ordered by descending score.
//
// The sort is stable, so internships with equal scores keep their catalog
// order; in particular, a candidate with no skills sees the catalog
// unchanged with every score at 0.
func Rank(candidateSkills []string, internships []model.Internship) []Recommendation {
	recs := make([]Recommendation, 0, len(internships))
	for _, in := range internships {
		recs = append(recs, Recommendation{
			Internship: in,
			MatchScore: Score(candidateSkills, in.RequiredSkills),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].MatchScore > recs[j].MatchScore
	})

	return recs
}
