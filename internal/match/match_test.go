package match

import (
	"testing"

	"github.com/Priyanshu055/intern-match-backend/internal/model"
)

// =========================================================================
// SCORE TESTS
// =========================================================================

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		candidate []string
		required  []string
		want      int
	}{
		{
			name:      "two of three required skills",
			candidate: []string{"Python", "SQL"},
			required:  []string{"Python", "SQL", "Go"},
			want:      67, // round(100 * 2/3)
		},
		{
			name:      "full overlap",
			candidate: []string{"Go", "Docker"},
			required:  []string{"Go", "Docker"},
			want:      100,
		},
		{
			name:      "no overlap",
			candidate: []string{"Java"},
			required:  []string{"Python", "SQL"},
			want:      0,
		},
		{
			name:      "empty candidate skills",
			candidate: []string{},
			required:  []string{"Python"},
			want:      0,
		},
		{
			name:      "nil candidate skills",
			candidate: nil,
			required:  []string{"Python"},
			want:      0,
		},
		{
			name:      "empty required list scores zero",
			candidate: []string{"Python"},
			required:  []string{},
			want:      0,
		},
		{
			name:      "matching is case-sensitive",
			candidate: []string{"python"},
			required:  []string{"Python"},
			want:      0,
		},
		{
			name:      "extra candidate skills do not dilute the score",
			candidate: []string{"Python", "SQL", "Go", "Rust", "Haskell"},
			required:  []string{"Python"},
			want:      100,
		},
		{
			name:      "one of six rounds half up",
			candidate: []string{"CSS", "HTML", "JS"},
			required:  []string{"CSS", "Go", "HTML", "Rust", "SQL", "C", "Zig", "Lua"},
			want:      38, // round(100 * 3/8) = round(37.5)
		},
		{
			name:      "duplicate required skills count once",
			candidate: []string{"Go"},
			required:  []string{"Go", "Go", "SQL"},
			want:      50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.candidate, tt.required); got != tt.want {
				t.Errorf("Score(%v, %v) = %d, want %d", tt.candidate, tt.required, got, tt.want)
			}
		})
	}
}

func TestScore_AlwaysInRange(t *testing.T) {
	sets := [][]string{nil, {}, {"Go"}, {"Go", "SQL"}, {"a", "b", "c", "d"}}
	for _, cand := range sets {
		for _, req := range sets {
			got := Score(cand, req)
			if got < 0 || got > 100 {
				t.Errorf("Score(%v, %v) = %d, out of [0,100]", cand, req, got)
			}
		}
	}
}

// =========================================================================
// RANK TESTS
// =========================================================================

func internshipWithSkills(id string, skills ...string) model.Internship {
	return model.Internship{ID: id, RequiredSkills: skills}
}

func TestRank_DescendingByScore(t *testing.T) {
	catalog := []model.Internship{
		internshipWithSkills("low", "Rust", "Haskell"),       // 0
		internshipWithSkills("high", "Python", "SQL"),        // 100
		internshipWithSkills("mid", "Python", "SQL", "Go"),   // 67
		internshipWithSkills("half", "Python", "Elixir"),     // 50
	}

	recs := Rank([]string{"Python", "SQL"}, catalog)

	if len(recs) != 4 {
		t.Fatalf("Rank() returned %d recommendations, want 4", len(recs))
	}

	wantOrder := []string{"high", "mid", "half", "low"}
	for i, want := range wantOrder {
		if recs[i].Internship.ID != want {
			t.Errorf("position %d: got %q, want %q", i, recs[i].Internship.ID, want)
		}
	}

	// Monotonicity: a higher score never appears after a lower one.
	for i := 1; i < len(recs); i++ {
		if recs[i].MatchScore > recs[i-1].MatchScore {
			t.Errorf("ranking not monotonic: score %d at %d after %d at %d",
				recs[i].MatchScore, i, recs[i-1].MatchScore, i-1)
		}
	}
}

func TestRank_NoSkillsKeepsCatalogOrder(t *testing.T) {
	catalog := []model.Internship{
		internshipWithSkills("first", "Go"),
		internshipWithSkills("second", "Python"),
		internshipWithSkills("third", "SQL"),
	}

	recs := Rank(nil, catalog)

	for i, want := range []string{"first", "second", "third"} {
		if recs[i].Internship.ID != want {
			t.Errorf("position %d: got %q, want %q (all-zero ranking must keep catalog order)",
				i, recs[i].Internship.ID, want)
		}
		if recs[i].MatchScore != 0 {
			t.Errorf("position %d: score = %d, want 0", i, recs[i].MatchScore)
		}
	}
}

func TestRank_EmptyCatalog(t *testing.T) {
	recs := Rank([]string{"Go"}, nil)
	if len(recs) != 0 {
		t.Errorf("Rank() on empty catalog returned %d items, want 0", len(recs))
	}
}
