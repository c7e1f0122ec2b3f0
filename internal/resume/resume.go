// Package resume extracts text from uploaded PDF resumes and suggests
// skills the candidate may want to add to their profile.
//
// This is a convenience layer on top of the upload flow: the suggestions
// ride along in the upload response and the candidate decides what to
// keep. Nothing here writes to the profile.
package resume

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ExtractText pulls the plain text out of a PDF document. Returns an
// error for non-PDF or corrupt input; callers treat that as "no
// suggestions", not as a failed upload.
func ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("resume: parsing pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("resume: extracting text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", fmt.Errorf("resume: reading text: %w", err)
	}
	return sb.String(), nil
}

// knownSkills is the vocabulary SuggestSkills matches against. The
// canonical casing here is what lands in the suggestion list.
var knownSkills = []string{
	"Python", "Java", "JavaScript", "TypeScript", "Go", "C", "C++", "C#",
	"Ruby", "PHP", "Swift", "Kotlin", "Rust", "SQL", "HTML", "CSS",
	"React", "Angular", "Vue", "Node.js", "Django", "Flask", "Spring",
	"Docker", "Kubernetes", "AWS", "Azure", "GCP", "Git", "Linux",
	"MongoDB", "PostgreSQL", "MySQL", "Redis", "GraphQL", "REST",
	"Machine Learning", "Data Analysis", "TensorFlow", "PyTorch",
	"Pandas", "NumPy", "Excel", "Tableau", "Figma", "Photoshop",
}

// SuggestSkills scans resume text for known skills and returns the ones
// it finds, in canonical casing, alphabetically.
//
// Single-word skills match against a tokenized set of the text, so "Go"
// inside "Google" does not count. Multi-word skills fall back to
// case-insensitive substring search.
func SuggestSkills(text string) []string {
	if text == "" {
		return nil
	}

	tokens := tokenize(text)
	lower := strings.ToLower(text)

	var found []string
	for _, skill := range knownSkills {
		key := strings.ToLower(skill)
		if strings.ContainsRune(key, ' ') {
			if strings.Contains(lower, key) {
				found = append(found, skill)
			}
			continue
		}
		if tokens[key] {
			found = append(found, skill)
		}
	}

	sort.Strings(found)
	return found
}

// tokenize splits text into a lowercase token set. '+', '#', and '.' are
// treated as word characters so "c++", "c#", and "node.js" survive as
// single tokens; trailing dots are stripped so sentence-ending words
// still match.
func tokenize(text string) map[string]bool {
	tokens := make(map[string]bool)
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if w != "" {
			tokens[w] = true
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}
