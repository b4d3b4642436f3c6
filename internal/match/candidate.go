package match

import (
	"sort"
)

// Candidate is a known name ranked against a word.
type Candidate struct {
	Name string

	// Distance is the edit distance between the normalized word and name.
	Distance int
	// Score is the normalized similarity (0-1), higher is closer.
	Score float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Rank scores every candidate name against word and returns them sorted
// closest first. Exact matches are kept with distance 0.
func Rank(word string, names []string) CandidateList {
	norm := NormalizeIdent(word)

	candidates := make(CandidateList, 0, len(names))
	for _, name := range names {
		other := NormalizeIdent(name)
		candidates = append(candidates, Candidate{
			Name:     name,
			Distance: Levenshtein(norm, other),
			Score:    LevenshteinNormalized(norm, other),
		})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns the names within maxDist edits of word, closest first.
// A name spelled exactly like word is not a suggestion.
func Suggest(word string, names []string, maxDist int) []string {
	var out []string

	for _, c := range Rank(word, names) {
		if c.Distance > maxDist {
			break
		}

		if c.Name == word {
			continue
		}

		out = append(out, c.Name)
	}

	return out
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by distance ascending, then score descending, then name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Distance != c[j].Distance {
		return c[i].Distance < c[j].Distance
	}

	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}
