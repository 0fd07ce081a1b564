package match

import (
	"math"
	"strings"

	"github.com/doplab/jobfinder/pkg/models"
)

// Engine scores applicants against job offers. It carries the synonym
// table built at construction time and is safe for concurrent use.
type Engine struct {
	syn *Synonyms
}

// NewEngine creates an engine with the default synonym table.
func NewEngine() *Engine {
	return &Engine{syn: NewSynonyms()}
}

const (
	skillsWeight         = 0.7
	qualificationsWeight = 0.3
)

// ApplicantPhrases builds the phrase set the scorer works from: the
// structured skill list, trimmed, lowercased and deduplicated, falling
// back to the legacy comma-separated string when the list is empty.
func ApplicantPhrases(skills []string, legacy string) []string {
	var phrases []string
	seen := make(map[string]bool)
	appendPhrase := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		phrases = append(phrases, s)
	}
	for _, s := range skills {
		appendPhrase(s)
	}
	if len(phrases) == 0 && legacy != "" {
		for _, s := range strings.Split(legacy, ",") {
			appendPhrase(s)
		}
	}
	return phrases
}

// ListSimilarity averages the per-requirement best phrase similarity
// against the candidate phrases and scales it to [0,100]. An empty
// requirement or candidate set yields 0: stating no requirements never
// inflates a score.
func (e *Engine) ListSimilarity(requirements, candidatePhrases []string) float64 {
	if len(requirements) == 0 || len(candidatePhrases) == 0 {
		return 0.0
	}

	sum := 0.0
	n := 0
	for _, r := range requirements {
		if strings.TrimSpace(r) == "" {
			continue
		}
		best := 0.0
		for _, c := range candidatePhrases {
			if s := e.PhraseSimilarity(r, c); s > best {
				best = s
			}
			if best >= 1.0 {
				break
			}
		}
		sum += best
		n++
	}
	if n == 0 {
		return 0.0
	}
	return (sum / float64(n)) * 100.0
}

// Score computes the 0-100 match score between an applicant's phrase set
// and a job offer, rounded to one decimal. Pure: no I/O, no side
// effects; persisting the result is the caller's concern.
//
// With requirement lists present the score is a weighted blend of skill
// and qualification list similarity. Without any lists it falls back to
// plain token overlap between the offer's title+description and the
// applicant's tokens.
func (e *Engine) Score(applicantPhrases []string, offer *models.JobOffer) float64 {
	if len(applicantPhrases) == 0 {
		return 0.0
	}

	hasSkills := len(offer.RequiredSkills) > 0
	hasQuals := len(offer.RequiredQualifications) > 0

	if hasSkills || hasQuals {
		skillsScore := 0.0
		if hasSkills {
			skillsScore = e.ListSimilarity(offer.RequiredSkills, applicantPhrases)
		}
		qualsScore := 0.0
		if hasQuals {
			qualsScore = e.ListSimilarity(offer.RequiredQualifications, applicantPhrases)
		}

		var result float64
		switch {
		case hasSkills && hasQuals:
			result = skillsWeight*skillsScore + qualificationsWeight*qualsScore
		case hasSkills:
			result = skillsScore
		default:
			result = qualsScore
		}
		return round1(result)
	}

	jobTokens := Tokenize(offer.Title + " " + offer.Description)
	if len(jobTokens) == 0 {
		return 0.0
	}

	applicantTokens := make(map[string]bool)
	for _, phrase := range applicantPhrases {
		for t := range Tokenize(phrase) {
			applicantTokens[t] = true
		}
	}
	if len(applicantTokens) == 0 {
		return 0.0
	}

	matches := 0
	for t := range applicantTokens {
		if jobTokens[t] {
			matches++
		}
	}
	return round1(float64(matches) * 100.0 / float64(len(applicantTokens)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
