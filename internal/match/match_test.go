package match

import (
	"math"
	"testing"

	"github.com/doplab/jobfinder/pkg/models"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "simple words", text: "Java and SQL", want: []string{"java", "and", "sql"}},
		{name: "keeps plus", text: "C++ developer", want: []string{"c++", "developer"}},
		{name: "drops short tokens", text: "a b go", want: []string{"go"}},
		{name: "splits on punctuation", text: "node.js,react/vue", want: []string{"node", "js", "react", "vue"}},
		{name: "empty", text: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for _, w := range tt.want {
				if !got[w] {
					t.Errorf("Tokenize(%q) missing token %q", tt.text, w)
				}
			}
		})
	}
}

func TestAreSynonyms(t *testing.T) {
	syn := NewSynonyms()

	tests := []struct {
		a, b string
		want bool
	}{
		{"javascript", "js", true},
		{"js", "javascript", true}, // symmetric
		{"JS", "ECMAScript", true}, // case-insensitive
		{"kubernetes", "k8s", true},
		{"python", "python", true}, // member of its own group
		{"java", "python", false},
		{"spring", "java", false},
		{"", "js", false},
	}

	for _, tt := range tests {
		if got := syn.AreSynonyms(tt.a, tt.b); got != tt.want {
			t.Errorf("AreSynonyms(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPhraseSimilarityTiers(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "exact", a: "java", b: "java", want: 1.0},
		{name: "exact after trim and case", a: "  Java ", b: "java", want: 1.0},
		{name: "synonym", a: "js", b: "javascript", want: 0.95},
		{name: "contains", a: "java developer", b: "java", want: 0.75},
		{name: "contains reversed", a: "sql", b: "mysql and sql tuning", want: 0.75},
		{name: "token synonym bonus", a: "senior js engineer", b: "javascript expert", want: 0.6},
		{name: "empty left", a: "", b: "java", want: 0.0},
		{name: "blank right", a: "java", b: "   ", want: 0.0},
		{name: "unrelated", a: "cooking", b: "finance", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.PhraseSimilarity(tt.a, tt.b); got != tt.want {
				t.Errorf("PhraseSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPhraseSimilaritySymmetry(t *testing.T) {
	e := NewEngine()

	pairs := [][2]string{
		{"java", "java"},
		{"js", "javascript"},
		{"java developer", "java"},
		{"reactjs", "react native"},
		{"kubernetes", "kubernete"},
		{"data warehouse", "data analysis"},
	}
	for _, p := range pairs {
		ab := e.PhraseSimilarity(p[0], p[1])
		ba := e.PhraseSimilarity(p[1], p[0])
		if ab != ba {
			t.Errorf("similarity not symmetric for (%q, %q): %v vs %v", p[0], p[1], ab, ba)
		}
	}
}

func TestPhraseSimilarityIdentity(t *testing.T) {
	e := NewEngine()

	for _, phrase := range []string{"java", "machine learning", "c++", "node.js", "Devops Engineer"} {
		if got := e.PhraseSimilarity(phrase, phrase); got != 1.0 {
			t.Errorf("PhraseSimilarity(%q, %q) = %v, want 1.0", phrase, phrase, got)
		}
	}
}

func TestPhraseSimilarityTypo(t *testing.T) {
	e := NewEngine()

	// One substitution apart: levenshtein = 1 - 1/10 = 0.9, damped to 0.54.
	got := e.PhraseSimilarity("kubernetes", "kubernetas")
	if math.Abs(got-0.54) > 1e-9 {
		t.Errorf("typo similarity = %v, want 0.54", got)
	}
	if got >= 0.75 {
		t.Errorf("typo similarity %v should not outrank containment tier", got)
	}
}

func TestListSimilarity(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name         string
		requirements []string
		candidates   []string
		want         float64
	}{
		{
			name:         "two of three exact",
			requirements: []string{"java", "sql", "spring"},
			candidates:   []string{"java", "sql"},
			want:         200.0 / 3.0,
		},
		{
			name:         "all exact",
			requirements: []string{"java", "sql"},
			candidates:   []string{"sql", "java"},
			want:         100.0,
		},
		{
			name:         "synonym requirement",
			requirements: []string{"javascript"},
			candidates:   []string{"js"},
			want:         95.0,
		},
		{
			name:         "blank requirements skipped",
			requirements: []string{"", "  ", "java"},
			candidates:   []string{"java"},
			want:         100.0,
		},
		{name: "no requirements", requirements: nil, candidates: []string{"java"}, want: 0.0},
		{name: "no candidates", requirements: []string{"java"}, candidates: nil, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ListSimilarity(tt.requirements, tt.candidates)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ListSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplicantPhrases(t *testing.T) {
	tests := []struct {
		name   string
		skills []string
		legacy string
		want   []string
	}{
		{
			name:   "structured list wins",
			skills: []string{"Java", " SQL "},
			legacy: "python, go",
			want:   []string{"java", "sql"},
		},
		{
			name:   "legacy fallback",
			skills: nil,
			legacy: "Python, go ,",
			want:   []string{"python", "go"},
		},
		{
			name:   "deduplicates",
			skills: []string{"java", "Java", "JAVA"},
			want:   []string{"java"},
		},
		{name: "empty", skills: nil, legacy: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplicantPhrases(tt.skills, tt.legacy)
			if len(got) != len(tt.want) {
				t.Fatalf("ApplicantPhrases = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ApplicantPhrases[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestScoreWeightedLists(t *testing.T) {
	e := NewEngine()

	offer := &models.JobOffer{
		RequiredSkills:         []string{"java", "sql", "spring"},
		RequiredQualifications: []string{"bachelor computer science"},
	}

	// Skills: (1 + 1 + 0) / 3 * 100 = 66.67; quals: 0.
	// Blend: 0.7 * 66.67 + 0.3 * 0 = 46.7.
	got := e.Score([]string{"java", "sql"}, offer)
	if math.Abs(got-46.7) > 1e-9 {
		t.Errorf("Score = %v, want 46.7", got)
	}
}

func TestScoreSkillsOnly(t *testing.T) {
	e := NewEngine()

	offer := &models.JobOffer{RequiredSkills: []string{"java", "sql", "spring"}}
	got := e.Score([]string{"java", "sql"}, offer)
	if math.Abs(got-66.7) > 1e-9 {
		t.Errorf("Score = %v, want 66.7", got)
	}
}

func TestScoreSynonymRequirement(t *testing.T) {
	e := NewEngine()

	offer := &models.JobOffer{RequiredSkills: []string{"javascript"}}
	got := e.Score([]string{"js"}, offer)
	if got != 95.0 {
		t.Errorf("Score = %v, want 95.0", got)
	}
}

func TestScoreFallbackTokenOverlap(t *testing.T) {
	e := NewEngine()

	offer := &models.JobOffer{
		Title:       "Backend Java Developer",
		Description: "Work on backend services in java and sql.",
	}

	// Applicant tokens {java, sql, cooking}: 2 of 3 appear in the offer
	// text -> 66.7.
	got := e.Score([]string{"java", "sql", "cooking"}, offer)
	if math.Abs(got-66.7) > 1e-9 {
		t.Errorf("Score = %v, want 66.7", got)
	}

	empty := &models.JobOffer{}
	if got := e.Score([]string{"java"}, empty); got != 0.0 {
		t.Errorf("Score with empty offer text = %v, want 0", got)
	}
}

func TestScoreEmptyApplicant(t *testing.T) {
	e := NewEngine()

	offer := &models.JobOffer{RequiredSkills: []string{"java"}}
	if got := e.Score(nil, offer); got != 0.0 {
		t.Errorf("Score with no applicant phrases = %v, want 0", got)
	}
}

func TestScoreMonotonicOnPerfectMatch(t *testing.T) {
	e := NewEngine()

	offer := &models.JobOffer{RequiredSkills: []string{"java", "sql", "spring"}}

	phrases := []string{"cooking"}
	prev := e.Score(phrases, offer)
	for _, skill := range offer.RequiredSkills {
		phrases = append(phrases, skill)
		next := e.Score(phrases, offer)
		if next < prev {
			t.Errorf("adding %q lowered the score: %v -> %v", skill, prev, next)
		}
		prev = next
	}
}

func TestScoreRange(t *testing.T) {
	e := NewEngine()

	offers := []*models.JobOffer{
		{RequiredSkills: []string{"java", "sql"}},
		{RequiredQualifications: []string{"msc"}},
		{Title: "DevOps Engineer", Description: "docker kubernetes linux"},
		{},
	}
	phraseSets := [][]string{
		nil,
		{"java"},
		{"java", "sql", "docker", "kubernetes", "linux"},
		{"zzzz"},
	}

	for _, offer := range offers {
		for _, phrases := range phraseSets {
			got := e.Score(phrases, offer)
			if got < 0 || got > 100 {
				t.Errorf("Score(%v, %+v) = %v out of range", phrases, offer, got)
			}
		}
	}
}
