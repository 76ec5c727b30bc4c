package scoring

import (
	"regexp"
	"strings"
)

// Rubric dimensions score 5 (generic) or 10 (evidence present), 30 max.
const rubricMax = 30

var numberPattern = regexp.MustCompile(`\b\d+\b`)

var (
	dataKeywords      = []string{"data", "dataset", "dashboard", "faostat", "survey"}
	relevanceKeywords = []string{"food system", "seed", "agric", "market", "value chain"}
)

// Rubric holds the three heuristic dimensions of a motivation statement.
type Rubric struct {
	Specificity float64
	Feasibility float64
	Relevance   float64
}

func (r Rubric) Sum() float64 {
	return r.Specificity + r.Feasibility + r.Relevance
}

// ScoreMotivation applies the keyword/length rubric. Statements below the
// minimum word count score zero across the board.
func ScoreMotivation(text string, minWords int) Rubric {
	text = strings.TrimSpace(text)
	if text == "" {
		return Rubric{}
	}

	words := len(strings.Fields(text))
	if words < minWords {
		return Rubric{}
	}

	lower := strings.ToLower(text)

	hasData := containsAny(lower, dataKeywords)
	hasNumbers := numberPattern.MatchString(text)
	hasRelevance := containsAny(lower, relevanceKeywords)

	rubric := Rubric{Specificity: 5, Feasibility: 5, Relevance: 5}
	if words >= 200 || hasData {
		rubric.Specificity = 10
	}
	if hasNumbers {
		rubric.Feasibility = 10
	}
	if hasRelevance {
		rubric.Relevance = 10
	}

	return rubric
}

// motivationPoints scales the rubric to the preset's motivation weight.
func motivationPoints(text string, preset *Preset) float64 {
	rubric := ScoreMotivation(text, preset.MinMotivationWords)
	return rubric.Sum() / rubricMax * preset.WMotivation
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
