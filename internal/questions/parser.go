package questions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/voicehire/voicehire/internal/models"
)

// GeneratedQuestion is one parsed block of the model's question list.
type GeneratedQuestion struct {
	QuestionText string
	QuestionType string
	Assesses     string
	KeyPoints    string
}

// Analysis is the structured critique of one candidate answer. Scores are on
// a 0-10 scale.
type Analysis struct {
	RelevanceScore   float64
	ClarityScore     float64
	TechnicalScore   float64
	KeyPoints        string
	ImprovementAreas string
	Feedback         string
}

const minQuestionLength = 10

// ParseQuestions parses the line-oriented completion into question records
// and fails closed: anything other than exactly five valid questions is an
// error, never a partial result.
func ParseQuestions(text string) ([]GeneratedQuestion, error) {
	var (
		parsed  []GeneratedQuestion
		current *GeneratedQuestion
	)

	flush := func() {
		if current != nil && current.QuestionText != "" {
			parsed = append(parsed, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "Question:"):
			flush()
			current = &GeneratedQuestion{QuestionText: strings.TrimSpace(strings.TrimPrefix(line, "Question:"))}
		case isNumberedQuestion(line):
			flush()
			rest := strings.TrimSpace(line[strings.Index(line, ".")+1:])
			// numbered lines usually read "1. Question: ..."
			rest = strings.TrimSpace(strings.TrimPrefix(rest, "Question:"))
			current = &GeneratedQuestion{QuestionText: rest}
		case strings.HasPrefix(line, "Type:") && current != nil:
			current.QuestionType = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "Type:")))
		case strings.HasPrefix(line, "Assesses:") && current != nil:
			current.Assesses = strings.TrimSpace(strings.TrimPrefix(line, "Assesses:"))
		case strings.HasPrefix(line, "Key Points:") && current != nil:
			current.KeyPoints = strings.TrimSpace(strings.TrimPrefix(line, "Key Points:"))
		}
	}
	flush()

	for i, q := range parsed {
		if err := validateQuestion(q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	if len(parsed) != models.QuestionsPerInterview {
		return nil, fmt.Errorf("expected %d valid questions, got %d", models.QuestionsPerInterview, len(parsed))
	}
	return parsed, nil
}

func isNumberedQuestion(line string) bool {
	if len(line) < 2 {
		return false
	}
	return line[0] >= '1' && line[0] <= '9' && line[1] == '.'
}

func validateQuestion(q GeneratedQuestion) error {
	if q.QuestionText == "" || q.QuestionType == "" || q.Assesses == "" || q.KeyPoints == "" {
		return fmt.Errorf("missing required field")
	}
	if len(q.QuestionText) < minQuestionLength {
		return fmt.Errorf("question text too short")
	}
	if !models.ValidQuestionType(q.QuestionType) {
		return fmt.Errorf("invalid question type %q", q.QuestionType)
	}
	return nil
}

// ParseAnalysis parses the critique completion and fails closed: all three
// score lines must be present with well-formed numbers. The remaining fields
// are free text and optional.
func ParseAnalysis(text string) (Analysis, error) {
	var (
		a                           Analysis
		haveRel, haveClar, haveTech bool
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Relevance Score:"):
			v, err := parseScore(line, "Relevance Score:")
			if err != nil {
				return Analysis{}, err
			}
			a.RelevanceScore, haveRel = v, true
		case strings.HasPrefix(line, "Clarity Score:"):
			v, err := parseScore(line, "Clarity Score:")
			if err != nil {
				return Analysis{}, err
			}
			a.ClarityScore, haveClar = v, true
		case strings.HasPrefix(line, "Technical Score:"):
			v, err := parseScore(line, "Technical Score:")
			if err != nil {
				return Analysis{}, err
			}
			a.TechnicalScore, haveTech = v, true
		case strings.HasPrefix(line, "Key Points Covered:"):
			a.KeyPoints = strings.TrimSpace(strings.TrimPrefix(line, "Key Points Covered:"))
		case strings.HasPrefix(line, "Improvement Areas:"):
			a.ImprovementAreas = strings.TrimSpace(strings.TrimPrefix(line, "Improvement Areas:"))
		case strings.HasPrefix(line, "Overall Feedback:"):
			a.Feedback = strings.TrimSpace(strings.TrimPrefix(line, "Overall Feedback:"))
		}
	}

	if !haveRel || !haveClar || !haveTech {
		return Analysis{}, fmt.Errorf("analysis missing score lines (relevance=%v clarity=%v technical=%v)", haveRel, haveClar, haveTech)
	}
	return a, nil
}

func parseScore(line, prefix string) (float64, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(line, prefix))
	// tolerate "8/10" style answers
	if i := strings.IndexByte(raw, '/'); i >= 0 {
		raw = strings.TrimSpace(raw[:i])
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed score %q: %w", raw, err)
	}
	return v, nil
}
