package questions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validQuestionSet = `1. Question: Can you walk me through how you would design a rate limiter?
   Type: technical
   Assesses: System design depth
   Key Points: algorithms, trade-offs, failure modes

2. Question: Tell me about a project where you owned the backend end to end.
   Type: experience
   Assesses: Ownership and breadth
   Key Points: scope, decisions, outcomes

3. Question: How would you debug a service whose latency doubled overnight?
   Type: problem-solving
   Assesses: Diagnostic approach
   Key Points: metrics, hypotheses, tooling

4. Question: Describe a time you disagreed with a teammate about a design.
   Type: behavioral
   Assesses: Collaboration under disagreement
   Key Points: empathy, resolution, outcome

5. Question: What kind of engineering culture helps you do your best work?
   Type: cultural-fit
   Assesses: Culture alignment
   Key Points: values, communication, feedback`

func TestParseQuestionsValidSet(t *testing.T) {
	t.Parallel()

	qs, err := ParseQuestions(validQuestionSet)
	require.NoError(t, err)
	require.Len(t, qs, 5)

	assert.Equal(t, "technical", qs[0].QuestionType)
	assert.Equal(t, "cultural-fit", qs[4].QuestionType)
	assert.Equal(t, "System design depth", qs[0].Assesses)
	assert.True(t, strings.HasPrefix(qs[1].QuestionText, "Tell me about a project"))
}

func TestParseQuestionsUnnumberedFormat(t *testing.T) {
	t.Parallel()

	text := strings.ReplaceAll(validQuestionSet, "1. Question:", "Question:")
	text = strings.ReplaceAll(text, "2. Question:", "Question:")
	text = strings.ReplaceAll(text, "3. Question:", "Question:")
	text = strings.ReplaceAll(text, "4. Question:", "Question:")
	text = strings.ReplaceAll(text, "5. Question:", "Question:")

	qs, err := ParseQuestions(text)
	require.NoError(t, err)
	assert.Len(t, qs, 5)
}

func TestParseQuestionsRejectsWrongCount(t *testing.T) {
	t.Parallel()

	// drop the last block
	idx := strings.Index(validQuestionSet, "5. Question:")
	_, err := ParseQuestions(validQuestionSet[:idx])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 5 valid questions")
}

func TestParseQuestionsRejectsInvalidType(t *testing.T) {
	t.Parallel()

	text := strings.Replace(validQuestionSet, "Type: technical", "Type: trivia", 1)
	_, err := ParseQuestions(text)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid question type")
}

func TestParseQuestionsRejectsShortText(t *testing.T) {
	t.Parallel()

	text := strings.Replace(validQuestionSet,
		"Can you walk me through how you would design a rate limiter?", "Why?", 1)
	_, err := ParseQuestions(text)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}

func TestParseQuestionsRejectsMissingField(t *testing.T) {
	t.Parallel()

	text := strings.Replace(validQuestionSet, "Assesses: System design depth\n", "", 1)
	_, err := ParseQuestions(text)
	require.Error(t, err)
}

func TestParseAnalysis(t *testing.T) {
	t.Parallel()

	a, err := ParseAnalysis(`Relevance Score: 8
Clarity Score: 7.5
Technical Score: 9
Key Points Covered: caching, invalidation
Improvement Areas: mention consistency trade-offs
Overall Feedback: Strong answer with concrete detail.`)
	require.NoError(t, err)

	assert.Equal(t, 8.0, a.RelevanceScore)
	assert.Equal(t, 7.5, a.ClarityScore)
	assert.Equal(t, 9.0, a.TechnicalScore)
	assert.Equal(t, "caching, invalidation", a.KeyPoints)
	assert.Equal(t, "Strong answer with concrete detail.", a.Feedback)
}

func TestParseAnalysisToleratesFractionScores(t *testing.T) {
	t.Parallel()

	a, err := ParseAnalysis(`Relevance Score: 8/10
Clarity Score: 6/10
Technical Score: 7/10`)
	require.NoError(t, err)
	assert.Equal(t, 8.0, a.RelevanceScore)
	assert.Equal(t, 6.0, a.ClarityScore)
	assert.Equal(t, 7.0, a.TechnicalScore)
}

func TestParseAnalysisRejectsMissingScoreLine(t *testing.T) {
	t.Parallel()

	_, err := ParseAnalysis(`Relevance Score: 8
Clarity Score: 7
Overall Feedback: fine`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing score lines")
}

func TestParseAnalysisRejectsMalformedScore(t *testing.T) {
	t.Parallel()

	_, err := ParseAnalysis(`Relevance Score: high
Clarity Score: 7
Technical Score: 8`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed score")
}
