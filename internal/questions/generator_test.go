package questions

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicehire/voicehire/internal/models"
)

type fakeLLM struct {
	responses []string
	errs      []error
	calls     int
}

func (f *fakeLLM) Generate(ctx context.Context, system, prompt string) (string, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

func (f *fakeLLM) Close() error { return nil }

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestGeneratorReturnsParsedQuestions(t *testing.T) {
	t.Parallel()

	llm := &fakeLLM{responses: []string{validQuestionSet}}
	g := NewGenerator(llm, testLogger())

	qs := g.Generate(context.Background(), "jd content", "resume content")
	require.Len(t, qs, models.QuestionsPerInterview)
	assert.Equal(t, 1, llm.calls)
	assert.Equal(t, "technical", qs[0].QuestionType)
}

func TestGeneratorRetriesOnInvalidOutput(t *testing.T) {
	t.Parallel()

	llm := &fakeLLM{responses: []string{"not a question list", validQuestionSet}}
	g := NewGenerator(llm, testLogger())

	qs := g.Generate(context.Background(), "jd", "resume")
	require.Len(t, qs, models.QuestionsPerInterview)
	assert.Equal(t, 2, llm.calls)
}

func TestGeneratorFallsBackAfterExhaustedRetries(t *testing.T) {
	t.Parallel()

	boom := errors.New("model unavailable")
	llm := &fakeLLM{errs: []error{boom, boom, boom}}
	g := NewGenerator(llm, testLogger())

	qs := g.Generate(context.Background(), "jd", "resume")
	require.Len(t, qs, models.QuestionsPerInterview)
	assert.Equal(t, maxGenerationAttempts, llm.calls)

	// fallback set covers one question per category
	types := map[string]bool{}
	for _, q := range qs {
		types[q.QuestionType] = true
	}
	assert.Len(t, types, models.QuestionsPerInterview)
}

func TestFallbackQuestionsAreValid(t *testing.T) {
	t.Parallel()

	qs := FallbackQuestions()
	require.Len(t, qs, models.QuestionsPerInterview)
	for _, q := range qs {
		assert.True(t, models.ValidQuestionType(q.QuestionType), "type %q", q.QuestionType)
		assert.NotEmpty(t, q.QuestionText)
		assert.NotEmpty(t, q.KeyPoints)
	}
}

func TestAnalyzerUsesDefaultsOnFailure(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer(&fakeLLM{errs: []error{errors.New("model unavailable")}}, testLogger())
	got := a.Analyze(context.Background(), "question", "answer")
	assert.Equal(t, DefaultAnalysis(), got)
}

func TestAnalyzerUsesDefaultsOnMalformedOutput(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer(&fakeLLM{responses: []string{"no scores here"}}, testLogger())
	got := a.Analyze(context.Background(), "question", "answer")
	assert.Equal(t, DefaultAnalysis(), got)
}

func TestAnalyzerParsesScores(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer(&fakeLLM{responses: []string{`Relevance Score: 9
Clarity Score: 8
Technical Score: 7
Overall Feedback: solid`}}, testLogger())

	got := a.Analyze(context.Background(), "question", "answer")
	assert.Equal(t, 9.0, got.RelevanceScore)
	assert.Equal(t, 8.0, got.ClarityScore)
	assert.Equal(t, 7.0, got.TechnicalScore)
	assert.Equal(t, "solid", got.Feedback)
}
