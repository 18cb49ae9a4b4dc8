package questions

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/voicehire/voicehire/internal/providers/llm"
)

const analyzerSystemPrompt = "You are an expert at evaluating interview responses."

const analyzerPromptTemplate = `Analyze this interview response based on the following criteria:
1. Relevance to the question (0-10)
2. Clarity of communication (0-10)
3. Technical accuracy (if applicable) (0-10)
4. Key points covered
5. Areas for improvement

Question: %s
Response: %s

Provide analysis in the following format:
Relevance Score: [score]
Clarity Score: [score]
Technical Score: [score]
Key Points Covered: [points]
Improvement Areas: [areas]
Overall Feedback: [feedback]`

// DefaultAnalysis is the neutral substitute used when scoring fails. Turns
// are never blocked on a scoring failure.
func DefaultAnalysis() Analysis {
	return Analysis{
		RelevanceScore:   5,
		ClarityScore:     5,
		TechnicalScore:   5,
		Feedback:         "Error analyzing response",
		ImprovementAreas: "Analysis unavailable",
	}
}

// Analyzer scores one candidate answer against its question.
type Analyzer struct {
	llm llm.Provider
	log *logrus.Logger
}

func NewAnalyzer(provider llm.Provider, log *logrus.Logger) *Analyzer {
	return &Analyzer{llm: provider, log: log}
}

// Analyze never returns an error: a failed call or a malformed completion
// yields DefaultAnalysis so the enclosing turn always proceeds.
func (a *Analyzer) Analyze(ctx context.Context, questionText, responseText string) Analysis {
	prompt := fmt.Sprintf(analyzerPromptTemplate, questionText, responseText)

	text, err := a.llm.Generate(ctx, analyzerSystemPrompt, prompt)
	if err != nil {
		a.log.WithError(err).Warn("response analysis call failed, using defaults")
		return DefaultAnalysis()
	}

	analysis, err := ParseAnalysis(text)
	if err != nil {
		a.log.WithError(err).Warn("response analysis output invalid, using defaults")
		return DefaultAnalysis()
	}
	return analysis
}
