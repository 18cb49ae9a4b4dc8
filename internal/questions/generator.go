package questions

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/voicehire/voicehire/internal/providers/llm"
)

const maxGenerationAttempts = 3

const generatorSystemPrompt = "You are an expert AI recruiter who generates insightful, " +
	"specific interview questions based on job descriptions and resumes. " +
	"Focus on creating questions that thoroughly evaluate candidate qualifications."

const generatorPromptTemplate = `Given the job description and resume below, generate EXACTLY 5 interview questions.
Create a diverse set of questions covering:
1. Technical skills and expertise
2. Past experience and achievements
3. Problem-solving abilities
4. Behavioral traits and work style
5. Cultural fit and values

Job Description:
%s

Resume:
%s

Provide the questions in this EXACT format:

1. Question: [Ask a specific question related to technical skills mentioned in JD]
   Type: technical
   Assesses: [Specific technical skill]
   Key Points: [3-4 key points to look for in answer]

2. Question: [Ask about relevant past experience]
   Type: experience
   Assesses: [Specific experience area]
   Key Points: [3-4 key points to look for in answer]

3. Question: [Ask about a problem-solving scenario]
   Type: problem-solving
   Assesses: [Problem-solving skill]
   Key Points: [3-4 key points to look for in answer]

4. Question: [Ask about behavioral traits]
   Type: behavioral
   Assesses: [Behavioral trait]
   Key Points: [3-4 key points to look for in answer]

5. Question: [Ask about cultural fit]
   Type: cultural-fit
   Assesses: [Cultural aspect]
   Key Points: [3-4 key points to look for in answer]

Important: Ensure questions are highly specific to the job description and candidate's background.`

// Generator produces the five questions for a new interview session.
type Generator struct {
	llm llm.Provider
	log *logrus.Logger
}

func NewGenerator(provider llm.Provider, log *logrus.Logger) *Generator {
	return &Generator{llm: provider, log: log}
}

// Generate asks the model for five categorized questions, retrying on
// validation failure. After three failed attempts it returns the hardcoded
// fallback set; it never returns fewer than five questions and never errors.
func (g *Generator) Generate(ctx context.Context, jdContent, resumeContent string) []GeneratedQuestion {
	prompt := fmt.Sprintf(generatorPromptTemplate, jdContent, resumeContent)

	for attempt := 1; attempt <= maxGenerationAttempts; attempt++ {
		text, err := g.llm.Generate(ctx, generatorSystemPrompt, prompt)
		if err != nil {
			g.log.WithError(err).WithField("attempt", attempt).Warn("question generation call failed")
			continue
		}

		parsed, err := ParseQuestions(text)
		if err != nil {
			g.log.WithError(err).WithField("attempt", attempt).Warn("question generation output invalid")
			continue
		}

		g.log.WithField("attempt", attempt).Info("generated question set")
		return parsed
	}

	g.log.Warn("question generation exhausted retries, using fallback set")
	return FallbackQuestions()
}
