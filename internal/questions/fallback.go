package questions

// FallbackQuestions is returned when generation repeatedly fails validation.
// One question per category, so the five-question invariant holds no matter
// what the model does.
func FallbackQuestions() []GeneratedQuestion {
	return []GeneratedQuestion{
		{
			QuestionText: "Could you walk me through your most technically challenging project?",
			QuestionType: "technical",
			Assesses:     "Technical expertise and problem-solving",
			KeyPoints:    "Technical depth, problem approach, solution implementation, results achieved",
		},
		{
			QuestionText: "Describe a situation where you had to learn a new technology quickly. How did you approach it?",
			QuestionType: "experience",
			Assesses:     "Learning ability and adaptability",
			KeyPoints:    "Learning strategy, time management, practical application, outcome",
		},
		{
			QuestionText: "Tell me about a time when you had to resolve a complex technical issue under tight deadlines.",
			QuestionType: "problem-solving",
			Assesses:     "Critical thinking and pressure handling",
			KeyPoints:    "Problem analysis, solution approach, time management, result",
		},
		{
			QuestionText: "How do you handle disagreements with team members about technical decisions?",
			QuestionType: "behavioral",
			Assesses:     "Conflict resolution and teamwork",
			KeyPoints:    "Communication style, conflict resolution approach, team collaboration, outcome",
		},
		{
			QuestionText: "What aspects of our company's tech stack and culture interest you the most?",
			QuestionType: "cultural-fit",
			Assesses:     "Company culture alignment and technical interest",
			KeyPoints:    "Company research, technical knowledge, cultural values, motivation",
		},
	}
}
