package models

// All returns every persisted model, in FK dependency order, for migration.
func All() []any {
	return []any{
		&User{},
		&UserSession{},
		&JobDescription{},
		&CandidateResume{},
		&InterviewSession{},
		&InterviewQuestion{},
		&CandidateResponse{},
	}
}
