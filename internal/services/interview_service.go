package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/voicehire/voicehire/internal/cache"
	"github.com/voicehire/voicehire/internal/models"
	"github.com/voicehire/voicehire/internal/questions"
	"github.com/voicehire/voicehire/internal/repositories"
	"github.com/voicehire/voicehire/internal/utils"
)

// Actor identifies the authenticated caller for permission checks.
type Actor struct {
	UserID string
	Role   models.UserRole
	Email  string
}

type QuestionView struct {
	ID             string              `json:"id"`
	QuestionText   string              `json:"question_text"`
	QuestionType   models.QuestionType `json:"question_type"`
	Category       string              `json:"category"`
	SequenceNumber int                 `json:"sequence_number"`
}

type CreateInterviewResult struct {
	InterviewID string         `json:"interview_id"`
	Status      string         `json:"status"`
	Questions   []QuestionView `json:"questions"`
}

type ResponseView struct {
	ResponseText           string    `json:"response_text"`
	Score                  float64   `json:"score"`
	Timestamp              time.Time `json:"timestamp"`
	AIFeedback             string    `json:"ai_feedback"`
	TechnicalAccuracy      float64   `json:"technical_accuracy"`
	ClarityScore           float64   `json:"clarity_score"`
	ImprovementSuggestions string    `json:"improvement_suggestions"`
}

type QuestionWithResponses struct {
	QuestionView
	Responses []ResponseView `json:"responses"`
}

type Progress struct {
	TotalQuestions       int     `json:"total_questions"`
	AnsweredQuestions    int     `json:"answered_questions"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

type InterviewDetails struct {
	InterviewID    string                  `json:"interview_id"`
	Status         models.InterviewStatus  `json:"status"`
	Progress       Progress                `json:"progress"`
	JobDescription struct {
		ID      string `json:"id"`
		Title   string `json:"title"`
		Company string `json:"company"`
	} `json:"job_description"`
	Candidate struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"candidate"`
	Questions    []QuestionWithResponses `json:"questions"`
	CreatedBy    string                  `json:"created_by"`
	CreatedAt    time.Time               `json:"created_at"`
	OverallScore float64                 `json:"overall_score"`
}

type ValidationResult struct {
	Valid           bool   `json:"valid"`
	Message         string `json:"message"`
	TotalQuestions  int    `json:"total_questions,omitempty"`
	InterviewStatus string `json:"interview_status,omitempty"`

	NotFound bool `json:"-"`
}

type InterviewService interface {
	Create(ctx context.Context, jdID, resumeID, recruiterID string) (*CreateInterviewResult, error)
	Details(ctx context.Context, interviewID string, actor Actor) (*InterviewDetails, error)
	UpdateQuestion(ctx context.Context, questionID, questionText string) (*QuestionView, error)
	Confirm(ctx context.Context, interviewID, recruiterID string) error
	Search(ctx context.Context, f repositories.SearchFilter) ([]repositories.SearchRow, error)
	Validate(ctx context.Context, interviewID string) (*ValidationResult, error)
	HasCompleted(ctx context.Context) (bool, error)
}

type interviewService struct {
	db         *gorm.DB
	jds        repositories.JobDescriptionRepository
	resumes    repositories.ResumeRepository
	interviews repositories.InterviewRepository
	questions  repositories.QuestionRepository
	responses  repositories.ResponseRepository
	generator  *questions.Generator
	cache      cache.Cache
	log        *logrus.Logger
}

func NewInterviewService(
	db *gorm.DB,
	jds repositories.JobDescriptionRepository,
	resumes repositories.ResumeRepository,
	interviews repositories.InterviewRepository,
	qs repositories.QuestionRepository,
	responses repositories.ResponseRepository,
	generator *questions.Generator,
	c cache.Cache,
	log *logrus.Logger,
) InterviewService {
	return &interviewService{
		db:         db,
		jds:        jds,
		resumes:    resumes,
		interviews: interviews,
		questions:  qs,
		responses:  responses,
		generator:  generator,
		cache:      c,
		log:        log,
	}
}

func detailsCacheKey(interviewID string) string { return "interview:details:" + interviewID }

const detailsCacheTTL = 30 * time.Second

func (s *interviewService) Create(ctx context.Context, jdID, resumeID, recruiterID string) (*CreateInterviewResult, error) {
	const op = "InterviewService.Create"

	if jdID == "" || resumeID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "jd_id and resume_id are required", nil)
	}

	jd, err := s.jds.GetByID(ctx, jdID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Job Description or Resume not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job description", err)
	}
	resume, err := s.resumes.GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Job Description or Resume not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load resume", err)
	}

	generated := s.generator.Generate(ctx, jd.Content, resume.Content)

	now := time.Now().UTC()
	session := &models.InterviewSession{
		ID:           uuid.NewString(),
		JDID:         jd.ID,
		ResumeID:     resume.ID,
		RecruiterID:  recruiterID,
		Status:       models.StatusDraft,
		NextSequence: 1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	rows := make([]models.InterviewQuestion, 0, len(generated))
	views := make([]QuestionView, 0, len(generated))
	for idx, q := range generated {
		row := models.InterviewQuestion{
			ID:                 uuid.NewString(),
			InterviewSessionID: session.ID,
			QuestionText:       q.QuestionText,
			QuestionType:       models.QuestionType(q.QuestionType),
			Category:           q.Assesses,
			SequenceNumber:     idx + 1,
			IsGenerated:        true,
			MaxScore:           10,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		rows = append(rows, row)
		views = append(views, QuestionView{
			ID:             row.ID,
			QuestionText:   row.QuestionText,
			QuestionType:   row.QuestionType,
			Category:       row.Category,
			SequenceNumber: row.SequenceNumber,
		})
	}

	// session and its five questions commit together or not at all
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewInterviewRepo(tx).Insert(ctx, session); err != nil {
			return err
		}
		return repositories.NewQuestionRepo(tx).InsertBatch(ctx, rows)
	})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create interview", err)
	}

	return &CreateInterviewResult{
		InterviewID: session.ID,
		Status:      string(session.Status),
		Questions:   views,
	}, nil
}

func (s *interviewService) Details(ctx context.Context, interviewID string, actor Actor) (*InterviewDetails, error) {
	const op = "InterviewService.Details"

	session, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Interview session not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load interview", err)
	}

	resume, err := s.resumes.GetByID(ctx, session.ResumeID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load resume", err)
	}

	// candidates may only view interviews tied to their own resume
	if actor.Role == models.RoleCandidate && resume.Email != actor.Email {
		return nil, utils.E(utils.CodeForbidden, op, "Not authorized to view this interview", nil)
	}

	// authorization is per-actor, so only the assembled body is cached
	if s.cache != nil {
		var cached InterviewDetails
		if hit, _ := s.cache.GetJSON(ctx, detailsCacheKey(interviewID), &cached); hit {
			return &cached, nil
		}
	}

	jd, err := s.jds.GetByID(ctx, session.JDID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load job description", err)
	}
	qs, err := s.questions.ListBySession(ctx, interviewID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load questions", err)
	}
	responses, err := s.responses.ListBySession(ctx, interviewID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load responses", err)
	}

	byQuestion := make(map[string][]ResponseView, len(responses))
	for _, r := range responses {
		byQuestion[r.QuestionID] = append(byQuestion[r.QuestionID], ResponseView{
			ResponseText:           r.ResponseText,
			Score:                  r.Score,
			Timestamp:              r.Timestamp,
			AIFeedback:             r.AIFeedback,
			TechnicalAccuracy:      r.TechnicalAccuracy,
			ClarityScore:           r.ClarityScore,
			ImprovementSuggestions: r.ImprovementSuggestions,
		})
	}

	details := &InterviewDetails{
		InterviewID:  session.ID,
		Status:       session.Status,
		CreatedBy:    session.RecruiterID,
		CreatedAt:    session.CreatedAt,
		OverallScore: session.OverallScore,
	}
	details.JobDescription.ID = jd.ID
	details.JobDescription.Title = jd.Title
	details.JobDescription.Company = jd.Company
	details.Candidate.ID = resume.ID
	details.Candidate.Name = resume.CandidateName
	details.Candidate.Email = resume.Email

	answered := 0
	for _, q := range qs {
		qr := byQuestion[q.ID]
		if len(qr) > 0 {
			answered++
		}
		if qr == nil {
			qr = []ResponseView{}
		}
		details.Questions = append(details.Questions, QuestionWithResponses{
			QuestionView: QuestionView{
				ID:             q.ID,
				QuestionText:   q.QuestionText,
				QuestionType:   q.QuestionType,
				Category:       q.Category,
				SequenceNumber: q.SequenceNumber,
			},
			Responses: qr,
		})
	}

	details.Progress = Progress{
		TotalQuestions:    len(qs),
		AnsweredQuestions: answered,
	}
	if len(qs) > 0 {
		details.Progress.CompletionPercentage = float64(answered) / float64(len(qs)) * 100
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, detailsCacheKey(interviewID), details, detailsCacheTTL); err != nil {
			s.log.WithError(err).Warn("details cache set failed")
		}
	}
	return details, nil
}

func (s *interviewService) UpdateQuestion(ctx context.Context, questionID, questionText string) (*QuestionView, error) {
	const op = "InterviewService.UpdateQuestion"

	q, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Question not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load question", err)
	}

	if questionText != "" {
		if q.OriginalQuestion == "" {
			q.OriginalQuestion = q.QuestionText
		}
		q.QuestionText = questionText
		q.IsModified = true
		q.UpdatedAt = time.Now().UTC()

		if err := s.questions.Save(ctx, q); err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to update question", err)
		}
		s.invalidateDetails(ctx, q.InterviewSessionID)
	}

	return &QuestionView{
		ID:             q.ID,
		QuestionText:   q.QuestionText,
		QuestionType:   q.QuestionType,
		Category:       q.Category,
		SequenceNumber: q.SequenceNumber,
	}, nil
}

func (s *interviewService) Confirm(ctx context.Context, interviewID, recruiterID string) error {
	const op = "InterviewService.Confirm"

	session, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "Interview session not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to load interview", err)
	}

	if session.RecruiterID != recruiterID {
		return utils.E(utils.CodeForbidden, op, "Not authorized to modify this interview", nil)
	}
	if !session.Status.CanTransition(models.StatusReady) {
		return utils.E(utils.CodeInvalidArgument, op,
			fmt.Sprintf("interview cannot be confirmed from status %q", session.Status), nil)
	}

	count, err := s.questions.CountBySession(ctx, interviewID)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to count questions", err)
	}
	if count != models.QuestionsPerInterview {
		return utils.E(utils.CodeInvalidArgument, op,
			fmt.Sprintf("interview must have exactly %d questions (found %d)", models.QuestionsPerInterview, count), nil)
	}

	session.Status = models.StatusReady
	session.UpdatedAt = time.Now().UTC()
	if err := s.interviews.Save(ctx, session); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to confirm interview", err)
	}

	s.invalidateDetails(ctx, interviewID)
	return nil
}

func (s *interviewService) Search(ctx context.Context, f repositories.SearchFilter) ([]repositories.SearchRow, error) {
	const op = "InterviewService.Search"

	rows, err := s.interviews.Search(ctx, f)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to search interviews", err)
	}
	if rows == nil {
		rows = []repositories.SearchRow{}
	}
	return rows, nil
}

func (s *interviewService) Validate(ctx context.Context, interviewID string) (*ValidationResult, error) {
	const op = "InterviewService.Validate"

	session, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return &ValidationResult{Valid: false, NotFound: true, Message: "Interview ID not found"}, nil
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load interview", err)
	}

	if session.Status != models.StatusReady {
		return &ValidationResult{
			Valid:   false,
			Message: fmt.Sprintf("Interview is not ready (current status: %s)", session.Status),
		}, nil
	}

	qs, err := s.questions.ListBySession(ctx, interviewID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load questions", err)
	}
	if len(qs) == 0 {
		return &ValidationResult{Valid: false, Message: "Interview is not properly set up (missing questions)"}, nil
	}
	if len(qs) != models.QuestionsPerInterview {
		return &ValidationResult{
			Valid:   false,
			Message: fmt.Sprintf("Interview must have exactly %d questions (found %d)", models.QuestionsPerInterview, len(qs)),
		}, nil
	}
	for _, q := range qs {
		if q.QuestionText == "" || q.QuestionType == "" {
			return &ValidationResult{Valid: false, Message: "One or more questions are not properly formatted"}, nil
		}
	}

	return &ValidationResult{
		Valid:           true,
		Message:         "Interview ID is valid and ready to start",
		TotalQuestions:  len(qs),
		InterviewStatus: string(session.Status),
	}, nil
}

func (s *interviewService) HasCompleted(ctx context.Context) (bool, error) {
	const op = "InterviewService.HasCompleted"

	count, err := s.interviews.CountByStatus(ctx, models.StatusCompleted)
	if err != nil {
		return false, utils.E(utils.CodeInternal, op, "failed to count completed interviews", err)
	}
	return count > 0, nil
}

func (s *interviewService) invalidateDetails(ctx context.Context, interviewID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, detailsCacheKey(interviewID)); err != nil {
		s.log.WithError(err).Warn("details cache invalidation failed")
	}
}
