package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/voicehire/voicehire/internal/cache"
	"github.com/voicehire/voicehire/internal/models"
	"github.com/voicehire/voicehire/internal/providers/stt"
	"github.com/voicehire/voicehire/internal/providers/tts"
	"github.com/voicehire/voicehire/internal/questions"
	"github.com/voicehire/voicehire/internal/repositories"
	"github.com/voicehire/voicehire/internal/storage"
	"github.com/voicehire/voicehire/internal/utils"
)

const (
	turnLockTTL = 2 * time.Minute

	closingRemarks = "Thank you for completing the interview. Your responses have been recorded and will be reviewed. Have a great day!"
)

// TurnResult carries the synthesized prompt for the candidate plus the
// session state the client renders alongside it.
type TurnResult struct {
	Audio          []byte
	Status         models.InterviewStatus
	TotalQuestions int
	Answered       int
}

type TurnService interface {
	Submit(ctx context.Context, interviewID string, audio []byte) (*TurnResult, error)
}

type turnService struct {
	db         *gorm.DB
	interviews repositories.InterviewRepository
	questions  repositories.QuestionRepository
	responses  repositories.ResponseRepository
	speech     stt.Provider
	voice      tts.Provider
	analyzer   *questions.Analyzer
	uploader   storage.Uploader
	locker     cache.Locker
	cache      cache.Cache
	log        *logrus.Logger
}

func NewTurnService(
	db *gorm.DB,
	interviews repositories.InterviewRepository,
	qs repositories.QuestionRepository,
	responses repositories.ResponseRepository,
	speech stt.Provider,
	voice tts.Provider,
	analyzer *questions.Analyzer,
	uploader storage.Uploader,
	locker cache.Locker,
	c cache.Cache,
	log *logrus.Logger,
) TurnService {
	return &turnService{
		db:         db,
		interviews: interviews,
		questions:  qs,
		responses:  responses,
		speech:     speech,
		voice:      voice,
		analyzer:   analyzer,
		uploader:   uploader,
		locker:     locker,
		cache:      c,
		log:        log,
	}
}

func turnLockKey(interviewID string) string { return "interview:" + interviewID + ":turn" }

// Submit processes one answer: transcribe, score, persist, and speak the next
// prompt. At most one submission per session runs at a time; a second caller
// gets a conflict instead of answering the same question twice.
func (s *turnService) Submit(ctx context.Context, interviewID string, audio []byte) (*TurnResult, error) {
	const op = "TurnService.Submit"

	if s.locker != nil {
		acquired, err := s.locker.TryAcquire(ctx, turnLockKey(interviewID), turnLockTTL)
		if err != nil {
			s.log.WithError(err).Warn("turn lock acquire failed, continuing without lock")
		} else if !acquired {
			return nil, utils.E(utils.CodeConflict, op, "Another response for this interview is being processed", nil)
		} else {
			defer func() {
				if err := s.locker.Release(context.WithoutCancel(ctx), turnLockKey(interviewID)); err != nil {
					s.log.WithError(err).Warn("turn lock release failed")
				}
			}()
		}
	}

	session, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Interview session not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load interview", err)
	}
	if session.Status == models.StatusCompleted {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Interview is already completed", nil)
	}
	if session.Status == models.StatusDraft {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Interview is not confirmed yet", nil)
	}

	qs, err := s.questions.ListBySession(ctx, interviewID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load questions", err)
	}
	if len(qs) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Interview has no questions", nil)
	}

	seq := session.NextSequence
	var current *models.InterviewQuestion
	for i := range qs {
		if qs[i].SequenceNumber == seq {
			current = &qs[i]
			break
		}
	}
	if current == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op,
			fmt.Sprintf("invalid question sequence %d", seq), nil)
	}

	transcript, confidence, err := s.speech.Transcribe(ctx, audio, "en-US")
	if err != nil {
		return nil, utils.E(utils.CodeUpstream, op, "Speech transcription failed", err)
	}
	s.log.WithFields(logrus.Fields{
		"interview_id": interviewID,
		"sequence":     seq,
		"confidence":   confidence,
	}).Info("answer transcribed")

	analysis := s.analyzer.Analyze(ctx, current.QuestionText, transcript)

	audioURL := s.archiveAnswer(ctx, interviewID, seq, audio)

	now := time.Now().UTC()
	response := &models.CandidateResponse{
		ID:                     uuid.NewString(),
		InterviewSessionID:     interviewID,
		QuestionID:             current.ID,
		ResponseText:           transcript,
		ResponseAudioURL:       audioURL,
		Timestamp:              now,
		Score:                  analysis.RelevanceScore,
		TechnicalAccuracy:      analysis.TechnicalScore,
		ClarityScore:           analysis.ClarityScore,
		AIFeedback:             analysis.Feedback,
		ImprovementSuggestions: analysis.ImprovementAreas,
	}

	var finalStatus models.InterviewStatus
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		interviews := repositories.NewInterviewRepo(tx)
		responses := repositories.NewResponseRepo(tx)

		locked, err := interviews.GetByIDForUpdate(ctx, interviewID)
		if err != nil {
			return err
		}
		if locked.Status == models.StatusCompleted {
			return utils.E(utils.CodeInvalidArgument, op, "Interview is already completed", nil)
		}
		if locked.NextSequence != seq {
			return utils.E(utils.CodeConflict, op, "This question has already been answered", nil)
		}

		if locked.Status == models.StatusReady {
			locked.Status = models.StatusInProgress
			locked.ActualStartTime = &now
		}

		if err := responses.Insert(ctx, response); err != nil {
			return err
		}

		if seq == len(qs) {
			prior, err := responses.ListBySession(ctx, interviewID)
			if err != nil {
				return err
			}
			technical, communication := averageScores(prior)
			locked.Status = models.StatusCompleted
			locked.ActualEndTime = &now
			locked.TechnicalScore = technical
			locked.CommunicationScore = communication
			locked.OverallScore = (technical + communication) / 2
		} else {
			locked.NextSequence = seq + 1
		}
		locked.UpdatedAt = now

		finalStatus = locked.Status
		return interviews.Save(ctx, locked)
	})
	if err != nil {
		var appErr *utils.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to record response", err)
	}

	var prompt string
	if finalStatus == models.StatusCompleted {
		prompt = closingRemarks
	} else {
		var next string
		for i := range qs {
			if qs[i].SequenceNumber == seq+1 {
				next = qs[i].QuestionText
				break
			}
		}
		prompt = "Thank you for your response. Here's your next question: " + next
	}

	speech, err := s.voice.Synthesize(ctx, prompt)
	if err != nil {
		return nil, utils.E(utils.CodeUpstream, op, "Speech synthesis failed", err)
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, detailsCacheKey(interviewID)); err != nil {
			s.log.WithError(err).Warn("details cache invalidation failed")
		}
	}

	return &TurnResult{
		Audio:          speech,
		Status:         finalStatus,
		TotalQuestions: len(qs),
		Answered:       seq,
	}, nil
}

// archiveAnswer stores the raw audio when a bucket is configured. Failures
// are logged and the turn proceeds without an audio URL.
func (s *turnService) archiveAnswer(ctx context.Context, interviewID string, seq int, audio []byte) string {
	if s.uploader == nil {
		return ""
	}
	object := path.Join("interviews", interviewID, "answers", fmt.Sprintf("%d.webm", seq))
	url, err := s.uploader.Upload(ctx, object, "audio/webm", bytes.NewReader(audio))
	if err != nil {
		s.log.WithError(err).WithField("interview_id", interviewID).Warn("answer audio archive failed")
		return ""
	}
	return url
}

func averageScores(responses []models.CandidateResponse) (technical, communication float64) {
	if len(responses) == 0 {
		return 0, 0
	}
	for _, r := range responses {
		technical += r.TechnicalAccuracy
		communication += r.ClarityScore
	}
	n := float64(len(responses))
	return technical / n, communication / n
}
