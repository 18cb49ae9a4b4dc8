package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/voicehire/voicehire/internal/cache"
	"github.com/voicehire/voicehire/internal/models"
	"github.com/voicehire/voicehire/internal/providers/stt"
	"github.com/voicehire/voicehire/internal/providers/tts"
	"github.com/voicehire/voicehire/internal/questions"
	"github.com/voicehire/voicehire/internal/repositories"
	"github.com/voicehire/voicehire/internal/utils"
)

const scriptedAnalysis = `Relevance Score: 7
Clarity Score: 6
Technical Score: 8
Key Points Covered: relevant detail
Improvement Areas: more examples
Overall Feedback: Good answer.`

func newTurnService(t *testing.T, db *gorm.DB, speech stt.Provider, voice tts.Provider, locker cache.Locker) TurnService {
	t.Helper()
	analyzer := questions.NewAnalyzer(&fakeLLM{response: scriptedAnalysis}, testLogger())
	return NewTurnService(
		db,
		repositories.NewInterviewRepo(db),
		repositories.NewQuestionRepo(db),
		repositories.NewResponseRepo(db),
		speech,
		voice,
		analyzer,
		nil,
		locker,
		nil,
		testLogger(),
	)
}

func TestTurnFullInterview(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newTurnService(t, db, &fakeSTT{text: "my answer"}, &fakeTTS{audio: []byte("mp3")}, nil)
	ctx := context.Background()

	session := seedInterview(t, db, models.StatusReady, 5)

	for turn := 1; turn <= 5; turn++ {
		result, err := svc.Submit(ctx, session.ID, []byte("webm audio"))
		require.NoError(t, err, "turn %d", turn)
		assert.Equal(t, []byte("mp3"), result.Audio)
		assert.Equal(t, 5, result.TotalQuestions)
		assert.Equal(t, turn, result.Answered)
		if turn < 5 {
			assert.Equal(t, models.StatusInProgress, result.Status)
		} else {
			assert.Equal(t, models.StatusCompleted, result.Status)
		}
	}

	var got models.InterviewSession
	require.NoError(t, db.First(&got, "id = ?", session.ID).Error)
	assert.Equal(t, models.StatusCompleted, got.Status)
	require.NotNil(t, got.ActualStartTime)
	require.NotNil(t, got.ActualEndTime)
	assert.False(t, got.ActualEndTime.Before(*got.ActualStartTime))

	// technical 8 and clarity 6 on every answer average to overall 7
	assert.InDelta(t, 8.0, got.TechnicalScore, 1e-9)
	assert.InDelta(t, 6.0, got.CommunicationScore, 1e-9)
	assert.InDelta(t, 7.0, got.OverallScore, 1e-9)

	var responses []models.CandidateResponse
	require.NoError(t, db.Where("interview_session_id = ?", session.ID).Find(&responses).Error)
	require.Len(t, responses, 5)
	for _, r := range responses {
		assert.Equal(t, "my answer", r.ResponseText)
		assert.Equal(t, 7.0, r.Score)
		assert.Equal(t, 8.0, r.TechnicalAccuracy)
		assert.Equal(t, 6.0, r.ClarityScore)
		assert.Equal(t, "Good answer.", r.AIFeedback)
	}
}

func TestTurnFirstAnswerStartsInterview(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newTurnService(t, db, &fakeSTT{text: "answer"}, &fakeTTS{audio: []byte("a")}, nil)
	ctx := context.Background()

	session := seedInterview(t, db, models.StatusReady, 5)
	result, err := svc.Submit(ctx, session.ID, []byte("audio"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, result.Status)

	var got models.InterviewSession
	require.NoError(t, db.First(&got, "id = ?", session.ID).Error)
	assert.NotNil(t, got.ActualStartTime)
	assert.Equal(t, 2, got.NextSequence)
}

func TestTurnNextPromptContainsFollowingQuestion(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	tts := &captureTTS{}
	svc := newTurnService(t, db, &fakeSTT{text: "answer"}, tts, nil)
	session := seedInterview(t, db, models.StatusReady, 5)

	_, err := svc.Submit(context.Background(), session.ID, []byte("audio"))
	require.NoError(t, err)
	assert.Contains(t, tts.lastText, "Here's your next question:")
	assert.Contains(t, tts.lastText, "Question number 2")
}

func TestTurnClosingRemarksOnLastAnswer(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	tts := &captureTTS{}
	svc := newTurnService(t, db, &fakeSTT{text: "answer"}, tts, nil)
	session := seedInterview(t, db, models.StatusReady, 5)
	require.NoError(t, db.Model(session).Update("next_sequence", 5).Error)

	result, err := svc.Submit(context.Background(), session.ID, []byte("audio"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, result.Status)
	assert.Equal(t, closingRemarks, tts.lastText)
}

func TestTurnRejectsCompletedInterview(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newTurnService(t, db, &fakeSTT{text: "answer"}, &fakeTTS{audio: []byte("a")}, nil)

	session := seedInterview(t, db, models.StatusCompleted, 5)
	_, err := svc.Submit(context.Background(), session.ID, []byte("audio"))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestTurnRejectsDraftInterview(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newTurnService(t, db, &fakeSTT{text: "answer"}, &fakeTTS{audio: []byte("a")}, nil)

	session := seedInterview(t, db, models.StatusDraft, 5)
	_, err := svc.Submit(context.Background(), session.ID, []byte("audio"))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestTurnRejectsUnknownInterview(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newTurnService(t, db, &fakeSTT{text: "answer"}, &fakeTTS{audio: []byte("a")}, nil)

	_, err := svc.Submit(context.Background(), "no-such-id", []byte("audio"))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestTurnRejectsInvalidSequence(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newTurnService(t, db, &fakeSTT{text: "answer"}, &fakeTTS{audio: []byte("a")}, nil)

	session := seedInterview(t, db, models.StatusReady, 5)
	require.NoError(t, db.Model(session).Update("next_sequence", 9).Error)

	_, err := svc.Submit(context.Background(), session.ID, []byte("audio"))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	// no response row may be written on a rejected turn
	var count int64
	require.NoError(t, db.Model(&models.CandidateResponse{}).
		Where("interview_session_id = ?", session.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTurnConflictsWhileLockHeld(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newTurnService(t, db, &fakeSTT{text: "answer"}, &fakeTTS{audio: []byte("a")}, &fakeLocker{held: true})

	session := seedInterview(t, db, models.StatusReady, 5)
	_, err := svc.Submit(context.Background(), session.ID, []byte("audio"))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
}

func TestTurnReleasesLock(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	locker := &fakeLocker{}
	svc := newTurnService(t, db, &fakeSTT{text: "answer"}, &fakeTTS{audio: []byte("a")}, locker)

	session := seedInterview(t, db, models.StatusReady, 5)
	_, err := svc.Submit(context.Background(), session.ID, []byte("audio"))
	require.NoError(t, err)
	require.Len(t, locker.released, 1)
	assert.Equal(t, fmt.Sprintf("interview:%s:turn", session.ID), locker.released[0])
}

func TestTurnTranscriptionFailure(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newTurnService(t, db, &fakeSTT{err: errUpstream}, &fakeTTS{audio: []byte("a")}, nil)

	session := seedInterview(t, db, models.StatusReady, 5)
	_, err := svc.Submit(context.Background(), session.ID, []byte("audio"))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUpstream))

	// the failed turn must not advance the session
	var got models.InterviewSession
	require.NoError(t, db.First(&got, "id = ?", session.ID).Error)
	assert.Equal(t, models.StatusReady, got.Status)
	assert.Equal(t, 1, got.NextSequence)
}

func TestTurnSynthesisFailure(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newTurnService(t, db, &fakeSTT{text: "answer"}, &fakeTTS{err: errUpstream}, nil)

	session := seedInterview(t, db, models.StatusReady, 5)
	_, err := svc.Submit(context.Background(), session.ID, []byte("audio"))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUpstream))

	// the answer itself is already recorded when synthesis fails
	var count int64
	require.NoError(t, db.Model(&models.CandidateResponse{}).
		Where("interview_session_id = ?", session.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

type captureTTS struct {
	lastText string
}

func (c *captureTTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	c.lastText = text
	return []byte("mp3"), nil
}

func (c *captureTTS) Close() error { return nil }
