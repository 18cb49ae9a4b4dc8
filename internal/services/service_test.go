package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/voicehire/voicehire/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) Generate(ctx context.Context, system, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) Close() error { return nil }

type fakeSTT struct {
	text string
	err  error
}

func (f *fakeSTT) Transcribe(ctx context.Context, audio []byte, language string) (string, float64, error) {
	if f.err != nil {
		return "", 0, f.err
	}
	return f.text, 0.95, nil
}

func (f *fakeSTT) Close() error { return nil }

type fakeTTS struct {
	audio []byte
	err   error
}

func (f *fakeTTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.audio, nil
}

func (f *fakeTTS) Close() error { return nil }

type fakeLocker struct {
	held     bool
	released []string
}

func (f *fakeLocker) TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return !f.held, nil
}

func (f *fakeLocker) Release(ctx context.Context, key string) error {
	f.released = append(f.released, key)
	return nil
}

var errUpstream = errors.New("upstream unavailable")

// seedInterview creates a JD, resume and session with n sequenced questions.
func seedInterview(t *testing.T, db *gorm.DB, status models.InterviewStatus, n int) *models.InterviewSession {
	t.Helper()
	now := time.Now().UTC()

	jd := &models.JobDescription{
		ID:         uuid.NewString(),
		Title:      "Backend Engineer",
		Company:    "Acme Corp",
		Content:    "We build APIs.",
		UploadedAt: now,
		UpdatedAt:  now,
	}
	require.NoError(t, db.Create(jd).Error)

	resume := &models.CandidateResume{
		ID:            uuid.NewString(),
		CandidateName: "Jane Smith",
		Email:         "jane@example.com",
		Content:       "Ten years of Go.",
		UploadedAt:    now,
		UpdatedAt:     now,
	}
	require.NoError(t, db.Create(resume).Error)

	session := &models.InterviewSession{
		ID:           uuid.NewString(),
		JDID:         jd.ID,
		ResumeID:     resume.ID,
		RecruiterID:  "recruiter-1",
		Status:       status,
		NextSequence: 1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, db.Create(session).Error)

	types := []models.QuestionType{
		models.QuestionTechnical,
		models.QuestionExperience,
		models.QuestionProblemSolving,
		models.QuestionBehavioral,
		models.QuestionCulturalFit,
	}
	for i := 0; i < n; i++ {
		q := &models.InterviewQuestion{
			ID:                 uuid.NewString(),
			InterviewSessionID: session.ID,
			QuestionText:       fmt.Sprintf("Question number %d about the role?", i+1),
			QuestionType:       types[i%len(types)],
			Category:           "General",
			SequenceNumber:     i + 1,
			IsGenerated:        true,
			MaxScore:           10,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		require.NoError(t, db.Create(q).Error)
	}
	return session
}
