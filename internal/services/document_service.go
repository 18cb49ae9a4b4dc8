package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/voicehire/voicehire/internal/extract"
	"github.com/voicehire/voicehire/internal/models"
	"github.com/voicehire/voicehire/internal/repositories"
	"github.com/voicehire/voicehire/internal/storage"
	"github.com/voicehire/voicehire/internal/utils"
)

type DocumentService interface {
	UploadJobDescription(ctx context.Context, fileName, localPath string) (*models.JobDescription, error)
	UploadResume(ctx context.Context, fileName, localPath string, uploader *models.User) (*models.CandidateResume, error)
}

type documentService struct {
	jds      repositories.JobDescriptionRepository
	resumes  repositories.ResumeRepository
	uploader storage.Uploader
	log      *logrus.Logger
}

func NewDocumentService(
	jds repositories.JobDescriptionRepository,
	resumes repositories.ResumeRepository,
	uploader storage.Uploader,
	log *logrus.Logger,
) DocumentService {
	return &documentService{jds: jds, resumes: resumes, uploader: uploader, log: log}
}

func (s *documentService) UploadJobDescription(ctx context.Context, fileName, localPath string) (*models.JobDescription, error) {
	const op = "DocumentService.UploadJobDescription"

	doc, err := extract.FromFile(localPath)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "error processing job description", err)
	}

	details := extract.GuessJobDetails(doc.Content)
	now := time.Now().UTC()

	jd := &models.JobDescription{
		ID:         uuid.NewString(),
		Title:      details.Title,
		Company:    details.Company,
		Content:    doc.Content,
		FileName:   fileName,
		FileType:   strings.ToLower(filepath.Ext(fileName)),
		UploadedAt: now,
		UpdatedAt:  now,
	}
	jd.OriginalFilePath = s.archive(ctx, "jd/"+jd.ID+jd.FileType, localPath)

	if err := s.jds.Insert(ctx, jd); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist job description", err)
	}
	return jd, nil
}

func (s *documentService) UploadResume(ctx context.Context, fileName, localPath string, uploader *models.User) (*models.CandidateResume, error) {
	const op = "DocumentService.UploadResume"

	doc, err := extract.FromFile(localPath)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "error processing resume", err)
	}

	info := extract.GuessCandidateInfo(doc.Content)
	email := info.Email
	if email == "" && uploader != nil {
		// fall back to the uploading account's email
		email = uploader.Email
	}

	now := time.Now().UTC()
	resume := &models.CandidateResume{
		ID:            uuid.NewString(),
		CandidateName: info.Name,
		Email:         email,
		Content:       doc.Content,
		FileName:      fileName,
		FileType:      strings.ToLower(filepath.Ext(fileName)),
		UploadedAt:    now,
		UpdatedAt:     now,
	}
	if uploader != nil {
		resume.UploadedBy = uploader.ID
	}
	resume.OriginalFilePath = s.archive(ctx, "resumes/"+resume.ID+resume.FileType, localPath)

	if err := s.resumes.Insert(ctx, resume); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist resume", err)
	}
	return resume, nil
}

// archive copies the original upload into object storage. Failures are
// logged, never escalated; the extracted text is already in the row.
func (s *documentService) archive(ctx context.Context, objectName, localPath string) string {
	if s.uploader == nil {
		return ""
	}
	f, err := os.Open(localPath)
	if err != nil {
		s.log.WithError(err).Warn("archive open failed")
		return ""
	}
	defer f.Close()

	url, err := s.uploader.Upload(ctx, objectName, "application/octet-stream", f)
	if err != nil {
		s.log.WithError(err).Warn("archive upload failed")
		return ""
	}
	return url
}
