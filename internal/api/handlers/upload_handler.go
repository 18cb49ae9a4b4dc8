package handlers

import (
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/voicehire/voicehire/internal/models"
	"github.com/voicehire/voicehire/internal/services"
)

var allowedUploadExts = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".txt":  true,
	".rtf":  true,
}

type UploadHandler struct {
	documents   services.DocumentService
	users       services.AuthService
	maxFileSize int64
	log         *logrus.Logger
}

func NewUploadHandler(documents services.DocumentService, users services.AuthService, maxFileSize int64, log *logrus.Logger) *UploadHandler {
	return &UploadHandler{documents: documents, users: users, maxFileSize: maxFileSize, log: log}
}

func (h *UploadHandler) JobDescription(c *gin.Context) {
	localPath, fileName, ok := h.receiveFile(c)
	if !ok {
		return
	}
	defer os.Remove(localPath)

	jd, err := h.documents.UploadJobDescription(c.Request.Context(), fileName, localPath)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"jd_id":     jd.ID,
		"title":     jd.Title,
		"company":   jd.Company,
		"file_name": jd.FileName,
		"message":   "Job description uploaded successfully",
	})
}

func (h *UploadHandler) Resume(c *gin.Context) {
	localPath, fileName, ok := h.receiveFile(c)
	if !ok {
		return
	}
	defer os.Remove(localPath)

	var uploader *models.User
	if userID, exists := c.Get("user_id"); exists {
		if id, _ := userID.(string); id != "" {
			u, err := h.users.GetUser(c.Request.Context(), id)
			if err == nil {
				uploader = u
			}
		}
	}

	resume, err := h.documents.UploadResume(c.Request.Context(), fileName, localPath, uploader)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"resume_id":      resume.ID,
		"candidate_name": resume.CandidateName,
		"email":          resume.Email,
		"file_name":      resume.FileName,
		"message":        "Resume uploaded successfully",
	})
}

// receiveFile validates the multipart upload and stages it in a temp file.
// The caller removes the file when done.
func (h *UploadHandler) receiveFile(c *gin.Context) (localPath, fileName string, ok bool) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return "", "", false
	}
	if header.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file name is required"})
		return "", "", false
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploadExts[ext] {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "unsupported file type " + ext})
		return "", "", false
	}
	if ct := header.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/") && !strings.HasPrefix(ct, "text/") {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "unsupported content type " + ct})
		return "", "", false
	}
	if header.Size > h.maxFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds maximum allowed size"})
		return "", "", false
	}
	if header.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is empty"})
		return "", "", false
	}

	localPath, err = h.stage(header, ext)
	if err != nil {
		h.log.WithError(err).Error("failed to stage uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return "", "", false
	}
	return localPath, header.Filename, true
}

func (h *UploadHandler) stage(header *multipart.FileHeader, ext string) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := tmp.ReadFrom(src); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
