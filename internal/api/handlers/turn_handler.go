package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/voicehire/voicehire/internal/services"
)

type TurnHandler struct {
	turns       services.TurnService
	maxAudioLen int64
	log         *logrus.Logger
}

func NewTurnHandler(turns services.TurnService, maxAudioLen int64, log *logrus.Logger) *TurnHandler {
	return &TurnHandler{turns: turns, maxAudioLen: maxAudioLen, log: log}
}

// Submit accepts one recorded answer and responds with the synthesized next
// prompt as MP3. Session state rides on response headers so the body stays
// pure audio.
func (h *TurnHandler) Submit(c *gin.Context) {
	interviewID := c.PostForm("interview_id")
	if interviewID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "interview_id is required"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required"})
		return
	}
	if header.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is empty"})
		return
	}
	if header.Size > h.maxAudioLen {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "audio file exceeds maximum allowed size"})
		return
	}

	src, err := header.Open()
	if err != nil {
		h.log.WithError(err).Error("failed to open uploaded audio")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	defer src.Close()

	audio, err := io.ReadAll(src)
	if err != nil {
		h.log.WithError(err).Error("failed to read uploaded audio")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	result, err := h.turns.Submit(c.Request.Context(), interviewID, audio)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("X-Interview-Status", string(result.Status))
	c.Header("X-Total-Questions", strconv.Itoa(result.TotalQuestions))
	c.Header("X-Answered-Questions", strconv.Itoa(result.Answered))
	c.Header("Access-Control-Expose-Headers", "X-Interview-Status, X-Total-Questions, X-Answered-Questions")
	c.Data(http.StatusOK, "audio/mpeg", result.Audio)
}
