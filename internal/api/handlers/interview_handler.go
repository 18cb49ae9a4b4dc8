package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voicehire/voicehire/internal/repositories"
	"github.com/voicehire/voicehire/internal/services"
)

type InterviewHandler struct {
	interviews services.InterviewService
}

func NewInterviewHandler(interviews services.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviews: interviews}
}

func (h *InterviewHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	jdID := c.PostForm("jd_id")
	resumeID := c.PostForm("resume_id")

	result, err := h.interviews.Create(c.Request.Context(), jdID, resumeID, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"interview_id": result.InterviewID,
		"status":       result.Status,
		"questions":    result.Questions,
		"message":      "Interview created successfully",
	})
}

func (h *InterviewHandler) Details(c *gin.Context) {
	details, err := h.interviews.Details(c.Request.Context(), c.Param("interview_id"), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

type updateQuestionRequest struct {
	QuestionText string `json:"question_text"`
}

func (h *InterviewHandler) UpdateQuestion(c *gin.Context) {
	var req updateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	q, err := h.interviews.UpdateQuestion(c.Request.Context(), c.Param("question_id"), req.QuestionText)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"question": q,
		"message":  "Question updated successfully",
	})
}

func (h *InterviewHandler) Confirm(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	interviewID := c.Param("interview_id")
	if err := h.interviews.Confirm(c.Request.Context(), interviewID, userID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"interview_id": interviewID,
		"status":       "ready",
		"message":      "Interview confirmed and ready to start",
	})
}

func (h *InterviewHandler) Search(c *gin.Context) {
	filter := repositories.SearchFilter{
		CandidateName: c.Query("candidate_name"),
		Company:       c.Query("company"),
		Status:        c.Query("status"),
	}
	if v := c.Query("date_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_from must be RFC 3339"})
			return
		}
		filter.DateFrom = &t
	}
	if v := c.Query("date_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_to must be RFC 3339"})
			return
		}
		filter.DateTo = &t
	}

	rows, err := h.interviews.Search(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"results": rows,
		"total":   len(rows),
	})
}

func (h *InterviewHandler) Validate(c *gin.Context) {
	result, err := h.interviews.Validate(c.Request.Context(), c.Param("interview_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	switch {
	case result.NotFound:
		c.JSON(http.StatusNotFound, result)
	case !result.Valid:
		c.JSON(http.StatusBadRequest, result)
	default:
		c.JSON(http.StatusOK, result)
	}
}

func (h *InterviewHandler) CheckCompleted(c *gin.Context) {
	has, err := h.interviews.HasCompleted(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"has_completed_interviews": has})
}
