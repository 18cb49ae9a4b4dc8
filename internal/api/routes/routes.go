package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/voicehire/voicehire/internal/api/handlers"
	"github.com/voicehire/voicehire/internal/api/middleware"
	"github.com/voicehire/voicehire/internal/auth"
	"github.com/voicehire/voicehire/internal/models"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

type Deps struct {
	Auth      *handlers.AuthHandler
	Upload    *handlers.UploadHandler
	Interview *handlers.InterviewHandler
	Turn      *handlers.TurnHandler

	Tokens      *auth.TokenIssuer
	FrontendURL string
	Log         *logrus.Logger
}

func Register(r *gin.Engine, d Deps) {
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{d.FrontendURL, "https://accounts.google.com"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-Id", "X-Interview-Status", "X-Total-Questions", "X-Answered-Questions"},
		AllowCredentials: true,
		MaxAge:           time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"version":   Version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	authRequired := middleware.JWTAuth(d.Tokens)
	recruiterOnly := middleware.RequireRole(string(models.RoleRecruiter))

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/google-login", d.Auth.GoogleLogin)
		authGroup.GET("/me", authRequired, d.Auth.Me)
		authGroup.POST("/logout", authRequired, d.Auth.Logout)
		authGroup.POST("/refresh-token", authRequired, d.Auth.RefreshToken)
	}

	upload := r.Group("/upload")
	{
		upload.POST("/jd", d.Upload.JobDescription)
		upload.POST("/resume", authRequired, d.Upload.Resume)
	}

	interview := r.Group("/interview")
	{
		interview.GET("/search", d.Interview.Search)
		interview.GET("/validate/:interview_id", d.Interview.Validate)
		interview.GET("/check-completed", d.Interview.CheckCompleted)
		interview.PUT("/questions/:question_id", d.Interview.UpdateQuestion)
		interview.POST("/create", authRequired, d.Interview.Create)
		interview.GET("/:interview_id/details", authRequired, d.Interview.Details)
		interview.POST("/:interview_id/confirm", authRequired, recruiterOnly, d.Interview.Confirm)
	}

	r.POST("/talk-video", d.Turn.Submit)
}
