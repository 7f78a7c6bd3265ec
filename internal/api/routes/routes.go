package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ventureai/backend/internal/api/handlers"
	"github.com/ventureai/backend/internal/api/middleware"
)

type Deps struct {
	Session   *handlers.SessionHandler
	Interview *handlers.InterviewHandler
	Speech    *handlers.SpeechHandler

	CORSOrigins []string
	Log         *logrus.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	if d.Log != nil {
		r.Use(middleware.RequestLogger(d.Log))
	}

	corsCfg := cors.DefaultConfig()
	if len(d.CORSOrigins) == 1 && d.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else if len(d.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = d.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-Id"}
	corsCfg.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsCfg))

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    "VentureAI API",
			"version": "1.0.0",
			"status":  "running",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})

	iv := r.Group("/interview")

	iv.POST("/sessions", d.Session.Create)
	iv.GET("/sessions", d.Session.List)
	iv.GET("/sessions/:session_id", d.Session.Get)
	iv.DELETE("/sessions/:session_id", d.Session.Delete)

	iv.POST("/questions", d.Interview.NextQuestion)
	iv.POST("/responses", d.Interview.SubmitResponse)
	iv.POST("/feedback", d.Interview.GenerateFeedback)

	iv.POST("/text-to-speech", d.Speech.TextToSpeech)
	iv.POST("/speech-to-text", d.Speech.SpeechToText)
	iv.GET("/voices", d.Speech.Voices)
	iv.GET("/status", d.Speech.Status)
}
