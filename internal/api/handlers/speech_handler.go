package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ventureai/backend/internal/services"
	"github.com/ventureai/backend/internal/utils"
)

type SpeechHandler struct {
	svc    *services.SpeechService
	status func() any
}

func NewSpeechHandler(svc *services.SpeechService, status func() any) *SpeechHandler {
	return &SpeechHandler{svc: svc, status: status}
}

type TextToSpeechRequest struct {
	Text      string `json:"text" binding:"required"`
	SessionID string `json:"session_id"`
}

func (h *SpeechHandler) TextToSpeech(c *gin.Context) {
	var req TextToSpeechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SpeechHandler.TextToSpeech", "invalid request body", err))
		return
	}

	data, contentType := h.svc.TextToSpeech(c.Request.Context(), req.Text, req.SessionID)
	c.Data(http.StatusOK, contentType, data)
}

func (h *SpeechHandler) SpeechToText(c *gin.Context) {
	const op = "SpeechHandler.SpeechToText"

	fh, err := c.FormFile("audio_file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing multipart field 'audio_file'", err))
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "failed to open audio upload", err))
		return
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "failed to read audio upload", err))
		return
	}
	if len(data) == 0 {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "empty audio upload", nil))
		return
	}

	text := h.svc.SpeechToText(c.Request.Context(), data, c.PostForm("session_id"))
	c.JSON(http.StatusOK, gin.H{"text": text})
}

func (h *SpeechHandler) Voices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"voices": h.svc.Voices(c.Request.Context())})
}

func (h *SpeechHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": h.status()})
}
