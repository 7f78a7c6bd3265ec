package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ventureai/backend/internal/models"
	"github.com/ventureai/backend/internal/services"
	"github.com/ventureai/backend/internal/utils"
)

type InterviewHandler struct {
	svc *services.InterviewService
}

func NewInterviewHandler(svc *services.InterviewService) *InterviewHandler {
	return &InterviewHandler{svc: svc}
}

type QuestionRequest struct {
	SessionID         string   `json:"session_id" binding:"required"`
	PreviousQuestions []string `json:"previous_questions"`
	PreviousResponses []string `json:"previous_responses"`
}

type QuestionResponse struct {
	SessionID         string  `json:"session_id"`
	Question          *string `json:"question"`
	QuestionID        string  `json:"question_id,omitempty"`
	HasAudio          bool    `json:"has_audio"`
	InterviewComplete bool    `json:"interview_complete"`
}

func (h *InterviewHandler) NextQuestion(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.NextQuestion", "invalid request body", err))
		return
	}

	res, err := h.svc.NextQuestion(c.Request.Context(), req.SessionID, req.PreviousQuestions, req.PreviousResponses)
	if err != nil {
		writeError(c, err)
		return
	}

	out := QuestionResponse{
		SessionID:         res.SessionID,
		QuestionID:        res.QuestionID,
		HasAudio:          res.HasAudio,
		InterviewComplete: res.Complete,
	}
	if !res.Complete {
		out.Question = &res.Question
	}
	c.JSON(http.StatusOK, out)
}

type ResponseRequest struct {
	SessionID    string `json:"session_id"`
	QuestionID   string `json:"question_id"`
	TextResponse string `json:"text_response"`
}

type ResponseResponse struct {
	SessionID    string           `json:"session_id"`
	QuestionID   string           `json:"question_id"`
	TextResponse string           `json:"text_response"`
	Sentiment    models.Sentiment `json:"sentiment"`
	NeedFollowUp bool             `json:"need_follow_up"`
	FollowUp     *FollowUp        `json:"follow_up,omitempty"`
}

type FollowUp struct {
	Text string `json:"text"`
}

// SubmitResponse accepts either a JSON body with a text response or a
// multipart form carrying an audio_file to transcribe.
func (h *InterviewHandler) SubmitResponse(c *gin.Context) {
	const op = "InterviewHandler.SubmitResponse"

	var req ResponseRequest
	var audioData []byte

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		req.SessionID = c.PostForm("session_id")
		req.QuestionID = c.PostForm("question_id")
		req.TextResponse = c.PostForm("text_response")

		if fh, err := c.FormFile("audio_file"); err == nil && fh != nil {
			f, err := fh.Open()
			if err != nil {
				writeError(c, utils.E(utils.CodeInvalidArgument, op, "failed to open audio upload", err))
				return
			}
			audioData, err = io.ReadAll(f)
			f.Close()
			if err != nil {
				writeError(c, utils.E(utils.CodeInvalidArgument, op, "failed to read audio upload", err))
				return
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}

	res, err := h.svc.SubmitResponse(c.Request.Context(), req.SessionID, req.QuestionID, req.TextResponse, audioData)
	if err != nil {
		writeError(c, err)
		return
	}

	out := ResponseResponse{
		SessionID:    res.SessionID,
		QuestionID:   res.QuestionID,
		TextResponse: res.Text,
		Sentiment:    res.Sentiment,
		NeedFollowUp: res.NeedFollowUp,
	}
	if res.NeedFollowUp {
		out.FollowUp = &FollowUp{Text: res.FollowUp}
	}
	c.JSON(http.StatusOK, out)
}

type FeedbackRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Detailed  bool   `json:"detailed"`
}

func (h *InterviewHandler) GenerateFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.GenerateFeedback", "invalid request body", err))
		return
	}

	fb, err := h.svc.GenerateFeedback(c.Request.Context(), req.SessionID, req.Detailed)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}
