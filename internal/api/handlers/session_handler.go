package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ventureai/backend/internal/services"
	"github.com/ventureai/backend/internal/store"
	"github.com/ventureai/backend/internal/utils"
)

type SessionHandler struct {
	store *store.SessionStore
	cv    *services.CVService
	log   *logrus.Logger
}

func NewSessionHandler(st *store.SessionStore, cv *services.CVService, log *logrus.Logger) *SessionHandler {
	return &SessionHandler{store: st, cv: cv, log: log}
}

type CreateSessionResponse struct {
	SessionID        string `json:"session_id"`
	HasCV            bool   `json:"has_cv"`
	CVQuestionsCount int    `json:"cv_questions_count"`
}

// Create starts a new interview session. An optional multipart "cv_file"
// seeds CV-derived questions; extraction failure is never fatal.
func (h *SessionHandler) Create(c *gin.Context) {
	const op = "SessionHandler.Create"

	cvPath := ""
	var cvQuestions []string

	if fh, err := c.FormFile("cv_file"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "failed to open cv upload", err))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "failed to read cv upload", err))
			return
		}

		path, err := h.cv.SaveUpload(fh.Filename, data)
		if err != nil {
			h.log.WithError(err).Warn("cv upload not saved")
		} else {
			cvPath = path
			cvQuestions = h.cv.GenerateQuestions(c.Request.Context(), path)
		}
	}

	sess, err := h.store.Create(cvPath, cvQuestions)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, CreateSessionResponse{
		SessionID:        sess.SessionID,
		HasCV:            cvPath != "",
		CVQuestionsCount: len(sess.CVQuestions),
	})
}

func (h *SessionHandler) List(c *gin.Context) {
	ids, err := h.store.List()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ids)
}

func (h *SessionHandler) Get(c *gin.Context) {
	sess, err := h.store.Get(c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	id := c.Param("session_id")
	if !h.store.Delete(id) {
		writeError(c, utils.E(utils.CodeNotFound, "SessionHandler.Delete", "session not found", nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": id,
		"message":    "Session deleted successfully",
	})
}
