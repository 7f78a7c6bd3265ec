package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ventureai/backend/internal/cache"
	"github.com/ventureai/backend/internal/gateway"
	"github.com/ventureai/backend/internal/models"
	"github.com/ventureai/backend/internal/providers/llm"
	"github.com/ventureai/backend/internal/providers/tts"
	"github.com/ventureai/backend/internal/questions"
	"github.com/ventureai/backend/internal/storage"
	"github.com/ventureai/backend/internal/store"
	"github.com/ventureai/backend/internal/utils"
)

// CloudGateway is the capability surface the orchestrator needs from the
// cloud service gateway. *gateway.Gateway satisfies it; tests inject fakes.
type CloudGateway interface {
	GenerateText(ctx context.Context, prompt string, opts llm.Options) (string, error)
	SynthesizeSpeech(ctx context.Context, text string, opts tts.Options) ([]byte, error)
	Transcribe(ctx context.Context, data []byte, language string) (string, float64, error)
	ListVoices(ctx context.Context) ([]tts.Voice, error)
	Status() gateway.ServiceStatus
}

// InterviewService drives the interview: question selection, response
// recording, sentiment scoring, and feedback synthesis. All gateway failures
// are resolved to the documented fallback payloads here, at this one
// boundary, so upstream outages never reach the client as errors.
type InterviewService struct {
	store    *store.SessionStore
	gw       CloudGateway
	bank     *questions.Bank
	uploader storage.Uploader
	cache    cache.Cache
	log      *logrus.Logger
}

func NewInterviewService(st *store.SessionStore, gw CloudGateway, bank *questions.Bank, up storage.Uploader, c cache.Cache, log *logrus.Logger) *InterviewService {
	if c == nil {
		c = cache.Noop{}
	}
	return &InterviewService{store: st, gw: gw, bank: bank, uploader: up, cache: c, log: log}
}

type QuestionResult struct {
	SessionID  string
	Question   string
	QuestionID string
	HasAudio   bool
	Complete   bool
}

// NextQuestion selects the next question for the supplied history: CV
// questions first in generation order, then bank questions. The choice is
// idempotent for a given history; delivery is recorded in the session, where
// the question count only ever grows.
func (s *InterviewService) NextQuestion(ctx context.Context, sessionID string, prevQuestions, prevResponses []string) (*QuestionResult, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	question, origin := s.selectQuestion(ctx, sess, prevQuestions, prevResponses)
	if question == "" {
		return &QuestionResult{SessionID: sessionID, Complete: true}, nil
	}

	var questionID string
	updated, err := s.store.Mutate(sessionID, func(live *models.Session) error {
		live.Questions = append(live.Questions, models.Question{Text: question, Origin: origin})
		questionID = strconv.Itoa(len(live.Questions) - 1)
		live.Turns = append(live.Turns, models.Turn{
			Speaker:   models.SpeakerInterviewer,
			Text:      question,
			Timestamp: time.Now().UTC(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	hasAudio := s.attachQuestionAudio(ctx, sessionID, questionID, question, len(updated.Turns)-1)

	return &QuestionResult{
		SessionID:  sessionID,
		Question:   question,
		QuestionID: questionID,
		HasAudio:   hasAudio,
	}, nil
}

// selectQuestion applies the strict precedence policy. The gateway may
// reorder remaining bank questions, but only a verbatim match against the
// remaining set is trusted.
func (s *InterviewService) selectQuestion(ctx context.Context, sess *models.Session, prevQuestions, prevResponses []string) (string, string) {
	if len(prevQuestions) < len(sess.CVQuestions) {
		return sess.CVQuestions[len(prevQuestions)], models.OriginCV
	}

	asked := make(map[string]bool, len(prevQuestions))
	for _, q := range prevQuestions {
		asked[q] = true
	}

	var remaining []string
	for _, q := range s.bank.Questions() {
		if !asked[q] {
			remaining = append(remaining, q)
		}
	}
	if len(remaining) == 0 {
		return "", ""
	}

	// First bank question goes out in bank order; with responses on record
	// the gateway may pick the most valuable of the rest.
	if len(prevResponses) == 0 || len(remaining) == s.bank.Len() {
		return remaining[0], models.OriginBank
	}

	suggestion, err := s.gw.GenerateText(ctx, nextQuestionPrompt(prevResponses, remaining), llm.Options{Temperature: 0.7})
	if err != nil {
		if !utils.IsUpstream(err) {
			s.log.WithError(err).Warn("question reorder failed")
		}
		return remaining[0], models.OriginBank
	}

	suggestion = strings.TrimSpace(suggestion)
	for _, q := range remaining {
		if q == suggestion {
			return q, models.OriginBank
		}
	}
	return remaining[0], models.OriginBank
}

// attachQuestionAudio synthesizes spoken audio for the question and stores
// it next to the session snapshot. Best-effort: synthesis being down just
// means a text-only question.
func (s *InterviewService) attachQuestionAudio(ctx context.Context, sessionID, questionID, question string, turnIdx int) bool {
	if s.uploader == nil {
		return false
	}

	data, err := s.synthesizeCached(ctx, question)
	if err != nil {
		return false
	}

	name := fmt.Sprintf("%s/question_%s.mp3", sessionID, questionID)
	if _, err := s.uploader.Upload(ctx, name, "audio/mpeg", bytes.NewReader(data)); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Warn("failed to store question audio")
		return false
	}

	_, err = s.store.Mutate(sessionID, func(live *models.Session) error {
		if turnIdx >= 0 && turnIdx < len(live.Turns) {
			live.Turns[turnIdx].AudioFile = fmt.Sprintf("question_%s.mp3", questionID)
		}
		return nil
	})
	return err == nil
}

func (s *InterviewService) synthesizeCached(ctx context.Context, text string) ([]byte, error) {
	sum := sha256.Sum256([]byte("tts:mp3:" + text))
	key := "tts:" + hex.EncodeToString(sum[:16])

	if data, hit, err := s.cache.GetBytes(ctx, key); err == nil && hit {
		return data, nil
	}

	data, err := s.gw.SynthesizeSpeech(ctx, text, tts.Options{Encoding: tts.EncodingMP3})
	if err != nil {
		return nil, err
	}
	_ = s.cache.SetBytes(ctx, key, data, time.Hour)
	return data, nil
}

type ResponseResult struct {
	SessionID    string
	QuestionID   string
	Text         string
	Sentiment    models.Sentiment
	NeedFollowUp bool
	FollowUp     string
}

// SubmitResponse records a candidate answer (transcribing it first when it
// arrives as audio), scores sentiment, and issues the scripted follow-up
// when the score is poor enough.
func (s *InterviewService) SubmitResponse(ctx context.Context, sessionID, questionID, text string, audioData []byte) (*ResponseResult, error) {
	const op = "InterviewService.SubmitResponse"

	if sessionID == "" || questionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id and question_id are required", nil)
	}
	if text == "" && len(audioData) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "no text or audio response provided", nil)
	}
	if _, err := s.store.Get(sessionID); err != nil {
		return nil, err
	}

	audioFile := ""
	if len(audioData) > 0 {
		if text == "" {
			transcript, _, err := s.gw.Transcribe(ctx, audioData, "")
			if err != nil {
				text = FallbackTranscript
			} else {
				text = transcript
			}
		}
		audioFile = s.storeResponseAudio(ctx, sessionID, questionID, audioData)
	}

	now := time.Now().UTC()
	if _, err := s.store.Mutate(sessionID, func(live *models.Session) error {
		live.Turns = append(live.Turns, models.Turn{
			Speaker:   models.SpeakerCandidate,
			Text:      text,
			AudioFile: audioFile,
			Timestamp: now,
		})
		live.Responses = append(live.Responses, models.Response{
			QuestionID: questionID,
			Text:       text,
			AudioFile:  audioFile,
			Timestamp:  now,
		})
		return nil
	}); err != nil {
		return nil, err
	}

	sentiment := s.scoreSentiment(ctx, text)

	result := &ResponseResult{
		SessionID:  sessionID,
		QuestionID: questionID,
		Text:       text,
		Sentiment:  sentiment,
	}

	if sentiment.Score < FollowUpThreshold {
		if _, err := s.store.AppendTurn(sessionID, models.Turn{
			Speaker:   models.SpeakerInterviewer,
			Text:      FollowUpText,
			Timestamp: time.Now().UTC(),
		}); err == nil {
			result.NeedFollowUp = true
			result.FollowUp = FollowUpText
		}
	}

	return result, nil
}

func (s *InterviewService) storeResponseAudio(ctx context.Context, sessionID, questionID string, data []byte) string {
	if s.uploader == nil {
		return ""
	}
	name := fmt.Sprintf("%s/response_%s_%d.wav", sessionID, questionID, time.Now().Unix())
	if _, err := s.uploader.Upload(ctx, name, "audio/wav", bytes.NewReader(data)); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Warn("failed to store response audio")
		return ""
	}
	return name[strings.Index(name, "/")+1:]
}

// scoreSentiment asks the generative model for a structured score, degrading
// to the neutral default on any failure.
func (s *InterviewService) scoreSentiment(ctx context.Context, text string) models.Sentiment {
	raw, err := s.gw.GenerateText(ctx, sentimentPrompt(text), llm.Options{
		SystemInstruction: sentimentSystemInstruction,
		Temperature:       0.1,
	})
	if err != nil {
		return NeutralSentiment()
	}

	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var parsed struct {
		Score       float64 `json:"score"`
		Magnitude   float64 `json:"magnitude"`
		Sentiment   string  `json:"sentiment"`
		Explanation string  `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err != nil {
		s.log.WithError(err).Debug("unparseable sentiment payload")
		return NeutralSentiment()
	}

	if parsed.Score < -1 {
		parsed.Score = -1
	}
	if parsed.Score > 1 {
		parsed.Score = 1
	}
	label := parsed.Sentiment
	if label != "positive" && label != "neutral" && label != "negative" {
		label = models.LabelFor(parsed.Score)
	}

	return models.Sentiment{
		Score:       parsed.Score,
		Magnitude:   parsed.Magnitude,
		Label:       label,
		Explanation: parsed.Explanation,
	}
}

// GenerateFeedback synthesizes end-of-interview feedback over the full
// transcript. A session with no recorded responses is rejected rather than
// padded with a placeholder. Regeneration overwrites prior feedback.
func (s *InterviewService) GenerateFeedback(ctx context.Context, sessionID string, detailed bool) (*models.Feedback, error) {
	const op = "InterviewService.GenerateFeedback"

	sess, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if len(sess.Responses) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "no responses to analyze", nil)
	}

	feedback, err := s.gw.GenerateText(ctx, feedbackPrompt(transcriptText(sess), detailed), llm.Options{
		SystemInstruction: feedbackSystemInstruction,
		Temperature:       0.7,
	})
	if err != nil {
		feedback = DefaultFeedback
	}

	if _, err := s.store.SetFeedback(sessionID, feedback); err != nil {
		return nil, err
	}

	out := &models.Feedback{SessionID: sessionID, Summary: feedback}
	if detailed {
		out.Detailed = feedback
	}
	return out, nil
}

func transcriptText(sess *models.Session) string {
	var sb strings.Builder
	for i, q := range sess.Questions {
		fmt.Fprintf(&sb, "Question %d: %s\n", i+1, q.Text)
		if i < len(sess.Responses) {
			fmt.Fprintf(&sb, "Response: %s\n\n", sess.Responses[i].Text)
		}
	}
	if sb.Len() == 0 {
		// Sessions driven purely through the transcript still get scored.
		for _, t := range sess.Turns {
			fmt.Fprintf(&sb, "%s: %s\n\n", capitalize(t.Speaker), t.Text)
		}
	}
	return sb.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
