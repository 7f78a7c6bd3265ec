package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ventureai/backend/internal/audio"
	"github.com/ventureai/backend/internal/cache"
	"github.com/ventureai/backend/internal/models"
	"github.com/ventureai/backend/internal/providers/tts"
	"github.com/ventureai/backend/internal/storage"
	"github.com/ventureai/backend/internal/store"
)

// SpeechService backs the direct text-to-speech and speech-to-text
// passthrough endpoints. Upstream outages degrade: synthesis falls back to a
// short silent WAV, recognition to a fixed apology transcript.
type SpeechService struct {
	gw       CloudGateway
	store    *store.SessionStore
	uploader storage.Uploader
	cache    cache.Cache
	cacheTTL time.Duration
	log      *logrus.Logger
}

func NewSpeechService(gw CloudGateway, st *store.SessionStore, up storage.Uploader, c cache.Cache, cacheTTL time.Duration, log *logrus.Logger) *SpeechService {
	if c == nil {
		c = cache.Noop{}
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &SpeechService{gw: gw, store: st, uploader: up, cache: c, cacheTTL: cacheTTL, log: log}
}

// TextToSpeech synthesizes text, returning the audio bytes and their content
// type. When a session id is supplied the artifact and a history record are
// attached to the session, best-effort.
func (s *SpeechService) TextToSpeech(ctx context.Context, text, sessionID string) ([]byte, string) {
	sum := sha256.Sum256([]byte("tts:mp3:" + text))
	key := "tts:" + hex.EncodeToString(sum[:16])

	data, hit, err := s.cache.GetBytes(ctx, key)
	if err != nil || !hit {
		data, err = s.gw.SynthesizeSpeech(ctx, text, tts.Options{Encoding: tts.EncodingMP3})
		if err != nil {
			// Degraded mode: one second of silence keeps audio players fed.
			return audio.SilentWAV(time.Second, 16000), "audio/wav"
		}
		_ = s.cache.SetBytes(ctx, key, data, s.cacheTTL)
	}

	if sessionID != "" {
		s.recordAudio(ctx, sessionID, text, data, "tts", "audio/mpeg")
	}
	return data, "audio/mpeg"
}

// SpeechToText transcribes uploaded audio. When a session id is supplied the
// audio and transcript are attached to the session, best-effort.
func (s *SpeechService) SpeechToText(ctx context.Context, data []byte, sessionID string) string {
	text, _, err := s.gw.Transcribe(ctx, data, "")
	if err != nil {
		text = FallbackTranscript
	}

	if sessionID != "" {
		s.recordAudio(ctx, sessionID, text, data, "stt", "audio/wav")
	}
	return text
}

// Voices lists available synthesizer voices ordered best tier first; empty
// when synthesis is down.
func (s *SpeechService) Voices(ctx context.Context) []tts.Voice {
	var voices []tts.Voice
	if hit, err := s.cache.GetJSON(ctx, "tts:voices", &voices); err == nil && hit {
		return voices
	}

	voices, err := s.gw.ListVoices(ctx)
	if err != nil {
		return nil
	}
	_ = s.cache.SetJSON(ctx, "tts:voices", voices, s.cacheTTL)
	return voices
}

func (s *SpeechService) recordAudio(ctx context.Context, sessionID, text string, data []byte, kind, contentType string) {
	if s.uploader == nil {
		return
	}

	ext := "mp3"
	if contentType == "audio/wav" {
		ext = "wav"
	}
	name := fmt.Sprintf("%s/%s_%d.%s", sessionID, kind, time.Now().Unix(), ext)
	if _, err := s.uploader.Upload(ctx, name, contentType, bytes.NewReader(data)); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Warn("failed to store audio artifact")
		return
	}

	rec := models.AudioRecord{
		Text:      text,
		AudioFile: name,
		Timestamp: time.Now().UTC(),
	}
	if _, err := s.store.Mutate(sessionID, func(live *models.Session) error {
		if kind == "tts" {
			live.TTSHistory = append(live.TTSHistory, rec)
		} else {
			live.STTHistory = append(live.STTHistory, rec)
		}
		return nil
	}); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Debug("audio history not recorded")
	}
}
