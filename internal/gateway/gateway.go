package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ventureai/backend/config"
	"github.com/ventureai/backend/internal/providers/llm"
	"github.com/ventureai/backend/internal/providers/stt"
	"github.com/ventureai/backend/internal/providers/tts"
	"github.com/ventureai/backend/internal/utils"
)

// Gateway is the single boundary around the external generative-text and
// speech services. Each of the three providers is initialized independently
// at process start; a provider that failed to come up stays nil and its
// operations return UNAVAILABLE without affecting the siblings. Every call
// is bounded by a per-call timeout, and expiry is reported the same way as a
// backend failure.
type Gateway struct {
	llm llm.Provider
	tts tts.Provider
	stt stt.Provider

	timeout time.Duration
	log     *logrus.Logger
}

// ServiceStatus is the availability snapshot of the three wrapped services.
type ServiceStatus struct {
	Generative bool `json:"generative"`
	TTS        bool `json:"tts"`
	STT        bool `json:"stt"`
}

// New initializes all three cloud services, tolerating partial failure.
func New(ctx context.Context, cfg config.Config, log *logrus.Logger) *Gateway {
	g := &Gateway{timeout: cfg.GatewayTimeout, log: log}
	if g.timeout <= 0 {
		g.timeout = 30 * time.Second
	}

	if p, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GenerativeModelName); err != nil {
		log.WithError(err).Error("gemini init failed, text generation degraded to fallbacks")
	} else {
		g.llm = p
		log.WithField("model", cfg.GenerativeModelName).Info("gemini initialized")
	}

	if p, err := tts.NewGoogleTTS(ctx, cfg.TTSLanguage, cfg.TTSVoice); err != nil {
		log.WithError(err).Error("text-to-speech init failed, synthesis degraded to silence")
	} else {
		g.tts = p
		log.WithField("voice", p.DefaultVoice).Info("text-to-speech initialized")
	}

	if p, err := stt.NewGoogleSpeech(ctx, cfg.STTModel, cfg.STTSampleRate); err != nil {
		log.WithError(err).Error("speech-to-text init failed, transcription unavailable")
	} else {
		g.stt = p
		log.WithField("model", cfg.STTModel).Info("speech-to-text initialized")
	}

	return g
}

// NewWithProviders wires explicit providers; nil means that service is down.
func NewWithProviders(l llm.Provider, t tts.Provider, s stt.Provider, timeout time.Duration, log *logrus.Logger) *Gateway {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = logrus.New()
	}
	return &Gateway{llm: l, tts: t, stt: s, timeout: timeout, log: log}
}

func (g *Gateway) Status() ServiceStatus {
	return ServiceStatus{
		Generative: g.llm != nil,
		TTS:        g.tts != nil,
		STT:        g.stt != nil,
	}
}

func (g *Gateway) Close() {
	if g.llm != nil {
		_ = g.llm.Close()
	}
	if g.tts != nil {
		_ = g.tts.Close()
	}
	if g.stt != nil {
		_ = g.stt.Close()
	}
}

func (g *Gateway) GenerateText(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	const op = "Gateway.GenerateText"
	if g.llm == nil {
		return "", utils.E(utils.CodeUnavailable, op, "generative service not initialized", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	out, err := g.llm.GenerateText(ctx, prompt, opts)
	if err != nil {
		return "", g.upstream(op, "text generation failed", err)
	}
	return out, nil
}

func (g *Gateway) SynthesizeSpeech(ctx context.Context, text string, opts tts.Options) ([]byte, error) {
	const op = "Gateway.SynthesizeSpeech"
	if g.tts == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "speech synthesis not initialized", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	out, err := g.tts.Synthesize(ctx, text, opts)
	if err != nil {
		return nil, g.upstream(op, "speech synthesis failed", err)
	}
	return out, nil
}

func (g *Gateway) Transcribe(ctx context.Context, data []byte, language string) (string, float64, error) {
	const op = "Gateway.Transcribe"
	if g.stt == nil {
		return "", 0, utils.E(utils.CodeUnavailable, op, "speech recognition not initialized", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, conf, err := g.stt.Transcribe(ctx, data, language)
	if err != nil {
		return "", 0, g.upstream(op, "transcription failed", err)
	}
	return text, conf, nil
}

func (g *Gateway) ListVoices(ctx context.Context) ([]tts.Voice, error) {
	const op = "Gateway.ListVoices"
	if g.tts == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "speech synthesis not initialized", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	voices, err := g.tts.ListVoices(ctx)
	if err != nil {
		return nil, g.upstream(op, "voice listing failed", err)
	}
	return voices, nil
}

func (g *Gateway) upstream(op, msg string, err error) error {
	g.log.WithError(err).WithField("op", op).Warn("upstream call failed")
	if errors.Is(err, context.DeadlineExceeded) {
		return utils.E(utils.CodeTimeout, op, msg, err)
	}
	return utils.E(utils.CodeUnavailable, op, msg, err)
}
