package stt

import (
	"context"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"

	"github.com/ventureai/backend/internal/audio"
)

// Domain phrases fed to the recognizer to bias it toward pitch vocabulary.
var vcPhrases = []string{
	"venture capital", "startup", "funding", "investment",
	"MVP", "product market fit", "acquisition", "ROI", "CAC",
	"LTV", "churn", "valuation", "runway", "burn rate",
	"user acquisition", "monetization", "scaling", "series A",
	"angel investor", "pitch deck", "business model",
}

type GoogleSpeech struct {
	c *speech.Client

	Model        string
	SampleRateHz int32
}

func NewGoogleSpeech(ctx context.Context, model string, sampleRateHz int) (*GoogleSpeech, error) {
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = "latest_long"
	}
	if sampleRateHz <= 0 {
		sampleRateHz = 16000
	}
	return &GoogleSpeech{
		c:            c,
		Model:        model,
		SampleRateHz: int32(sampleRateHz),
	}, nil
}

func (g *GoogleSpeech) Close() error { return g.c.Close() }

// language example: "en-US"
func (g *GoogleSpeech) Transcribe(ctx context.Context, data []byte, language string) (string, float64, error) {
	if language == "" {
		language = "en-US"
	}

	cfg := &speechpb.RecognitionConfig{
		LanguageCode:               language,
		EnableAutomaticPunctuation: true,
		Model:                      g.Model,
		UseEnhanced:                true,
		SpeechContexts:             []*speechpb.SpeechContext{{Phrases: vcPhrases}},
	}
	if audio.IsWebM(data) {
		// Browser recordings: WEBM/Opus carries its own sample rate.
		cfg.Encoding = speechpb.RecognitionConfig_WEBM_OPUS
	} else {
		cfg.Encoding = speechpb.RecognitionConfig_LINEAR16
		cfg.SampleRateHertz = g.SampleRateHz
	}

	resp, err := g.c.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: cfg,
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: data},
		},
	})
	if err != nil {
		return "", 0, err
	}

	var bestText string
	var bestConf float64
	for _, r := range resp.Results {
		for _, alt := range r.Alternatives {
			if alt.Transcript != "" && float64(alt.Confidence) >= bestConf {
				bestText = alt.Transcript
				bestConf = float64(alt.Confidence)
			}
		}
	}

	return bestText, bestConf, nil
}
