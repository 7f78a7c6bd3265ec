package tts

import (
	"context"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	texttospeechpb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

// GoogleTTS synthesizes speech through Google Cloud Text-to-Speech. The
// available voices are probed once at construction and the best one cached
// as the default.
type GoogleTTS struct {
	c *texttospeech.Client

	LanguageCode string
	DefaultVoice string

	voices []Voice
}

func NewGoogleTTS(ctx context.Context, languageCode, preferredVoice string) (*GoogleTTS, error) {
	c, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	if languageCode == "" {
		languageCode = "en-US"
	}

	g := &GoogleTTS{c: c, LanguageCode: languageCode}

	// Voice probing is best-effort: a failed ListVoices leaves the
	// preferred voice (or the API default) in place.
	names, err := g.probeVoices(ctx)
	if err == nil && len(names) > 0 {
		g.voices = Rank(names)
		g.DefaultVoice = Best(names)
	}
	if preferredVoice != "" {
		for _, v := range g.voices {
			if v.Name == preferredVoice {
				g.DefaultVoice = preferredVoice
				break
			}
		}
		if len(g.voices) == 0 {
			g.DefaultVoice = preferredVoice
		}
	}

	return g, nil
}

func (g *GoogleTTS) Close() error { return g.c.Close() }

func (g *GoogleTTS) probeVoices(ctx context.Context) ([]string, error) {
	resp, err := g.c.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{
		LanguageCode: g.LanguageCode,
	})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(resp.Voices))
	for _, v := range resp.Voices {
		names = append(names, v.Name)
	}
	return names, nil
}

func (g *GoogleTTS) ListVoices(ctx context.Context) ([]Voice, error) {
	if len(g.voices) > 0 {
		return g.voices, nil
	}
	names, err := g.probeVoices(ctx)
	if err != nil {
		return nil, err
	}
	g.voices = Rank(names)
	return g.voices, nil
}

func (g *GoogleTTS) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	voice := opts.Voice
	if voice == "" {
		voice = g.DefaultVoice
	}

	audioConfig := &texttospeechpb.AudioConfig{
		AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		SpeakingRate:  0.97,
		VolumeGainDb:  1.0,
	}
	if opts.Encoding == EncodingLinear16 {
		audioConfig.AudioEncoding = texttospeechpb.AudioEncoding_LINEAR16
		audioConfig.SampleRateHertz = 24000
		audioConfig.EffectsProfileId = []string{"large-home-entertainment-class-device"}
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Ssml{Ssml: formatSSML(text)},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: g.LanguageCode,
			Name:         voice,
		},
		AudioConfig: audioConfig,
	}

	resp, err := g.c.SynthesizeSpeech(ctx, req)
	if err != nil {
		// Some voices reject SSML markup; retry with plain text before
		// giving up.
		req.Input = &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		}
		resp, err = g.c.SynthesizeSpeech(ctx, req)
		if err != nil {
			return nil, err
		}
	}
	return resp.AudioContent, nil
}
