package tts

import "context"

// Encoding selects the synthesized audio container.
type Encoding string

const (
	EncodingMP3      Encoding = "mp3"
	EncodingLinear16 Encoding = "linear16"
)

// Options for one synthesis call. An empty Voice lets the provider pick the
// best available voice it probed at startup.
type Options struct {
	Voice    string
	Encoding Encoding
}

// Voice is one synthesizer voice together with its quality tier.
type Voice struct {
	Name string `json:"name"`
	Tier string `json:"tier"`
}

type Provider interface {
	Synthesize(ctx context.Context, text string, opts Options) ([]byte, error)
	// ListVoices returns available voices ordered best-tier first.
	ListVoices(ctx context.Context) ([]Voice, error)
	Close() error
}
