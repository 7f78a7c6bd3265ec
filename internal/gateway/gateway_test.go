package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ventureai/backend/internal/providers/llm"
	"github.com/ventureai/backend/internal/providers/tts"
	"github.com/ventureai/backend/internal/utils"
)

type stubLLM struct {
	reply string
	delay time.Duration
}

func (s *stubLLM) GenerateText(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.delay):
		}
	}
	return s.reply, nil
}

func (s *stubLLM) Close() error { return nil }

type stubTTS struct{}

func (stubTTS) Synthesize(ctx context.Context, text string, opts tts.Options) ([]byte, error) {
	return []byte("audio"), nil
}

func (stubTTS) ListVoices(ctx context.Context) ([]tts.Voice, error) {
	return []tts.Voice{{Name: "en-US-Studio-O", Tier: "Studio"}}, nil
}

func (stubTTS) Close() error { return nil }

type stubSTT struct{}

func (stubSTT) Transcribe(ctx context.Context, audio []byte, language string) (string, float64, error) {
	return "hello", 0.95, nil
}

func (stubSTT) Close() error { return nil }

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestNilProvidersReturnUnavailable(t *testing.T) {
	ctx := context.Background()
	g := NewWithProviders(nil, nil, nil, time.Second, testLogger())

	if _, err := g.GenerateText(ctx, "prompt", llm.Options{}); !utils.IsCode(err, utils.CodeUnavailable) {
		t.Fatalf("GenerateText: expected UNAVAILABLE, got %v", err)
	}
	if _, err := g.SynthesizeSpeech(ctx, "text", tts.Options{}); !utils.IsCode(err, utils.CodeUnavailable) {
		t.Fatalf("SynthesizeSpeech: expected UNAVAILABLE, got %v", err)
	}
	if _, _, err := g.Transcribe(ctx, []byte("x"), ""); !utils.IsCode(err, utils.CodeUnavailable) {
		t.Fatalf("Transcribe: expected UNAVAILABLE, got %v", err)
	}
	if _, err := g.ListVoices(ctx); !utils.IsCode(err, utils.CodeUnavailable) {
		t.Fatalf("ListVoices: expected UNAVAILABLE, got %v", err)
	}
}

func TestStatusReflectsEachServiceIndependently(t *testing.T) {
	g := NewWithProviders(&stubLLM{reply: "ok"}, nil, stubSTT{}, time.Second, testLogger())

	got := g.Status()
	want := ServiceStatus{Generative: true, TTS: false, STT: true}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestPartialOutageDoesNotAffectSiblings(t *testing.T) {
	ctx := context.Background()
	g := NewWithProviders(nil, stubTTS{}, stubSTT{}, time.Second, testLogger())

	if _, err := g.GenerateText(ctx, "prompt", llm.Options{}); err == nil {
		t.Fatal("expected error from missing generative service")
	}
	if _, err := g.SynthesizeSpeech(ctx, "text", tts.Options{}); err != nil {
		t.Fatalf("SynthesizeSpeech should work: %v", err)
	}
	if text, _, err := g.Transcribe(ctx, []byte("x"), ""); err != nil || text != "hello" {
		t.Fatalf("Transcribe should work, got %q err=%v", text, err)
	}
}

func TestCallTimeoutReportedAsTimeout(t *testing.T) {
	ctx := context.Background()
	g := NewWithProviders(&stubLLM{delay: 200 * time.Millisecond}, nil, nil, 10*time.Millisecond, testLogger())

	_, err := g.GenerateText(ctx, "prompt", llm.Options{})
	if !utils.IsCode(err, utils.CodeTimeout) {
		t.Fatalf("expected TIMEOUT, got %v", err)
	}
	if !utils.IsUpstream(err) {
		t.Fatal("timeouts must be treated as upstream failures")
	}
}

func TestSuccessfulCallsPassThrough(t *testing.T) {
	ctx := context.Background()
	g := NewWithProviders(&stubLLM{reply: "generated"}, stubTTS{}, stubSTT{}, time.Second, testLogger())

	out, err := g.GenerateText(ctx, "prompt", llm.Options{})
	if err != nil || out != "generated" {
		t.Fatalf("got %q err=%v", out, err)
	}

	voices, err := g.ListVoices(ctx)
	if err != nil || len(voices) != 1 {
		t.Fatalf("got %v err=%v", voices, err)
	}
}
