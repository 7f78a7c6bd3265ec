package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ventureai/backend/internal/storage"
	"github.com/ventureai/backend/internal/store"
)

// memCache is an in-process Cache for observing hit behavior.
type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (m *memCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (m *memCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *memCache) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	b, ok := m.data[key]
	return b, ok, nil
}

func (m *memCache) SetBytes(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	m.data[key] = data
	return nil
}

func (m *memCache) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func newTestSpeechService(t *testing.T, gw CloudGateway, c *memCache) (*SpeechService, *store.SessionStore) {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	dir := t.TempDir()
	st, err := store.NewSessionStore(dir, log)
	if err != nil {
		t.Fatalf("store init failed: %v", err)
	}
	svc := NewSpeechService(gw, st, storage.NewLocalUploader(dir), c, time.Minute, log)
	return svc, st
}

func TestTextToSpeechReturnsSynthesizedAudio(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSpeechService(t, &fakeGateway{}, newMemCache())

	data, contentType := svc.TextToSpeech(ctx, "Welcome to the interview", "")
	if contentType != "audio/mpeg" {
		t.Fatalf("expected audio/mpeg, got %q", contentType)
	}
	if string(data) != "mp3-bytes" {
		t.Fatalf("unexpected payload: %q", data)
	}
}

func TestTextToSpeechServesRepeatFromCache(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	gw := &fakeGateway{}
	svc, _ := newTestSpeechService(t, gw, c)

	svc.TextToSpeech(ctx, "Same text", "")
	entries := len(c.data)
	if entries != 1 {
		t.Fatalf("expected cached entry after first call, got %d", entries)
	}

	// Break the gateway; the cached entry must still serve.
	gw.down = true
	data, contentType := svc.TextToSpeech(ctx, "Same text", "")
	if contentType != "audio/mpeg" || string(data) != "mp3-bytes" {
		t.Fatalf("cache miss on repeat: %q %q", contentType, data)
	}
}

func TestTextToSpeechRecordsSessionHistory(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestSpeechService(t, &fakeGateway{}, newMemCache())
	sess, _ := st.Create("", nil)

	svc.TextToSpeech(ctx, "Question audio", sess.SessionID)

	got, err := st.Get(sess.SessionID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.TTSHistory) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(got.TTSHistory))
	}
	if got.TTSHistory[0].Text != "Question audio" {
		t.Fatalf("unexpected history record: %+v", got.TTSHistory[0])
	}
}

func TestSpeechToTextFallbackTranscript(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSpeechService(t, &fakeGateway{down: true}, newMemCache())

	if got := svc.SpeechToText(ctx, []byte("audio"), ""); got != FallbackTranscript {
		t.Fatalf("expected fallback transcript, got %q", got)
	}
}

func TestVoicesCachedAndEmptyWhenDown(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	gw := &fakeGateway{}
	svc, _ := newTestSpeechService(t, gw, c)

	voices := svc.Voices(ctx)
	if len(voices) != 1 {
		t.Fatalf("expected 1 voice, got %d", len(voices))
	}

	gw.down = true
	if voices = svc.Voices(ctx); len(voices) != 1 {
		t.Fatal("voice list not served from cache during outage")
	}

	svcCold, _ := newTestSpeechService(t, gw, newMemCache())
	if voices = svcCold.Voices(ctx); voices != nil {
		t.Fatalf("expected no voices when synthesis is down, got %v", voices)
	}
}
