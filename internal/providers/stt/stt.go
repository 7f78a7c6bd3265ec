package stt

import "context"

type Provider interface {
	// Transcribe recognizes speech in audio. The container format (WEBM
	// from browser recordings vs raw PCM) is sniffed from the bytes.
	Transcribe(ctx context.Context, audio []byte, language string) (text string, confidence float64, err error)
	Close() error
}
