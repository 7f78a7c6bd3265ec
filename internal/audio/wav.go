package audio

import (
	"bytes"
	"encoding/binary"
	"time"
)

// webmMagic is the EBML header every WEBM/Matroska stream starts with.
var webmMagic = []byte{0x1a, 0x45, 0xdf, 0xa3}

// IsWebM sniffs browser-recorded audio, which arrives as WEBM/Opus rather
// than raw PCM.
func IsWebM(data []byte) bool {
	if bytes.HasPrefix(data, webmMagic) {
		return true
	}
	head := data
	if len(head) > 50 {
		head = head[:50]
	}
	return bytes.Contains(head, []byte("webm"))
}

// SilentWAV returns a valid mono 16-bit PCM WAV of the given duration
// containing only silence. It is the degraded stand-in when speech synthesis
// is unavailable.
func SilentWAV(d time.Duration, sampleRate int) []byte {
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	numSamples := int(float64(sampleRate) * d.Seconds())
	dataSize := numSamples * 2 // 16-bit mono

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(make([]byte, dataSize))

	return buf.Bytes()
}
