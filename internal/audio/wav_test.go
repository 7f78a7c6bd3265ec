package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"
)

func TestIsWebMByMagic(t *testing.T) {
	data := append([]byte{0x1a, 0x45, 0xdf, 0xa3}, make([]byte, 32)...)
	if !IsWebM(data) {
		t.Fatal("EBML header not recognized as webm")
	}
}

func TestIsWebMByDocTypeString(t *testing.T) {
	data := append([]byte{0x00, 0x01}, []byte("....webm....")...)
	if !IsWebM(data) {
		t.Fatal("webm doctype in header not recognized")
	}
}

func TestIsWebMRejectsWAV(t *testing.T) {
	if IsWebM(SilentWAV(100*time.Millisecond, 16000)) {
		t.Fatal("WAV misdetected as webm")
	}
}

func TestIsWebMIgnoresLateMarker(t *testing.T) {
	data := append(make([]byte, 60), []byte("webm")...)
	if IsWebM(data) {
		t.Fatal("marker past the sniff window should not match")
	}
}

func TestSilentWAVHeader(t *testing.T) {
	const rate = 16000
	data := SilentWAV(time.Second, rate)

	if !bytes.HasPrefix(data, []byte("RIFF")) || string(data[8:12]) != "WAVE" {
		t.Fatalf("bad RIFF/WAVE header: % x", data[:12])
	}

	riffSize := binary.LittleEndian.Uint32(data[4:8])
	if int(riffSize) != len(data)-8 {
		t.Fatalf("RIFF size %d does not match payload %d", riffSize, len(data)-8)
	}

	if channels := binary.LittleEndian.Uint16(data[22:24]); channels != 1 {
		t.Fatalf("expected mono, got %d channels", channels)
	}
	if gotRate := binary.LittleEndian.Uint32(data[24:28]); gotRate != rate {
		t.Fatalf("expected sample rate %d, got %d", rate, gotRate)
	}

	dataSize := binary.LittleEndian.Uint32(data[40:44])
	if int(dataSize) != rate*2 {
		t.Fatalf("expected %d bytes of samples for one second, got %d", rate*2, dataSize)
	}
	for _, b := range data[44:] {
		if b != 0 {
			t.Fatal("silence payload contains non-zero samples")
		}
	}
}

func TestSilentWAVDefaultsSampleRate(t *testing.T) {
	data := SilentWAV(100*time.Millisecond, 0)
	if gotRate := binary.LittleEndian.Uint32(data[24:28]); gotRate != 16000 {
		t.Fatalf("expected default rate 16000, got %d", gotRate)
	}
}
