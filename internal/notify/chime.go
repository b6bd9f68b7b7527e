package notify

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"
)

const (
	chimeFrequency  = 880
	chimeSampleRate = 22050
	chimeDuration   = 0.5
	chimeAttack     = 0.1
	chimePeak       = 0.1
)

var (
	chimeOnce sync.Once
	chimeWAV  []byte
)

// Chime returns the alert cue as a mono 16-bit PCM WAV file: an 880 Hz sine
// that ramps up to its peak over 0.1 s and back down to silence at 0.5 s.
func Chime() []byte {
	chimeOnce.Do(func() { chimeWAV = renderChime() })
	return chimeWAV
}

func renderChime() []byte {
	n := int(chimeSampleRate * chimeDuration)
	samples := make([]int16, n)
	for i := range samples {
		t := float64(i) / chimeSampleRate
		samples[i] = int16(math.Round(envelope(t) * math.Sin(2*math.Pi*chimeFrequency*t) * math.MaxInt16))
	}

	dataSize := uint32(n * 2)
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	_ = binary.Write(&buf, binary.LittleEndian, uint32(chimeSampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(chimeSampleRate*2))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(2))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, dataSize)
	_ = binary.Write(&buf, binary.LittleEndian, samples)
	return buf.Bytes()
}

func envelope(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t < chimeAttack:
		return chimePeak * t / chimeAttack
	case t < chimeDuration:
		return chimePeak * (chimeDuration - t) / (chimeDuration - chimeAttack)
	default:
		return 0
	}
}
