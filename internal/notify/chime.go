package notify

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"
)

const SampleRate = 44100

// Tone is one step of the completion cue.
type Tone struct {
	Frequency float64
	Duration  time.Duration
}

// ChimeSequence is the five-step bell alternating 800 Hz and 1000 Hz.
var ChimeSequence = []Tone{
	{Frequency: 800, Duration: 200 * time.Millisecond},
	{Frequency: 1000, Duration: 200 * time.Millisecond},
	{Frequency: 800, Duration: 200 * time.Millisecond},
	{Frequency: 1000, Duration: 200 * time.Millisecond},
	{Frequency: 800, Duration: 200 * time.Millisecond},
}

const (
	peakGain    = 0.3
	floorGain   = 0.01
	attackTime  = 50 * time.Millisecond
	releaseTime = 50 * time.Millisecond
)

// Render synthesizes tones back to back as 16-bit mono PCM. Each tone is a
// sine with a linear attack to peakGain and an exponential decay to floorGain
// that ends releaseTime before the tone does.
func Render(tones []Tone, sampleRate int) []int16 {
	total := 0
	for _, tone := range tones {
		total += samplesFor(tone.Duration, sampleRate)
	}

	samples := make([]int16, 0, total)
	for _, tone := range tones {
		n := samplesFor(tone.Duration, sampleRate)
		attack := samplesFor(attackTime, sampleRate)
		decayEnd := n - samplesFor(releaseTime, sampleRate)
		for i := 0; i < n; i++ {
			gain := envelope(i, attack, decayEnd)
			phase := 2 * math.Pi * tone.Frequency * float64(i) / float64(sampleRate)
			samples = append(samples, int16(math.Sin(phase)*gain*math.MaxInt16))
		}
	}
	return samples
}

func envelope(i, attack, decayEnd int) float64 {
	switch {
	case i < attack:
		return peakGain * float64(i) / float64(attack)
	case i < decayEnd && decayEnd > attack:
		progress := float64(i-attack) / float64(decayEnd-attack)
		return peakGain * math.Pow(floorGain/peakGain, progress)
	default:
		return floorGain
	}
}

func samplesFor(d time.Duration, sampleRate int) int {
	return int(d.Seconds() * float64(sampleRate))
}

// EncodeWAV wraps 16-bit mono PCM samples in a RIFF/WAVE container.
func EncodeWAV(samples []int16, sampleRate int) []byte {
	const (
		channels      = 1
		bitsPerSample = 16
	)
	dataSize := len(samples) * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	buf := bytes.NewBuffer(make([]byte, 0, 44+dataSize))
	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate*blockAlign))
	_ = binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(dataSize))
	_ = binary.Write(buf, binary.LittleEndian, samples)
	return buf.Bytes()
}

// Chime returns the completion cue as a WAV file.
func Chime() []byte {
	return EncodeWAV(Render(ChimeSequence, SampleRate), SampleRate)
}
