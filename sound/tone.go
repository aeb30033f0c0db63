// Package sound renders the terminal bell as a short synthesized tone and
// plays it through a command-line audio sink.
package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the PCM rate handed to the sink
const SampleRate = beep.SampleRate(44100)

// Bell tone shape
const (
	bellDuration        = 180 * time.Millisecond
	bellAttack          = 5 * time.Millisecond
	bellFundamentalFade = 170 * time.Millisecond
	bellOvertoneFade    = 90 * time.Millisecond
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// oscillator generates a raw periodic wave for a fixed number of samples
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates an oscillator streaming freq Hz for duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope shapes s with attack and release over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(total-att-rel, 0),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if releaseStart := e.attackSamples + e.sustainSamples; e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; math.Log2(0) is -Inf so zero is silence
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// BellTone is an A5 ding with an octave overtone at the given volume (0..1)
func BellTone(volume float64, rate beep.SampleRate) beep.Streamer {
	fund := NewEnvelope(NewOscillator(880.0, bellDuration, WaveSine, rate), bellDuration, bellAttack, bellFundamentalFade, rate)
	over := NewEnvelope(NewOscillator(1760.0, bellDuration, WaveSine, rate), bellDuration, bellAttack, bellOvertoneFade, rate)

	mixed := beep.Take(rate.N(bellDuration), beep.Mix(
		newVolume(fund, 0.7),
		newVolume(over, 0.3),
	))
	return newVolume(mixed, volume)
}

// Render drains s into interleaved stereo s16le PCM with soft limiting
func Render(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			out = appendFrame(out, frame)
		}
		if !ok {
			return out
		}
	}
}

func appendFrame(out []byte, frame [2]float64) []byte {
	for _, v := range frame {
		v = math.Tanh(v)
		i16 := int16(v * 32767)
		out = append(out, byte(i16), byte(uint16(i16)>>8))
	}
	return out
}
