package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/bounce/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	sweep    float64 // Hz per second
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-frequency oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, 0, duration, wave, rate)
}

// NewSweep creates an oscillator whose frequency changes linearly by sweep Hz/s
func NewSweep(freq, sweep float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		sweep:    sweep,
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
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq + o.sweep*float64(o.position)/float64(o.rate)
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := max(e.totalSamples-e.releaseSamples, e.attackSamples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume applies a base-2 gain exponent, 0 is unity
func withVolume(s beep.Streamer, exponent float64) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: exponent}
}

func shaped(osc beep.Streamer, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(osc, duration, parameter.SoundAttack, parameter.SoundRelease, rate)
}

// CreateSpawnSound is a short rising sine blip with an octave overtone
func CreateSpawnSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.SpawnSoundDuration
	f := parameter.SpawnSoundFreq
	fund := shaped(NewSweep(f, f*4, d, WaveSine, rate), d, rate)
	over := shaped(NewSweep(2*f, f*8, d, WaveSine, rate), d, rate)
	return withVolume(beep.Mix(withVolume(fund, -0.5), withVolume(over, -1.7)), parameter.SpawnSoundVolume)
}

// CreatePopSound is a noise burst
func CreatePopSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.PopSoundDuration
	return withVolume(shaped(NewOscillator(0, d, WaveNoise, rate), d, rate), parameter.PopSoundVolume)
}

// CreateThudSound is a low square knock
func CreateThudSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.ThudSoundDuration
	return withVolume(shaped(NewOscillator(parameter.ThudSoundFreq, d, WaveSquare, rate), d, rate), parameter.ThudSoundVolume)
}

// CreateCapSound is a falling saw buzz
func CreateCapSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.CapSoundDuration
	f := parameter.CapSoundFreq
	return withVolume(shaped(NewSweep(f, -f/2, d, WaveSaw, rate), d, rate), parameter.CapSoundVolume)
}

// GetSoundEffect returns a fresh streamer for the sound type, nil if unknown
func GetSoundEffect(st SoundType, rate beep.SampleRate) beep.Streamer {
	switch st {
	case SoundSpawn:
		return CreateSpawnSound(rate)
	case SoundPop:
		return CreatePopSound(rate)
	case SoundThud:
		return CreateThudSound(rate)
	case SoundCap:
		return CreateCapSound(rate)
	default:
		return nil
	}
}
