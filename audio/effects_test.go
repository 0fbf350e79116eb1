package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// TestOscillatorRange verifies every wave shape stays within [-1, 1]
func TestOscillatorRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	waves := []struct {
		name string
		wave WaveType
		freq float64
	}{
		{"sine", WaveSine, 440},
		{"square", WaveSquare, 220},
		{"saw", WaveSaw, 110},
		{"noise", WaveNoise, 0},
	}

	for _, w := range waves {
		t.Run(w.name, func(t *testing.T) {
			osc := NewOscillator(w.freq, 50*time.Millisecond, w.wave, rate)
			samples := make([][2]float64, 100)
			n, ok := osc.Stream(samples)
			if !ok || n != 100 {
				t.Fatalf("Expected 100 samples ok, got %d/%v", n, ok)
			}
			for i := 0; i < n; i++ {
				if samples[i][0] < -1 || samples[i][0] > 1 {
					t.Errorf("Sample %d out of range: %f", i, samples[i][0])
				}
				if samples[i][0] != samples[i][1] {
					t.Errorf("Expected mono sample %d, got %f/%f", i, samples[i][0], samples[i][1])
				}
			}
			if osc.Err() != nil {
				t.Errorf("Expected no error, got: %v", osc.Err())
			}
		})
	}
}

func TestOscillatorSquareValues(t *testing.T) {
	osc := NewOscillator(220, 50*time.Millisecond, WaveSquare, beep.SampleRate(44100))
	samples := make([][2]float64, 50)
	n, _ := osc.Stream(samples)
	for i := 0; i < n; i++ {
		if v := samples[i][0]; v != -1 && v != 1 {
			t.Errorf("Square wave sample %d should be -1.0 or 1.0, got %f", i, v)
		}
	}
}

// TestOscillatorDuration verifies the stream drains after its duration
func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(44100)
	want := rate.N(10 * time.Millisecond)
	osc := NewOscillator(440, 10*time.Millisecond, WaveSine, rate)

	samples := make([][2]float64, want*2)
	n, ok := osc.Stream(samples)
	if n != want || !ok {
		t.Errorf("Expected %d samples ok, got %d/%v", want, n, ok)
	}

	n, ok = osc.Stream(samples)
	if ok || n != 0 {
		t.Errorf("Expected drained stream (0, false), got (%d, %v)", n, ok)
	}
}

func TestSweepChangesPitch(t *testing.T) {
	rate := beep.SampleRate(8000)
	zeroCrossings := func(s beep.Streamer, n int) int {
		buf := make([][2]float64, n)
		s.Stream(buf)
		c := 0
		for i := 1; i < n; i++ {
			if (buf[i-1][0] < 0) != (buf[i][0] < 0) {
				c++
			}
		}
		return c
	}

	flat := zeroCrossings(NewOscillator(200, time.Second, WaveSine, rate), 8000)
	rising := zeroCrossings(NewSweep(200, 400, time.Second, WaveSine, rate), 8000)
	if rising <= flat {
		t.Errorf("Expected rising sweep to cross zero more often, got %d vs %d", rising, flat)
	}
}

func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 100 * time.Millisecond
	attack := 50 * time.Millisecond
	release := 20 * time.Millisecond

	env := NewEnvelope(NewOscillator(100, duration, WaveSquare, rate), duration, attack, release, rate)
	samples := make([][2]float64, rate.N(duration))
	n, ok := env.Stream(samples)
	if !ok || n != len(samples) {
		t.Fatalf("Expected %d samples, got %d/%v", len(samples), n, ok)
	}

	if samples[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", samples[0][0])
	}
	attackEnd := rate.N(attack) - 1
	if math.Abs(samples[1][0]) >= math.Abs(samples[attackEnd][0]) {
		t.Error("Expected attack to ramp up")
	}
	mid := rate.N(60 * time.Millisecond)
	if math.Abs(samples[mid][0]) != 1 {
		t.Errorf("Expected full sustain, got %f", samples[mid][0])
	}
	if math.Abs(samples[n-1][0]) >= math.Abs(samples[mid][0]) {
		t.Error("Expected release to fade out")
	}
}

func TestGetSoundEffect(t *testing.T) {
	rate := beep.SampleRate(44100)
	for st := SoundType(0); st < soundTypeCount; st++ {
		t.Run(st.String(), func(t *testing.T) {
			s := GetSoundEffect(st, rate)
			if s == nil {
				t.Fatal("Expected streamer")
			}

			total := 0
			peak := 0.0
			buf := make([][2]float64, 512)
			for {
				n, ok := s.Stream(buf)
				for i := 0; i < n; i++ {
					peak = max(peak, math.Abs(buf[i][0]))
				}
				total += n
				if !ok || total > rate.N(time.Second) {
					break
				}
			}

			if total == 0 || total > rate.N(time.Second) {
				t.Errorf("Expected a short finite effect, got %d samples", total)
			}
			if peak == 0 || peak > 1 {
				t.Errorf("Expected attenuated audible peak, got %f", peak)
			}
		})
	}

	if GetSoundEffect(soundTypeCount, rate) != nil {
		t.Error("Expected nil for unknown sound")
	}
}
