package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep/v2"
)

// generate renders a finite streamer into a buffer.
func generate(format beep.Format, s beep.Streamer) *beep.Buffer {
	buf := beep.NewBuffer(format)
	buf.Append(s)
	return buf
}

// collisionTone is a short decaying noise burst over a low thump.
func collisionTone(sr beep.SampleRate) beep.Streamer {
	total := sr.N(400 * time.Millisecond)
	rng := rand.New(rand.NewSource(1))
	i := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if i >= total {
			return 0, false
		}
		n := 0
		for n < len(samples) && i < total {
			t := float64(i) / float64(sr)
			env := math.Exp(-t * 12)
			v := env * (0.6*(rng.Float64()*2-1) + 0.4*math.Sin(2*math.Pi*60*t))
			samples[n] = [2]float64{v, v}
			n++
			i++
		}
		return n, true
	})
}

// engineTone is one second of a low hum with a few harmonics, seamless when
// looped.
func engineTone(sr beep.SampleRate) beep.Streamer {
	total := sr.N(time.Second)
	i := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if i >= total {
			return 0, false
		}
		n := 0
		for n < len(samples) && i < total {
			t := float64(i) / float64(sr)
			v := 0.3*math.Sin(2*math.Pi*55*t) +
				0.15*math.Sin(2*math.Pi*110*t) +
				0.05*math.Sin(2*math.Pi*220*t)
			samples[n] = [2]float64{v, v}
			n++
			i++
		}
		return n, true
	})
}
