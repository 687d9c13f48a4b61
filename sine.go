package wavestack

import "math"

// Oscillator holds the parameters of a periodic generator.
type Oscillator struct {
	// Frequency in hertz.
	Frequency float64
	// Phase offset in radians.
	Phase float64
	// Amplitude scales the unit waveform.
	Amplitude float64
}

// Sine is a sine tone rendered once at construction. Every channel carries the
// same signal.
type Sine struct {
	base
	osc Oscillator
}

// NewSine renders duration seconds of a sine at frequency hertz. Phase,
// amplitude, channel count and mix operation come from opts.
func NewSine(provider Provider, duration, frequency float64, opts ...Option) (*Sine, error) {
	o := resolveOptions(opts)

	b, err := newBase(provider, duration, o.channels, o.mixOp)
	if err != nil {
		return nil, err
	}

	s := &Sine{
		base: b,
		osc: Oscillator{
			Frequency: frequency,
			Phase:     o.phase,
			Amplitude: o.amplitude,
		},
	}
	s.generate()

	return s, nil
}

// Oscillator returns the tone's parameters.
func (s *Sine) Oscillator() Oscillator { return s.osc }

// Frequency returns the tone frequency in hertz.
func (s *Sine) Frequency() float64 { return s.osc.Frequency }

// Phase returns the phase offset in radians.
func (s *Sine) Phase() float64 { return s.osc.Phase }

// Amplitude returns the output scale.
func (s *Sine) Amplitude() float64 { return s.osc.Amplitude }

func (s *Sine) generate() {
	rate := float64(s.SampleRate())

	for c := range s.raw.NumChannels() {
		data := s.raw.ChannelData(c)
		for i := range data {
			t := float64(i) * 2 * math.Pi / rate
			data[i] = float32(math.Sin(t*s.osc.Frequency+s.osc.Phase) * s.osc.Amplitude)
		}
	}
}
