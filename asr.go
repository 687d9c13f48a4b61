package wavestack

import "fmt"

// NewASREnvelope joins attack, sustain and release end to end. The samples of
// each part are copied unchanged; the result lasts exactly as long as the three
// durations combined. It starts at attack's start value and ends at release's
// end value.
func NewASREnvelope(attack, sustain, release *Envelope, opts ...Option) (*Envelope, error) {
	if attack == nil || sustain == nil || release == nil {
		return nil, ErrNilBuffer
	}

	provider := attack.Provider()
	for _, part := range []*Envelope{sustain, release} {
		if part.SampleRate() != attack.SampleRate() {
			return nil, fmt.Errorf("%w: %d Hz and %d Hz", ErrSampleRateMismatch, attack.SampleRate(), part.SampleRate())
		}
	}

	o := resolveOptions(opts)
	duration := attack.Duration() + sustain.Duration() + release.Duration()

	b, err := newBase(provider, duration, 1, o.mixOp)
	if err != nil {
		return nil, err
	}

	env := &Envelope{
		base: b,
		kind: EnvelopeASR,
		params: EnvelopeParams{
			StartValue: attack.StartValue(),
			EndValue:   release.EndValue(),
		},
	}

	offset := 0
	for _, part := range []*Envelope{attack, sustain, release} {
		env.raw.CopyToChannel(part.Buffer().ChannelData(0), 0, offset)
		offset += part.Len()
	}

	return env, nil
}

// NewInterpolatedASREnvelope builds an ASR envelope lasting duration seconds
// whose sustain is a linear bridge from attack's end value to release's start
// value, filling whatever time attack and release leave over.
func NewInterpolatedASREnvelope(attack, release *Envelope, duration float64, opts ...Option) (*Envelope, error) {
	if attack == nil || release == nil {
		return nil, ErrNilBuffer
	}

	sustainDuration := duration - (attack.Duration() + release.Duration())
	if sustainDuration < 0 {
		return nil, fmt.Errorf("%w: total %gs, attack %gs, release %gs",
			ErrNegativeSustain, duration, attack.Duration(), release.Duration())
	}

	sustain, err := NewLinearEnvelope(attack.Provider(), sustainDuration, EnvelopeParams{
		StartValue: attack.EndValue(),
		EndValue:   release.StartValue(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build sustain: %w", err)
	}

	return NewASREnvelope(attack, sustain, release, opts...)
}
