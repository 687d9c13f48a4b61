package wavestack

import (
	"fmt"

	"github.com/go-audio/audio"
)

// Clip holds PCM that was produced elsewhere, such as the output of a WAV
// decoder, so it can be stacked with generated buffers.
type Clip struct {
	base
}

// NewClip copies pcm into storage from provider. The channel count and length
// follow pcm; its sample rate must equal the provider's. The WithChannels
// option is ignored.
func NewClip(provider Provider, pcm *audio.Float32Buffer, opts ...Option) (*Clip, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}

	if pcm == nil || pcm.Format == nil {
		return nil, ErrNilBuffer
	}

	if pcm.Format.SampleRate != provider.SampleRate() {
		return nil, fmt.Errorf("%w: clip at %d Hz, provider at %d Hz", ErrSampleRateMismatch, pcm.Format.SampleRate, provider.SampleRate())
	}

	o := resolveOptions(opts)
	frames := pcm.NumFrames()
	duration := float64(frames) / float64(provider.SampleRate())

	b, err := newBaseLength(provider, duration, frames, pcm.Format.NumChannels, o.mixOp)
	if err != nil {
		return nil, err
	}

	c := &Clip{base: b}
	deinterleave(pcm, c.raw)

	return c, nil
}
