package wavestack

import (
	"fmt"
	"math"

	"github.com/go-audio/audio"
)

// SampleBuffer is a fixed-length block of multi-channel samples that can be
// composited into another buffer.
type SampleBuffer interface {
	// Duration returns the length in seconds the buffer was created with.
	Duration() float64
	// Len returns the number of samples per channel.
	Len() int
	// ChannelCount returns the number of channels.
	ChannelCount() int
	// SampleRate returns the provider's sample rate.
	SampleRate() int
	// MixOp returns the operation used when this buffer is mixed into another.
	MixOp() MixOp
	// Buffer returns the sample storage, up to date with the buffer's state.
	Buffer() RawBuffer
	// MixInto composites the buffer into dst. WaveStack regeneration calls it
	// for every unmuted entry, with dst standing for the stack's storage.
	MixInto(dst SampleBuffer)
}

// base carries the state shared by every SampleBuffer implementation.
type base struct {
	provider Provider
	duration float64
	mixOp    MixOp
	combine  func(src, dst float32) float32
	raw      RawBuffer
}

func newBase(provider Provider, duration float64, channels int, op MixOp) (base, error) {
	if provider == nil {
		return base{}, ErrNilProvider
	}

	if duration < 0 || math.IsNaN(duration) {
		return base{}, fmt.Errorf("%w: %g", ErrNegativeDuration, duration)
	}

	if n := math.Floor(float64(provider.SampleRate()) * duration); n > maxSamples {
		return base{}, fmt.Errorf("%w: %g seconds at %d Hz", ErrInvalidLength, duration, provider.SampleRate())
	}

	return newBaseLength(provider, duration, secondsToSampleOffset(duration, provider.SampleRate()), channels, op)
}

func newBaseLength(provider Provider, duration float64, length, channels int, op MixOp) (base, error) {
	if provider == nil {
		return base{}, ErrNilProvider
	}

	if provider.SampleRate() < 1 {
		return base{}, fmt.Errorf("%w: %d", ErrInvalidSampleRate, provider.SampleRate())
	}

	if channels < 1 {
		return base{}, fmt.Errorf("%w: %d", ErrInvalidChannelCount, channels)
	}

	raw, err := provider.Allocate(&audio.Format{NumChannels: channels, SampleRate: provider.SampleRate()}, length)
	if err != nil {
		return base{}, fmt.Errorf("failed to allocate %d x %d samples: %w", channels, length, err)
	}

	return base{
		provider: provider,
		duration: duration,
		mixOp:    op,
		combine:  op.combiner(),
		raw:      raw,
	}, nil
}

// Provider returns the provider the buffer was allocated from.
func (b *base) Provider() Provider { return b.provider }

// Duration returns the length in seconds.
func (b *base) Duration() float64 { return b.duration }

// Len returns the number of samples per channel.
func (b *base) Len() int { return b.raw.Len() }

// ChannelCount returns the number of channels.
func (b *base) ChannelCount() int { return b.raw.NumChannels() }

// SampleRate returns the provider's sample rate.
func (b *base) SampleRate() int { return b.provider.SampleRate() }

// MixOp returns the operation used when mixing this buffer into another.
func (b *base) MixOp() MixOp { return b.mixOp }

// Buffer returns the sample storage.
func (b *base) Buffer() RawBuffer { return b.raw }

// SecondsToSampleOffset converts seconds to a sample index, truncating to the
// sample at or before the instant.
func (b *base) SecondsToSampleOffset(seconds float64) int {
	return secondsToSampleOffset(seconds, b.SampleRate())
}

// SampleOffsetToSeconds converts a sample index to whole seconds, rounding
// down. It is not an exact inverse of SecondsToSampleOffset.
func (b *base) SampleOffsetToSeconds(sample int) int {
	return sampleOffsetToSeconds(sample, b.SampleRate())
}

// MixInto composites the buffer into dst with its MixOp. See the
// package-level MixInto.
func (b *base) MixInto(dst SampleBuffer) {
	if isNil(dst) {
		return
	}

	mixRaw(b.raw, dst.Buffer(), b.combine)
}

func (b *base) clear() {
	for c := range b.raw.NumChannels() {
		clear(b.raw.ChannelData(c))
	}
}
