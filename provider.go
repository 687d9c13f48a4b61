package wavestack

import (
	"fmt"

	"github.com/go-audio/audio"
)

// RawBuffer is multi-channel float sample storage of fixed length.
type RawBuffer interface {
	// NumChannels returns the number of channels.
	NumChannels() int
	// Len returns the number of samples in every channel.
	Len() int
	// SampleRate returns the rate the storage was allocated for.
	SampleRate() int
	// ChannelData returns the mutable samples of one channel.
	ChannelData(channel int) []float32
	// CopyToChannel copies src into channel starting at offset. Samples that
	// would land past the end of the channel are dropped.
	CopyToChannel(src []float32, channel, offset int)
}

// Provider allocates RawBuffers at a fixed sample rate.
type Provider interface {
	// SampleRate returns the rate every buffer is allocated at.
	SampleRate() int
	// Allocate returns zeroed storage with format.NumChannels channels of
	// samples length each.
	Allocate(format *audio.Format, samples int) (RawBuffer, error)
}

// MemoryProvider allocates PlanarBuffers on the heap.
type MemoryProvider struct {
	sampleRate int
}

// NewMemoryProvider creates a provider for the given sample rate.
func NewMemoryProvider(sampleRate int) *MemoryProvider {
	return &MemoryProvider{sampleRate: sampleRate}
}

// SampleRate returns the provider's sample rate.
func (p *MemoryProvider) SampleRate() int {
	if p == nil {
		return 0
	}

	return p.sampleRate
}

// Allocate returns a zeroed PlanarBuffer. The format's sample rate must match
// the provider's; a zero rate in format is taken to mean the provider's rate.
func (p *MemoryProvider) Allocate(format *audio.Format, samples int) (RawBuffer, error) {
	if p == nil {
		return nil, ErrNilProvider
	}

	if p.sampleRate < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, p.sampleRate)
	}

	if format == nil || format.NumChannels < 1 {
		channels := 0
		if format != nil {
			channels = format.NumChannels
		}

		return nil, fmt.Errorf("%w: %d", ErrInvalidChannelCount, channels)
	}

	if format.SampleRate != 0 && format.SampleRate != p.sampleRate {
		return nil, fmt.Errorf("%w: got %d Hz, provider runs at %d Hz", ErrSampleRateMismatch, format.SampleRate, p.sampleRate)
	}

	if samples < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, samples)
	}

	return NewPlanarBuffer(format.NumChannels, samples, p.sampleRate), nil
}

// PlanarBuffer stores each channel in its own slice.
type PlanarBuffer struct {
	channels   [][]float32
	length     int
	sampleRate int
}

// NewPlanarBuffer returns zeroed storage for the given layout.
func NewPlanarBuffer(numChannels, length, sampleRate int) *PlanarBuffer {
	buf := &PlanarBuffer{
		channels:   make([][]float32, numChannels),
		length:     length,
		sampleRate: sampleRate,
	}
	for c := range buf.channels {
		buf.channels[c] = make([]float32, length)
	}

	return buf
}

// NumChannels returns the number of channels.
func (b *PlanarBuffer) NumChannels() int {
	if b == nil {
		return 0
	}

	return len(b.channels)
}

// Len returns the per-channel sample count.
func (b *PlanarBuffer) Len() int {
	if b == nil {
		return 0
	}

	return b.length
}

// SampleRate returns the rate the buffer was allocated for.
func (b *PlanarBuffer) SampleRate() int {
	if b == nil {
		return 0
	}

	return b.sampleRate
}

// ChannelData returns the samples of channel, or nil if it does not exist.
func (b *PlanarBuffer) ChannelData(channel int) []float32 {
	if b == nil || channel < 0 || channel >= len(b.channels) {
		return nil
	}

	return b.channels[channel]
}

// CopyToChannel copies src into channel at offset, truncating at the end of
// the channel.
func (b *PlanarBuffer) CopyToChannel(src []float32, channel, offset int) {
	dst := b.ChannelData(channel)
	if dst == nil || offset < 0 || offset >= len(dst) {
		return
	}

	copy(dst[offset:], src)
}

// Format describes the buffer layout as a go-audio format.
func (b *PlanarBuffer) Format() *audio.Format {
	return &audio.Format{NumChannels: b.NumChannels(), SampleRate: b.SampleRate()}
}

// PCMBuffer interleaves raw into a go-audio float buffer, ready to hand to a
// WAV encoder or an output device.
func PCMBuffer(raw RawBuffer) *audio.Float32Buffer {
	if raw == nil {
		return nil
	}

	numChans := raw.NumChannels()
	frames := raw.Len()
	buf := &audio.Float32Buffer{
		Format: &audio.Format{NumChannels: numChans, SampleRate: raw.SampleRate()},
		Data:   make([]float32, frames*numChans),
		// float32 storage carries 32-bit precision.
		SourceBitDepth: 32,
	}

	for c := range numChans {
		data := raw.ChannelData(c)
		for i := range frames {
			buf.Data[i*numChans+c] = data[i]
		}
	}

	return buf
}

// deinterleave copies pcm frame by frame into raw, one sample per channel.
func deinterleave(pcm *audio.Float32Buffer, raw RawBuffer) {
	numChans := pcm.Format.NumChannels
	frames := min(pcm.NumFrames(), raw.Len())

	for c := range min(numChans, raw.NumChannels()) {
		data := raw.ChannelData(c)
		for i := range frames {
			data[i] = pcm.Data[i*numChans+c]
		}
	}
}
