package wavestack

import (
	"errors"
	"math"
)

var (
	// ErrNilProvider indicates a buffer was constructed without a Provider.
	ErrNilProvider = errors.New("nil buffer provider")
	// ErrNilBuffer indicates a nil SampleBuffer was passed where one is required.
	ErrNilBuffer = errors.New("nil sample buffer")
	// ErrInvalidChannelCount indicates a channel count below one.
	ErrInvalidChannelCount = errors.New("invalid channel count")
	// ErrInvalidSampleRate indicates a sample rate below one.
	ErrInvalidSampleRate = errors.New("invalid sample rate")
	// ErrNegativeDuration indicates a buffer duration below zero.
	ErrNegativeDuration = errors.New("negative duration")
	// ErrInvalidLength indicates a per-channel sample count that is negative or
	// too large to address.
	ErrInvalidLength = errors.New("invalid sample length")
	// ErrNegativeEnvelopeWidth indicates an envelope whose start time lies
	// beyond its duration.
	ErrNegativeEnvelopeWidth = errors.New("envelope start time exceeds duration")
	// ErrNegativeSustain indicates an interpolated ASR envelope whose attack and
	// release together are longer than the requested total.
	ErrNegativeSustain = errors.New("negative sustain duration")
	// ErrSampleRateMismatch indicates PCM data recorded at a rate other than the
	// provider's. Resampling is not supported.
	ErrSampleRateMismatch = errors.New("sample rate mismatch")
	// ErrEntryNotFound indicates a stack lookup for a buffer that is not present.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrIndexOutOfRange indicates a stack index outside the entry list.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrCycle indicates a stack that would contain itself, either at insertion
	// or when a regeneration reads the stack back.
	ErrCycle = errors.New("wave stack cycle")
)

// maxSamples bounds the per-channel length a duration may convert to.
const maxSamples = math.MaxInt32

func secondsToSampleOffset(seconds float64, sampleRate int) int {
	return int(math.Floor(float64(sampleRate) * seconds))
}

func sampleOffsetToSeconds(sample, sampleRate int) int {
	if sampleRate == 0 {
		return 0
	}

	return int(math.Floor(float64(sample) / float64(sampleRate)))
}
