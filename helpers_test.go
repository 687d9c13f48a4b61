package wavestack

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleTolerance = 1e-6

// samples copies one channel out of buf so later mutations cannot alter it.
func samples(t *testing.T, buf SampleBuffer, channel int) []float32 {
	t.Helper()

	data := buf.Buffer().ChannelData(channel)
	require.NotNil(t, data, "channel %d missing", channel)

	return append([]float32(nil), data...)
}

func requireSamplesInDelta(t *testing.T, want []float64, got []float32, delta float64) {
	t.Helper()

	require.Len(t, got, len(want))

	for i := range want {
		require.InDelta(t, want[i], float64(got[i]), delta, "sample %d", i)
	}
}

func sineSample(i, rate int, frequency, phase, amplitude float64) float32 {
	t := float64(i) * 2 * math.Pi / float64(rate)
	return float32(math.Sin(t*frequency+phase) * amplitude)
}

func mustSine(t *testing.T, p Provider, duration, frequency float64, opts ...Option) *Sine {
	t.Helper()

	s, err := NewSine(p, duration, frequency, opts...)
	require.NoError(t, err)

	return s
}

func mustStack(t *testing.T, p Provider, duration float64, opts ...Option) *WaveStack {
	t.Helper()

	s, err := NewWaveStack(p, duration, opts...)
	require.NoError(t, err)

	return s
}

func mustLinear(t *testing.T, p Provider, duration float64, params EnvelopeParams, opts ...Option) *Envelope {
	t.Helper()

	e, err := NewLinearEnvelope(p, duration, params, opts...)
	require.NoError(t, err)

	return e
}
