package wavestack

import "log/slog"

type options struct {
	channels  int
	mixOp     MixOp
	phase     float64
	amplitude float64
	logger    *slog.Logger
}

func defaultOptions() options {
	return options{
		channels:  1,
		mixOp:     MixAdd,
		amplitude: 1,
	}
}

// Option configures a buffer at construction. Options that do not apply to a
// given buffer kind are ignored.
type Option func(*options)

// WithChannels sets the channel count. Envelopes always allocate one channel.
func WithChannels(n int) Option {
	return func(o *options) { o.channels = n }
}

// WithMixOp sets the operation the buffer is composited with.
func WithMixOp(op MixOp) Option {
	return func(o *options) { o.mixOp = op }
}

// WithPhase sets an oscillator's phase offset in radians.
func WithPhase(radians float64) Option {
	return func(o *options) { o.phase = radians }
}

// WithAmplitude sets an oscillator's output scale. The default is 1.
func WithAmplitude(amplitude float64) Option {
	return func(o *options) { o.amplitude = amplitude }
}

// WithLogger attaches a logger to a WaveStack. Stacks log nothing without one.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func resolveOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
