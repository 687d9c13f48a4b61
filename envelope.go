package wavestack

import (
	"fmt"
	"math"
)

// Shape maps a sample offset within the moving part of an envelope, and the
// width of that part in samples, to a multiplier. 0 yields the start value and
// 1 the end value; shapes are not required to stay inside [0, 1].
type Shape func(offset, width int) float64

// LinearShape ramps evenly from 0 toward 1.
func LinearShape(offset, width int) float64 {
	return float64(offset) / float64(width)
}

// ExponentialShape returns a shape that raises the linear ramp to exponent.
func ExponentialShape(exponent float64) Shape {
	return func(offset, width int) float64 {
		return math.Pow(float64(offset)/float64(width), exponent)
	}
}

// PassThroughShape holds the end value for the whole envelope.
func PassThroughShape(int, int) float64 {
	return 1
}

// DefaultExponent is the exponent used by NewExponentialEnvelope callers that
// do not pick one.
const DefaultExponent = 2

// EnvelopeKind tags how an Envelope's samples were produced.
type EnvelopeKind int

const (
	// EnvelopeCustom uses a caller-supplied Shape.
	EnvelopeCustom EnvelopeKind = iota
	// EnvelopeLinear ramps linearly.
	EnvelopeLinear
	// EnvelopeExponential ramps along a power curve.
	EnvelopeExponential
	// EnvelopePassThrough is constant.
	EnvelopePassThrough
	// EnvelopeASR concatenates attack, sustain and release envelopes.
	EnvelopeASR
)

func (k EnvelopeKind) String() string {
	switch k {
	case EnvelopeCustom:
		return "custom"
	case EnvelopeLinear:
		return "linear"
	case EnvelopeExponential:
		return "exponential"
	case EnvelopePassThrough:
		return "pass-through"
	case EnvelopeASR:
		return "asr"
	default:
		return fmt.Sprintf("EnvelopeKind(%d)", int(k))
	}
}

// EnvelopeParams are the values an envelope moves between.
type EnvelopeParams struct {
	// StartValue is held until StartTime and is where the motion begins.
	StartValue float64
	// EndValue is approached at the end of the envelope.
	EndValue float64
	// StartTime delays the motion, in seconds.
	StartTime float64
}

// DefaultEnvelopeParams ramps from 0 to 1 with no delay.
func DefaultEnvelopeParams() EnvelopeParams {
	return EnvelopeParams{StartValue: 0, EndValue: 1}
}

// Envelope is a mono control signal rendered once at construction. Only
// channel 0 is allocated; mixing it into a wider buffer applies it to every
// channel.
type Envelope struct {
	base
	kind     EnvelopeKind
	params   EnvelopeParams
	exponent float64
}

// NewEnvelope renders an envelope of duration seconds following shape.
func NewEnvelope(provider Provider, duration float64, shape Shape, params EnvelopeParams, opts ...Option) (*Envelope, error) {
	if shape == nil {
		shape = PassThroughShape
	}

	return newShapedEnvelope(provider, duration, EnvelopeCustom, shape, params, opts)
}

// NewLinearEnvelope renders a linear ramp from params.StartValue to
// params.EndValue.
func NewLinearEnvelope(provider Provider, duration float64, params EnvelopeParams, opts ...Option) (*Envelope, error) {
	return newShapedEnvelope(provider, duration, EnvelopeLinear, LinearShape, params, opts)
}

// NewExponentialEnvelope renders a power-curve ramp. The exponent need not be
// an integer; an exponent of 1 matches NewLinearEnvelope.
func NewExponentialEnvelope(provider Provider, duration, exponent float64, params EnvelopeParams, opts ...Option) (*Envelope, error) {
	env, err := newShapedEnvelope(provider, duration, EnvelopeExponential, ExponentialShape(exponent), params, opts)
	if err != nil {
		return nil, err
	}

	env.exponent = exponent

	return env, nil
}

// NewPassThroughEnvelope renders a constant 1. Mixed with MixMult it leaves
// the target unchanged.
func NewPassThroughEnvelope(provider Provider, duration float64, opts ...Option) (*Envelope, error) {
	return newShapedEnvelope(provider, duration, EnvelopePassThrough, PassThroughShape, DefaultEnvelopeParams(), opts)
}

func newShapedEnvelope(provider Provider, duration float64, kind EnvelopeKind, shape Shape, params EnvelopeParams, opts []Option) (*Envelope, error) {
	o := resolveOptions(opts)

	b, err := newBase(provider, duration, 1, o.mixOp)
	if err != nil {
		return nil, err
	}

	env := &Envelope{base: b, kind: kind, params: params}
	if err := env.generate(shape); err != nil {
		return nil, err
	}

	return env, nil
}

// Kind reports how the envelope was built.
func (e *Envelope) Kind() EnvelopeKind { return e.kind }

// Params returns the start and end values and the start time.
func (e *Envelope) Params() EnvelopeParams { return e.params }

// StartValue returns the value the envelope begins at.
func (e *Envelope) StartValue() float64 { return e.params.StartValue }

// EndValue returns the value the envelope moves toward.
func (e *Envelope) EndValue() float64 { return e.params.EndValue }

// StartTime returns the delay before the envelope starts moving, in seconds.
func (e *Envelope) StartTime() float64 { return e.params.StartTime }

// Exponent returns the curve exponent of an exponential envelope, and 0 for
// every other kind.
func (e *Envelope) Exponent() float64 { return e.exponent }

func (e *Envelope) generate(shape Shape) error {
	start := e.SecondsToSampleOffset(e.params.StartTime)
	width := e.Len() - start

	if width < 0 {
		return fmt.Errorf("%w: start time %gs, duration %gs", ErrNegativeEnvelopeWidth, e.params.StartTime, e.duration)
	}

	data := e.raw.ChannelData(0)
	for i := 0; i < start; i++ {
		data[i] = float32(e.params.StartValue)
	}

	span := e.params.EndValue - e.params.StartValue
	for i := max(start, 0); i < len(data); i++ {
		data[i] = float32(e.params.StartValue + shape(i-start, width)*span)
	}

	return nil
}
