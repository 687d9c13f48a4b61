package wavestack

import "fmt"

// MixOp selects the elementwise operation a buffer is composited with.
type MixOp int

const (
	// MixAdd sums source samples into the target.
	MixAdd MixOp = iota
	// MixMult multiplies the target by the source samples.
	MixMult
)

func (op MixOp) String() string {
	switch op {
	case MixAdd:
		return "add"
	case MixMult:
		return "mult"
	default:
		return fmt.Sprintf("MixOp(%d)", int(op))
	}
}

// combiner returns the binary function for op. Unknown values fall back to
// addition.
func (op MixOp) combiner() func(src, dst float32) float32 {
	if op == MixMult {
		return func(src, dst float32) float32 { return src * dst }
	}

	return func(src, dst float32) float32 { return src + dst }
}

// MixInto composites src into dst with src's mix operation by calling
// src.MixInto, so a buffer type can supply its own mixing. For the buffers of
// this package every channel of dst is written; a source with fewer channels
// feeds its channel 0 to the remaining ones. Only the first
// min(src.Len(), dst.Len()) samples are touched. src is never modified.
func MixInto(src, dst SampleBuffer) {
	if isNil(src) || isNil(dst) {
		return
	}

	src.MixInto(dst)
}

// Mix composites src into dst with a caller-supplied operation, ignoring src's
// MixOp. op receives the source sample first and the target sample second,
// and its result replaces the target sample. Channel broadcast and truncation
// follow MixInto. A nil op does nothing.
func Mix(src, dst SampleBuffer, op func(src, dst float32) float32) {
	if isNil(src) || isNil(dst) || op == nil {
		return
	}

	mixRaw(src.Buffer(), dst.Buffer(), op)
}

func mixRaw(src, dst RawBuffer, combine func(src, dst float32) float32) {
	if src == nil || dst == nil || src.NumChannels() == 0 {
		return
	}

	count := min(src.Len(), dst.Len())
	for c := range dst.NumChannels() {
		from := 0
		if c < src.NumChannels() {
			from = c
		}

		them := src.ChannelData(from)
		us := dst.ChannelData(c)

		for i := range count {
			us[i] = combine(them[i], us[i])
		}
	}
}
