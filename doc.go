// Package wavestack generates and composites audio sample buffers in memory.
//
// Leaf generators (Sine, Envelope, Clip) populate their sample storage once at
// construction. A WaveStack holds an ordered list of such buffers, or of other
// stacks, and flattens them into its own storage lazily: any structural change
// marks the stack dirty and the next Buffer call remixes every unmuted entry.
//
// Sample storage is obtained from a Provider, which fixes the sample rate. The
// MemoryProvider shipped with the package keeps planar float32 channels and
// converts to interleaved go-audio buffers via PCMBuffer:
//
//	p := wavestack.NewMemoryProvider(48000)
//	tone, _ := wavestack.NewSine(p, 1, 440)
//	env, _ := wavestack.NewLinearEnvelope(p, 1, wavestack.DefaultEnvelopeParams(),
//		wavestack.WithMixOp(wavestack.MixMult))
//	stack, _ := wavestack.NewWaveStack(p, 1)
//	stack.Add(tone)
//	stack.Add(env)
//	pcm := wavestack.PCMBuffer(stack.Buffer())
//
// Nothing in the package is safe for concurrent use. Callers that share a
// WaveStack between goroutines must serialize access to it.
package wavestack
