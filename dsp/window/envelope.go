package window

// Minimum grain length that receives a taper. Shorter grains cannot hold
// a rise, a plateau, and a fall, so they pass through at unity gain.
const minTaperLength = 4

// GrainEnvelope returns the symmetric gain envelope applied to a grain of
// the given length before overlap-add.
//
// For length >= 4 the envelope is a symmetric Hann taper: both edges are
// exactly 0 and the midpoint reaches 1 (for odd lengths the centre sample
// is exactly 1). For shorter grains a unity-gain envelope is returned.
// Non-positive lengths yield nil.
func GrainEnvelope(length int) []float64 {
	if length <= 0 {
		return nil
	}

	if length < minTaperLength {
		out := make([]float64, length)
		for i := range out {
			out[i] = 1
		}

		return out
	}

	return Generate(TypeHann, length)
}
