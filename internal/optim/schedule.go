package optim

import "math"

// DecayedLR computes the step-decay schedule used by every group:
//
//	lr = base * 0.1^floor(epoch / decayEpochs)
//
// epoch is 0-based. The schedule is a pure function of the epoch index; the
// only state behind it is each group's stored base rate.
func DecayedLR(base float32, epoch, decayEpochs int) float32 {
	if decayEpochs <= 0 {
		return base
	}
	return base * float32(math.Pow(0.1, float64(epoch/decayEpochs)))
}
