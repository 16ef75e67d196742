package ldpc

import (
	"bytes"
	"math"
)

// DecodeAtCurrentRate runs the flooding-schedule sum-product belief
// propagation decoder against the code's current rate state. llrs must
// have length NCols(); syndrome must have length NRowsCurrent(). It
// returns a hard decision xHat of length NCols() and whether encoding
// xHat at the current rate reproduces syndrome exactly (the decoder's
// convergence indicator). Non-convergence and divergence are reported
// via the boolean return, never as an error: these are ordinary
// outcomes, not exceptions. xHat still holds the last hard decision even
// when ok is false.
func (c *RateAdaptiveCode) DecodeAtCurrentRate(llrs []float64, syndrome []uint8, maxIter int, vsat float64) (xHat []uint8, ok bool, err error) {
	const op = "ldpc.RateAdaptiveCode.DecodeAtCurrentRate"
	if err := validateVecLen(op, "llrs", len(llrs), c.NCols()); err != nil {
		return nil, false, err
	}
	if err := validateVecLen(op, "syndrome", len(syndrome), c.NRowsCurrent()); err != nil {
		return nil, false, err
	}

	adj := c.cur
	nEdges := len(adj.varnVals)
	msgV := make([]float64, nEdges)
	msgC := make([]float64, nEdges)

	for e := 0; e < nEdges; e++ {
		msgV[e] = llrs[adj.varnVals[e]]
	}

	xHat = make([]uint8, adj.nVars)
	tanhs := make([]float64, 0, 16)

	for iter := 0; iter < maxIter; iter++ {
		checkNodeUpdate(adj, msgV, msgC, syndrome, &tanhs)
		saturate(msgC, vsat)

		varNodeUpdate(adj, msgV, msgC, llrs)
		saturate(msgV, vsat)

		hardDecision(xHat, adj, msgC, llrs)

		sHat, encErr := c.EncodeAtCurrentRate(xHat)
		if encErr != nil {
			return xHat, false, encErr
		}
		if bytes.Equal(sHat, syndrome) {
			return xHat, true, nil
		}

		if anyNaN(msgV) || anyNaN(msgC) {
			return xHat, false, nil
		}
	}

	return xHat, false, nil
}

// DecodeInferRate decodes a syndrome whose length may not match the
// code's current row count: if it doesn't, the code is first transitioned
// via SetRate(M - len(syndrome)), then decoded normally. This is a
// mutating operation on the code object and must be serialized by the
// caller, unlike DecodeAtCurrentRate.
func (c *RateAdaptiveCode) DecodeInferRate(llrs []float64, syndrome []uint8, maxIter int, vsat float64) (xHat []uint8, ok bool, err error) {
	if len(syndrome) != c.NRowsCurrent() {
		if err := c.setRateForSyndromeLen(len(syndrome)); err != nil {
			return nil, false, err
		}
	}
	return c.DecodeAtCurrentRate(llrs, syndrome, maxIter, vsat)
}

// checkNodeUpdate performs one sum-product check-to-variable half-update.
// tanhs is a caller-owned scratch buffer, reused across checks to avoid a
// per-check allocation.
func checkNodeUpdate(adj *tannerAdjacency, msgV, msgC []float64, syndrome []uint8, tanhs *[]float64) {
	for i := 0; i < adj.nChecks; i++ {
		lo, hi := adj.varnOff[i], adj.varnOff[i+1]
		deg := int(hi - lo)
		*tanhs = (*tanhs)[:0]
		sign := 1.0 - 2.0*float64(syndrome[i])
		prod := sign
		for e := lo; e < hi; e++ {
			t := math.Tanh(0.5 * msgV[e])
			*tanhs = append(*tanhs, t)
			prod *= t
		}
		for k := 0; k < deg; k++ {
			t := (*tanhs)[k]
			var msgPart float64
			if t != 0 {
				msgPart = prod / t
			} else {
				// Deviates from a transcription bug in the source, which
				// repeated this edge's own (zero) message in the
				// leave-one-out product instead of the other edges'
				// messages. This computes the correct leave-one-out
				// product over the other incoming messages.
				msgPart = sign
				for kp := 0; kp < deg; kp++ {
					if kp != k {
						msgPart *= (*tanhs)[kp]
					}
				}
			}
			mOut := math.Log((1 + msgPart) / (1 - msgPart))
			slot := adj.edgeCheckSlot[lo+uint32(k)]
			msgC[slot] = mOut
		}
	}
}

// varNodeUpdate performs one variable-to-check half-update.
func varNodeUpdate(adj *tannerAdjacency, msgV, msgC []float64, llrs []float64) {
	for j := 0; j < adj.nVars; j++ {
		lo, hi := adj.checknOff[j], adj.checknOff[j+1]
		sum := llrs[j]
		for slot := lo; slot < hi; slot++ {
			sum += msgC[slot]
		}
		for slot := lo; slot < hi; slot++ {
			msg := sum - msgC[slot]
			e := adj.edgeVarSlot[slot]
			msgV[e] = msg
		}
	}
}

// hardDecision computes x_hat_j = 1 iff llrs[j] + sum_k msgC[j][k] < 0.
func hardDecision(xHat []uint8, adj *tannerAdjacency, msgC []float64, llrs []float64) {
	for j := 0; j < adj.nVars; j++ {
		lo, hi := adj.checknOff[j], adj.checknOff[j+1]
		sum := llrs[j]
		for slot := lo; slot < hi; slot++ {
			sum += msgC[slot]
		}
		if sum < 0 {
			xHat[j] = 1
		} else {
			xHat[j] = 0
		}
	}
}

// saturate clamps every message in mv to [-vsat,+vsat] in place.
func saturate(mv []float64, vsat float64) {
	for i, v := range mv {
		if v > vsat {
			mv[i] = vsat
		} else if v < -vsat {
			mv[i] = -vsat
		}
	}
}

func anyNaN(mv []float64) bool {
	for _, v := range mv {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
