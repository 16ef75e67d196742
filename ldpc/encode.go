package ldpc

// EncodeMother computes the mother syndrome H*x of in, an N-bit input:
// for each column c, for each stored row r in that column, flip output
// bit r iff in[c] == 1. Input length must equal NCols(); otherwise this
// returns an *Error of kind ErrShapeMismatch.
func (c *RateAdaptiveCode) EncodeMother(in []uint8) ([]uint8, error) {
	return c.mother.encodeMother(in)
}

// EncodeAtCurrentRate computes the syndrome directly from the current
// Tanner adjacency: for each current-row i, output bit i is the XOR of
// in[v] over the variable nodes incident to check i. This is equivalent
// to, but usually faster than, computing the mother syndrome and then
// applying the rate-adaption permute-and-combine.
func (c *RateAdaptiveCode) EncodeAtCurrentRate(in []uint8) ([]uint8, error) {
	const op = "ldpc.RateAdaptiveCode.EncodeAtCurrentRate"
	if err := validateVecLen(op, "input", len(in), c.NCols()); err != nil {
		return nil, err
	}
	out := make([]uint8, c.cur.nChecks)
	for i := 0; i < c.cur.nChecks; i++ {
		var bit uint8
		for _, v := range c.cur.varn(i) {
			bit ^= in[v]
		}
		out[i] = bit
	}
	return out, nil
}

// EncodeWithRate computes the rate-adapted syndrome of in at a requested
// output length outLen, without mutating the code's internal rate state
// (unlike DecodeInferRate, which is documented as mutating): it encodes
// the mother syndrome, then applies the permute-and-combine layout for
// k = M - outLen combinations directly, by index, rather than through
// SetRate.
func (c *RateAdaptiveCode) EncodeWithRate(in []uint8, outLen int) ([]uint8, error) {
	const op = "ldpc.RateAdaptiveCode.EncodeWithRate"
	M := c.mother.nRows()
	K := len(c.pairs)
	if outLen > M || outLen < M-K {
		return nil, newError(ErrRateOutOfRange, op,
			"requested syndrome length %d outside supported range [%d,%d]", outLen, M-K, M)
	}

	s, err := c.mother.encodeMother(in)
	if err != nil {
		return nil, err
	}
	k := M - outLen
	return rateAdaptCombineSyndrome(s, c.motherAdj, c.pairs, k, c.policy), nil
}

// rateAdaptCombineSyndrome combines a full M-bit mother syndrome s into
// an (M-k)-bit rate-adapted syndrome: the entries of s at indices not in
// the first k pairs, in ascending order, followed by the XOR of each
// pair, in pair order. Under DropZeroRow, a combined pair whose mother
// rows have identical variable support (and so XOR to an empty row) is
// omitted, mirroring rateAdaptAdjacency so that EncodeWithRate agrees
// bit-for-bit with EncodeAtCurrentRate under the matching SetRate(k).
func rateAdaptCombineSyndrome(s []uint8, mother *tannerAdjacency, pairs RateAdaption, k int, policy ZeroRowPolicy) []uint8 {
	M := len(s)
	if k == 0 {
		out := make([]uint8, M)
		copy(out, s)
		return out
	}

	used := make(map[uint32]bool, 2*k)
	for t := 0; t < k; t++ {
		used[pairs[t].A] = true
		used[pairs[t].B] = true
	}

	out := make([]uint8, 0, M-k)
	for m := 0; m < M; m++ {
		if !used[uint32(m)] {
			out = append(out, s[m])
		}
	}
	for t := 0; t < k; t++ {
		if policy == DropZeroRow && len(sortedSymmetricDifference(mother.varn(int(pairs[t].A)), mother.varn(int(pairs[t].B)))) == 0 {
			continue
		}
		out = append(out, s[pairs[t].A]^s[pairs[t].B])
	}
	return out
}
