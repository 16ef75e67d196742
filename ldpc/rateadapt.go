package ldpc

// A RowPair names two mother-matrix row indices that may be combined
// (XORed together) during rate adaption.
type RowPair struct {
	A, B uint32
}

// A RateAdaption is an ordered sequence of mother-matrix row-index pairs.
// The sequence is interpreted prefix-wise: selecting k combinations uses
// exactly the first k pairs.
type RateAdaption []RowPair

// A ZeroRowPolicy controls what happens when a rate-adaption step combines
// two check nodes whose variable incidences are disjoint in a way that
// leaves the XORed row with some support, vs. the degenerate case where a
// combined row loses all support ("variable-node elimination"). Earlier
// reference implementations disagree on whether this is even legal, so
// this is exposed as an explicit configuration knob rather than a fixed
// choice.
type ZeroRowPolicy int

const (
	// KeepZeroRow retains an eliminated row as an all-zero (weak) row,
	// matching current upstream behavior. This is the default.
	KeepZeroRow ZeroRowPolicy = iota
	// DropZeroRow removes eliminated rows from the rate-adapted adjacency
	// and syndrome entirely, shrinking M_current further than M-k.
	DropZeroRow
)

// A motherEncoder computes the mother syndrome of an N-bit input. It is
// implemented either directly over a materialized BinarySparseMatrix, or,
// when the code was constructed from quasi-cyclic storage without
// expansion, over the compact QC exponent form, the only encoder usable
// in that case.
type motherEncoder interface {
	encodeMother(in []uint8) ([]uint8, error)
	nRows() int
	nCols() int
}

type matrixMother struct{ m *BinarySparseMatrix }

func (e matrixMother) nRows() int { return e.m.NRows() }
func (e matrixMother) nCols() int { return e.m.NCols() }
func (e matrixMother) encodeMother(in []uint8) ([]uint8, error) {
	const op = "ldpc.RateAdaptiveCode.EncodeMother"
	if err := validateVecLen(op, "input", len(in), e.m.NCols()); err != nil {
		return nil, err
	}
	out := make([]uint8, e.m.NRows())
	for c := 0; c < len(in); c++ {
		if in[c] == 0 {
			continue
		}
		for _, r := range e.m.Column(c) {
			out[r] ^= 1
		}
	}
	return out, nil
}

type qcMother struct{ q *QCMatrix }

func (e qcMother) nRows() int { return e.q.NRows() }
func (e qcMother) nCols() int { return e.q.NCols() }
func (e qcMother) encodeMother(in []uint8) ([]uint8, error) {
	return e.q.DirectEncodeQC(in)
}

// A RateAdaptiveCode aggregates a mother code's encoder and Tanner
// adjacency, an optional RateAdaption pair list, and the current rate state
// k (the number of row combinations currently applied). It is the central
// type exposed by package ldpc: callers build one from a
// BinarySparseMatrix (itself built from CSC arrays by
// NewBinarySparseMatrix) or a QCMatrix, then use it to encode and decode.
type RateAdaptiveCode struct {
	mother    motherEncoder
	motherAdj *tannerAdjacency
	pairs     RateAdaption
	policy    ZeroRowPolicy

	k   int
	cur *tannerAdjacency
}

// NewCode returns a RateAdaptiveCode for the mother matrix m, with no rate
// adaption available (K() == 0).
func NewCode(m *BinarySparseMatrix) *RateAdaptiveCode {
	c := &RateAdaptiveCode{
		mother:    matrixMother{m},
		motherAdj: motherAdjacency(m),
		policy:    KeepZeroRow,
	}
	c.cur = c.motherAdj
	return c
}

// NewRateAdaptiveCode returns a RateAdaptiveCode for the mother matrix m,
// with the given rate-adaption pair list and an initial number of row
// combinations, initialK. An initialK of 0 leaves the mother adjacency in
// effect.
func NewRateAdaptiveCode(m *BinarySparseMatrix, pairs RateAdaption, initialK int, policy ZeroRowPolicy) (*RateAdaptiveCode, error) {
	c := &RateAdaptiveCode{
		mother:    matrixMother{m},
		motherAdj: motherAdjacency(m),
		pairs:     pairs,
		policy:    policy,
	}
	if err := c.SetRate(initialK); err != nil {
		return nil, err
	}
	return c, nil
}

// NewQCCode returns a RateAdaptiveCode whose adjacency is derived from
// q's direct-QC rules without ever materializing the expanded binary
// matrix. Rate adaption, if any, is layered on top of that adjacency
// exactly as it would be for a materialized matrix.
func NewQCCode(q *QCMatrix, pairs RateAdaption, initialK int, policy ZeroRowPolicy) (*RateAdaptiveCode, error) {
	c := &RateAdaptiveCode{
		mother:    qcMother{q},
		motherAdj: qcAdjacency(q),
		pairs:     pairs,
		policy:    policy,
	}
	if err := c.SetRate(initialK); err != nil {
		return nil, err
	}
	return c, nil
}

// qcAdjacency builds pos_varn directly from a QCMatrix's exponent form,
// mirroring the derivation in DirectEncodeQC: a stored exponent v in
// protograph column j, protograph row i contributes variable index col to
// check index Z*i + ((col mod Z) - v mod Z), for each col in that QC block.
func qcAdjacency(q *QCMatrix) *tannerAdjacency {
	z := q.Z()
	nVars := q.NCols()
	rows := make([][]uint32, q.NRows())
	for j := 0; j < q.nProto; j++ {
		for idx := q.colPtr[j]; idx < q.colPtr[j+1]; idx++ {
			i := q.rowIdx[idx]
			v := q.shift[idx]
			for r := 0; r < z; r++ {
				col := uint32(z*j + r)
				row := z*int(i) + mod(r-int(v), z)
				rows[row] = append(rows[row], col)
			}
		}
	}
	for _, r := range rows {
		sortUint32(r)
	}
	return adjacencyFromRows(nVars, rows)
}

// NCols returns the column count N, shared by the mother and every
// rate-adapted state.
func (c *RateAdaptiveCode) NCols() int { return c.mother.nCols() }

// NRowsMother returns the mother row count M, ignoring rate adaption.
func (c *RateAdaptiveCode) NRowsMother() int { return c.mother.nRows() }

// NRowsCurrent returns M_current, the row count at the currently selected
// rate (M - k under KeepZeroRow; possibly smaller under DropZeroRow).
func (c *RateAdaptiveCode) NRowsCurrent() int { return c.cur.nChecks }

// K returns the current number of row combinations applied.
func (c *RateAdaptiveCode) K() int { return c.k }

// CheckNodeDegrees returns the degree of every check node in the current
// adjacency, i.e. the number of variables incident to each row.
func (c *RateAdaptiveCode) CheckNodeDegrees() []int {
	out := make([]int, c.cur.nChecks)
	for i := range out {
		out[i] = c.cur.varnDeg(i)
	}
	return out
}

// VariableNodeDegrees returns the degree of every variable node in the
// current adjacency, i.e. the number of check nodes incident to each
// column.
func (c *RateAdaptiveCode) VariableNodeDegrees() []int {
	out := make([]int, c.cur.nVars)
	for j := range out {
		out[j] = c.cur.checknDeg(j)
	}
	return out
}

// MaxK returns the maximum number of row combinations supported by the
// configured RateAdaption, i.e. len(pairs).
func (c *RateAdaptiveCode) MaxK() int { return len(c.pairs) }

// SetRate transitions the code to state k, recomputing the current
// Tanner adjacency from the mother adjacency and the rate-adaption pair
// list. Calling SetRate with the current k is a no-op. SetRate is a
// mutating operation and must be serialized by the caller.
func (c *RateAdaptiveCode) SetRate(k int) error {
	const op = "ldpc.RateAdaptiveCode.SetRate"
	if k < 0 || k > len(c.pairs) {
		return newError(ErrRateOutOfRange, op, "requested k=%d, but 0 <= k <= %d", k, len(c.pairs))
	}
	if c.cur != nil && k == c.k {
		return nil
	}
	c.cur = rateAdaptAdjacency(c.motherAdj, c.pairs, k, c.policy)
	c.k = k
	return nil
}

// setRateForSyndromeLen infers the rate from a syndrome length: the
// number of combinations is M - len(syndrome). Unlike DropZeroRow's
// further shrinkage, the inference is always computed
// against M - k, the nominal rate-adapted length; DropZeroRow codes cannot
// be rate-inferred from syndrome length alone and report an error.
func (c *RateAdaptiveCode) setRateForSyndromeLen(synLen int) error {
	const op = "ldpc.RateAdaptiveCode.DecodeInferRate"
	if c.policy == DropZeroRow {
		return newError(ErrRateOutOfRange, op, "rate cannot be inferred from syndrome length under DropZeroRow")
	}
	M := c.mother.nRows()
	k := M - synLen
	if k < 0 || k > len(c.pairs) {
		return newError(ErrRateOutOfRange, op,
			"syndrome length %d does not correspond to any supported rate (M=%d, K=%d)", synLen, M, len(c.pairs))
	}
	return c.SetRate(k)
}

// rateAdaptAdjacency computes the Tanner adjacency of the k-row-reduced
// matrix from the mother adjacency: the untouched mother rows in
// ascending index order, followed by the symmetric-difference combination
// of each pair's variable incidences (a variable incident to both
// combined rows cancels out of the result, per GF(2) addition).
func rateAdaptAdjacency(mother *tannerAdjacency, pairs RateAdaption, k int, policy ZeroRowPolicy) *tannerAdjacency {
	M := mother.nChecks
	if k == 0 {
		return mother
	}

	used := make(map[uint32]bool, 2*k)
	for t := 0; t < k; t++ {
		used[pairs[t].A] = true
		used[pairs[t].B] = true
	}

	rows := make([][]uint32, 0, M-k)
	for m := 0; m < M; m++ {
		if !used[uint32(m)] {
			rows = append(rows, mother.varn(m))
		}
	}
	for t := 0; t < k; t++ {
		combined := sortedSymmetricDifference(mother.varn(int(pairs[t].A)), mother.varn(int(pairs[t].B)))
		if len(combined) == 0 && policy == DropZeroRow {
			continue
		}
		rows = append(rows, combined)
	}

	return adjacencyFromRows(mother.nVars, rows)
}
