package ldpc

// A tannerAdjacency is the flattened, CSR-style rendering of a Tanner
// graph: two ragged tables, each stored as an offsets/values pair rather
// than a slice-of-slices, so that repeated rate changes don't force a
// fresh allocation per row.
//
// varnOff/varnVals hold, for each check node i, the sorted variable-node
// indices incident to it. checknOff/checknVals hold the transpose: for
// each variable node j, the sorted check-node indices incident to it.
//
// edgeCheckSlot and edgeVarSlot cross-index the two tables for message
// passing: edgeCheckSlot[e], for e a position in varnVals, gives the
// position of that same edge in checknVals; edgeVarSlot is the inverse.
// Precomputing these once per adjacency avoids a search on every belief
// propagation iteration.
type tannerAdjacency struct {
	nChecks int
	nVars   int

	varnOff  []uint32
	varnVals []uint32

	checknOff  []uint32
	checknVals []uint32

	edgeCheckSlot []uint32
	edgeVarSlot   []uint32
}

// varn returns the variable nodes incident to check node i.
func (a *tannerAdjacency) varn(i int) []uint32 {
	return a.varnVals[a.varnOff[i]:a.varnOff[i+1]]
}

// checkn returns the check nodes incident to variable node j.
func (a *tannerAdjacency) checkn(j int) []uint32 {
	return a.checknVals[a.checknOff[j]:a.checknOff[j+1]]
}

// varnDeg returns the degree of check node i, i.e. len(a.varn(i)).
func (a *tannerAdjacency) varnDeg(i int) int {
	return int(a.varnOff[i+1] - a.varnOff[i])
}

// checknDeg returns the degree of variable node j, i.e. len(a.checkn(j)).
func (a *tannerAdjacency) checknDeg(j int) int {
	return int(a.checknOff[j+1] - a.checknOff[j])
}

// adjacencyFromRows builds a tannerAdjacency from the check-to-variable
// incidence given as a plain slice-of-slices, each inner slice already
// sorted and duplicate-free. This is the shared plumbing used both for
// the mother matrix and for the rate-adapted matrix computed in
// rateadapt.go.
func adjacencyFromRows(nVars int, rows [][]uint32) *tannerAdjacency {
	nChecks := len(rows)

	varnOff := make([]uint32, nChecks+1)
	for i, r := range rows {
		varnOff[i+1] = varnOff[i] + uint32(len(r))
	}
	varnVals := make([]uint32, varnOff[nChecks])
	for i, r := range rows {
		copy(varnVals[varnOff[i]:varnOff[i+1]], r)
	}

	checkDeg := make([]uint32, nVars)
	for _, r := range rows {
		for _, v := range r {
			checkDeg[v]++
		}
	}
	checknOff := make([]uint32, nVars+1)
	for j := 0; j < nVars; j++ {
		checknOff[j+1] = checknOff[j] + checkDeg[j]
	}
	checknVals := make([]uint32, checknOff[nVars])
	edgeCheckSlot := make([]uint32, varnOff[nChecks])
	edgeVarSlot := make([]uint32, checknOff[nVars])

	cursor := make([]uint32, nVars)
	copy(cursor, checknOff[:nVars])
	e := uint32(0)
	for i, r := range rows {
		for _, v := range r {
			slot := cursor[v]
			checknVals[slot] = uint32(i)
			edgeCheckSlot[e] = slot
			edgeVarSlot[slot] = e
			cursor[v]++
			e++
		}
	}

	return &tannerAdjacency{
		nChecks:       nChecks,
		nVars:         nVars,
		varnOff:       varnOff,
		varnVals:      varnVals,
		checknOff:     checknOff,
		checknVals:    checknVals,
		edgeCheckSlot: edgeCheckSlot,
		edgeVarSlot:   edgeVarSlot,
	}
}

// motherAdjacency builds the Tanner adjacency of the mother matrix
// directly from its CSC arrays: walking columns in order and appending
// the current column index to each stored row's incidence list yields
// inner sequences that are already sorted by column.
func motherAdjacency(m *BinarySparseMatrix) *tannerAdjacency {
	rows := make([][]uint32, m.NRows())
	for c := 0; c < m.NCols(); c++ {
		for _, r := range m.Column(c) {
			rows[r] = append(rows[r], uint32(c))
		}
	}
	return adjacencyFromRows(m.NCols(), rows)
}

// sortedSymmetricDifference returns the sorted elements present in
// exactly one of two sorted, duplicate-free slices: the support of the
// XOR of two rows in GF(2), since a variable incident to both combined
// check nodes cancels out of the combined row.
func sortedSymmetricDifference(a, b []uint32) []uint32 {
	out := make([]uint32, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
