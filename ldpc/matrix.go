// Package ldpc implements the sparse-matrix, Tanner-graph, rate-adaption,
// encoding and belief-propagation-decoding core of a binary LDPC code for
// Slepian-Wolf information reconciliation, as used during the
// classical post-processing phase of quantum key distribution.
package ldpc

// A BinarySparseMatrix is a binary M-by-N matrix stored in compressed sparse
// column (CSC) form: ColPtr has length N+1 with ColPtr[0] == 0 and
// ColPtr[N] == len(RowIdx); for each column c, RowIdx[ColPtr[c]:ColPtr[c+1]]
// holds the strictly increasing row indices at which that column has a 1.
// All stored entries are implicitly 1; everything else is implicitly 0.
//
// A BinarySparseMatrix is immutable after construction.
type BinarySparseMatrix struct {
	nRows  int
	nCols  int
	colPtr []uint32
	rowIdx []uint32
}

// NewBinarySparseMatrix validates colPtr/rowIdx against the compressed
// sparse column invariants (ordered, strictly increasing per-column row
// indices, well-formed column pointers) and returns the resulting matrix.
// nRows is inferred as one more than the maximum stored row index; colPtr
// and rowIdx are retained, not copied, so callers must not mutate them
// afterwards.
func NewBinarySparseMatrix(colPtr, rowIdx []uint32) (*BinarySparseMatrix, error) {
	const op = "ldpc.NewBinarySparseMatrix"
	if len(colPtr) == 0 {
		return nil, newError(ErrMalformedInput, op, "colptr must have at least one entry")
	}
	if colPtr[0] != 0 {
		return nil, newError(ErrMalformedInput, op, "colptr[0] must be 0, got %d", colPtr[0])
	}
	nCols := len(colPtr) - 1
	nnz := colPtr[nCols]
	if int(nnz) != len(rowIdx) {
		return nil, newError(ErrMalformedInput, op,
			"colptr[N]=%d does not match len(rowIdx)=%d", nnz, len(rowIdx))
	}

	var maxRow uint32
	hasRow := false
	for c := 0; c < nCols; c++ {
		if colPtr[c+1] < colPtr[c] || colPtr[c+1] > nnz {
			return nil, newError(ErrMalformedInput, op, "colptr is not non-decreasing at column %d", c)
		}
		var prev uint32
		first := true
		for j := colPtr[c]; j < colPtr[c+1]; j++ {
			r := rowIdx[j]
			if !first && r <= prev {
				return nil, newError(ErrMalformedInput, op,
					"row indices in column %d are not strictly increasing", c)
			}
			first = false
			prev = r
			if !hasRow || r > maxRow {
				maxRow = r
				hasRow = true
			}
		}
	}

	nRows := 0
	if hasRow {
		nRows = int(maxRow) + 1
	}

	return &BinarySparseMatrix{
		nRows:  nRows,
		nCols:  nCols,
		colPtr: colPtr,
		rowIdx: rowIdx,
	}, nil
}

// NRows returns the number of rows M of the matrix.
func (m *BinarySparseMatrix) NRows() int { return m.nRows }

// NCols returns the number of columns N of the matrix.
func (m *BinarySparseMatrix) NCols() int { return m.nCols }

// NNZ returns the number of stored (nonzero) entries.
func (m *BinarySparseMatrix) NNZ() int { return len(m.rowIdx) }

// ColPtr returns the underlying column-pointer array. The returned slice must
// not be mutated.
func (m *BinarySparseMatrix) ColPtr() []uint32 { return m.colPtr }

// RowIdx returns the underlying row-index array. The returned slice must not
// be mutated.
func (m *BinarySparseMatrix) RowIdx() []uint32 { return m.rowIdx }

// Column returns a view of the row indices stored in column c.
func (m *BinarySparseMatrix) Column(c int) []uint32 {
	return m.rowIdx[m.colPtr[c]:m.colPtr[c+1]]
}

// validateVecLen is a small helper shared by the encoder and decoder entry
// points to produce a consistently-shaped *Error on a length mismatch.
func validateVecLen(op, name string, got, want int) error {
	if got != want {
		return newError(ErrShapeMismatch, op, "%s has length %d, want %d", name, got, want)
	}
	return nil
}
