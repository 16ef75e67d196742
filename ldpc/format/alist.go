package format

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/qkdrecon/ldpc4qkd/ldpc"
	"golang.org/x/xerrors"
)

// ReadAlist parses the plain-text alist format used throughout the LDPC
// literature: a header giving N, M and the maximum column/row weights,
// per-column and per-row weight lists, then N lines of 1-based row
// indices per column and M lines of column indices per row. The matrix is
// built from the row-index lines alone; the trailing column-index lines
// must be present and numeric, but are not compared against them.
func ReadAlist(r io.Reader) (*ldpc.BinarySparseMatrix, error) {
	const op = "format.ReadAlist"
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	readInts := func(label string) ([]int, error) {
		if !sc.Scan() {
			return nil, xerrors.Errorf("%s: missing %s line", op, label)
		}
		fields := strings.Fields(sc.Text())
		out := make([]int, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, xerrors.Errorf("%s: parsing %s: %w", op, label, err)
			}
			out[i] = v
		}
		return out, nil
	}

	dims, err := readInts("dimension")
	if err != nil {
		return nil, err
	}
	if len(dims) != 2 {
		return nil, xerrors.Errorf("%s: dimension line has %d fields, want 2", op, len(dims))
	}
	n, m := dims[0], dims[1]

	if _, err := readInts("max weight"); err != nil {
		return nil, err
	}
	colWeights, err := readInts("column weights")
	if err != nil {
		return nil, err
	}
	if len(colWeights) != n {
		return nil, xerrors.Errorf("%s: got %d column weights, want %d", op, len(colWeights), n)
	}
	rowWeights, err := readInts("row weights")
	if err != nil {
		return nil, err
	}
	if len(rowWeights) != m {
		return nil, xerrors.Errorf("%s: got %d row weights, want %d", op, len(rowWeights), m)
	}

	colPtr := make([]uint32, n+1)
	rowIdx := make([]uint32, 0, sum(colWeights))
	for c := 0; c < n; c++ {
		entries, err := readInts(fmt.Sprintf("column %d entries", c))
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e == 0 {
				continue
			}
			rowIdx = append(rowIdx, uint32(e-1))
		}
		colPtr[c+1] = uint32(len(rowIdx))
	}

	for r := 0; r < m; r++ {
		if _, err := readInts(fmt.Sprintf("row %d entries", r)); err != nil {
			return nil, err
		}
	}

	mat, err := ldpc.NewBinarySparseMatrix(colPtr, rowIdx)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", op, err)
	}
	return mat, nil
}

// WriteAlist serializes m in alist format, symmetric to ReadAlist.
func WriteAlist(w io.Writer, m *ldpc.BinarySparseMatrix) error {
	const op = "format.WriteAlist"
	bw := bufio.NewWriter(w)

	n, mRows := m.NCols(), m.NRows()
	rowsByCol := make([][]uint32, n)
	colWeights := make([]int, n)
	maxColWeight := 0
	for c := 0; c < n; c++ {
		rowsByCol[c] = m.Column(c)
		colWeights[c] = len(rowsByCol[c])
		if colWeights[c] > maxColWeight {
			maxColWeight = colWeights[c]
		}
	}

	colsByRow := make([][]uint32, mRows)
	for c := 0; c < n; c++ {
		for _, r := range rowsByCol[c] {
			colsByRow[r] = append(colsByRow[r], uint32(c))
		}
	}
	rowWeights := make([]int, mRows)
	maxRowWeight := 0
	for r := 0; r < mRows; r++ {
		rowWeights[r] = len(colsByRow[r])
		if rowWeights[r] > maxRowWeight {
			maxRowWeight = rowWeights[r]
		}
	}

	fmt.Fprintf(bw, "%d %d\n", n, mRows)
	fmt.Fprintf(bw, "%d %d\n", maxColWeight, maxRowWeight)
	writeInts(bw, colWeights)
	writeInts(bw, rowWeights)
	for c := 0; c < n; c++ {
		ones := make([]int, len(rowsByCol[c]))
		for i, r := range rowsByCol[c] {
			ones[i] = int(r) + 1
		}
		writeInts(bw, ones)
	}
	for r := 0; r < mRows; r++ {
		ones := make([]int, len(colsByRow[r]))
		for i, c := range colsByRow[r] {
			ones[i] = int(c) + 1
		}
		writeInts(bw, ones)
	}

	if err := bw.Flush(); err != nil {
		return xerrors.Errorf("%s: %w", op, err)
	}
	return nil
}

func writeInts(w *bufio.Writer, vs []int) {
	for i, v := range vs {
		if i > 0 {
			w.WriteByte(' ')
		}
		fmt.Fprintf(w, "%d", v)
	}
	w.WriteByte('\n')
}

func sum(vs []int) int {
	s := 0
	for _, v := range vs {
		s += v
	}
	return s
}
