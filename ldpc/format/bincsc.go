// Package format holds readers and writers for the on-disk
// representations of LDPC matrices and rate-adaption tables: the
// bincsc/qccsc JSON sparse-matrix formats, the alist text format, and a
// plain CSV rate-adaption table.
package format

import (
	"encoding/json"
	"io"

	"github.com/qkdrecon/ldpc4qkd/ldpc"
	"golang.org/x/xerrors"
)

const binCSCFormatTag = "BINCSCJSON"

type binCSCDoc struct {
	Format string   `json:"format"`
	ColPtr []uint32 `json:"colptr"`
	RowVal []uint32 `json:"rowval"`
}

// ReadBinCSC parses a bincsc.json document into a BinarySparseMatrix.
func ReadBinCSC(r io.Reader) (*ldpc.BinarySparseMatrix, error) {
	const op = "format.ReadBinCSC"
	var doc binCSCDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, xerrors.Errorf("%s: decoding json: %w", op, err)
	}
	if doc.Format != binCSCFormatTag {
		return nil, xerrors.Errorf("%s: unrecognized format tag %q, want %q", op, doc.Format, binCSCFormatTag)
	}
	m, err := ldpc.NewBinarySparseMatrix(doc.ColPtr, doc.RowVal)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// WriteBinCSC serializes m as a bincsc.json document.
func WriteBinCSC(w io.Writer, m *ldpc.BinarySparseMatrix) error {
	const op = "format.WriteBinCSC"
	doc := binCSCDoc{
		Format: binCSCFormatTag,
		ColPtr: m.ColPtr(),
		RowVal: m.RowIdx(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return xerrors.Errorf("%s: %w", op, err)
	}
	return nil
}
