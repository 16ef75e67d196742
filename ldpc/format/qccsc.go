package format

import (
	"encoding/json"
	"io"

	"github.com/qkdrecon/ldpc4qkd/ldpc"
	"golang.org/x/xerrors"
)

const qcCSCFormatTag = "COMPRESSED_SPARSE_COLUMN"

type qcCSCDoc struct {
	Format            string   `json:"format"`
	ColPtr            []uint32 `json:"colptr"`
	RowVal            []uint32 `json:"rowval"`
	NzVal             []uint32 `json:"nzval"`
	QCExpansionFactor int      `json:"qc_expansion_factor"`
}

// ReadQCCSC parses a qccsc.json document into a QCMatrix.
func ReadQCCSC(r io.Reader) (*ldpc.QCMatrix, error) {
	const op = "format.ReadQCCSC"
	var doc qcCSCDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, xerrors.Errorf("%s: decoding json: %w", op, err)
	}
	if doc.Format != qcCSCFormatTag {
		return nil, xerrors.Errorf("%s: unrecognized format tag %q, want %q", op, doc.Format, qcCSCFormatTag)
	}
	q, err := ldpc.NewQCMatrix(doc.QCExpansionFactor, doc.ColPtr, doc.RowVal, doc.NzVal)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", op, err)
	}
	return q, nil
}
