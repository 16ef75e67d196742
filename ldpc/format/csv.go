package format

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/qkdrecon/ldpc4qkd/ldpc"
	"golang.org/x/xerrors"
)

// ReadRateAdaptionCSV parses a headerless CSV of "a,b" row-index pairs
// into a RateAdaption. The line order defines the prefix-wise rate
// adaption.
func ReadRateAdaptionCSV(r io.Reader) (ldpc.RateAdaption, error) {
	const op = "format.ReadRateAdaptionCSV"
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	var pairs ldpc.RateAdaption
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, xerrors.Errorf("%s: %w", op, err)
		}
		a, err := strconv.ParseUint(rec[0], 10, 32)
		if err != nil {
			return nil, xerrors.Errorf("%s: parsing column a: %w", op, err)
		}
		b, err := strconv.ParseUint(rec[1], 10, 32)
		if err != nil {
			return nil, xerrors.Errorf("%s: parsing column b: %w", op, err)
		}
		pairs = append(pairs, ldpc.RowPair{A: uint32(a), B: uint32(b)})
	}
	return pairs, nil
}
