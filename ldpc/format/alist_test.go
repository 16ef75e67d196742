package format

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/qkdrecon/ldpc4qkd/ldpc"
)

func smallMatrix(t *testing.T) *ldpc.BinarySparseMatrix {
	t.Helper()
	colPtr := []uint32{0, 1, 2, 4, 5, 7, 9, 12}
	rowIdx := []uint32{0, 1, 0, 1, 2, 0, 2, 1, 2, 0, 1, 2}
	m, err := ldpc.NewBinarySparseMatrix(colPtr, rowIdx)
	if err != nil {
		t.Fatalf("NewBinarySparseMatrix: %v", err)
	}
	return m
}

func TestAlistRoundTrip(t *testing.T) {
	m := smallMatrix(t)

	var buf bytes.Buffer
	if err := WriteAlist(&buf, m); err != nil {
		t.Fatalf("WriteAlist: %v", err)
	}

	got, err := ReadAlist(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("ReadAlist: %v", err)
	}
	if !reflect.DeepEqual(got.ColPtr(), m.ColPtr()) {
		t.Errorf("round-tripped ColPtr() = %v, want %v", got.ColPtr(), m.ColPtr())
	}
	if !reflect.DeepEqual(got.RowIdx(), m.RowIdx()) {
		t.Errorf("round-tripped RowIdx() = %v, want %v", got.RowIdx(), m.RowIdx())
	}
}

func TestReadAlistHeader(t *testing.T) {
	m := smallMatrix(t)
	var buf bytes.Buffer
	if err := WriteAlist(&buf, m); err != nil {
		t.Fatalf("WriteAlist: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if got, want := lines[0], "7 3"; got != want {
		t.Errorf("header line = %q, want %q", got, want)
	}
}
