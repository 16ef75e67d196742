package ldpc

import (
	"reflect"
	"testing"
)

func smallMatrix(t *testing.T) *BinarySparseMatrix {
	t.Helper()
	m, err := NewBinarySparseMatrix(smallColPtr, smallRowIdx)
	if err != nil {
		t.Fatalf("NewBinarySparseMatrix: %v", err)
	}
	return m
}

// identicalRowsMatrix returns a 3x4 fixture whose first two rows both
// have variable support {0,1}, row 2 has support {2,3}:
//
//	1 1 0 0
//	1 1 0 0
//	0 0 1 1
//
// Combining rows 0 and 1 XORs identical supports, so the combined row
// has empty support: the case DropZeroRow is for.
func identicalRowsMatrix(t *testing.T) *BinarySparseMatrix {
	t.Helper()
	colPtr := []uint32{0, 2, 4, 5, 6}
	rowIdx := []uint32{0, 1, 0, 1, 2, 2}
	m, err := NewBinarySparseMatrix(colPtr, rowIdx)
	if err != nil {
		t.Fatalf("NewBinarySparseMatrix: %v", err)
	}
	return m
}

func TestMotherAdjacency(t *testing.T) {
	adj := motherAdjacency(smallMatrix(t))

	wantVarn := [][]uint32{
		{0, 2, 4, 6},
		{1, 2, 5, 6},
		{3, 4, 5, 6},
	}
	for i, want := range wantVarn {
		if got := adj.varn(i); !reflect.DeepEqual(got, want) {
			t.Errorf("varn(%d) = %v, want %v", i, got, want)
		}
	}

	wantCheckn := [][]uint32{
		{0}, {1}, {0, 1}, {2}, {0, 2}, {1, 2}, {0, 1, 2},
	}
	for j, want := range wantCheckn {
		if got := adj.checkn(j); !reflect.DeepEqual(got, want) {
			t.Errorf("checkn(%d) = %v, want %v", j, got, want)
		}
	}
}

func TestAdjacencyEdgeSlotsAreInverses(t *testing.T) {
	adj := motherAdjacency(smallMatrix(t))
	for e, slot := range adj.edgeCheckSlot {
		if back := adj.edgeVarSlot[slot]; back != uint32(e) {
			t.Errorf("edgeVarSlot[edgeCheckSlot[%d]] = %d, want %d", e, back, e)
		}
	}
	for slot, e := range adj.edgeVarSlot {
		if back := adj.edgeCheckSlot[e]; back != uint32(slot) {
			t.Errorf("edgeCheckSlot[edgeVarSlot[%d]] = %d, want %d", slot, back, slot)
		}
	}
}

func TestSortedSymmetricDifference(t *testing.T) {
	tcs := []struct {
		a, b, want []uint32
	}{
		{nil, nil, []uint32{}},
		{[]uint32{1, 2, 3}, nil, []uint32{1, 2, 3}},
		{[]uint32{1, 2, 3}, []uint32{2, 3, 4}, []uint32{1, 4}},
		{[]uint32{0, 2, 4, 6}, []uint32{1, 2, 5, 6}, []uint32{0, 1, 4, 5}},
		{[]uint32{1, 2}, []uint32{1, 2}, []uint32{}},
	}
	for _, tc := range tcs {
		got := sortedSymmetricDifference(tc.a, tc.b)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("sortedSymmetricDifference(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
