package dataframe

import (
	"errors"
	"math"
	"testing"

	"github.com/wyfcoding/optpipe/xerrors"
)

func TestFromMatrix(t *testing.T) {
	f, err := FromMatrix([]string{"a", "b"}, [][]float64{
		{1, 2},
		{3, 4},
		{5, 6},
	})
	if err != nil {
		t.Fatalf("FromMatrix failed: %v", err)
	}
	if f.Rows() != 3 || f.Cols() != 2 {
		t.Errorf("expected 3x2, got %dx%d", f.Rows(), f.Cols())
	}

	v, err := f.At(1, "b")
	if err != nil {
		t.Fatalf("At failed: %v", err)
	}
	if v != 4 {
		t.Errorf("expected 4, got %v", v)
	}
}

func TestFromMatrixRagged(t *testing.T) {
	_, err := FromMatrix([]string{"a", "b"}, [][]float64{
		{1, 2},
		{3},
	})
	if !errors.Is(err, xerrors.ErrRaggedMatrix) {
		t.Errorf("expected ragged matrix error, got %v", err)
	}
}

func TestDuplicateColumn(t *testing.T) {
	_, err := New([]string{"a", "a"}, 2)
	if !errors.Is(err, xerrors.ErrDuplicateColumn) {
		t.Errorf("expected duplicate column error, got %v", err)
	}
}

func TestUnknownColumn(t *testing.T) {
	f, err := New([]string{"a"}, 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := f.Column("missing"); !errors.Is(err, xerrors.ErrUnknownColumn) {
		t.Errorf("expected unknown column error, got %v", err)
	}
}

func TestMissingCount(t *testing.T) {
	f, err := FromMatrix([]string{"a"}, [][]float64{
		{1},
		{Missing()},
		{3},
	})
	if err != nil {
		t.Fatalf("FromMatrix failed: %v", err)
	}

	n, err := f.MissingCount("a")
	if err != nil {
		t.Fatalf("MissingCount failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 missing cell, got %d", n)
	}
	if !IsMissing(Missing()) {
		t.Error("Missing sentinel must satisfy IsMissing")
	}
	if IsMissing(0) {
		t.Error("zero must not be treated as missing")
	}
}

func TestFromColumns(t *testing.T) {
	f, err := FromColumns([]string{"b", "a"}, map[string][]float64{
		"a": {1, 2},
		"b": {3, 4},
	})
	if err != nil {
		t.Fatalf("FromColumns failed: %v", err)
	}
	cols := f.Columns()
	if cols[0] != "b" || cols[1] != "a" {
		t.Errorf("order must follow the order slice, got %v", cols)
	}
	v, _ := f.At(1, "a")
	if v != 2 {
		t.Errorf("expected 2, got %v", v)
	}

	if _, err := FromColumns([]string{"a", "b"}, map[string][]float64{
		"a": {1, 2},
		"b": {3},
	}); !errors.Is(err, xerrors.ErrRaggedMatrix) {
		t.Errorf("expected ragged matrix error for unequal columns, got %v", err)
	}
}

func TestCloneIndependence(t *testing.T) {
	f, err := FromMatrix([]string{"a"}, [][]float64{{1}, {2}})
	if err != nil {
		t.Fatalf("FromMatrix failed: %v", err)
	}

	c := f.Clone()
	if err := c.Set(0, "a", 42); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, _ := f.At(0, "a")
	if v != 1 {
		t.Errorf("clone write leaked into original: got %v", v)
	}
}

func TestSelect(t *testing.T) {
	f, err := FromMatrix([]string{"a", "b", "c"}, [][]float64{{1, 2, 3}})
	if err != nil {
		t.Fatalf("FromMatrix failed: %v", err)
	}

	sel, err := f.Select("c", "a")
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	cols := sel.Columns()
	if len(cols) != 2 || cols[0] != "c" || cols[1] != "a" {
		t.Errorf("unexpected column order: %v", cols)
	}
	v, _ := sel.At(0, "c")
	if v != 3 {
		t.Errorf("expected 3, got %v", v)
	}
}

func TestDenseRoundTrip(t *testing.T) {
	f, err := FromMatrix([]string{"a", "b"}, [][]float64{
		{1, 2},
		{3, 4},
	})
	if err != nil {
		t.Fatalf("FromMatrix failed: %v", err)
	}

	back, err := FromDense(f.Columns(), f.ToDense())
	if err != nil {
		t.Fatalf("FromDense failed: %v", err)
	}
	for i := range f.Rows() {
		for _, name := range f.Columns() {
			want, _ := f.At(i, name)
			got, _ := back.At(i, name)
			if math.Abs(want-got) > 1e-12 {
				t.Errorf("round trip mismatch at (%d,%s): want %v got %v", i, name, want, got)
			}
		}
	}
}
