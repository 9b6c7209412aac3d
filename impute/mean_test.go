package impute

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/wyfcoding/optpipe/dataframe"
	"github.com/wyfcoding/optpipe/xerrors"
)

func TestMeanImputation(t *testing.T) {
	ctx := context.Background()
	f, err := dataframe.FromMatrix([]string{"a", "b"}, [][]float64{
		{1, 10},
		{dataframe.Missing(), 20},
		{3, dataframe.Missing()},
		{5, 30},
	})
	if err != nil {
		t.Fatalf("FromMatrix failed: %v", err)
	}

	imp := NewMeanImputer()
	out, err := imp.FitTransform(ctx, f)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	// 填充后不允许残留缺失值
	for _, name := range out.Columns() {
		n, _ := out.MissingCount(name)
		if n != 0 {
			t.Errorf("column %s still has %d missing cells", name, n)
		}
	}

	// 填充值必须等于原有值的均值
	wantA := (1.0 + 3.0 + 5.0) / 3.0
	gotA, _ := out.At(1, "a")
	if math.Abs(gotA-wantA) > 1e-12 {
		t.Errorf("column a imputed %v, want %v", gotA, wantA)
	}
	wantB := (10.0 + 20.0 + 30.0) / 3.0
	gotB, _ := out.At(2, "b")
	if math.Abs(gotB-wantB) > 1e-12 {
		t.Errorf("column b imputed %v, want %v", gotB, wantB)
	}

	// 原表不被修改
	orig, _ := f.At(1, "a")
	if !dataframe.IsMissing(orig) {
		t.Error("transform must not mutate the input frame")
	}

	mean, err := imp.Mean("a")
	if err != nil || math.Abs(mean-wantA) > 1e-12 {
		t.Errorf("Mean(a) = %v, %v; want %v", mean, err, wantA)
	}
}

func TestAllMissingColumn(t *testing.T) {
	f, err := dataframe.FromMatrix([]string{"a"}, [][]float64{
		{dataframe.Missing()},
		{dataframe.Missing()},
	})
	if err != nil {
		t.Fatalf("FromMatrix failed: %v", err)
	}

	err = NewMeanImputer().Fit(context.Background(), f)
	if !errors.Is(err, xerrors.ErrAllMissing) {
		t.Errorf("expected all-missing error, got %v", err)
	}
}

func TestTransformBeforeFit(t *testing.T) {
	f, _ := dataframe.FromMatrix([]string{"a"}, [][]float64{{1}})
	_, err := NewMeanImputer().Transform(context.Background(), f)
	if !errors.Is(err, xerrors.ErrNotFitted) {
		t.Errorf("expected not-fitted error, got %v", err)
	}
}

func TestSchemaChanged(t *testing.T) {
	ctx := context.Background()
	train, _ := dataframe.FromMatrix([]string{"a"}, [][]float64{{1}, {2}})
	other, _ := dataframe.FromMatrix([]string{"b"}, [][]float64{{1}, {2}})

	imp := NewMeanImputer()
	if err := imp.Fit(ctx, train); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if _, err := imp.Transform(ctx, other); !errors.Is(err, xerrors.ErrSchemaChanged) {
		t.Errorf("expected schema changed error, got %v", err)
	}
}
