package diet

import (
	"context"
	"math"
	"testing"

	"github.com/wyfcoding/optpipe/dataframe"
)

func TestDatasetConsistency(t *testing.T) {
	items := Items()
	measures := Measures()
	matrix := ContributionMatrix()

	if len(matrix) != len(measures) {
		t.Fatalf("matrix has %d rows, want %d", len(matrix), len(measures))
	}
	for i, row := range matrix {
		if len(row) != len(items) {
			t.Errorf("row %d has %d columns, want %d", i, len(row), len(items))
		}
	}

	// 数据集刻意包含恰好一个缺失贡献单元格
	missing := 0
	for _, row := range matrix {
		for _, v := range row {
			if dataframe.IsMissing(v) {
				missing++
			}
		}
	}
	if missing != 1 {
		t.Errorf("expected exactly 1 missing cell, got %d", missing)
	}

	for _, m := range measures {
		if m.Min > m.Max {
			t.Errorf("measure %s has min %v > max %v", m.Name, m.Min, m.Max)
		}
	}
	for _, it := range items {
		if it.UnitCost.IsNegative() {
			t.Errorf("item %s has negative unit cost", it.Name)
		}
	}
}

func TestPlan(t *testing.T) {
	ctx := context.Background()

	sol, err := Plan(ctx)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if math.IsNaN(sol.Objective) || math.IsInf(sol.Objective, 0) {
		t.Fatalf("objective must be finite, got %v", sol.Objective)
	}
	if sol.Objective <= 0 {
		t.Errorf("objective must be positive, got %v", sol.Objective)
	}

	upper := UpperBounds()
	if len(sol.Names) != len(upper) {
		t.Fatalf("expected %d item values, got %d", len(upper), len(sol.Names))
	}
	for j, v := range sol.Values {
		if v < -1e-9 || v > upper[j]+1e-9 {
			t.Errorf("item %s = %v outside [0, %v]", sol.Names[j], v, upper[j])
		}
	}

	// 目标值等于单价与数量的内积
	var total float64
	for j, c := range Costs() {
		total += c * sol.Values[j]
	}
	if math.Abs(total-sol.Objective) > 1e-6 {
		t.Errorf("objective %v does not match cost dot product %v", sol.Objective, total)
	}
}

func TestPlanDeterminism(t *testing.T) {
	ctx := context.Background()

	first, err := Plan(ctx)
	if err != nil {
		t.Fatalf("first plan failed: %v", err)
	}
	second, err := Plan(ctx)
	if err != nil {
		t.Fatalf("second plan failed: %v", err)
	}

	if first.Objective != second.Objective {
		t.Errorf("objective differs across runs: %v vs %v", first.Objective, second.Objective)
	}
	for j := range first.Values {
		if first.Values[j] != second.Values[j] {
			t.Errorf("item %s differs across runs: %v vs %v", first.Names[j], first.Values[j], second.Values[j])
		}
	}
}
