package solver

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/wyfcoding/optpipe/xerrors"
)

const eps = 1e-9

func TestMaximizeSingleVariable(t *testing.T) {
	ctx := context.Background()

	// max x, x <= B, 0 <= x <= U: 最优值为 min(B, U)
	cases := []struct {
		b, u, want float64
	}{
		{5, 8, 5},
		{8, 5, 5},
		{3, 3, 3},
	}

	for _, c := range cases {
		m, err := NewModel([]float64{1}, SenseMaximize, []float64{c.u})
		if err != nil {
			t.Fatalf("NewModel failed: %v", err)
		}
		if err := m.AddUpperRow([]float64{1}, c.b); err != nil {
			t.Fatalf("AddUpperRow failed: %v", err)
		}

		sol, err := New().Solve(ctx, m)
		if err != nil {
			t.Fatalf("Solve(b=%v,u=%v) failed: %v", c.b, c.u, err)
		}
		if math.Abs(sol.Objective-c.want) > eps {
			t.Errorf("objective = %v, want %v", sol.Objective, c.want)
		}
		if math.Abs(sol.Values[0]-c.want) > eps {
			t.Errorf("x = %v, want %v", sol.Values[0], c.want)
		}
	}
}

func TestMinimizeWithLowerRange(t *testing.T) {
	ctx := context.Background()

	// min x1 + 2*x2, s.t. x1 + x2 >= 3, 0 <= x <= 10: 最优 x1=3, x2=0
	m, err := NewModel([]float64{1, 2}, SenseMinimize, []float64{10, 10})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	if err := m.AddDenseRow(3, []float64{1, 1}, math.Inf(1)); err != nil {
		t.Fatalf("AddDenseRow failed: %v", err)
	}

	sol, err := New().Solve(ctx, m)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if math.Abs(sol.Objective-3) > eps {
		t.Errorf("objective = %v, want 3", sol.Objective)
	}
	if math.Abs(sol.Values[0]-3) > eps || math.Abs(sol.Values[1]) > eps {
		t.Errorf("solution = %v, want [3 0]", sol.Values)
	}
}

func TestEqualityRow(t *testing.T) {
	ctx := context.Background()

	// min x1 + 2*x2, s.t. x1 + x2 = 4
	m, err := NewModel([]float64{1, 2}, SenseMinimize, []float64{10, 10})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	if err := m.AddDenseRow(4, []float64{1, 1}, 4); err != nil {
		t.Fatalf("AddDenseRow failed: %v", err)
	}

	sol, err := New().Solve(ctx, m)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if math.Abs(sol.Objective-4) > eps {
		t.Errorf("objective = %v, want 4", sol.Objective)
	}
}

func TestInfeasibleRange(t *testing.T) {
	ctx := context.Background()

	// 范围行 min > max 必须报告不可行，而不是静默零解
	m, err := NewModel([]float64{1}, SenseMinimize, []float64{10})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	if err := m.AddDenseRow(5, []float64{1}, 3); err != nil {
		t.Fatalf("AddDenseRow failed: %v", err)
	}

	_, err = New().Solve(ctx, m)
	if !errors.Is(err, xerrors.ErrInfeasibleModel) {
		t.Errorf("expected infeasible model error, got %v", err)
	}
}

func TestInfeasibleVariableBound(t *testing.T) {
	ctx := context.Background()

	// 上界为负与 x >= 0 矛盾
	m, err := NewModel([]float64{1}, SenseMinimize, []float64{-1})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	_, err = New().Solve(ctx, m)
	if !errors.Is(err, xerrors.ErrInfeasibleModel) {
		t.Errorf("expected infeasible model error, got %v", err)
	}
}

func TestUnboundedFreeVariable(t *testing.T) {
	ctx := context.Background()

	// max x 且无任何有效上界约束
	m, err := NewModel([]float64{1}, SenseMaximize, []float64{math.Inf(1)})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}

	_, err = New().Solve(ctx, m)
	if !errors.Is(err, xerrors.ErrUnboundedModel) {
		t.Errorf("expected unbounded model error, got %v", err)
	}
}

func TestUnboundedWithConstraint(t *testing.T) {
	ctx := context.Background()

	// max x, x >= 1: 约束存在但目标仍无界
	m, err := NewModel([]float64{1}, SenseMaximize, []float64{math.Inf(1)})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	if err := m.AddDenseRow(1, []float64{1}, math.Inf(1)); err != nil {
		t.Fatalf("AddDenseRow failed: %v", err)
	}

	_, err = New().Solve(ctx, m)
	if !errors.Is(err, xerrors.ErrUnboundedModel) {
		t.Errorf("expected unbounded model error, got %v", err)
	}
}

func TestUnusedVariableFixedAtZero(t *testing.T) {
	ctx := context.Background()

	// x2 不出现在任何约束中且目标系数非负，应固定为 0
	m, err := NewModel([]float64{1, 1}, SenseMinimize, []float64{10, math.Inf(1)})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	if err := m.AddDenseRow(2, []float64{1, 0}, math.Inf(1)); err != nil {
		t.Fatalf("AddDenseRow failed: %v", err)
	}

	sol, err := New().Solve(ctx, m)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if math.Abs(sol.Values[0]-2) > eps || sol.Values[1] != 0 {
		t.Errorf("solution = %v, want [2 0]", sol.Values)
	}
}

func TestModelValidation(t *testing.T) {
	if _, err := NewModel(nil, SenseMinimize, nil); !errors.Is(err, xerrors.ErrEmptyData) {
		t.Errorf("expected empty data error, got %v", err)
	}
	if _, err := NewModel([]float64{1}, SenseMinimize, []float64{1, 2}); !errors.Is(err, xerrors.ErrDimMismatch) {
		t.Errorf("expected dimension mismatch, got %v", err)
	}
	if _, err := NewModel([]float64{1}, SenseMinimize, []float64{math.NaN()}); !errors.Is(err, xerrors.ErrInvalidBound) {
		t.Errorf("expected invalid bound error, got %v", err)
	}

	m, err := NewModel([]float64{1, 2}, SenseMaximize, []float64{1, 1})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	if err := m.AddDenseRow(0, []float64{1}, 1); !errors.Is(err, xerrors.ErrDimMismatch) {
		t.Errorf("expected dimension mismatch on short row, got %v", err)
	}
}

func TestParseSense(t *testing.T) {
	for _, s := range []string{"minimize", "min"} {
		if got, err := ParseSense(s); err != nil || got != SenseMinimize {
			t.Errorf("ParseSense(%q) = %v, %v", s, got, err)
		}
	}
	for _, s := range []string{"maximize", "max"} {
		if got, err := ParseSense(s); err != nil || got != SenseMaximize {
			t.Errorf("ParseSense(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseSense("upward"); !errors.Is(err, xerrors.ErrInvalidSense) {
		t.Errorf("expected invalid sense error, got %v", err)
	}
}

func TestDeterminism(t *testing.T) {
	ctx := context.Background()

	build := func() *Model {
		m, err := NewModel([]float64{3, 1, 4}, SenseMinimize, []float64{10, 10, 10})
		if err != nil {
			t.Fatalf("NewModel failed: %v", err)
		}
		if err := m.AddDenseRow(2, []float64{1, 1, 0}, 8); err != nil {
			t.Fatalf("AddDenseRow failed: %v", err)
		}
		if err := m.AddDenseRow(1, []float64{0, 1, 1}, 6); err != nil {
			t.Fatalf("AddDenseRow failed: %v", err)
		}
		return m
	}

	first, err := New().Solve(ctx, build())
	if err != nil {
		t.Fatalf("first solve failed: %v", err)
	}
	second, err := New().Solve(ctx, build())
	if err != nil {
		t.Fatalf("second solve failed: %v", err)
	}

	if first.Objective != second.Objective {
		t.Errorf("objective differs: %v vs %v", first.Objective, second.Objective)
	}
	for j := range first.Values {
		if first.Values[j] != second.Values[j] {
			t.Errorf("value %d differs: %v vs %v", j, first.Values[j], second.Values[j])
		}
	}
}
