package pipeline

import (
	"context"

	"github.com/wyfcoding/optpipe/dataframe"
	"github.com/wyfcoding/optpipe/solver"
	"github.com/wyfcoding/optpipe/xerrors"
)

// LPStage 普通变体的线性规划终端阶段。
// 输入表含 N 个值列与一个右端列，每行 r 编码约束 sum_j(A[r][j]*x[j]) <= B[r]。
type LPStage struct {
	valueColumns []string
	rhsColumn    string
	costs        []float64
	sense        solver.Sense
	upper        []float64
	solver       *solver.Solver
	fitted       bool
}

// NewLPStage 创建普通变体阶段。costs 与 upper 的长度必须等于值列个数。
func NewLPStage(valueColumns []string, rhsColumn string, costs []float64, sense solver.Sense, upper []float64, opts ...solver.Option) (*LPStage, error) {
	if err := checkVectors(valueColumns, costs, upper); err != nil {
		return nil, err
	}
	if rhsColumn == "" {
		return nil, xerrors.InvalidArg("rhs column name must not be empty")
	}

	solverOpts := append([]solver.Option{solver.WithVariant("plain")}, opts...)
	return &LPStage{
		valueColumns: valueColumns,
		rhsColumn:    rhsColumn,
		costs:        costs,
		sense:        sense,
		upper:        upper,
		solver:       solver.New(solverOpts...),
	}, nil
}

// Fit 校验输入表的列集合与配置一致，并确保求解列中没有缺失值残留。
func (s *LPStage) Fit(ctx context.Context, frame *dataframe.Frame) error {
	if err := checkColumns(frame, s.valueColumns, s.rhsColumn); err != nil {
		return err
	}
	s.fitted = true
	return nil
}

// Solve 逐行构建模型并提交求解。
func (s *LPStage) Solve(ctx context.Context, frame *dataframe.Frame) (*Solution, error) {
	if !s.fitted {
		return nil, xerrors.ErrNotFitted
	}
	if err := checkColumns(frame, s.valueColumns, s.rhsColumn); err != nil {
		return nil, err
	}

	model, err := solver.NewModel(s.costs, s.sense, s.upper)
	if err != nil {
		return nil, err
	}
	for i := range frame.Rows() {
		coeffs, err := rowCoeffs(frame, i, s.valueColumns)
		if err != nil {
			return nil, err
		}
		rhs, err := cell(frame, i, s.rhsColumn)
		if err != nil {
			return nil, err
		}
		if err := model.AddUpperRow(coeffs, rhs); err != nil {
			return nil, err
		}
	}

	sol, err := s.solver.Solve(ctx, model)
	if err != nil {
		return nil, err
	}
	return &Solution{
		Names:     s.valueColumns,
		Values:    sol.Values,
		Objective: sol.Objective,
	}, nil
}

// RangeLPStage 范围变体的线性规划终端阶段。
// 输入表含 N 个值列与 min/max 两个范围列，每行 r 编码 m[r] <= sum_j <= M[r]。
type RangeLPStage struct {
	valueColumns []string
	minColumn    string
	maxColumn    string
	costs        []float64
	sense        solver.Sense
	upper        []float64
	solver       *solver.Solver
	fitted       bool
}

// NewRangeLPStage 创建范围变体阶段。
func NewRangeLPStage(valueColumns []string, minColumn, maxColumn string, costs []float64, sense solver.Sense, upper []float64, opts ...solver.Option) (*RangeLPStage, error) {
	if err := checkVectors(valueColumns, costs, upper); err != nil {
		return nil, err
	}
	if minColumn == "" || maxColumn == "" || minColumn == maxColumn {
		return nil, xerrors.InvalidArg("min/max column names must be distinct and non-empty")
	}

	solverOpts := append([]solver.Option{solver.WithVariant("range")}, opts...)
	return &RangeLPStage{
		valueColumns: valueColumns,
		minColumn:    minColumn,
		maxColumn:    maxColumn,
		costs:        costs,
		sense:        sense,
		upper:        upper,
		solver:       solver.New(solverOpts...),
	}, nil
}

// Fit 校验输入表的列集合与配置一致。
func (s *RangeLPStage) Fit(ctx context.Context, frame *dataframe.Frame) error {
	if err := checkColumns(frame, s.valueColumns, s.minColumn, s.maxColumn); err != nil {
		return err
	}
	s.fitted = true
	return nil
}

// Solve 逐行构建范围约束并提交求解。
// 某行 min > max 属于不可行模型，由求解阶段报告，而不是静默返回零解。
func (s *RangeLPStage) Solve(ctx context.Context, frame *dataframe.Frame) (*Solution, error) {
	if !s.fitted {
		return nil, xerrors.ErrNotFitted
	}
	if err := checkColumns(frame, s.valueColumns, s.minColumn, s.maxColumn); err != nil {
		return nil, err
	}

	model, err := solver.NewModel(s.costs, s.sense, s.upper)
	if err != nil {
		return nil, err
	}
	for i := range frame.Rows() {
		coeffs, err := rowCoeffs(frame, i, s.valueColumns)
		if err != nil {
			return nil, err
		}
		lo, err := cell(frame, i, s.minColumn)
		if err != nil {
			return nil, err
		}
		hi, err := cell(frame, i, s.maxColumn)
		if err != nil {
			return nil, err
		}
		if err := model.AddDenseRow(lo, coeffs, hi); err != nil {
			return nil, err
		}
	}

	sol, err := s.solver.Solve(ctx, model)
	if err != nil {
		return nil, err
	}
	return &Solution{
		Names:     s.valueColumns,
		Values:    sol.Values,
		Objective: sol.Objective,
	}, nil
}

// --- 公共校验与取值工具 ---

func checkVectors(valueColumns []string, costs, upper []float64) error {
	if len(valueColumns) == 0 {
		return xerrors.ErrEmptyData
	}
	if len(costs) != len(valueColumns) || len(upper) != len(valueColumns) {
		return xerrors.ErrDimMismatch.
			WithContext("columns", len(valueColumns)).
			WithContext("costs", len(costs)).
			WithContext("upper", len(upper))
	}
	return nil
}

func checkColumns(frame *dataframe.Frame, valueColumns []string, extra ...string) error {
	if frame == nil || frame.Rows() == 0 {
		return xerrors.ErrEmptyData
	}
	for _, name := range valueColumns {
		if !frame.HasColumn(name) {
			return xerrors.ErrUnknownColumn.WithContext("column", name)
		}
	}
	for _, name := range extra {
		if !frame.HasColumn(name) {
			return xerrors.ErrUnknownColumn.WithContext("column", name)
		}
	}
	return nil
}

// rowCoeffs 读取一行的约束系数。缺失值必须在进入求解阶段前完成填充。
func rowCoeffs(frame *dataframe.Frame, row int, columns []string) ([]float64, error) {
	coeffs := make([]float64, len(columns))
	for j, name := range columns {
		v, err := frame.At(row, name)
		if err != nil {
			return nil, err
		}
		if dataframe.IsMissing(v) {
			return nil, xerrors.InvalidArg("missing value in constraint table").
				WithContext("row", row).
				WithContext("column", name)
		}
		coeffs[j] = v
	}
	return coeffs, nil
}

func cell(frame *dataframe.Frame, row int, column string) (float64, error) {
	v, err := frame.At(row, column)
	if err != nil {
		return 0, err
	}
	if dataframe.IsMissing(v) {
		return 0, xerrors.InvalidArg("missing value in constraint table").
			WithContext("row", row).
			WithContext("column", column)
	}
	return v, nil
}
