// Package solver 定义线性规划模型并委托 gonum 的单纯形实现完成求解。
// 本包只负责建模、标准型降级与错误归类，不自行实现求解算法。
package solver

import (
	"math"

	"github.com/wyfcoding/optpipe/xerrors"
)

// Sense 优化方向。
type Sense int

const (
	// SenseMinimize 最小化目标函数。
	SenseMinimize Sense = iota
	// SenseMaximize 最大化目标函数。
	SenseMaximize
)

// String 实现 fmt.Stringer。
func (s Sense) String() string {
	switch s {
	case SenseMinimize:
		return "minimize"
	case SenseMaximize:
		return "maximize"
	default:
		return "unknown"
	}
}

// ParseSense 从字符串解析优化方向。
func ParseSense(s string) (Sense, error) {
	switch s {
	case "minimize", "min":
		return SenseMinimize, nil
	case "maximize", "max":
		return SenseMaximize, nil
	default:
		return SenseMinimize, xerrors.ErrInvalidSense.WithContext("sense", s)
	}
}

// row 一条带范围的约束行: lower <= coeffs·x <= upper。
type row struct {
	coeffs []float64
	lower  float64
	upper  float64
}

// Model 线性规划模型。
// 目标为 Sense 方向的 Costs·x，决策变量下界固定为 0，上界由 Upper 给出 (+Inf 表示无上界)。
type Model struct {
	Costs []float64 // 每个决策变量的目标系数
	Sense Sense     // 优化方向
	Upper []float64 // 每个决策变量的上界

	rows []row
}

// NewModel 创建模型。costs 与 upper 必须等长且不含 NaN，upper 不允许为 -Inf。
func NewModel(costs []float64, sense Sense, upper []float64) (*Model, error) {
	if len(costs) == 0 {
		return nil, xerrors.ErrEmptyData
	}
	if sense != SenseMinimize && sense != SenseMaximize {
		return nil, xerrors.ErrInvalidSense
	}
	if len(upper) != len(costs) {
		return nil, xerrors.ErrDimMismatch.
			WithContext("costs", len(costs)).
			WithContext("upper", len(upper))
	}
	for j, c := range costs {
		if math.IsNaN(c) {
			return nil, xerrors.InvalidArg("cost coefficient is NaN").WithContext("variable", j)
		}
	}
	for j, u := range upper {
		if math.IsNaN(u) || math.IsInf(u, -1) {
			return nil, xerrors.ErrInvalidBound.WithContext("variable", j)
		}
	}

	return &Model{
		Costs: costs,
		Sense: sense,
		Upper: upper,
	}, nil
}

// AddDenseRow 追加一条范围约束行 lower <= coeffs·x <= upper。
// 系数个数必须等于变量个数；lower > upper 不在此处拦截，交由求解阶段报告不可行。
func (m *Model) AddDenseRow(lower float64, coeffs []float64, upper float64) error {
	if len(coeffs) != len(m.Costs) {
		return xerrors.ErrDimMismatch.
			WithContext("variables", len(m.Costs)).
			WithContext("coeffs", len(coeffs))
	}
	for j, a := range coeffs {
		if math.IsNaN(a) {
			return xerrors.InvalidArg("constraint coefficient is NaN").WithContext("variable", j)
		}
	}
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return xerrors.ErrInvalidBound.WithContext("row", len(m.rows))
	}

	m.rows = append(m.rows, row{coeffs: coeffs, lower: lower, upper: upper})
	return nil
}

// AddUpperRow 追加一条上界约束行 coeffs·x <= upper。
func (m *Model) AddUpperRow(coeffs []float64, upper float64) error {
	return m.AddDenseRow(math.Inf(-1), coeffs, upper)
}

// NumVariables 返回决策变量个数。
func (m *Model) NumVariables() int {
	return len(m.Costs)
}

// NumRows 返回已添加的约束行数。
func (m *Model) NumRows() int {
	return len(m.rows)
}
