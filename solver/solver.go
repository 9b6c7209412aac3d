package solver

import (
	"context"
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/wyfcoding/optpipe/logging"
	"github.com/wyfcoding/optpipe/metrics"
	"github.com/wyfcoding/optpipe/xerrors"
)

// Solution 求解结果: 每个决策变量的最优取值与目标函数值。
type Solution struct {
	Values    []float64 // 按模型变量顺序的最优解向量
	Objective float64   // 按模型 Sense 口径的目标函数值
}

type options struct {
	Logger    *logging.Logger
	Metrics   *metrics.Metrics
	Variant   string
	Tolerance float64
}

// Option 定义配置选项。
type Option func(*options)

// WithTolerance 设置单纯形收敛容差，零值使用后端默认容差。
func WithTolerance(tol float64) Option {
	return func(o *options) {
		o.Tolerance = tol
	}
}

// WithLogger 设置日志记录器。
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		o.Logger = l
	}
}

// WithMetrics 设置指标采集器。
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.Metrics = m
	}
}

// WithVariant 设置指标维度中的变体标签 (如 plain/range)。
func WithVariant(variant string) Option {
	return func(o *options) {
		o.Variant = variant
	}
}

// Solver 将 Model 降级为标准型并调用 gonum 单纯形后端。
// Solver 本身无状态，可安全复用于多次独立求解。
type Solver struct {
	opts options
}

// New 创建求解器。
func New(opts ...Option) *Solver {
	o := options{Variant: "default"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = logging.Default()
	}
	return &Solver{opts: o}
}

// ineq 一条标准化后的不等式 coeffs·x <= b。
type ineq struct {
	coeffs []float64
	b      float64
}

// eq 一条标准化后的等式 coeffs·x = b。
type eq struct {
	coeffs []float64
	b      float64
}

// Solve 求解模型。
// 不可行与无界分别归类为 ErrInfeasibleModel / ErrUnboundedModel，其余后端错误
// 包装为 ErrSolverFailure。失败时不返回任何部分解。
func (s *Solver) Solve(ctx context.Context, m *Model) (*Solution, error) {
	if m == nil || len(m.Costs) == 0 {
		return nil, xerrors.ErrEmptyData
	}

	start := time.Now()
	sol, err := s.solve(m)
	elapsed := time.Since(start)

	status := "optimal"
	switch {
	case errors.Is(err, xerrors.ErrInfeasibleModel):
		status = "infeasible"
	case errors.Is(err, xerrors.ErrUnboundedModel):
		status = "unbounded"
	case err != nil:
		status = "error"
	}

	if s.opts.Metrics != nil {
		s.opts.Metrics.SolvesTotal.WithLabelValues(s.opts.Variant, status).Inc()
		s.opts.Metrics.SolveDuration.WithLabelValues(s.opts.Variant).Observe(elapsed.Seconds())
		s.opts.Metrics.ModelRows.Observe(float64(m.NumRows()))
		s.opts.Metrics.ModelVariables.Observe(float64(m.NumVariables()))
	}

	if err != nil {
		s.opts.Logger.WarnContext(ctx, "lp solve failed",
			"variant", s.opts.Variant,
			"status", status,
			"variables", m.NumVariables(),
			"rows", m.NumRows(),
			"duration", elapsed,
			"error", err,
		)
		return nil, err
	}

	s.opts.Logger.InfoContext(ctx, "lp solve finished",
		"variant", s.opts.Variant,
		"sense", m.Sense.String(),
		"variables", m.NumVariables(),
		"rows", m.NumRows(),
		"objective", sol.Objective,
		"duration", elapsed,
	)
	return sol, nil
}

func (s *Solver) solve(m *Model) (*Solution, error) {
	n := len(m.Costs)

	// 最大化通过目标系数取反降级为最小化。
	costs := make([]float64, n)
	copy(costs, m.Costs)
	if m.Sense == SenseMaximize {
		for j := range costs {
			costs[j] = -costs[j]
		}
	}

	eqs, ineqs, err := normalize(m)
	if err != nil {
		return nil, err
	}

	// 未出现在任何约束中的变量无法交给单纯形 (全零列)。
	// 其上界必然为 +Inf，目标系数为负即无界，否则固定取零。
	used := make([]bool, n)
	for _, r := range eqs {
		for j, a := range r.coeffs {
			if a != 0 {
				used[j] = true
			}
		}
	}
	for _, r := range ineqs {
		for j, a := range r.coeffs {
			if a != 0 {
				used[j] = true
			}
		}
	}

	compact := make([]int, 0, n) // 压缩后下标 -> 原始变量下标
	for j := range n {
		if used[j] {
			compact = append(compact, j)
		} else if costs[j] < 0 {
			return nil, xerrors.ErrUnboundedModel.WithContext("variable", j)
		}
	}

	values := make([]float64, n)
	if len(eqs) == 0 && len(ineqs) == 0 {
		// 约束全部退化，零向量即最优。
		return &Solution{Values: values, Objective: 0}, nil
	}

	nu := len(compact)
	k := len(ineqs)
	rows := len(eqs) + k
	cols := nu + k

	c := make([]float64, cols)
	for cj, j := range compact {
		c[cj] = costs[j]
	}

	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	for i, r := range eqs {
		for cj, j := range compact {
			a.Set(i, cj, r.coeffs[j])
		}
		b[i] = r.b
	}
	for i, r := range ineqs {
		ri := len(eqs) + i
		for cj, j := range compact {
			a.Set(ri, cj, r.coeffs[j])
		}
		a.Set(ri, nu+i, 1) // 松弛变量
		b[ri] = r.b
	}

	z, xs, err := lp.Simplex(c, a, b, s.opts.Tolerance, nil)
	if err != nil {
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			return nil, xerrors.ErrInfeasibleModel
		case errors.Is(err, lp.ErrUnbounded):
			return nil, xerrors.ErrUnboundedModel
		default:
			return nil, xerrors.New(xerrors.ErrInternal, 500001, "solver failure", err.Error(), err)
		}
	}

	for cj, j := range compact {
		values[j] = xs[cj]
	}
	objective := z
	if m.Sense == SenseMaximize {
		objective = -z
	}
	return &Solution{Values: values, Objective: objective}, nil
}

// normalize 把范围行与变量上界降级为等式/小于等于不等式，并剔除退化的全零行。
// 全零行右端不可满足时直接报告不可行，这覆盖了 min > max 的范围行等病态配置。
func normalize(m *Model) ([]eq, []ineq, error) {
	var eqs []eq
	var ineqs []ineq

	appendIneq := func(coeffs []float64, b float64, rowIdx int) error {
		if allZero(coeffs) {
			if b < 0 {
				return xerrors.ErrInfeasibleModel.WithContext("row", rowIdx)
			}
			return nil
		}
		ineqs = append(ineqs, ineq{coeffs: coeffs, b: b})
		return nil
	}

	for i, r := range m.rows {
		lowerInf := math.IsInf(r.lower, -1)
		upperInf := math.IsInf(r.upper, 1)

		switch {
		case lowerInf && upperInf:
			continue
		case !lowerInf && !upperInf && r.lower == r.upper:
			if allZero(r.coeffs) {
				if r.lower != 0 {
					return nil, nil, xerrors.ErrInfeasibleModel.WithContext("row", i)
				}
				continue
			}
			eqs = append(eqs, eq{coeffs: r.coeffs, b: r.lower})
		default:
			if !upperInf {
				if err := appendIneq(r.coeffs, r.upper, i); err != nil {
					return nil, nil, err
				}
			}
			if !lowerInf {
				neg := make([]float64, len(r.coeffs))
				for j, v := range r.coeffs {
					neg[j] = -v
				}
				if err := appendIneq(neg, -r.lower, i); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	// 变量上界 x_j <= U_j 作为单变量不等式参与标准型。
	for j, u := range m.Upper {
		if math.IsInf(u, 1) {
			continue
		}
		if u < 0 {
			// 与 x_j >= 0 矛盾。
			return nil, nil, xerrors.ErrInfeasibleModel.WithContext("variable", j)
		}
		coeffs := make([]float64, len(m.Costs))
		coeffs[j] = 1
		ineqs = append(ineqs, ineq{coeffs: coeffs, b: u})
	}

	return eqs, ineqs, nil
}

func allZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
