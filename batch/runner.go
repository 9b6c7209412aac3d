// Package batch 提供了多模型并发求解能力，用于成本向量或上下界的 what-if 批量场景。
// 各场景相互独立，结果按输入顺序返回；任一场景失败即取消整批。
package batch

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/wyfcoding/optpipe/logging"
	"github.com/wyfcoding/optpipe/metrics"
	"github.com/wyfcoding/optpipe/solver"
	"github.com/wyfcoding/optpipe/tracing"
	"github.com/wyfcoding/optpipe/xerrors"
)

const defaultConcurrency = 4

type options struct {
	Logger      *logging.Logger
	Metrics     *metrics.Metrics
	Concurrency int
}

// Option 定义配置选项。
type Option func(*options)

// WithConcurrency 设置并发求解的 goroutine 上限。
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.Concurrency = n
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

// Runner 并发提交多个独立模型到同一个求解器。
type Runner struct {
	solver *solver.Solver
	opts   options
}

// NewRunner 创建批量求解器。
func NewRunner(s *solver.Solver, opts ...Option) *Runner {
	o := options{Concurrency: defaultConcurrency}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Concurrency <= 0 {
		o.Concurrency = defaultConcurrency
	}
	if o.Logger == nil {
		o.Logger = logging.Default()
	}
	return &Runner{solver: s, opts: o}
}

// SolveAll 并发求解所有模型，结果下标与输入一一对应。
// 第一个错误会通过 context 取消尚未开始的场景，已完成的结果不返回。
func (r *Runner) SolveAll(ctx context.Context, models []*solver.Model) ([]*solver.Solution, error) {
	if len(models) == 0 {
		return nil, xerrors.ErrEmptyData
	}

	ctx, span := tracing.StartSpan(ctx, "batch.solve_all")
	defer span.End()
	defer logging.LogDuration(ctx, "batch solve", "scenarios", len(models))()

	tracing.AddTag(ctx, "scenarios", len(models))
	tracing.AddTag(ctx, "concurrency", r.opts.Concurrency)

	results := make([]*solver.Solution, len(models))
	p := pool.New().
		WithContext(ctx).
		WithMaxGoroutines(r.opts.Concurrency).
		WithCancelOnError().
		WithFirstError()

	for i, m := range models {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if r.opts.Metrics != nil {
				r.opts.Metrics.BatchInFlight.Inc()
				defer r.opts.Metrics.BatchInFlight.Dec()
			}

			sol, err := r.solver.Solve(ctx, m)
			if err != nil {
				return xerrors.Wrap(err, xerrors.ErrInternal, "batch scenario failed").
					WithContext("scenario", i)
			}
			results[i] = sol
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
