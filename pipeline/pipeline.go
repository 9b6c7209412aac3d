// Package pipeline 以 fit-then-transform 的方式串联数据阶段，并以线性规划变换器收尾。
// 管道为纯线性同步组合: 无分支、无重试、无跨次运行状态，拟合后的配置只读。
package pipeline

import (
	"context"

	"github.com/wyfcoding/optpipe/dataframe"
	"github.com/wyfcoding/optpipe/logging"
	"github.com/wyfcoding/optpipe/metrics"
	"github.com/wyfcoding/optpipe/tracing"
	"github.com/wyfcoding/optpipe/xerrors"
)

// Stage 是一个可拟合的数据变换阶段。
// Transform 必须返回新 Frame，不得修改输入。
type Stage interface {
	Fit(ctx context.Context, frame *dataframe.Frame) error
	Transform(ctx context.Context, frame *dataframe.Frame) (*dataframe.Frame, error)
}

// Terminal 是管道末端的求解型阶段: 拟合校验配置，Solve 产出解表。
type Terminal interface {
	Fit(ctx context.Context, frame *dataframe.Frame) error
	Solve(ctx context.Context, frame *dataframe.Frame) (*Solution, error)
}

// Pipeline 按序执行若干 Stage 后交给 Terminal 求解。
type Pipeline struct {
	stages   []Stage
	terminal Terminal
	logger   *logging.Logger
	metrics  *metrics.Metrics
}

// PipelineOption 定义管道配置选项。
type PipelineOption func(*Pipeline)

// WithLogger 设置日志记录器。
func WithLogger(l *logging.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithMetrics 设置指标采集器。
func WithMetrics(m *metrics.Metrics) PipelineOption {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// New 创建管道。terminal 可为 nil，此时管道退化为纯变换链。
func New(stages []Stage, terminal Terminal, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		stages:   stages,
		terminal: terminal,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.Default()
	}
	return p
}

// Fit 依次拟合各阶段: 每个阶段先 Fit 再 Transform，输出喂给下一阶段。
func (p *Pipeline) Fit(ctx context.Context, frame *dataframe.Frame) error {
	cur := frame
	for _, stage := range p.stages {
		if err := stage.Fit(ctx, cur); err != nil {
			return err
		}
		next, err := stage.Transform(ctx, cur)
		if err != nil {
			return err
		}
		cur = next
	}
	if p.terminal != nil {
		return p.terminal.Fit(ctx, cur)
	}
	return nil
}

// Transform 对已拟合的阶段链做一次纯变换，不触碰 Terminal。
func (p *Pipeline) Transform(ctx context.Context, frame *dataframe.Frame) (*dataframe.Frame, error) {
	cur := frame
	for _, stage := range p.stages {
		next, err := stage.Transform(ctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Run 执行一次完整的管道调用: 拟合、变换、求解。
// 每次调用彼此独立，失败时不产出解表。
func (p *Pipeline) Run(ctx context.Context, frame *dataframe.Frame) (*Solution, error) {
	ctx, span := tracing.StartSpan(ctx, "pipeline.run")
	defer span.End()
	defer logging.LogDuration(ctx, "pipeline run")()

	tracing.AddTag(ctx, "stages", len(p.stages))
	tracing.AddTag(ctx, "rows", frame.Rows())

	sol, err := p.run(ctx, frame)
	if p.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		p.metrics.PipelineRuns.WithLabelValues(status).Inc()
	}
	if err != nil {
		tracing.SetError(ctx, err)
		return nil, err
	}
	tracing.AddTag(ctx, "objective", sol.Objective)
	return sol, nil
}

func (p *Pipeline) run(ctx context.Context, frame *dataframe.Frame) (*Solution, error) {
	if p.terminal == nil {
		return nil, xerrors.InvalidArg("pipeline has no terminal solver stage")
	}
	if err := p.Fit(ctx, frame); err != nil {
		return nil, err
	}
	cur, err := p.Transform(ctx, frame)
	if err != nil {
		return nil, err
	}
	return p.terminal.Solve(ctx, cur)
}
