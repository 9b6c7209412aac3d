package diet

import (
	"context"

	"github.com/wyfcoding/optpipe/assemble"
	"github.com/wyfcoding/optpipe/impute"
	"github.com/wyfcoding/optpipe/pipeline"
	"github.com/wyfcoding/optpipe/solver"
)

// Plan 执行一次完整的膳食规划: 拼装增广约束表、均值填充缺失贡献、最小化总花费求解。
// 每次调用从当前数据重新计算，解表不持久化。
func Plan(ctx context.Context, opts ...solver.Option) (*pipeline.Solution, error) {
	mins, maxs := MeasureRanges()
	frame, err := assemble.Augment(ContributionMatrix(), mins, maxs, ItemNames())
	if err != nil {
		return nil, err
	}

	lpStage, err := pipeline.NewRangeLPStage(
		ItemNames(),
		assemble.MinColumn,
		assemble.MaxColumn,
		Costs(),
		solver.SenseMinimize,
		UpperBounds(),
		opts...,
	)
	if err != nil {
		return nil, err
	}

	p := pipeline.New([]pipeline.Stage{impute.NewMeanImputer()}, lpStage)
	return p.Run(ctx, frame)
}
