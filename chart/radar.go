// Package chart 把解表渲染为雷达图，便于直观检查各条目的最优数量。
package chart

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/wyfcoding/optpipe/pipeline"
	"github.com/wyfcoding/optpipe/xerrors"
)

// indicator 轴上限相对解值的放大系数，避免顶点贴边。
const defaultHeadroom = 1.25

type options struct {
	Title      string
	SeriesName string
	MaxValues  []float64 // 每个条目的轴上限，通常取条目的声明上界
}

// Option 定义配置选项。
type Option func(*options)

// WithTitle 设置图表标题。
func WithTitle(title string) Option {
	return func(o *options) {
		o.Title = title
	}
}

// WithSeriesName 设置数据系列名称。
func WithSeriesName(name string) Option {
	return func(o *options) {
		o.SeriesName = name
	}
}

// WithMaxValues 设置各指标轴的上限，长度必须与解表条目数一致。
func WithMaxValues(maxValues []float64) Option {
	return func(o *options) {
		o.MaxValues = maxValues
	}
}

// RenderRadar 将解表渲染为自包含的 HTML 雷达图并写入 w。
// 未提供轴上限时按解值乘以固定余量自动推导。
func RenderRadar(w io.Writer, sol *pipeline.Solution, optFns ...Option) error {
	if sol == nil || len(sol.Names) == 0 {
		return xerrors.ErrEmptyData
	}
	if len(sol.Names) != len(sol.Values) {
		return xerrors.ErrDimMismatch.
			WithContext("names", len(sol.Names)).
			WithContext("values", len(sol.Values))
	}

	o := options{
		Title:      "optimal quantities",
		SeriesName: "solution",
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.MaxValues != nil && len(o.MaxValues) != len(sol.Names) {
		return xerrors.ErrDimMismatch.
			WithContext("names", len(sol.Names)).
			WithContext("max_values", len(o.MaxValues))
	}

	indicators := make([]*opts.Indicator, len(sol.Names))
	for i, name := range sol.Names {
		max := axisMax(sol.Values[i], o.MaxValues, i)
		indicators[i] = &opts.Indicator{
			Name: name,
			Max:  float32(max),
		}
	}

	radar := charts.NewRadar()
	radar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: o.Title}),
		charts.WithRadarComponentOpts(opts.RadarComponent{
			Indicator: indicators,
		}),
	)
	radar.AddSeries(o.SeriesName, []opts.RadarData{
		{Name: o.SeriesName, Value: sol.Values},
	})

	return radar.Render(w)
}

func axisMax(value float64, maxValues []float64, i int) float64 {
	if maxValues != nil {
		return maxValues[i]
	}
	max := value * defaultHeadroom
	if max <= 0 {
		max = 1
	}
	return max
}
