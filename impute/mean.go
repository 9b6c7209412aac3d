// Package impute 提供了按列均值填充缺失值的拟合式填充器。
package impute

import (
	"context"

	"github.com/wyfcoding/optpipe/dataframe"
	"github.com/wyfcoding/optpipe/logging"
	"github.com/wyfcoding/optpipe/metrics"
	"github.com/wyfcoding/optpipe/xerrors"
)

// MeanImputer 按列独立计算均值并填充缺失单元格。
// Fit 之后均值只读，多次 Transform 互不影响。
type MeanImputer struct {
	means   map[string]float64 // 拟合得到的列均值
	schema  []string           // 拟合时的列集合 (顺序敏感)
	fitted  bool
	metrics *metrics.Metrics
}

// Option 定义配置选项。
type Option func(*MeanImputer)

// WithMetrics 设置指标采集器。
func WithMetrics(m *metrics.Metrics) Option {
	return func(imp *MeanImputer) {
		imp.metrics = m
	}
}

// NewMeanImputer 创建未拟合的均值填充器。
func NewMeanImputer(opts ...Option) *MeanImputer {
	imp := &MeanImputer{}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// Fit 逐列计算现有值的均值。
// 某列全部缺失时均值无定义，返回配置错误，绝不静默回退为零。
func (m *MeanImputer) Fit(ctx context.Context, frame *dataframe.Frame) error {
	if frame == nil || frame.Rows() == 0 {
		return xerrors.ErrEmptyData
	}

	means := make(map[string]float64, frame.Cols())
	for _, name := range frame.Columns() {
		col, err := frame.Column(name)
		if err != nil {
			return err
		}

		sum, present := 0.0, 0
		for _, v := range col {
			if dataframe.IsMissing(v) {
				continue
			}
			sum += v
			present++
		}
		if present == 0 {
			return xerrors.ErrAllMissing.WithContext("column", name)
		}
		means[name] = sum / float64(present)
	}

	m.means = means
	m.schema = frame.Columns()
	m.fitted = true
	logging.Debug(ctx, "mean imputer fitted", "columns", len(means))
	return nil
}

// Transform 返回填充后的新 Frame，原表不被修改。
// 输入的列集合必须与拟合时一致。
func (m *MeanImputer) Transform(ctx context.Context, frame *dataframe.Frame) (*dataframe.Frame, error) {
	if !m.fitted {
		return nil, xerrors.ErrNotFitted
	}
	if frame == nil || frame.Rows() == 0 {
		return nil, xerrors.ErrEmptyData
	}
	if !sameSchema(m.schema, frame.Columns()) {
		return nil, xerrors.ErrSchemaChanged
	}

	out := frame.Clone()
	filled := 0
	for _, name := range out.Columns() {
		mean := m.means[name]
		for i := range out.Rows() {
			v, err := out.At(i, name)
			if err != nil {
				return nil, err
			}
			if dataframe.IsMissing(v) {
				if err := out.Set(i, name, mean); err != nil {
					return nil, err
				}
				filled++
			}
		}
	}

	if filled > 0 {
		if m.metrics != nil {
			m.metrics.ImputedCells.Add(float64(filled))
		}
		logging.Debug(ctx, "missing cells imputed", "filled", filled)
	}
	return out, nil
}

// FitTransform 先拟合再填充。
func (m *MeanImputer) FitTransform(ctx context.Context, frame *dataframe.Frame) (*dataframe.Frame, error) {
	if err := m.Fit(ctx, frame); err != nil {
		return nil, err
	}
	return m.Transform(ctx, frame)
}

// Mean 返回指定列拟合出的均值。
func (m *MeanImputer) Mean(name string) (float64, error) {
	if !m.fitted {
		return 0, xerrors.ErrNotFitted
	}
	mean, ok := m.means[name]
	if !ok {
		return 0, xerrors.ErrUnknownColumn.WithContext("column", name)
	}
	return mean, nil
}

func sameSchema(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
