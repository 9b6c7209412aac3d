// Package assemble 负责把条目-指标贡献矩阵与指标上下限向量拼装成求解器可消费的增广约束表。
package assemble

import (
	"github.com/wyfcoding/optpipe/dataframe"
	"github.com/wyfcoding/optpipe/xerrors"
)

const (
	// MinColumn 增广约束表中行下限列的列名。
	MinColumn = "min"
	// MaxColumn 增广约束表中行上限列的列名。
	MaxColumn = "max"
)

// Augment 构建增广约束表。
// matrix 为 R 行 (指标) x C 列 (条目) 的贡献矩阵，mins/maxs 为长度 R 的行上下限，
// itemNames 为长度 C 的条目列名。输出 Frame 为 R 行、C+2 列，末尾两列为 min/max。
// 任何形状不一致都是配置错误，在任何求解发生之前返回。
func Augment(matrix [][]float64, mins, maxs []float64, itemNames []string) (*dataframe.Frame, error) {
	rows := len(matrix)
	if rows == 0 || len(itemNames) == 0 {
		return nil, xerrors.ErrEmptyData
	}
	if len(mins) != rows || len(maxs) != rows {
		return nil, xerrors.ErrDimMismatch.
			WithContext("rows", rows).
			WithContext("mins", len(mins)).
			WithContext("maxs", len(maxs))
	}

	cols := len(itemNames)
	for i, row := range matrix {
		if len(row) != cols {
			return nil, xerrors.ErrRaggedMatrix.
				WithContext("row", i).
				WithContext("want", cols).
				WithContext("got", len(row))
		}
	}

	columns := make([]string, 0, cols+2)
	columns = append(columns, itemNames...)
	columns = append(columns, MinColumn, MaxColumn)

	augmented := make([][]float64, rows)
	for i, row := range matrix {
		augmented[i] = make([]float64, 0, cols+2)
		augmented[i] = append(augmented[i], row...)
		augmented[i] = append(augmented[i], mins[i], maxs[i])
	}

	return dataframe.FromMatrix(columns, augmented)
}
