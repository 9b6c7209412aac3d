package pipeline

import (
	"github.com/wyfcoding/optpipe/dataframe"
	"github.com/wyfcoding/optpipe/xerrors"
)

// Solution 解表: 每个条目一行 {名称, 最优数量}，外加整体目标函数值。
// 解表每次求解重新产出，不做持久化。
type Solution struct {
	Names     []string  // 条目名称，顺序与求解时的值列顺序一致
	Values    []float64 // 每个条目的最优决策量
	Objective float64   // 目标函数值
}

// Value 按名称取条目的最优决策量。
func (s *Solution) Value(name string) (float64, error) {
	for i, n := range s.Names {
		if n == name {
			return s.Values[i], nil
		}
	}
	return 0, xerrors.ErrUnknownColumn.WithContext("column", name)
}

// Frame 把解表转为单行 Frame，列名为条目名称，便于继续走数据管道。
func (s *Solution) Frame() (*dataframe.Frame, error) {
	return dataframe.FromMatrix(s.Names, [][]float64{s.Values})
}
