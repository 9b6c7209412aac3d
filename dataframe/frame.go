// Package dataframe 提供了内存列式数值表 Frame，作为管道各阶段之间的数据载体。
// 缺失值统一使用 NaN 哨兵表示。
package dataframe

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/wyfcoding/optpipe/xerrors"
)

// Missing 返回缺失值哨兵 (NaN)。
func Missing() float64 {
	return math.NaN()
}

// IsMissing 判断单元格值是否为缺失哨兵。
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Frame 列式数值表。列有序且列名唯一，所有列等长。
type Frame struct {
	cols  []string       // 列顺序
	index map[string]int // 列名 -> 列下标
	data  [][]float64    // 列主序存储: data[j][i] 为第 i 行第 j 列
}

// New 创建一个 rows 行的零值 Frame，列顺序与传入顺序一致。
func New(columns []string, rows int) (*Frame, error) {
	if len(columns) == 0 {
		return nil, xerrors.ErrEmptyData
	}

	f := &Frame{
		cols:  slices.Clone(columns),
		index: make(map[string]int, len(columns)),
		data:  make([][]float64, len(columns)),
	}
	for j, name := range columns {
		if _, dup := f.index[name]; dup {
			return nil, xerrors.ErrDuplicateColumn.WithContext("column", name)
		}
		f.index[name] = j
		f.data[j] = make([]float64, rows)
	}
	return f, nil
}

// FromMatrix 从行主序矩阵构建 Frame。矩阵列数必须与列名个数一致，且各行等长。
func FromMatrix(columns []string, matrix [][]float64) (*Frame, error) {
	if len(matrix) == 0 {
		return nil, xerrors.ErrEmptyData
	}

	f, err := New(columns, len(matrix))
	if err != nil {
		return nil, err
	}

	for i, row := range matrix {
		if len(row) != len(columns) {
			return nil, xerrors.ErrRaggedMatrix.
				WithContext("row", i).
				WithContext("want", len(columns)).
				WithContext("got", len(row))
		}
		for j, v := range row {
			f.data[j][i] = v
		}
	}
	return f, nil
}

// FromColumns 从列名到列数据的映射构建 Frame，order 决定列顺序。各列必须等长。
func FromColumns(order []string, columns map[string][]float64) (*Frame, error) {
	if len(order) == 0 {
		return nil, xerrors.ErrEmptyData
	}

	rows := -1
	for _, name := range order {
		col, ok := columns[name]
		if !ok {
			return nil, xerrors.ErrUnknownColumn.WithContext("column", name)
		}
		if rows == -1 {
			rows = len(col)
		} else if len(col) != rows {
			return nil, xerrors.ErrDimMismatch.WithContext("column", name)
		}
	}

	f, err := New(order, rows)
	if err != nil {
		return nil, err
	}
	for _, name := range order {
		copy(f.data[f.index[name]], columns[name])
	}
	return f, nil
}

// Rows 返回行数。
func (f *Frame) Rows() int {
	if len(f.data) == 0 {
		return 0
	}
	return len(f.data[0])
}

// Cols 返回列数。
func (f *Frame) Cols() int {
	return len(f.cols)
}

// Columns 返回列名切片的副本，顺序与存储顺序一致。
func (f *Frame) Columns() []string {
	return slices.Clone(f.cols)
}

// HasColumn 判断列是否存在。
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Column 返回指定列数据的副本。
func (f *Frame) Column(name string) ([]float64, error) {
	j, ok := f.index[name]
	if !ok {
		return nil, xerrors.ErrUnknownColumn.WithContext("column", name)
	}
	return slices.Clone(f.data[j]), nil
}

// At 读取第 row 行 name 列的单元格。
func (f *Frame) At(row int, name string) (float64, error) {
	j, ok := f.index[name]
	if !ok {
		return 0, xerrors.ErrUnknownColumn.WithContext("column", name)
	}
	if row < 0 || row >= len(f.data[j]) {
		return 0, xerrors.InvalidArg("row index out of range").WithContext("row", row)
	}
	return f.data[j][row], nil
}

// Set 写入第 row 行 name 列的单元格。
func (f *Frame) Set(row int, name string, v float64) error {
	j, ok := f.index[name]
	if !ok {
		return xerrors.ErrUnknownColumn.WithContext("column", name)
	}
	if row < 0 || row >= len(f.data[j]) {
		return xerrors.InvalidArg("row index out of range").WithContext("row", row)
	}
	f.data[j][row] = v
	return nil
}

// MissingCount 统计指定列的缺失单元格数量。
func (f *Frame) MissingCount(name string) (int, error) {
	j, ok := f.index[name]
	if !ok {
		return 0, xerrors.ErrUnknownColumn.WithContext("column", name)
	}
	count := 0
	for _, v := range f.data[j] {
		if IsMissing(v) {
			count++
		}
	}
	return count, nil
}

// Clone 深拷贝整个 Frame。
func (f *Frame) Clone() *Frame {
	out := &Frame{
		cols:  slices.Clone(f.cols),
		index: make(map[string]int, len(f.cols)),
		data:  make([][]float64, len(f.data)),
	}
	for name, j := range f.index {
		out.index[name] = j
	}
	for j, col := range f.data {
		out.data[j] = slices.Clone(col)
	}
	return out
}

// Select 按给定列名投影出一个新 Frame，列顺序与 names 一致。
func (f *Frame) Select(names ...string) (*Frame, error) {
	out, err := New(names, f.Rows())
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		j, ok := f.index[name]
		if !ok {
			return nil, xerrors.ErrUnknownColumn.WithContext("column", name)
		}
		copy(out.data[out.index[name]], f.data[j])
	}
	return out, nil
}

// ToDense 将 Frame 转换为 gonum 行主序稠密矩阵。
func (f *Frame) ToDense() *mat.Dense {
	rows, cols := f.Rows(), f.Cols()
	d := mat.NewDense(rows, cols, nil)
	for j, col := range f.data {
		for i, v := range col {
			d.Set(i, j, v)
		}
	}
	return d
}

// FromDense 从 gonum 稠密矩阵构建 Frame，矩阵列数必须与列名个数一致。
func FromDense(columns []string, d *mat.Dense) (*Frame, error) {
	rows, cols := d.Dims()
	if cols != len(columns) {
		return nil, xerrors.ErrDimMismatch.
			WithContext("want", len(columns)).
			WithContext("got", cols)
	}

	f, err := New(columns, rows)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		for j := range cols {
			f.data[j][i] = d.At(i, j)
		}
	}
	return f, nil
}
