// Package diet 内置经典膳食规划示例数据集: 在营养摄入范围约束下选择总花费最低的食物组合。
// 数据集同时作为范围变体求解链路的端到端验收样例，其中一个贡献单元格刻意缺失。
package diet

import (
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/optpipe/dataframe"
)

// Item 可选条目 (食物): 名称、单价与可选数量上下界。
type Item struct {
	Name     string
	UnitCost decimal.Decimal
	Lower    float64
	Upper    float64
}

// Measure 受约束指标 (营养素): 名称与允许的聚合范围。
type Measure struct {
	Name string
	Min  float64
	Max  float64
}

// Items 返回示例食物表。单价使用 decimal 保存避免货币精度漂移。
func Items() []Item {
	return []Item{
		{Name: "Roasted Chicken", UnitCost: decimal.NewFromFloat(0.84), Lower: 0, Upper: 10},
		{Name: "Spaghetti W/ Sauce", UnitCost: decimal.NewFromFloat(0.78), Lower: 0, Upper: 10},
		{Name: "Tomato,Red,Ripe,Raw", UnitCost: decimal.NewFromFloat(0.27), Lower: 0, Upper: 10},
		{Name: "Apple,Raw,W/Skin", UnitCost: decimal.NewFromFloat(0.24), Lower: 0, Upper: 10},
		{Name: "Grapes", UnitCost: decimal.NewFromFloat(0.32), Lower: 0, Upper: 10},
		{Name: "Chocolate Chip Cookies", UnitCost: decimal.NewFromFloat(0.03), Lower: 0, Upper: 10},
		{Name: "Lowfat Milk", UnitCost: decimal.NewFromFloat(0.23), Lower: 0, Upper: 10},
		{Name: "Raisin Brn", UnitCost: decimal.NewFromFloat(0.34), Lower: 0, Upper: 10},
		{Name: "Hotdog", UnitCost: decimal.NewFromFloat(0.31), Lower: 0, Upper: 10},
	}
}

// Measures 返回示例营养素表及其允许的摄入范围。
func Measures() []Measure {
	return []Measure{
		{Name: "Calories", Min: 2000, Max: 2500},
		{Name: "Calcium", Min: 800, Max: 1600},
		{Name: "Iron", Min: 10, Max: 30},
		{Name: "Vit_A", Min: 5000, Max: 50000},
		{Name: "Dietary_Fiber", Min: 25, Max: 100},
		{Name: "Carbohydrates", Min: 0, Max: 300},
		{Name: "Protein", Min: 50, Max: 100},
	}
}

// ContributionMatrix 返回营养素 x 食物的贡献矩阵 (7 行 x 9 列)。
// 行顺序与 Measures 一致，列顺序与 Items 一致。
// Chocolate Chip Cookies 的 Dietary_Fiber 单元格刻意缺失，用于演示均值填充。
func ContributionMatrix() [][]float64 {
	return [][]float64{
		// Calories
		{277.4, 358.2, 25.8, 81.4, 15.1, 78.1, 121.2, 115.1, 242.1},
		// Calcium
		{21.9, 80.2, 6.2, 9.7, 3.4, 6.2, 296.7, 12.9, 23.5},
		// Iron
		{1.8, 2.3, 0.6, 0.2, 0.1, 0.4, 0.1, 16.8, 2.3},
		// Vit_A
		{77.4, 3055.2, 766.3, 73.1, 24, 101.8, 500.2, 1250.2, 0},
		// Dietary_Fiber
		{0, 11.6, 1.4, 3.7, 0.2, dataframe.Missing(), 0, 4, 0},
		// Carbohydrates
		{0, 58.3, 5.7, 21, 4.1, 9.3, 11.7, 27.9, 18},
		// Protein
		{42.2, 8.2, 1, 0.3, 0.2, 0.9, 8.1, 4, 10.4},
	}
}

// ItemNames 返回与矩阵列顺序一致的食物名称。
func ItemNames() []string {
	items := Items()
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return names
}

// Costs 返回与矩阵列顺序一致的单价向量。
func Costs() []float64 {
	items := Items()
	costs := make([]float64, len(items))
	for i, it := range items {
		costs[i] = it.UnitCost.InexactFloat64()
	}
	return costs
}

// UpperBounds 返回与矩阵列顺序一致的数量上界向量。
func UpperBounds() []float64 {
	items := Items()
	upper := make([]float64, len(items))
	for i, it := range items {
		upper[i] = it.Upper
	}
	return upper
}

// MeasureRanges 返回与矩阵行顺序一致的营养素上下限向量。
func MeasureRanges() (mins, maxs []float64) {
	measures := Measures()
	mins = make([]float64, len(measures))
	maxs = make([]float64, len(measures))
	for i, m := range measures {
		mins[i] = m.Min
		maxs[i] = m.Max
	}
	return mins, maxs
}
