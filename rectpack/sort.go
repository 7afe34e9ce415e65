package rectpack

import "cmp"

// SortFunc 定义矩形尺寸比较函数的原型
// 返回值:
//
//	-1: a 排在 b 前面
//	 0: 顺序不变
//	 1: a 排在 b 后面
type SortFunc func(a, b Size) int

// SortArea 按矩形面积降序排序(从大到小)
func SortArea(a, b Size) int {
	return cmp.Compare(b.Area(), a.Area())
}

// SortPerimeter 按矩形周长降序排序(从大到小)
func SortPerimeter(a, b Size) int {
	return cmp.Compare(b.Perimeter(), a.Perimeter())
}

// SortDiff 按矩形宽高差降序排序(从大到小)
func SortDiff(a, b Size) int {
	return cmp.Compare(abs(b.Width-b.Height), abs(a.Width-a.Height))
}

// SortMinSide 按矩形最短边降序排序(从大到小)
func SortMinSide(a, b Size) int {
	return cmp.Compare(b.MinSide(), a.MinSide())
}

// SortMaxSide 按矩形最长边降序排序(从大到小)
func SortMaxSide(a, b Size) int {
	return cmp.Compare(b.MaxSide(), a.MaxSide())
}

// SortRatio 按矩形宽高比降序排序(从大到小)
func SortRatio(a, b Size) int {
	return cmp.Compare(b.Ratio(), a.Ratio())
}

// SortWidth 按矩形宽度降序排序(从大到小)，在线逐个插入时图集更紧凑
func SortWidth(a, b Size) int {
	return cmp.Compare(b.Width, a.Width)
}

// SortHeight 按矩形高度降序排序(从大到小)
func SortHeight(a, b Size) int {
	return cmp.Compare(b.Height, a.Height)
}

// sortFuncs 把名称映射到排序函数，供命令行使用
var sortFuncs = map[string]SortFunc{
	"area":      SortArea,
	"perimeter": SortPerimeter,
	"diff":      SortDiff,
	"minside":   SortMinSide,
	"maxside":   SortMaxSide,
	"ratio":     SortRatio,
	"width":     SortWidth,
	"height":    SortHeight,
}

// LookupSortFunc 按名称查找排序函数，"none" 或空字符串返回 nil（保持插入顺序）
func LookupSortFunc(name string) (SortFunc, bool) {
	if name == "" || name == "none" {
		return nil, true
	}
	fn, ok := sortFuncs[name]
	return fn, ok
}
