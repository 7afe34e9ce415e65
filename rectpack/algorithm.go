package rectpack

import "slices"

// binState 保存一个箱子的固定参数以及已放置的矩形，由 MaxRectsBinPack 嵌入。
type binState struct {
	packed    []Rect // 已放置的矩形，按放置顺序排列，只追加
	binWidth  int    // 箱子宽度
	binHeight int    // 箱子高度
	allowFlip bool   // 是否允许旋转 90 度放置
}

// reset 把箱子恢复为指定尺寸的空箱子。
func (b *binState) reset(width, height int, allowFlip bool) {
	b.binWidth = width
	b.binHeight = height
	b.allowFlip = allowFlip
	b.packed = b.packed[:0]
}

// Occupancy 返回已用面积与箱子面积之比，值在 0.0（空）到 1.0（完全利用）之间。
// 箱子面积为 0 时返回 0。
func (b *binState) Occupancy() float64 {
	binArea := b.binWidth * b.binHeight
	if binArea == 0 {
		return 0
	}
	return float64(b.UsedArea()) / float64(binArea)
}

// UsedArea 返回所有已放置矩形的面积之和。
func (b *binState) UsedArea() int {
	area := 0
	for _, rect := range b.packed {
		area += rect.Area()
	}
	return area
}

// UsedRects 返回已放置矩形的副本，按放置顺序排列。
func (b *binState) UsedRects() []Rect {
	return slices.Clone(b.packed)
}

// BinSize 返回箱子的尺寸。
func (b *binState) BinSize() Size {
	return NewSize(b.binWidth, b.binHeight)
}

// AllowFlip 返回是否允许旋转矩形。
func (b *binState) AllowFlip() bool {
	return b.allowFlip
}
