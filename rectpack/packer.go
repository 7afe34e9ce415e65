package rectpack

import (
	"fmt"
	"slices"
)

// DefaultSize 定义了矩形包装器的默认最大宽度/高度值，
// 基于现代GPU的最大纹理尺寸。如果这个库不是用于创建纹理图集，
// 那么这个值除了提供一个合理的起点外没有特殊意义。
const DefaultSize = 4096

// Packer 在 MaxRectsBinPack 之上提供排序、间距以及在线/离线两种打包方式。
type Packer struct {
	// bin 是实际执行打包的引擎
	bin *MaxRectsBinPack

	// heuristic 是放置矩形时使用的启发式规则
	heuristic Heuristic

	// unpacked 包含尚未包装或无法包装的尺寸
	unpacked []Size

	// packed 包含已包装的矩形（已移除间距），按放置顺序排列
	packed []Rect

	// sortFunc 定义离线打包前用于比较尺寸大小的函数
	//
	// 默认值：SortArea
	sortFunc SortFunc

	// sortRev 表示是否启用反向排序
	//
	// 默认值：false
	sortRev bool

	// padding 定义矩形右侧和下方预留的空隙大小。值为0或负数
	// 表示矩形将被紧密排列
	//
	// 默认值：0
	padding int

	// Online 表示矩形是否应该在插入时立即包装(在线模式)，
	// 或者只是收集起来等待 Pack 时批量打包(离线模式)
	//
	// 在线/离线模式有以下权衡：
	//
	// * 在线包装更快，每个矩形只与空闲矩形比较一次，
	//   但放置顺序由调用者决定，结果通常较差
	// * 离线包装每放置一个矩形都会重新评估所有待打包的矩形，
	//   由算法自行决定放置顺序
	//
	// 默认值：false
	Online bool
}

// NewPacker 创建并初始化一个新的矩形包装器
// 参数:
//
//	maxWidth - 包装区域的宽度(必须大于0)
//	maxHeight - 包装区域的高度(必须大于0)
//	heuristic - 放置启发式规则
//
// 返回:
//
//	*Packer - 初始化成功的包装器实例
//	error - 如果参数无效则返回错误
func NewPacker(maxWidth, maxHeight int, heuristic Heuristic) (*Packer, error) {
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("width and height must be greater than 0 (given %vx%v)", maxWidth, maxHeight)
	}
	if !heuristic.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownHeuristic, heuristic)
	}
	return &Packer{
		bin:       NewMaxRectsBinPack(maxWidth, maxHeight, false),
		heuristic: heuristic,
		sortFunc:  SortArea,
	}, nil
}

// NewDefaultPacker 创建使用默认配置的包装器
// 默认配置:
//   - 最大尺寸: DefaultSize (4096x4096)
//   - 规则: BestShortSideFit
func NewDefaultPacker() *Packer {
	packer, _ := NewPacker(DefaultSize, DefaultSize, BestShortSideFit)
	return packer
}

// Heuristic 返回包装器使用的启发式规则。
func (p *Packer) Heuristic() Heuristic {
	return p.heuristic
}

// Bin 返回底层的打包引擎，可用于查询空闲矩形。
func (p *Packer) Bin() *MaxRectsBinPack {
	return p.bin
}

// Size 计算包含所有已包装矩形（含间距）所需的最小尺寸
func (p *Packer) Size() Size {
	var size Size
	for _, rect := range p.packed {
		size.Width = max(size.Width, rect.Right()+max(p.padding, 0))
		size.Height = max(size.Height, rect.Bottom()+max(p.padding, 0))
	}
	return size
}

// Insert 向包装器中插入多个尺寸
// 在线模式下会立即逐个包装并返回放不下的尺寸，离线模式下只是暂存尺寸并返回暂存列表
func (p *Packer) Insert(sizes ...Size) []Size {
	if !p.Online {
		p.unpacked = append(p.unpacked, sizes...)
		return p.unpacked
	}
	var failed []Size
	for _, size := range sizes {
		if !p.insertOnline(size) {
			failed = append(failed, size)
		}
	}
	p.unpacked = append(p.unpacked, failed...)
	return failed
}

// InsertSize 向包装器中插入指定ID和尺寸的矩形
// 返回是否插入/包装成功（离线模式下总是成功）
func (p *Packer) InsertSize(id, width, height int) bool {
	result := p.Insert(NewSizeID(id, width, height))
	return !p.Online || len(result) == 0
}

func (p *Packer) insertOnline(size Size) bool {
	padSize(&size, p.padding)
	rect := p.bin.Insert(size.Width, size.Height, p.heuristic)
	if rect.IsSentinel() {
		return false
	}
	rect.ID = size.ID
	unpadRect(&rect, p.padding)
	p.packed = append(p.packed, rect)
	return true
}

// Sorter 设置离线打包时使用的排序函数和排序顺序
// 参数:
//
//	compare - 用于比较两个尺寸大小的函数，nil 表示保持插入顺序
//	reverse - 是否启用反向排序
//
// 默认比较函数为 SortArea
func (p *Packer) Sorter(compare SortFunc, reverse bool) {
	p.sortFunc = compare
	p.sortRev = reverse
}

// SetPadding 设置矩形之间的间距，必须在打包之前设置。
func (p *Packer) SetPadding(padding int) {
	p.padding = padding
}

// Rects 获取所有已成功包装的矩形的副本
func (p *Packer) Rects() []Rect {
	return slices.Clone(p.packed)
}

// Unpacked 获取所有暂存但未包装的矩形尺寸
// 返回:
//
//	未包装尺寸的切片(由内部管理，如需修改请复制)
func (p *Packer) Unpacked() []Size {
	return p.unpacked
}

// Used 计算当前空间利用率
// 参数:
//
//	current - true:相对于 Size() 计算使用率 false:相对于整个箱子计算使用率
//
// 两种情况都只计算矩形本身的面积，不包括间距
//
// 返回:
//
//	空间利用率(0.0-1.0)
func (p *Packer) Used(current bool) float64 {
	size := p.Size()
	if !current {
		size = p.bin.BinSize()
	}
	if size.Area() == 0 {
		return 0
	}
	area := 0
	for _, rect := range p.packed {
		area += rect.Area()
	}
	return float64(area) / float64(size.Area())
}

// sourceSize 返回放置前的尺寸（撤销旋转）。
func sourceSize(rect Rect) Size {
	size := NewSizeID(rect.ID, rect.Width, rect.Height)
	if rect.Rotated {
		size.Width, size.Height = size.Height, size.Width
	}
	return size
}

// Map 创建矩形ID到矩形对象的映射
func (p *Packer) Map() map[int]Rect {
	mapping := make(map[int]Rect, len(p.packed))
	for _, rect := range p.packed {
		mapping[rect.ID] = rect
	}
	return mapping
}

// Clear 重置包装器状态(保留配置)
// 清除所有已包装和暂存的矩形
func (p *Packer) Clear() {
	size := p.bin.BinSize()
	p.bin.Init(size.Width, size.Height, p.bin.AllowFlip())
	p.packed = p.packed[:0]
	p.unpacked = p.unpacked[:0]
}

// Pack 尝试打包所有暂存的矩形
// 返回:
//
//	true: 全部打包成功 false: 部分失败(可通过Unpacked获取失败尺寸)
func (p *Packer) Pack() bool {
	if len(p.unpacked) == 0 {
		return true
	}
	if p.sortFunc != nil {
		if p.sortRev {
			slices.SortStableFunc(p.unpacked, func(a, b Size) int {
				return p.sortFunc(b, a)
			})
		} else {
			slices.SortStableFunc(p.unpacked, p.sortFunc)
		}
	} else if p.sortRev {
		slices.Reverse(p.unpacked)
	}

	if p.Online {
		pending := p.unpacked
		p.unpacked = nil
		p.Insert(pending...)
		return len(p.unpacked) == 0
	}

	sizes := slices.Clone(p.unpacked)
	for i := range sizes {
		padSize(&sizes[i], p.padding)
	}
	placed := p.bin.InsertSizes(sizes, p.heuristic)

	done := make(map[Size]int, len(placed))
	for _, rect := range placed {
		unpadRect(&rect, p.padding)
		p.packed = append(p.packed, rect)
		done[sourceSize(rect)]++
	}

	// InsertSizes 只返回放下的矩形，按 ID 和原始尺寸找回没有放下的尺寸
	failed := p.unpacked[:0]
	for _, size := range p.unpacked {
		if done[size] > 0 {
			done[size]--
			continue
		}
		failed = append(failed, size)
	}
	p.unpacked = failed
	return len(failed) == 0
}

// RepackAll 清空箱子后重新打包所有已包装和暂存的矩形
// 适用场景:
//  1. 多次在线打包后用离线方式优化空间利用率
//  2. 修改配置后重新应用
//
// 返回:
//
//	同Pack()方法
func (p *Packer) RepackAll() bool {
	sizes := make([]Size, 0, len(p.packed)+len(p.unpacked))
	for _, rect := range p.packed {
		sizes = append(sizes, sourceSize(rect))
	}
	sizes = append(sizes, p.unpacked...)

	p.Clear()
	p.unpacked = sizes
	online := p.Online
	p.Online = false
	defer func() { p.Online = online }()
	return p.Pack()
}

// AllowRotate 设置是否允许矩形旋转以优化布局，会清空当前箱子
// 参数:
//
//	enabled - true:允许旋转 false:禁止旋转
//
// 默认值: false
func (p *Packer) AllowRotate(enabled bool) {
	size := p.bin.BinSize()
	p.bin.Init(size.Width, size.Height, enabled)
	p.packed = p.packed[:0]
}
