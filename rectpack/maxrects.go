package rectpack

import (
	"math"
	"slices"

	"k8s.io/klog/v2"
)

// MaxRectsBinPack packs rectangles into a single fixed-size bin using the
// MAXRECTS data structure: the free space of the bin is tracked as a list of
// maximal free rectangles, which may overlap each other.
//
// A MaxRectsBinPack is not safe for concurrent use. Independent instances share
// no state.
type MaxRectsBinPack struct {
	binState
	freeRects []Rect
}

// NewMaxRectsBinPack returns an empty bin of width x height units. If allowFlip
// is set, items may be rotated by 90 degrees when that gives a better placement.
func NewMaxRectsBinPack(width, height int, allowFlip bool) *MaxRectsBinPack {
	var p MaxRectsBinPack
	p.Init(width, height, allowFlip)
	return &p
}

// Init (re)initializes the packer to an empty bin of width x height units.
// Dimensions are not validated.
func (p *MaxRectsBinPack) Init(width, height int, allowFlip bool) {
	p.binState.reset(width, height, allowFlip)
	p.freeRects = append(p.freeRects[:0], NewRect(0, 0, width, height))
}

// Insert places a single width x height item using the given heuristic and
// returns where it went. If it does not fit, the returned Rect has a zero
// Height (see Rect.IsSentinel) and the bin is left untouched.
func (p *MaxRectsBinPack) Insert(width, height int, method Heuristic) Rect {
	best := p.scoreRect(width, height, method)
	if best.rect.IsSentinel() {
		klog.V(4).Infof("maxrects: %dx%d does not fit (%v)", width, height, method)
		return best.rect
	}
	p.placeRect(best.rect)
	klog.V(4).Infof("maxrects: placed %dx%d at %v (%v, occupancy %.3f)",
		width, height, best.rect.Point, method, p.Occupancy())
	return best.rect
}

// InsertSizes places as many of sizes as possible. Instead of honouring the
// order of sizes, each step places the item whose best placement has the lowest
// score, then re-scores the rest against the new free space. Items that never
// fit are left out of the result; the caller's slice is not modified.
//
// The returned rectangles are in placement order and carry the ID of the size
// they were created from.
func (p *MaxRectsBinPack) InsertSizes(sizes []Size, method Heuristic) []Rect {
	pending := slices.Clone(sizes)
	dst := make([]Rect, 0, len(pending))

	for len(pending) > 0 {
		bestScore1 := math.MaxInt
		bestScore2 := math.MaxInt
		bestIndex := -1
		var bestNode Rect

		for i, size := range pending {
			cand := p.scoreRect(size.Width, size.Height, method)
			if cand.rect.IsSentinel() {
				continue
			}
			if cand.score1 < bestScore1 || (cand.score1 == bestScore1 && cand.score2 < bestScore2) {
				bestScore1 = cand.score1
				bestScore2 = cand.score2
				bestNode = cand.rect
				bestNode.ID = size.ID
				bestIndex = i
			}
		}

		if bestIndex == -1 {
			klog.V(4).Infof("maxrects: %d of %d items do not fit (%v)", len(pending), len(sizes), method)
			break
		}

		p.placeRect(bestNode)
		dst = append(dst, bestNode)
		pending = slices.Delete(pending, bestIndex, bestIndex+1)
	}
	return dst
}

// TryInsert reports where Insert would place a width x height item and with
// which scores, without changing the bin. Lower scores are better.
func (p *MaxRectsBinPack) TryInsert(width, height int, method Heuristic) (Rect, int, int) {
	best := p.scoreRect(width, height, method)
	return best.rect, best.score1, best.score2
}

// FreeRects returns a copy of the current free rectangle list.
func (p *MaxRectsBinPack) FreeRects() []Rect {
	return slices.Clone(p.freeRects)
}

// LogState dumps the used and free rectangle lists at the given verbosity.
func (p *MaxRectsBinPack) LogState(level klog.Level) {
	v := klog.V(level)
	if !v.Enabled() {
		return
	}
	v.Infof("maxrects: bin %dx%d flip=%v occupancy=%.3f", p.binWidth, p.binHeight, p.allowFlip, p.Occupancy())
	for i, r := range p.packed {
		v.Infof("maxrects:  used[%d] %v id=%d rotated=%v", i, r, r.ID, r.Rotated)
	}
	for i, r := range p.freeRects {
		v.Infof("maxrects:  free[%d] %v", i, r)
	}
}

// scoreRect is the single scoring entry point for both insertion paths.
// A placement that does not fit carries MaxInt scores.
func (p *MaxRectsBinPack) scoreRect(width, height int, method Heuristic) placement {
	if !method.Valid() {
		return noPlacement()
	}
	best := positionFinders[method](p, width, height)
	if best.rect.IsSentinel() {
		return noPlacement()
	}
	return best
}

// placeRect splits every free rectangle that node overlaps, prunes the free
// list and records node as used.
func (p *MaxRectsBinPack) placeRect(node Rect) {
	// Only the rectangles present before the split are tested; splits are
	// appended behind them.
	n := len(p.freeRects)
	for i := 0; i < n; {
		if p.splitFreeNode(p.freeRects[i], node) {
			p.freeRects = slices.Delete(p.freeRects, i, i+1)
			n--
			continue
		}
		i++
	}

	p.pruneFreeList()
	p.packed = append(p.packed, node)
}

// splitFreeNode appends the parts of freeNode not covered by usedNode to the
// free list. It returns false if the two do not intersect; otherwise freeNode is
// obsolete and must be removed by the caller, even when nothing was appended.
func (p *MaxRectsBinPack) splitFreeNode(freeNode, usedNode Rect) bool {
	// Test with SAT if the rectangles even intersect.
	if usedNode.X >= freeNode.Right() || usedNode.Right() <= freeNode.X ||
		usedNode.Y >= freeNode.Bottom() || usedNode.Bottom() <= freeNode.Y {
		return false
	}

	if usedNode.X < freeNode.Right() && usedNode.Right() > freeNode.X {
		// New node at the top side of the used node.
		if usedNode.Y > freeNode.Y && usedNode.Y < freeNode.Bottom() {
			newNode := freeNode
			newNode.Height = usedNode.Y - newNode.Y
			p.freeRects = append(p.freeRects, newNode)
		}

		// New node at the bottom side of the used node.
		if usedNode.Bottom() < freeNode.Bottom() {
			newNode := freeNode
			newNode.Y = usedNode.Bottom()
			newNode.Height = freeNode.Bottom() - usedNode.Bottom()
			p.freeRects = append(p.freeRects, newNode)
		}
	}

	if usedNode.Y < freeNode.Bottom() && usedNode.Bottom() > freeNode.Y {
		// New node at the left side of the used node.
		if usedNode.X > freeNode.X && usedNode.X < freeNode.Right() {
			newNode := freeNode
			newNode.Width = usedNode.X - newNode.X
			p.freeRects = append(p.freeRects, newNode)
		}

		// New node at the right side of the used node.
		if usedNode.Right() < freeNode.Right() {
			newNode := freeNode
			newNode.X = usedNode.Right()
			newNode.Width = freeNode.Right() - usedNode.Right()
			p.freeRects = append(p.freeRects, newNode)
		}
	}

	return true
}

// pruneFreeList removes every free rectangle that is contained in another one.
func (p *MaxRectsBinPack) pruneFreeList() {
	for i := 0; i < len(p.freeRects); i++ {
		for j := i + 1; j < len(p.freeRects); j++ {
			if p.freeRects[j].ContainsRect(p.freeRects[i]) {
				p.freeRects = slices.Delete(p.freeRects, i, i+1)
				i--
				break
			}
			if p.freeRects[i].ContainsRect(p.freeRects[j]) {
				p.freeRects = slices.Delete(p.freeRects, j, j+1)
				j--
			}
		}
	}
}
