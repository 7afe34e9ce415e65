package rectpack

import "math"

// placement is a candidate position together with its scores. Lower scores are
// better; score1 is compared first and score2 breaks ties.
type placement struct {
	rect   Rect
	score1 int
	score2 int
}

func noPlacement() placement {
	return placement{score1: math.MaxInt, score2: math.MaxInt}
}

// better reports whether the scores s1, s2 beat the current best. Ties keep
// the earlier candidate.
func (c placement) better(s1, s2 int) bool {
	return s1 < c.score1 || (s1 == c.score1 && s2 < c.score2)
}

func (c *placement) take(free Rect, width, height int, flipped bool, s1, s2 int) {
	c.rect = NewRect(free.X, free.Y, width, height)
	c.rect.Rotated = flipped
	c.score1 = s1
	c.score2 = s2
}

// positionFunc finds the best free rectangle for a width x height item. It
// never modifies the bin.
type positionFunc func(p *MaxRectsBinPack, width, height int) placement

var positionFinders = [numHeuristics]positionFunc{
	BestShortSideFit: findPositionBestShortSideFit,
	BestLongSideFit:  findPositionBestLongSideFit,
	BestAreaFit:      findPositionBestAreaFit,
	BottomLeft:       findPositionBottomLeft,
	ContactPoint:     findPositionContactPoint,
	BestSquareFit:    findPositionBestSquareFit,
}

// leftovers returns the shorter and the longer leftover side when a w x h item
// is placed in free.
func leftovers(free Rect, w, h int) (short, long int) {
	horiz := abs(free.Width - w)
	vert := abs(free.Height - h)
	return min(horiz, vert), max(horiz, vert)
}

func fits(free Rect, w, h int) bool {
	return free.Width >= w && free.Height >= h
}

func findPositionBottomLeft(p *MaxRectsBinPack, width, height int) placement {
	best := noPlacement()
	for _, free := range p.freeRects {
		// Try to place the rectangle in upright (non-flipped) orientation.
		if fits(free, width, height) {
			if topSideY := free.Y + height; best.better(topSideY, free.X) {
				best.take(free, width, height, false, topSideY, free.X)
			}
		}
		if p.allowFlip && fits(free, height, width) {
			if topSideY := free.Y + width; best.better(topSideY, free.X) {
				best.take(free, height, width, true, topSideY, free.X)
			}
		}
	}
	return best
}

func findPositionBestShortSideFit(p *MaxRectsBinPack, width, height int) placement {
	best := noPlacement()
	for _, free := range p.freeRects {
		if fits(free, width, height) {
			short, long := leftovers(free, width, height)
			if best.better(short, long) {
				best.take(free, width, height, false, short, long)
			}
		}
		if p.allowFlip && fits(free, height, width) {
			short, long := leftovers(free, height, width)
			if best.better(short, long) {
				best.take(free, height, width, true, short, long)
			}
		}
	}
	return best
}

func findPositionBestLongSideFit(p *MaxRectsBinPack, width, height int) placement {
	best := noPlacement()
	for _, free := range p.freeRects {
		if fits(free, width, height) {
			short, long := leftovers(free, width, height)
			if best.better(long, short) {
				best.take(free, width, height, false, long, short)
			}
		}
		if p.allowFlip && fits(free, height, width) {
			short, long := leftovers(free, height, width)
			if best.better(long, short) {
				best.take(free, height, width, true, long, short)
			}
		}
	}
	return best
}

func findPositionBestAreaFit(p *MaxRectsBinPack, width, height int) placement {
	best := noPlacement()
	for _, free := range p.freeRects {
		areaFit := free.Width*free.Height - width*height

		if fits(free, width, height) {
			short, _ := leftovers(free, width, height)
			if best.better(areaFit, short) {
				best.take(free, width, height, false, areaFit, short)
			}
		}
		if p.allowFlip && fits(free, height, width) {
			short, _ := leftovers(free, height, width)
			if best.better(areaFit, short) {
				best.take(free, height, width, true, areaFit, short)
			}
		}
	}
	return best
}

// findPositionContactPoint maximises the contact score. The score is negated so
// that, like every other heuristic, lower is better.
func findPositionContactPoint(p *MaxRectsBinPack, width, height int) placement {
	best := noPlacement()
	for _, free := range p.freeRects {
		if fits(free, width, height) {
			score := -p.contactPointScoreNode(free.X, free.Y, width, height)
			if best.better(score, math.MaxInt) {
				best.take(free, width, height, false, score, math.MaxInt)
			}
		}
		if p.allowFlip && fits(free, height, width) {
			score := -p.contactPointScoreNode(free.X, free.Y, height, width)
			if best.better(score, math.MaxInt) {
				best.take(free, height, width, true, score, math.MaxInt)
			}
		}
	}
	return best
}

// findPositionBestSquareFit prefers the placement whose far corner, measured
// from the bin origin, has the smallest longer coordinate.
func findPositionBestSquareFit(p *MaxRectsBinPack, width, height int) placement {
	best := noPlacement()
	for _, free := range p.freeRects {
		if fits(free, width, height) {
			xBound, yBound := free.X+width, free.Y+height
			long, short := max(xBound, yBound), min(xBound, yBound)
			if best.better(long, short) {
				best.take(free, width, height, false, long, short)
			}
		}
		if p.allowFlip && fits(free, height, width) {
			xBound, yBound := free.X+height, free.Y+width
			long, short := max(xBound, yBound), min(xBound, yBound)
			if best.better(long, short) {
				best.take(free, height, width, true, long, short)
			}
		}
	}
	return best
}

// commonIntervalLength returns 0 if the intervals [i1start, i1end] and
// [i2start, i2end] are disjoint, or the length of their overlap otherwise.
func commonIntervalLength(i1start, i1end, i2start, i2end int) int {
	if i1end < i2start || i2end < i1start {
		return 0
	}
	return min(i1end, i2end) - max(i1start, i2start)
}

// contactPointScoreNode sums the edge lengths a rectangle at x, y would share
// with the bin border and with already placed rectangles.
func (p *MaxRectsBinPack) contactPointScoreNode(x, y, width, height int) int {
	score := 0

	if x == 0 || x+width == p.binWidth {
		score += height
	}
	if y == 0 || y+height == p.binHeight {
		score += width
	}

	for _, used := range p.packed {
		if used.X == x+width || used.Right() == x {
			score += commonIntervalLength(used.Y, used.Bottom(), y, y+height)
		}
		if used.Y == y+height || used.Bottom() == y {
			score += commonIntervalLength(used.X, used.Right(), x, x+width)
		}
	}
	return score
}
