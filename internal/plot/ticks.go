package plot

import (
	"math"
	"sort"
)

// ValueShift is how far the value axis tick nearest the highlighted point
// is pushed away from it.
const ValueShift = 0.1

const tickEpsilon = 1e-9

// AdjustTicks returns ticks with v added as a tick of its own. The existing
// tick nearest to v (ties go to the larger one) is removed when shift is 0,
// otherwise it is moved shift further away from v and kept unless it would
// then coincide with another tick. The input is not modified.
func AdjustTicks(ticks []float64, v, shift float64) []float64 {
	out := make([]float64, 0, len(ticks)+1)
	out = append(out, ticks...)
	out = append(out, v)
	sort.Float64s(out)
	if len(out) == 1 {
		return out
	}

	pos := sort.SearchFloat64s(out, v)
	dir := nearestSide(out, pos)
	neighbour := out[pos+dir]
	out = append(out[:pos+dir], out[pos+dir+1:]...)

	if shift != 0 {
		moved := neighbour + float64(dir)*shift
		if !containsTick(out, moved) {
			out = append(out, moved)
			sort.Float64s(out)
		}
	}
	return out
}

// nearestSide returns -1 when the tick before pos is strictly closer to
// out[pos] than the tick after it, +1 otherwise.
func nearestSide(out []float64, pos int) int {
	switch {
	case pos == 0:
		return 1
	case pos == len(out)-1:
		return -1
	}
	below := math.Abs(out[pos] - out[pos-1])
	above := math.Abs(out[pos+1] - out[pos])
	if below < above {
		return -1
	}
	return 1
}

func containsTick(ticks []float64, v float64) bool {
	for _, t := range ticks {
		if math.Abs(t-v) < tickEpsilon {
			return true
		}
	}
	return false
}
