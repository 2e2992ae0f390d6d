package calculator

import "math"

// window is a fixed-size sliding accumulator over the last N values.
// Push and Mean are O(1) amortized; the running sum only tracks finite values
// so a NaN or Inf leaving the window does not poison later results. The sum
// is rebuilt from the buffer when it overflows or an eviction cancels most of it.
type window struct {
	buf       []float64
	idx       int // next write position
	count     int
	sum       float64 // finite values only
	nonZero   int     // finite, non-zero values in buf
	nonFinite int
}

func newWindow(size int) *window {
	return &window{buf: make([]float64, size)}
}

// cancelTol is the residual-to-evicted magnitude ratio below which the
// running sum is considered to have lost precision.
const cancelTol = 1e-6

func (w *window) push(v float64) {
	resum := false
	if w.count == len(w.buf) {
		resum = w.evict(w.buf[w.idx])
	} else {
		w.count++
	}
	w.buf[w.idx] = v
	if isFinite(v) {
		w.sum += v
		if v != 0 {
			w.nonZero++
		}
	} else {
		w.nonFinite++
	}
	w.idx = (w.idx + 1) % len(w.buf)
	if resum || !isFinite(w.sum) {
		w.sum = w.finiteSum()
	}
}

// evict removes old from the running sum and reports whether the sum must be
// rebuilt.
func (w *window) evict(old float64) bool {
	if !isFinite(old) {
		w.nonFinite--
		return false
	}
	w.sum -= old
	if old != 0 {
		w.nonZero--
	}
	if w.nonZero == 0 {
		// Only zeros left; drop accumulated rounding error.
		w.sum = 0
		return false
	}
	return !isFinite(w.sum) || math.Abs(w.sum) < math.Abs(old)*cancelTol
}

func (w *window) finiteSum() float64 {
	var s float64
	for i := 0; i < w.count; i++ {
		if isFinite(w.buf[i]) {
			s += w.buf[i]
		}
	}
	return s
}

func (w *window) full() bool { return w.count == len(w.buf) && len(w.buf) > 0 }

func (w *window) mean() float64 {
	if w.count == 0 {
		return math.NaN()
	}
	if w.nonFinite > 0 {
		var s float64
		for i := 0; i < w.count; i++ {
			s += w.buf[i]
		}
		return s / float64(w.count)
	}
	return w.sum / float64(w.count)
}

// stddev returns the sample standard deviation (ddof=1) of the window.
func (w *window) stddev() float64 {
	if w.count < 2 {
		return math.NaN()
	}
	lo, hi := w.buf[0], w.buf[0]
	for i := 1; i < w.count; i++ {
		lo = math.Min(lo, w.buf[i])
		hi = math.Max(hi, w.buf[i])
	}
	if lo == hi {
		return 0
	}
	m := w.mean()
	var ss float64
	for i := 0; i < w.count; i++ {
		d := w.buf[i] - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(w.count-1))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
