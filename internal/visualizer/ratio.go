package visualizer

import "math"

// RatioLock keeps the area's width/height relationship while locked.
// An undefined ratio is represented by NaN.
type RatioLock struct {
	locked bool
	value  float64
}

// NewRatioLock returns an unlocked lock with an undefined ratio.
func NewRatioLock() *RatioLock {
	return &RatioLock{value: math.NaN()}
}

// Locked reports whether the lock is engaged.
func (r *RatioLock) Locked() bool { return r.locked }

// Value returns the current ratio (width/height), NaN when undefined.
func (r *RatioLock) Value() float64 { return r.value }

// Defined reports whether the ratio holds a usable positive value.
func (r *RatioLock) Defined() bool { return validRatio(r.value) }

// OnWidthChanged returns the height that goes with newWidth.
func (r *RatioLock) OnWidthChanged(newWidth, currentHeight float64) float64 {
	if r.locked && r.Defined() {
		return newWidth / r.value
	}
	return currentHeight
}

// OnHeightChanged returns the width that goes with newHeight.
func (r *RatioLock) OnHeightChanged(newHeight, currentWidth float64) float64 {
	if r.locked && r.Defined() {
		return newHeight * r.value
	}
	return currentWidth
}

// OnRatioInputChanged applies a typed ratio. It returns the recomputed height
// and true when the lock is engaged and the ratio is valid.
func (r *RatioLock) OnRatioInputChanged(newRatio, currentWidth, currentHeight float64) (float64, bool) {
	if !validRatio(newRatio) {
		r.value = math.NaN()
		return currentHeight, false
	}
	r.value = newRatio
	if !r.locked {
		return currentHeight, false
	}
	return currentWidth / r.value, true
}

// OnLockToggled engages or releases the lock. Engaging captures the current
// width/height ratio, falling back to customRatio and then 1.
func (r *RatioLock) OnLockToggled(locked bool, currentWidth, currentHeight, customRatio float64) {
	r.locked = locked
	if !locked {
		return
	}
	switch {
	case currentHeight > 0 && validRatio(currentWidth/currentHeight):
		r.value = currentWidth / currentHeight
	case validRatio(customRatio):
		r.value = customRatio
	default:
		r.value = 1
	}
}

// Observe tracks width/height passively while unlocked, and re-derives an
// undefined ratio once a valid height exists.
func (r *RatioLock) Observe(width, height float64) {
	if r.locked && r.Defined() {
		return
	}
	if height > 0 && validRatio(width/height) {
		r.value = width / height
	}
}

// Invert flips the ratio, used when width and height are swapped.
func (r *RatioLock) Invert() {
	if r.Defined() {
		r.value = 1 / r.value
	}
}

func validRatio(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
