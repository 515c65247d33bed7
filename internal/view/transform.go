package view

// Zoom scale bounds, matching the usual interactive range for medium
// topologies.
const (
	MinScale = 0.1
	MaxScale = 8.0
)

// Transform is the viewport affine: screen = world*K + (TX, TY).
type Transform struct {
	K  float64 `json:"k"`
	TX float64 `json:"tx"`
	TY float64 `json:"ty"`
}

// IdentityTransform returns the untransformed viewport.
func IdentityTransform() Transform {
	return Transform{K: 1}
}

// Apply maps a world coordinate to screen space.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return x*t.K + t.TX, y*t.K + t.TY
}

// Invert maps a screen coordinate back to world space.
func (t Transform) Invert(x, y float64) (float64, float64) {
	return (x - t.TX) / t.K, (y - t.TY) / t.K
}

// Pan shifts the viewport by a screen-space delta.
func (t Transform) Pan(dx, dy float64) Transform {
	t.TX += dx
	t.TY += dy
	return t
}

// ZoomBy scales the viewport by factor about a screen-space anchor, so the
// world point under the anchor stays under it. The resulting scale is
// clamped to [MinScale, MaxScale].
func (t Transform) ZoomBy(factor, ax, ay float64) Transform {
	k := t.K * factor
	if k < MinScale {
		k = MinScale
	}
	if k > MaxScale {
		k = MaxScale
	}
	wx, wy := t.Invert(ax, ay)
	t.K = k
	t.TX = ax - wx*k
	t.TY = ay - wy*k
	return t
}
