package game

// Stateless collision and boundary resolution. Both functions operate on
// ball entities already placed at their tested positions; neither allocates
// nor touches the presentation layer.

// Bounds is the rectangular playing surface, centered on the origin.
type Bounds struct {
	HalfWidth  float64
	HalfHeight float64
}

// TableBounds returns the bounds for a width x height table.
func TableBounds(width, height float64) Bounds {
	return Bounds{HalfWidth: 0.5 * width, HalfHeight: 0.5 * height}
}

// Outside reports whether a ball of the given radius at p extends past any
// table edge.
func (bd Bounds) Outside(p Vec2, radius float64) bool {
	return p.X+radius > bd.HalfWidth ||
		p.X-radius < -bd.HalfWidth ||
		p.Y+radius > bd.HalfHeight ||
		p.Y-radius < -bd.HalfHeight
}

// Ricochet reflects a ball whose circular extent crosses a table edge: the
// penetrating coordinate is mirrored back across the boundary by twice the
// penetration depth and the velocity component along that axis is negated.
// The four edges are checked independently, so a corner hit reflects both
// axes in one call. Penetration is assumed small relative to the ball
// radius, which holds because the check runs every frame.
func Ricochet(b *Ball, bounds Bounds, radius float64) {
	x, y := b.Position().X, b.Position().Y
	vx, vy := b.Velocity().X, b.Velocity().Y

	if x+radius > bounds.HalfWidth {
		diff := x + radius - bounds.HalfWidth
		x -= 2 * diff
		vx = -vx
	}
	if x-radius < -bounds.HalfWidth {
		diff := -bounds.HalfWidth - x + radius
		x += 2 * diff
		vx = -vx
	}
	if y+radius > bounds.HalfHeight {
		diff := y + radius - bounds.HalfHeight
		y -= 2 * diff
		vy = -vy
	}
	if y-radius < -bounds.HalfHeight {
		diff := -bounds.HalfHeight - y + radius
		y += 2 * diff
		vy = -vy
	}

	b.SetPosition(NewVec2(x, y))
	b.SetVelocity(NewVec2(vx, vy))
}

// Collide applies an equal-mass elastic collision response to two
// overlapping balls: the velocity components along the guide vector (center
// of b1 to center of b2) are exchanged, tangential components are untouched.
// Positions are not separated; overlapping balls may interpenetrate visually
// for one frame. Coincident centers have no response axis and are left
// unchanged.
func Collide(b1, b2 *Ball) {
	guide := b2.Position().Minus(b1.Position())
	if guide.IsZero() {
		return
	}

	g1 := b1.Velocity().ProjectOnto(guide)
	g2 := b2.Velocity().ProjectOnto(guide)

	b1.SetVelocity(b1.Velocity().Minus(g1).Plus(g2))
	b2.SetVelocity(b2.Velocity().Plus(g1).Minus(g2))
}
