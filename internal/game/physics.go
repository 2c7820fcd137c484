package game

import "github.com/vovakirdan/hitcircle/internal/core"

// Integrate advances the ball by one fixed step.
func Integrate(b *Ball) {
	if !b.Active() {
		return
	}
	b.Pos = b.Pos.Add(b.Vel)
}

// ResolveWall reflects the ball off the side walls and the ceiling.
// The floor is open. Reflection is perfectly elastic and does not count as
// a bounce for gravity purposes.
func ResolveWall(b *Ball, fieldW float64) (side, top bool) {
	if !b.Active() {
		return false, false
	}
	if b.Pos.X+b.Radius > fieldW || b.Pos.X-b.Radius < 0 {
		b.Vel.X = -b.Vel.X
		side = true
	}
	if b.Top() < 0 {
		b.Vel.Y = -b.Vel.Y
		top = true
	}
	return side, top
}

// PaddleContact reports whether the ball's lower edge is past the paddle top
// while its centre lies strictly within the paddle's horizontal extent.
// There is no depth correction: a fast ball may be tested well below the
// paddle plane.
func PaddleContact(b *Ball, paddle core.Rect) bool {
	if !b.Active() {
		return false
	}
	return b.Bottom() > paddle.Y && b.Pos.X > paddle.X && b.Pos.X < paddle.Right()
}

// Overlapping reports whether two active balls intersect.
func Overlapping(a, b *Ball) bool {
	if !a.Active() || !b.Active() {
		return false
	}
	return a.Pos.Dist(b.Pos) < a.Radius+b.Radius
}

// ResolveBallBall applies the impulse exchange between two overlapping balls.
// Squared radii act as masses. Pairs that are already separating, or whose
// centres coincide, are left untouched. Reports whether the balls overlap.
func ResolveBallBall(a, b *Ball) bool {
	if !Overlapping(a, b) {
		return false
	}

	delta := b.Pos.Sub(a.Pos)
	dist := delta.Len()
	if dist == 0 {
		return true
	}
	n := delta.Scale(1 / dist)

	closing := a.Vel.Sub(b.Vel).Dot(n)
	if closing <= 0 {
		return true
	}

	ra2 := a.Radius * a.Radius
	rb2 := b.Radius * b.Radius
	impulse := 2 * closing / (ra2 + rb2)

	a.Vel = a.Vel.Sub(n.Scale(impulse * rb2))
	b.Vel = b.Vel.Add(n.Scale(impulse * ra2))
	return true
}

// ApplyGravity adds a constant downward acceleration.
func ApplyGravity(b *Ball, g float64) {
	if !b.Active() {
		return
	}
	b.Vel.Y += g
}
