package game

import (
	"errors"

	"github.com/playcue/billiards/internal/scene"
)

// Ball is one ball's physics state plus its presentation handle.
type Ball struct {
	position Vec2
	velocity Vec2
	mesh     scene.MeshID
}

// NewBall creates a ball at rest at the given position.
func NewBall(position Vec2, mesh scene.MeshID) *Ball {
	return &Ball{position: position, mesh: mesh}
}

func (b *Ball) Position() Vec2 {
	return b.position
}

func (b *Ball) Velocity() Vec2 {
	return b.velocity
}

func (b *Ball) SetPosition(p Vec2) {
	b.position = p
}

func (b *Ball) SetVelocity(v Vec2) {
	b.velocity = v
}

func (b *Ball) Mesh() scene.MeshID {
	return b.mesh
}

// NextPosition returns where the ball will be after dt seconds of unimpeded
// motion. Pure; does not mutate the ball.
func (b *Ball) NextPosition(dt float64) Vec2 {
	return b.position.Plus(b.velocity.Times(dt))
}

// Strike adds an impulse of the given power along direction to the ball's
// current velocity. The direction must be non-zero.
func (b *Ball) Strike(direction Vec2, power float64) error {
	if direction.IsZero() {
		return errors.New("strike direction is zero")
	}
	b.velocity = b.velocity.Plus(direction.Normalize().Times(power))
	return nil
}
