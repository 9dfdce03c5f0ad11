package game

import (
	"errors"

	"github.com/playcue/billiards/internal/scene"
)

// Pocket is a static capture zone with its presentation mesh.
type Pocket struct {
	Position Vec2
	mesh     scene.MeshID
}

// Table owns the fixed set of ball slots and pockets. A nil slot is empty
// (its ball was captured). The cue ball is fixed to slot 0 for the table's
// lifetime.
type Table struct {
	params      Params
	balls       [NumBalls]*Ball
	pockets     [NumPockets]Pocket
	initialized bool
}

// cueSlot is the slot of the ball the player strikes.
const cueSlot = 0

func NewTable(params Params) *Table {
	return &Table{params: params}
}

// Init creates the pocket and ball meshes and lays out the balls at their
// starting positions with zero velocity. Calling Init on an initialized
// table is a programmer error and is rejected.
func (t *Table) Init(sc scene.Scene) error {
	if t.initialized {
		return errors.New("table already initialized")
	}

	for i, p := range PocketPositions(t.params.TableWidth, t.params.TableHeight) {
		mesh := sc.CreatePocketMesh(t.params.PocketRadius)
		sc.PlaceMesh(mesh, p.X, p.Y, 0)
		t.pockets[i] = Pocket{Position: p, mesh: mesh}
	}

	for i, p := range BallLayout(t.params.TableWidth, t.params.TableHeight) {
		mesh := sc.CreateBallMesh(t.params.BallRadius)
		sc.PlaceMesh(mesh, p.X, p.Y, 0)
		t.balls[i] = NewBall(p, mesh)
	}

	t.initialized = true
	return nil
}

// Deinit destroys the pocket meshes and the meshes of any balls still on the
// table, then clears all slots.
func (t *Table) Deinit(sc scene.Scene) {
	for i := range t.pockets {
		if t.pockets[i].mesh != scene.MeshNone {
			sc.DestroyMesh(t.pockets[i].mesh)
		}
		t.pockets[i] = Pocket{}
	}
	for i, b := range t.balls {
		if b != nil {
			sc.DestroyMesh(b.Mesh())
			t.balls[i] = nil
		}
	}
	t.initialized = false
}

// CueBall returns the ball in the cue slot, or nil once it has been captured.
func (t *Table) CueBall() *Ball {
	return t.balls[cueSlot]
}

// Ball returns the ball in slot i, or nil if the slot is empty.
func (t *Table) Ball(i int) *Ball {
	return t.balls[i]
}

// Pockets returns the table's pockets.
func (t *Table) Pockets() [NumPockets]Pocket {
	return t.pockets
}

// removeBall clears slot i and destroys the ball's mesh. Used by the capture
// path; no ball is ever reintroduced once removed.
func (t *Table) removeBall(i int, sc scene.Scene) {
	if t.balls[i] == nil {
		return
	}
	sc.DestroyMesh(t.balls[i].Mesh())
	t.balls[i] = nil
}
