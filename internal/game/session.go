package game

import (
	"errors"
	"log"
	"math"
	"sync"

	"github.com/playcue/billiards/internal/scene"
)

// Session is one single-table sitting: the table, the charge/strike input
// state and the presentation collaborator. The simulation itself is
// single-threaded and frame-driven; the mutex only serializes Update against
// input handlers when the host invokes them from other goroutines (the
// websocket host does).
type Session struct {
	mu     sync.Mutex
	params Params
	scene  scene.Scene
	table  *Table

	isChargingShot     bool
	shotChargeProgress float64
	initialized        bool
}

// BallState is one ball's state for the read-only snapshot surface.
type BallState struct {
	Slot      int     `json:"slot"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	VelocityX float64 `json:"velocity_x"`
	VelocityY float64 `json:"velocity_y"`
}

// Snapshot is a point-in-time copy of the live session state.
type Snapshot struct {
	Balls          []BallState `json:"balls"`
	CueSlot        int         `json:"cue_slot"`
	Charging       bool        `json:"charging"`
	ChargeProgress float64     `json:"charge_progress"`
	TableWidth     float64     `json:"table_width"`
	TableHeight    float64     `json:"table_height"`
}

func NewSession(params Params, sc scene.Scene) *Session {
	return &Session{
		params: params,
		scene:  sc,
		table:  NewTable(params),
	}
}

// Init configures the presentation layer and lays out the table. Must be
// paired with Deinit; a second Init without an intervening Deinit is
// rejected.
func (s *Session) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return errors.New("session already initialized")
	}

	s.scene.SetTargetFPS(s.params.TargetFPS)
	s.scene.SetupBackground(s.params.TableWidth, s.params.TableHeight)

	if err := s.table.Init(s.scene); err != nil {
		return err
	}

	s.isChargingShot = false
	s.shotChargeProgress = 0
	s.initialized = true
	log.Printf("[SIM] session initialized (%gx%g table, %d balls)",
		s.params.TableWidth, s.params.TableHeight, NumBalls)
	return nil
}

// Deinit releases every presentation mesh the session still owns and resets
// the charge state.
func (s *Session) Deinit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	s.table.Deinit(s.scene)
	s.isChargingShot = false
	s.shotChargeProgress = 0
	s.initialized = false
	log.Printf("[SIM] session deinitialized")
}

// Update advances the simulation by one frame of dt seconds: charge
// progress, then per ball in ascending slot order motion prediction, pocket
// capture, friction, boundary reflection, pairwise collision, and finally
// the position commit to the presentation layer.
func (s *Session) Update(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	if s.isChargingShot {
		s.shotChargeProgress = math.Min(s.shotChargeProgress+dt/s.params.ChargeTime, 1.0)
	}
	s.scene.UpdateProgressBar(s.shotChargeProgress)

	bounds := TableBounds(s.params.TableWidth, s.params.TableHeight)
	radius := s.params.BallRadius

	for i := 0; i < NumBalls; i++ {
		ball := s.table.balls[i]
		if ball == nil {
			continue
		}

		next := ball.NextPosition(dt)

		// Pocket capture removes the ball before any physics this frame;
		// later balls see the slot as empty.
		if s.capture(i, next) {
			continue
		}

		s.applyFriction(ball, dt)

		if bounds.Outside(next, radius) {
			ball.SetPosition(next)
			Ricochet(ball, bounds, radius)
			next = ball.Position()
		}

		// Collisions are checked only against higher slots so each pair is
		// resolved once per frame. The struck ball keeps its committed
		// position this frame; the collision only redirects velocities.
		for l := i + 1; l < NumBalls; l++ {
			other := s.table.balls[l]
			if other == nil {
				continue
			}
			if Distance(next, other.Position()) <= 2*radius {
				next = ball.Position()
				Collide(ball, other)
			}
		}

		ball.SetPosition(next)
		s.scene.PlaceMesh(ball.Mesh(), next.X, next.Y, 0)
	}
}

// capture removes the ball in slot i if its predicted position lies within
// any pocket's capture radius. Returns true if the ball was captured.
func (s *Session) capture(i int, predicted Vec2) bool {
	for _, p := range s.table.pockets {
		if Distance(predicted, p.Position) < s.params.PocketRadius {
			s.table.removeBall(i, s.scene)
			log.Printf("[SIM] ball %d captured at pocket (%g, %g)", i, p.Position.X, p.Position.Y)
			return true
		}
	}
	return false
}

// applyFriction decelerates the ball by frictionDeceleration*dt along its
// direction of travel, snapping to a full stop once the remaining speed is
// within the snap threshold.
func (s *Session) applyFriction(ball *Ball, dt float64) {
	vel := ball.Velocity()
	if vel.IsZero() {
		return
	}

	step := s.params.FrictionDeceleration * dt
	if vel.MagnitudeSquared() <= step*step*frictionSnapFactor {
		ball.SetVelocity(Vec2{})
		return
	}

	ball.SetVelocity(vel.Plus(vel.Normalize().Times(-step)))
}

// MouseButtonPressed starts charging a shot. Coordinates are accepted for
// interface symmetry; only the release point matters.
func (s *Session) MouseButtonPressed(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	s.isChargingShot = true
}

// MouseButtonReleased fires the charged shot: the cue ball is struck away
// from its own position toward the release point with the charged fraction
// of the strike power. Charging stops and the progress resets regardless of
// whether the strike succeeds.
func (s *Session) MouseButtonReleased(x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("session is not initialized")
	}

	progress := s.shotChargeProgress
	s.isChargingShot = false
	s.shotChargeProgress = 0

	cue := s.table.CueBall()
	if cue == nil {
		return errors.New("cue ball is not on the table")
	}

	direction := NewVec2(x, y).Minus(cue.Position())
	if direction.IsZero() {
		return errors.New("release point coincides with the cue ball")
	}

	return cue.Strike(direction, progress*s.params.StrikePower)
}

// Snapshot returns a copy of the live ball states and the charge state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Balls:          make([]BallState, 0, NumBalls),
		CueSlot:        cueSlot,
		Charging:       s.isChargingShot,
		ChargeProgress: s.shotChargeProgress,
		TableWidth:     s.params.TableWidth,
		TableHeight:    s.params.TableHeight,
	}
	for i, b := range s.table.balls {
		if b == nil {
			continue
		}
		snap.Balls = append(snap.Balls, BallState{
			Slot:      i,
			X:         b.Position().X,
			Y:         b.Position().Y,
			VelocityX: b.Velocity().X,
			VelocityY: b.Velocity().Y,
		})
	}
	return snap
}

// Params returns the session's tuning values.
func (s *Session) Params() Params {
	return s.params
}
