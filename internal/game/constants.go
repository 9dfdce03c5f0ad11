package game

import "github.com/playcue/billiards/internal/config"

// Physics and table constants for the single-table billiards simulation.
// The reference tuning was expressed per frame at 60 FPS; friction and strike
// power here are the same values rescaled to per-second units so the
// integration is frame-rate independent.

const (
	TableWidth  = 15.0
	TableHeight = 8.0

	PocketRadius = 0.4
	BallRadius   = 0.3

	NumBalls   = 7
	NumPockets = 6

	FrictionDeceleration = 0.18 // speed lost per second (0.003/frame at 60 FPS)
	StrikePower          = 60.0 // full-charge impulse in units/second (1/frame at 60 FPS)
	ChargeTime           = 1.0  // seconds of holding for a full-power shot

	TargetFPS = 60

	// A ball slower than frictionDeceleration*dt*sqrt(1.1) stops outright
	// instead of oscillating around zero.
	frictionSnapFactor = 1.1
)

// Params collects the tunable table and physics values for one session.
type Params struct {
	TableWidth           float64
	TableHeight          float64
	PocketRadius         float64
	BallRadius           float64
	FrictionDeceleration float64
	StrikePower          float64
	ChargeTime           float64
	TargetFPS            int
}

// DefaultParams returns the reference tuning.
func DefaultParams() Params {
	return Params{
		TableWidth:           TableWidth,
		TableHeight:          TableHeight,
		PocketRadius:         PocketRadius,
		BallRadius:           BallRadius,
		FrictionDeceleration: FrictionDeceleration,
		StrikePower:          StrikePower,
		ChargeTime:           ChargeTime,
		TargetFPS:            TargetFPS,
	}
}

// ParamsFromConfig builds session params from the loaded configuration.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		TableWidth:           cfg.TableWidth,
		TableHeight:          cfg.TableHeight,
		PocketRadius:         cfg.PocketRadius,
		BallRadius:           cfg.BallRadius,
		FrictionDeceleration: cfg.FrictionDeceleration,
		StrikePower:          cfg.StrikePower,
		ChargeTime:           cfg.ChargeTime,
		TargetFPS:            cfg.TargetFPS,
	}
}

// PocketPositions returns the 6 pocket centers for a width x height table:
// the four corners plus the midpoints of the two long edges.
func PocketPositions(width, height float64) [NumPockets]Vec2 {
	return [NumPockets]Vec2{
		NewVec2(-0.5*width, -0.5*height),
		NewVec2(0, -0.5*height),
		NewVec2(0.5*width, -0.5*height),
		NewVec2(-0.5*width, 0.5*height),
		NewVec2(0, 0.5*height),
		NewVec2(0.5*width, 0.5*height),
	}
}

// BallLayout returns the 7 starting ball positions. Slot 0 is the cue ball;
// the rest form the rack on the right half of the table.
func BallLayout(width, height float64) [NumBalls]Vec2 {
	return [NumBalls]Vec2{
		NewVec2(-0.3*width, 0),
		NewVec2(0.2*width, 0),
		NewVec2(0.25*width, 0.05*height),
		NewVec2(0.25*width, -0.05*height),
		NewVec2(0.3*width, 0.1*height),
		NewVec2(0.3*width, 0),
		NewVec2(0.3*width, -0.1*height),
	}
}
