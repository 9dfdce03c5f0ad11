package game

import (
	"math"
	"testing"

	"github.com/playcue/billiards/internal/scene"
)

// fakeScene records every presentation call for assertions.
type fakeScene struct {
	nextID      scene.MeshID
	ballMeshes  []scene.MeshID
	pocketMesh  []scene.MeshID
	placed      map[scene.MeshID]Vec2
	destroyed   map[scene.MeshID]int
	progress    []float64
	fps         int
	bgW, bgH    float64
	backgrounds int
}

func newFakeScene() *fakeScene {
	return &fakeScene{
		placed:    make(map[scene.MeshID]Vec2),
		destroyed: make(map[scene.MeshID]int),
	}
}

func (f *fakeScene) CreateBallMesh(radius float64) scene.MeshID {
	f.nextID++
	f.ballMeshes = append(f.ballMeshes, f.nextID)
	return f.nextID
}

func (f *fakeScene) CreatePocketMesh(radius float64) scene.MeshID {
	f.nextID++
	f.pocketMesh = append(f.pocketMesh, f.nextID)
	return f.nextID
}

func (f *fakeScene) PlaceMesh(id scene.MeshID, x, y, z float64) {
	f.placed[id] = NewVec2(x, y)
}

func (f *fakeScene) DestroyMesh(id scene.MeshID) {
	f.destroyed[id]++
}

func (f *fakeScene) SetupBackground(width, height float64) {
	f.bgW, f.bgH = width, height
	f.backgrounds++
}

func (f *fakeScene) SetTargetFPS(fps int) {
	f.fps = fps
}

func (f *fakeScene) UpdateProgressBar(progress float64) {
	f.progress = append(f.progress, progress)
}

func newTestSession(t *testing.T, params Params) (*Session, *fakeScene) {
	t.Helper()
	fs := newFakeScene()
	s := NewSession(params, fs)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return s, fs
}

const frameDT = 1.0 / 60.0

func TestInitLaysOutTable(t *testing.T) {
	s, fs := newTestSession(t, DefaultParams())

	if len(fs.ballMeshes) != NumBalls {
		t.Errorf("ball meshes = %d, want %d", len(fs.ballMeshes), NumBalls)
	}
	if len(fs.pocketMesh) != NumPockets {
		t.Errorf("pocket meshes = %d, want %d", len(fs.pocketMesh), NumPockets)
	}
	if fs.bgW != TableWidth || fs.bgH != TableHeight {
		t.Errorf("background = %gx%g, want %gx%g", fs.bgW, fs.bgH, TableWidth, TableHeight)
	}
	if fs.fps != TargetFPS {
		t.Errorf("fps = %d, want %d", fs.fps, TargetFPS)
	}

	cue := s.table.CueBall()
	if cue == nil {
		t.Fatal("no cue ball after init")
	}
	if got, want := cue.Position(), NewVec2(-0.3*TableWidth, 0); got != want {
		t.Errorf("cue ball at %v, want %v", got, want)
	}
	if !cue.Velocity().IsZero() {
		t.Errorf("cue ball velocity = %v, want zero", cue.Velocity())
	}
}

func TestInitTwiceRejected(t *testing.T) {
	s, _ := newTestSession(t, DefaultParams())

	if err := s.Init(); err == nil {
		t.Error("second Init should fail")
	}

	// After Deinit a fresh Init is allowed again
	s.Deinit()
	if err := s.Init(); err != nil {
		t.Errorf("Init after Deinit failed: %v", err)
	}
}

func TestDeinitDestroysEveryMesh(t *testing.T) {
	s, fs := newTestSession(t, DefaultParams())

	s.Deinit()

	want := NumBalls + NumPockets
	if len(fs.destroyed) != want {
		t.Errorf("destroyed %d meshes, want %d", len(fs.destroyed), want)
	}
	for id, n := range fs.destroyed {
		if n != 1 {
			t.Errorf("mesh %d destroyed %d times", id, n)
		}
	}
}

func TestChargeProgressClampedAndReported(t *testing.T) {
	s, fs := newTestSession(t, DefaultParams())

	s.MouseButtonPressed(0, 0)
	frames := 3 * TargetFPS // three times the charge time
	for i := 0; i < frames; i++ {
		s.Update(frameDT)
	}

	if len(fs.progress) != frames {
		t.Errorf("progress reported %d times, want %d", len(fs.progress), frames)
	}
	for _, p := range fs.progress {
		if p < 0 || p > 1 {
			t.Fatalf("progress %v outside [0,1]", p)
		}
	}
	if got := s.Snapshot().ChargeProgress; got != 1 {
		t.Errorf("charge progress = %v, want clamped to 1", got)
	}

	if err := s.MouseButtonReleased(0, 0); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if got := s.Snapshot().ChargeProgress; got != 0 {
		t.Errorf("charge progress after release = %v, want 0", got)
	}
	if s.Snapshot().Charging {
		t.Error("still charging after release")
	}
}

func TestFullChargeStrikeImpulse(t *testing.T) {
	params := DefaultParams()
	params.StrikePower = 1.0
	s, _ := newTestSession(t, params)

	// Cue ball sits at (-4.5, 0) on the default table
	s.MouseButtonPressed(0, 0)
	s.Update(1.0) // one full charge time
	if err := s.MouseButtonReleased(0, 0); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	v := s.table.CueBall().Velocity()
	if math.Abs(v.Magnitude()-1) > 1e-9 {
		t.Errorf("impulse magnitude = %v, want 1", v.Magnitude())
	}
	if math.Abs(v.X-1) > 1e-9 || math.Abs(v.Y) > 1e-9 {
		t.Errorf("impulse direction = %v, want (+1, 0)", v)
	}
}

func TestReleaseOnCueBallRejected(t *testing.T) {
	s, _ := newTestSession(t, DefaultParams())

	s.MouseButtonPressed(0, 0)
	s.Update(0.5)

	cue := s.table.CueBall().Position()
	if err := s.MouseButtonReleased(cue.X, cue.Y); err == nil {
		t.Error("release on the cue ball position should fail")
	}

	// The release is still consumed: charge state resets
	snap := s.Snapshot()
	if snap.Charging || snap.ChargeProgress != 0 {
		t.Errorf("charge state not reset: charging=%v progress=%v", snap.Charging, snap.ChargeProgress)
	}
	if !s.table.CueBall().Velocity().IsZero() {
		t.Errorf("cue ball moved on rejected release: %v", s.table.CueBall().Velocity())
	}
}

func TestFrictionStopsBallMonotonically(t *testing.T) {
	s, _ := newTestSession(t, DefaultParams())

	cue := s.table.CueBall()
	initialSpeed := 1.0
	cue.SetVelocity(NewVec2(initialSpeed, 0))

	maxFrames := int(initialSpeed/(FrictionDeceleration*frameDT)) + 2
	prev := initialSpeed
	stopped := false
	for i := 0; i < maxFrames; i++ {
		s.Update(frameDT)
		speed := cue.Velocity().Magnitude()
		if speed > prev {
			t.Fatalf("speed increased from %v to %v at frame %d", prev, speed, i)
		}
		if cue.Velocity().X < 0 {
			t.Fatalf("velocity sign flipped at frame %d: %v", i, cue.Velocity())
		}
		prev = speed
		if speed == 0 {
			stopped = true
			break
		}
	}
	if !stopped {
		t.Errorf("ball did not stop within %d frames", maxFrames)
	}
}

func TestBoundaryContainmentAfterUpdate(t *testing.T) {
	s, _ := newTestSession(t, DefaultParams())
	bounds := TableBounds(TableWidth, TableHeight)

	s.table.CueBall().SetVelocity(NewVec2(50, 37))

	for frame := 0; frame < 600; frame++ {
		s.Update(frameDT)
		for i := 0; i < NumBalls; i++ {
			b := s.table.Ball(i)
			if b == nil {
				continue
			}
			p := b.Position()
			if p.X+BallRadius > bounds.HalfWidth+tolerance ||
				p.X-BallRadius < -bounds.HalfWidth-tolerance ||
				p.Y+BallRadius > bounds.HalfHeight+tolerance ||
				p.Y-BallRadius < -bounds.HalfHeight-tolerance {
				t.Fatalf("frame %d: ball %d extent outside table at %v", frame, i, p)
			}
		}
	}
}

func TestWallReflectionScenario(t *testing.T) {
	s, _ := newTestSession(t, DefaultParams())

	cue := s.table.CueBall()
	cue.SetPosition(NewVec2(7.5, 0))
	cue.SetVelocity(NewVec2(1, 0))

	s.Update(frameDT)

	if got := cue.Position().X; got > 7.5-0.3 {
		t.Errorf("x after update = %v, want <= %v", got, 7.5-0.3)
	}
	if cue.Velocity().X >= 0 {
		t.Errorf("velocity.x = %v, want reflected (negative)", cue.Velocity().X)
	}
}

func TestPocketCaptureRemovesBallExactlyOnce(t *testing.T) {
	s, fs := newTestSession(t, DefaultParams())

	// Aim ball 1 at the bottom-left corner pocket (-7.5, -4)
	b := s.table.Ball(1)
	mesh := b.Mesh()
	b.SetPosition(NewVec2(-7.3, -3.9))
	b.SetVelocity(NewVec2(-1, -1))

	s.Update(frameDT)

	if s.table.Ball(1) != nil {
		t.Fatal("ball 1 still on the table after capture")
	}
	if fs.destroyed[mesh] != 1 {
		t.Errorf("mesh destroyed %d times, want 1", fs.destroyed[mesh])
	}

	// Further frames never touch the cleared slot
	for i := 0; i < 120; i++ {
		s.Update(frameDT)
	}
	if fs.destroyed[mesh] != 1 {
		t.Errorf("mesh destroyed %d times after more frames, want 1", fs.destroyed[mesh])
	}
	if got := len(s.Snapshot().Balls); got != NumBalls-1 {
		t.Errorf("snapshot has %d balls, want %d", got, NumBalls-1)
	}
}

func TestCollisionRedirectsWithoutMovingStruckBall(t *testing.T) {
	s, _ := newTestSession(t, DefaultParams())

	cue := s.table.CueBall()
	cue.SetPosition(NewVec2(0, 0))
	cue.SetVelocity(NewVec2(1, 0))

	other := s.table.Ball(1)
	other.SetPosition(NewVec2(0.5, 0))
	other.SetVelocity(Vec2{})

	s.Update(frameDT)

	// The striking ball keeps its committed position this frame and hands
	// its along-axis velocity to the partner.
	if got := cue.Position(); got != NewVec2(0, 0) {
		t.Errorf("cue position = %v, want unchanged (0,0)", got)
	}
	if math.Abs(cue.Velocity().X) > 1e-9 {
		t.Errorf("cue velocity.x = %v, want ~0", cue.Velocity().X)
	}
	if other.Velocity().X < 0.9 {
		t.Errorf("partner velocity.x = %v, want ~1", other.Velocity().X)
	}
}

func TestUpdateBeforeInitIsNoop(t *testing.T) {
	fs := newFakeScene()
	s := NewSession(DefaultParams(), fs)

	s.Update(frameDT)
	s.MouseButtonPressed(0, 0)
	if err := s.MouseButtonReleased(1, 1); err == nil {
		t.Error("release before init should fail")
	}
	if len(fs.progress) != 0 {
		t.Errorf("progress reported before init: %d calls", len(fs.progress))
	}
}
