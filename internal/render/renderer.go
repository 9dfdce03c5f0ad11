package render

import (
	"image/color"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/playcue/billiards/internal/game"
	"github.com/playcue/billiards/internal/scene"
)

const (
	pixelsPerUnit     = 60.0
	progressBarHeight = 12
)

var (
	feltColor   = color.RGBA{0x0b, 0x6b, 0x32, 0xff}
	ballColor   = color.RGBA{0xf2, 0xf2, 0xe6, 0xff}
	cueColor    = color.RGBA{0xff, 0xff, 0xff, 0xff}
	pocketColor = color.RGBA{0x10, 0x10, 0x10, 0xff}
	barBack     = color.RGBA{0x20, 0x20, 0x20, 0xff}
	barFill     = color.RGBA{0xd8, 0x3a, 0x3a, 0xff}
)

type meshKind int

const (
	meshBall meshKind = iota
	meshPocket
)

type mesh struct {
	kind    meshKind
	radius  float64
	x, y, z float64
}

// Renderer is the local windowed presentation layer: it implements
// scene.Scene for the simulation and ebiten.Game for the window loop.
// Mesh handles are opaque IDs owned here.
type Renderer struct {
	session *game.Session

	mu          sync.Mutex
	nextID      scene.MeshID
	meshes      map[scene.MeshID]*mesh
	firstBall   scene.MeshID // the cue ball mesh, tinted differently
	tableWidth  float64
	tableHeight float64
	progress    float64
}

func New() *Renderer {
	return &Renderer{
		nextID: scene.MeshNone,
		meshes: make(map[scene.MeshID]*mesh),
	}
}

// SetSession wires the session the window loop drives.
func (r *Renderer) SetSession(s *game.Session) {
	r.session = s
}

// === scene.Scene ===

func (r *Renderer) CreateBallMesh(radius float64) scene.MeshID {
	id := r.create(meshBall, radius)
	r.mu.Lock()
	if r.firstBall == scene.MeshNone {
		r.firstBall = id
	}
	r.mu.Unlock()
	return id
}

func (r *Renderer) CreatePocketMesh(radius float64) scene.MeshID {
	return r.create(meshPocket, radius)
}

func (r *Renderer) create(kind meshKind, radius float64) scene.MeshID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.meshes[r.nextID] = &mesh{kind: kind, radius: radius}
	return r.nextID
}

func (r *Renderer) PlaceMesh(id scene.MeshID, x, y, z float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.meshes[id]; ok {
		m.x, m.y, m.z = x, y, z
	}
}

func (r *Renderer) DestroyMesh(id scene.MeshID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.meshes, id)
}

func (r *Renderer) SetupBackground(width, height float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tableWidth, r.tableHeight = width, height
}

func (r *Renderer) SetTargetFPS(fps int) {
	ebiten.SetTPS(fps)
}

func (r *Renderer) UpdateProgressBar(progress float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = progress
}

// === ebiten.Game ===

func (r *Renderer) Update() error {
	if r.session == nil {
		return nil
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := r.cursorToTable()
		r.session.MouseButtonPressed(x, y)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := r.cursorToTable()
		if err := r.session.MouseButtonReleased(x, y); err != nil {
			// A release exactly on the cue ball has no direction; the
			// shot is discarded.
			log.Printf("[RENDER] shot discarded: %v", err)
		}
	}

	r.session.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(feltColor)

	r.mu.Lock()
	defer r.mu.Unlock()

	// Pockets under balls
	for _, m := range r.meshes {
		if m.kind != meshPocket {
			continue
		}
		sx, sy := r.tableToScreen(m.x, m.y)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(m.radius*pixelsPerUnit), pocketColor, true)
	}
	for id, m := range r.meshes {
		if m.kind != meshBall {
			continue
		}
		clr := ballColor
		if id == r.firstBall {
			clr = cueColor
		}
		sx, sy := r.tableToScreen(m.x, m.y)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(m.radius*pixelsPerUnit), clr, true)
	}

	// Charge progress bar along the bottom edge
	w, h := r.screenSizeLocked()
	vector.DrawFilledRect(screen, 0, float32(h-progressBarHeight), float32(w), progressBarHeight, barBack, false)
	vector.DrawFilledRect(screen, 0, float32(h-progressBarHeight), float32(float64(w)*r.progress), progressBarHeight, barFill, false)
}

func (r *Renderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.screenSizeLocked()
}

// ScreenSize returns the window size in pixels for the configured table.
func (r *Renderer) ScreenSize() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.screenSizeLocked()
}

func (r *Renderer) screenSizeLocked() (int, int) {
	if r.tableWidth == 0 || r.tableHeight == 0 {
		return 900, 480 + progressBarHeight
	}
	return int(r.tableWidth * pixelsPerUnit), int(r.tableHeight*pixelsPerUnit) + progressBarHeight
}

// tableToScreen maps table-space (origin at the table center, y up) to
// pixels (origin top-left, y down).
func (r *Renderer) tableToScreen(x, y float64) (float64, float64) {
	return (x + 0.5*r.tableWidth) * pixelsPerUnit, (0.5*r.tableHeight - y) * pixelsPerUnit
}

func (r *Renderer) cursorToTable() (float64, float64) {
	cx, cy := ebiten.CursorPosition()
	r.mu.Lock()
	defer r.mu.Unlock()
	return float64(cx)/pixelsPerUnit - 0.5*r.tableWidth, 0.5*r.tableHeight - float64(cy)/pixelsPerUnit
}
