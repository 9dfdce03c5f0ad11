package ws

import (
	"sync"

	"github.com/playcue/billiards/internal/scene"
)

// meshKind distinguishes the two mesh shapes the simulation creates.
type meshKind string

const (
	meshBall   meshKind = "ball"
	meshPocket meshKind = "pocket"
)

// meshRecord is the broadcaster's authoritative state for one live mesh.
// The broadcaster owns every handle it hands out, so late-joining clients
// can be replayed the full scene.
type meshRecord struct {
	kind    meshKind
	radius  float64
	x, y, z float64
}

// Broadcaster implements scene.Scene by turning every presentation call
// into a JSON frame fanned out to all connected clients. It keeps a
// registry of live meshes so a client that connects mid-session receives
// the current scene before the incremental frames.
type Broadcaster struct {
	hub *Hub

	mu          sync.Mutex
	nextID      scene.MeshID
	meshes      map[scene.MeshID]*meshRecord
	bgWidth     float64
	bgHeight    float64
	targetFPS   int
	progress    float64
	hasProgress bool
}

// NewBroadcaster wires a broadcaster to the hub and installs the replay
// hook for new clients.
func NewBroadcaster(hub *Hub) *Broadcaster {
	b := &Broadcaster{
		hub:    hub,
		nextID: scene.MeshNone,
		meshes: make(map[scene.MeshID]*meshRecord),
	}
	hub.onRegister = b.replay
	return b
}

func (b *Broadcaster) CreateBallMesh(radius float64) scene.MeshID {
	return b.create(meshBall, radius)
}

func (b *Broadcaster) CreatePocketMesh(radius float64) scene.MeshID {
	return b.create(meshPocket, radius)
}

func (b *Broadcaster) create(kind meshKind, radius float64) scene.MeshID {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.meshes[id] = &meshRecord{kind: kind, radius: radius}
	b.mu.Unlock()

	b.hub.Broadcast(map[string]interface{}{
		"type":   "mesh_create",
		"id":     id,
		"kind":   kind,
		"radius": radius,
	})
	return id
}

func (b *Broadcaster) PlaceMesh(id scene.MeshID, x, y, z float64) {
	b.mu.Lock()
	m, ok := b.meshes[id]
	if ok {
		m.x, m.y, m.z = x, y, z
	}
	b.mu.Unlock()
	if !ok {
		return
	}

	b.hub.Broadcast(map[string]interface{}{
		"type": "mesh_place",
		"id":   id,
		"x":    x,
		"y":    y,
		"z":    z,
	})
}

func (b *Broadcaster) DestroyMesh(id scene.MeshID) {
	b.mu.Lock()
	_, ok := b.meshes[id]
	delete(b.meshes, id)
	b.mu.Unlock()
	if !ok {
		return
	}

	b.hub.Broadcast(map[string]interface{}{
		"type": "mesh_destroy",
		"id":   id,
	})
}

func (b *Broadcaster) SetupBackground(width, height float64) {
	b.mu.Lock()
	b.bgWidth, b.bgHeight = width, height
	b.mu.Unlock()

	b.hub.Broadcast(map[string]interface{}{
		"type":   "background",
		"width":  width,
		"height": height,
	})
}

func (b *Broadcaster) SetTargetFPS(fps int) {
	b.mu.Lock()
	b.targetFPS = fps
	b.mu.Unlock()

	b.hub.Broadcast(map[string]interface{}{
		"type": "target_fps",
		"fps":  fps,
	})
}

// UpdateProgressBar is called every frame; unchanged values are not
// re-broadcast since clients only need transitions.
func (b *Broadcaster) UpdateProgressBar(progress float64) {
	b.mu.Lock()
	changed := !b.hasProgress || progress != b.progress
	b.progress = progress
	b.hasProgress = true
	b.mu.Unlock()
	if !changed {
		return
	}

	b.hub.Broadcast(map[string]interface{}{
		"type":     "progress",
		"progress": progress,
	})
}

// replay sends the full current scene to one client.
func (b *Broadcaster) replay(c *Client) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bgWidth > 0 {
		c.sendJSON(map[string]interface{}{
			"type":   "background",
			"width":  b.bgWidth,
			"height": b.bgHeight,
		})
	}
	if b.targetFPS > 0 {
		c.sendJSON(map[string]interface{}{
			"type": "target_fps",
			"fps":  b.targetFPS,
		})
	}
	for id, m := range b.meshes {
		c.sendJSON(map[string]interface{}{
			"type":   "mesh_create",
			"id":     id,
			"kind":   m.kind,
			"radius": m.radius,
		})
		c.sendJSON(map[string]interface{}{
			"type": "mesh_place",
			"id":   id,
			"x":    m.x,
			"y":    m.y,
			"z":    m.z,
		})
	}
	if b.hasProgress {
		c.sendJSON(map[string]interface{}{
			"type":     "progress",
			"progress": b.progress,
		})
	}
}
