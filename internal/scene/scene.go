package scene

// MeshID is an opaque handle to a presentation object. IDs are allocated and
// owned by the Scene implementation; the simulation core only stores and
// passes them back. MeshNone is never a live handle.
type MeshID int

const MeshNone MeshID = 0

// Scene is the presentation collaborator the simulation core draws through.
// All calls are synchronous, side-effecting and non-blocking from the core's
// perspective. A destroyed MeshID must not be used again.
type Scene interface {
	CreateBallMesh(radius float64) MeshID
	CreatePocketMesh(radius float64) MeshID

	// PlaceMesh updates a mesh's world position in table-space coordinates.
	PlaceMesh(id MeshID, x, y, z float64)

	// DestroyMesh releases a mesh and its handle.
	DestroyMesh(id MeshID)

	SetupBackground(width, height float64)
	SetTargetFPS(fps int)

	// UpdateProgressBar reports shot charge progress in [0,1]. Called every
	// frame regardless of charging state.
	UpdateProgressBar(progress float64)
}
