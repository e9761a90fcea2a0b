package stream

import (
	"github.com/Carmen-Shannon/oxy-trackball/engine/camera"
)

// Pose is one camera snapshot as sent to stream clients.
// Sequence increases with every published pose; clients never receive a lower
// sequence after a higher one.
type Pose struct {
	Sequence uint64     `json:"sequence"`
	Position [3]float32 `json:"position"`
	Target   [3]float32 `json:"target"`
	Up       [3]float32 `json:"up"`
}

// PoseOf captures the camera's current pose.
//
// Parameters:
//   - sequence: the pose sequence number
//   - cam: the camera to read
//
// Returns:
//   - Pose: the snapshot
func PoseOf(sequence uint64, cam camera.Camera) Pose {
	return Pose{
		Sequence: sequence,
		Position: cam.Position(),
		Target:   cam.Target(),
		Up:       cam.Up(),
	}
}
