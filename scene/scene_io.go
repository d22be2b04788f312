package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/daoo/pathtracer-sub000/camera"
	"github.com/daoo/pathtracer-sub000/light"
	"github.com/daoo/pathtracer-sub000/math"
)

// Description is the on-disk JSON form of a scene's camera and light
// placement, persisted as a convenience for re-running a render with the
// same setup. Geometry is never persisted this way — it always comes
// from the OBJ/MTL or glTF it was loaded from.
type Description struct {
	Version string            `json:"version"`
	Cameras []cameraData      `json:"cameras"`
	Lights  []sphereLightData `json:"lights"`
}

type cameraData struct {
	Position [3]float32 `json:"position"`
	Target   [3]float32 `json:"target"`
	Up       [3]float32 `json:"up"`
	Fov      float32    `json:"fov"`
}

type sphereLightData struct {
	Center    [3]float32 `json:"center"`
	Intensity [3]float32 `json:"intensity"`
	Radius    float32    `json:"radius"`
}

// SaveSceneDescription writes cameras and lights to path as indented JSON.
func SaveSceneDescription(path string, cameras []camera.Camera, lights []light.Sphere) error {
	desc := Description{Version: "1.0"}
	for _, c := range cameras {
		desc.Cameras = append(desc.Cameras, cameraData{
			Position: vec3ToArray(c.Position),
			Target:   vec3ToArray(c.Position.Add(c.Direction)),
			Up:       vec3ToArray(c.Up),
			Fov:      c.Fov,
		})
	}
	for _, l := range lights {
		desc.Lights = append(desc.Lights, sphereLightData{
			Center:    vec3ToArray(l.Center),
			Intensity: vec3ToArray(l.Intensity),
			Radius:    l.Radius,
		})
	}

	data, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scene description: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSceneDescription reads cameras and lights previously written by
// SaveSceneDescription.
func LoadSceneDescription(path string) ([]camera.Camera, []light.Sphere, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read scene description %q: %w", path, err)
	}

	var desc Description
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, nil, fmt.Errorf("parse scene description %q: %w", path, err)
	}

	cameras := make([]camera.Camera, 0, len(desc.Cameras))
	for _, c := range desc.Cameras {
		up := arrayToVec3(c.Up)
		if up == (math.Vec3{}) {
			up = math.Vec3{Y: 1}
		}
		cameras = append(cameras, camera.NewCamera(arrayToVec3(c.Position), arrayToVec3(c.Target), up, c.Fov))
	}

	lights := make([]light.Sphere, 0, len(desc.Lights))
	for _, l := range desc.Lights {
		lights = append(lights, light.Sphere{Center: arrayToVec3(l.Center), Intensity: arrayToVec3(l.Intensity), Radius: l.Radius})
	}

	return cameras, lights, nil
}

func vec3ToArray(v math.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func arrayToVec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
