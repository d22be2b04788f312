package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/daoo/pathtracer-sub000/camera"
	"github.com/daoo/pathtracer-sub000/geometry"
	"github.com/daoo/pathtracer-sub000/light"
	"github.com/daoo/pathtracer-sub000/material"
	"github.com/daoo/pathtracer-sub000/math"
)

// objFace is an already fan-triangulated face: one (v, vt, vn) index
// triple per triangle vertex.
type objFace struct {
	vIdx, vtIdx, vnIdx [3]int
}

// LoadOBJ parses a Wavefront .obj file plus its companion .mtl (loaded
// automatically via "mtllib") into Data ready for kdtree.Build. Faces with
// no material default to a plain grey diffuse surface. It also recognizes
// the scene extension tokens this pathtracer's .mtl format carries beyond
// plain Wavefront: newlight/lightcolor/lightintensity/lightposition/
// lightradius define sphere lights, and newcamera/camerafov/
// cameraposition/cameratarget/cameraup define cameras, both read from
// whichever .mtl file is attached via mtllib.
func LoadOBJ(path string) (Data, error) {
	return loadOBJ(path, "")
}

// LoadOBJWithMTL parses objPath like LoadOBJ, but loads mtlPath as the
// material library instead of following the obj file's own "mtllib"
// directive — the form the CLI driver uses, which takes the obj and mtl
// paths as separate arguments.
func LoadOBJWithMTL(objPath, mtlPath string) (Data, error) {
	return loadOBJ(objPath, mtlPath)
}

func loadOBJ(path, mtlOverride string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)

	var positions []math.Vec3
	var texcoords []math.Vec2
	var normals []math.Vec3
	var faces []objFace
	var faceMat []string
	curMat := ""

	extras := sceneExtras{}
	materials := map[string]material.Desc{}

	loadLib := func(mtlPath string) error {
		loadedMats, loadedExtras, err := loadMTL(mtlPath)
		if err != nil {
			return err
		}
		for k, v := range loadedMats {
			materials[k] = v
		}
		extras.lights = append(extras.lights, loadedExtras.lights...)
		extras.cameras = append(extras.cameras, loadedExtras.cameras...)
		return nil
	}

	if mtlOverride != "" {
		if err := loadLib(mtlOverride); err != nil {
			return Data{}, fmt.Errorf("mtl %q: %w", mtlOverride, err)
		}
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				continue
			}
			positions = append(positions, parseVec3(fields[1:4]))

		case "vt":
			if len(fields) < 3 {
				continue
			}
			texcoords = append(texcoords, math.Vec2{X: parseFloat(fields[1]), Y: parseFloat(fields[2])})

		case "vn":
			if len(fields) < 4 {
				continue
			}
			normals = append(normals, parseVec3(fields[1:4]))

		case "usemtl":
			if len(fields) > 1 {
				curMat = fields[1]
			}

		case "mtllib":
			if len(fields) > 1 && mtlOverride == "" {
				mtlPath := filepath.Join(dir, fields[1])
				if err := loadLib(mtlPath); err != nil {
					return Data{}, fmt.Errorf("mtllib %q: %w", fields[1], err)
				}
			}

		case "f":
			if len(fields) < 4 {
				continue
			}
			var verts []struct{ v, vt, vn int }
			for _, tok := range fields[1:] {
				v, vt, vn := parseFaceVertex(tok)
				verts = append(verts, struct{ v, vt, vn int }{v, vt, vn})
			}
			for i := 1; i+1 < len(verts); i++ {
				faces = append(faces, objFace{
					vIdx:  [3]int{verts[0].v, verts[i].v, verts[i+1].v},
					vtIdx: [3]int{verts[0].vt, verts[i].vt, verts[i+1].vt},
					vnIdx: [3]int{verts[0].vn, verts[i].vn, verts[i+1].vn},
				})
				faceMat = append(faceMat, curMat)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Data{}, fmt.Errorf("scan obj %q: %w", path, err)
	}
	if len(faces) == 0 {
		return Data{}, fmt.Errorf("no geometry found in %q", path)
	}

	matTags := map[string]material.Material{}
	tagFor := func(name string) material.Material {
		if tag, ok := matTags[name]; ok {
			return tag
		}
		desc, ok := materials[name]
		if !ok {
			desc = material.Desc{Diffuse: math.Vec3{X: 0.8, Y: 0.8, Z: 0.8}}
		}
		tag := material.Translate(desc)
		matTags[name] = tag
		return tag
	}

	triangles := make([]*geometry.Triangle, 0, len(faces))
	for i, face := range faces {
		tri := buildTriangle(face, positions, texcoords, normals)
		tri.Tag = tagFor(faceMat[i])
		triangles = append(triangles, tri)
	}

	return Data{Triangles: triangles, Lights: extras.lights, Cameras: extras.cameras}, nil
}

func buildTriangle(face objFace, positions []math.Vec3, texcoords []math.Vec2, normals []math.Vec3) *geometry.Triangle {
	v0, v1, v2 := safeVec(positions, face.vIdx[0]), safeVec(positions, face.vIdx[1]), safeVec(positions, face.vIdx[2])

	var n0, n1, n2 math.Vec3
	if len(normals) > 0 {
		n0, n1, n2 = safeVec(normals, face.vnIdx[0]), safeVec(normals, face.vnIdx[1]), safeVec(normals, face.vnIdx[2])
	} else {
		n := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
		n0, n1, n2 = n, n, n
	}

	return &geometry.Triangle{
		V0: v0, V1: v1, V2: v2,
		N0: n0, N1: n1, N2: n2,
		UV0: safeVec2(texcoords, face.vtIdx[0]),
		UV1: safeVec2(texcoords, face.vtIdx[1]),
		UV2: safeVec2(texcoords, face.vtIdx[2]),
	}
}

func safeVec2(pool []math.Vec2, i int) math.Vec2 {
	if i >= 0 && i < len(pool) {
		return pool[i]
	}
	return math.Vec2{}
}

func safeVec(pool []math.Vec3, i int) math.Vec3 {
	if i >= 0 && i < len(pool) {
		return pool[i]
	}
	return math.Vec3{}
}

// parseFaceVertex parses one face vertex token: "v", "v/vt", "v//vn",
// "v/vt/vn". Returns 0-based indices, -1 if absent. OBJ indices are
// 1-based.
func parseFaceVertex(tok string) (v, vt, vn int) {
	parts := strings.Split(tok, "/")
	v = parseIdx(parts[0])
	vt, vn = -1, -1
	if len(parts) > 1 {
		vt = parseIdx(parts[1])
	}
	if len(parts) > 2 {
		vn = parseIdx(parts[2])
	}
	return
}

func parseIdx(s string) int {
	if s == "" {
		return -1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return -1
	}
	return n - 1
}

func parseVec3(fields []string) math.Vec3 {
	x, _ := strconv.ParseFloat(fields[0], 32)
	y, _ := strconv.ParseFloat(fields[1], 32)
	z, _ := strconv.ParseFloat(fields[2], 32)
	return math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}
}

func parseFloat(s string) float32 {
	v, _ := strconv.ParseFloat(s, 32)
	return float32(v)
}

// sceneExtras holds the lights and cameras recovered from this
// pathtracer's .mtl scene extension tokens, absent from plain Wavefront
// MTL.
type sceneExtras struct {
	lights  []light.Sphere
	cameras []camera.Camera
}

// pendingLight/pendingCamera accumulate fields across consecutive
// extension lines until the next "new*" directive (or end of file)
// closes them out, mirroring how newmtl accumulates Kd/Ks/Ni lines.
type pendingLight struct {
	color     math.Vec3
	intensity float32
	position  math.Vec3
	radius    float32
}

type pendingCamera struct {
	position, target, up math.Vec3
	fov                  float32
}

func loadMTL(path string) (map[string]material.Desc, sceneExtras, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, sceneExtras{}, err
	}
	defer f.Close()

	mats := map[string]material.Desc{}
	var cur *material.Desc

	var extras sceneExtras
	var curLight *pendingLight
	var curCamera *pendingCamera

	flushLight := func() {
		if curLight != nil {
			extras.lights = append(extras.lights, light.NewSphere(curLight.position, curLight.color, curLight.intensity, curLight.radius))
			curLight = nil
		}
	}
	flushCamera := func() {
		if curCamera != nil {
			up := curCamera.up
			if up == (math.Vec3{}) {
				up = math.Vec3{Y: 1}
			}
			extras.cameras = append(extras.cameras, camera.NewCamera(curCamera.position, curCamera.target, up, curCamera.fov))
			curCamera = nil
		}
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "newmtl":
			if len(fields) > 1 {
				flushLight()
				flushCamera()
				desc := material.Desc{Name: fields[1], Diffuse: math.Vec3{X: 0.8, Y: 0.8, Z: 0.8}}
				mats[fields[1]] = desc
				cur = &desc
			}
		case "Kd":
			if cur != nil && len(fields) >= 4 {
				cur.Diffuse = parseVec3(fields[1:4])
				mats[cur.Name] = *cur
			}
		case "Ks":
			if cur != nil && len(fields) >= 4 {
				cur.Specular = parseVec3(fields[1:4])
				mats[cur.Name] = *cur
			}
		case "d":
			if cur != nil && len(fields) >= 2 {
				cur.Transparency = 1 - parseFloat(fields[1])
				mats[cur.Name] = *cur
			}
		case "Tr":
			if cur != nil && len(fields) >= 2 {
				cur.Transparency = parseFloat(fields[1])
				mats[cur.Name] = *cur
			}
		case "Ni":
			if cur != nil && len(fields) >= 2 {
				cur.IndexOfRefraction = parseFloat(fields[1])
				mats[cur.Name] = *cur
			}
		case "reflat0deg":
			if cur != nil && len(fields) >= 2 {
				cur.Refl0 = parseFloat(fields[1])
				mats[cur.Name] = *cur
			}
		case "reflat90deg":
			if cur != nil && len(fields) >= 2 {
				cur.Refl90 = parseFloat(fields[1])
				mats[cur.Name] = *cur
			}

		case "newlight":
			flushLight()
			flushCamera()
			cur = nil
			curLight = &pendingLight{intensity: 1, radius: 0.01}
		case "lightcolor":
			if curLight != nil && len(fields) >= 4 {
				curLight.color = parseVec3(fields[1:4])
			}
		case "lightintensity":
			if curLight != nil && len(fields) >= 2 {
				curLight.intensity = parseFloat(fields[1])
			}
		case "lightposition":
			if curLight != nil && len(fields) >= 4 {
				curLight.position = parseVec3(fields[1:4])
			}
		case "lightradius":
			if curLight != nil && len(fields) >= 2 {
				curLight.radius = parseFloat(fields[1])
			}

		case "newcamera":
			flushLight()
			flushCamera()
			cur = nil
			curCamera = &pendingCamera{fov: 1.0472}
		case "camerafov":
			if curCamera != nil && len(fields) >= 2 {
				curCamera.fov = parseFloat(fields[1])
			}
		case "cameraposition":
			if curCamera != nil && len(fields) >= 4 {
				curCamera.position = parseVec3(fields[1:4])
			}
		case "cameratarget":
			if curCamera != nil && len(fields) >= 4 {
				curCamera.target = parseVec3(fields[1:4])
			}
		case "cameraup":
			if curCamera != nil && len(fields) >= 4 {
				curCamera.up = parseVec3(fields[1:4])
			}
		}
	}
	flushLight()
	flushCamera()

	if err := scanner.Err(); err != nil {
		return nil, sceneExtras{}, err
	}
	return mats, extras, nil
}
