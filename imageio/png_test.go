package imageio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/daoo/pathtracer-sub000/film"
	"github.com/daoo/pathtracer-sub000/math"
	"github.com/stretchr/testify/require"
)

func TestWritePNGCreatesFileAndParentDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.png")

	buf := film.NewBuffer(2, 2)
	buf.Add(0, 0, math.Vec3{X: 1, Y: 1, Z: 1})
	buf.Inc()

	err := WritePNG(path, buf, DefaultOptions())
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestToneMapClampsAndAppliesGamma(t *testing.T) {
	require.Equal(t, uint8(0), toneMap(-1, 1/2.2))
	require.Equal(t, uint8(255), toneMap(2, 1/2.2))
	require.Greater(t, toneMap(0.5, 1/2.2), uint8(127))
}
