package optics

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaysJSON(t *testing.T) {
	assert := assert.New(t)

	terminated := NewRay(P(0, 0, 0), NewVector(0, 0, 1), 550, 1.0, Vacuum())
	require.NoError(t, terminated.Terminate(P(0, 0, 5)))
	traveling := NewRay(P(1, 1, 1), NewVector(0, 0, 1), 550, 1.0, Vacuum())

	out := RaysJSON([]*Ray{terminated, traveling})
	// Unterminated rays are skipped.
	require.Len(t, out, 1)

	assert.Equal(PointJSON{X: 0, Y: 0, Z: 0}, out[0].Origin)
	assert.Equal(PointJSON{X: 0, Y: 0, Z: 5}, out[0].Terminal)
	assert.Equal(550.0, out[0].Wavelength)
	assert.Len(out[0].Color, 9) // #rrggbbaa
}

func TestSaveRaysToJSON(t *testing.T) {
	assert := assert.New(t)

	ray := NewRay(P(0, 0, 0), NewVector(0, 0, 1), 650, 0.8, Vacuum())
	require.NoError(t, ray.Terminate(P(0, 0, 2)))

	path := filepath.Join(t.TempDir(), "rays.json")
	require.NoError(t, SaveRaysToJSON(path, []*Ray{ray}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []RayJSON
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(650.0, decoded[0].Wavelength)
	assert.InDelta(0.8, decoded[0].Intensity, 1e-12)
}
