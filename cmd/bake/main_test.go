package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/focallock/ecs/component"
	"github.com/milk9111/focallock/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBakesActiveCamera(t *testing.T) {
	out := filepath.Join(t.TempDir(), "baked.yaml")
	require.NoError(t, run(options{scene: "dolly.yaml", out: out}))

	spec, err := prefabs.LoadSceneSpec(out)
	require.NoError(t, err)
	require.NotEmpty(t, spec.Cameras)
	cam := spec.Cameras[0]
	assert.Equal(t, "cam_main", cam.Name)

	lens := cam.Keyframes[component.PathLens]
	require.Len(t, lens, 120)
	assert.InDelta(t, 35, lens[1], 1e-9)
	assert.InDelta(t, 70, lens[120], 1e-9)
}

func TestRunClearsBake(t *testing.T) {
	dir := t.TempDir()
	baked := filepath.Join(dir, "baked.yaml")
	cleared := filepath.Join(dir, "cleared.yaml")
	require.NoError(t, run(options{scene: "dolly.yaml", out: baked}))
	require.NoError(t, run(options{scene: baked, clear: true, out: cleared}))

	data, err := os.ReadFile(cleared)
	require.NoError(t, err)
	spec, err := prefabs.DecodeSceneSpec(data)
	require.NoError(t, err)
	_, ok := spec.Cameras[0].Keyframes[component.PathLens]
	assert.False(t, ok)
}

func TestRunUnknownCamera(t *testing.T) {
	err := run(options{scene: "dolly.yaml", camera: "ghost", out: filepath.Join(t.TempDir(), "x.yaml")})
	assert.Error(t, err)
}

func TestRunAllKeepsPreferences(t *testing.T) {
	out := filepath.Join(t.TempDir(), "baked.yaml")
	require.NoError(t, run(options{scene: "dolly.yaml", all: true, out: out}))

	src, err := prefabs.LoadScene("dolly.yaml")
	require.NoError(t, err)
	spec, err := prefabs.LoadSceneSpec(out)
	require.NoError(t, err)
	assert.Equal(t, src.Config, spec.Preferences)
	assert.True(t, spec.Preferences.UpdateOnlyActive)
	require.Len(t, spec.Cameras[0].Keyframes[component.PathLens], 120)
}
