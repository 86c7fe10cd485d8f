package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "program.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
name: demo
version: 0.1.0
authors:
  - Ada
entry: build/main.json
dependencies:
  mathlib:
    git: https://example.com/mathlib.git
    tag: v1.2.0
  local-tools:
    path: ../tools
`)

	manifest, err := LoadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", manifest.Name)
	assert.Equal(t, "0.1.0", manifest.Version)
	assert.Equal(t, []string{"Ada"}, manifest.Authors)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "build", "main.json"), manifest.EntryPath())

	require.Len(t, manifest.Dependencies, 2)
	assert.Equal(t, "https://example.com/mathlib.git", manifest.Dependencies["mathlib"].Git)
	assert.Equal(t, "v1.2.0", manifest.Dependencies["mathlib"].Tag)
	assert.Equal(t, "../tools", manifest.Dependencies["local-tools"].Path)
}

func TestLoadManifestValidation(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
name: "bad name!"
dependencies:
  broken:
    tag: v1.0.0
  doubled:
    git: https://example.com/a.git
    path: ../a
`)

	_, err := LoadManifest(path)
	require.Error(t, err)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, err.Error(), "version is required")
	assert.Contains(t, err.Error(), "entry is required")
	assert.Contains(t, err.Error(), "invalid characters")
	assert.Contains(t, err.Error(), `dependency "broken" needs a git or path source`)
	assert.Contains(t, err.Error(), `dependency "broken" sets a git revision without a git source`)
	assert.Contains(t, err.Error(), `dependency "doubled" cannot have both git and path sources`)
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
name: demo
version: 0.1.0
entry: main.json
flavor: spicy
`)

	_, err := LoadManifest(path)
	require.Error(t, err)
}

func TestLoadManifestEmptyFile(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "")
	_, err := LoadManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is empty")
}

func TestLoadManifestMissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "program.yml"))
	require.Error(t, err)
}
