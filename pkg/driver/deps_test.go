package driver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initGitRepo(t *testing.T, dir string) string {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	worktree, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.json"), []byte(`{"type": "Module", "body": []}`), 0o644))
	_, err = worktree.Add("lib.json")
	require.NoError(t, err)

	hash, err := worktree.Commit("init", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Rill CLI",
			Email: "rill@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)
	return hash.String()
}

func TestFetchDependenciesGitSource(t *testing.T) {
	root := t.TempDir()
	depRepo := filepath.Join(root, "mathlib")
	require.NoError(t, os.MkdirAll(depRepo, 0o755))
	commit := initGitRepo(t, depRepo)

	manifest := &Manifest{
		Path:    filepath.Join(root, "program.yml"),
		Name:    "demo",
		Version: "0.1.0",
		Entry:   "main.json",
		Dependencies: map[string]*DependencySpec{
			"mathlib": {Git: depRepo, Rev: commit},
		},
	}

	cacheDir := filepath.Join(root, "cache")
	locked, err := FetchDependencies(manifest, cacheDir)
	require.NoError(t, err)
	require.Len(t, locked, 1)

	assert.Equal(t, "mathlib", locked[0].Name)
	assert.Equal(t, commit, locked[0].Commit)
	assert.FileExists(t, filepath.Join(locked[0].Dir, "lib.json"))
}

func TestFetchDependenciesGitCheckoutIsCached(t *testing.T) {
	root := t.TempDir()
	depRepo := filepath.Join(root, "mathlib")
	require.NoError(t, os.MkdirAll(depRepo, 0o755))
	commit := initGitRepo(t, depRepo)

	manifest := &Manifest{
		Path:  filepath.Join(root, "program.yml"),
		Entry: "main.json",
		Dependencies: map[string]*DependencySpec{
			"mathlib": {Git: depRepo, Rev: commit},
		},
	}

	cacheDir := filepath.Join(root, "cache")
	first, err := FetchDependencies(manifest, cacheDir)
	require.NoError(t, err)
	second, err := FetchDependencies(manifest, cacheDir)
	require.NoError(t, err)
	assert.Equal(t, first[0].Dir, second[0].Dir)
}

func TestFetchDependenciesPathSource(t *testing.T) {
	root := t.TempDir()
	depDir := filepath.Join(root, "tools")
	require.NoError(t, os.MkdirAll(depDir, 0o755))

	manifest := &Manifest{
		Path:  filepath.Join(root, "app", "program.yml"),
		Entry: "main.json",
		Dependencies: map[string]*DependencySpec{
			"tools": {Path: "../tools"},
		},
	}

	locked, err := FetchDependencies(manifest, filepath.Join(root, "cache"))
	require.NoError(t, err)
	require.Len(t, locked, 1)
	assert.Equal(t, depDir, locked[0].Dir)
	assert.Empty(t, locked[0].Commit)
}

func TestFetchDependenciesMissingPath(t *testing.T) {
	root := t.TempDir()
	manifest := &Manifest{
		Path:  filepath.Join(root, "program.yml"),
		Entry: "main.json",
		Dependencies: map[string]*DependencySpec{
			"ghost": {Path: "nowhere"},
		},
	}

	_, err := FetchDependencies(manifest, filepath.Join(root, "cache"))
	require.Error(t, err)
}
