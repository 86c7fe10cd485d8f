package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// LockedDependency records where a fetched dependency landed and which
// commit it was pinned to.
type LockedDependency struct {
	Name   string
	Source string
	Commit string
	Dir    string
}

// FetchDependencies materializes every manifest dependency under cacheDir.
// Git sources are cloned and checked out at the requested rev/tag/branch;
// path sources are resolved relative to the manifest and verified to exist.
// Results come back in manifest name order.
func FetchDependencies(manifest *Manifest, cacheDir string) ([]LockedDependency, error) {
	if cacheDir == "" {
		return nil, fmt.Errorf("deps: empty cache directory")
	}
	locked := make([]LockedDependency, 0, len(manifest.Dependencies))
	for _, name := range sortedDependencyNames(manifest.Dependencies) {
		spec := manifest.Dependencies[name]
		switch {
		case spec.Git != "":
			dir, commit, err := ensureGitCheckout(filepath.Join(cacheDir, sanitizePathSegment(name)), spec)
			if err != nil {
				return nil, fmt.Errorf("deps: %s: %w", name, err)
			}
			locked = append(locked, LockedDependency{
				Name:   name,
				Source: "git:" + spec.Git,
				Commit: commit,
				Dir:    dir,
			})
		case spec.Path != "":
			dir := spec.Path
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(filepath.Dir(manifest.Path), dir)
			}
			info, err := os.Stat(dir)
			if err != nil {
				return nil, fmt.Errorf("deps: %s: %w", name, err)
			}
			if !info.IsDir() {
				return nil, fmt.Errorf("deps: %s: %s is not a directory", name, dir)
			}
			locked = append(locked, LockedDependency{Name: name, Source: "path:" + spec.Path, Dir: dir})
		default:
			return nil, fmt.Errorf("deps: %s has no source", name)
		}
	}
	return locked, nil
}

func ensureGitCheckout(baseDir string, spec *DependencySpec) (string, string, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", err
	}

	revision, descriptor := gitRevisionFromSpec(spec)

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", err
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{
		URL:   spec.Git,
		Depth: 0,
	})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git clone %s: %w", spec.Git, err)
	}

	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("resolve revision %s: %w", revision, err)
	}

	targetDir := filepath.Join(baseDir, sanitizePathSegment(pinnedVersion(descriptor, hash.String())))
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return targetDir, hash.String(), nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git checkout %s: %w", revision, err)
	}

	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	return targetDir, hash.String(), nil
}

func gitRevisionFromSpec(spec *DependencySpec) (plumbing.Revision, string) {
	if rev := strings.TrimSpace(spec.Rev); rev != "" {
		return plumbing.Revision(rev), rev
	}
	if tag := strings.TrimSpace(spec.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), tag
	}
	if branch := strings.TrimSpace(spec.Branch); branch != "" {
		return plumbing.Revision("refs/heads/" + branch), branch
	}
	return plumbing.Revision("HEAD"), ""
}

func pinnedVersion(descriptor, commit string) string {
	if descriptor == "" || descriptor == commit {
		return commit
	}
	return fmt.Sprintf("%s@%s", descriptor, commit)
}

func sanitizePathSegment(segment string) string {
	var b strings.Builder
	for _, r := range segment {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.', r == '@':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
