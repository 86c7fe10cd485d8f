package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest represents the parsed contents of program.yml.
type Manifest struct {
	Path         string
	Name         string
	Version      string
	Authors      []string
	Entry        string
	Dependencies map[string]*DependencySpec
}

// DependencySpec describes a dependency descriptor in the manifest. Exactly
// one source (Git or Path) must be set; Rev/Tag/Branch refine a Git source.
type DependencySpec struct {
	Version string
	Git     string
	Rev     string
	Tag     string
	Branch  string
	Path    string
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

var nameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// LoadManifest parses program.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	manifest, err := parseManifest(file)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}
	manifest.Path = absPath
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func parseManifest(r io.Reader) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	return raw.toManifest(), nil
}

func (m *Manifest) validate() error {
	var issues []string
	if m.Name == "" {
		issues = append(issues, "name is required")
	} else if !nameRe.MatchString(m.Name) {
		issues = append(issues, fmt.Sprintf("name %q contains invalid characters", m.Name))
	}
	if m.Version == "" {
		issues = append(issues, "version is required")
	}
	if m.Entry == "" {
		issues = append(issues, "entry is required")
	} else if filepath.IsAbs(m.Entry) {
		issues = append(issues, fmt.Sprintf("entry %q must be relative to the manifest", m.Entry))
	}
	for _, name := range sortedDependencyNames(m.Dependencies) {
		spec := m.Dependencies[name]
		if spec == nil {
			issues = append(issues, fmt.Sprintf("dependency %q has no descriptor", name))
			continue
		}
		if spec.Git == "" && spec.Path == "" {
			issues = append(issues, fmt.Sprintf("dependency %q needs a git or path source", name))
		}
		if spec.Git != "" && spec.Path != "" {
			issues = append(issues, fmt.Sprintf("dependency %q cannot have both git and path sources", name))
		}
		refinements := 0
		for _, ref := range []string{spec.Rev, spec.Tag, spec.Branch} {
			if strings.TrimSpace(ref) != "" {
				refinements++
			}
		}
		if refinements > 1 {
			issues = append(issues, fmt.Sprintf("dependency %q must pick one of rev, tag, branch", name))
		}
		if spec.Git == "" && refinements > 0 {
			issues = append(issues, fmt.Sprintf("dependency %q sets a git revision without a git source", name))
		}
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// EntryPath resolves the entry module relative to the manifest location.
func (m *Manifest) EntryPath() string {
	if filepath.IsAbs(m.Entry) || m.Path == "" {
		return m.Entry
	}
	return filepath.Join(filepath.Dir(m.Path), m.Entry)
}

func sortedDependencyNames(deps map[string]*DependencySpec) []string {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Raw YAML shapes.

type manifestFile struct {
	Name         string                       `yaml:"name"`
	Version      string                       `yaml:"version"`
	Authors      []string                     `yaml:"authors"`
	Entry        string                       `yaml:"entry"`
	Dependencies map[string]rawDependencySpec `yaml:"dependencies"`
}

type rawDependencySpec struct {
	Version string `yaml:"version"`
	Git     string `yaml:"git"`
	Rev     string `yaml:"rev"`
	Tag     string `yaml:"tag"`
	Branch  string `yaml:"branch"`
	Path    string `yaml:"path"`
}

func (f manifestFile) toManifest() *Manifest {
	deps := make(map[string]*DependencySpec, len(f.Dependencies))
	for name, raw := range f.Dependencies {
		deps[name] = &DependencySpec{
			Version: strings.TrimSpace(raw.Version),
			Git:     strings.TrimSpace(raw.Git),
			Rev:     strings.TrimSpace(raw.Rev),
			Tag:     strings.TrimSpace(raw.Tag),
			Branch:  strings.TrimSpace(raw.Branch),
			Path:    strings.TrimSpace(raw.Path),
		}
	}
	return &Manifest{
		Name:         strings.TrimSpace(f.Name),
		Version:      strings.TrimSpace(f.Version),
		Authors:      f.Authors,
		Entry:        strings.TrimSpace(f.Entry),
		Dependencies: deps,
	}
}
