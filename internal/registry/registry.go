// Package registry describes the sub-projects of the mountaineer workspace.
//
// The registry is the single source of truth for which projects exist and in
// what order aggregate tasks visit them. Task generation, the CLI surface,
// and watch mode all derive from it.
package registry

import (
	"fmt"
)

// Project identifies one sub-project of the workspace.
type Project struct {
	// Key is the identifier used in task names ("lint-<key>") and in the
	// projects section of .mountaineer.yaml.
	Key string

	// Name is the Python package name passed to tools that take an import
	// target, such as pyright and pytest.
	Name string

	// Path is the project directory, relative to the workspace root.
	Path string

	// NativeExtension marks a project that ships a compiled Rust crate
	// alongside its Python package. Such projects get a maturin build
	// during install and a cargo suite during test.
	NativeExtension bool

	// HasTests reports whether the project carries its own pytest suite.
	HasTests bool

	// HasIntegrationTests reports whether the project carries tests marked
	// integration_tests, which need the database up before they run.
	HasIntegrationTests bool
}

// Registry is an ordered set of projects. Order is part of the contract:
// aggregate tasks visit projects in registry order, and CI logs are read
// against that order.
type Registry struct {
	projects []Project
}

// New builds a registry from an explicit project list. Tests use this to
// substitute small fake workspaces.
func New(projects ...Project) *Registry {
	r := &Registry{projects: make([]Project, len(projects))}
	copy(r.projects, projects)
	return r
}

// Default returns the registry for the mountaineer workspace: the core
// library, the project generator, and the CI fixture webapp, in that order.
func Default() *Registry {
	return New(
		Project{
			Key:             "mountaineer",
			Name:            "mountaineer",
			Path:            "mountaineer",
			NativeExtension: true,
			HasTests:        true,
		},
		Project{
			Key:                 "create-mountaineer-app",
			Name:                "create_mountaineer_app",
			Path:                "create_mountaineer_app",
			HasTests:            true,
			HasIntegrationTests: true,
		},
		Project{
			Key:  "ci-webapp",
			Name: "ci_webapp",
			Path: "ci_webapp",
		},
	)
}

// Projects returns the projects in declared order. The returned slice is a
// copy; mutating it does not affect the registry.
func (r *Registry) Projects() []Project {
	out := make([]Project, len(r.projects))
	copy(out, r.projects)
	return out
}

// Lookup returns the project with the given key.
func (r *Registry) Lookup(key string) (Project, error) {
	for _, p := range r.projects {
		if p.Key == key {
			return p, nil
		}
	}
	return Project{}, fmt.Errorf("unknown project %q", key)
}

// Len returns the number of registered projects.
func (r *Registry) Len() int {
	return len(r.projects)
}
