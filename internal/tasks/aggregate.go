package tasks

import (
	"github.com/hvdklauw/mountaineer/internal/registry"
)

// Member is one unit of aggregate work: a template kind applied to one
// project.
type Member struct {
	Project registry.Project
	Kind    Kind
}

// Aggregate is an invocable target: an ordered member list executed
// sequentially with fail-fast semantics. Name doubles as the CLI
// subcommand; Short is its help line.
type Aggregate struct {
	Name    string
	Short   string
	Members []Member
}

// Aggregates returns the workspace-wide targets in CLI declaration order.
// Member order within each target is binding: projects appear in registry
// order, and a native extension's cargo suite runs right after its pytest
// suite.
func Aggregates(reg *registry.Registry) []Aggregate {
	projects := reg.Projects()

	lint := Aggregate{Name: "lint", Short: "Format, lint, and type-check every project"}
	validate := Aggregate{Name: "lint-validation", Short: "Run lint checks read-only across every project"}
	test := Aggregate{Name: "test", Short: "Run the unit test suites"}
	integrations := Aggregate{Name: "test-integrations", Short: "Run the integration test suites"}
	install := Aggregate{Name: "install-deps", Short: "Install dependencies for every project"}
	clean := Aggregate{Name: "clean-locks", Short: "Remove every project's poetry lockfile"}

	for _, p := range projects {
		lint.Members = append(lint.Members, Member{p, KindLint})
		validate.Members = append(validate.Members, Member{p, KindLintValidate})
		install.Members = append(install.Members, Member{p, KindInstall})
		clean.Members = append(clean.Members, Member{p, KindClean})

		if p.HasTests {
			test.Members = append(test.Members, Member{p, KindTest})
			if p.NativeExtension {
				test.Members = append(test.Members, Member{p, KindTestRust})
			}
		}
		if p.HasIntegrationTests {
			integrations.Members = append(integrations.Members, Member{p, KindTestIntegration})
		}
	}

	return []Aggregate{lint, validate, test, integrations, install, clean}
}

// ProjectTasks returns the per-project targets, grouped by task family in
// the same order the aggregates list them.
func ProjectTasks(reg *registry.Registry) []Aggregate {
	projects := reg.Projects()
	var out []Aggregate

	for _, p := range projects {
		out = append(out, Aggregate{
			Name:    "lint-" + p.Key,
			Short:   "Format, lint, and type-check " + p.Key,
			Members: []Member{{p, KindLint}},
		})
	}
	for _, p := range projects {
		out = append(out, Aggregate{
			Name:    "lint-validation-" + p.Key,
			Short:   "Run lint checks read-only for " + p.Key,
			Members: []Member{{p, KindLintValidate}},
		})
	}
	for _, p := range projects {
		if !p.HasTests {
			continue
		}
		members := []Member{{p, KindTest}}
		if p.NativeExtension {
			members = append(members, Member{p, KindTestRust})
		}
		out = append(out, Aggregate{
			Name:    "test-" + p.Key,
			Short:   "Run the " + p.Key + " unit tests",
			Members: members,
		})
	}

	rust := Aggregate{Name: "test-rust", Short: "Run the Rust extension tests"}
	for _, p := range projects {
		if p.NativeExtension {
			rust.Members = append(rust.Members, Member{p, KindTestRust})
		}
	}
	if len(rust.Members) > 0 {
		out = append(out, rust)
	}

	for _, p := range projects {
		out = append(out, Aggregate{
			Name:    "install-deps-" + p.Key,
			Short:   "Install dependencies for " + p.Key,
			Members: []Member{{p, KindInstall}},
		})
	}
	for _, p := range projects {
		out = append(out, Aggregate{
			Name:    "clean-" + p.Key + "-lock",
			Short:   "Remove the " + p.Key + " lockfile",
			Members: []Member{{p, KindClean}},
		})
	}

	return out
}
