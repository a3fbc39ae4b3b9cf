package tasks

import (
	"fmt"

	"github.com/hvdklauw/mountaineer/internal/registry"
)

// Expand instantiates the template of the given kind for one project. Steps
// run in the returned order and the caller stops at the first failure, so
// the order is itself a contract: lint formats before it checks, install
// resolves dependencies before it builds the extension.
func Expand(kind Kind, p registry.Project) ([]CommandSpec, error) {
	switch kind {
	case KindLint:
		return []CommandSpec{
			poetryRun(p, "ruff", "format", "."),
			poetryRun(p, "ruff", "check", "--fix", "."),
			poetryRun(p, "pyright", p.Name),
		}, nil

	case KindLintValidate:
		// Read-only twin of KindLint. It must never modify the tree, so
		// format runs with --check and check runs without --fix.
		return []CommandSpec{
			poetryRun(p, "ruff", "format", "--check", "."),
			poetryRun(p, "ruff", "check", "."),
			poetryRun(p, "pyright", p.Name),
		}, nil

	case KindTest:
		return []CommandSpec{
			poetryRun(p, "pytest", "-W", "error", p.Name),
		}, nil

	case KindTestRust:
		if !p.NativeExtension {
			return nil, fmt.Errorf("project %q has no native extension to test", p.Key)
		}
		return []CommandSpec{
			{Dir: p.Path, Name: "cargo", Args: []string{"test", "--workspace"}},
		}, nil

	case KindTestIntegration:
		if !p.HasIntegrationTests {
			return nil, fmt.Errorf("project %q has no integration tests", p.Key)
		}
		return []CommandSpec{
			poetryRun(p, "pytest", "-s", "-m", "integration_tests", "-W", "error", p.Name),
		}, nil

	case KindInstall:
		steps := []CommandSpec{
			{Dir: p.Path, Name: "poetry", Args: []string{"install"}},
		}
		if p.NativeExtension {
			steps = append(steps, poetryRun(p, "maturin", "develop", "--release"))
		}
		return steps, nil

	case KindClean:
		return []CommandSpec{
			{Dir: p.Path, Name: "rm", Args: []string{"-f", "poetry.lock"}},
		}, nil
	}

	return nil, fmt.Errorf("unknown task kind %q", kind)
}

// poetryRun builds a command that runs inside the project's poetry
// environment.
func poetryRun(p registry.Project, args ...string) CommandSpec {
	return CommandSpec{
		Dir:  p.Path,
		Name: "poetry",
		Args: append([]string{"run"}, args...),
	}
}
