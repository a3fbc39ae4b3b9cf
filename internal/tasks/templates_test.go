package tasks

import (
	"reflect"
	"strings"
	"testing"

	"github.com/hvdklauw/mountaineer/internal/registry"
)

var (
	libProject = registry.Project{
		Key:             "mountaineer",
		Name:            "mountaineer",
		Path:            "mountaineer",
		NativeExtension: true,
		HasTests:        true,
	}
	appProject = registry.Project{
		Key:                 "create-mountaineer-app",
		Name:                "create_mountaineer_app",
		Path:                "create_mountaineer_app",
		HasTests:            true,
		HasIntegrationTests: true,
	}
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		project registry.Project
		want    []CommandSpec
	}{
		{
			name:    "lint formats then fixes then type-checks",
			kind:    KindLint,
			project: libProject,
			want: []CommandSpec{
				{Dir: "mountaineer", Name: "poetry", Args: []string{"run", "ruff", "format", "."}},
				{Dir: "mountaineer", Name: "poetry", Args: []string{"run", "ruff", "check", "--fix", "."}},
				{Dir: "mountaineer", Name: "poetry", Args: []string{"run", "pyright", "mountaineer"}},
			},
		},
		{
			name:    "lint-validate checks without touching files",
			kind:    KindLintValidate,
			project: appProject,
			want: []CommandSpec{
				{Dir: "create_mountaineer_app", Name: "poetry", Args: []string{"run", "ruff", "format", "--check", "."}},
				{Dir: "create_mountaineer_app", Name: "poetry", Args: []string{"run", "ruff", "check", "."}},
				{Dir: "create_mountaineer_app", Name: "poetry", Args: []string{"run", "pyright", "create_mountaineer_app"}},
			},
		},
		{
			name:    "test runs pytest with warnings as errors",
			kind:    KindTest,
			project: libProject,
			want: []CommandSpec{
				{Dir: "mountaineer", Name: "poetry", Args: []string{"run", "pytest", "-W", "error", "mountaineer"}},
			},
		},
		{
			name:    "test-rust runs the cargo workspace",
			kind:    KindTestRust,
			project: libProject,
			want: []CommandSpec{
				{Dir: "mountaineer", Name: "cargo", Args: []string{"test", "--workspace"}},
			},
		},
		{
			name:    "test-integration selects the marker and streams output",
			kind:    KindTestIntegration,
			project: appProject,
			want: []CommandSpec{
				{Dir: "create_mountaineer_app", Name: "poetry", Args: []string{"run", "pytest", "-s", "-m", "integration_tests", "-W", "error", "create_mountaineer_app"}},
			},
		},
		{
			name:    "install with native extension builds the crate",
			kind:    KindInstall,
			project: libProject,
			want: []CommandSpec{
				{Dir: "mountaineer", Name: "poetry", Args: []string{"install"}},
				{Dir: "mountaineer", Name: "poetry", Args: []string{"run", "maturin", "develop", "--release"}},
			},
		},
		{
			name:    "install without native extension stops at poetry",
			kind:    KindInstall,
			project: appProject,
			want: []CommandSpec{
				{Dir: "create_mountaineer_app", Name: "poetry", Args: []string{"install"}},
			},
		},
		{
			name:    "clean removes the lockfile forcefully",
			kind:    KindClean,
			project: appProject,
			want: []CommandSpec{
				{Dir: "create_mountaineer_app", Name: "rm", Args: []string{"-f", "poetry.lock"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.kind, tt.project)
			if err != nil {
				t.Fatalf("Expand(%q, %s) failed: %v", tt.kind, tt.project.Key, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expand(%q, %s) = %v, want %v", tt.kind, tt.project.Key, got, tt.want)
			}
		})
	}
}

func TestExpandErrors(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		project registry.Project
	}{
		{"unknown kind", Kind("deploy"), libProject},
		{"test-rust without extension", KindTestRust, appProject},
		{"test-integration without marker suite", KindTestIntegration, libProject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Expand(tt.kind, tt.project); err == nil {
				t.Errorf("Expand(%q, %s) succeeded, want error", tt.kind, tt.project.Key)
			}
		})
	}
}

func TestValidateNeverMutates(t *testing.T) {
	steps, err := Expand(KindLintValidate, libProject)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	for _, step := range steps {
		line := step.String()
		if strings.Contains(line, "--fix") {
			t.Errorf("validate step %q carries --fix", line)
		}
		if strings.Contains(line, "ruff format") && !strings.Contains(line, "--check") {
			t.Errorf("validate format step %q missing --check", line)
		}
	}
}

func TestLintAndValidateRunSameChecks(t *testing.T) {
	lint, err := Expand(KindLint, libProject)
	if err != nil {
		t.Fatalf("Expand lint failed: %v", err)
	}
	validate, err := Expand(KindLintValidate, libProject)
	if err != nil {
		t.Fatalf("Expand lint-validate failed: %v", err)
	}

	if len(lint) != len(validate) {
		t.Fatalf("lint has %d steps, validate has %d", len(lint), len(validate))
	}
}

func TestKindValid(t *testing.T) {
	for _, k := range []Kind{KindLint, KindLintValidate, KindTest, KindTestRust, KindTestIntegration, KindInstall, KindClean} {
		if !k.Valid() {
			t.Errorf("Kind(%q).Valid() = false, want true", k)
		}
	}
	if Kind("deploy").Valid() {
		t.Error(`Kind("deploy").Valid() = true, want false`)
	}
}

func TestCommandSpecString(t *testing.T) {
	spec := CommandSpec{Dir: "x", Name: "poetry", Args: []string{"run", "ruff", "check", "."}}
	if got, want := spec.String(), "poetry run ruff check ."; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	bare := CommandSpec{Name: "true"}
	if got := bare.String(); got != "true" {
		t.Errorf("String() = %q, want %q", got, "true")
	}
}
