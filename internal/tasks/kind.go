package tasks

// Kind identifies a command template.
type Kind string

const (
	// KindLint formats and lints with auto-fix, then type-checks.
	KindLint Kind = "lint"
	// KindLintValidate runs the same checks read-only, for CI.
	KindLintValidate Kind = "lint-validate"
	// KindTest runs the project's pytest suite.
	KindTest Kind = "test"
	// KindTestRust runs the cargo suite of a native extension.
	KindTestRust Kind = "test-rust"
	// KindTestIntegration runs tests marked integration_tests.
	KindTestIntegration Kind = "test-integration"
	// KindInstall installs dependencies, building the native extension
	// where the project has one.
	KindInstall Kind = "install"
	// KindClean removes the project's lockfile.
	KindClean Kind = "clean"
)

// Valid reports whether k names a known template.
func (k Kind) Valid() bool {
	switch k {
	case KindLint, KindLintValidate, KindTest, KindTestRust,
		KindTestIntegration, KindInstall, KindClean:
		return true
	}
	return false
}
