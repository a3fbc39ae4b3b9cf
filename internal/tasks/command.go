// Package tasks turns project metadata into concrete build commands.
//
// A task of a given Kind expands, for one project, into an ordered list of
// CommandSpecs. Aggregates group those expansions across the whole
// workspace. Expansion is pure: nothing here touches the filesystem or
// spawns processes.
package tasks

import "strings"

// CommandSpec is one external invocation: an executable name, its
// arguments, and the directory it runs in, relative to the workspace root.
type CommandSpec struct {
	Dir  string
	Name string
	Args []string
}

// String renders the spec the way a user would type it in a shell. Used in
// status lines and error messages; arguments are not quoted.
func (c CommandSpec) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}
