package registry

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// workspaceConfig represents the projects section of the .mountaineer.yaml
// configuration file. Only paths can be overridden; the project set itself
// is fixed.
type workspaceConfig struct {
	Projects map[string]struct {
		Path string `yaml:"path"`
	} `yaml:"projects"`
}

// LoadOverrides applies project path overrides from a .mountaineer.yaml
// file. A missing file is not an error. Call it during setup, before the
// registry is handed to task generation.
func (r *Registry) LoadOverrides(configPath string) error {
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var config workspaceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parse %s: %w", configPath, err)
	}

	for key, override := range config.Projects {
		found := false
		for i := range r.projects {
			if r.projects[i].Key != key {
				continue
			}
			found = true
			if override.Path != "" {
				r.projects[i].Path = override.Path
			}
		}
		if !found {
			return fmt.Errorf("%s: unknown project %q", configPath, key)
		}
	}

	return nil
}
