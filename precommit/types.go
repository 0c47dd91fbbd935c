// Package precommit models the .pre-commit-config.yaml hook configuration:
// which lint/format tools run before a commit and which revision of each
// tool's repository is pinned. Running the hooks themselves is left to the
// external pre-commit framework.
package precommit

// ConfigFileName is the canonical configuration file name.
const ConfigFileName = ".pre-commit-config.yaml"

// Config is the root of a pre-commit configuration document.
type Config struct {
	Repos []Repo `yaml:"repos" json:"repos"`
}

// Repo pins one hook repository to a revision and selects hooks from it.
type Repo struct {
	// Repo is the hook repository URL.
	Repo string `yaml:"repo" json:"repo"`
	// Rev is the pinned revision: a tag or commit hash that must resolve in
	// the referenced repository.
	Rev   string `yaml:"rev" json:"rev"`
	Hooks []Hook `yaml:"hooks" json:"hooks"`
}

// Hook selects a single hook published by its repository.
type Hook struct {
	ID string `yaml:"id" json:"id"`
	// Args are extra command line arguments passed to the hook.
	Args []string `yaml:"args,omitempty" json:"args,omitempty"`
	// LanguageVersion overrides the language runtime version the hook runs
	// under (e.g. "python3.11").
	LanguageVersion string `yaml:"language_version,omitempty" json:"language_version,omitempty"`
}

// HookIDs returns the hook IDs declared across all repositories, in order.
func (c *Config) HookIDs() []string {
	var ids []string
	for _, repo := range c.Repos {
		for _, hook := range repo.Hooks {
			ids = append(ids, hook.ID)
		}
	}
	return ids
}
