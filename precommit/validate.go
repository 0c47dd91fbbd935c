package precommit

import (
	"fmt"

	"github.com/grovetools/santorini/errors"
)

// Validate performs structural validation of the configuration. Whether a
// rev resolves in the referenced repository, and whether a hook ID is one
// that repository publishes, is enforced by the external pre-commit
// framework and not checked here.
func (c *Config) Validate() error {
	if len(c.Repos) == 0 {
		return errors.HookConfigInvalid("at least one repository entry is required")
	}

	for i, repo := range c.Repos {
		if repo.Repo == "" {
			return errors.HookConfigInvalid(fmt.Sprintf("repos[%d]: repo URL cannot be empty", i)).
				WithDetail("index", i)
		}
		if repo.Rev == "" {
			return errors.HookConfigInvalid(fmt.Sprintf("repos[%d] (%s): rev cannot be empty", i, repo.Repo)).
				WithDetail("repo", repo.Repo)
		}
		if len(repo.Hooks) == 0 {
			return errors.HookConfigInvalid(fmt.Sprintf("repos[%d] (%s): at least one hook is required", i, repo.Repo)).
				WithDetail("repo", repo.Repo)
		}

		seen := make(map[string]bool)
		for j, hook := range repo.Hooks {
			if hook.ID == "" {
				return errors.HookConfigInvalid(fmt.Sprintf("repos[%d].hooks[%d]: hook id cannot be empty", i, j)).
					WithDetail("repo", repo.Repo)
			}
			if seen[hook.ID] {
				return errors.HookConfigInvalid(fmt.Sprintf("repos[%d] (%s): duplicate hook id '%s'", i, repo.Repo, hook.ID)).
					WithDetail("repo", repo.Repo).
					WithDetail("hook", hook.ID)
			}
			seen[hook.ID] = true
		}
	}

	return nil
}
