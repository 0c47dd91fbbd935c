package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/santorini/cli"
	"github.com/grovetools/santorini/precommit"
)

func NewHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage the repository's pre-commit hook setup",
		Long: `Checks and installs the git pre-commit hook that runs the external
pre-commit framework against .pre-commit-config.yaml.`,
	}

	cmd.PersistentFlags().String("repo", ".", "Path to the git repository")

	cmd.AddCommand(newHooksCheckCmd())
	cmd.AddCommand(newHooksInstallCmd())
	cmd.AddCommand(newHooksUninstallCmd())
	return cmd
}

func newHooksCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate .pre-commit-config.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)
			repoPath, _ := cmd.Flags().GetString("repo")
			out := cmd.OutOrStdout()

			path, err := precommit.FindConfig(repoPath)
			if err != nil {
				return handler.Handle(err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return handler.Handle(err)
			}

			validator, err := precommit.NewSchemaValidator()
			if err != nil {
				return handler.Handle(err)
			}
			if err := validator.ValidateYAML(data); err != nil {
				return handler.Handle(err)
			}

			cfg, err := precommit.LoadBytes(data)
			if err != nil {
				return handler.Handle(err)
			}
			if err := cfg.Validate(); err != nil {
				return handler.Handle(err)
			}

			fmt.Fprintf(out, "✅ %s is valid\n", path)
			for _, repo := range cfg.Repos {
				fmt.Fprintf(out, "  %s @ %s\n", repo.Repo, repo.Rev)
				for _, hook := range repo.Hooks {
					fmt.Fprintf(out, "    - %s\n", hook.ID)
				}
			}
			return nil
		},
	}
}

func newHooksInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install the git pre-commit hook",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.GetLogger(cmd)
			handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)
			repoPath, _ := cmd.Flags().GetString("repo")

			// The config must exist and be valid before wiring it into git
			path, err := precommit.FindConfig(repoPath)
			if err != nil {
				return handler.Handle(err)
			}
			cfg, err := precommit.Load(path)
			if err != nil {
				return handler.Handle(err)
			}
			if err := cfg.Validate(); err != nil {
				return handler.Handle(err)
			}

			logger.WithField("repo", repoPath).Debug("installing pre-commit hook")
			manager := precommit.NewHookManager("")
			if err := manager.InstallHook(cmd.Context(), repoPath); err != nil {
				return handler.Handle(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Installed pre-commit hook (%d hooks configured)\n", len(cfg.HookIDs()))
			return nil
		},
	}
}

func newHooksUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the managed git pre-commit hook",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)
			repoPath, _ := cmd.Flags().GetString("repo")

			manager := precommit.NewHookManager("")
			if err := manager.UninstallHook(cmd.Context(), repoPath); err != nil {
				return handler.Handle(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✅ Removed pre-commit hook")
			return nil
		},
	}
}
