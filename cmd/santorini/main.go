package main

import (
	"os"
	"runtime"

	"github.com/grovetools/santorini/cli"
	"github.com/grovetools/santorini/cmd"
	"github.com/grovetools/santorini/version"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"santorini",
		"Play, replay, and spectate Santorini games in the terminal",
	)
	rootCmd.Version = version.Version
	cli.SetVersionTemplate(rootCmd, cli.VersionInfo{
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
		BuildArch: runtime.GOARCH,
	})

	// Add subcommands
	rootCmd.AddCommand(cmd.NewPlayCmd())
	rootCmd.AddCommand(cmd.NewReplayCmd())
	rootCmd.AddCommand(cmd.NewSpectateCmd())
	rootCmd.AddCommand(cmd.NewHooksCmd())
	rootCmd.AddCommand(cmd.NewConfigCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
