package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const defConfigFile = "prsync.toml"

type arguments struct {
	Verbose    bool
	ConfigFile string
	DryRun     bool
	WorkDir    string
}

func (a *arguments) register(flags *pflag.FlagSet) {
	flags.BoolVarP(&a.Verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVarP(&a.ConfigFile, "cfg-file", "c", defConfigFile, "path to the prsync configuration file (TOML or YAML)")
	flags.BoolVar(&a.DryRun, "dry-run", false, "do not push branches and do not change anything on github")
	flags.StringVar(&a.WorkDir, "work-dir", "", "directory the repository is cloned into, overrides work_dir from the configuration file")
}

func newRootCmd() *cobra.Command {
	var args arguments

	root := &cobra.Command{
		Use:   appName,
		Short: "Run commands on branches and keep the results in sync via pull requests",
		Long: `prsync runs a list of commands on branches of a GitHub repository, commits the
resulting changes and pushes them to pull requests. Conflicts with the base
branch are resolved by re-running the commands.`,
		SilenceUsage: true,
	}

	args.register(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Process the branches affected by the GitHub Actions event",
			Long: `Reads GITHUB_EVENT_NAME and GITHUB_EVENT_PATH. Push and pull request events
synchronize the pushed branch or the pull request head branch, closed pull
requests and all other events cause a scan of all open pull requests.`,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return execute(cmd.Context(), &args, cmd.OutOrStdout(), false)
			},
		},
		&cobra.Command{
			Use:   "batch",
			Short: "Process all open pull requests",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return execute(cmd.Context(), &args, cmd.OutOrStdout(), true)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, Version)
			},
		},
	)

	return root
}
