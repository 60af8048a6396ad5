package cmd

import (
	"os"

	"github.com/grovetools/core/cli"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for agperms. Run without a
// subcommand it analyses one session transcript and prints suggestions.
func NewRootCmd() *cobra.Command {
	opts := &suggestOptions{}

	rootCmd := cli.NewStandardCommand(
		"agperms",
		"Suggest permission rules from agent session transcripts",
	)
	rootCmd.Use = "agperms [session_file]"
	rootCmd.Long = "Scan a session transcript for the tool calls the agent made and print a ranked set of " +
		"permission rules that would have pre-approved them. Without a session file, the most recently " +
		"modified transcript of the current directory's project is used."
	rootCmd.Args = cobra.MaximumNArgs(1)
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		opts.applyConfig(loadConfig(), cmd)
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		return runSuggest(cmd.OutOrStdout(), args, cwd, *opts)
	}

	rootCmd.Flags().StringVar(&opts.format, "format", "", "Output format: json, yaml or table (default json)")
	rootCmd.Flags().BoolVar(&opts.excludeAllowed, "exclude-allowed", false, "Omit rules already allowed or denied in the settings files")
	rootCmd.Flags().BoolVar(&opts.splitCompound, "split-compound", false, "Generalize each command of a compound shell line separately")
	rootCmd.Flags().StringVar(&opts.projectsDir, "projects-dir", "", "Session storage root (default ~/.claude/projects)")
	rootCmd.Flags().StringVar(&opts.sessionID, "session", "", "Analyse the transcript with this session ID from any project")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newExplainCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}
