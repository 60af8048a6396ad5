package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/agentperms/internal/report"
	"github.com/grovetools/agentperms/internal/session"
)

func newListCmd() *cobra.Command {
	var jsonOutput bool
	var projectsDir string

	cmd := &cobra.Command{
		Use:   "list [flags]",
		Short: "List session transcripts for the current project",
		Long:  "List the session transcripts of the current directory's project, most recently modified first. The first entry is the one analysed when no session file is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("projects-dir") {
				projectsDir = loadConfig().Sessions.ProjectsDir
			}
			locator, err := session.NewLocator(projectsDir)
			if err != nil {
				return err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			logs, err := locator.List(cwd)
			if err != nil && !errors.Is(err, session.ErrNotFound) {
				return fmt.Errorf("failed to list session logs: %w", err)
			}
			if len(logs) == 0 {
				fmt.Fprintf(out, "No session transcripts found for project '%s'\n", session.ProjectID(cwd))
				return nil
			}

			if jsonOutput {
				data, err := json.MarshalIndent(logs, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal sessions to JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
			} else {
				report.PrintSessionsTable(logs, out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&projectsDir, "projects-dir", "", "Session storage root (default ~/.claude/projects)")

	return cmd
}
