package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	grovelogging "github.com/grovetools/core/logging"
	"github.com/spf13/cobra"

	agperms_config "github.com/grovetools/agentperms/config"
	"github.com/grovetools/agentperms/internal/permission"
	"github.com/grovetools/agentperms/internal/report"
	"github.com/grovetools/agentperms/internal/session"
	"github.com/grovetools/agentperms/internal/settings"
)

type suggestOptions struct {
	format         string
	excludeAllowed bool
	splitCompound  bool
	projectsDir    string
	sessionID      string
	settingsFiles  []string
}

// applyConfig fills every option whose flag was not given from cfg.
func (o *suggestOptions) applyConfig(cfg agperms_config.Config, cmd *cobra.Command) {
	flags := cmd.Flags()
	if !flags.Changed("format") {
		o.format = cfg.Report.Format
	}
	if !flags.Changed("exclude-allowed") {
		o.excludeAllowed = cfg.Report.ExcludeAllowed
	}
	if !flags.Changed("split-compound") {
		o.splitCompound = cfg.Report.SplitCompound
	}
	if !flags.Changed("projects-dir") {
		o.projectsDir = cfg.Sessions.ProjectsDir
	}
	o.settingsFiles = cfg.Report.SettingsFiles
}

func runSuggest(out io.Writer, args []string, cwd string, opts suggestOptions) error {
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	locator, err := session.NewLocator(opts.projectsDir)
	if err != nil {
		return err
	}

	var path string
	switch {
	case opts.sessionID != "" && len(args) > 0:
		return fmt.Errorf("--session cannot be combined with a session file argument")
	case opts.sessionID != "":
		path, err = locator.ResolveSessionID(opts.sessionID)
	case len(args) > 0:
		path, err = locator.Resolve(args[0], cwd)
	default:
		path, err = locator.Resolve("", cwd)
	}
	if errors.Is(err, session.ErrNotFound) {
		if err := report.Render(out, report.NotFound(), format); err != nil {
			return err
		}
		return report.ErrReported
	}
	if err != nil {
		return fmt.Errorf("failed to resolve session file: %w", err)
	}

	uses, err := permission.ExtractFile(path)
	if err != nil {
		return fmt.Errorf("failed to read session file: %w", err)
	}

	suggestions := permission.Aggregate(uses, permission.Options{SplitCompound: opts.splitCompound})

	if opts.excludeAllowed {
		paths := opts.settingsFiles
		if len(paths) == 0 {
			homeDir, _ := os.UserHomeDir()
			paths = settings.DefaultPaths(homeDir, cwd)
		}
		rules, err := settings.Load(paths...)
		if err != nil {
			return err
		}
		grovelogging.NewLogger("agperms-suggest").
			WithField("sources", rules.Sources).
			WithField("allow", len(rules.Allow)).
			WithField("deny", len(rules.Deny)).
			Debug("Loaded permission settings")
		// Denied rules are never suggested back.
		suggestions = suggestions.Without(rules.Allow).Without(rules.Deny)
	}

	return report.Render(out, report.New(path, suggestions), format)
}
