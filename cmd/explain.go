package cmd

import (
	"fmt"
	"strings"

	grovelogging "github.com/grovetools/core/logging"
	"github.com/spf13/cobra"

	"github.com/grovetools/agentperms/internal/permission"
)

var ulogExplain = grovelogging.NewUnifiedLogger("agperms.cmd.explain")

func newExplainCmd() *cobra.Command {
	var splitCompound bool

	cmd := &cobra.Command{
		Use:   "explain <command...>",
		Short: "Show the permission rule a shell command generalizes to",
		Long:  "Show the permission rule a literal shell command would be suggested under, or that it needs none. Everything after the first argument is taken as part of the command.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := strings.Join(args, " ")

			sources := []string{command}
			if splitCompound {
				sources = permission.SplitCompound(command)
			}

			for _, src := range sources {
				rule, ok := permission.Generalize(src)
				pretty := fmt.Sprintf("%s -> %s\n", src, rule)
				if !ok {
					pretty = fmt.Sprintf("%s -> (no rule needed)\n", src)
				}
				ulogExplain.Info("Generalized command").
					Field("command", src).
					Field("rule", rule).
					Field("suggested", ok).
					Pretty(pretty).
					PrettyOnly().
					Emit()
			}
			return nil
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVar(&splitCompound, "split-compound", false, "Split compound shell lines and explain each command")

	return cmd
}
