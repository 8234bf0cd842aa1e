package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/shellsim/pkg/shellsim"
	"github.com/arthur-debert/shellsim/pkg/shellsim/catalog"
	"github.com/arthur-debert/shellsim/pkg/shellsim/core"
	"github.com/arthur-debert/shellsim/pkg/shellsim/mastery"
)

func newMasteryCommand(env *cliEnv) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "mastery",
		Short: "Show which command verbs you have practiced",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := env.cfg.masteryPath()
			if err != nil {
				return err
			}
			f, err := mastery.Open(path, mastery.WithLogger(shellsim.Component(env.logger, "mastery")))
			if err != nil {
				return err
			}

			render := newRenderer(cmd.OutOrStdout(), env.cfg.Color)
			if reset {
				if err := f.Reset(); err != nil {
					return fmt.Errorf("failed to reset mastery progress: %w", err)
				}
				render.Line("", core.System("Mastery progress purged."))
				return nil
			}

			mastered := f.Mastered()
			pct := mastery.Percentage(mastered, catalog.Default().Len())
			render.Header(fmt.Sprintf("Mastery %d%%", pct))
			if len(mastered) == 0 {
				render.Line("", core.Output("No commands practiced yet. Try: shellsim run"))
				return nil
			}
			render.Line("", core.Output(strings.Join(mastered, "  ")))
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "forget all recorded progress")

	return cmd
}
