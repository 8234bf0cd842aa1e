package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

func newExecCommand(env *cliEnv) *cobra.Command {
	var (
		platformName string
		boot         bool
	)

	cmd := &cobra.Command{
		Use:   "exec [command]...",
		Short: "Run commands in a fresh simulated terminal and print the transcript",
		Long: `Run each argument as one line typed into a freshly booted simulated terminal
and print the resulting transcript. The boot banner is skipped unless --boot is set.`,
		Example: `  shellsim exec --platform linux "mkdir projects" "cd projects" "pwd"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zero := time.Duration(0)
			s, err := env.newSession(platformName, env.openTracker(), &zero)
			if err != nil {
				return err
			}

			render := newRenderer(cmd.OutOrStdout(), env.cfg.Color)
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := s.Boot(ctx, nil); err != nil {
				return err
			}
			if boot {
				render.Lines("", s.Transcript())
			}

			for _, line := range args {
				prompt := s.Prompt()
				delta, err := s.Submit(line)
				if err != nil {
					return err
				}
				render.Lines(prompt, delta)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&platformName, "platform", "p", "", "platform to simulate: mac, linux or windows")
	cmd.Flags().BoolVar(&boot, "boot", false, "print the boot banner first")

	return cmd
}
