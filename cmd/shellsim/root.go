package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/shellsim/pkg/shellsim"
	"github.com/arthur-debert/shellsim/pkg/shellsim/mastery"
)

// cliEnv is shared by every subcommand. It is filled in by the root
// command's PersistentPreRunE.
type cliEnv struct {
	configPath string
	logLevel   string
	verbose    int

	cfg    Config
	logger zerolog.Logger
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

func newRootCommand() *cobra.Command {
	env := &cliEnv{logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "shellsim",
		Short: "A simulated terminal for practicing shell commands",
		Long: `shellsim simulates macOS, Ubuntu and Windows PowerShell terminals on top of
an in-memory filesystem. Nothing typed is ever executed: built-in commands act on
the simulated tree and everything else is answered from a command reference catalog.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&env.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/shellsim/config.toml)")
	cmd.PersistentFlags().StringVar(&env.logLevel, "log-level", "", "log level: trace, debug, info, warn or error")
	cmd.PersistentFlags().CountVarP(&env.verbose, "verbose", "v", "increase log verbosity (repeatable)")

	cmd.AddCommand(newVersionCommand())
	cmd.AddCommand(newRunCommand(env))
	cmd.AddCommand(newExecCommand(env))
	cmd.AddCommand(newCatalogCommand(env))
	cmd.AddCommand(newMasteryCommand(env))

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (e *cliEnv) setup(cmd *cobra.Command) error {
	cfg, unknown, err := loadConfig(e.configPath)
	if err != nil {
		return err
	}
	e.cfg = cfg

	level, err := e.level()
	if err != nil {
		return err
	}
	e.logger = shellsim.NewLogger(cmd.ErrOrStderr(), level)

	for _, key := range unknown {
		e.logger.Warn().Str("key", key).Msg("ignoring unknown config key")
	}
	e.logger.Debug().Str("command", cmd.Name()).Str("platform", cfg.Platform).Msg("configuration loaded")
	return nil
}

// level picks --log-level, then -v, then the config file.
func (e *cliEnv) level() (zerolog.Level, error) {
	if e.logLevel != "" {
		level, err := shellsim.LogLevelFromString(e.logLevel)
		if err != nil {
			return zerolog.NoLevel, fmt.Errorf("invalid --log-level: %w", err)
		}
		return level, nil
	}
	if e.verbose > 0 {
		return shellsim.LevelFromVerbosity(e.verbose), nil
	}
	level, err := shellsim.LogLevelFromString(e.cfg.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log_level in config: %w", err)
	}
	return level, nil
}

// openTracker opens the persistent mastery file. If that fails the session
// still runs with an in-memory tracker.
func (e *cliEnv) openTracker() mastery.Tracker {
	path, err := e.cfg.masteryPath()
	if err == nil {
		var f *mastery.File
		f, err = mastery.Open(path, mastery.WithLogger(shellsim.Component(e.logger, "mastery")))
		if err == nil {
			return f
		}
	}
	e.logger.Warn().Err(err).Msg("mastery progress will not be saved")
	return mastery.NewMemory()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  `Print the version number of shellsim`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "shellsim version %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
