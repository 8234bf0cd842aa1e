package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/shellsim/pkg/shellsim"
	"github.com/arthur-debert/shellsim/pkg/shellsim/catalog"
	"github.com/arthur-debert/shellsim/pkg/shellsim/core"
	"github.com/arthur-debert/shellsim/pkg/shellsim/mastery"
	"github.com/arthur-debert/shellsim/pkg/shellsim/platform"
	"github.com/arthur-debert/shellsim/pkg/shellsim/session"
)

// newSession starts a session for name, or the configured platform when
// name is empty. A nil delay keeps the config or profile boot delay.
func (e *cliEnv) newSession(name string, tracker mastery.Tracker, delay *time.Duration) (*session.Session, error) {
	if name == "" {
		name = e.cfg.Platform
	}
	profile, err := platform.Lookup(name)
	if err != nil {
		return nil, err
	}

	opts := []session.Option{
		session.WithTracker(tracker),
		session.WithLogger(shellsim.Component(e.logger, "session")),
	}
	switch {
	case delay != nil:
		opts = append(opts, session.WithBootDelay(*delay))
	case e.cfg.BootDelay.Set:
		opts = append(opts, session.WithBootDelay(e.cfg.BootDelay.Duration))
	}

	s, err := session.New(profile, opts...)
	if err != nil {
		return nil, err
	}
	e.logger.Info().Str("session", s.ID()).Str("platform", profile.Name).Msg("session started")
	return s, nil
}

func newRunCommand(env *cliEnv) *cobra.Command {
	var (
		platformName string
		noBootDelay  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an interactive simulated terminal",
		Long: `Start an interactive simulated terminal.

Lines starting with a colon control the simulator itself:
  :platform <name>  discard the session and boot mac, linux or windows
  :info             show the session id, platform and mastery progress
  :quit             leave`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var delay *time.Duration
			if noBootDelay {
				zero := time.Duration(0)
				delay = &zero
			}

			r := &repl{
				env:     env,
				in:      bufio.NewScanner(cmd.InOrStdin()),
				out:     cmd.OutOrStdout(),
				render:  newRenderer(cmd.OutOrStdout(), env.cfg.Color),
				tracker: env.openTracker(),
				delay:   delay,
			}
			return r.loop(cmd.Context(), platformName)
		},
	}

	cmd.Flags().StringVarP(&platformName, "platform", "p", "", "platform to simulate: mac, linux or windows")
	cmd.Flags().BoolVar(&noBootDelay, "no-boot-delay", false, "print the boot banner at once")

	return cmd
}

// repl reads lines from in until EOF or :quit.
type repl struct {
	env     *cliEnv
	in      *bufio.Scanner
	out     io.Writer
	render  *renderer
	tracker mastery.Tracker
	delay   *time.Duration

	sess *session.Session
}

func (r *repl) loop(ctx context.Context, name string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := r.start(ctx, name); err != nil {
		return err
	}

	for {
		r.render.Prompt(r.sess.Prompt())
		if !r.in.Scan() {
			fmt.Fprintln(r.out)
			return r.in.Err()
		}
		line := r.in.Text()

		if meta, ok := strings.CutPrefix(strings.TrimSpace(line), ":"); ok {
			quit, err := r.control(ctx, meta)
			if err != nil {
				r.render.Line("", core.Error(err.Error()))
			}
			if quit {
				return nil
			}
			continue
		}

		delta, err := r.sess.Submit(line)
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) != "" && len(r.sess.Transcript()) == 0 {
			r.render.Clear()
			continue
		}
		// The typed line is already on screen.
		for _, l := range delta[min(1, len(delta)):] {
			r.render.Line("", l)
		}
	}
}

func (r *repl) start(ctx context.Context, name string) error {
	s, err := r.env.newSession(name, r.tracker, r.delay)
	if err != nil {
		return err
	}
	r.sess = s
	return s.Boot(ctx, func(l core.Line) { r.render.Line("", l) })
}

// control runs a colon command and reports whether the REPL should exit.
func (r *repl) control(ctx context.Context, meta string) (bool, error) {
	fields := strings.Fields(meta)
	if len(fields) == 0 {
		return false, fmt.Errorf("empty control command, try :quit")
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "q":
		return true, nil
	case "platform":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: :platform mac|linux|windows")
		}
		r.render.Clear()
		return false, r.start(ctx, fields[1])
	case "info":
		r.info()
		return false, nil
	}
	return false, fmt.Errorf("unknown control command %q", fields[0])
}

func (r *repl) info() {
	p := r.sess.Platform()
	r.render.Header(fmt.Sprintf("%s (%s) session %s", p.Name, p.Shell, r.sess.ID()))
	r.render.Line("", core.Output("cwd: " + r.sess.Cwd().String()))

	if m, ok := r.tracker.(interface{ Mastered() []string }); ok {
		mastered := m.Mastered()
		pct := mastery.Percentage(mastered, catalog.Default().Len())
		r.render.Line("", core.Output(fmt.Sprintf("mastery: %d%% (%d verbs)", pct, len(mastered))))
	}
}
