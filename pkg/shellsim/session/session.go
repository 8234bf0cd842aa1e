// Package session drives one simulated terminal: it plays the boot banner,
// feeds submitted lines to the interpreter and keeps the transcript.
//
// A Session is not safe for concurrent use. Switching platforms means
// discarding the session and creating a new one.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/shellsim/pkg/shellsim/catalog"
	"github.com/arthur-debert/shellsim/pkg/shellsim/core"
	"github.com/arthur-debert/shellsim/pkg/shellsim/interp"
	"github.com/arthur-debert/shellsim/pkg/shellsim/mastery"
	"github.com/arthur-debert/shellsim/pkg/shellsim/platform"
	"github.com/arthur-debert/shellsim/pkg/shellsim/vfs"
)

// ErrBooting is returned by Submit before the boot banner has been revealed.
var ErrBooting = errors.New("session is still booting")

// Phase is the lifecycle stage of a session.
type Phase int

const (
	// PhaseBooting means boot lines are still queued and input is refused.
	PhaseBooting Phase = iota
	// PhaseInteractive means the session accepts input.
	PhaseInteractive
)

// String returns the string representation of the Phase
func (p Phase) String() string {
	switch p {
	case PhaseBooting:
		return "booting"
	case PhaseInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// Session is one terminal: a filesystem, a working directory and a transcript.
type Session struct {
	id      string
	profile *platform.Profile
	interp  *interp.Interpreter
	state   interp.State

	phase      Phase
	boot       []core.Line
	transcript []core.Line

	tracker   mastery.Tracker
	bootDelay time.Duration
	logger    zerolog.Logger

	// interpreter options collected before construction
	interpOpts []interp.Option
}

// Option configures a Session.
type Option func(*Session)

// WithTracker sets the mastery tracker notified for every submitted verb.
// A nil tracker is ignored.
func WithTracker(t mastery.Tracker) Option {
	return func(s *Session) {
		if t != nil {
			s.tracker = t
		}
	}
}

// WithLogger sets the logger for the session and its interpreter.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
		s.interpOpts = append(s.interpOpts, interp.WithLogger(logger))
	}
}

// WithClock sets the time source for the boot banner and time-aware commands.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.interpOpts = append(s.interpOpts, interp.WithClock(now))
	}
}

// WithCatalog replaces the command catalog used for fallbacks.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Session) {
		s.interpOpts = append(s.interpOpts, interp.WithCatalog(c))
	}
}

// WithBootDelay overrides the profile's pause between boot lines. Zero
// reveals the banner at once.
func WithBootDelay(d time.Duration) Option {
	return func(s *Session) {
		s.bootDelay = d
	}
}

// New starts a session for profile in the Booting phase.
func New(profile *platform.Profile, opts ...Option) (*Session, error) {
	if profile == nil {
		return nil, fmt.Errorf("session requires a platform profile")
	}

	s := &Session{
		id:        uuid.New().String(),
		profile:   profile,
		phase:     PhaseBooting,
		tracker:   mastery.Nop{},
		bootDelay: profile.BootDelay,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("session", s.id).Str("platform", profile.Name).Logger()
	s.interp = interp.New(profile, s.interpOpts...)

	st, err := s.interp.Initial()
	if err != nil {
		return nil, fmt.Errorf("failed to seed %s session: %w", profile.Name, err)
	}
	s.state = st

	for _, text := range profile.BootLines(s.interp.Now()) {
		s.boot = append(s.boot, core.System(text))
	}
	if len(s.boot) == 0 {
		s.phase = PhaseInteractive
	}

	s.logger.Debug().Int("boot_lines", len(s.boot)).Msg("session created")
	return s, nil
}

// Next reveals the next boot line and appends it to the transcript. It
// returns false once the banner is exhausted, at which point the session
// is Interactive.
func (s *Session) Next() (core.Line, bool) {
	if len(s.boot) == 0 {
		s.enterInteractive()
		return core.Line{}, false
	}
	line := s.boot[0]
	s.boot = s.boot[1:]
	s.transcript = append(s.transcript, line)
	if len(s.boot) == 0 {
		s.enterInteractive()
	}
	return line, true
}

// Boot reveals every queued boot line, pausing between lines for the boot
// delay, and calls reveal for each one. If ctx is canceled first the
// session stays Booting and ctx.Err() is returned.
func (s *Session) Boot(ctx context.Context, reveal func(core.Line)) error {
	var ticker *time.Ticker
	if s.bootDelay > 0 {
		ticker = time.NewTicker(s.bootDelay)
		defer ticker.Stop()
	}

	first := true
	for len(s.boot) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ticker != nil && !first {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
		first = false

		line, _ := s.Next()
		if reveal != nil {
			reveal(line)
		}
	}
	s.enterInteractive()
	return nil
}

func (s *Session) enterInteractive() {
	if s.phase == PhaseInteractive {
		return
	}
	s.phase = PhaseInteractive
	s.logger.Debug().Int("transcript", len(s.transcript)).Msg("session interactive")
}

// Submit interprets one line. It returns the lines appended to the
// transcript; after clear that is nil and the transcript is empty.
func (s *Session) Submit(line string) ([]core.Line, error) {
	if s.phase == PhaseBooting {
		return nil, ErrBooting
	}

	next, res := s.interp.Interpret(line, s.state)
	if res.Verb == "" {
		return nil, nil
	}
	s.tracker.Record(res.Verb)
	s.state = next

	if res.Clear {
		s.transcript = nil
		return nil, nil
	}

	delta := make([]core.Line, 0, len(res.Lines)+1)
	delta = append(delta, core.Input(strings.TrimSpace(line)))
	delta = append(delta, res.Lines...)
	s.transcript = append(s.transcript, delta...)

	s.logger.Trace().Str("verb", res.Verb).Str("stage", res.Stage.String()).Msg("line submitted")
	return delta, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// Platform returns the session's profile.
func (s *Session) Platform() *platform.Profile { return s.profile }

// Tree returns the current filesystem.
func (s *Session) Tree() *vfs.Tree { return s.state.Tree }

// Cwd returns a copy of the working directory.
func (s *Session) Cwd() vfs.Path { return s.state.Cwd.Clone() }

// Prompt renders the prompt for the working directory.
func (s *Session) Prompt() string { return s.profile.Prompt(s.state.Cwd) }

// BootDelay returns the pause used between boot lines.
func (s *Session) BootDelay() time.Duration { return s.bootDelay }

// Transcript returns a copy of every line shown so far.
func (s *Session) Transcript() []core.Line {
	out := make([]core.Line, len(s.transcript))
	copy(out, s.transcript)
	return out
}
