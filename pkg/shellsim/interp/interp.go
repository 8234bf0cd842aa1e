// Package interp is the command interpreter of the simulated terminal. It is
// a pure function over State: interpreting a line never mutates its input and
// returns the next state together with the transcript lines to append.
package interp

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/shellsim/pkg/shellsim/catalog"
	"github.com/arthur-debert/shellsim/pkg/shellsim/core"
	"github.com/arthur-debert/shellsim/pkg/shellsim/platform"
	"github.com/arthur-debert/shellsim/pkg/shellsim/vfs"
)

// State is the mutable part of a terminal: its filesystem and working directory.
type State struct {
	Tree *vfs.Tree
	Cwd  vfs.Path
}

// Stage records which dispatch step handled a line.
type Stage int

const (
	// StageNone means the line was empty.
	StageNone Stage = iota
	// StageBuiltin is a generic built-in such as echo or pwd.
	StageBuiltin
	// StageFilesystem is a built-in operating on the tree.
	StageFilesystem
	// StageExtension is a platform-specific canned command.
	StageExtension
	// StageCatalog is a catalog description fallback.
	StageCatalog
	// StageUnrecognized means nothing knew the verb.
	StageUnrecognized
)

// String returns the string representation of the Stage
func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageBuiltin:
		return "builtin"
	case StageFilesystem:
		return "filesystem"
	case StageExtension:
		return "extension"
	case StageCatalog:
		return "catalog"
	case StageUnrecognized:
		return "unrecognized"
	default:
		return "unknown"
	}
}

// Result describes the effect of one interpreted line.
type Result struct {
	// Verb is the lower-cased first token, empty for a blank line.
	Verb  string
	Args  []string
	Stage Stage
	// Lines are the handler's output, without the input echo.
	Lines []core.Line
	// Clear asks the caller to empty the transcript instead of appending.
	Clear bool
}

// Recognized reports whether a built-in, extension or catalog entry handled the line.
func (r Result) Recognized() bool {
	return r.Stage != StageNone && r.Stage != StageUnrecognized
}

// Interpreter executes lines for one platform profile.
type Interpreter struct {
	profile *platform.Profile
	catalog *catalog.Catalog
	now     func() time.Time
	logger  zerolog.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithClock sets the time source used by date, listings and boot banners.
func WithClock(now func() time.Time) Option {
	return func(in *Interpreter) {
		in.now = now
	}
}

// WithCatalog replaces the embedded catalog used for fallbacks.
func WithCatalog(c *catalog.Catalog) Option {
	return func(in *Interpreter) {
		in.catalog = c
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(in *Interpreter) {
		in.logger = logger
	}
}

// New creates an interpreter for profile.
func New(profile *platform.Profile, opts ...Option) *Interpreter {
	in := &Interpreter{
		profile: profile,
		now:     time.Now,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.catalog == nil {
		in.catalog = catalog.Default()
	}
	return in
}

// Profile returns the interpreter's platform profile.
func (in *Interpreter) Profile() *platform.Profile {
	return in.profile
}

// Now returns the interpreter's current time.
func (in *Interpreter) Now() time.Time {
	return in.now()
}

// Initial returns the seeded state a new session starts from.
func (in *Interpreter) Initial() (State, error) {
	tree, err := in.profile.SeedTree()
	if err != nil {
		return State{}, err
	}
	return State{Tree: tree, Cwd: in.profile.Start.Clone()}, nil
}

// Tokenize trims line and splits it on whitespace into a lower-cased verb
// and case-preserving arguments.
func Tokenize(line string) (verb string, args []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// Interpret runs one line against st. st is never modified; on failure the
// returned state equals st.
func (in *Interpreter) Interpret(line string, st State) (State, Result) {
	verb, args := Tokenize(line)
	if verb == "" {
		return st, Result{}
	}

	res := Result{Verb: verb, Args: args}
	c := call{verb: verb, args: args, state: st}
	canonical := in.profile.Canonical(verb)

	var out outcome
	switch {
	case generic[canonical] != nil:
		res.Stage = StageBuiltin
		out = generic[canonical](in, c)
	case filesystem[canonical] != nil:
		res.Stage = StageFilesystem
		out = filesystem[canonical](in, c)
	case in.profile.Extensions[verb] != nil:
		res.Stage = StageExtension
		out = outcome{state: st, lines: in.profile.Extensions[verb](args, st.Cwd.Clone())}
	default:
		out = in.fallback(c)
		res.Stage = StageUnrecognized
		if out.cataloged {
			res.Stage = StageCatalog
		}
	}

	res.Lines = out.lines
	res.Clear = out.clear

	in.logger.Debug().
		Str("platform", string(in.profile.Platform)).
		Str("verb", verb).
		Str("stage", res.Stage.String()).
		Int("lines", len(res.Lines)).
		Msg("interpreted command")

	if out.state.Tree == nil {
		out.state = st
	}
	return out.state, res
}

func (in *Interpreter) fallback(c call) outcome {
	if e, ok := in.catalog.Lookup(c.verb, in.profile.Platform); ok {
		return outcome{state: c.state, lines: []core.Line{in.profile.Messages.Catalog(c.verb, e)}, cataloged: true}
	}
	return outcome{state: c.state, lines: []core.Line{core.Error(in.profile.Messages.Unrecognized(c.verb))}}
}
