package interp

import (
	"errors"
	"strings"

	"github.com/arthur-debert/shellsim/pkg/shellsim/core"
	"github.com/arthur-debert/shellsim/pkg/shellsim/vfs"
)

type call struct {
	// verb is the lower-cased verb as typed, before alias resolution.
	verb  string
	args  []string
	state State
}

type outcome struct {
	state     State
	lines     []core.Line
	clear     bool
	cataloged bool
}

type handler func(in *Interpreter, c call) outcome

// generic built-ins behave alike on every platform apart from their text.
var generic = map[string]handler{
	"help":     builtinHelp,
	"clear":    builtinClear,
	"pwd":      builtinPwd,
	"whoami":   builtinWhoami,
	"hostname": builtinHostname,
	"date":     builtinDate,
	"echo":     builtinEcho,
}

// filesystem built-ins read or write the tree.
var filesystem = map[string]handler{
	"ls":    builtinLs,
	"cd":    builtinCd,
	"mkdir": builtinMkdir,
	"touch": builtinTouch,
	"rm":    builtinRm,
	"cat":   builtinCat,
}

var quoteStripper = strings.NewReplacer(`"`, "", `'`, "")

func (c call) say(lines ...core.Line) outcome {
	return outcome{state: c.state, lines: lines}
}

// operand returns the first argument that is not a flag.
func (c call) operand() (string, bool) {
	for _, a := range c.args {
		if !strings.HasPrefix(a, "-") {
			return a, true
		}
	}
	return "", false
}

func builtinHelp(in *Interpreter, c call) outcome {
	return c.say(core.Output(in.profile.Help))
}

func builtinClear(_ *Interpreter, c call) outcome {
	return outcome{state: c.state, clear: true}
}

func builtinPwd(in *Interpreter, c call) outcome {
	return c.say(core.Output(in.profile.Pwd(c.state.Cwd)))
}

func builtinWhoami(in *Interpreter, c call) outcome {
	return c.say(core.Output(in.profile.User))
}

func builtinHostname(in *Interpreter, c call) outcome {
	return c.say(core.Output(in.profile.Host))
}

func builtinDate(in *Interpreter, c call) outcome {
	return c.say(core.Output(in.profile.Date(in.now())))
}

func builtinEcho(_ *Interpreter, c call) outcome {
	return c.say(core.Output(quoteStripper.Replace(strings.Join(c.args, " "))))
}

func builtinLs(in *Interpreter, c call) outcome {
	entries, err := c.state.Tree.List(c.state.Cwd)
	if err != nil {
		in.logger.Warn().Err(err).Str("cwd", c.state.Cwd.String()).Msg("working directory does not resolve")
		return c.say()
	}
	return c.say(core.Output(in.profile.Listing(c.state.Cwd, entries, in.now())))
}

func builtinCd(in *Interpreter, c call) outcome {
	target, _ := c.operand()
	st := c.state

	switch target {
	case "", "~", `\`:
		st.Cwd = in.profile.Start.Clone()
		return outcome{state: st}
	case "..":
		if len(st.Cwd) > 1 {
			st.Cwd = st.Cwd.Parent()
		}
		return outcome{state: st}
	}

	name := strings.TrimRight(target, `/\`)
	if name == "" {
		name = target
	}
	node, err := st.Tree.Resolve(st.Cwd.Join(name))
	if err != nil || !node.IsDir() {
		return c.say(core.Error(in.profile.Messages.CdNotFound(c.verb, name, st.Cwd)))
	}
	st.Cwd = st.Cwd.Join(name)
	return outcome{state: st}
}

func builtinMkdir(in *Interpreter, c call) outcome {
	name, ok := c.operand()
	if !ok {
		return c.say()
	}
	tree, err := c.state.Tree.Mkdir(c.state.Cwd, name)
	if err != nil {
		return c.say(in.failure(c, name, err))
	}
	out := outcome{state: State{Tree: tree, Cwd: c.state.Cwd}}
	if in.profile.MkdirEcho != nil {
		out.lines = append(out.lines, core.Output(in.profile.MkdirEcho(c.state.Cwd, name, in.now())))
	}
	return out
}

func builtinTouch(in *Interpreter, c call) outcome {
	name, ok := c.operand()
	if !ok {
		return c.say()
	}
	tree, err := c.state.Tree.CreateFile(c.state.Cwd, name, "")
	if err != nil {
		return c.say(in.failure(c, name, err))
	}
	return outcome{state: State{Tree: tree, Cwd: c.state.Cwd}}
}

func builtinRm(in *Interpreter, c call) outcome {
	name, ok := c.operand()
	if !ok {
		return c.say()
	}
	tree, err := c.state.Tree.Remove(c.state.Cwd, name)
	if err != nil {
		return c.say(in.failure(c, name, err))
	}
	return outcome{state: State{Tree: tree, Cwd: c.state.Cwd}}
}

func builtinCat(in *Interpreter, c call) outcome {
	name, ok := c.operand()
	if !ok {
		return c.say()
	}
	content, err := c.state.Tree.ReadFile(c.state.Cwd.Join(name))
	if err != nil {
		return c.say(in.failure(c, name, err))
	}
	return c.say(core.Output(content))
}

// failure renders a tree error as one line in the platform's idiom.
func (in *Interpreter) failure(c call, target string, err error) core.Line {
	msgs := in.profile.Messages

	var text string
	switch {
	case errors.Is(err, vfs.ErrInvalidName):
		text = msgs.InvalidName(c.verb, target, c.state.Cwd)
	case errors.Is(err, vfs.ErrIsADirectory):
		text = msgs.IsADirectory(c.verb, target, c.state.Cwd)
	default:
		text = msgs.NotFound(c.verb, target, c.state.Cwd)
	}

	in.logger.Debug().Err(err).Str("verb", c.verb).Str("target", target).Msg("command failed")
	return core.Error(text)
}
