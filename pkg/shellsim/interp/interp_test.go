package interp_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/shellsim/pkg/shellsim/core"
	"github.com/arthur-debert/shellsim/pkg/shellsim/interp"
	"github.com/arthur-debert/shellsim/pkg/shellsim/platform"
	"github.com/arthur-debert/shellsim/pkg/shellsim/vfs"
)

var fixedNow = time.Date(2026, time.October, 19, 14, 30, 0, 0, time.UTC)

func newInterp(t *testing.T, p *platform.Profile) (*interp.Interpreter, interp.State) {
	t.Helper()
	in := interp.New(p, interp.WithClock(func() time.Time { return fixedNow }))
	st, err := in.Initial()
	require.NoError(t, err)
	return in, st
}

// run interprets lines in order and returns the final state and all results.
func run(in *interp.Interpreter, st interp.State, lines ...string) (interp.State, []interp.Result) {
	results := make([]interp.Result, 0, len(lines))
	for _, line := range lines {
		var res interp.Result
		st, res = in.Interpret(line, st)
		results = append(results, res)
	}
	return st, results
}

func errorLines(results []interp.Result) []core.Line {
	var out []core.Line
	for _, r := range results {
		for _, l := range r.Lines {
			if l.Kind == core.LineError {
				out = append(out, l)
			}
		}
	}
	return out
}

func TestTokenize(t *testing.T) {
	verb, args := interp.Tokenize("  GIT   Status  --Short ")
	assert.Equal(t, "git", verb)
	assert.Equal(t, []string{"Status", "--Short"}, args)

	verb, args = interp.Tokenize(" \t ")
	assert.Empty(t, verb)
	assert.Empty(t, args)
}

func TestEmptyLineIsNoOp(t *testing.T) {
	in, st := newInterp(t, platform.Linux())

	next, res := in.Interpret("   ", st)
	assert.Equal(t, interp.StageNone, res.Stage)
	assert.Empty(t, res.Verb)
	assert.Empty(t, res.Lines)
	assert.Same(t, st.Tree, next.Tree)
	assert.Equal(t, st.Cwd, next.Cwd)
}

func TestLinuxMkdirCdPwd(t *testing.T) {
	in, st := newInterp(t, platform.Linux())

	st, results := run(in, st, "mkdir projects", "cd projects", "pwd")

	assert.Empty(t, errorLines(results))
	assert.Equal(t, vfs.Path{"~", "projects"}, st.Cwd)
	require.Len(t, results[2].Lines, 1)
	assert.Equal(t, "/home/root/projects", results[2].Lines[0].Text)
	assert.Equal(t, "root@ubuntu:~/projects#", in.Profile().Prompt(st.Cwd))
}

func TestMacCatMissingFile(t *testing.T) {
	in, st := newInterp(t, platform.Mac())

	next, res := in.Interpret("cat missing.txt", st)

	require.Len(t, res.Lines, 1)
	assert.Equal(t, core.LineError, res.Lines[0].Kind)
	assert.Equal(t, "cat: missing.txt: No such file or directory", res.Lines[0].Text)
	assert.Same(t, st.Tree, next.Tree)
}

func TestCatVariants(t *testing.T) {
	testCases := []struct {
		name    string
		profile *platform.Profile
		line    string
		kind    core.LineKind
		text    string
	}{
		{"mac file", platform.Mac(), "cat config.yml", core.LineOutput, "theme: dark\nversion: 1.0.0"},
		{"mac directory", platform.Mac(), "cat Projects", core.LineError, "cat: Projects: Is a directory"},
		{"linux directory", platform.Linux(), "cat scripts", core.LineError, "cat: scripts: Is a directory"},
		{"linux missing", platform.Linux(), "cat nope", core.LineError, "cat: nope: No such file or directory"},
		{"windows missing", platform.Windows(), "type nope.txt", core.LineError, `type : Cannot find path 'C:\nope.txt' because it does not exist.`},
		{"windows directory", platform.Windows(), "gc Users", core.LineError, `gc : Access to the path 'C:\Users' is denied.`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in, st := newInterp(t, tc.profile)
			_, res := in.Interpret(tc.line, st)
			require.Len(t, res.Lines, 1)
			assert.Equal(t, tc.kind, res.Lines[0].Kind)
			assert.Equal(t, tc.text, res.Lines[0].Text)
		})
	}
}

func TestCatEmptyFile(t *testing.T) {
	in, st := newInterp(t, platform.Mac())

	_, results := run(in, st, "touch empty.txt", "cat empty.txt")
	require.Len(t, results[1].Lines, 1)
	assert.Equal(t, core.Output(""), results[1].Lines[0])
}

func TestWindowsDirListsSeededEntries(t *testing.T) {
	in, st := newInterp(t, platform.Windows())

	_, res := in.Interpret("dir", st)
	assert.Equal(t, interp.StageFilesystem, res.Stage)
	require.Len(t, res.Lines, 1)

	lines := strings.Split(res.Lines[0].Text, "\n")
	assert.Equal(t, `    Directory: C:\`, lines[0])

	rows := lines[4:]
	require.Len(t, rows, 2)
	assert.True(t, strings.HasPrefix(rows[0], "d-----"))
	assert.True(t, strings.HasSuffix(rows[0], " Users"))
	assert.True(t, strings.HasPrefix(rows[1], "d-----"))
	assert.True(t, strings.HasSuffix(rows[1], " Windows"))
	assert.Contains(t, rows[0], "10/19/2026")
}

func TestMacLsMarksDirectories(t *testing.T) {
	in, st := newInterp(t, platform.Mac())

	_, res := in.Interpret("ls", st)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "Projects/  Downloads/  config.yml", res.Lines[0].Text)
}

func TestCdDotDotAtTopIsIdempotent(t *testing.T) {
	for _, p := range []*platform.Profile{platform.Mac(), platform.Linux(), platform.Windows()} {
		t.Run(p.Name, func(t *testing.T) {
			in, st := newInterp(t, p)
			start := st.Cwd.Clone()

			st, results := run(in, st, "cd ..", "cd ..", "cd ..")
			assert.Equal(t, start, st.Cwd)
			for _, r := range results {
				assert.Empty(t, r.Lines)
			}
		})
	}
}

func TestCdRoundTrip(t *testing.T) {
	in, st := newInterp(t, platform.Windows())

	st, _ = run(in, st, `cd Users\`)
	before := st.Cwd.Clone()
	assert.Equal(t, vfs.Path{"C:", "Users"}, before)

	st, _ = run(in, st, "cd Administrator", "cd ..")
	assert.Equal(t, before, st.Cwd)
}

func TestCdHome(t *testing.T) {
	in, st := newInterp(t, platform.Mac())

	st, _ = run(in, st, "cd Projects/", "cd website")
	assert.Equal(t, vfs.Path{"~", "Projects", "website"}, st.Cwd)
	assert.Equal(t, "admin@macbook website %", in.Profile().Prompt(st.Cwd))

	st, _ = run(in, st, "cd")
	assert.Equal(t, vfs.Path{"~"}, st.Cwd)

	st, _ = run(in, st, "cd Projects", "cd ~")
	assert.Equal(t, vfs.Path{"~"}, st.Cwd)
}

func TestCdFailures(t *testing.T) {
	testCases := []struct {
		name    string
		profile *platform.Profile
		line    string
		text    string
	}{
		{"mac missing", platform.Mac(), "cd nowhere", "cd: no such file or directory: nowhere"},
		{"mac into file", platform.Mac(), "cd config.yml", "cd: no such file or directory: config.yml"},
		{"linux missing", platform.Linux(), "cd nowhere/", "bash: cd: nowhere: No such file or directory"},
		{"windows missing", platform.Windows(), "cd nowhere", `cd : Cannot find path 'C:\nowhere' because it does not exist.`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in, st := newInterp(t, tc.profile)
			next, res := in.Interpret(tc.line, st)
			require.Len(t, res.Lines, 1)
			assert.Equal(t, core.Error(tc.text), res.Lines[0])
			assert.Equal(t, st.Cwd, next.Cwd)
		})
	}
}

func TestMissingOperandIsSilent(t *testing.T) {
	in, st := newInterp(t, platform.Linux())

	for _, line := range []string{"mkdir", "touch", "rm", "cat", "rm -rf"} {
		next, res := in.Interpret(line, st)
		assert.Empty(t, res.Lines, line)
		assert.Same(t, st.Tree, next.Tree, line)
	}
}

func TestMkdirCollisionOverwrites(t *testing.T) {
	in, st := newInterp(t, platform.Linux())

	st, results := run(in, st, "mkdir scripts", "ls")
	assert.Empty(t, errorLines(results))

	n, err := st.Tree.Resolve(vfs.Path{"~", "scripts"})
	require.NoError(t, err)
	assert.Equal(t, 0, n.Len())
	assert.Equal(t, "scripts/  server.conf", results[1].Lines[0].Text)
}

func TestMkdirInvalidName(t *testing.T) {
	in, st := newInterp(t, platform.Mac())

	next, res := in.Interpret("mkdir a/b", st)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, core.Error("mkdir: a/b: Invalid argument"), res.Lines[0])
	assert.Same(t, st.Tree, next.Tree)
}

func TestWindowsMkdirEchoesTable(t *testing.T) {
	in, st := newInterp(t, platform.Windows())

	st, res := in.Interpret("md Temp", st)
	require.Len(t, res.Lines, 1)
	assert.Contains(t, res.Lines[0].Text, `Directory: C:\`)
	assert.True(t, strings.HasSuffix(res.Lines[0].Text, " Temp"))

	_, err := st.Tree.Resolve(vfs.Path{"C:", "Temp"})
	assert.NoError(t, err)
}

func TestWindowsNiCreatesFile(t *testing.T) {
	in, st := newInterp(t, platform.Windows())

	st, results := run(in, st, "ni notes.txt", "type notes.txt")
	assert.Empty(t, errorLines(results))

	n, err := st.Tree.Resolve(vfs.Path{"C:", "notes.txt"})
	require.NoError(t, err)
	assert.Equal(t, vfs.KindFile, n.Kind())
}

func TestRm(t *testing.T) {
	t.Run("removes recursively", func(t *testing.T) {
		in, st := newInterp(t, platform.Mac())
		st, results := run(in, st, "rm -rf Projects")
		assert.Empty(t, errorLines(results))
		_, err := st.Tree.Resolve(vfs.Path{"~", "Projects"})
		assert.ErrorIs(t, err, vfs.ErrNotFound)
	})

	t.Run("linux missing", func(t *testing.T) {
		in, st := newInterp(t, platform.Linux())
		next, res := in.Interpret("rm ghost", st)
		require.Len(t, res.Lines, 1)
		assert.Equal(t, core.Error("rm: cannot remove 'ghost': No such file or directory"), res.Lines[0])
		assert.Same(t, st.Tree, next.Tree)
	})

	t.Run("windows del missing", func(t *testing.T) {
		in, st := newInterp(t, platform.Windows())
		_, res := in.Interpret("del ghost", st)
		require.Len(t, res.Lines, 1)
		assert.Equal(t, core.Error(`del : Cannot find path 'C:\ghost' because it does not exist.`), res.Lines[0])
	})
}

func TestGenericBuiltins(t *testing.T) {
	testCases := []struct {
		name    string
		profile *platform.Profile
		line    string
		text    string
	}{
		{"mac whoami", platform.Mac(), "whoami", "admin"},
		{"linux whoami", platform.Linux(), "whoami", "root"},
		{"windows whoami", platform.Windows(), "WhoAmI", `nt authority\system`},
		{"mac hostname", platform.Mac(), "hostname", "macbook-pro.local"},
		{"windows hostname", platform.Windows(), "hostname", "DESKTOP-MASTER"},
		{"mac pwd", platform.Mac(), "pwd", "/Users/admin"},
		{"linux pwd", platform.Linux(), "pwd", "/home/root"},
		{"windows pwd", platform.Windows(), "pwd", "Path\n----\nC:\\"},
		{"echo strips quotes", platform.Linux(), `echo "hello  world" 'again'`, "hello world again"},
		{"windows write-host", platform.Windows(), "Write-Host hi", "hi"},
		{"echo without args", platform.Mac(), "echo", ""},
		{"linux date", platform.Linux(), "date", "Mon, 19 Oct 2026 14:30:00 GMT"},
		{"mac date", platform.Mac(), "date", "Mon Oct 19 14:30:00 UTC 2026"},
		{"windows date", platform.Windows(), "date", "Monday, October 19, 2026 2:30:00 PM"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in, st := newInterp(t, tc.profile)
			_, res := in.Interpret(tc.line, st)
			assert.Equal(t, interp.StageBuiltin, res.Stage)
			require.Len(t, res.Lines, 1)
			assert.Equal(t, core.Output(tc.text), res.Lines[0])
		})
	}
}

func TestClear(t *testing.T) {
	for _, line := range []string{"clear", "CLEAR"} {
		in, st := newInterp(t, platform.Mac())
		next, res := in.Interpret(line, st)
		assert.True(t, res.Clear)
		assert.Empty(t, res.Lines)
		assert.Equal(t, "clear", res.Verb)
		assert.Same(t, st.Tree, next.Tree)
	}

	in, st := newInterp(t, platform.Windows())
	_, res := in.Interpret("cls", st)
	assert.True(t, res.Clear)
}

func TestExtensions(t *testing.T) {
	t.Run("linux apt install", func(t *testing.T) {
		in, st := newInterp(t, platform.Linux())
		_, res := in.Interpret("apt install nginx", st)
		assert.Equal(t, interp.StageExtension, res.Stage)
		require.Len(t, res.Lines, 1)
		assert.Contains(t, res.Lines[0].Text, "Setting up nginx...")
	})

	t.Run("linux sudo", func(t *testing.T) {
		in, st := newInterp(t, platform.Linux())
		_, res := in.Interpret("sudo", st)
		require.Len(t, res.Lines, 1)
		assert.True(t, strings.HasPrefix(res.Lines[0].Text, "usage: sudo"))
	})

	t.Run("mac git init", func(t *testing.T) {
		in, st := newInterp(t, platform.Mac())
		st, _ = run(in, st, "cd Projects")
		_, res := in.Interpret("git init", st)
		require.Len(t, res.Lines, 1)
		assert.Equal(t, "Initialized empty Git repository in /Users/admin/Projects/.git/", res.Lines[0].Text)
	})

	t.Run("windows ipconfig", func(t *testing.T) {
		in, st := newInterp(t, platform.Windows())
		_, res := in.Interpret("ipconfig /all", st)
		require.Len(t, res.Lines, 1)
		assert.Contains(t, res.Lines[0].Text, "IPv4 Address. . . . . . . . . . . : 10.0.2.15")
	})

	t.Run("extensions are per platform", func(t *testing.T) {
		in, st := newInterp(t, platform.Mac())
		_, res := in.Interpret("apt update", st)
		assert.Equal(t, interp.StageUnrecognized, res.Stage)
	})
}

func TestCatalogFallbackRespectsPlatform(t *testing.T) {
	t.Run("mac only command on mac", func(t *testing.T) {
		in, st := newInterp(t, platform.Mac())
		_, res := in.Interpret("brew install wget", st)
		assert.Equal(t, interp.StageCatalog, res.Stage)
		require.Len(t, res.Lines, 1)
		assert.Equal(t, core.System("[SIMULATED EXECUTION]: Install package (Homebrew)"), res.Lines[0])
	})

	t.Run("mac only command on windows", func(t *testing.T) {
		in, st := newInterp(t, platform.Windows())
		_, res := in.Interpret("brew install wget", st)
		assert.Equal(t, interp.StageUnrecognized, res.Stage)
		require.Len(t, res.Lines, 1)
		assert.Equal(t, core.LineError, res.Lines[0].Kind)
		assert.Equal(t, "brew : The term 'brew' is not recognized as the name of a cmdlet, function, script file, or operable program.", res.Lines[0].Text)
	})

	t.Run("mac only command on linux", func(t *testing.T) {
		in, st := newInterp(t, platform.Linux())
		_, res := in.Interpret("pbpaste", st)
		require.Len(t, res.Lines, 1)
		assert.Equal(t, core.Error("pbpaste: command not found"), res.Lines[0])
	})

	t.Run("universal command everywhere", func(t *testing.T) {
		for _, p := range []*platform.Profile{platform.Mac(), platform.Linux(), platform.Windows()} {
			in, st := newInterp(t, p)
			_, res := in.Interpret("docker ps", st)
			assert.Equal(t, interp.StageCatalog, res.Stage, p.Name)
			assert.True(t, res.Recognized(), p.Name)
		}
	})

	t.Run("linux format", func(t *testing.T) {
		in, st := newInterp(t, platform.Linux())
		_, res := in.Interpret("uptime", st)
		require.Len(t, res.Lines, 1)
		assert.Equal(t, core.System("> Executing: uptime\nShow system uptime & load"), res.Lines[0])
	})

	t.Run("windows format", func(t *testing.T) {
		in, st := newInterp(t, platform.Windows())
		_, res := in.Interpret("tasklist", st)
		require.Len(t, res.Lines, 1)
		assert.Equal(t, core.Output("Success: Executed tasklist\nList running processes"), res.Lines[0])
	})
}

func TestUnrecognized(t *testing.T) {
	in, st := newInterp(t, platform.Mac())

	next, res := in.Interpret("frobnicate --now", st)
	assert.Equal(t, "frobnicate", res.Verb)
	assert.False(t, res.Recognized())
	require.Len(t, res.Lines, 1)
	assert.Equal(t, core.Error("zsh: command not found: frobnicate"), res.Lines[0])
	assert.Same(t, st.Tree, next.Tree)
}

func TestInterpretDoesNotMutateInput(t *testing.T) {
	in, st := newInterp(t, platform.Linux())
	cwd := st.Cwd.Clone()
	tree := st.Tree

	_, _ = run(in, st, "mkdir a", "cd scripts", "rm deploy.sh")

	assert.Equal(t, cwd, st.Cwd)
	assert.Same(t, tree, st.Tree)
	_, err := st.Tree.Resolve(vfs.Path{"~", "scripts", "deploy.sh"})
	assert.NoError(t, err)
}
