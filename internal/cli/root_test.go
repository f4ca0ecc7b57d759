package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/codediagram/pkg/buildinfo"
)

func TestRootCommandTree(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	for _, name := range []string{"generate", "gen", "preview", "export", "cache", "completion"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("command %q not registered", name)
		}
	}
	for _, flag := range []string{"verbose", "config"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}

	gen, _, _ := root.Find([]string{"generate"})
	for short, long := range map[string]string{"l": "line", "b": "box", "a": "ascii-art", "g": "github", "o": "output"} {
		f := gen.Flags().ShorthandLookup(short)
		if f == nil || f.Name != long {
			t.Errorf("generate -%s should be --%s", short, long)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("--version: %v", err)
	}
	if !strings.Contains(out.String(), buildinfo.Version) {
		t.Errorf("version output = %q", out.String())
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			root := New(io.Discard, LogInfo).RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out.String(), appName) {
				t.Errorf("%s completion does not mention %s", shell, appName)
			}
		})
	}

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"completion", "tcsh"})
	if err := root.Execute(); err == nil {
		t.Error("unknown shell should fail")
	}
}
