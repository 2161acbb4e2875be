package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/includer/config"
	"github.com/ardnew/includer/hook"
	"github.com/ardnew/includer/vars"
)

func TestOptionsGlobals(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "globals.json")

	if err := os.WriteFile(file, []byte(`{"b": "file", "c": 3}`), 0o600); err != nil {
		t.Fatal(err)
	}

	opts := DefaultOptions()
	opts.GlobalsFile = []string{file}
	opts.Global = []string{"c=flag", "d=x=y"}

	conf := &config.File{Globals: vars.Map{
		{Name: "a", Value: "1"},
		{Name: "b", Value: "2"},
	}}

	got, err := opts.Globals(conf)
	if err != nil {
		t.Fatal(err)
	}

	want := vars.Map{
		{Name: "a", Value: "1"},
		{Name: "b", Value: "file"},
		{Name: "c", Value: "flag"},
		{Name: "d", Value: "x=y"},
	}

	if len(got) != len(want) {
		t.Fatalf("Globals() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Globals()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOptionsGlobalsNilConfig(t *testing.T) {
	opts := DefaultOptions()
	opts.Global = []string{"site=Demo"}

	got, err := opts.Globals(nil)
	if err != nil {
		t.Fatal(err)
	}

	if v, ok := got.Get("site"); !ok || v != "Demo" {
		t.Errorf("Globals() site = %v, %v", v, ok)
	}
}

func TestOptionsErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		target error
	}{
		{"malformed global", func(o *Options) { o.Global = []string{"novalue"} }, config.ErrGlobal},
		{"unknown hook", func(o *Options) { o.Process = []string{"nope"} }, hook.ErrUnknownHook},
		{"bad expression", func(o *Options) { o.ProcessExpr = "contents +" }, ErrOption},
		{"unknown encoding", func(o *Options) { o.Encoding = "no-such-encoding" }, ErrOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(opts)

			_, err := opts.Engine(t.Context(), nil)
			if !errors.Is(err, tt.target) {
				t.Errorf("Engine() error = %v, want %v", err, tt.target)
			}

			if !errors.Is(err, ErrOption) {
				t.Errorf("Engine() error = %v, want %v", err, ErrOption)
			}
		})
	}
}

func TestOptionsHook(t *testing.T) {
	opts := DefaultOptions()

	h, err := opts.Hook()
	if err != nil {
		t.Fatal(err)
	}

	if h != nil {
		t.Error("Hook() without --process should be nil")
	}

	opts.Process = []string{"chomp"}
	opts.ProcessExpr = `"[" + contents + "]"`

	if h, err = opts.Hook(); err != nil {
		t.Fatal(err)
	}

	got, err := h.Process(t.Context(), "body\n", nil, "part.html")
	if err != nil {
		t.Fatal(err)
	}

	if got != "[body]" {
		t.Errorf("Hook().Process() = %q, want %q", got, "[body]")
	}
}

func TestOptionsEngine(t *testing.T) {
	dir := t.TempDir()

	write := func(name, text string) string {
		t.Helper()

		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
			t.Fatal(err)
		}

		return path
	}

	write("header.html", "<h1>@@title</h1>\n")
	page := write("page.html", `@@include("header.html", {"title": "Home"})@@site`)

	opts := DefaultOptions()
	opts.Docroot = dir
	opts.Global = []string{"site=Demo"}
	opts.Process = []string{"chomp"}

	engine, err := opts.Engine(t.Context(), nil)
	if err != nil {
		t.Fatal(err)
	}

	text, err := engine.FS().Read(page)
	if err != nil {
		t.Fatal(err)
	}

	got, err := engine.Process(t.Context(), text, page)
	if err != nil {
		t.Fatal(err)
	}

	if want := "<h1>Home</h1>Demo"; got != want {
		t.Errorf("Process() = %q, want %q", got, want)
	}
}
