package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRunNoSources(t *testing.T) {
	var r Run

	if err := r.Run(t.Context()); !errors.Is(err, ErrNoSources) {
		t.Errorf("Run() error = %v, want %v", err, ErrNoSources)
	}
}

func TestRunDestDir(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "site") + string(filepath.Separator)

	for name, text := range map[string]string{
		"a.html":     "<p>@@site</p>",
		"b.html":     "<p>@@site!</p>",
		"skip.html":  "skipped",
		"notes.text": "ignored",
	} {
		if err := os.WriteFile(filepath.Join(src, name), []byte(text), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	opts := DefaultOptions()
	opts.Global = []string{"site=Demo"}

	r := Run{
		Sources: []string{"*.html", "!skip.html"},
		Cwd:     src,
		Dest:    out,
		Jobs:    2,
	}

	if err := r.Run(WithOptions(t.Context(), opts)); err != nil {
		t.Fatal(err)
	}

	tests := map[string]string{
		"a.html": "<p>Demo</p>",
		"b.html": "<p>Demo!</p>",
	}

	for name, want := range tests {
		got, err := os.ReadFile(filepath.Join(out, name))
		if err != nil {
			t.Fatal(err)
		}

		if string(got) != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}

	if _, err := os.Stat(filepath.Join(out, "skip.html")); !os.IsNotExist(err) {
		t.Errorf("excluded source was written: %v", err)
	}
}

func TestRunStdout(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")

	if err := os.WriteFile(page, []byte("@@greeting, world"), 0o600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer

	cli, ktx := parse(t, &out, "--global=greeting=Hello", page, "--report")

	ctx := WithContext(t.Context(), ktx)
	ctx = WithOptions(ctx, &cli.Opts)

	if err := cli.Run.Run(ctx); err != nil {
		t.Fatal(err)
	}

	if !bytes.HasPrefix(out.Bytes(), []byte("Hello, world")) {
		t.Errorf("stdout = %q, want prefix %q", out.String(), "Hello, world")
	}

	if !bytes.Contains(out.Bytes(), []byte("page.html")) {
		t.Errorf("report does not name the source: %q", out.String())
	}
}
