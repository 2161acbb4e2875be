package task

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/includer/fsys"
	"github.com/ardnew/includer/log"
	"github.com/ardnew/includer/render"
	"github.com/ardnew/includer/vars"
)

type collector struct{ msgs []string }

func (c *collector) Warn(_ context.Context, msg string, _ ...slog.Attr) {
	c.msgs = append(c.msgs, msg)
}

func newLogger(buf *bytes.Buffer) log.Logger {
	return log.Make(buf, log.WithFormat(log.FormatJSON))
}

func newEngine(t *testing.T, mem *fsys.Mem, logger log.Logger, globals vars.Map) *render.Engine {
	t.Helper()

	cfg := render.DefaultConfig()
	cfg.Docroot = "/site"
	cfg.Globals = globals

	e, err := render.NewEngine(t.Context(), cfg,
		render.WithFS(mem),
		render.WithLogger(logger),
	)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	return e
}

func TestMapping_Targets(t *testing.T) {
	mem := fsys.NewMem(map[string]string{
		"/site/index.html":         "",
		"/site/about/index.html":   "",
		"/site/partials/nav.html":  "",
		"/site/partials/foot.html": "",
		"/site/readme.txt":         "",
	})

	tests := []struct {
		name  string
		m     Mapping
		want  []Target
		warns []string
	}{
		{
			name: "cwd with dest dir",
			m: Mapping{
				Sources: []string{"**/*.html", "!partials/*.html"},
				Cwd:     "/site",
				Dest:    "/out/",
			},
			want: []Target{
				{Src: "/site/about/index.html", Dest: "/out/about/index.html"},
				{Src: "/site/index.html", Dest: "/out/index.html"},
			},
		},
		{
			name: "no cwd joins source under dest dir",
			m:    Mapping{Sources: []string{"/site/index.html"}, Dest: "/out/"},
			want: []Target{{Src: "/site/index.html", Dest: "/out/site/index.html"}},
		},
		{
			name: "dest file",
			m:    Mapping{Sources: []string{"/site/index.html"}, Dest: "/out/page.html"},
			want: []Target{{Src: "/site/index.html", Dest: "/out/page.html"}},
		},
		{
			name: "stdout",
			m:    Mapping{Sources: []string{"/site/readme.txt"}},
			want: []Target{{Src: "/site/readme.txt"}},
		},
		{
			name: "duplicates keep first position",
			m: Mapping{
				Sources: []string{"/site/readme.txt", "/site/*.*"},
				Dest:    "/out/",
			},
			want: []Target{
				{Src: "/site/readme.txt", Dest: "/out/site/readme.txt"},
				{Src: "/site/index.html", Dest: "/out/site/index.html"},
			},
		},
		{
			name: "excluded source added again by a later pattern",
			m: Mapping{
				Sources: []string{"/site/**/index.html", "!/site/index.html", "/site/index.html"},
				Dest:    "/out/",
			},
			want: []Target{
				{Src: "/site/about/index.html", Dest: "/out/site/about/index.html"},
				{Src: "/site/index.html", Dest: "/out/site/index.html"},
			},
		},
		{
			name:  "warnings",
			m:     Mapping{Sources: []string{"/site/none/*.html", "/site/about"}, Dest: "/out/"},
			warns: []string{"source file(s) not found", "ignoring non-file matching source"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w collector

			got, err := tt.m.Targets(t.Context(), mem, &w)
			if err != nil {
				t.Fatalf("Targets: %v", err)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("Targets = %v, want %v", got, tt.want)
			}

			if !slices.Equal(w.msgs, tt.warns) {
				t.Errorf("warnings = %v, want %v", w.msgs, tt.warns)
			}
		})
	}
}

func TestMapping_StdoutMultiple(t *testing.T) {
	mem := fsys.NewMem(map[string]string{"/a.html": "", "/b.html": ""})

	_, err := Mapping{Sources: []string{"/*.html"}}.Targets(t.Context(), mem, &collector{})
	if !errors.Is(err, ErrStdoutMultiple) {
		t.Errorf("error = %v, want ErrStdoutMultiple", err)
	}
}

func TestRunner_Run(t *testing.T) {
	mem := fsys.NewMem(map[string]string{
		"/site/index.html":        `<title>@@title</title>@@include("partials/nav.html", {"active": "home"})`,
		"/site/about/index.html":  `@@include("../partials/nav.html", {"active": "about"})@@titl`,
		"/site/partials/nav.html": `<a href="@@docrootindex.html" class="@@active">`,
	})

	var logs bytes.Buffer

	logger := newLogger(&logs)
	e := newEngine(t, mem, logger, vars.Map{{Name: "title", Value: "Site"}})

	r := NewRunner(e, Mapping{
		Sources: []string{"**/index.html"},
		Cwd:     "/site",
		Dest:    "/out/",
	}, WithJobs(4), WithLint(true), WithLogger(logger))

	report, err := r.Run(t.Context())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	files := mem.Files()

	if got := files["/out/index.html"]; got != `<title>Site</title><a href="../index.html" class="home">` {
		t.Errorf("index = %q", got)
	}

	if got := files["/out/about/index.html"]; got != `<a href="../index.html" class="about">@@titl` {
		t.Errorf("about = %q", got)
	}

	if len(report.Documents) != 2 || report.Failed() != 0 {
		t.Fatalf("report = %+v", report)
	}

	var about Document

	for _, d := range report.Documents {
		if d.Src == "/site/about/index.html" {
			about = d
		}
	}

	if len(about.Unresolved) != 1 || about.Unresolved[0] != (Unresolved{Name: "titl", Suggestion: "title"}) {
		t.Errorf("unresolved = %+v", about.Unresolved)
	}

	if report.Stats.Includes != 2 || report.Stats.Warnings != 1 {
		t.Errorf("stats = %+v", report.Stats)
	}

	if !strings.Contains(logs.String(), "unresolved placeholder") {
		t.Errorf("missing lint warning in log: %s", logs.String())
	}
}

func TestRunner_FatalErrorSkipsWrite(t *testing.T) {
	mem := fsys.NewMem(map[string]string{
		"/site/good.html": "good",
		"/site/bad.html":  `@@include("x.html", {broken})`,
		"/site/x.html":    "x",
	})

	var logs bytes.Buffer

	logger := newLogger(&logs)
	e := newEngine(t, mem, logger, nil)

	report, err := NewRunner(e, Mapping{
		Sources: []string{"/site/good.html", "/site/bad.html"},
		Dest:    "/out/",
	}, WithLogger(logger)).Run(t.Context())

	if !errors.Is(err, render.ErrLocalsJSON) {
		t.Fatalf("error = %v, want ErrLocalsJSON", err)
	}

	files := mem.Files()

	if files["/out/site/good.html"] != "good" {
		t.Error("earlier output should be written")
	}

	if _, ok := files["/out/site/bad.html"]; ok {
		t.Error("failed document should not be written")
	}

	if report.Failed() != 1 {
		t.Errorf("failed = %d, want 1", report.Failed())
	}
}

func TestRunner_Stdout(t *testing.T) {
	mem := fsys.NewMem(map[string]string{"/site/page.txt": "[@@docroot]"})

	var (
		logs bytes.Buffer
		out  bytes.Buffer
	)

	logger := newLogger(&logs)
	e := newEngine(t, mem, logger, nil)

	_, err := NewRunner(e, Mapping{Sources: []string{"/site/page.txt"}},
		WithStdout(&out), WithLogger(logger)).Run(t.Context())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if out.String() != "[]" {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestRunner_ReadSourceError(t *testing.T) {
	mem := fsys.NewMem(nil)

	var logs bytes.Buffer

	logger := newLogger(&logs)
	e := newEngine(t, mem, logger, nil)
	r := NewRunner(e, Mapping{}, WithLogger(logger))

	doc := r.process(t.Context(), Target{Src: filepath.FromSlash("/missing.html"), Dest: "/out.html"})
	if !errors.Is(doc.Err, ErrReadSource) {
		t.Errorf("error = %v, want ErrReadSource", doc.Err)
	}
}

func TestLint(t *testing.T) {
	got := Lint("@@ttl and @@ttl and @@docroot2 and @@ and x@@nav.home", "@@", "", []string{"title", "docroot", "nav"})

	want := []Unresolved{
		{Name: "ttl", Suggestion: "title"},
		{Name: "docroot2", Suggestion: "docroot"},
		{Name: "nav.home", Suggestion: "nav"},
	}

	if !slices.Equal(got, want) {
		t.Errorf("Lint = %+v, want %+v", got, want)
	}

	if got := Lint("{{ x }}", "{{ ", " }}", nil); len(got) != 1 || got[0].Suggestion != "" {
		t.Errorf("Lint with suffix = %+v", got)
	}
}

func TestReport_Render(t *testing.T) {
	report := &Report{
		Documents: []Document{
			{Target: Target{Src: "a.html", Dest: "out/a.html"}, Bytes: 10},
			{Target: Target{Src: "b.html"}, Err: errors.New("boom")},
			{Target: Target{Src: "c.html", Dest: "out/c.html"}, Unresolved: []Unresolved{{Name: "x"}}},
		},
		Stats: render.Stats{Includes: 4, Warnings: 1},
	}

	var buf bytes.Buffer
	if err := report.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"SOURCE", "a.html", "out/a.html", "failed", "1 unresolved", "3 document(s), 4 include(s), 1 warning(s), 1 failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
