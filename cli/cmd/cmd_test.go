package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

// testCLI mirrors the layout of the includer command line.
type testCLI struct {
	Opts   Options `embed:""`
	Config string

	Run     Run     `cmd:"" default:"withargs"`
	Init    Init    `cmd:""`
	Version Version `cmd:""`
}

// parse parses args into a new testCLI whose output is captured in out.
func parse(t *testing.T, out *bytes.Buffer, args ...string) (*testCLI, *kong.Context) {
	t.Helper()

	var cli testCLI

	parser, err := kong.New(&cli,
		kong.Writers(out, out),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
		kong.Vars{ConfigIdentifier: "config.yaml"},
		(&Options{}).Vars(),
	)
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	return &cli, ktx
}

func TestOptionsFromDefaults(t *testing.T) {
	got := optionsFrom(t.Context())
	want := DefaultOptions()

	if got.Prefix != want.Prefix || got.MaxDepth != want.MaxDepth || !got.Mustache {
		t.Errorf("optionsFrom() = %+v, want %+v", got, want)
	}
}

func TestDefaultOptionsMatchFlagDefaults(t *testing.T) {
	var out bytes.Buffer

	cli, _ := parse(t, &out, "version")
	want := DefaultOptions()

	tests := []struct {
		name      string
		got, want any
	}{
		{"prefix", cli.Opts.Prefix, want.Prefix},
		{"suffix", cli.Opts.Suffix, want.Suffix},
		{"docroot", cli.Opts.Docroot, want.Docroot},
		{"encoding", cli.Opts.Encoding, want.Encoding},
		{"mustache", cli.Opts.Mustache, want.Mustache},
		{"always-unescaped", cli.Opts.AlwaysUnescaped, want.AlwaysUnescaped},
		{"max-depth", cli.Opts.MaxDepth, want.MaxDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("--%s default = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestParseNegatedMustache(t *testing.T) {
	var out bytes.Buffer

	cli, _ := parse(t, &out, "version", "--no-mustache", "--always-unescaped")

	if cli.Opts.Mustache {
		t.Error("--no-mustache did not disable mustache")
	}

	if !cli.Opts.AlwaysUnescaped {
		t.Error("--always-unescaped not set")
	}
}

func TestVersionRun(t *testing.T) {
	var out bytes.Buffer

	cli, ktx := parse(t, &out, "version")

	if err := cli.Version.Run(WithContext(t.Context(), ktx)); err != nil {
		t.Fatal(err)
	}

	if got := out.String(); !strings.HasPrefix(got, "includer ") || !strings.HasSuffix(got, "\n") {
		t.Errorf("version output = %q", got)
	}
}
