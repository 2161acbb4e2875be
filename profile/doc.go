// Package profile provides optional runtime profiling of includer runs.
//
// Profiling uses [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof .
//	includer --pprof-mode cpu --pprof-dir ./profiles run 'src/**/*.html' -d dist/
//
// Without the tag, [Modes] is empty and [Profiler.Start] is a no-op.
//
// Profiles are written to the configured directory with names matching the
// mode (cpu.pprof, mem.pprof, ...) and can be inspected with go tool pprof.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
