// Package cli contains the command line interface for includer.
//
// # Usage
//
//	includer [flags] [run] <source>... [--dest <path>]
//	includer [flags] serve [<root>]
//	includer [flags] init
//	includer version
//
// Run is the default command. Sources are file globs; a leading "!"
// excludes the files matched so far. A destination ending in a path
// separator is a directory.
//
// # Configuration
//
// Flags may be set in a YAML configuration file, by default
// $XDG_CONFIG_HOME/includer/config.yaml (see --config). The file also holds
// the ordered global variables:
//
//	prefix: "@@"
//	docroot: src
//	globals:
//	  title: My Site
//
// Command-line flags override the configuration file. The init command
// writes the current flag values and globals to the configuration file.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (text, json)
//   - --log-time-layout: timestamp layout (RFC3339, Kitchen, none, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorized output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//   - --pprof-mode: profile mode (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: profile output directory
package cli
