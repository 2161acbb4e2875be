// Package cmd implements the subcommands of the includer command line.
package cmd

// ConfigIdentifier is the kong variable identifier containing the path to
// the default configuration file.
//
//nolint:gochecknoglobals
var ConfigIdentifier = "configFile"
