// Package config reads the YAML configuration file and global variable
// files.
//
// A configuration file sets default values for command-line flags by name
// and defines the ordered global variables of every run:
//
//	prefix: "@@"
//	includes-dir: partials
//	process: [markdown]
//	globals:
//	  title: My Site
//	  nav: {home: /, about: /about/}
//
// Flag names may be written with underscores instead of hyphens. Unknown keys
// are ignored.
package config
