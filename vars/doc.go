// Package vars resolves the variables substituted into documents.
//
// A [Map] is an ordered name/value mapping, keeping the key order of the JSON
// or YAML literal it was decoded from. A [Resolver] normalizes a Map into its
// textual form: strings pass through an [Expander], everything else is
// serialized as JSON. Each name gets a compiled placeholder pattern,
// memoized by the Resolver for the lifetime of a run.
//
// # Value Expansion
//
// [ExprExpander] evaluates "<%= expression %>" segments embedded in string
// values with expr-lang. Expressions see the global variables and a set of
// builtins:
//
//	env(name)          process environment variable
//	cwd()              working directory
//	today(layout)      current date, Go time layout (default "2006-01-02")
//	path.abs/join/rel/base/dir/ext
//	file.exists/isDir/isFile
//	mung.prefix/prefixif
//
// A "<%- expression %>" segment is rendered HTML-escaped.
package vars
