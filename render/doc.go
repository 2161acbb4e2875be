// Package render flattens documents by substituting placeholders and
// recursively expanding include directives.
//
// A directive has the form
//
//	<prefix>include("path/or/glob", {"local": "value"})<suffix>
//
// where the JSON object of local variables is optional. Each expansion runs
// the substitution pass (templating backend, locals, then globals) over the
// included contents before scanning them for further directives.
package render
