// Package hook implements content hooks run on the expanded contents of
// every included file.
//
// Hooks are looked up by name with [Lookup] and combined with [Chain]. The
// [Expr] hook evaluates a user expression with the contents, locals, and file
// path in scope.
package hook
