// Package task runs the renderer over a set of source documents: it maps
// source globs to output paths, processes documents in parallel, writes the
// results, and summarizes the run.
package task
