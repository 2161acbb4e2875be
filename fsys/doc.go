// Package fsys provides the file operations used while rendering documents:
// existence checks, decoding reads, glob expansion, and atomic writes.
//
// [OS] operates on the host file system. [Mem] is an in-memory
// implementation with the same semantics.
package fsys
