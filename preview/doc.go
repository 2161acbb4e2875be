// Package preview serves rendered documents over HTTP. Every request reads
// and renders the requested source again, so edits show up on reload.
package preview
